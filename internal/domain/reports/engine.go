package reports

import (
	"sort"

	"treefnio/internal/core/types"
	"treefnio/internal/domain/documents/sale_batch"
	"treefnio/pkg/shamsi"
)

// CostFunc returns the material cost of one sale entry. Supplied by the
// caller; the engine treats it as a black box returning a non-negative cost.
type CostFunc func(entry sale_batch.SaleEntry) types.Money

// StoredCost reads the material cost frozen on the entry at import time.
// This is the default costing collaborator.
func StoredCost(entry sale_batch.SaleEntry) types.Money {
	return entry.MaterialCost
}

// Engine reduces sale batches into sales reports.
// Engines are stateless: every call operates on the snapshot it is given
// and returns a fresh report, so concurrent calls are independent.
type Engine struct {
	costOf CostFunc
}

// NewEngine creates an aggregation engine. A nil costOf uses StoredCost.
func NewEngine(costOf CostFunc) *Engine {
	if costOf == nil {
		costOf = StoredCost
	}
	return &Engine{costOf: costOf}
}

// AggregateRange reduces batches whose start date falls within
// [start, end] inclusive. Dates are Shamsi strings compared field-wise.
func (e *Engine) AggregateRange(batches []*sale_batch.SaleBatch, start, end string) *SalesReport {
	included := make([]*sale_batch.SaleBatch, 0, len(batches))
	for _, b := range batches {
		if shamsi.InRangeStrings(b.StartDate, start, end) {
			included = append(included, b)
		}
	}
	return e.aggregate(included, TimeRange{Start: start, End: end})
}

// AggregateSelection reduces only the batches whose id is in the given set.
// An empty set yields an all-zero report with empty bucket maps - the
// caller opts in to batches explicitly, there is no "everything" default.
func (e *Engine) AggregateSelection(batches []*sale_batch.SaleBatch, batchIDs []string) *SalesReport {
	selected := make(map[string]bool, len(batchIDs))
	for _, bid := range batchIDs {
		selected[bid] = true
	}

	included := make([]*sale_batch.SaleBatch, 0, len(batchIDs))
	for _, b := range batches {
		if selected[b.ID.String()] {
			included = append(included, b)
		}
	}
	return e.aggregate(included, rangeOf(included))
}

// rangeOf returns the Shamsi date range spanned by the given batches.
func rangeOf(batches []*sale_batch.SaleBatch) TimeRange {
	var tr TimeRange
	for _, b := range batches {
		if tr.Start == "" || shamsi.CompareStrings(b.StartDate, tr.Start) < 0 {
			tr.Start = b.StartDate
		}
		if tr.End == "" || shamsi.CompareStrings(b.EndDate, tr.End) > 0 {
			tr.End = b.EndDate
		}
	}
	return tr
}

// bucketAcc accumulates one department or segment bucket during reduction.
type bucketAcc struct {
	units    types.Quantity
	revenue  types.Money
	cost     types.Money
	products map[string]*productAcc
}

type productAcc struct {
	productID string
	name      string
	code      string
	units     types.Quantity
	revenue   types.Money
	cost      types.Money
}

func newBucketAcc() *bucketAcc {
	return &bucketAcc{
		revenue:  types.Zero(),
		cost:     types.Zero(),
		products: make(map[string]*productAcc),
	}
}

func (a *bucketAcc) add(entry sale_batch.SaleEntry, cost types.Money) {
	a.units += entry.Quantity
	a.revenue = a.revenue.Add(entry.TotalPrice)
	a.cost = a.cost.Add(cost)

	key := productKey(entry)
	p, ok := a.products[key]
	if !ok {
		p = &productAcc{
			productID: key,
			name:      entry.ProductName,
			code:      entry.ProductCode,
			revenue:   types.Zero(),
			cost:      types.Zero(),
		}
		if p.name == "" {
			p.name = UnknownProductName
		}
		if p.code == "" {
			p.code = UnknownProductCode
		}
		a.products[key] = p
	}
	p.units += entry.Quantity
	p.revenue = p.revenue.Add(entry.TotalPrice)
	p.cost = p.cost.Add(cost)
}

// productKey identifies a product across batches. Entries without a product
// reference fall back to the denormalized name so repeated imports of the
// same unmatched row still merge.
func productKey(entry sale_batch.SaleEntry) string {
	if entry.ProductID != nil && *entry.ProductID != "" {
		return *entry.ProductID
	}
	if entry.ProductName != "" {
		return "name:" + entry.ProductName
	}
	return "unknown"
}

// bucketName replaces unresolvable keys with the explicit unknown bucket.
// An empty string must not be used as a map key here - it would collide
// with a legitimately empty-named group.
func bucketName(name string) string {
	if name == "" {
		return UnknownBucket
	}
	return name
}

// aggregate runs the reduction over the already-filtered batch list.
// Overall totals are accumulated in the same pass as the buckets, so the
// two agree by construction. Net revenue at every level is computed once
// at the end, never incrementally.
func (e *Engine) aggregate(batches []*sale_batch.SaleBatch, timeRange TimeRange) *SalesReport {
	byDepartment := make(map[string]*bucketAcc)
	bySegment := make(map[string]*bucketAcc)

	var overallUnits types.Quantity
	overallRevenue := types.Zero()
	overallCost := types.Zero()

	for _, batch := range batches {
		for _, entry := range batch.Lines {
			cost := e.costOf(entry)

			dep := bucketName(entry.SaleDepartment)
			if byDepartment[dep] == nil {
				byDepartment[dep] = newBucketAcc()
			}
			byDepartment[dep].add(entry, cost)

			seg := bucketName(entry.ProductionSegment)
			if bySegment[seg] == nil {
				bySegment[seg] = newBucketAcc()
			}
			bySegment[seg].add(entry, cost)

			overallUnits += entry.Quantity
			overallRevenue = overallRevenue.Add(entry.TotalPrice)
			overallCost = overallCost.Add(cost)
		}
	}

	report := NewSalesReport(timeRange)
	report.Overall = Totals{
		TotalUnits:   overallUnits,
		TotalRevenue: overallRevenue,
		TotalCost:    overallCost,
		NetRevenue:   overallRevenue.Sub(overallCost),
	}
	for name, acc := range byDepartment {
		report.ByDepartment[name] = finalizeBucket(acc)
	}
	for name, acc := range bySegment {
		report.ByProductionSegment[name] = finalizeBucket(acc)
	}
	return report
}

func finalizeBucket(acc *bucketAcc) *Bucket {
	products := make([]ProductRollup, 0, len(acc.products))
	for _, p := range acc.products {
		products = append(products, ProductRollup{
			ProductID:    p.productID,
			Name:         p.name,
			Code:         p.code,
			Units:        p.units,
			Revenue:      p.revenue,
			MaterialCost: p.cost,
			NetRevenue:   p.revenue.Sub(p.cost),
		})
	}
	sort.Slice(products, func(i, j int) bool {
		cmp := products[i].Revenue.Cmp(products[j].Revenue)
		if cmp != 0 {
			return cmp > 0
		}
		return products[i].Name < products[j].Name
	})

	return &Bucket{
		TotalUnits:   acc.units,
		TotalRevenue: acc.revenue,
		TotalCost:    acc.cost,
		NetRevenue:   acc.revenue.Sub(acc.cost),
		Products:     products,
	}
}
