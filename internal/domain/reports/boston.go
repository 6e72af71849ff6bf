package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"treefnio/internal/core/types"
	"treefnio/internal/domain/documents/sale_batch"
	"treefnio/pkg/shamsi"
)

var hundred = decimal.NewFromInt(100)

// ClassifyBoston produces one BostonData record per distinct product in the
// given batches. The overall revenue denominator comes from the sales report
// built over the same selection, so share percentages and the report agree.
func ClassifyBoston(batches []*sale_batch.SaleBatch, overallRevenue types.Money) []BostonData {
	// Order batches by date ascending so first/last sale are well defined
	ordered := make([]*sale_batch.SaleBatch, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return shamsi.CompareStrings(ordered[i].StartDate, ordered[j].StartDate) < 0
	})

	type series struct {
		name         string
		code         string
		firstRevenue types.Money
		lastRevenue  types.Money
		totalRevenue types.Money
		seen         bool
	}

	byProduct := make(map[string]*series)
	order := make([]string, 0)

	for _, batch := range ordered {
		for _, entry := range batch.Lines {
			key := productKey(entry)
			s, ok := byProduct[key]
			if !ok {
				s = &series{
					name:         entry.ProductName,
					code:         entry.ProductCode,
					totalRevenue: types.Zero(),
				}
				if s.name == "" {
					s.name = UnknownProductName
				}
				if s.code == "" {
					s.code = UnknownProductCode
				}
				byProduct[key] = s
				order = append(order, key)
			}

			if !s.seen {
				s.firstRevenue = entry.TotalPrice
				s.seen = true
			}
			s.lastRevenue = entry.TotalPrice
			s.totalRevenue = s.totalRevenue.Add(entry.TotalPrice)
		}
	}

	result := make([]BostonData, 0, len(order))
	for _, key := range order {
		s := byProduct[key]

		// Two-point delta over the window's first and last sale.
		// Zero first revenue means growth 0, never a division by zero.
		growth := decimal.Zero
		if s.seen && s.firstRevenue.IsPositive() {
			growth = s.lastRevenue.Sub(s.firstRevenue).
				Div(s.firstRevenue).
				Mul(hundred)
		}

		share := decimal.Zero
		if overallRevenue.IsPositive() {
			share = s.totalRevenue.Div(overallRevenue).Mul(hundred)
		}

		result = append(result, BostonData{
			ProductID:    key,
			Name:         s.name,
			Code:         s.code,
			MarketGrowth: growth,
			MarketShare:  share,
			Revenue:      s.totalRevenue,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Revenue.Cmp(result[j].Revenue) > 0
	})
	return result
}
