// Package reports provides the sales aggregation and report generation engine.
package reports

import (
	"github.com/shopspring/decimal"

	"treefnio/internal/core/types"
)

// UnknownBucket is the explicit key for entries whose department or segment
// cannot be resolved. An empty string would collide with a legitimately
// empty-named group, so unresolved entries get this sentinel instead.
const UnknownBucket = "نامشخص"

// Fallback display values for products that cannot be resolved.
const (
	UnknownProductName = "Unknown Product"
	UnknownProductCode = "Unknown Code"
)

// TimeRange bounds a report in Shamsi dates (inclusive).
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ProductRollup is the per-product sub-aggregate inside a bucket.
type ProductRollup struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`

	Units        types.Quantity `json:"units"`
	Revenue      types.Money    `json:"revenue"`
	MaterialCost types.Money    `json:"materialCost"`

	// NetRevenue = Revenue - MaterialCost, computed once when the
	// report is finalized
	NetRevenue types.Money `json:"netRevenue"`
}

// Bucket is a department or production segment rollup.
type Bucket struct {
	TotalUnits   types.Quantity `json:"totalUnits"`
	TotalRevenue types.Money    `json:"totalRevenue"`
	TotalCost    types.Money    `json:"totalCost"`
	NetRevenue   types.Money    `json:"netRevenue"`

	// Products sorted by revenue, highest first
	Products []ProductRollup `json:"products"`
}

// Totals holds sums across all included batches.
type Totals struct {
	TotalUnits   types.Quantity `json:"totalUnits"`
	TotalRevenue types.Money    `json:"totalRevenue"`
	TotalCost    types.Money    `json:"totalCost"`
	NetRevenue   types.Money    `json:"netRevenue"`
}

// SalesReport is the aggregation engine's output.
// Overall totals equal the sum over department buckets and, independently,
// the sum over segment buckets: every entry lands in exactly one of each.
type SalesReport struct {
	ByDepartment        map[string]*Bucket `json:"byDepartment"`
	ByProductionSegment map[string]*Bucket `json:"byProductionSegment"`
	Overall             Totals             `json:"overall"`
	TimeRange           TimeRange          `json:"timeRange"`
}

// NewSalesReport returns an empty report for the given range.
func NewSalesReport(timeRange TimeRange) *SalesReport {
	return &SalesReport{
		ByDepartment:        make(map[string]*Bucket),
		ByProductionSegment: make(map[string]*Bucket),
		Overall: Totals{
			TotalRevenue: types.Zero(),
			TotalCost:    types.Zero(),
			NetRevenue:   types.Zero(),
		},
		TimeRange: timeRange,
	}
}

// BCG matrix quadrants.
const (
	ClassStar         = "Star"
	ClassCashCow      = "Cash Cow"
	ClassQuestionMark = "Question Mark"
	ClassDog          = "Dog"
)

// Thresholds for BCG classification. Fixed, not configurable.
var (
	bostonShareThreshold  = decimal.NewFromInt(50)
	bostonGrowthThreshold = decimal.Zero
)

// BostonData is one product's position in the BCG matrix.
// Percent values are exact decimals so that shares over a fully resolved
// report sum to exactly 100.
type BostonData struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Code      string `json:"code"`

	// MarketGrowth is the percent change from the first to the last sale
	// in the selected window. Two-point delta, not a trend fit - report
	// consumers compare against this exact definition.
	MarketGrowth decimal.Decimal `json:"marketGrowth"`

	// MarketShare is this product's percent of the report's overall revenue.
	MarketShare decimal.Decimal `json:"marketShare"`

	Revenue types.Money `json:"revenue"`
}

// Classification returns the BCG quadrant for this product.
func (b BostonData) Classification() string {
	highShare := b.MarketShare.GreaterThanOrEqual(bostonShareThreshold)
	growing := b.MarketGrowth.GreaterThanOrEqual(bostonGrowthThreshold)

	switch {
	case highShare && growing:
		return ClassStar
	case highShare:
		return ClassCashCow
	case growing:
		return ClassQuestionMark
	default:
		return ClassDog
	}
}
