package dto

import (
	"github.com/shopspring/decimal"

	"treefnio/internal/core/types"
	"treefnio/internal/domain/reports"
)

// --- Sales Report ---

// SalesReportRequest represents query parameters for a sales report.
// Dates are Shamsi strings (YYYY/MM/DD), inclusive on both ends.
type SalesReportRequest struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

// SalesReportSelectionRequest requests a report over explicit batches.
type SalesReportSelectionRequest struct {
	BatchIDs []string `json:"batchIds" binding:"required,min=1"`
}

// ProductRollupResponse is a per-product sub-aggregate inside a bucket.
type ProductRollupResponse struct {
	ProductID    string         `json:"id"`
	Name         string         `json:"name"`
	Code         string         `json:"code"`
	Units        types.Quantity `json:"units"`
	Revenue      types.Money    `json:"revenue"`
	MaterialCost types.Money    `json:"materialCost"`
	NetRevenue   types.Money    `json:"netRevenue"`
}

// BucketResponse is a department or production segment rollup.
type BucketResponse struct {
	TotalUnits   types.Quantity          `json:"totalUnits"`
	TotalRevenue types.Money             `json:"totalRevenue"`
	TotalCost    types.Money             `json:"totalCost"`
	NetRevenue   types.Money             `json:"netRevenue"`
	Products     []ProductRollupResponse `json:"products"`
}

// TotalsResponse holds overall report sums.
type TotalsResponse struct {
	TotalUnits   types.Quantity `json:"totalUnits"`
	TotalRevenue types.Money    `json:"totalRevenue"`
	TotalCost    types.Money    `json:"totalCost"`
	NetRevenue   types.Money    `json:"netRevenue"`
}

// SalesReportResponse represents a sales report in API responses.
type SalesReportResponse struct {
	ByDepartment        map[string]BucketResponse `json:"byDepartment"`
	ByProductionSegment map[string]BucketResponse `json:"byProductionSegment"`
	Overall             TotalsResponse            `json:"overall"`
	TimeRange           reports.TimeRange         `json:"timeRange"`
}

func fromBucket(b *reports.Bucket) BucketResponse {
	products := make([]ProductRollupResponse, len(b.Products))
	for i, p := range b.Products {
		products[i] = ProductRollupResponse{
			ProductID:    p.ProductID,
			Name:         p.Name,
			Code:         p.Code,
			Units:        p.Units,
			Revenue:      p.Revenue,
			MaterialCost: p.MaterialCost,
			NetRevenue:   p.NetRevenue,
		}
	}
	return BucketResponse{
		TotalUnits:   b.TotalUnits,
		TotalRevenue: b.TotalRevenue,
		TotalCost:    b.TotalCost,
		NetRevenue:   b.NetRevenue,
		Products:     products,
	}
}

// FromSalesReport converts domain report to response DTO.
func FromSalesReport(r *reports.SalesReport) *SalesReportResponse {
	resp := &SalesReportResponse{
		ByDepartment:        make(map[string]BucketResponse, len(r.ByDepartment)),
		ByProductionSegment: make(map[string]BucketResponse, len(r.ByProductionSegment)),
		Overall: TotalsResponse{
			TotalUnits:   r.Overall.TotalUnits,
			TotalRevenue: r.Overall.TotalRevenue,
			TotalCost:    r.Overall.TotalCost,
			NetRevenue:   r.Overall.NetRevenue,
		},
		TimeRange: r.TimeRange,
	}

	for name, bucket := range r.ByDepartment {
		resp.ByDepartment[name] = fromBucket(bucket)
	}
	for name, bucket := range r.ByProductionSegment {
		resp.ByProductionSegment[name] = fromBucket(bucket)
	}

	return resp
}

// --- Boston (BCG) Matrix ---

// BostonRequest requests BCG classification over explicit batches.
type BostonRequest struct {
	BatchIDs []string `json:"batchIds" binding:"required,min=1"`
}

// BostonItemResponse is one product's position in the BCG matrix.
type BostonItemResponse struct {
	ProductID      string          `json:"productId"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	MarketGrowth   decimal.Decimal `json:"marketGrowth"`
	MarketShare    decimal.Decimal `json:"marketShare"`
	Revenue        types.Money     `json:"revenue"`
	Classification string          `json:"classification"`
}

// BostonResponse represents BCG matrix data in API responses.
type BostonResponse struct {
	Items []BostonItemResponse `json:"items"`
}

// FromBostonData converts domain BCG data to response DTO.
func FromBostonData(items []reports.BostonData) *BostonResponse {
	resp := &BostonResponse{Items: make([]BostonItemResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = BostonItemResponse{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Code:           item.Code,
			MarketGrowth:   item.MarketGrowth,
			MarketShare:    item.MarketShare,
			Revenue:        item.Revenue,
			Classification: item.Classification(),
		}
	}
	return resp
}
