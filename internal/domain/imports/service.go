package imports

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"treefnio/internal/core/apperror"
	"treefnio/internal/core/types"
	"treefnio/internal/domain"
	"treefnio/internal/domain/catalogs/product"
	"treefnio/internal/domain/documents/sale_batch"
	"treefnio/pkg/csvimport"
	"treefnio/pkg/logger"
	"treefnio/pkg/shamsi"
)

// RowStatus describes how a preview row was resolved.
type RowStatus string

const (
	// RowMatched - product resolved from the catalog
	RowMatched RowStatus = "matched"
	// RowUnmatched - no catalog product found; row keeps its raw values
	// and needs manual resolution
	RowUnmatched RowStatus = "unmatched"
	// RowInvalid - the row cannot be imported at all (bad number, bad date)
	RowInvalid RowStatus = "invalid"
)

// PreviewRow is one file row after mapping and reconciliation.
type PreviewRow struct {
	LineNumber int       `json:"lineNumber"`
	Status     RowStatus `json:"status"`
	Problem    string    `json:"problem,omitempty"`

	ProductID   *string `json:"productId,omitempty"`
	ProductName string  `json:"productName"`
	ProductCode string  `json:"productCode"`

	Quantity  types.Quantity `json:"quantity"`
	UnitPrice types.Money    `json:"unitPrice"`
	SaleDate  string         `json:"saleDate,omitempty"`
}

// Preview is the reconciled import, shown to the user before commit.
type Preview struct {
	Rows      []PreviewRow `json:"rows"`
	Matched   int          `json:"matched"`
	Unmatched int          `json:"unmatched"`
	Invalid   int          `json:"invalid"`
}

// maxCatalogFetch bounds the product list loaded for reconciliation.
const maxCatalogFetch = 10000

// Service drives the import flow.
type Service struct {
	products product.Repository
	batches  *sale_batch.Service
}

// NewService creates an import service.
func NewService(products product.Repository, batches *sale_batch.Service) *Service {
	return &Service{products: products, batches: batches}
}

// Preview maps the parsed table through the column mapping and reconciles
// each row against the product catalog: code match first, then exact name.
// Unmatched rows are kept and flagged, never dropped.
func (s *Service) Preview(ctx context.Context, table *csvimport.Table, mapping ColumnMapping) (*Preview, error) {
	if err := mapping.Validate(); err != nil {
		return nil, err
	}
	if err := mapping.checkColumns(table); err != nil {
		return nil, err
	}

	byCode, byName, err := s.loadCatalogIndex(ctx)
	if err != nil {
		return nil, err
	}

	preview := &Preview{Rows: make([]PreviewRow, 0, len(table.Rows))}
	for _, row := range table.Rows {
		pr := s.buildRow(row, mapping, byCode, byName)
		switch pr.Status {
		case RowMatched:
			preview.Matched++
		case RowUnmatched:
			preview.Unmatched++
		case RowInvalid:
			preview.Invalid++
		}
		preview.Rows = append(preview.Rows, pr)
	}

	logger.Info(ctx, "import preview built",
		"rows", len(preview.Rows),
		"matched", preview.Matched,
		"unmatched", preview.Unmatched,
		"invalid", preview.Invalid)

	return preview, nil
}

func (s *Service) loadCatalogIndex(ctx context.Context) (byCode, byName map[string]*product.Product, err error) {
	list, err := s.products.List(ctx, domain.ListFilter{Limit: maxCatalogFetch})
	if err != nil {
		return nil, nil, err
	}

	byCode = make(map[string]*product.Product, len(list.Items))
	byName = make(map[string]*product.Product, len(list.Items))
	for _, p := range list.Items {
		if p.Code != "" {
			byCode[normalizeKey(p.Code)] = p
		}
		if p.Name != "" {
			byName[normalizeKey(p.Name)] = p
		}
	}
	return byCode, byName, nil
}

func (s *Service) buildRow(row csvimport.Row, mapping ColumnMapping, byCode, byName map[string]*product.Product) PreviewRow {
	pr := PreviewRow{
		LineNumber: row.LineNumber,
		UnitPrice:  types.Zero(),
	}

	if mapping.ProductCode != "" {
		pr.ProductCode = row.Get(mapping.ProductCode)
	}
	if mapping.ProductName != "" {
		pr.ProductName = row.Get(mapping.ProductName)
	}

	qty, err := parseQuantity(row.Get(mapping.Quantity))
	if err != nil {
		pr.Status = RowInvalid
		pr.Problem = "quantity: " + err.Error()
		return pr
	}
	pr.Quantity = qty

	price, err := parsePrice(row.Get(mapping.UnitPrice))
	if err != nil {
		pr.Status = RowInvalid
		pr.Problem = "unit price: " + err.Error()
		return pr
	}
	pr.UnitPrice = price

	if mapping.SaleDate != "" {
		date := row.Get(mapping.SaleDate)
		if date != "" && !shamsi.IsValid(date) {
			pr.Status = RowInvalid
			pr.Problem = "sale date is not a valid shamsi date"
			return pr
		}
		pr.SaleDate = date
	}

	// Reconcile: code wins over name
	var match *product.Product
	if pr.ProductCode != "" {
		match = byCode[normalizeKey(pr.ProductCode)]
	}
	if match == nil && pr.ProductName != "" {
		match = byName[normalizeKey(pr.ProductName)]
	}

	if match == nil {
		pr.Status = RowUnmatched
		return pr
	}

	idStr := match.ID.String()
	pr.ProductID = &idStr
	pr.ProductName = match.Name
	pr.ProductCode = match.Code
	pr.Status = RowMatched
	return pr
}

// Commit turns a preview into a persisted sale batch dated batchDate.
// Invalid rows are refused; unmatched rows are imported with their raw
// values and land in the unknown report bucket until resolved.
func (s *Service) Commit(ctx context.Context, preview *Preview, batchDate string) (*sale_batch.SaleBatch, error) {
	if preview == nil || len(preview.Rows) == 0 {
		return nil, apperror.NewValidation("nothing to import").
			WithDetail("field", "rows")
	}
	if preview.Invalid > 0 {
		return nil, apperror.NewValidation("preview contains invalid rows").
			WithDetail("invalid", preview.Invalid)
	}

	batch := sale_batch.NewSaleBatch(batchDate)
	for _, pr := range preview.Rows {
		batch.AddLine(sale_batch.SaleEntry{
			ProductID:   pr.ProductID,
			ProductName: pr.ProductName,
			ProductCode: pr.ProductCode,
			Quantity:    pr.Quantity,
			UnitPrice:   pr.UnitPrice,
			SaleDate:    pr.SaleDate,
		})
	}

	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseQuantity(raw string) (types.Quantity, error) {
	raw = normalizeDigits(raw)
	if raw == "" {
		return 0, errStr("is empty")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errStr("is not a number")
	}
	if f < 0 {
		return 0, errStr("is negative")
	}
	return types.NewQuantityFromFloat64(f), nil
}

func parsePrice(raw string) (types.Money, error) {
	raw = normalizeDigits(raw)
	if raw == "" {
		return types.Zero(), errStr("is empty")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return types.Zero(), errStr("is not a number")
	}
	if d.IsNegative() {
		return types.Zero(), errStr("is negative")
	}
	return d, nil
}

// normalizeDigits converts Persian and Arabic-Indic digits to ASCII and
// strips thousands separators, as POS exports mix all three.
func normalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '۰' && r <= '۹': // Extended Arabic-Indic (Persian)
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩': // Arabic-Indic
			b.WriteRune('0' + (r - '٠'))
		case r == ',' || r == '٬':
			// thousands separator, drop
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

type errStr string

func (e errStr) Error() string { return string(e) }
