package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"treefnio/internal/core/id"
	"treefnio/internal/domain"
	"treefnio/internal/domain/documents/material_receipt"
	"treefnio/internal/infrastructure/storage/postgres"
)

const (
	materialReceiptsTable     = "doc_material_receipts"
	materialReceiptLinesTable = "doc_material_receipt_lines"
)

// MaterialReceiptRepo implements material_receipt.Repository.
type MaterialReceiptRepo struct {
	*BaseDocumentRepo[*material_receipt.MaterialReceipt]
}

// NewMaterialReceiptRepo creates a new material receipt repository.
func NewMaterialReceiptRepo(txm *postgres.TxManager) *MaterialReceiptRepo {
	return &MaterialReceiptRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			materialReceiptsTable,
			postgres.ExtractDBColumns[material_receipt.MaterialReceipt](),
			func() *material_receipt.MaterialReceipt { return &material_receipt.MaterialReceipt{} },
		),
	}
}

// GetLines retrieves lines for a material receipt.
func (r *MaterialReceiptRepo) GetLines(ctx context.Context, docID id.ID) ([]material_receipt.MaterialReceiptLine, error) {
	q := r.Builder().
		Select("line_id", "line_no", "material_id", "quantity", "unit_price", "amount").
		From(materialReceiptLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []material_receipt.MaterialReceiptLine
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves lines for a material receipt (delete existing + insert new).
func (r *MaterialReceiptRepo) SaveLines(ctx context.Context, docID id.ID, lines []material_receipt.MaterialReceiptLine) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + materialReceiptLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(materialReceiptLinesTable).
		Columns("line_id", "document_id", "line_no", "material_id", "quantity", "unit_price", "amount")

	for _, line := range lines {
		q = q.Values(line.LineID, docID, line.LineNo, line.MaterialID, line.Quantity, line.UnitPrice, line.Amount)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves material receipts with filtering.
func (r *MaterialReceiptRepo) List(ctx context.Context, filter material_receipt.ListFilter) (domain.ListResult[*material_receipt.MaterialReceipt], error) {
	result := domain.ListResult[*material_receipt.MaterialReceipt]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.MaterialID != nil {
		q = q.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM "+materialReceiptLinesTable+" l WHERE l.document_id = "+materialReceiptsTable+".id AND l.material_id = ?)",
			*filter.MaterialID,
		))
	}

	if filter.Posted != nil {
		q = q.Where(squirrel.Eq{"posted": *filter.Posted})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"supplier_name": searchPattern},
			squirrel.ILike{"supplier_doc_number": searchPattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}

var _ material_receipt.Repository = (*MaterialReceiptRepo)(nil)
