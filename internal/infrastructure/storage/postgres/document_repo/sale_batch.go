package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"treefnio/internal/core/id"
	"treefnio/internal/domain"
	"treefnio/internal/domain/documents/sale_batch"
	"treefnio/internal/infrastructure/storage/postgres"
)

const (
	saleBatchesTable    = "doc_sale_batches"
	saleBatchLinesTable = "doc_sale_batch_lines"
)

// SaleBatchRepo implements sale_batch.Repository.
type SaleBatchRepo struct {
	*BaseDocumentRepo[*sale_batch.SaleBatch]
}

// NewSaleBatchRepo creates a new sale batch repository.
func NewSaleBatchRepo(txm *postgres.TxManager) *SaleBatchRepo {
	return &SaleBatchRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txm,
			saleBatchesTable,
			postgres.ExtractDBColumns[sale_batch.SaleBatch](),
			func() *sale_batch.SaleBatch { return &sale_batch.SaleBatch{} },
		),
	}
}

// GetLines retrieves sale entries for a batch.
func (r *SaleBatchRepo) GetLines(ctx context.Context, docID id.ID) ([]sale_batch.SaleEntry, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "product_id",
			"product_name", "product_code", "sale_department", "production_segment",
			"quantity", "unit_price", "total_price", "material_cost", "sale_date",
		).
		From(saleBatchLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []sale_batch.SaleEntry
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves sale entries for a batch (delete existing + insert new).
// Batches are replaced wholesale, matching the edit model of the UI.
func (r *SaleBatchRepo) SaveLines(ctx context.Context, docID id.ID, lines []sale_batch.SaleEntry) error {
	querier := r.querier(ctx)

	deleteSQL := "DELETE FROM " + saleBatchLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(saleBatchLinesTable).
		Columns(
			"line_id", "document_id", "line_no", "product_id",
			"product_name", "product_code", "sale_department", "production_segment",
			"quantity", "unit_price", "total_price", "material_cost", "sale_date",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ProductID,
			line.ProductName, line.ProductCode, line.SaleDepartment, line.ProductionSegment,
			line.Quantity, line.UnitPrice, line.TotalPrice, line.MaterialCost, line.SaleDate,
		)
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

// List retrieves sale batches with filtering.
// Shamsi dates compare correctly as strings in YYYY/MM/DD form.
func (r *SaleBatchRepo) List(ctx context.Context, filter sale_batch.ListFilter) (domain.ListResult[*sale_batch.SaleBatch], error) {
	result := domain.ListResult[*sale_batch.SaleBatch]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.DateFrom != "" {
		q = q.Where(squirrel.GtOrEq{"start_date": filter.DateFrom})
	}

	if filter.DateTo != "" {
		q = q.Where(squirrel.LtOrEq{"start_date": filter.DateTo})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
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
	if filter.OrderBy == "" {
		orderBy = "start_date DESC"
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

// GetByIDs retrieves batches in the given id set (without lines).
// Unknown ids are skipped, not errors.
func (r *SaleBatchRepo) GetByIDs(ctx context.Context, ids []id.ID) ([]*sale_batch.SaleBatch, error) {
	if len(ids) == 0 {
		return []*sale_batch.SaleBatch{}, nil
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("start_date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*sale_batch.SaleBatch
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get by ids: %w", err)
	}

	return items, nil
}

var _ sale_batch.Repository = (*SaleBatchRepo)(nil)
