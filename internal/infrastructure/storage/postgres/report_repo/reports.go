// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"treefnio/internal/core/id"
	"treefnio/internal/domain/documents/sale_batch"
	"treefnio/internal/domain/reports"
	"treefnio/internal/infrastructure/storage/postgres"
)

const (
	saleBatchesTable    = "doc_sale_batches"
	saleBatchLinesTable = "doc_sale_batch_lines"
)

// ReportRepo implements reports.Repository.
// It reads sale batches with their entries in two queries: one for headers,
// one for all lines of the selected headers. The aggregation itself happens
// in the reports engine, not in SQL, so the Persian-calendar bucketing rules
// live in exactly one place.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ReportRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// GetSalesHistory returns all sale batches with entries, oldest first.
func (r *ReportRepo) GetSalesHistory(ctx context.Context) ([]*sale_batch.SaleBatch, error) {
	q := r.headerSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("start_date", "number")

	return r.fetchWithLines(ctx, q)
}

// GetBatchesByIDs returns the batches in the given id set with entries.
// Unknown ids are skipped.
func (r *ReportRepo) GetBatchesByIDs(ctx context.Context, ids []id.ID) ([]*sale_batch.SaleBatch, error) {
	if len(ids) == 0 {
		return []*sale_batch.SaleBatch{}, nil
	}

	q := r.headerSelect().
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("start_date", "number")

	return r.fetchWithLines(ctx, q)
}

func (r *ReportRepo) headerSelect() squirrel.SelectBuilder {
	return r.builder.
		Select(postgres.ExtractDBColumns[sale_batch.SaleBatch]()...).
		From(saleBatchesTable)
}

func (r *ReportRepo) fetchWithLines(ctx context.Context, q squirrel.SelectBuilder) ([]*sale_batch.SaleBatch, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.querier(ctx)

	var batches []*sale_batch.SaleBatch
	if err := pgxscan.Select(ctx, querier, &batches, sql, args...); err != nil {
		return nil, fmt.Errorf("select batches: %w", err)
	}

	if len(batches) == 0 {
		return []*sale_batch.SaleBatch{}, nil
	}

	batchIDs := make([]id.ID, len(batches))
	byID := make(map[id.ID]*sale_batch.SaleBatch, len(batches))
	for i, b := range batches {
		batchIDs[i] = b.ID
		b.Lines = make([]sale_batch.SaleEntry, 0)
		byID[b.ID] = b
	}

	lineQ := r.builder.
		Select(
			"document_id",
			"line_id", "line_no", "product_id",
			"product_name", "product_code", "sale_department", "production_segment",
			"quantity", "unit_price", "total_price", "material_cost", "sale_date",
		).
		From(saleBatchLinesTable).
		Where(squirrel.Eq{"document_id": batchIDs}).
		OrderBy("document_id", "line_no")

	lineSQL, lineArgs, err := lineQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	type entryRow struct {
		DocumentID id.ID `db:"document_id"`
		sale_batch.SaleEntry
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, querier, &rows, lineSQL, lineArgs...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	for _, row := range rows {
		if b, ok := byID[row.DocumentID]; ok {
			b.Lines = append(b.Lines, row.SaleEntry)
		}
	}

	return batches, nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
