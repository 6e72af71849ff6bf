package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"treefnio/internal/domain"
	"treefnio/internal/domain/catalogs/material"
	"treefnio/internal/infrastructure/storage/postgres"
)

const materialTable = "cat_materials"

// MaterialRepo implements material.Repository.
type MaterialRepo struct {
	*BaseCatalogRepo[*material.Material]
}

// NewMaterialRepo creates a new material repository.
func NewMaterialRepo(txm *postgres.TxManager) *MaterialRepo {
	return &MaterialRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			materialTable,
			postgres.ExtractDBColumns[material.Material](),
			func() *material.Material { return &material.Material{} },
		),
	}
}

// FindByName retrieves material by exact name.
func (r *MaterialRepo) FindByName(ctx context.Context, name string) (*material.Material, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// FindLowStock retrieves materials whose register balance is below min_stock.
// Materials without a balance row count as zero stock.
func (r *MaterialRepo) FindLowStock(ctx context.Context, listFilter domain.ListFilter) (domain.ListResult[*material.Material], error) {
	result := domain.ListResult[*material.Material]{
		Limit:  listFilter.Limit,
		Offset: listFilter.Offset,
	}

	cols := make([]string, 0, len(r.selectCols))
	for _, col := range r.selectCols {
		cols = append(cols, "m."+col)
	}

	q := r.Builder().
		Select(cols...).
		From(materialTable + " m").
		LeftJoin("reg_stock_balances b ON b.material_id = m.id").
		Where(squirrel.Eq{"m.deletion_mark": false}).
		Where(squirrel.Gt{"m.min_stock": 0}).
		Where("COALESCE(b.quantity, 0) < m.min_stock")

	if listFilter.Search != "" {
		pattern := "%" + listFilter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"m.name": pattern},
			squirrel.ILike{"m.code": pattern},
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

	q = q.OrderBy("m.name")
	if listFilter.Limit > 0 {
		q = q.Limit(uint64(listFilter.Limit))
	}
	if listFilter.Offset > 0 {
		q = q.Offset(uint64(listFilter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select low stock: %w", err)
	}

	return result, nil
}

var _ material.Repository = (*MaterialRepo)(nil)
