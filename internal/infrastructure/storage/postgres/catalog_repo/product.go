package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"treefnio/internal/core/id"
	"treefnio/internal/domain/catalogs/product"
	"treefnio/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// FindByName retrieves product by exact name.
func (r *ProductRepo) FindByName(ctx context.Context, name string) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListByDepartment retrieves products assigned to a department.
func (r *ProductRepo) ListByDepartment(ctx context.Context, departmentID id.ID) ([]*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"department_id": departmentID.String()}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*product.Product
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list by department: %w", err)
	}

	return items, nil
}

var _ product.Repository = (*ProductRepo)(nil)
