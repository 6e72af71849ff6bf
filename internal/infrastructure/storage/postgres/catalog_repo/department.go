package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"treefnio/internal/domain/catalogs/department"
	"treefnio/internal/infrastructure/storage/postgres"
)

const departmentTable = "cat_departments"

// DepartmentRepo implements department.Repository.
type DepartmentRepo struct {
	*BaseCatalogRepo[*department.Department]
}

// NewDepartmentRepo creates a new department repository.
func NewDepartmentRepo(txm *postgres.TxManager) *DepartmentRepo {
	return &DepartmentRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			departmentTable,
			postgres.ExtractDBColumns[department.Department](),
			func() *department.Department { return &department.Department{} },
		),
	}
}

// FindByName retrieves department by exact name.
func (r *DepartmentRepo) FindByName(ctx context.Context, name string) (*department.Department, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

var _ department.Repository = (*DepartmentRepo)(nil)
