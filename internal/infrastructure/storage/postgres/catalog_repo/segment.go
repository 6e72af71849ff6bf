package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"treefnio/internal/domain/catalogs/segment"
	"treefnio/internal/infrastructure/storage/postgres"
)

const segmentTable = "cat_segments"

// SegmentRepo implements segment.Repository.
type SegmentRepo struct {
	*BaseCatalogRepo[*segment.Segment]
}

// NewSegmentRepo creates a new production segment repository.
func NewSegmentRepo(txm *postgres.TxManager) *SegmentRepo {
	return &SegmentRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			segmentTable,
			postgres.ExtractDBColumns[segment.Segment](),
			func() *segment.Segment { return &segment.Segment{} },
		),
	}
}

// FindByName retrieves segment by exact name.
func (r *SegmentRepo) FindByName(ctx context.Context, name string) (*segment.Segment, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	return r.FindOne(ctx, q)
}

var _ segment.Repository = (*SegmentRepo)(nil)
