package documents

import (
	"context"
	"fmt"

	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
	"treefnio/internal/domain/catalogs/department"
	"treefnio/internal/domain/catalogs/product"
	"treefnio/internal/domain/catalogs/segment"
	"treefnio/internal/domain/costing"
	"treefnio/internal/domain/documents/sale_batch"
)

// ProductRefResolver resolves product references into the denormalized form
// stored on sale entries: display name, code, department and segment names,
// and the per-portion material cost from the active recipe.
type ProductRefResolver struct {
	products    product.Repository
	departments department.Repository
	segments    segment.Repository
	costing     *costing.Service
}

// NewProductRefResolver creates a new ProductRefResolver.
func NewProductRefResolver(
	products product.Repository,
	departments department.Repository,
	segments segment.Repository,
	costingSvc *costing.Service,
) *ProductRefResolver {
	return &ProductRefResolver{
		products:    products,
		departments: departments,
		segments:    segments,
		costing:     costingSvc,
	}
}

// Resolve looks up the product and expands its references.
// Missing department or segment references resolve to empty strings;
// reports bucket those entries under the unknown key.
func (r *ProductRefResolver) Resolve(ctx context.Context, productID string) (*sale_batch.ProductInfo, error) {
	pid, err := id.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("parse product id: %w", err)
	}

	prod, err := r.products.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	info := &sale_batch.ProductInfo{
		Name: prod.Name,
		Code: prod.Code,
	}

	if prod.HasDepartment() {
		if depID, err := id.Parse(*prod.DepartmentID); err == nil {
			if dep, err := r.departments.GetByID(ctx, depID); err == nil && dep != nil {
				info.Department = dep.Name
			}
		}
	}

	if prod.HasSegment() {
		if segID, err := id.Parse(*prod.SegmentID); err == nil {
			if seg, err := r.segments.GetByID(ctx, segID); err == nil && seg != nil {
				info.Segment = seg.Name
			}
		}
	}

	cost, err := r.costing.ProductCost(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("resolve product cost: %w", err)
	}
	info.UnitCost = cost

	return info, nil
}

// ConsumptionFor expands the product's active recipe into material
// consumption for the given number of portions.
func (r *ProductRefResolver) ConsumptionFor(ctx context.Context, productID string, portions types.Quantity) ([]sale_batch.MaterialConsumption, error) {
	pid, err := id.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("parse product id: %w", err)
	}

	usage, err := r.costing.ProductUsage(ctx, pid, portions)
	if err != nil {
		return nil, err
	}

	items := make([]sale_batch.MaterialConsumption, 0, len(usage))
	for _, u := range usage {
		items = append(items, sale_batch.MaterialConsumption{
			MaterialID: u.MaterialID,
			Quantity:   u.Quantity,
			Amount:     u.Amount,
		})
	}
	return items, nil
}
