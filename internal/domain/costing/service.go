// Package costing calculates product unit cost from the active recipe
// and current material prices.
package costing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
	"treefnio/internal/domain/catalogs/material"
	"treefnio/internal/domain/catalogs/product"
	"treefnio/internal/domain/recipes"
)

// Service computes product costs.
type Service struct {
	products  product.Repository
	recipes   recipes.Repository
	materials material.Repository
}

// NewService creates a costing service.
func NewService(
	products product.Repository,
	recipeRepo recipes.Repository,
	materials material.Repository,
) *Service {
	return &Service{
		products:  products,
		recipes:   recipeRepo,
		materials: materials,
	}
}

// ProductCost returns the cost of one portion of a product.
// Products without an active recipe cost zero.
func (s *Service) ProductCost(ctx context.Context, productID id.ID) (types.Money, error) {
	prod, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return types.Zero(), err
	}

	if !prod.HasActiveRecipe() {
		return types.Zero(), nil
	}

	recipeID, err := id.Parse(*prod.ActiveRecipeID)
	if err != nil {
		return types.Zero(), fmt.Errorf("parse active recipe id: %w", err)
	}

	return s.RecipeCost(ctx, recipeID)
}

// RecipeCost returns the per-portion cost of a recipe.
func (s *Service) RecipeCost(ctx context.Context, recipeID id.ID) (types.Money, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return types.Zero(), err
	}

	lines, err := s.recipes.GetLines(ctx, recipeID)
	if err != nil {
		return types.Zero(), fmt.Errorf("get recipe lines: %w", err)
	}

	yield := decimal.NewFromFloat(recipe.Yield.Float64())
	if !yield.IsPositive() {
		yield = decimal.NewFromInt(1)
	}

	total := decimal.Zero
	for _, line := range lines {
		mat, err := s.materials.GetByID(ctx, line.MaterialID)
		if err != nil {
			return types.Zero(), fmt.Errorf("get material %s: %w", line.MaterialID, err)
		}
		qty := decimal.NewFromFloat(line.Quantity.Float64())
		total = total.Add(mat.Price.Mul(qty))
	}

	return total.Div(yield), nil
}

// MaterialUsage is one material's share of a recipe expansion.
type MaterialUsage struct {
	MaterialID id.ID
	Quantity   types.Quantity
	Amount     types.Money
}

// ProductUsage expands the product's active recipe into the material
// quantities consumed by the given number of portions. Products without
// an active recipe consume nothing.
func (s *Service) ProductUsage(ctx context.Context, productID id.ID, portions types.Quantity) ([]MaterialUsage, error) {
	prod, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !prod.HasActiveRecipe() {
		return nil, nil
	}

	recipeID, err := id.Parse(*prod.ActiveRecipeID)
	if err != nil {
		return nil, fmt.Errorf("parse active recipe id: %w", err)
	}

	return s.RecipeUsage(ctx, recipeID, portions)
}

// RecipeUsage expands a recipe into material quantities for the given
// number of portions. Line quantities are per recipe yield, so each line
// contributes quantity / yield * portions.
func (s *Service) RecipeUsage(ctx context.Context, recipeID id.ID, portions types.Quantity) ([]MaterialUsage, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	lines, err := s.recipes.GetLines(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe lines: %w", err)
	}

	yield := decimal.NewFromFloat(recipe.Yield.Float64())
	if !yield.IsPositive() {
		yield = decimal.NewFromInt(1)
	}
	factor := decimal.NewFromFloat(portions.Float64()).Div(yield)

	usage := make([]MaterialUsage, 0, len(lines))
	for _, line := range lines {
		mat, err := s.materials.GetByID(ctx, line.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("get material %s: %w", line.MaterialID, err)
		}
		qty := decimal.NewFromFloat(line.Quantity.Float64()).Mul(factor)
		usage = append(usage, MaterialUsage{
			MaterialID: line.MaterialID,
			Quantity:   types.NewQuantityFromFloat64(qty.InexactFloat64()),
			Amount:     mat.Price.Mul(qty),
		})
	}

	return usage, nil
}

// CostMap resolves costs for a set of products in one pass.
// Products that fail to resolve (no recipe, missing materials) cost zero.
func (s *Service) CostMap(ctx context.Context, productIDs []id.ID) (map[id.ID]types.Money, error) {
	out := make(map[id.ID]types.Money, len(productIDs))
	for _, pid := range productIDs {
		cost, err := s.ProductCost(ctx, pid)
		if err != nil {
			out[pid] = types.Zero()
			continue
		}
		out[pid] = cost
	}
	return out, nil
}
