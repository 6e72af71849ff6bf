package sale_batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
)

// stubConsumption returns a fixed per-portion expansion for each product.
type stubConsumption struct {
	perPortion map[string][]MaterialConsumption
}

func (s stubConsumption) ConsumptionFor(_ context.Context, productID string, portions types.Quantity) ([]MaterialConsumption, error) {
	items, ok := s.perPortion[productID]
	if !ok {
		return nil, errors.New("product not found")
	}

	factor := portions.Float64()
	out := make([]MaterialConsumption, len(items))
	for i, item := range items {
		out[i] = MaterialConsumption{
			MaterialID: item.MaterialID,
			Quantity:   types.NewQuantityFromFloat64(item.Quantity.Float64() * factor),
			Amount:     item.Amount.Mul(types.MustMoney(portions.String())),
		}
	}
	return out, nil
}

func TestComputeConsumption_AggregatesByMaterial(t *testing.T) {
	rice := id.New()
	meat := id.New()

	kebabID := id.New().String()
	polowID := id.New().String()

	svc := &Service{consumption: stubConsumption{perPortion: map[string][]MaterialConsumption{
		// kebab: 0.2 rice + 0.15 meat per portion
		kebabID: {
			{MaterialID: rice, Quantity: types.NewQuantityFromFloat64(0.2), Amount: types.MustMoney("10")},
			{MaterialID: meat, Quantity: types.NewQuantityFromFloat64(0.15), Amount: types.MustMoney("45")},
		},
		// polow: rice only
		polowID: {
			{MaterialID: rice, Quantity: types.NewQuantityFromFloat64(0.25), Amount: types.MustMoney("12")},
		},
	}}}

	doc := NewSaleBatch("1402/01/01")
	doc.AddLine(SaleEntry{ProductID: &kebabID, ProductName: "Kebab", Quantity: types.NewQuantityFromFloat64(10), UnitPrice: types.MustMoney("200")})
	doc.AddLine(SaleEntry{ProductID: &polowID, ProductName: "Polow", Quantity: types.NewQuantityFromFloat64(4), UnitPrice: types.MustMoney("120")})

	svc.computeConsumption(context.Background(), doc)

	require.Len(t, doc.consumption, 2)

	byMaterial := make(map[id.ID]MaterialConsumption, len(doc.consumption))
	for _, item := range doc.consumption {
		byMaterial[item.MaterialID] = item
	}

	// rice: 10*0.2 + 4*0.25 = 3
	assert.Equal(t, types.NewQuantityFromFloat64(3), byMaterial[rice].Quantity)
	// meat: 10*0.15 = 1.5
	assert.Equal(t, types.NewQuantityFromFloat64(1.5), byMaterial[meat].Quantity)
	// rice amount: 10*10 + 4*12 = 148
	assert.True(t, types.MustMoney("148").Equal(byMaterial[rice].Amount))
}

func TestComputeConsumption_SkipsUnresolvableEntries(t *testing.T) {
	rice := id.New()
	knownID := id.New().String()
	unknownID := id.New().String()

	svc := &Service{consumption: stubConsumption{perPortion: map[string][]MaterialConsumption{
		knownID: {{MaterialID: rice, Quantity: types.NewQuantityFromFloat64(1), Amount: types.MustMoney("5")}},
	}}}

	doc := NewSaleBatch("1402/01/01")
	doc.AddLine(SaleEntry{ProductID: &knownID, ProductName: "Known", Quantity: types.NewQuantityFromFloat64(2), UnitPrice: types.MustMoney("50")})
	doc.AddLine(SaleEntry{ProductID: &unknownID, ProductName: "Unknown", Quantity: types.NewQuantityFromFloat64(9), UnitPrice: types.MustMoney("50")})
	doc.AddLine(SaleEntry{ProductName: "Manual row", Quantity: types.NewQuantityFromFloat64(1), UnitPrice: types.MustMoney("10")})

	svc.computeConsumption(context.Background(), doc)

	require.Len(t, doc.consumption, 1)
	assert.Equal(t, rice, doc.consumption[0].MaterialID)
	assert.Equal(t, types.NewQuantityFromFloat64(2), doc.consumption[0].Quantity)
}

func TestComputeConsumption_NoResolver(t *testing.T) {
	svc := &Service{}

	doc := NewSaleBatch("1402/01/01")
	pid := id.New().String()
	doc.AddLine(SaleEntry{ProductID: &pid, ProductName: "P", Quantity: types.NewQuantityFromFloat64(1), UnitPrice: types.MustMoney("10")})

	svc.computeConsumption(context.Background(), doc)
	assert.Empty(t, doc.consumption)
}
