package sale_batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treefnio/internal/core/entity"
	"treefnio/internal/core/id"
	"treefnio/internal/core/types"
)

func TestAddLine_ComputesTotals(t *testing.T) {
	b := NewSaleBatch("1402/03/10")

	b.AddLine(SaleEntry{
		ProductName: "Kebab",
		Quantity:    types.NewQuantityFromFloat64(3),
		UnitPrice:   types.MustMoney("150"),
	})
	b.AddLine(SaleEntry{
		ProductName:  "Tea",
		Quantity:     types.NewQuantityFromFloat64(2),
		UnitPrice:    types.MustMoney("20"),
		MaterialCost: types.MustMoney("8"),
	})

	require.Len(t, b.Lines, 2)
	assert.Equal(t, 1, b.Lines[0].LineNo)
	assert.Equal(t, 2, b.Lines[1].LineNo)
	assert.False(t, id.IsNil(b.Lines[0].LineID))

	// TotalPrice defaults to quantity * unitPrice
	assert.True(t, types.MustMoney("450").Equal(b.Lines[0].TotalPrice))

	// Empty sale dates inherit the batch date
	assert.Equal(t, "1402/03/10", b.Lines[0].SaleDate)

	assert.True(t, types.MustMoney("490").Equal(b.TotalRevenue))
	assert.True(t, types.MustMoney("8").Equal(b.TotalCost))
}

func TestAddLine_KeepsExplicitTotalPrice(t *testing.T) {
	b := NewSaleBatch("1402/03/10")
	b.AddLine(SaleEntry{
		ProductName: "Discounted",
		Quantity:    types.NewQuantityFromFloat64(2),
		UnitPrice:   types.MustMoney("100"),
		TotalPrice:  types.MustMoney("180"),
	})

	assert.True(t, types.MustMoney("180").Equal(b.Lines[0].TotalPrice))
	assert.True(t, types.MustMoney("180").Equal(b.TotalRevenue))
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty batch is valid", func(t *testing.T) {
		b := NewSaleBatch("1402/01/01")
		assert.NoError(t, b.Validate(ctx))
	})

	t.Run("invalid shamsi date", func(t *testing.T) {
		b := NewSaleBatch("1402/13/01")
		assert.Error(t, b.Validate(ctx))
	})

	t.Run("start after end", func(t *testing.T) {
		b := NewSaleBatch("1402/02/01")
		b.EndDate = "1402/01/15"
		assert.Error(t, b.Validate(ctx))
	})

	t.Run("negative quantity", func(t *testing.T) {
		b := NewSaleBatch("1402/01/01")
		b.AddLine(SaleEntry{
			ProductName: "Bad",
			Quantity:    types.NewQuantityFromFloat64(-1),
			UnitPrice:   types.MustMoney("10"),
		})
		assert.Error(t, b.Validate(ctx))
	})
}

func TestGenerateMovements(t *testing.T) {
	b := NewSaleBatch("1402/01/01")
	b.Number = "SB-7"

	matA := id.New()
	matB := id.New()
	b.SetConsumption([]MaterialConsumption{
		{MaterialID: matA, Quantity: types.NewQuantityFromFloat64(1.5), Amount: types.MustMoney("30")},
		{MaterialID: matB, Quantity: 0, Amount: types.Zero()},
	})

	movements, err := b.GenerateMovements(context.Background())
	require.NoError(t, err)

	// Zero-quantity consumption produces no movement
	require.Len(t, movements.Stock, 1)

	m := movements.Stock[0]
	assert.Equal(t, b.ID, m.RecorderID)
	assert.Equal(t, "SaleBatch", m.RecorderType)
	assert.Equal(t, b.PostedVersion+1, m.RecorderVersion)
	assert.Equal(t, entity.RecordTypeExpense, m.RecordType)
	assert.Equal(t, matA, m.MaterialID)
	assert.Equal(t, types.NewQuantityFromFloat64(1.5), m.Quantity)
}

func TestGenerateMovements_NoConsumption(t *testing.T) {
	b := NewSaleBatch("1402/01/01")

	movements, err := b.GenerateMovements(context.Background())
	require.NoError(t, err)
	assert.True(t, movements.IsEmpty())
}
