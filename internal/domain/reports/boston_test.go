package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treefnio/internal/core/types"
	"treefnio/internal/domain/documents/sale_batch"
)

func findProduct(t *testing.T, data []BostonData, productID string) BostonData {
	t.Helper()
	for _, d := range data {
		if d.ProductID == productID {
			return d
		}
	}
	t.Fatalf("product %s not in boston data", productID)
	return BostonData{}
}

func TestClassifyBoston_TwoPointGrowth(t *testing.T) {
	// Revenues 100 then 300 give growth ((300-100)/100)*100 = 200%
	batches := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01", testEntry("A", "Dining", "Kitchen", 1, "100", "0")),
		testBatch(t, "1402/01/10", testEntry("A", "Dining", "Kitchen", 1, "300", "0")),
	}

	data := ClassifyBoston(batches, types.MustMoney("400"))

	require.Len(t, data, 1)
	assert.True(t, decimal.NewFromInt(200).Equal(data[0].MarketGrowth),
		"growth = %s", data[0].MarketGrowth)
}

func TestClassifyBoston_GrowthUsesBatchDateOrder(t *testing.T) {
	// Batches arrive out of order; the series must be sorted by date
	batches := []*sale_batch.SaleBatch{
		testBatch(t, "1402/02/01", testEntry("A", "Dining", "Kitchen", 1, "50", "0")),
		testBatch(t, "1402/01/01", testEntry("A", "Dining", "Kitchen", 1, "100", "0")),
	}

	data := ClassifyBoston(batches, types.MustMoney("150"))

	require.Len(t, data, 1)
	// First sale 100, last sale 50: growth -50%
	assert.True(t, decimal.NewFromInt(-50).Equal(data[0].MarketGrowth),
		"growth = %s", data[0].MarketGrowth)
}

func TestClassifyBoston_ZeroFirstRevenueGrowthIsZero(t *testing.T) {
	batches := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01", testEntry("A", "Dining", "Kitchen", 0, "0", "0")),
	}

	data := ClassifyBoston(batches, types.Zero())

	require.Len(t, data, 1)
	assert.True(t, data[0].MarketGrowth.IsZero())
	assert.True(t, data[0].MarketShare.IsZero())
}

func TestClassifyBoston_SharesSumToHundred(t *testing.T) {
	batches := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01",
			testEntry("A", "Dining", "Kitchen", 1, "60", "0"),
			testEntry("B", "Dining", "Kitchen", 1, "25", "0"),
			testEntry("C", "Dining", "Kitchen", 1, "15", "0")),
	}

	engine := NewEngine(nil)
	report := engine.AggregateRange(batches, "1402/01/01", "1402/01/01")
	data := ClassifyBoston(batches, report.Overall.TotalRevenue)

	sum := decimal.Zero
	for _, d := range data {
		sum = sum.Add(d.MarketShare)
	}
	assert.True(t, decimal.NewFromInt(100).Equal(sum), "shares sum to %s", sum)
}

func TestClassifyBoston_Classification(t *testing.T) {
	cases := []struct {
		name   string
		share  int64
		growth int64
		want   string
	}{
		{"high share growing", 60, 10, ClassStar},
		{"high share at zero growth", 60, 0, ClassStar},
		{"high share shrinking", 60, -5, ClassCashCow},
		{"low share growing", 20, 10, ClassQuestionMark},
		{"low share shrinking", 20, -10, ClassDog},
		{"share exactly at threshold", 50, 0, ClassStar},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := BostonData{
				MarketShare:  decimal.NewFromInt(tc.share),
				MarketGrowth: decimal.NewFromInt(tc.growth),
			}
			assert.Equal(t, tc.want, d.Classification())
		})
	}
}

func TestClassifyBoston_StarAndCashCowExample(t *testing.T) {
	// Product A earns 60 of the overall 100: share 60% with growth >= 0
	// classifies Star, the same share with falling revenue is a Cash Cow
	grow := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01", testEntry("A", "Dining", "Kitchen", 1, "20", "0")),
		testBatch(t, "1402/01/05", testEntry("A", "Dining", "Kitchen", 1, "40", "0")),
		testBatch(t, "1402/01/09", testEntry("B", "Dining", "Kitchen", 1, "40", "0")),
	}
	data := ClassifyBoston(grow, types.MustMoney("100"))
	a := findProduct(t, data, "A")
	assert.True(t, decimal.NewFromInt(60).Equal(a.MarketShare))
	assert.Equal(t, ClassStar, a.Classification())

	shrink := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01", testEntry("A", "Dining", "Kitchen", 1, "40", "0")),
		testBatch(t, "1402/01/05", testEntry("A", "Dining", "Kitchen", 1, "20", "0")),
		testBatch(t, "1402/01/09", testEntry("B", "Dining", "Kitchen", 1, "40", "0")),
	}
	data = ClassifyBoston(shrink, types.MustMoney("100"))
	a = findProduct(t, data, "A")
	assert.Equal(t, ClassCashCow, a.Classification())
}

func TestClassifyBoston_UnresolvedProductStillRenders(t *testing.T) {
	batches := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01", testEntry("", "", "", 1, "100", "0")),
	}

	data := ClassifyBoston(batches, types.MustMoney("100"))

	require.Len(t, data, 1)
	assert.Equal(t, UnknownProductName, data[0].Name)
	assert.Equal(t, UnknownProductCode, data[0].Code)
	assert.True(t, decimal.NewFromInt(100).Equal(data[0].MarketShare))
}

func TestClassifyBoston_SortedByRevenueDesc(t *testing.T) {
	batches := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01",
			testEntry("A", "Dining", "Kitchen", 1, "10", "0"),
			testEntry("B", "Dining", "Kitchen", 1, "90", "0")),
	}

	data := ClassifyBoston(batches, types.MustMoney("100"))

	require.Len(t, data, 2)
	assert.Equal(t, "B", data[0].ProductID)
	assert.Equal(t, "A", data[1].ProductID)
}
