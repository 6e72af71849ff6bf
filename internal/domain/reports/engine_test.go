package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treefnio/internal/core/types"
	"treefnio/internal/domain/documents/sale_batch"
)

func testEntry(productID, dept, seg string, qty float64, unitPrice, materialCost string) sale_batch.SaleEntry {
	e := sale_batch.SaleEntry{
		SaleDepartment:    dept,
		ProductionSegment: seg,
		Quantity:          types.NewQuantityFromFloat64(qty),
		UnitPrice:         types.MustMoney(unitPrice),
		MaterialCost:      types.MustMoney(materialCost),
	}
	// An empty productID models an unresolved entry: no reference and no
	// denormalized name or code, only the imported numbers.
	if productID != "" {
		e.ProductID = &productID
		e.ProductName = "Product " + productID
		e.ProductCode = "P-" + productID
	}
	return e
}

func testBatch(t *testing.T, date string, entries ...sale_batch.SaleEntry) *sale_batch.SaleBatch {
	t.Helper()
	b := sale_batch.NewSaleBatch(date)
	for _, e := range entries {
		b.AddLine(e)
	}
	return b
}

func moneyEqual(t *testing.T, expected string, actual types.Money, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, types.MustMoney(expected).Equal(actual),
		"expected %s, got %s", expected, actual.String())
}

func TestAggregateRange_SingleBatch(t *testing.T) {
	batch := testBatch(t, "1402/01/01",
		testEntry("A", "Dining", "Kitchen", 2, "100", "50"))

	engine := NewEngine(nil)
	report := engine.AggregateRange([]*sale_batch.SaleBatch{batch}, "1402/01/01", "1402/01/01")

	assert.Equal(t, types.NewQuantityFromFloat64(2), report.Overall.TotalUnits)
	moneyEqual(t, "200", report.Overall.TotalRevenue)
	moneyEqual(t, "50", report.Overall.TotalCost)
	moneyEqual(t, "150", report.Overall.NetRevenue)

	require.Contains(t, report.ByDepartment, "Dining")
	require.Contains(t, report.ByProductionSegment, "Kitchen")

	dep := report.ByDepartment["Dining"]
	moneyEqual(t, "200", dep.TotalRevenue)
	moneyEqual(t, "150", dep.NetRevenue)
	require.Len(t, dep.Products, 1)
	assert.Equal(t, "A", dep.Products[0].ProductID)
	moneyEqual(t, "150", dep.Products[0].NetRevenue)
}

func TestAggregateRange_InclusiveBounds(t *testing.T) {
	batches := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01", testEntry("A", "Dining", "Kitchen", 1, "100", "0")),
		testBatch(t, "1402/01/15", testEntry("A", "Dining", "Kitchen", 1, "100", "0")),
		testBatch(t, "1402/02/01", testEntry("A", "Dining", "Kitchen", 1, "100", "0")),
		testBatch(t, "1402/02/02", testEntry("A", "Dining", "Kitchen", 1, "100", "0")),
	}

	engine := NewEngine(nil)
	report := engine.AggregateRange(batches, "1402/01/15", "1402/02/01")

	// Both boundary dates are included, the two outside are not
	moneyEqual(t, "200", report.Overall.TotalRevenue)
}

func TestAggregateRange_BucketSumsMatchOverall(t *testing.T) {
	batches := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01",
			testEntry("A", "Dining", "Kitchen", 2, "100", "40"),
			testEntry("B", "Takeaway", "Bar", 1, "75.50", "20.25"),
			testEntry("C", "Dining", "Bar", 3, "33.40", "10")),
		testBatch(t, "1402/01/05",
			testEntry("A", "Dining", "Kitchen", 1, "100", "20"),
			testEntry("D", "Delivery", "Pastry", 4, "12.25", "5.75")),
	}

	engine := NewEngine(nil)
	report := engine.AggregateRange(batches, "1402/01/01", "1402/01/29")

	depRevenue := types.Zero()
	depCost := types.Zero()
	for _, bucket := range report.ByDepartment {
		depRevenue = depRevenue.Add(bucket.TotalRevenue)
		depCost = depCost.Add(bucket.TotalCost)
		assert.True(t, bucket.NetRevenue.Equal(bucket.TotalRevenue.Sub(bucket.TotalCost)))
	}
	assert.True(t, depRevenue.Equal(report.Overall.TotalRevenue),
		"department revenues must sum to overall")
	assert.True(t, depCost.Equal(report.Overall.TotalCost))

	segRevenue := types.Zero()
	for _, bucket := range report.ByProductionSegment {
		segRevenue = segRevenue.Add(bucket.TotalRevenue)
	}
	assert.True(t, segRevenue.Equal(report.Overall.TotalRevenue),
		"segment revenues must sum to overall")

	assert.True(t, report.Overall.NetRevenue.Equal(
		report.Overall.TotalRevenue.Sub(report.Overall.TotalCost)))
}

func TestAggregateRange_UnknownBucket(t *testing.T) {
	// Entry with no resolvable department/segment lands in the explicit
	// unknown bucket, not under an empty-string key
	batch := testBatch(t, "1402/01/01",
		testEntry("", "", "", 1, "100", "0"))

	engine := NewEngine(nil)
	report := engine.AggregateRange([]*sale_batch.SaleBatch{batch}, "1402/01/01", "1402/01/01")

	require.Contains(t, report.ByDepartment, UnknownBucket)
	require.NotContains(t, report.ByDepartment, "")
	require.Contains(t, report.ByProductionSegment, UnknownBucket)

	products := report.ByDepartment[UnknownBucket].Products
	require.Len(t, products, 1)
	assert.Equal(t, UnknownProductName, products[0].Name)
	assert.Equal(t, UnknownProductCode, products[0].Code)
}

func TestAggregateRange_EmptyBatchAndNoBatches(t *testing.T) {
	engine := NewEngine(nil)

	// Zero batches: all-zero totals, empty maps, no error
	report := engine.AggregateRange(nil, "1402/01/01", "1402/12/29")
	assert.True(t, report.Overall.TotalRevenue.IsZero())
	assert.Empty(t, report.ByDepartment)
	assert.Empty(t, report.ByProductionSegment)

	// A batch with zero entries contributes zero to every bucket
	report = engine.AggregateRange(
		[]*sale_batch.SaleBatch{testBatch(t, "1402/01/01")},
		"1402/01/01", "1402/12/29")
	assert.True(t, report.Overall.TotalRevenue.IsZero())
	assert.Empty(t, report.ByDepartment)
}

func TestAggregateSelection_EmptySetYieldsEmptyReport(t *testing.T) {
	batches := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01", testEntry("A", "Dining", "Kitchen", 2, "100", "50")),
	}

	engine := NewEngine(nil)
	report := engine.AggregateSelection(batches, nil)

	assert.True(t, report.Overall.TotalRevenue.IsZero())
	assert.Equal(t, types.Quantity(0), report.Overall.TotalUnits)
	assert.Empty(t, report.ByDepartment)
	assert.Empty(t, report.ByProductionSegment)
}

func TestAggregateSelection_FiltersByID(t *testing.T) {
	b1 := testBatch(t, "1402/01/01", testEntry("A", "Dining", "Kitchen", 1, "100", "0"))
	b2 := testBatch(t, "1402/01/02", testEntry("B", "Dining", "Kitchen", 1, "300", "0"))

	engine := NewEngine(nil)
	report := engine.AggregateSelection(
		[]*sale_batch.SaleBatch{b1, b2},
		[]string{b2.ID.String()})

	moneyEqual(t, "300", report.Overall.TotalRevenue)
	assert.Equal(t, "1402/01/02", report.TimeRange.Start)
	assert.Equal(t, "1402/01/02", report.TimeRange.End)
}

func TestAggregate_MergesProductAcrossBatches(t *testing.T) {
	batches := []*sale_batch.SaleBatch{
		testBatch(t, "1402/01/01", testEntry("A", "Dining", "Kitchen", 2, "100", "40")),
		testBatch(t, "1402/01/02", testEntry("A", "Dining", "Kitchen", 3, "100", "60")),
	}

	engine := NewEngine(nil)
	report := engine.AggregateRange(batches, "1402/01/01", "1402/01/02")

	dep := report.ByDepartment["Dining"]
	require.Len(t, dep.Products, 1)
	assert.Equal(t, types.NewQuantityFromFloat64(5), dep.Products[0].Units)
	moneyEqual(t, "500", dep.Products[0].Revenue)
	moneyEqual(t, "100", dep.Products[0].MaterialCost)
}

func TestAggregate_ProductsSortedByRevenueDesc(t *testing.T) {
	batch := testBatch(t, "1402/01/01",
		testEntry("A", "Dining", "Kitchen", 1, "50", "0"),
		testEntry("B", "Dining", "Kitchen", 1, "200", "0"),
		testEntry("C", "Dining", "Kitchen", 1, "125", "0"))

	engine := NewEngine(nil)
	report := engine.AggregateRange([]*sale_batch.SaleBatch{batch}, "1402/01/01", "1402/01/01")

	products := report.ByDepartment["Dining"].Products
	require.Len(t, products, 3)
	assert.Equal(t, "B", products[0].ProductID)
	assert.Equal(t, "C", products[1].ProductID)
	assert.Equal(t, "A", products[2].ProductID)
}

func TestAggregate_CustomCostFunc(t *testing.T) {
	batch := testBatch(t, "1402/01/01",
		testEntry("A", "Dining", "Kitchen", 2, "100", "999"))

	// Costing collaborator overrides the stored cost
	engine := NewEngine(func(entry sale_batch.SaleEntry) types.Money {
		return decimal.NewFromInt(30)
	})
	report := engine.AggregateRange([]*sale_batch.SaleBatch{batch}, "1402/01/01", "1402/01/01")

	moneyEqual(t, "30", report.Overall.TotalCost)
	moneyEqual(t, "170", report.Overall.NetRevenue)
}
