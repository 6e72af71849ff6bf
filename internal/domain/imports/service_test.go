package imports

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treefnio/internal/core/types"
	"treefnio/internal/domain"
	"treefnio/internal/domain/catalogs/product"
	"treefnio/pkg/csvimport"
)

// fakeProductRepo serves a fixed product list; only List is implemented.
type fakeProductRepo struct {
	product.Repository
	items []*product.Product
}

func (f *fakeProductRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	return domain.ListResult[*product.Product]{
		Items:      f.items,
		TotalCount: int64(len(f.items)),
	}, nil
}

func testCatalog() *fakeProductRepo {
	return &fakeProductRepo{items: []*product.Product{
		product.NewProduct("P-100", "Kebab"),
		product.NewProduct("P-200", "Dough"),
	}}
}

func parseTable(t *testing.T, csv string) *csvimport.Table {
	t.Helper()
	table, err := csvimport.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	return table
}

func TestColumnMapping_Validate(t *testing.T) {
	assert.Error(t, ColumnMapping{UnitPrice: "p"}.Validate(), "quantity required")
	assert.Error(t, ColumnMapping{Quantity: "q"}.Validate(), "price required")
	assert.Error(t, ColumnMapping{Quantity: "q", UnitPrice: "p"}.Validate(),
		"code or name required")
	assert.NoError(t, ColumnMapping{Quantity: "q", UnitPrice: "p", ProductName: "n"}.Validate())
}

func TestPreview_MatchesByCode(t *testing.T) {
	svc := NewService(testCatalog(), nil)
	table := parseTable(t, "item,count,price\nP-100,2,150\n")

	preview, err := svc.Preview(context.Background(), table, ColumnMapping{
		ProductCode: "item",
		Quantity:    "count",
		UnitPrice:   "price",
	})
	require.NoError(t, err)

	require.Len(t, preview.Rows, 1)
	row := preview.Rows[0]
	assert.Equal(t, RowMatched, row.Status)
	require.NotNil(t, row.ProductID)
	assert.Equal(t, "Kebab", row.ProductName)
	assert.Equal(t, types.NewQuantityFromFloat64(2), row.Quantity)
	assert.True(t, types.MustMoney("150").Equal(row.UnitPrice))
	assert.Equal(t, 1, preview.Matched)
}

func TestPreview_FallsBackToName(t *testing.T) {
	svc := NewService(testCatalog(), nil)
	table := parseTable(t, "code,name,qty,price\nNO-SUCH,dough,1,80\n")

	preview, err := svc.Preview(context.Background(), table, ColumnMapping{
		ProductCode: "code",
		ProductName: "name",
		Quantity:    "qty",
		UnitPrice:   "price",
	})
	require.NoError(t, err)

	row := preview.Rows[0]
	assert.Equal(t, RowMatched, row.Status, "name match is case-insensitive")
	assert.Equal(t, "P-200", row.ProductCode)
}

func TestPreview_UnmatchedRowKept(t *testing.T) {
	svc := NewService(testCatalog(), nil)
	table := parseTable(t, "name,qty,price\nMystery Dish,1,50\n")

	preview, err := svc.Preview(context.Background(), table, ColumnMapping{
		ProductName: "name",
		Quantity:    "qty",
		UnitPrice:   "price",
	})
	require.NoError(t, err)

	require.Len(t, preview.Rows, 1)
	assert.Equal(t, RowUnmatched, preview.Rows[0].Status)
	assert.Nil(t, preview.Rows[0].ProductID)
	assert.Equal(t, "Mystery Dish", preview.Rows[0].ProductName)
	assert.Equal(t, 1, preview.Unmatched)
}

func TestPreview_InvalidRows(t *testing.T) {
	svc := NewService(testCatalog(), nil)
	table := parseTable(t, "name,qty,price,date\nKebab,abc,100,1402/01/01\nKebab,1,100,99/99\n")

	preview, err := svc.Preview(context.Background(), table, ColumnMapping{
		ProductName: "name",
		Quantity:    "qty",
		UnitPrice:   "price",
		SaleDate:    "date",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, preview.Invalid)
	assert.Equal(t, RowInvalid, preview.Rows[0].Status)
	assert.Contains(t, preview.Rows[0].Problem, "quantity")
	assert.Contains(t, preview.Rows[1].Problem, "sale date")
}

func TestPreview_MissingMappedColumn(t *testing.T) {
	svc := NewService(testCatalog(), nil)
	table := parseTable(t, "name,qty\nKebab,1\n")

	_, err := svc.Preview(context.Background(), table, ColumnMapping{
		ProductName: "name",
		Quantity:    "qty",
		UnitPrice:   "price",
	})
	assert.Error(t, err)
}

func TestPreview_PersianDigits(t *testing.T) {
	svc := NewService(testCatalog(), nil)
	table := parseTable(t, "name,qty,price\nKebab,۲,۱۲٬۵۰۰\n")

	preview, err := svc.Preview(context.Background(), table, ColumnMapping{
		ProductName: "name",
		Quantity:    "qty",
		UnitPrice:   "price",
	})
	require.NoError(t, err)

	row := preview.Rows[0]
	assert.Equal(t, RowMatched, row.Status)
	assert.Equal(t, types.NewQuantityFromFloat64(2), row.Quantity)
	assert.True(t, types.MustMoney("12500").Equal(row.UnitPrice))
}

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "12500", normalizeDigits("۱۲٬۵۰۰"))
	assert.Equal(t, "1234", normalizeDigits("١٢٣٤"))
	assert.Equal(t, "1000.50", normalizeDigits(" 1,000.50 "))
}
