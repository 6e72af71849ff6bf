package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	input := "code,name,qty\nP-1,Kebab,2\nP-2,Dough,3\n"

	table, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "name", "qty"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "P-1", table.Rows[0].Get("code"))
	assert.Equal(t, "Dough", table.Rows[1].Get("name"))
	assert.Equal(t, 2, table.Rows[0].LineNumber)
	assert.Equal(t, 3, table.Rows[1].LineNumber)
}

func TestParse_StripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFcode,qty\nP-1,2\n"

	table, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.True(t, table.HasColumn("code"), "BOM must not stick to the first header")
}

func TestParse_RejectsNonUTF8(t *testing.T) {
	// Latin-1 encoded bytes, not valid UTF-8
	input := "code,name\nP-1,caf\xe9\n"

	_, err := Parse(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParse_SkipsBlankRows(t *testing.T) {
	input := "code,qty\nP-1,2\n,\nP-2,3\n"

	table, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "P-2", table.Rows[1].Get("code"))
}

func TestParse_ShortRowYieldsEmptyString(t *testing.T) {
	input := "code,name,qty\nP-1\n"

	table, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "P-1", table.Rows[0].Get("code"))
	assert.Equal(t, "", table.Rows[0].Get("qty"))
	assert.Equal(t, "", table.Rows[0].Get("missing column"))
}

func TestParse_TrimsWhitespace(t *testing.T) {
	input := " code , name \n P-1 ,  Kebab \n"

	table, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.True(t, table.HasColumn("code"))
	assert.Equal(t, "Kebab", table.Rows[0].Get("name"))
}

func TestParse_CustomDelimiter(t *testing.T) {
	input := "code;qty\nP-1;2\n"

	table, err := Parse(strings.NewReader(input), WithDelimiter(';'))
	require.NoError(t, err)

	assert.Equal(t, "2", table.Rows[0].Get("qty"))
}

func TestParse_MaxRows(t *testing.T) {
	input := "code\nA\nB\nC\n"

	table, err := Parse(strings.NewReader(input), WithMaxRows(2))
	require.NoError(t, err)

	assert.Len(t, table.Rows, 2)
}

func TestMissingColumns(t *testing.T) {
	table, err := Parse(strings.NewReader("code,qty\nP-1,1\n"))
	require.NoError(t, err)

	assert.Empty(t, table.MissingColumns("code", "qty"))
	assert.Equal(t, []string{"price"}, table.MissingColumns("code", "price"))
}

func TestParse_PersianContent(t *testing.T) {
	input := "کد,نام,تعداد\nP-1,کباب,2\n"

	table, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.True(t, table.HasColumn("کد"))
	assert.Equal(t, "کباب", table.Rows[0].Get("نام"))
}
