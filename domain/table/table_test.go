package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultIndex(t *testing.T) {
	tbl, err := New([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "0", tbl.Index(0))
	assert.Equal(t, "1", tbl.Index(1))

	v, err := tbl.Value(1, "b")
	require.NoError(t, err)
	assert.Equal(t, "4", v)
}

func TestNew_Errors(t *testing.T) {
	_, err := New([]string{"a"}, [][]string{{"1", "2"}})
	assert.ErrorIs(t, err, ErrRowWidth)

	_, err = New([]string{"a"}, [][]string{{"1"}, {"2"}}, WithIndex([]string{"x", "x"}))
	assert.ErrorIs(t, err, ErrDuplicateIndex)

	_, err = New([]string{"a"}, [][]string{{"1"}}, WithIndex([]string{"x", "y"}))
	assert.Error(t, err)
}

func TestTable_CopiesInput(t *testing.T) {
	rows := [][]string{{"1"}}
	tbl, err := New([]string{"a"}, rows)
	require.NoError(t, err)

	rows[0][0] = "changed"
	assert.Equal(t, []string{"1"}, tbl.Row(0))

	row := tbl.Row(0)
	row[0] = "changed"
	assert.Equal(t, []string{"1"}, tbl.Row(0))
}

func TestTable_Subset(t *testing.T) {
	tbl, err := New([]string{"a"}, [][]string{{"x"}, {"y"}, {"z"}}, WithIndex([]string{"r1", "r2", "r3"}))
	require.NoError(t, err)

	sub := tbl.Subset([]int{2, 0})
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, "r3", sub.Index(0))
	assert.Equal(t, []string{"z"}, sub.Row(0))
	assert.Equal(t, "r1", sub.Index(1))
}

func TestTable_ValueMissingColumn(t *testing.T) {
	tbl, err := New([]string{"a"}, [][]string{{"1"}})
	require.NoError(t, err)

	_, err = tbl.Value(0, "nope")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestTable_Records(t *testing.T) {
	tbl, err := New([]string{"a", "b"}, [][]string{{"1", "2"}})
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{{"a": "1", "b": "2"}}, tbl.Records())
}
