package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "events.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestLoadCSV_Latency(t *testing.T) {
	path := writeTempCSV(t, "Time,NumOfOrders\n1000,1\n2000,2\n5000,3\n")
	ds, err := LoadCSV(path, OrdersColumn)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []float64{1000, 2000, 5000}, ds.Times())
	assert.Equal(t, []float64{1, 2, 3}, ds.Values())
	assert.Equal(t, OrdersColumn, ds.ValueColumn)
	assert.False(t, ds.Rebased())
}

func TestLoadCSV_IgnoresExtraColumns(t *testing.T) {
	// 与 benchmark 输出一致：Price,Volume,Time
	path := writeTempCSV(t, "Price,Volume,Time\n10001,5,100\n10002,7,250\n\n")
	ds, err := LoadCSV(path, PriceColumn)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 250}, ds.Times())
	assert.Equal(t, []float64{10001, 10002}, ds.Values())
}

func TestLoadCSV_HeaderWithBOMAndSpaces(t *testing.T) {
	path := writeTempCSV(t, "\ufeffTime, Price\n1, 2.5\n")
	ds, err := LoadCSV(path, PriceColumn)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5}, ds.Values())
}

func TestLoadCSV_InputErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		column  string
		kind    InputErrorKind
	}{
		{name: "empty file", content: "", column: PriceColumn, kind: InputEmpty},
		{name: "header only", content: "Time,Price\n", column: PriceColumn, kind: InputEmpty},
		{name: "no time column", content: "Stamp,Price\n1,2\n", column: PriceColumn, kind: InputColumn},
		{name: "no value column", content: "Time,Volume\n1,2\n", column: PriceColumn, kind: InputColumn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempCSV(t, tc.content)
			_, err := LoadCSV(path, tc.column)
			var inErr *InputError
			require.True(t, errors.As(err, &inErr), "want InputError, got %v", err)
			assert.Equal(t, tc.kind, inErr.Kind)
		})
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), PriceColumn)
	var inErr *InputError
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, InputMissing, inErr.Kind)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadCSV_FormatError(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Time,Price\n1,100\nabc,101\n"), "mem", PriceColumn)
	var fmtErr *FormatError
	require.True(t, errors.As(err, &fmtErr), "want FormatError, got %v", err)
	assert.Equal(t, 3, fmtErr.Row)
	assert.Equal(t, TimeColumn, fmtErr.Column)
	assert.Equal(t, "abc", fmtErr.Raw)

	_, err = ReadCSV(strings.NewReader("Time,Price\n1,x\n"), "mem", PriceColumn)
	require.True(t, errors.As(err, &fmtErr))
	assert.Equal(t, PriceColumn, fmtErr.Column)
}

func TestReadCSV_FormatErrorLineAfterBlankLines(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Time,Price\n1,100\n\n\n4,x\n"), "mem", PriceColumn)
	var fmtErr *FormatError
	require.True(t, errors.As(err, &fmtErr), "want FormatError, got %v", err)
	assert.Equal(t, 5, fmtErr.Row)
	assert.Equal(t, PriceColumn, fmtErr.Column)
}

func TestReadCSV_ParseErrorLine(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Time,Price\n1,100\n\n2,\"10\"1\n"), "mem", PriceColumn)
	var fmtErr *FormatError
	require.True(t, errors.As(err, &fmtErr), "want FormatError, got %v", err)
	assert.Equal(t, 4, fmtErr.Row)
}

func TestReadCSV_ShortRow(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Price,Volume,Time\n1,2\n"), "mem", PriceColumn)
	var fmtErr *FormatError
	require.True(t, errors.As(err, &fmtErr))
	assert.Equal(t, TimeColumn, fmtErr.Column)
}
