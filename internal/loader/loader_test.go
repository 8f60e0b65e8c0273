package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salecast/salecast/internal/contract"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBasic(t *testing.T) {
	path := writeTempCSV(t, `OrderDate,Sales,Quantity,Category
2024-01-01,100.50,3,Food
2024-01-02,"$1,250.00",2,Electronics
2024-01-03,90,1,Home
`)

	result, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Series.Len())
	assert.Equal(t, 100.50, result.Series.Values[0])
	assert.Equal(t, 1250.00, result.Series.Values[1])
	assert.Equal(t, "OrderDate", result.Quality.DateColumn)
	assert.Equal(t, "Sales", result.Quality.SalesColumn)
	assert.Equal(t, 3, result.Quality.RowsKept)
	assert.Equal(t, 3, result.Records[0].Quantity)
	assert.Equal(t, "Food", result.Records[0].Category)
}

func TestLoadAggregatesDuplicates(t *testing.T) {
	path := writeTempCSV(t, `date,amount
2024-01-01,100
2024-01-01,50
2024-01-03,25
`)

	result, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Series.Len())
	assert.Equal(t, 150.0, result.Series.Values[0])
	assert.Equal(t, 1, result.Quality.DuplicateDates)
	assert.Equal(t, 1, result.Quality.CalendarGaps) // 2024-01-02 missing
}

func TestLoadSortsOutOfOrderRows(t *testing.T) {
	path := writeTempCSV(t, `date,sales
2024-01-03,30
2024-01-01,10
2024-01-02,20
`)

	result, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, result.Series.Values)
	assert.True(t, result.Series.Dates[0].Before(result.Series.Dates[1]))
}

func TestLoadCountsNegatives(t *testing.T) {
	path := writeTempCSV(t, `date,sales
2024-01-01,-5
2024-01-02,10
`)

	result, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Quality.NegativeValues)
	assert.Equal(t, -5.0, result.Series.Values[0]) // kept, not dropped
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{
			name:    "missing date column",
			content: "sales,qty\n10,1\n",
			target:  &contract.SchemaError{},
		},
		{
			name:    "missing sales column",
			content: "date,qty\n2024-01-01,1\n",
			target:  &contract.SchemaError{},
		},
		{
			name:    "bad date cell",
			content: "date,sales\nnot-a-date,10\n",
			target:  &contract.DataQualityError{},
		},
		{
			name:    "non-numeric sales cell",
			content: "date,sales\n2024-01-01,abc\n",
			target:  &contract.DataQualityError{},
		},
		{
			name:    "no data rows",
			content: "date,sales\n",
			target:  &contract.DataQualityError{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempCSV(t, tc.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.ErrorAs(t, err, &tc.target)
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.txt")
	require.NoError(t, os.WriteFile(path, []byte("date,sales\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported file format")
}

func TestDetectColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    Columns
	}{
		{
			name:    "exact names",
			columns: []string{"date", "sales"},
			want:    Columns{Date: 0, Sales: 1, Quantity: -1, Category: -1},
		},
		{
			name:    "substring match is case-insensitive",
			columns: []string{"OrderDate", "Total Revenue", "Qty", "Segment"},
			want:    Columns{Date: 0, Sales: 1, Quantity: 2, Category: 3},
		},
		{
			name:    "amount counts as sales",
			columns: []string{"txn_date", "amount"},
			want:    Columns{Date: 0, Sales: 1, Quantity: -1, Category: -1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectColumns("in.csv", tc.columns)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{
		"2024-03-05",
		"2024-03-05 14:30:00",
		"2024/03/05",
		"03/05/2024",
		"05-Mar-2024",
	} {
		got, err := parseDate(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := parseDate("")
	assert.Error(t, err)
	_, err = parseDate("13/45/2024")
	assert.Error(t, err)
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "10", want: 10},
		{input: " 10.5 ", want: 10.5},
		{input: "$1,250.75", want: 1250.75},
		{input: "-3", want: -3},
		{input: "", wantErr: true},
		{input: "n/a", wantErr: true},
	}

	for _, tc := range tests {
		got, err := parseNumeric(tc.input)
		if tc.wantErr {
			assert.Error(t, err, tc.input)
			continue
		}
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}
