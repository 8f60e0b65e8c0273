package loader

import (
	"strings"

	"github.com/salecast/salecast/internal/contract"
)

// Columns holds the detected column indexes. Quantity and Category are -1
// when absent; Date and Sales are always valid after DetectColumns.
type Columns struct {
	Date     int
	Sales    int
	Quantity int
	Category int
}

// Substrings that identify each column role, matched case-insensitively.
var (
	dateHints     = []string{"date", "time"}
	salesHints    = []string{"sales", "amount", "revenue"}
	quantityHints = []string{"quantity", "qty", "units"}
	categoryHints = []string{"category", "segment"}
)

// DetectColumns identifies the date and sales columns by name. The first
// column matching a hint wins. A missing date or sales column is a
// SchemaError; quantity and category are optional.
func DetectColumns(path string, columns []string) (Columns, error) {
	cols := Columns{
		Date:     findColumn(columns, dateHints),
		Sales:    findColumn(columns, salesHints),
		Quantity: findColumn(columns, quantityHints),
		Category: findColumn(columns, categoryHints),
	}

	if cols.Date < 0 {
		return cols, &contract.SchemaError{Path: path, Missing: "date", Columns: columns}
	}
	if cols.Sales < 0 {
		return cols, &contract.SchemaError{Path: path, Missing: "sales", Columns: columns}
	}
	return cols, nil
}

// findColumn returns the index of the first column whose name contains
// any hint, or -1.
func findColumn(columns []string, hints []string) int {
	for i, col := range columns {
		name := strings.ToLower(col)
		for _, hint := range hints {
			if strings.Contains(name, hint) {
				return i
			}
		}
	}
	return -1
}
