package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readExcel reads the first sheet of an xlsx workbook into the raw table
// shape. Cells come back as formatted strings, same as the CSV path.
func readExcel(path string) (*rawTable, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	return &rawTable{Columns: rows[0], Rows: rows[1:]}, nil
}
