package loader

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readCSV reads a CSV file into the raw table shape. The first row is the
// header; ragged rows are tolerated and filtered later.
func readCSV(path string) (*rawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // header decides; data rows may be ragged
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse CSV %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("file %s is empty", path)
	}

	return &rawTable{Columns: all[0], Rows: all[1:]}, nil
}
