package loader

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
)

// readParquet reads a flat parquet file into the raw table shape. Cell
// values are rendered as strings so detection and validation follow the
// same path as CSV input. DATE and TIMESTAMP logical types render as
// calendar days.
func readParquet(path string) (*rawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", path, err)
	}

	pf, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("cannot parse parquet %s: %w", path, err)
	}

	fields := pf.Schema().Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name()
	}

	table := &rawTable{Columns: columns}
	buf := make([]parquet.Row, 256)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				cells := make([]string, len(fields))
				for _, v := range row {
					col := int(v.Column())
					if col >= 0 && col < len(cells) {
						cells[col] = renderValue(v, fields[col])
					}
				}
				table.Rows = append(table.Rows, cells)
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("cannot read parquet rows: %w", err)
			}
		}
		_ = rows.Close()
	}

	return table, nil
}

// renderValue converts a parquet value into its string cell.
func renderValue(v parquet.Value, field parquet.Field) string {
	if v.IsNull() {
		return ""
	}

	if lt := field.Type().LogicalType(); lt != nil {
		switch {
		case lt.Date != nil:
			days := int64(v.Int32())
			if v.Kind() == parquet.Int64 {
				days = v.Int64()
			}
			return time.Unix(0, 0).UTC().AddDate(0, 0, int(days)).Format("2006-01-02")
		case lt.Timestamp != nil:
			return renderTimestamp(v.Int64(), lt.Timestamp.Unit)
		}
	}

	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 64)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	default:
		return string(v.ByteArray())
	}
}

// renderTimestamp formats an epoch timestamp at the declared unit.
func renderTimestamp(ts int64, unit format.TimeUnit) string {
	var t time.Time
	switch {
	case unit.Millis != nil:
		t = time.UnixMilli(ts)
	case unit.Micros != nil:
		t = time.UnixMicro(ts)
	default:
		t = time.Unix(0, ts)
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
