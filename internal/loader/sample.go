package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/salecast/salecast/schema"
)

// Sample generation bounds. Four years of daily history gives every
// seasonal window at least four full cycles to learn from.
var (
	sampleStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	sampleEnd   = time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
)

var sampleCategories = []string{"Electronics", "Clothing", "Food", "Home"}

// GenerateSample synthesizes a deterministic daily sales history with a
// linear trend, a yearly sine seasonality, and Gaussian noise floored at
// a minimum so sales stay positive.
func GenerateSample(seed int64) []schema.SalesRecord {
	days := int(sampleEnd.Sub(sampleStart).Hours()/24) + 1
	rng := rand.New(rand.NewSource(seed))

	records := make([]schema.SalesRecord, 0, days)
	for i := 0; i < days; i++ {
		trend := 100 * float64(i) / float64(days-1)
		seasonal := 50 * math.Sin(2*math.Pi*float64(i)/365)
		noise := rng.NormFloat64() * 20

		sales := 500 + trend + seasonal + noise
		if sales < 100 {
			sales = 100
		}

		records = append(records, schema.SalesRecord{
			Date:     sampleStart.AddDate(0, 0, i),
			Sales:    math.Round(sales*100) / 100,
			Quantity: 1 + rng.Intn(19),
			Category: sampleCategories[rng.Intn(len(sampleCategories))],
		})
	}
	return records
}

// WriteSampleCSV writes the generated history to path in the column
// layout the loader auto-detects.
func WriteSampleCSV(path string, seed int64) (int, error) {
	records := GenerateSample(seed)

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"OrderDate", "Sales", "Quantity", "Category"}); err != nil {
		return 0, fmt.Errorf("cannot write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Date.Format(schema.DateFormat),
			strconv.FormatFloat(rec.Sales, 'f', 2, 64),
			strconv.Itoa(rec.Quantity),
			rec.Category,
		}
		if err := writer.Write(row); err != nil {
			return 0, fmt.Errorf("cannot write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("cannot flush %s: %w", path, err)
	}
	return len(records), nil
}
