package runstore

import (
	"errors"
	"fmt"

	"github.com/salecast/salecast/internal/parquet"
)

// ExecuteHistoryExport performs the actual export of run history to Parquet files.
func ExecuteHistoryExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run history is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total model scores: %d\n", status.TableSizes[modelScoresTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	scores, err := store.GetAllModelScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve model scores: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetScores := parquet.ConvertModelScoreRecords(scores)

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteForecastRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	scoresFile := outputFile + ".model_scores.parquet"
	if err := parquet.WriteModelScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write model scores: %w", err)
	}
	fmt.Printf("Exported %d model scores to: %s\n", len(parquetScores), scoresFile)

	return nil
}
