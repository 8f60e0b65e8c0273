// main is the entry point for the salecast CLI.
package main

import (
	"github.com/salecast/salecast/cmd"
	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/internal/runstore"
)

func main() {
	err := cmd.Execute()

	// Close the run-history store before any fatal exit.
	runstore.CloseStore()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
