package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aherrada/gridclean/core/clean"
	"github.com/aherrada/gridclean/core/decompose"
	"github.com/aherrada/gridclean/infra/logger"
	"github.com/aherrada/gridclean/pkg/export"
)

var decomposeSource string

var decomposeCmd = &cobra.Command{
	Use:   "decompose [input.csv]",
	Short: "Clean the dataset and decompose one source to stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDecompose,
}

func init() {
	decomposeCmd.Flags().StringVarP(&decomposeSource, "source", "s", "", "generation source column to decompose")
	rootCmd.AddCommand(decomposeCmd)
}

func runDecompose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if decomposeSource == "" {
		return fmt.Errorf("--source is required")
	}
	logg := logger.New("decompose-command")

	cleaner, err := clean.NewCleaner(cfg.Cleaning, logg, nil)
	if err != nil {
		return err
	}
	ds, _, err := cleaner.LoadAndClean(cfg.Input)
	if err != nil {
		var bge *clean.BoundaryGapError
		if !errors.As(err, &bge) {
			return err
		}
		logg.Warnf("boundary gaps left unfilled: %v", err)
	}

	series := ds.Series(decomposeSource)
	if series == nil {
		return fmt.Errorf("column %q not in cleaned dataset", decomposeSource)
	}
	res, err := decompose.Decompose(series, cfg.Decompose.Period)
	if err != nil {
		return fmt.Errorf("decompose %s: %w", decomposeSource, err)
	}
	return export.WriteDecompositionCSV(os.Stdout, ds.Times, series, res)
}
