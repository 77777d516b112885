package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aherrada/gridclean/core/clean"
	"github.com/aherrada/gridclean/infra/logger"
	"github.com/aherrada/gridclean/pkg/export"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [input.csv]",
	Short: "Clean the dataset without decomposing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	logg := logger.New("clean-command")

	cleaner, err := clean.NewCleaner(cfg.Cleaning, logg, nil)
	if err != nil {
		return err
	}
	ds, rep, err := cleaner.LoadAndClean(cfg.Input)
	if err != nil {
		var bge *clean.BoundaryGapError
		if !errors.As(err, &bge) {
			return err
		}
		logg.Warnf("boundary gaps left unfilled: %v", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}
	out, err := os.Create(filepath.Join(cfg.OutputDir, "cleaned.csv"))
	if err != nil {
		return err
	}
	defer out.Close()
	if err := export.WriteDatasetCSV(out, ds); err != nil {
		return err
	}

	repFile, err := os.Create(filepath.Join(cfg.OutputDir, "report.json"))
	if err != nil {
		return err
	}
	defer repFile.Close()
	return export.WriteReportJSON(repFile, rep)
}
