package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aherrada/gridclean/app"
	"github.com/aherrada/gridclean/config"
	"github.com/aherrada/gridclean/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "gridclean [input.csv]",
	Short: "Clean the hourly generation dataset and decompose every source",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if cfg.Input == "" {
		return nil, fmt.Errorf("no input file: set input in config or pass it as argument")
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	res, err := svc.Run(ctx)
	if err != nil {
		if res == nil {
			return err
		}
		logger.New("main").Warnf("completed with unfilled boundary gaps: %v", err)
	}
	logger.New("main").Infof("run %s: %d rows cleaned, %d sources decomposed",
		res.Report.RunID, res.Report.Rows, len(res.Decompositions))
	return nil
}
