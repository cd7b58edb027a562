package main

import (
	"os"

	"github.com/lox/roulettelab/cmd/roulettelab/shared"
	"github.com/lox/roulettelab/internal/simulator"
)

// BatchCmd simulates many independent players at the same table rules.
type BatchCmd struct {
	TableFlags `embed:""`

	Runs    int `kong:"default='100',help='Number of independent players'"`
	Workers int `kong:"default='0',help='Parallel workers (0 uses every CPU)'"`
}

func (c *BatchCmd) Run(globals *Globals) error {
	logger, err := shared.SetupLogger(globals.LogLevel, globals.Verbose)
	if err != nil {
		return err
	}

	cfg, err := c.simulatorConfig(logger)
	if err != nil {
		return err
	}
	cfg.Runs = c.Runs
	cfg.Workers = c.Workers

	logger.Info("Starting batch",
		"wheel", cfg.Variant,
		"strategy", cfg.Strategy,
		"runs", cfg.Runs,
		"rounds", cfg.Rounds,
		"seed", cfg.Seed)

	ctx := shared.SetupSignalHandler(logger)
	report, err := simulator.New(cfg).Run(ctx)
	if err != nil {
		return err
	}

	printRuns(os.Stdout, cfg, report)
	return nil
}
