package main

import (
	"os"

	"github.com/lox/roulettelab/cmd/roulettelab/shared"
	"github.com/lox/roulettelab/internal/simulator"
)

// RunCmd simulates a single player.
type RunCmd struct {
	TableFlags `embed:""`

	History bool `kong:"help='Print every round'"`
}

func (c *RunCmd) Run(globals *Globals) error {
	logger, err := shared.SetupLogger(globals.LogLevel, globals.Verbose)
	if err != nil {
		return err
	}

	cfg, err := c.simulatorConfig(logger)
	if err != nil {
		return err
	}
	cfg.KeepHistory = c.History
	cfg.Workers = 1

	logger.Info("Starting simulation",
		"wheel", cfg.Variant,
		"strategy", cfg.Strategy,
		"bet", cfg.Bet,
		"rounds", cfg.Rounds,
		"seed", cfg.Seed)

	ctx := shared.SetupSignalHandler(logger)
	report, err := simulator.New(cfg).Run(ctx)
	if err != nil {
		return err
	}

	result := report.Results[0]
	if c.History {
		printHistory(os.Stdout, result.History)
	}
	printSummary(os.Stdout, cfg, result, report.Elapsed)
	return nil
}
