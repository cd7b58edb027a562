package main

import (
	"fmt"
	"os"

	"github.com/lox/roulettelab/cmd/roulettelab/shared"
	"github.com/lox/roulettelab/internal/config"
	"github.com/lox/roulettelab/internal/simulator"
)

// ExperimentsCmd runs experiments from an HCL file.
type ExperimentsCmd struct {
	File string   `arg:"" type:"existingfile" help:"HCL experiment file"`
	Only []string `kong:"help='Run only the named experiments'"`
}

func (c *ExperimentsCmd) Run(globals *Globals) error {
	cfg, err := config.Load(c.File)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if globals.LogLevel != "" {
		level = globals.LogLevel
	}
	logger, err := shared.SetupLogger(level, globals.Verbose)
	if err != nil {
		return err
	}

	selected := cfg.Experiments
	if len(c.Only) > 0 {
		selected = nil
		for _, name := range c.Only {
			e := cfg.Experiment(name)
			if e == nil {
				return fmt.Errorf("experiment %q not found in %s", name, c.File)
			}
			selected = append(selected, *e)
		}
	}

	ctx := shared.SetupSignalHandler(logger)
	for _, e := range selected {
		sc, err := e.SimulatorConfig(logger, cfg.Workers)
		if err != nil {
			return fmt.Errorf("experiment %s: %w", e.Name, err)
		}
		sc.KeepHistory = false

		logger.Info("Running experiment", "name", e.Name, "runs", sc.Runs, "rounds", sc.Rounds)
		report, err := simulator.New(sc).Run(ctx)
		if err != nil {
			return fmt.Errorf("experiment %s: %w", e.Name, err)
		}

		fmt.Fprintln(os.Stdout, headerStyle.Render("== "+e.Name+" =="))
		if sc.Runs == 1 {
			printSummary(os.Stdout, sc, report.Results[0], report.Elapsed)
		} else {
			printRuns(os.Stdout, sc, report)
		}
	}
	return nil
}
