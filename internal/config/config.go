// Package config loads experiment definitions from HCL files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/roulettelab/internal/player"
	"github.com/lox/roulettelab/internal/simulator"
	"github.com/lox/roulettelab/internal/wheel"
)

// Config is the top-level experiment file.
type Config struct {
	LogLevel    string       `hcl:"log_level,optional"`
	Workers     int          `hcl:"workers,optional"`
	Experiments []Experiment `hcl:"experiment,block"`
}

// Experiment describes one table setup and how long to play it.
type Experiment struct {
	Name             string          `hcl:"name,label"`
	Wheel            string          `hcl:"wheel"`
	Rounds           int             `hcl:"rounds,optional"`
	Runs             int             `hcl:"runs,optional"`
	Seed             int64           `hcl:"seed,optional"`
	TableLimit       *float64        `hcl:"table_limit,optional"`
	StopOnBankruptcy bool            `hcl:"stop_on_bankruptcy,optional"`
	Player           *PlayerSettings `hcl:"player,block"`
}

// PlayerSettings configures the simulated player.
type PlayerSettings struct {
	Bankroll float64 `hcl:"bankroll,optional"`
	Strategy string  `hcl:"strategy,optional"`
	BaseUnit float64 `hcl:"base_unit,optional"`
	Bet      string  `hcl:"bet,optional"`
}

const (
	DefaultRounds   = 1000
	DefaultRuns     = 1
	DefaultBankroll = 1000
	DefaultBaseUnit = 10
	DefaultBet      = "red"
)

// Load reads and decodes an experiment file.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, applies defaults and validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	for i := range c.Experiments {
		e := &c.Experiments[i]
		if e.Player == nil {
			e.Player = &PlayerSettings{}
		}
		if e.Rounds == 0 {
			e.Rounds = DefaultRounds
		}
		if e.Runs == 0 {
			e.Runs = DefaultRuns
		}
		if e.Player.Bankroll == 0 {
			e.Player.Bankroll = DefaultBankroll
		}
		if e.Player.Strategy == "" {
			e.Player.Strategy = string(player.Flat)
		}
		if e.Player.BaseUnit == 0 {
			e.Player.BaseUnit = DefaultBaseUnit
		}
		if e.Player.Bet == "" {
			e.Player.Bet = DefaultBet
		}
	}
}

// Validate validates the experiment file. Unknown strategies are allowed
// and bet flat.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if len(c.Experiments) == 0 {
		return errors.New("at least one experiment must be configured")
	}

	seen := make(map[string]bool)
	for _, e := range c.Experiments {
		if seen[e.Name] {
			return fmt.Errorf("experiment %s: duplicate name", e.Name)
		}
		seen[e.Name] = true

		if e.Player == nil {
			return fmt.Errorf("experiment %s: missing player block", e.Name)
		}
		if _, err := wheel.ParseVariant(e.Wheel); err != nil {
			return fmt.Errorf("experiment %s: %w", e.Name, err)
		}
		if e.Rounds < 0 {
			return fmt.Errorf("experiment %s: rounds must not be negative", e.Name)
		}
		if e.Runs < 1 {
			return fmt.Errorf("experiment %s: runs must be at least 1", e.Name)
		}
		if e.TableLimit != nil && *e.TableLimit <= 0 {
			return fmt.Errorf("experiment %s: table limit must be positive", e.Name)
		}
		if e.Player.BaseUnit <= 0 {
			return fmt.Errorf("experiment %s: base unit must be positive", e.Name)
		}
		if _, err := player.ParseBet(e.Player.Bet); err != nil {
			return fmt.Errorf("experiment %s: %w", e.Name, err)
		}
	}
	return nil
}

// Experiment returns the named experiment, or nil.
func (c *Config) Experiment(name string) *Experiment {
	for i := range c.Experiments {
		if c.Experiments[i].Name == name {
			return &c.Experiments[i]
		}
	}
	return nil
}

// SimulatorConfig converts the experiment into a simulator configuration.
func (e *Experiment) SimulatorConfig(logger *log.Logger, workers int) (simulator.Config, error) {
	variant, err := wheel.ParseVariant(e.Wheel)
	if err != nil {
		return simulator.Config{}, err
	}
	bet, err := player.ParseBet(e.Player.Bet)
	if err != nil {
		return simulator.Config{}, err
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	return simulator.Config{
		Runs:             e.Runs,
		Rounds:           e.Rounds,
		Variant:          variant,
		Strategy:         player.Strategy(e.Player.Strategy),
		Bankroll:         e.Player.Bankroll,
		BaseUnit:         e.Player.BaseUnit,
		Bet:              bet,
		TableLimit:       e.TableLimit,
		StopOnBankruptcy: e.StopOnBankruptcy,
		Seed:             e.Seed,
		Workers:          workers,
		Logger:           logger.With("experiment", e.Name),
	}, nil
}
