package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/roulettelab/internal/player"
	"github.com/lox/roulettelab/internal/simulator"
	"github.com/lox/roulettelab/internal/wheel"
)

// TableFlags are the table rules and player setup shared by run and batch.
type TableFlags struct {
	Wheel            string   `kong:"default='european',help='Wheel variant: european, american or triple'"`
	Strategy         string   `kong:"default='flat',help='Staking strategy: flat or martingale (anything else bets flat)'"`
	Bankroll         float64  `kong:"default='1000',help='Starting bankroll'"`
	BaseUnit         float64  `kong:"default='10',help='Base stake'"`
	Bet              string   `kong:"default='red',help='red, black or a pocket label such as 17 or 00'"`
	TableLimit       *float64 `kong:"help='Maximum stake per round (unbounded when unset)'"`
	Rounds           int      `kong:"default='1000',help='Rounds per player'"`
	Seed             *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	StopOnBankruptcy bool     `kong:"help='Stop a player once the bankroll reaches zero'"`
}

// simulatorConfig converts the flags, picking a seed when none was given.
func (f TableFlags) simulatorConfig(logger *log.Logger) (simulator.Config, error) {
	variant, err := wheel.ParseVariant(f.Wheel)
	if err != nil {
		return simulator.Config{}, err
	}
	bet, err := player.ParseBet(f.Bet)
	if err != nil {
		return simulator.Config{}, fmt.Errorf("invalid --bet: %w", err)
	}

	seed := time.Now().UnixNano()
	if f.Seed != nil {
		seed = *f.Seed
	}

	return simulator.Config{
		Runs:             1,
		Rounds:           f.Rounds,
		Variant:          variant,
		Strategy:         player.Strategy(f.Strategy),
		Bankroll:         f.Bankroll,
		BaseUnit:         f.BaseUnit,
		Bet:              bet,
		TableLimit:       f.TableLimit,
		StopOnBankruptcy: f.StopOnBankruptcy,
		Seed:             seed,
		Logger:           logger,
	}, nil
}
