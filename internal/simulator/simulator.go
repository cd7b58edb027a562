package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/roulettelab/internal/game"
	"github.com/lox/roulettelab/internal/player"
	"github.com/lox/roulettelab/internal/randutil"
	"github.com/lox/roulettelab/internal/runid"
	"github.com/lox/roulettelab/internal/statistics"
	"github.com/lox/roulettelab/internal/wheel"
)

// Config holds configuration for running simulations
type Config struct {
	Runs             int // independent players, each with its own wheel and RNG stream
	Rounds           int // rounds per run
	Variant          wheel.Variant
	Strategy         player.Strategy
	Bankroll         float64
	BaseUnit         float64
	Bet              player.Bet
	TableLimit       *float64 // nil means unbounded
	StopOnBankruptcy bool
	KeepHistory      bool // retain every record in the results
	Seed             int64
	Workers          int // 0 means runtime.NumCPU()
	Logger           *log.Logger
	Clock            quartz.Clock
}

// Validate checks the configuration before any run starts.
func (c Config) Validate() error {
	if !c.Variant.Valid() {
		return &wheel.InvalidVariantError{Variant: c.Variant.String()}
	}
	if c.Runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", c.Runs)
	}
	if c.Rounds < 0 {
		return fmt.Errorf("rounds must not be negative, got %d", c.Rounds)
	}
	if c.BaseUnit <= 0 {
		return fmt.Errorf("base unit must be positive, got %v", c.BaseUnit)
	}
	if c.TableLimit != nil && *c.TableLimit <= 0 {
		return fmt.Errorf("table limit must be positive, got %v", *c.TableLimit)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// RunResult is the outcome of one independent run.
type RunResult struct {
	Index   int
	ID      string
	Seed    int64
	Stats   *statistics.Statistics
	Stopped bool          // ended early on bankruptcy
	History []game.Record // only with KeepHistory
}

// Report holds every run's result in run order.
type Report struct {
	Results []RunResult
	Elapsed time.Duration
}

// Simulator runs independent roulette simulations in parallel
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Workers == 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Simulator{config: config}
}

// Run executes every run and returns their results. Runs that have not
// started when ctx is cancelled are skipped and ctx's error is returned.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	start := s.config.Clock.Now()
	results := make([]RunResult, s.config.Runs)
	var completed atomic.Int64
	progressEvery := max(int64(s.config.Runs/10), 1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Runs; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.runOne(i)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			results[i] = result

			if n := completed.Add(1); n%progressEvery == 0 && s.config.Runs > 1 {
				s.config.Logger.Info("Simulation progress",
					"completed", n,
					"runs", s.config.Runs,
					"elapsed", s.config.Clock.Now().Sub(start))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("simulation interrupted after %d of %d runs: %w",
				completed.Load(), s.config.Runs, err)
		}
		return nil, err
	}

	return &Report{
		Results: results,
		Elapsed: s.config.Clock.Now().Sub(start),
	}, nil
}

// runOne plays a single independent run on its own RNG stream
func (s *Simulator) runOne(index int) (RunResult, error) {
	seed := randutil.Derive(s.config.Seed, index)
	rng := randutil.New(seed)

	w, err := wheel.New(s.config.Variant, rng)
	if err != nil {
		return RunResult{}, err
	}

	p := player.New(s.config.Bankroll, s.config.Strategy, s.config.BaseUnit)
	p.SetBet(s.config.Bet)

	engine := game.NewEngine(w, p,
		game.WithOptionalTableLimit(s.config.TableLimit),
		game.WithStopOnBankruptcy(s.config.StopOnBankruptcy),
		game.WithLogger(s.config.Logger.With("run", index+1)))

	history := engine.RunSimulation(s.config.Rounds)

	stats := statistics.FromHistory(s.config.Bankroll, history)
	if len(history) > 0 {
		if err := stats.Validate(); err != nil {
			return RunResult{}, fmt.Errorf("statistics validation failed: %w", err)
		}
	}

	result := RunResult{
		Index:   index,
		ID:      runid.NewGenerator(s.config.Clock, rng).Generate(),
		Seed:    seed,
		Stats:   stats,
		Stopped: engine.Stopped(),
	}
	if s.config.KeepHistory {
		result.History = history
	}
	return result, nil
}

// RunSimulation is a convenience function for a single run with basic
// parameters, keeping its history.
func RunSimulation(ctx context.Context, variant wheel.Variant, strategy player.Strategy, bankroll, baseUnit float64, bet player.Bet, rounds int, seed int64, logger *log.Logger) (*RunResult, error) {
	sim := New(Config{
		Runs:        1,
		Rounds:      rounds,
		Variant:     variant,
		Strategy:    strategy,
		Bankroll:    bankroll,
		BaseUnit:    baseUnit,
		Bet:         bet,
		KeepHistory: true,
		Seed:        seed,
		Workers:     1,
		Logger:      logger,
	})
	report, err := sim.Run(ctx)
	if err != nil {
		return nil, err
	}
	return &report.Results[0], nil
}
