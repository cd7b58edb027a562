package game

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/lox/roulettelab/internal/player"
	"github.com/lox/roulettelab/internal/wheel"
)

// Spinner produces one pocket per call. *wheel.Wheel implements it.
type Spinner interface {
	Spin() wheel.Pocket
}

// Record is an immutable snapshot of one settled round.
type Record struct {
	Round         int // 1-based
	Outcome       wheel.Pocket
	IntendedStake float64 // what the strategy asked for
	Stake         float64 // after the table limit
	Bet           player.Bet
	Won           bool
	Payout        float64 // signed
	Bankroll      float64 // after the payout
}

// Engine plays rounds for a single player at a single wheel. It is not safe
// for concurrent use; independent simulations need independent engines.
type Engine struct {
	wheel            Spinner
	player           *player.Player
	tableLimit       float64
	hasTableLimit    bool
	stopOnBankruptcy bool
	stopped          bool
	logger           *log.Logger
	history          []Record
}

// NewEngine wires a wheel and a player together. Without WithTableLimit the
// table is unbounded.
func NewEngine(w Spinner, p *player.Player, opts ...EngineOption) *Engine {
	if w == nil {
		panic("wheel is required for engine creation")
	}
	if p == nil {
		panic("player is required for engine creation")
	}

	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	return &Engine{
		wheel:            w,
		player:           p,
		tableLimit:       cfg.tableLimit,
		hasTableLimit:    cfg.hasTableLimit,
		stopOnBankruptcy: cfg.stopOnBankruptcy,
		logger:           cfg.logger,
	}
}

// RunRound plays and records one complete round.
func (e *Engine) RunRound() Record {
	intended := e.player.PlaceBet()
	stake := e.clamp(intended)

	outcome := e.wheel.Spin()
	bet := e.player.Bet()
	won := DetermineWin(outcome, bet)
	payout := Payout(bet, stake, won)

	e.player.ProcessResult(won, payout)

	rec := Record{
		Round:         len(e.history) + 1,
		Outcome:       outcome,
		IntendedStake: intended,
		Stake:         stake,
		Bet:           bet,
		Won:           won,
		Payout:        payout,
		Bankroll:      e.player.Bankroll(),
	}
	e.history = append(e.history, rec)

	e.logger.Debug("Round settled",
		"round", rec.Round,
		"outcome", outcome,
		"bet", bet,
		"stake", stake,
		"won", won,
		"payout", payout,
		"bankroll", rec.Bankroll)

	return rec
}

// RunSimulation plays n rounds and returns the whole history, including
// rounds from earlier calls. Unless stop-on-bankruptcy is enabled it plays
// all n rounds regardless of the bankroll.
func (e *Engine) RunSimulation(n int) []Record {
	for i := 0; i < n; i++ {
		if e.stopOnBankruptcy && e.player.Bankroll() <= 0 {
			e.stopped = true
			e.logger.Info("Player bankrupt, stopping simulation",
				"round", len(e.history),
				"bankroll", e.player.Bankroll())
			break
		}
		e.RunRound()
	}
	return e.History()
}

// History returns a copy of all records so far.
func (e *Engine) History() []Record {
	out := make([]Record, len(e.history))
	copy(out, e.history)
	return out
}

// Rounds is the number of rounds played so far.
func (e *Engine) Rounds() int { return len(e.history) }

func (e *Engine) Player() *player.Player { return e.player }

// TableLimit returns the limit and whether one is set.
func (e *Engine) TableLimit() (float64, bool) {
	return e.tableLimit, e.hasTableLimit
}

// Stopped reports whether a simulation ended early on bankruptcy.
func (e *Engine) Stopped() bool { return e.stopped }

func (e *Engine) clamp(stake float64) float64 {
	if !e.hasTableLimit {
		return stake
	}
	return math.Min(stake, e.tableLimit)
}
