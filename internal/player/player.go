// Package player holds a simulated gambler's bankroll, bet selection and
// staking strategy.
package player

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/roulettelab/internal/wheel"
)

// Strategy selects how the stake evolves between rounds. Values other than
// Flat and Martingale are accepted and bet flat.
type Strategy string

const (
	Flat       Strategy = "flat"
	Martingale Strategy = "martingale"
)

// BetType is the kind of wager. Values other than ColorBet and NumberBet are
// accepted and never win.
type BetType string

const (
	ColorBet  BetType = "color"
	NumberBet BetType = "number"
)

// Bet is the single active selection a player wagers on each round.
type Bet struct {
	Type   BetType
	Color  wheel.Color  // used when Type is ColorBet
	Pocket wheel.Pocket // used when Type is NumberBet
}

// OnColor bets even money on red or black.
func OnColor(c wheel.Color) Bet {
	return Bet{Type: ColorBet, Color: c}
}

// OnPocket bets straight-up on a single pocket.
func OnPocket(p wheel.Pocket) Bet {
	return Bet{Type: NumberBet, Pocket: p}
}

// ParseBet reads "red", "black" or a pocket label such as "17" or "00".
func ParseBet(s string) (Bet, error) {
	if c, err := wheel.ParseColor(s); err == nil {
		return OnColor(c), nil
	}
	p, err := wheel.ParsePocket(s)
	if err != nil {
		return Bet{}, fmt.Errorf("bet must be red, black or a pocket label: %w", err)
	}
	return OnPocket(p), nil
}

func (b Bet) String() string {
	switch b.Type {
	case ColorBet:
		return b.Color.String()
	case NumberBet:
		return b.Pocket.String()
	}
	return string(b.Type)
}

// Player is owned by a single simulation and is not safe for concurrent use.
type Player struct {
	initialBankroll   float64
	bankroll          float64
	strategy          Strategy
	baseUnit          float64
	currentStake      float64
	consecutiveLosses int
	bet               Bet
}

// New creates a player betting baseUnit on red.
func New(initialBankroll float64, strategy Strategy, baseUnit float64) *Player {
	return &Player{
		initialBankroll: initialBankroll,
		bankroll:        initialBankroll,
		strategy:        Strategy(strings.ToLower(string(strategy))),
		baseUnit:        baseUnit,
		currentStake:    baseUnit,
		bet:             OnColor(wheel.Red),
	}
}

// SetBet changes the selection for subsequent rounds.
func (p *Player) SetBet(b Bet) {
	p.bet = b
}

func (p *Player) Bet() Bet { return p.bet }

// PlaceBet returns the stake the strategy wants next. Table limits are the
// engine's concern.
func (p *Player) PlaceBet() float64 {
	if p.strategy == Martingale {
		return p.currentStake
	}
	return p.baseUnit
}

// ProcessResult applies the round's signed payout and advances the strategy.
func (p *Player) ProcessResult(won bool, payout float64) {
	p.bankroll += payout

	if p.strategy != Martingale {
		return
	}
	if won {
		p.currentStake = p.baseUnit
		p.consecutiveLosses = 0
		return
	}
	p.consecutiveLosses++
	p.currentStake = p.baseUnit * math.Pow(2, float64(p.consecutiveLosses))
}

// Bankroll may be negative; solvency is not enforced here.
func (p *Player) Bankroll() float64 { return p.bankroll }

func (p *Player) InitialBankroll() float64 { return p.initialBankroll }

func (p *Player) Strategy() Strategy { return p.strategy }

func (p *Player) BaseUnit() float64 { return p.baseUnit }

// CurrentStake is the strategy's next stake. For flat players it always
// equals the base unit.
func (p *Player) CurrentStake() float64 { return p.PlaceBet() }

func (p *Player) ConsecutiveLosses() int { return p.consecutiveLosses }
