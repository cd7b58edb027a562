// Package statistics summarises the rounds of a single simulation run.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/roulettelab/internal/game"
)

// Statistics accumulates one run's records. Build it with New and feed
// records in round order.
type Statistics struct {
	InitialBankroll float64
	FinalBankroll   float64

	Rounds int
	Wins   int

	Wagered   float64 // sum of placed (clamped) stakes
	Net       float64 // sum of payouts
	WonTotal  float64 // payouts of winning rounds
	LostTotal float64 // stakes of losing rounds, positive

	// Per-unit return (payout / stake) moments for the standard error
	SumReturn  float64
	SumReturn2 float64

	MaxStake            float64
	ClampedRounds       int // rounds where the table limit cut the stake
	LongestLosingStreak int
	MinBankroll         float64
	Bankrupted          bool // bankroll reached zero or below at least once

	currentStreak int
	ledgerDrift   float64
	lastStake     float64
	sequence      []float64
	stakeLevels   map[float64]int
}

// New returns an empty accumulator for a run starting at initialBankroll.
func New(initialBankroll float64) *Statistics {
	return &Statistics{
		InitialBankroll: initialBankroll,
		FinalBankroll:   initialBankroll,
		MinBankroll:     initialBankroll,
		stakeLevels:     make(map[float64]int),
	}
}

// FromHistory builds statistics for a complete history.
func FromHistory(initialBankroll float64, history []game.Record) *Statistics {
	s := New(initialBankroll)
	for _, rec := range history {
		s.Add(rec)
	}
	return s
}

// Add incorporates the next round.
func (s *Statistics) Add(rec game.Record) {
	s.ledgerDrift = math.Max(s.ledgerDrift, math.Abs(s.FinalBankroll+rec.Payout-rec.Bankroll))

	s.Rounds++
	s.Wagered += rec.Stake
	s.Net += rec.Payout
	s.FinalBankroll = rec.Bankroll

	if rec.Won {
		s.Wins++
		s.WonTotal += rec.Payout
		s.currentStreak = 0
	} else {
		s.LostTotal -= rec.Payout
		s.currentStreak++
		s.LongestLosingStreak = max(s.LongestLosingStreak, s.currentStreak)
	}

	if rec.Stake > 0 {
		r := rec.Payout / rec.Stake
		s.SumReturn += r
		s.SumReturn2 += r * r
	}

	s.MaxStake = math.Max(s.MaxStake, rec.Stake)
	if rec.Stake < rec.IntendedStake {
		s.ClampedRounds++
	}
	s.MinBankroll = math.Min(s.MinBankroll, rec.Bankroll)
	if rec.Bankroll <= 0 {
		s.Bankrupted = true
	}

	s.trackSequence(rec.Stake)
}

// trackSequence groups consecutive rising stakes into one progression and
// counts, per stake level, how many progressions reached it.
func (s *Statistics) trackSequence(stake float64) {
	if len(s.sequence) > 0 && stake <= s.lastStake {
		s.flushSequence(s.stakeLevels)
		s.sequence = s.sequence[:0]
	}
	s.sequence = append(s.sequence, stake)
	s.lastStake = stake
}

func (s *Statistics) flushSequence(into map[float64]int) {
	for _, level := range s.sequence {
		into[level]++
	}
}

// StakeLevels returns how many stake progressions reached each level,
// including the progression still open at the end of the run.
func (s *Statistics) StakeLevels() map[float64]int {
	out := make(map[float64]int, len(s.stakeLevels)+len(s.sequence))
	for level, n := range s.stakeLevels {
		out[level] = n
	}
	s.flushSequence(out)
	return out
}

// SortedStakeLevels returns the keys of StakeLevels in ascending order.
func (s *Statistics) SortedStakeLevels() []float64 {
	levels := s.StakeLevels()
	keys := make([]float64, 0, len(levels))
	for k := range levels {
		keys = append(keys, k)
	}
	sort.Float64s(keys)
	return keys
}

// WinRate is the fraction of rounds won.
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// HouseEdge is the experimental loss per unit wagered. It is negative when
// the player came out ahead.
func (s *Statistics) HouseEdge() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return -s.Net / s.Wagered
}

// MeanReturn is the mean per-unit return of a round.
func (s *Statistics) MeanReturn() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumReturn / float64(s.Rounds)
}

// Variance is the sample variance of the per-unit return.
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.MeanReturn()
	return (s.SumReturn2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError is the standard error of the mean per-unit return.
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// EdgeInterval95 returns a 95% confidence interval for the house edge,
// based on the per-unit return. Exact for flat staking.
func (s *Statistics) EdgeInterval95() (float64, float64) {
	edge := -s.MeanReturn()
	margin := 1.96 * s.StdError()
	return edge - margin, edge + margin
}

// IsLedgerBalanced checks that wins minus losses equals the net result and
// that every record's bankroll follows from the previous one.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.WonTotal-s.LostTotal-s.Net) <= 1e-6 &&
		math.Abs(s.InitialBankroll+s.Net-s.FinalBankroll) <= 1e-6*math.Max(1, math.Abs(s.FinalBankroll)) &&
		s.ledgerDrift <= 1e-6*math.Max(1, math.Abs(s.FinalBankroll))
}

// Validate checks the accumulated data for internal consistency.
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if s.Wins > s.Rounds {
		return fmt.Errorf("wins (%d) exceed rounds (%d)", s.Wins, s.Rounds)
	}
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: initial=%.2f net=%.2f final=%.2f won=%.2f lost=%.2f",
			s.InitialBankroll, s.Net, s.FinalBankroll, s.WonTotal, s.LostTotal)
	}
	return nil
}
