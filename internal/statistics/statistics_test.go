package statistics

import (
	"math"
	"testing"

	"github.com/lox/roulettelab/internal/game"
	"github.com/lox/roulettelab/internal/player"
	"github.com/lox/roulettelab/internal/randutil"
	"github.com/lox/roulettelab/internal/wheel"
)

func record(round int, stake, payout, bankroll float64) game.Record {
	return game.Record{
		Round:         round,
		Outcome:       wheel.Number(1),
		IntendedStake: stake,
		Stake:         stake,
		Bet:           player.OnColor(wheel.Red),
		Won:           payout > 0,
		Payout:        payout,
		Bankroll:      bankroll,
	}
}

func martingaleHistory() []game.Record {
	return []game.Record{
		record(1, 10, 10, 110),
		record(2, 10, -10, 100),
		record(3, 20, -20, 80),
		record(4, 40, 40, 120),
		record(5, 10, -10, 110),
	}
}

func TestStatistics_Empty(t *testing.T) {
	stats := New(1000)

	if stats.HouseEdge() != 0 {
		t.Errorf("Expected edge of 0 for empty stats, got %f", stats.HouseEdge())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.WinRate() != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.WinRate())
	}
	if len(stats.StakeLevels()) != 0 {
		t.Errorf("Expected no stake levels, got %v", stats.StakeLevels())
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_Accumulates(t *testing.T) {
	stats := FromHistory(100, martingaleHistory())

	if stats.Rounds != 5 {
		t.Errorf("Expected 5 rounds, got %d", stats.Rounds)
	}
	if stats.Wins != 2 {
		t.Errorf("Expected 2 wins, got %d", stats.Wins)
	}
	if stats.Wagered != 90 {
		t.Errorf("Expected 90 wagered, got %f", stats.Wagered)
	}
	if stats.Net != 10 {
		t.Errorf("Expected net of 10, got %f", stats.Net)
	}
	if stats.FinalBankroll != 110 {
		t.Errorf("Expected final bankroll 110, got %f", stats.FinalBankroll)
	}
	if stats.MinBankroll != 80 {
		t.Errorf("Expected min bankroll 80, got %f", stats.MinBankroll)
	}
	if stats.MaxStake != 40 {
		t.Errorf("Expected max stake 40, got %f", stats.MaxStake)
	}
	if stats.LongestLosingStreak != 2 {
		t.Errorf("Expected longest losing streak 2, got %d", stats.LongestLosingStreak)
	}
	if math.Abs(stats.HouseEdge()-(-10.0/90.0)) > 1e-9 {
		t.Errorf("Expected edge of -1/9, got %f", stats.HouseEdge())
	}
	if math.Abs(stats.MeanReturn()-(-0.2)) > 1e-9 {
		t.Errorf("Expected mean return of -0.2, got %f", stats.MeanReturn())
	}
	if math.Abs(stats.Variance()-1.2) > 1e-9 {
		t.Errorf("Expected variance of 1.2, got %f", stats.Variance())
	}
	if stats.Bankrupted {
		t.Error("Expected no bankruptcy")
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_StakeLevels(t *testing.T) {
	stats := FromHistory(100, martingaleHistory())

	want := map[float64]int{10: 3, 20: 1, 40: 1}
	got := stats.StakeLevels()
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for level, n := range want {
		if got[level] != n {
			t.Errorf("Level %.0f: expected %d progressions, got %d", level, n, got[level])
		}
	}

	// Reading the levels must not consume the open progression.
	if again := stats.StakeLevels(); again[10] != 3 {
		t.Errorf("Expected StakeLevels to be repeatable, got %v", again)
	}

	levels := stats.SortedStakeLevels()
	if len(levels) != 3 || levels[0] != 10 || levels[2] != 40 {
		t.Errorf("Expected sorted levels [10 20 40], got %v", levels)
	}
}

func TestStatistics_ClampedAndBankrupt(t *testing.T) {
	stats := New(20)
	rec := record(1, 10, -10, 10)
	rec.IntendedStake = 15
	stats.Add(rec)
	stats.Add(record(2, 10, -10, 0))

	if stats.ClampedRounds != 1 {
		t.Errorf("Expected 1 clamped round, got %d", stats.ClampedRounds)
	}
	if !stats.Bankrupted {
		t.Error("Expected bankruptcy to be recorded")
	}
}

func TestStatistics_DetectsLedgerMismatch(t *testing.T) {
	stats := New(100)
	stats.Add(record(1, 10, 10, 110))
	stats.Add(record(2, 10, -10, 50)) // bankroll jumps

	if stats.IsLedgerBalanced() {
		t.Error("Expected ledger mismatch to be detected")
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error")
	}
}

func TestStatistics_EdgeIntervalCoversTheory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long run in short mode")
	}

	w, err := wheel.New(wheel.SingleZero, randutil.New(77))
	if err != nil {
		t.Fatal(err)
	}
	p := player.New(10000, player.Flat, 10)
	e := game.NewEngine(w, p)

	stats := FromHistory(10000, e.RunSimulation(200_000))
	if err := stats.Validate(); err != nil {
		t.Fatalf("Expected valid stats, got %v", err)
	}

	// Widen the 95% interval to keep the check robust to the seed.
	low, high := stats.EdgeInterval95()
	margin := (high - low) / 2
	theory := wheel.SingleZero.HouseEdge()
	if theory < low-margin || theory > high+margin {
		t.Errorf("Theoretical edge %.4f outside [%.4f, %.4f]", theory, low-margin, high+margin)
	}
	if math.Abs(stats.HouseEdge()+stats.MeanReturn()) > 1e-9 {
		t.Errorf("Flat staking: edge %.6f should equal -mean return %.6f", stats.HouseEdge(), -stats.MeanReturn())
	}
}
