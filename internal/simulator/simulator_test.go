package simulator

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/roulettelab/internal/player"
	"github.com/lox/roulettelab/internal/runid"
	"github.com/lox/roulettelab/internal/wheel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	return Config{
		Runs:     8,
		Rounds:   500,
		Variant:  wheel.SingleZero,
		Strategy: player.Flat,
		Bankroll: 1000,
		BaseUnit: 10,
		Bet:      player.OnColor(wheel.Red),
		Seed:     42,
		Workers:  4,
		Logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
		Clock:    quartz.NewMock(t),
	}
}

func TestRunProducesOneResultPerRun(t *testing.T) {
	cfg := testConfig(t)
	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, cfg.Runs)

	for i, r := range report.Results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, cfg.Rounds, r.Stats.Rounds)
		assert.Nil(t, r.History)
		assert.NoError(t, r.Stats.Validate())
		assert.NoError(t, runid.Validate(r.ID))
	}
	assert.Zero(t, report.Elapsed, "mock clock never advances")
}

func TestRunIsReproducible(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	cfg.Workers = 1
	b, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	for i := range a.Results {
		assert.Equal(t, a.Results[i].Seed, b.Results[i].Seed)
		assert.Equal(t, a.Results[i].ID, b.Results[i].ID)
		assert.Equal(t, a.Results[i].Stats.FinalBankroll, b.Results[i].Stats.FinalBankroll)
	}
}

func TestRunsUseIndependentStreams(t *testing.T) {
	cfg := testConfig(t)
	cfg.KeepHistory = true
	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	first := report.Results[0].History
	identical := 0
	for _, r := range report.Results[1:] {
		require.Len(t, r.History, cfg.Rounds)
		same := true
		for i := range first {
			if first[i].Outcome != r.History[i].Outcome {
				same = false
				break
			}
		}
		if same {
			identical++
		}
		assert.NotEqual(t, report.Results[0].Seed, r.Seed)
	}
	assert.Zero(t, identical)
}

func TestRunAppliesTableRules(t *testing.T) {
	cfg := testConfig(t)
	limit := 40.0
	cfg.Strategy = player.Martingale
	cfg.TableLimit = &limit
	cfg.KeepHistory = true

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	for _, r := range report.Results {
		assert.LessOrEqual(t, r.Stats.MaxStake, limit)
		for _, rec := range r.History {
			assert.LessOrEqual(t, rec.Stake, limit)
		}
	}
}

func TestRunStopOnBankruptcy(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bankroll = 10
	cfg.Bet = player.OnPocket(wheel.Number(17))
	cfg.Rounds = 5000
	cfg.StopOnBankruptcy = true

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	stopped := 0
	for _, r := range report.Results {
		if r.Stopped {
			stopped++
			assert.Less(t, r.Stats.Rounds, cfg.Rounds)
			assert.LessOrEqual(t, r.Stats.FinalBankroll, 0.0)
		}
	}
	assert.Positive(t, stopped)
}

func TestRunZeroRounds(t *testing.T) {
	cfg := testConfig(t)
	cfg.Rounds = 0

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	for _, r := range report.Results {
		assert.Zero(t, r.Stats.Rounds)
		assert.Equal(t, cfg.Bankroll, r.Stats.FinalBankroll)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(t)).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "interrupted")
}

func TestConfigValidate(t *testing.T) {
	negative := -1.0

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"invalid variant", func(c *Config) { c.Variant = wheel.Variant(7) }},
		{"no runs", func(c *Config) { c.Runs = 0 }},
		{"negative rounds", func(c *Config) { c.Rounds = -1 }},
		{"zero base unit", func(c *Config) { c.BaseUnit = 0 }},
		{"negative table limit", func(c *Config) { c.TableLimit = &negative }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)
			_, err := New(cfg).Run(context.Background())
			assert.Error(t, err)
		})
	}

	cfg := testConfig(t)
	cfg.Variant = wheel.Variant(7)
	_, err := New(cfg).Run(context.Background())
	assert.ErrorIs(t, err, wheel.ErrInvalidVariant)
}

func TestRunSimulationConvenience(t *testing.T) {
	result, err := RunSimulation(context.Background(), wheel.TripleZero, player.Martingale, 1000, 5,
		player.OnColor(wheel.Black), 300, 9, nil)
	require.NoError(t, err)
	require.Len(t, result.History, 300)
	assert.Equal(t, result.Stats.FinalBankroll, result.History[299].Bankroll)
}

func TestRunFlatColorEdgeAcrossWheels(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence run in short mode")
	}

	for _, v := range []wheel.Variant{wheel.SingleZero, wheel.DoubleZero, wheel.TripleZero} {
		t.Run(v.String(), func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Variant = v
			cfg.Runs = 4
			cfg.Rounds = 100_000
			cfg.Bankroll = 10_000

			report, err := New(cfg).Run(context.Background())
			require.NoError(t, err)

			var net, wagered float64
			for _, r := range report.Results {
				net += r.Stats.Net
				wagered += r.Stats.Wagered
			}
			assert.InDelta(t, v.HouseEdge(), -net/wagered, 0.006)
		})
	}
}
