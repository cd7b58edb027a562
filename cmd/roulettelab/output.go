package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/roulettelab/internal/game"
	"github.com/lox/roulettelab/internal/simulator"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
)

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

func signedMoney(v float64) string {
	switch {
	case v < 0:
		return lossStyle.Render("-" + money(-v))
	case v > 0:
		return winStyle.Render("+" + money(v))
	}
	return money(v)
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
}

func limitString(cfg simulator.Config) string {
	if cfg.TableLimit == nil {
		return "none"
	}
	return money(*cfg.TableLimit)
}

// printHistory writes one line per round.
func printHistory(w io.Writer, history []game.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, headerStyle.Render("Round")+"\tOutcome\tBet\tStake\tResult\tPayout\tBankroll")
	for _, rec := range history {
		result := lossStyle.Render("lose")
		if rec.Won {
			result = winStyle.Render("win")
		}
		stake := money(rec.Stake)
		if rec.Stake < rec.IntendedStake {
			stake += " (of " + money(rec.IntendedStake) + ")"
		}
		fmt.Fprintf(tw, "%d\t%s (%s)\t%s\t%s\t%s\t%s\t%s\n",
			rec.Round, rec.Outcome, rec.Outcome.Color(), rec.Bet, stake, result,
			signedMoney(rec.Payout), money(rec.Bankroll))
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// printSummary writes the outcome of a single run.
func printSummary(w io.Writer, cfg simulator.Config, result simulator.RunResult, elapsed time.Duration) {
	s := result.Stats
	low, high := s.EdgeInterval95()

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s roulette, %s betting on %s",
		cfg.Variant, cfg.Strategy, cfg.Bet)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		fmt.Fprintf(tw, "%s\t%s\n", labelStyle.Render(label), value)
	}
	row("Run", result.ID)
	row("Seed", strconv.FormatInt(result.Seed, 10))
	row("Table limit", limitString(cfg))
	row("Rounds", fmt.Sprintf("%d (%d won, %s)", s.Rounds, s.Wins, percent(s.WinRate())))
	row("Bankroll", fmt.Sprintf("%s -> %s (low %s)", money(s.InitialBankroll), money(s.FinalBankroll), money(s.MinBankroll)))
	row("Wagered", money(s.Wagered))
	row("Net", signedMoney(s.Net))
	row("House edge", fmt.Sprintf("%s measured, %s theoretical (95%% CI %s to %s)",
		percent(s.HouseEdge()), percent(cfg.Variant.HouseEdge()), percent(low), percent(high)))
	row("Largest stake", money(s.MaxStake))
	row("Longest losing run", strconv.Itoa(s.LongestLosingStreak))
	if s.ClampedRounds > 0 {
		row("Limited stakes", strconv.Itoa(s.ClampedRounds))
	}
	row("Elapsed", elapsed.Round(time.Millisecond).String())
	tw.Flush()

	if result.Stopped {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("Bankrupt after %d rounds", s.Rounds)))
	} else if s.Bankrupted {
		fmt.Fprintln(w, warnStyle.Render("Bankroll went to zero or below during the run"))
	}

	if levels := s.SortedStakeLevels(); len(levels) > 1 {
		counts := s.StakeLevels()
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Progressions reaching each stake"))
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, level := range levels {
			fmt.Fprintf(tw, "%s\t%d\t\n", money(level), counts[level])
		}
		tw.Flush()
	}
}

// printRuns writes one line per independent run.
func printRuns(w io.Writer, cfg simulator.Config, report *simulator.Report) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d players: %s roulette, %s betting on %s, %d rounds, limit %s",
		len(report.Results), cfg.Variant, cfg.Strategy, cfg.Bet, cfg.Rounds, limitString(cfg))))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tRun\tRounds\tFinal\tNet\tEdge\tMax stake\t")
	for _, r := range report.Results {
		s := r.Stats
		status := ""
		if r.Stopped {
			status = warnStyle.Render("bankrupt")
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.Index+1, r.ID, s.Rounds, money(s.FinalBankroll), signedMoney(s.Net),
			percent(s.HouseEdge()), money(s.MaxStake), status)
	}
	tw.Flush()
	fmt.Fprintf(w, "Elapsed %s\n", report.Elapsed.Round(time.Millisecond))
}
