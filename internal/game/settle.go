package game

import (
	"github.com/lox/roulettelab/internal/player"
	"github.com/lox/roulettelab/internal/wheel"
)

// StraightUpOdds is the payout multiple for a winning single-pocket bet.
const StraightUpOdds = 35

// DetermineWin reports whether bet wins on outcome. Zero pockets are green,
// so they lose every color bet. Unknown bet types never win.
func DetermineWin(outcome wheel.Pocket, bet player.Bet) bool {
	switch bet.Type {
	case player.ColorBet:
		switch bet.Color {
		case wheel.Red, wheel.Black:
			return outcome.Color() == bet.Color
		}
		return false
	case player.NumberBet:
		return bet.Pocket.Valid() && outcome == bet.Pocket
	default:
		return false
	}
}

// Payout returns the signed amount a stake returns: even money on colors,
// 35:1 straight up, the stake itself on a loss.
func Payout(bet player.Bet, stake float64, won bool) float64 {
	if !won {
		return -stake
	}
	if bet.Type == player.NumberBet {
		return stake * StraightUpOdds
	}
	return stake
}
