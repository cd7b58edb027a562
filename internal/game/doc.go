// Package game runs roulette rounds between a wheel and a player.
//
// The main type is Engine, which settles one bet per round and keeps an
// append-only history of immutable Records.
//
// # Basic Usage
//
//	w, err := wheel.New(wheel.SingleZero, randutil.New(42))
//	if err != nil {
//	    return err
//	}
//	p := player.New(10000, player.Flat, 10)
//	p.SetBet(player.OnColor(wheel.Red))
//
//	e := game.NewEngine(w, p, game.WithTableLimit(1000))
//	history := e.RunSimulation(100000)
//
// # Round Lifecycle
//
// Each round asks the player for a stake, clamps it to the table limit,
// spins the wheel, settles the bet and reports the result back to the
// player before appending a Record. A round either completes fully or does
// not start.
//
// # Bankruptcy
//
// By default the engine keeps playing however negative the bankroll gets, so
// long runs show the full statistical trend. WithStopOnBankruptcy ends a
// simulation before the first round that would start with a bankroll of
// zero or less.
package game
