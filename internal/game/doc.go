// Package game implements the betting state machine for a single Texas
// Hold'em table.
//
// The main type is Game, which owns the players, the deck, the board and
// the pot for one hand at a time and moves the hand through its phases as
// players act.
//
// # Basic Usage
//
//	g, err := game.New(game.Config{SmallBlind: 5, BigBlind: 10, Seed: 42})
//	if err != nil {
//	    return err
//	}
//	err = g.StartNewGame([]game.Seat{
//	    {ID: "alice", Chips: 1000},
//	    {ID: "bob", Chips: 1000},
//	    {ID: "carol", Chips: 1000},
//	})
//	// The player left of the big blind acts first.
//	p, _ := g.CurrentPlayer()
//	err = g.Call(p.ID)
//
// Every action either applies completely or returns an error and leaves
// the game untouched. When a betting round is complete the game deals the
// next street itself; when only one player is left, or after the river
// has been bet, the pot is paid out and the status returns to Waiting.
//
// # Deterministic Testing
//
// Seed the game through Config.Seed or WithRNG, or hand it a stacked deck
// with WithDeck to fix the exact cards of the next hand:
//
//	d, _ := deck.NewStackedDeck(deck.MustParseCards("AsAh KdKc 2c3d4h5s9c"))
//	g, _ := game.New(cfg, game.WithDeck(d))
//
// Hole cards come off the top two at a time in seat order, followed by the
// flop, turn and river.
//
// # Concurrency
//
// A Game guards its state with a mutex, so each call is applied whole.
// Ordering between players is still the caller's job; the table package
// runs one goroutine per table for that.
package game
