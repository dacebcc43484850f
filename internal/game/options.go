package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdemengine/internal/deck"
)

// Config holds the stakes of a game.
type Config struct {
	SmallBlind int
	// BigBlind defaults to twice the small blind when zero.
	BigBlind int
	// Seed fixes the shuffle when non-zero and no RNG is given.
	Seed int64
}

// Option configures a Game during creation.
type Option func(*Game)

// WithRNG sets the source used to shuffle. It takes precedence over
// Config.Seed.
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// WithDeck makes the next hand deal from d exactly as stacked, without
// shuffling. Later hands go back to shuffled decks.
func WithDeck(d *deck.Deck) Option {
	return func(g *Game) {
		g.stacked = d
	}
}

// WithIDGenerator replaces the hand id generator.
func WithIDGenerator(fn func() string) Option {
	return func(g *Game) {
		g.newID = fn
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}
