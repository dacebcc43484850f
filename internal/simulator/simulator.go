// Package simulator measures one bot against others over many duplicate
// hands. Every deal is played twice with the hero in different seats so
// that card luck largely cancels out.
package simulator

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/holdemengine/internal/bot"
	"github.com/lox/holdemengine/internal/game"
	"github.com/lox/holdemengine/internal/randutil"
	"github.com/lox/holdemengine/internal/statistics"
)

const (
	// HeroID is the player id of the bot being measured.
	HeroID = "hero"
	// Mixed seats a fixed rotation of opponent types.
	Mixed = "mixed"

	smallBlind    = 1
	bigBlind      = 2
	startingChips = 100 * bigBlind
	maxSteps      = 1000
)

// mixedOpponents is the fixed line-up used for Mixed.
var mixedOpponents = []string{"chart", "random", "call", "chart", "random", "call", "fold", "chart"}

// Config holds configuration for running simulations.
type Config struct {
	Hands    int
	Hero     string
	Opponent string
	Seats    int
	Seed     int64
	Timeout  time.Duration // per hand
	Logger   *log.Logger
}

// Simulator runs poker hand simulations.
type Simulator struct {
	config Config
}

// New checks config and fills in defaults: six seats, a five second hand
// timeout and a discarding logger.
func New(config Config) (*Simulator, error) {
	if config.Seats == 0 {
		config.Seats = 6
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Hands <= 0 {
		return nil, fmt.Errorf("hands must be positive, got %d", config.Hands)
	}
	if config.Seats < game.MinPlayers || config.Seats > game.MaxPlayers {
		return nil, fmt.Errorf("seats must be %d-%d, got %d", game.MinPlayers, game.MaxPlayers, config.Seats)
	}
	if _, err := bot.ByName(config.Hero, nil, config.Logger); err != nil {
		return nil, fmt.Errorf("hero: %w", err)
	}
	if config.Opponent != Mixed {
		if _, err := bot.ByName(config.Opponent, nil, config.Logger); err != nil {
			return nil, fmt.Errorf("opponent: %w", err)
		}
	}
	return &Simulator{config: config}, nil
}

// Opponents describes who the hero played against.
func (s *Simulator) Opponents() string {
	if s.config.Opponent != Mixed {
		return s.config.Opponent
	}
	return fmt.Sprintf("mixed(%s)", strings.Join(s.opponentTypes(), ","))
}

func (s *Simulator) opponentTypes() []string {
	types := make([]string, s.config.Seats-1)
	for i := range types {
		if s.config.Opponent == Mixed {
			types[i] = mixedOpponents[i%len(mixedOpponents)]
		} else {
			types[i] = s.config.Opponent
		}
	}
	return types
}

// Run plays config.Hands deals twice each and returns the hero's results.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}

	for hand := 0; hand < s.config.Hands; hand++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		handSeed := randutil.Derive(s.config.Seed, hand)

		// Rotate the hero round the table to remove positional bias.
		heroSeat := hand % s.config.Seats
		first, err := s.playHandWithTimeout(ctx, handSeed, heroSeat)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", hand+1, err)
		}

		// Replay the same deal from another seat.
		swapped := 0
		if heroSeat == 0 {
			swapped = 1
		}
		second, err := s.playHandWithTimeout(ctx, handSeed, swapped)
		if err != nil {
			return nil, fmt.Errorf("duplicate hand %d: %w", hand+1, err)
		}

		stats.Add(first)
		stats.Add(second)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

type handOutcome struct {
	result statistics.HandResult
	err    error
}

// playHandWithTimeout runs a single hand with timeout protection.
func (s *Simulator) playHandWithTimeout(ctx context.Context, handSeed int64, heroSeat int) (statistics.HandResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	done := make(chan handOutcome, 1)
	go func() {
		r, err := s.playHand(handSeed, heroSeat)
		done <- handOutcome{r, err}
	}()

	select {
	case out := <-done:
		return out.result, out.err
	case <-ctx.Done():
		return statistics.HandResult{}, fmt.Errorf("hand timed out after %v (seed: %d, seat: %d): %w", s.config.Timeout, handSeed, heroSeat, ctx.Err())
	}
}

// playHand deals one hand with the hero in heroSeat. The button is always
// seat 0, so the same seed gives every seat the same cards.
func (s *Simulator) playHand(handSeed int64, heroSeat int) (statistics.HandResult, error) {
	logger := s.config.Logger
	g, err := game.New(game.Config{SmallBlind: smallBlind, BigBlind: bigBlind, Seed: handSeed}, game.WithLogger(logger))
	if err != nil {
		return statistics.HandResult{}, err
	}

	types := s.opponentTypes()
	seats := make([]game.Seat, s.config.Seats)
	bots := make(map[string]bot.Bot, s.config.Seats)
	for i := range seats {
		id, kind := HeroID, s.config.Hero
		if i != heroSeat {
			id = fmt.Sprintf("opp%d", i+1)
			kind = types[0]
			types = types[1:]
		}
		b, err := bot.ByName(kind, randutil.New(randutil.Derive(handSeed, i)), logger)
		if err != nil {
			return statistics.HandResult{}, err
		}
		seats[i] = game.Seat{ID: id, Chips: startingChips}
		bots[id] = b
	}

	if err := g.StartNewGame(seats); err != nil {
		return statistics.HandResult{}, err
	}
	for steps := 0; g.Status() == game.Playing; steps++ {
		if steps >= maxSteps {
			return statistics.HandResult{}, fmt.Errorf("hand did not finish after %d actions (seed: %d)", maxSteps, handSeed)
		}
		p, ok := g.CurrentPlayer()
		if !ok {
			return statistics.HandResult{}, fmt.Errorf("nobody to act in a live hand (seed: %d)", handSeed)
		}
		a := bots[p.ID].Decide(g.State(), p, g.ValidActions())
		if err := g.Apply(p.ID, a); err != nil {
			logger.Warn("Bot chose an illegal action, folding", "player", p.ID, "action", a, "error", err, "seed", handSeed)
			if err := g.Apply(p.ID, game.FoldAction()); err != nil {
				return statistics.HandResult{}, err
			}
		}
	}

	r, ok := statistics.ResultFor(g.State(), HeroID)
	if !ok {
		return statistics.HandResult{}, fmt.Errorf("no result for %s (seed: %d)", HeroID, handSeed)
	}
	return r, nil
}

// PrintSummary writes a summary of the hero's results to w.
func PrintSummary(w io.Writer, stats *statistics.Statistics, opponents string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS vs %s ===\n", opponents)
	fmt.Fprintf(w, "Hands played: %d\n", stats.Hands)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f bb/hand (%.1f bb/100)\n", stats.Mean(), stats.BBPer100())
	fmt.Fprintf(w, "Median: %.4f bb/hand\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f bb\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f bb\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== PROFIT SOURCE ANALYSIS ===\n")
	if wins := stats.ShowdownWins + stats.NonShowdownWins; wins > 0 {
		fmt.Fprintf(w, "Winning hands: %d showdown (%.1f%%), %d fold equity (%.1f%%)\n",
			stats.ShowdownWins, 100*float64(stats.ShowdownWins)/float64(wins),
			stats.NonShowdownWins, 100*float64(stats.NonShowdownWins)/float64(wins))
	}
	if stats.Hands > 0 {
		fmt.Fprintf(w, "Non-showdown: %.2f bb/hand avg (all hands)\n", stats.NonShowdownBB/float64(stats.Hands))
		fmt.Fprintf(w, "Showdown: %.2f bb/hand avg (all hands)\n", stats.ShowdownBB/float64(stats.Hands))
	}

	fmt.Fprintf(w, "\n=== POT SIZE ANALYSIS ===\n")
	fmt.Fprintf(w, "Max pot observed: %d chips (%.1f bb)\n", stats.MaxPotChips, stats.MaxPotBB)
	fmt.Fprintf(w, "Big pots (>=%dbb): %d hands, %.2f bb total\n", statistics.BigPotBB, stats.BigPots, stats.BigPotsBB)

	fmt.Fprintf(w, "\n=== POSITION ANALYSIS ===\n")
	for pos, ps := range stats.PositionResults {
		if ps.Hands > 0 {
			fmt.Fprintf(w, "Button+%d: %d hands, %.3f bb/hand\n", pos, ps.Hands, stats.PositionMean(pos))
		}
	}
}
