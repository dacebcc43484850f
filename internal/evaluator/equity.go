package evaluator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"github.com/lox/holdemengine/internal/deck"
	"github.com/lox/holdemengine/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidEquityInput is returned when an equity request cannot describe a
// real deal.
var ErrInvalidEquityInput = errors.New("invalid equity input")

// Equity is the outcome distribution of a hand against random holdings.
type Equity struct {
	Win     float64
	Tie     float64
	Loss    float64
	Samples int
}

// workerResult holds the results from a Monte Carlo worker
type workerResult struct {
	wins, ties, losses int
}

// EstimateEquity deals out the rest of the board and opponents' hole cards
// samples times and reports how often hole wins, ties or loses. Work is
// spread over one worker per CPU, each with its own seeded RNG, so a given
// seed and worker count always produce the same answer.
func EstimateEquity(ctx context.Context, hole, board []deck.Card, opponents, samples int, seed int64) (Equity, error) {
	if err := validateEquityInput(hole, board, opponents, samples); err != nil {
		return Equity{}, err
	}

	known := make(map[deck.Card]bool, len(hole)+len(board))
	for _, c := range hole {
		known[c] = true
	}
	for _, c := range board {
		known[c] = true
	}
	available := make([]deck.Card, 0, deck.Size-len(known))
	for _, c := range deck.NewDeck(nil).Cards() {
		if !known[c] {
			available = append(available, c)
		}
	}

	workers := min(runtime.NumCPU(), samples)
	perWorker, remainder := samples/workers, samples%workers

	g, ctx := errgroup.WithContext(ctx)
	results := make([]workerResult, workers)
	for w := 0; w < workers; w++ {
		n := perWorker
		if w < remainder {
			n++
		}
		rng := randutil.New(randutil.Derive(seed, w))
		g.Go(func() error {
			res, err := runEquityWorker(ctx, hole, board, available, opponents, n, rng)
			results[w] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Equity{}, err
	}

	var total workerResult
	for _, r := range results {
		total.wins += r.wins
		total.ties += r.ties
		total.losses += r.losses
	}
	n := float64(samples)
	return Equity{
		Win:     float64(total.wins) / n,
		Tie:     float64(total.ties) / n,
		Loss:    float64(total.losses) / n,
		Samples: samples,
	}, nil
}

func validateEquityInput(hole, board []deck.Card, opponents, samples int) error {
	if len(hole) != 2 {
		return fmt.Errorf("%w: need 2 hole cards, got %d", ErrInvalidEquityInput, len(hole))
	}
	if len(board) > 5 {
		return fmt.Errorf("%w: board has %d cards", ErrInvalidEquityInput, len(board))
	}
	if opponents < 1 || opponents > 8 {
		return fmt.Errorf("%w: opponents must be 1-8, got %d", ErrInvalidEquityInput, opponents)
	}
	if samples < 1 {
		return fmt.Errorf("%w: samples must be positive", ErrInvalidEquityInput)
	}
	seen := make(map[deck.Card]bool, 7)
	for _, c := range append(append([]deck.Card{}, hole...), board...) {
		if seen[c] {
			return fmt.Errorf("%w: %s appears twice", ErrInvalidEquityInput, c)
		}
		seen[c] = true
	}
	return nil
}

func runEquityWorker(ctx context.Context, hole, board, available []deck.Card, opponents, samples int, rng *rand.Rand) (workerResult, error) {
	var res workerResult
	pool := make([]deck.Card, len(available))
	copy(pool, available)

	need := 5 - len(board)
	draw := need + 2*opponents
	fullBoard := make([]deck.Card, 5)
	copy(fullBoard, board)

	for i := 0; i < samples; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		// partial Fisher-Yates: the first draw cards of pool become the sample
		for j := 0; j < draw; j++ {
			k := j + rng.IntN(len(pool)-j)
			pool[j], pool[k] = pool[k], pool[j]
		}
		copy(fullBoard[len(board):], pool[:need])

		hero := Evaluate(hole, fullBoard)
		result := 1
		for o := 0; o < opponents; o++ {
			start := need + 2*o
			villain := Evaluate(pool[start:start+2], fullBoard)
			if cmp := Compare(hero, villain); cmp < 0 {
				result = -1
				break
			} else if cmp == 0 {
				result = 0
			}
		}

		switch result {
		case 1:
			res.wins++
		case 0:
			res.ties++
		default:
			res.losses++
		}
	}
	return res, nil
}
