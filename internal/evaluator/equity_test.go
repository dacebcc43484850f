package evaluator

import (
	"context"
	"testing"

	"github.com/lox/holdemengine/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateEquityRoyalFlushNeverLoses(t *testing.T) {
	t.Parallel()
	hole := deck.MustParseCards("AhKh")
	board := deck.MustParseCards("QhJh10h")

	eq, err := EstimateEquity(context.Background(), hole, board, 3, 500, 1)
	require.NoError(t, err)
	assert.Equal(t, 500, eq.Samples)
	assert.InDelta(t, 1.0, eq.Win, 1e-9)
	assert.Zero(t, eq.Loss)
}

func TestEstimateEquityAcesPreflop(t *testing.T) {
	t.Parallel()
	eq, err := EstimateEquity(context.Background(), deck.MustParseCards("AsAd"), nil, 1, 4000, 7)
	require.NoError(t, err)
	// Aces are roughly 85% against one random hand.
	assert.InDelta(t, 0.85, eq.Win+eq.Tie/2, 0.04)
	assert.InDelta(t, 1.0, eq.Win+eq.Tie+eq.Loss, 1e-9)
}

func TestEstimateEquityIsReproducible(t *testing.T) {
	t.Parallel()
	hole := deck.MustParseCards("9c8c")
	board := deck.MustParseCards("7c2d")
	a, err := EstimateEquity(context.Background(), hole, board, 2, 1000, 99)
	require.NoError(t, err)
	b, err := EstimateEquity(context.Background(), hole, board, 2, 1000, 99)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEstimateEquityValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tests := []struct {
		name      string
		hole      string
		board     string
		opponents int
		samples   int
	}{
		{"one hole card", "As", "", 1, 10},
		{"six board cards", "AsAd", "2c3c4c5c6c7c", 1, 10},
		{"no opponents", "AsAd", "", 0, 10},
		{"too many opponents", "AsAd", "", 9, 10},
		{"no samples", "AsAd", "", 1, 0},
		{"duplicate card", "AsAd", "As2c3c", 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateEquity(ctx, deck.MustParseCards(tt.hole), deck.MustParseCards(tt.board), tt.opponents, tt.samples, 1)
			assert.ErrorIs(t, err, ErrInvalidEquityInput)
		})
	}
}

func TestEstimateEquityCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EstimateEquity(ctx, deck.MustParseCards("AsAd"), nil, 1, 1000, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
