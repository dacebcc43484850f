package simulator

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		config Config
	}{
		{"no hands", Config{Hero: "chart", Opponent: "call"}},
		{"unknown hero", Config{Hands: 1, Hero: "shark", Opponent: "call"}},
		{"unknown opponent", Config{Hands: 1, Hero: "chart", Opponent: "shark"}},
		{"one seat", Config{Hands: 1, Hero: "chart", Opponent: "call", Seats: 1}},
		{"ten seats", Config{Hands: 1, Hero: "chart", Opponent: "call", Seats: 10}},
	}
	for _, tt := range tests {
		_, err := New(tt.config)
		assert.Error(t, err, tt.name)
	}

	sim, err := New(Config{Hands: 1, Hero: "chart", Opponent: Mixed, Seats: 4})
	require.NoError(t, err)
	assert.Equal(t, "mixed(chart,random,call)", sim.Opponents())
}

func TestRunHeadsUpFoldersTradeBlinds(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{Hands: 2, Hero: "fold", Opponent: "fold", Seats: 2, Seed: 1})
	require.NoError(t, err)

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Hands)
	assert.Equal(t, []float64{-0.5, 0.5, 0.5, -0.5}, stats.Values)
	assert.Zero(t, stats.Mean())
	assert.Equal(t, 2, stats.NonShowdownWins)
	assert.Zero(t, stats.ShowdownWins)
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()
	run := func() []float64 {
		sim, err := New(Config{Hands: 20, Hero: "chart", Opponent: Mixed, Seed: 99})
		require.NoError(t, err)
		stats, err := sim.Run(context.Background())
		require.NoError(t, err)
		return stats.Values
	}
	assert.Equal(t, run(), run())
}

func TestRunRotatesPositions(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{Hands: 6, Hero: "random", Opponent: "call", Seats: 6, Seed: 3})
	require.NoError(t, err)

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Hands)
	// Each seat once, plus the duplicate of every deal: seat 1 for the
	// button's deal and the button for the rest.
	assert.Equal(t, 6, stats.PositionResults[0].Hands)
	assert.Equal(t, 2, stats.PositionResults[1].Hands)
	for pos := 2; pos < 6; pos++ {
		assert.Equal(t, 1, stats.PositionResults[pos].Hands, "position %d", pos)
	}
	assert.NoError(t, stats.Validate())
}

func TestRunStopsWhenCancelled(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{Hands: 100, Hero: "call", Opponent: "call"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()
	sim, err := New(Config{Hands: 5, Hero: "chart", Opponent: "call", Seed: 5})
	require.NoError(t, err)
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, stats, sim.Opponents())
	out := buf.String()
	assert.Contains(t, out, "FINAL RESULTS vs call")
	assert.Contains(t, out, "Hands played: 10")
	assert.Contains(t, out, "POSITION ANALYSIS")
}
