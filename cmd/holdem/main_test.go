package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/holdemengine/internal/config"
	"github.com/lox/holdemengine/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHoleAndBoard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		hole    string
		board   string
		wantErr bool
	}{
		{"hole only", "AhKh", "", false},
		{"full board", "AhKh", "QhJhTh2c3d", false},
		{"one hole card", "Ah", "", true},
		{"six board cards", "AhKh", "QhJhTh2c3d4s", true},
		{"duplicate", "AhKh", "AhJh2c", true},
		{"garbage", "AhZz", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hole, board, err := parseHoleAndBoard(tt.hole, tt.board)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, hole, 2)
			assert.LessOrEqual(t, len(board), 5)
		})
	}
}

func TestPlayTable(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tc := config.Default().Tables[0]
	tc.Seed = 42
	res, err := playTable(ctx, tc, 25, log.New(io.Discard))
	require.NoError(t, err)
	assert.True(t, res.played)
	assert.Equal(t, int64(42), res.seed)
	assert.LessOrEqual(t, res.hands, 25)
	assert.Equal(t, 3000, res.final.TotalChips())
	assert.NotEqual(t, game.Playing, res.final.Status)

	for _, id := range res.stats.Players() {
		st, _ := res.stats.Player(id)
		assert.NoError(t, st.Validate(), id)
	}
}

func TestPlayTableUntilOneLeft(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tc := config.TableConfig{
		Name:          "shove",
		SmallBlind:    50,
		BigBlind:      100,
		ActionTimeout: "0s",
		TimeoutAction: "check",
		Seed:          7,
		Players: []config.PlayerConfig{
			{Name: "a", Bot: "call", Chips: 300},
			{Name: "b", Bot: "call", Chips: 300},
		},
	}
	res, err := playTable(ctx, tc, 0, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, game.Finished, res.final.Status)
	assert.Equal(t, 600, res.final.TotalChips())
}

func TestWriteStats(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "reports", "chart.txt")
	require.NoError(t, writeStats(path, []byte("Hands played: 10\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hands played: 10\n", string(data))
}
