package game

import (
	"testing"

	"github.com/lox/holdemengine/internal/deck"
	"github.com/lox/holdemengine/internal/randutil"
	"github.com/stretchr/testify/require"
)

// TestRandomPlayKeepsInvariants plays many hands with random legal actions
// and checks the table-wide invariants after every step.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	t.Parallel()
	rng := randutil.New(7)

	for table := 0; table < 20; table++ {
		n := 2 + rng.IntN(MaxPlayers-1)
		roster := make([]Seat, n)
		total := 0
		for i := range roster {
			roster[i] = Seat{ID: names[i], Chips: 50 + rng.IntN(500)}
			total += roster[i].Chips
		}

		g, err := New(Config{SmallBlind: 5, BigBlind: 10}, WithRNG(randutil.New(int64(table))))
		require.NoError(t, err)

		for hand := 0; hand < 30 && len(roster) >= MinPlayers; hand++ {
			require.NoError(t, g.StartNewGame(roster))
			checkInvariants(t, g, total)

			for steps := 0; g.Status() == Playing; steps++ {
				require.Less(t, steps, 500, "hand did not finish")
				p, ok := g.CurrentPlayer()
				require.True(t, ok, "live hand with nobody to act")

				valid := g.ValidActions()
				require.NotEmpty(t, valid)
				a := Action{Kind: valid[rng.IntN(len(valid))]}
				if a.Kind == Bet {
					s := g.State()
					ceiling := p.CurrentBet + p.Chips
					a.Amount = s.CurrentBet + 1 + rng.IntN(ceiling-s.CurrentBet)
				}
				require.NoError(t, g.Apply(p.ID, a), "%s %s", p.ID, a)
				checkInvariants(t, g, total)
			}

			roster = roster[:0]
			for _, p := range g.State().Players {
				if p.Chips > 0 {
					roster = append(roster, Seat{ID: p.ID, Chips: p.Chips})
				}
			}
		}
	}
}

func checkInvariants(t *testing.T, g *Game, total int) {
	t.Helper()
	s := g.State()
	require.Equal(t, total, s.TotalChips(), "chips were created or destroyed")

	switch s.Phase {
	case Preflop:
		require.Empty(t, s.CommunityCards)
	case Flop:
		require.Len(t, s.CommunityCards, 3)
	case Turn:
		require.Len(t, s.CommunityCards, 4)
	case River:
		require.Len(t, s.CommunityCards, 5)
	}

	seen := make(map[deck.Card]bool)
	for _, c := range s.CommunityCards {
		require.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	for _, p := range s.Players {
		require.GreaterOrEqual(t, p.Chips, 0)
		require.LessOrEqual(t, p.CurrentBet, s.CurrentBet)
		for _, c := range p.Hand {
			require.False(t, seen[c], "duplicate card %s", c)
			seen[c] = true
		}
	}

	if s.Status != Playing {
		require.Zero(t, s.Pot, "pot must be paid out")
		return
	}
	if s.CurrentPlayerPosition >= 0 {
		p := s.Players[s.CurrentPlayerPosition]
		require.True(t, p.IsActive && !p.IsAllIn, "%s cannot act", p.ID)
	}
}
