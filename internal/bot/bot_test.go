package bot

import (
	"testing"

	"github.com/lox/holdemengine/internal/deck"
	"github.com/lox/holdemengine/internal/game"
	"github.com/lox/holdemengine/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func preflopState(hand string, chips int) (game.GameState, game.Player) {
	seat := game.Player{ID: "hero", Chips: chips, Hand: deck.MustParseCards(hand), IsActive: true}
	state := game.GameState{
		Phase:      game.Preflop,
		Status:     game.Playing,
		CurrentBet: 10,
		BigBlind:   10,
		Pot:        15,
		Players:    []game.Player{seat},
	}
	return state, seat
}

var facingBet = []game.ActionKind{game.Fold, game.Call, game.Bet, game.AllIn}

func TestByName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"call", "chart", "fold", "random"}, Names())
	for _, name := range Names() {
		b, err := ByName(name, randutil.New(1), nil)
		require.NoError(t, err, name)
		assert.NotNil(t, b)
	}
	_, err := ByName("shark", nil, nil)
	assert.Error(t, err)
}

func TestFoldBot(t *testing.T) {
	t.Parallel()
	state, seat := preflopState("AsAh", 1000)
	assert.Equal(t, game.FoldAction(), FoldBot{}.Decide(state, seat, facingBet))
	assert.Equal(t, game.CheckAction(), FoldBot{}.Decide(state, seat, []game.ActionKind{game.Fold, game.Check, game.Bet, game.AllIn}))
}

func TestCallBot(t *testing.T) {
	t.Parallel()
	state, seat := preflopState("7c2d", 1000)
	assert.Equal(t, game.CallAction(), CallBot{}.Decide(state, seat, facingBet))
	assert.Equal(t, game.CheckAction(), CallBot{}.Decide(state, seat, []game.ActionKind{game.Fold, game.Check, game.Bet, game.AllIn}))
	assert.Equal(t, game.AllInAction(), CallBot{}.Decide(state, seat, []game.ActionKind{game.Fold, game.AllIn}))
}

func TestChartBotPreflop(t *testing.T) {
	t.Parallel()
	b := NewChartBot(nil)

	state, seat := preflopState("AsAh", 1000)
	assert.Equal(t, game.BetAction(40), b.Decide(state, seat, facingBet))

	state, seat = preflopState("AsAh", 25)
	assert.Equal(t, game.AllInAction(), b.Decide(state, seat, facingBet), "short stack shoves")

	state, seat = preflopState("5s5d", 1000)
	assert.Equal(t, game.CallAction(), b.Decide(state, seat, facingBet))

	state, seat = preflopState("7c2d", 1000)
	assert.Equal(t, game.FoldAction(), b.Decide(state, seat, facingBet))
}

func TestChartBotPostflop(t *testing.T) {
	t.Parallel()
	b := NewChartBot(nil)
	state, seat := preflopState("AsKd", 1000)
	state.Phase = game.Flop
	state.CurrentBet = 0
	state.Pot = 100
	free := []game.ActionKind{game.Fold, game.Check, game.Bet, game.AllIn}

	state.CommunityCards = deck.MustParseCards("AhKc2d")
	assert.Equal(t, game.BetAction(50), b.Decide(state, seat, free), "two pair bets half the pot")

	state.CommunityCards = deck.MustParseCards("Ah7c2d")
	assert.Equal(t, game.CheckAction(), b.Decide(state, seat, free))

	state.CommunityCards = deck.MustParseCards("9h7c2d")
	assert.Equal(t, game.FoldAction(), b.Decide(state, seat, facingBet))
}

func TestRandomBotBetsWithinStack(t *testing.T) {
	t.Parallel()
	b := NewRandomBot(randutil.New(3))
	state, seat := preflopState("7c2d", 25)
	for i := 0; i < 200; i++ {
		a := b.Decide(state, seat, facingBet)
		assert.Contains(t, facingBet, a.Kind)
		if a.Kind == game.Bet {
			assert.Greater(t, a.Amount, state.CurrentBet)
			assert.LessOrEqual(t, a.Amount, seat.Chips)
		}
	}
}

// TestBotsPlayLegalHands seats every bot at one game and checks they only
// ever choose actions the game accepts.
func TestBotsPlayLegalHands(t *testing.T) {
	t.Parallel()
	rng := randutil.New(11)
	bots := map[string]Bot{
		"call":   CallBot{},
		"fold":   FoldBot{},
		"random": NewRandomBot(rng),
		"chart":  NewChartBot(nil),
	}
	roster := []game.Seat{
		{ID: "call", Chips: 500},
		{ID: "fold", Chips: 500},
		{ID: "random", Chips: 500},
		{ID: "chart", Chips: 500},
	}

	g, err := game.New(game.Config{SmallBlind: 5, BigBlind: 10, Seed: 5})
	require.NoError(t, err)

	for hand := 0; hand < 100 && len(roster) >= game.MinPlayers; hand++ {
		require.NoError(t, g.StartNewGame(roster))
		for g.Status() == game.Playing {
			p, ok := g.CurrentPlayer()
			require.True(t, ok)
			a := bots[p.ID].Decide(g.State(), p, g.ValidActions())
			require.NoError(t, g.Apply(p.ID, a), "%s chose %s", p.ID, a)
		}
		require.Equal(t, 2000, g.TotalChips())

		roster = roster[:0]
		for _, p := range g.State().Players {
			if p.Chips > 0 {
				roster = append(roster, game.Seat{ID: p.ID, Chips: p.Chips})
			}
		}
	}
}
