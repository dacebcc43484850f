package bot

import (
	rand "math/rand/v2"

	"github.com/lox/holdemengine/internal/game"
	"github.com/lox/holdemengine/internal/randutil"
)

// RandomBot picks a uniformly random legal action. Bets are one to four
// big blinds over the current bet, capped at its stack.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot returns a RandomBot drawing from rng, or from a time seeded
// source when rng is nil.
func NewRandomBot(rng *rand.Rand) *RandomBot {
	if rng == nil {
		rng, _ = randutil.NewTimeSeeded()
	}
	return &RandomBot{rng: rng}
}

func (r *RandomBot) Decide(state game.GameState, seat game.Player, valid []game.ActionKind) game.Action {
	if len(valid) == 0 {
		return game.FoldAction()
	}
	switch kind := valid[r.rng.IntN(len(valid))]; kind {
	case game.Bet:
		ceiling := seat.CurrentBet + seat.Chips
		amount := state.CurrentBet + state.BigBlind*(1+r.rng.IntN(4))
		return game.BetAction(min(amount, ceiling))
	default:
		return game.Action{Kind: kind}
	}
}
