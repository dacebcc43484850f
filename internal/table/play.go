package table

import (
	"context"
	"errors"

	"github.com/lox/holdemengine/internal/game"
)

// Decider picks an action for the player whose turn it is.
type Decider func(Turn) game.Action

// PlayHand drives the live hand to the end, asking decide for every
// decision, and returns the final state. An action the game rejects is
// replaced with a fold.
func (t *Table) PlayHand(ctx context.Context, decide Decider) (game.GameState, error) {
	for {
		turn, ok, err := t.Turn(ctx)
		if err != nil {
			return game.GameState{}, err
		}
		if !ok {
			if turn.State.Status != game.Playing {
				return turn.State, nil
			}
			if err := t.Deal(ctx); err != nil && !stale(err) {
				return game.GameState{}, err
			}
			continue
		}

		a := decide(turn)
		err = t.Act(ctx, turn.Player.ID, a)
		if err == nil || stale(err) {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrTableClosed) {
			return game.GameState{}, err
		}

		t.logger.Warn("Rejected action, folding instead", "player", turn.Player.ID, "action", a, "error", err)
		if err := t.Act(ctx, turn.Player.ID, game.FoldAction()); err != nil && !stale(err) {
			return game.GameState{}, err
		}
	}
}

// stale reports errors caused by the turn moving on before an action
// arrived, usually because the player timed out.
func stale(err error) bool {
	return errors.Is(err, game.ErrNotYourTurn) ||
		errors.Is(err, game.ErrPlayerFolded) ||
		errors.Is(err, game.ErrHandNotInProgress)
}
