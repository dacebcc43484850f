package bot

import "github.com/lox/holdemengine/internal/game"

// FoldBot checks when it is free and folds otherwise.
type FoldBot struct{}

func (FoldBot) Decide(_ game.GameState, _ game.Player, valid []game.ActionKind) game.Action {
	if has(valid, game.Check) {
		return game.CheckAction()
	}
	return game.FoldAction()
}
