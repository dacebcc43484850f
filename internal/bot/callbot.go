package bot

import "github.com/lox/holdemengine/internal/game"

// CallBot checks or calls every street. Facing a bet bigger than its
// stack it goes all-in.
type CallBot struct{}

func (CallBot) Decide(_ game.GameState, _ game.Player, valid []game.ActionKind) game.Action {
	if !has(valid, game.Check) && !has(valid, game.Call) && has(valid, game.AllIn) {
		return game.AllInAction()
	}
	return passive(valid)
}
