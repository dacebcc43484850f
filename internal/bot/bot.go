// Package bot holds scripted players used to drive tables without any
// human input.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/holdemengine/internal/game"
)

// Bot chooses an action for seat given the table state and the actions
// the game will accept.
type Bot interface {
	Decide(state game.GameState, seat game.Player, valid []game.ActionKind) game.Action
}

// Func adapts a plain function to Bot.
type Func func(state game.GameState, seat game.Player, valid []game.ActionKind) game.Action

func (f Func) Decide(state game.GameState, seat game.Player, valid []game.ActionKind) game.Action {
	return f(state, seat, valid)
}

var registry = map[string]func(rng *rand.Rand, logger *log.Logger) Bot{
	"call":   func(*rand.Rand, *log.Logger) Bot { return CallBot{} },
	"fold":   func(*rand.Rand, *log.Logger) Bot { return FoldBot{} },
	"random": func(rng *rand.Rand, _ *log.Logger) Bot { return NewRandomBot(rng) },
	"chart":  func(_ *rand.Rand, logger *log.Logger) Bot { return NewChartBot(logger) },
}

// Names lists the registered bot names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds the named bot. rng is only used by bots that need one.
func ByName(name string, rng *rand.Rand, logger *log.Logger) (Bot, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (want one of %v)", name, Names())
	}
	return build(rng, logger), nil
}

func has(valid []game.ActionKind, kind game.ActionKind) bool {
	return slices.Contains(valid, kind)
}

// passive checks when it can, then calls, then folds.
func passive(valid []game.ActionKind) game.Action {
	switch {
	case has(valid, game.Check):
		return game.CheckAction()
	case has(valid, game.Call):
		return game.CallAction()
	default:
		return game.FoldAction()
	}
}
