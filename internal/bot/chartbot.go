package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/holdemengine/internal/deck"
	"github.com/lox/holdemengine/internal/evaluator"
	"github.com/lox/holdemengine/internal/game"
)

// Preflop thresholds on the starting hand chart.
const (
	raiseThreshold = 0.85
	callThreshold  = 0.50
)

// ChartBot plays preflop from the starting hand chart and postflop from
// the strength of its made hand.
type ChartBot struct {
	logger *log.Logger
}

// NewChartBot creates a ChartBot. logger may be nil.
func NewChartBot(logger *log.Logger) *ChartBot {
	return &ChartBot{logger: logger}
}

func (c *ChartBot) Decide(state game.GameState, seat game.Player, valid []game.ActionKind) game.Action {
	var (
		a      game.Action
		reason string
	)
	if state.Phase == game.Preflop {
		a, reason = c.preflop(state, seat, valid)
	} else {
		a, reason = c.postflop(state, seat, valid)
	}
	if c.logger != nil {
		c.logger.Debug("Chart bot decision", "player", seat.ID, "phase", state.Phase, "action", a, "reason", reason)
	}
	return a
}

func (c *ChartBot) preflop(state game.GameState, seat game.Player, valid []game.ActionKind) (game.Action, string) {
	pct := deck.StartingHandPercentile(seat.Hand)
	switch {
	case pct >= raiseThreshold:
		return raise(state, seat, valid, 3*state.BigBlind), "premium hand"
	case pct >= callThreshold:
		return passive(valid), "playable hand"
	case has(valid, game.Check):
		return game.CheckAction(), "free look"
	default:
		return game.FoldAction(), "weak hand"
	}
}

func (c *ChartBot) postflop(state game.GameState, seat game.Player, valid []game.ActionKind) (game.Action, string) {
	made := evaluator.Evaluate(seat.Hand, state.CommunityCards)
	switch {
	case made.Rank >= evaluator.TwoPair:
		return raise(state, seat, valid, max(state.Pot/2, state.BigBlind)), made.Name
	case made.Rank == evaluator.OnePair:
		return passive(valid), made.Name
	case has(valid, game.Check):
		return game.CheckAction(), "nothing to protect"
	default:
		return game.FoldAction(), "missed"
	}
}

// raise bets size on top of the current bet, shoving when the stack cannot
// cover it and calling when raising is not allowed.
func raise(state game.GameState, seat game.Player, valid []game.ActionKind, size int) game.Action {
	target := state.CurrentBet + size
	switch {
	case has(valid, game.Bet) && target < seat.CurrentBet+seat.Chips:
		return game.BetAction(target)
	case has(valid, game.AllIn):
		return game.AllInAction()
	default:
		return passive(valid)
	}
}
