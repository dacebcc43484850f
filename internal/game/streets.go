package game

import (
	"fmt"

	"github.com/lox/holdemengine/internal/evaluator"
)

// DealCommunityCards moves the hand on by one phase: the flop, turn or
// river is dealt and bets reset, or after the river the hand goes to
// showdown and the pot is paid out. Betting rounds normally close by
// themselves; this forces the next phase once every bet is matched.
func (g *Game) DealCommunityCards() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != Playing {
		return ErrHandNotInProgress
	}
	for _, p := range g.players {
		if p.canAct() && p.CurrentBet < g.currentBet {
			return fmt.Errorf("%w: %s has %d of %d", ErrBettingRoundOpen, p.ID, p.CurrentBet, g.currentBet)
		}
	}
	g.advance()
	return nil
}

// advance deals the next street, or settles the hand after the river.
func (g *Game) advance() {
	for _, p := range g.players {
		p.CurrentBet = 0
		p.HasActed = false
	}
	g.currentBet = 0

	var n int
	switch g.phase {
	case Preflop:
		n = 3
	case Flop, Turn:
		n = 1
	default:
		g.showdown()
		return
	}

	cards, err := g.dealing.Deal(n)
	if err != nil {
		// StartNewGame checks the deck holds a full board.
		panic(fmt.Sprintf("game: deck ran out mid-hand: %v", err))
	}
	g.board = append(g.board, cards...)
	g.phase++
	g.logger.Debug("Dealt street", "hand", g.id, "phase", g.phase, "board", g.board)

	if g.roundComplete() {
		g.current = -1
	} else {
		g.current = g.nextToAct(g.dealer + 1)
	}
}

// showdown evaluates every player still in and pays the best hands.
func (g *Game) showdown() {
	g.phase = Showdown
	hands := make(map[string]evaluator.Hand, len(g.players))
	for _, p := range g.players {
		if p.IsActive {
			hands[p.ID] = evaluator.Evaluate(p.Hand, g.board)
		}
	}
	g.payout(evaluator.BestHands(hands), hands)
	g.finish()
}

// awardUncontested gives the pot to the last player standing.
func (g *Game) awardUncontested() {
	g.phase = Showdown
	for _, p := range g.players {
		if p.IsActive {
			g.payout([]string{p.ID}, nil)
			break
		}
	}
	g.finish()
}

// payout splits the pot evenly between the winning ids. Chips that do not
// divide evenly go one each to the winners closest to the dealer's left.
//
// TODO: side pots, so an all-in player can only win what they matched.
// Until then a short all-in big blind still sets the bet to the full big
// blind, and callers put in chips that player never matched.
func (g *Game) payout(ids []string, hands map[string]evaluator.Hand) {
	won := make(map[string]bool, len(ids))
	for _, id := range ids {
		won[id] = true
	}
	var winners []*Player
	n := len(g.players)
	for i := 1; i <= n; i++ {
		if p := g.players[(g.dealer+i)%n]; won[p.ID] {
			winners = append(winners, p)
		}
	}
	if len(winners) == 0 {
		return
	}

	share, odd := g.pot/len(winners), g.pot%len(winners)
	for i, p := range winners {
		amount := share
		if i < odd {
			amount++
		}
		p.Chips += amount
		w := Winner{PlayerID: p.ID, Amount: amount}
		if h, ok := hands[p.ID]; ok {
			w.Hand = &h
		}
		g.winners = append(g.winners, w)
		g.logger.Debug("Pot awarded", "hand", g.id, "player", p.ID, "amount", amount)
	}
	g.pot = 0
}

func (g *Game) finish() {
	g.current = -1
	g.status = Waiting
	funded := 0
	for _, p := range g.players {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < MinPlayers {
		g.status = Finished
	}
	g.logger.Debug("Hand complete", "hand", g.id, "status", g.status, "winners", len(g.winners))
}
