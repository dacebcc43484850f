package game

import (
	"fmt"
)

// Apply performs a on behalf of the player with the given id.
func (g *Game) Apply(id string, a Action) error {
	switch a.Kind {
	case Fold:
		return g.Fold(id)
	case Check:
		return g.Check(id)
	case Call:
		return g.Call(id)
	case Bet:
		return g.PlaceBet(id, a.Amount)
	case AllIn:
		return g.AllIn(id)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidAction, a.Kind)
	}
}

// PlaceBet brings the player's bet for this round up to amount. An amount
// above the current bet is a raise and reopens the action.
func (g *Game) PlaceBet(id string, amount int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actor(id)
	if err != nil {
		return err
	}
	if amount < g.currentBet {
		return fmt.Errorf("%w: %d is below %d", ErrBetTooLow, amount, g.currentBet)
	}
	need := amount - p.CurrentBet
	if need > p.Chips {
		return fmt.Errorf("%w: %s needs %d, has %d", ErrInsufficientChips, id, need, p.Chips)
	}

	kind := Bet
	if amount == g.currentBet {
		kind = Call
	}
	g.commit(p, need, kind)
	return nil
}

// Call matches the current bet.
func (g *Game) Call(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actor(id)
	if err != nil {
		return err
	}
	need := g.currentBet - p.CurrentBet
	if need > p.Chips {
		return fmt.Errorf("%w: %s needs %d to call, has %d", ErrInsufficientChips, id, need, p.Chips)
	}
	g.commit(p, need, Call)
	return nil
}

// Check passes when there is nothing to call.
func (g *Game) Check(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actor(id)
	if err != nil {
		return err
	}
	if p.CurrentBet != g.currentBet {
		return fmt.Errorf("%w: %d to call", ErrCannotCheck, g.currentBet-p.CurrentBet)
	}
	g.commit(p, 0, Check)
	return nil
}

// AllIn puts the player's whole stack in, which may be less than a call.
func (g *Game) AllIn(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actor(id)
	if err != nil {
		return err
	}
	g.commit(p, p.Chips, AllIn)
	return nil
}

// Fold gives up the hand. When only one player is left they take the pot
// without a showdown.
func (g *Game) Fold(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, err := g.actor(id)
	if err != nil {
		return err
	}
	p.IsActive = false
	p.HasActed = true
	g.record(p, Fold, 0)
	g.logger.Debug("Player folded", "hand", g.id, "player", p.ID, "phase", g.phase)

	g.current = g.nextToAct(p.Position + 1)
	g.progress()
	return nil
}

// actor returns the player for id if they are allowed to act now.
func (g *Game) actor(id string) (*Player, error) {
	if g.status != Playing {
		return nil, ErrHandNotInProgress
	}
	p := g.find(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	if !p.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrPlayerFolded, id)
	}
	if g.current < 0 || g.players[g.current] != p {
		return nil, fmt.Errorf("%w: %s", ErrNotYourTurn, id)
	}
	return p, nil
}

// commit moves chips from p into the pot and passes the turn on.
func (g *Game) commit(p *Player, chips int, kind ActionKind) {
	p.Chips -= chips
	p.CurrentBet += chips
	p.TotalBet += chips
	g.pot += chips
	if p.Chips == 0 {
		p.IsAllIn = true
	}
	if p.CurrentBet > g.currentBet {
		g.currentBet = p.CurrentBet
		for _, other := range g.players {
			if other != p {
				other.HasActed = false
			}
		}
	}
	p.HasActed = true
	g.record(p, kind, chips)
	g.logger.Debug("Player acted", "hand", g.id, "player", p.ID, "action", kind, "amount", chips, "pot", g.pot)

	g.current = g.nextToAct(p.Position + 1)
	g.progress()
}

// needsAction reports whether p still owes a decision this round.
func (g *Game) needsAction(p *Player) bool {
	return p.canAct() && (!p.HasActed || p.CurrentBet < g.currentBet)
}

// nextToAct returns the first seat from `from` onwards, wrapping, whose
// player still owes a decision, or -1.
func (g *Game) nextToAct(from int) int {
	n := len(g.players)
	for i := 0; i < n; i++ {
		pos := (from + i) % n
		if g.needsAction(g.players[pos]) {
			return pos
		}
	}
	return -1
}

// roundComplete reports whether the betting round is over: everyone who
// can still act has matched the bet and had a turn. A lone player who can
// act only needs to have matched.
func (g *Game) roundComplete() bool {
	able := 0
	for _, p := range g.players {
		if !p.canAct() {
			continue
		}
		able++
		if p.CurrentBet < g.currentBet {
			return false
		}
	}
	if able <= 1 {
		return true
	}
	for _, p := range g.players {
		if p.canAct() && !p.HasActed {
			return false
		}
	}
	return true
}

func (g *Game) activeCount() int {
	n := 0
	for _, p := range g.players {
		if p.IsActive {
			n++
		}
	}
	return n
}

// progress moves the hand on after a change. It ends the hand when one
// player is left, deals the next street when betting is done and keeps
// dealing while nobody is left to bet.
func (g *Game) progress() {
	for g.status == Playing {
		if g.activeCount() == 1 {
			g.awardUncontested()
			return
		}
		if !g.roundComplete() {
			return
		}
		g.advance()
	}
}
