package game

import (
	"fmt"

	"github.com/lox/holdemengine/internal/deck"
	"github.com/lox/holdemengine/internal/evaluator"
)

// Phase is the street a hand is on.
type Phase int

const (
	Preflop Phase = iota
	Flop
	Turn
	River
	Showdown
)

func (p Phase) String() string {
	switch p {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// Status says whether a hand is being played.
type Status int

const (
	// Waiting means no hand is live and a new one may be started.
	Waiting Status = iota
	Playing
	// Finished means fewer than two players have chips left.
	Finished
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// ActionKind identifies a player decision.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	AllIn
	// PostBlind only appears in the action log.
	PostBlind
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case AllIn:
		return "allin"
	case PostBlind:
		return "blind"
	default:
		return "unknown"
	}
}

// Action is a player decision. Amount is only read for Bet, where it is
// the total the player wants in front of them this round.
type Action struct {
	Kind   ActionKind
	Amount int
}

func FoldAction() Action  { return Action{Kind: Fold} }
func CheckAction() Action { return Action{Kind: Check} }
func CallAction() Action  { return Action{Kind: Call} }
func AllInAction() Action { return Action{Kind: AllIn} }

// BetAction bets or raises to amount.
func BetAction(amount int) Action { return Action{Kind: Bet, Amount: amount} }

func (a Action) String() string {
	if a.Kind == Bet {
		return fmt.Sprintf("bet %d", a.Amount)
	}
	return a.Kind.String()
}

// Seat is a roster entry for StartNewGame.
type Seat struct {
	ID    string
	Name  string
	Chips int
}

// Player is a participant in the current hand.
type Player struct {
	ID       string
	Name     string
	Chips    int
	Hand     []deck.Card
	IsActive bool // false once folded
	IsDealer bool
	IsAllIn  bool
	// CurrentBet is what the player has put in during this betting round.
	CurrentBet int
	// TotalBet is what the player has put in during the whole hand.
	TotalBet int
	Position int
	HasActed bool
}

// canAct reports whether the player can still make decisions.
func (p *Player) canAct() bool {
	return p.IsActive && !p.IsAllIn
}

// Winner is one share of a paid out pot. Hand is nil when everyone else
// folded.
type Winner struct {
	PlayerID string
	Amount   int
	Hand     *evaluator.Hand
}

// ActionRecord logs one chip movement (or check/fold) during the hand.
type ActionRecord struct {
	PlayerID string
	Phase    Phase
	Kind     ActionKind
	Amount   int // chips moved into the pot
	PotAfter int
}

// GameState is a snapshot of a game. It shares no memory with the game it
// came from.
type GameState struct {
	ID                    string
	HandNumber            int
	Players               []Player
	CommunityCards        []deck.Card
	Pot                   int
	CurrentBet            int
	DealerPosition        int
	SmallBlindPosition    int
	BigBlindPosition      int
	CurrentPlayerPosition int // -1 when nobody is to act
	Phase                 Phase
	Status                Status
	SmallBlind            int
	BigBlind              int
	Winners               []Winner
	Actions               []ActionRecord
}

// Player looks up a player by id.
func (s GameState) Player(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// ToCall returns how many chips p needs to put in to match the current bet.
func (s GameState) ToCall(p Player) int {
	return max(0, s.CurrentBet-p.CurrentBet)
}

// TotalChips is every chip on the table, stacks plus pot.
func (s GameState) TotalChips() int {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Chips
	}
	return total
}
