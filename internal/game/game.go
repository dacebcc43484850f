package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/holdemengine/internal/deck"
	"github.com/lox/holdemengine/internal/gameid"
	"github.com/lox/holdemengine/internal/randutil"
)

// Table size limits.
const (
	MinPlayers = 2
	MaxPlayers = 9
)

const (
	holeCards  = 2
	boardCards = 5
)

// Game runs hands for one table.
type Game struct {
	mu sync.Mutex

	smallBlind int
	bigBlind   int
	rng        *rand.Rand
	newID      func() string
	logger     *log.Logger

	shoe    *deck.Deck // reused and reshuffled each hand
	stacked *deck.Deck // dealt as-is for the next hand
	dealing *deck.Deck // the deck the current hand deals from

	id            string
	handNumber    int
	players       []*Player
	board         []deck.Card
	pot           int
	currentBet    int
	dealer        int
	smallBlindPos int
	bigBlindPos   int
	current       int
	phase         Phase
	status        Status
	winners       []Winner
	actions       []ActionRecord
}

// New creates a game with no hand in progress.
func New(cfg Config, opts ...Option) (*Game, error) {
	if cfg.SmallBlind <= 0 {
		return nil, fmt.Errorf("%w: small blind must be positive, got %d", ErrInvalidBlinds, cfg.SmallBlind)
	}
	if cfg.BigBlind == 0 {
		cfg.BigBlind = 2 * cfg.SmallBlind
	}
	if cfg.BigBlind < cfg.SmallBlind {
		return nil, fmt.Errorf("%w: big blind %d is below small blind %d", ErrInvalidBlinds, cfg.BigBlind, cfg.SmallBlind)
	}

	g := &Game{
		smallBlind:    cfg.SmallBlind,
		bigBlind:      cfg.BigBlind,
		logger:        log.New(io.Discard),
		dealer:        -1,
		smallBlindPos: -1,
		bigBlindPos:   -1,
		current:       -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		if cfg.Seed != 0 {
			g.rng = randutil.New(cfg.Seed)
		} else {
			g.rng, _ = randutil.NewTimeSeeded()
		}
	}
	if g.newID == nil {
		g.newID = gameid.Generate
	}
	g.shoe = deck.NewDeck(g.rng)
	return g, nil
}

// StackDeck makes the next hand deal from d exactly as stacked.
func (g *Game) StackDeck(d *deck.Deck) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stacked = d
}

// StartNewGame deals a new hand to seats, in seat order. The dealer button
// starts on seat 0 and moves to the next player still seated every hand. Blinds are posted
// and the player left of the big blind is first to act; heads-up the
// dealer posts the small blind and acts first.
func (g *Game) StartNewGame(seats []Seat) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status == Playing {
		return ErrHandInProgress
	}
	if err := validateSeats(seats); err != nil {
		return err
	}

	n := len(seats)
	d := g.shoe
	if g.stacked != nil {
		d = g.stacked
		if need := holeCards*n + boardCards; d.CardsRemaining() < need {
			return fmt.Errorf("%w: stacked deck has %d cards, hand needs %d", deck.ErrInsufficientCards, d.CardsRemaining(), need)
		}
	} else {
		d.Reset()
		d.Shuffle()
	}

	dealer := g.nextDealer(seats)
	sb, bb := (dealer+1)%n, (dealer+2)%n
	if n == 2 {
		sb, bb = dealer, (dealer+1)%n
	}

	players := make([]*Player, n)
	for i, s := range seats {
		cards, err := d.Deal(holeCards)
		if err != nil {
			return fmt.Errorf("dealing hole cards: %w", err)
		}
		name := s.Name
		if name == "" {
			name = s.ID
		}
		players[i] = &Player{
			ID:       s.ID,
			Name:     name,
			Chips:    s.Chips,
			Hand:     cards,
			IsActive: true,
			IsDealer: i == dealer,
			Position: i,
		}
	}

	g.stacked = nil
	g.dealing = d
	g.players = players
	g.dealer, g.smallBlindPos, g.bigBlindPos = dealer, sb, bb
	g.board = make([]deck.Card, 0, boardCards)
	g.pot, g.currentBet = 0, 0
	g.winners, g.actions = nil, nil
	g.phase, g.status = Preflop, Playing
	g.handNumber++
	g.id = g.newID()

	g.logger.Debug("Starting hand", "hand", g.id, "number", g.handNumber, "players", n, "dealer", players[dealer].ID)

	g.postBlind(players[sb], g.smallBlind)
	g.postBlind(players[bb], g.bigBlind)
	g.currentBet = g.bigBlind

	// Heads-up this wraps round to the dealer.
	g.current = g.nextToAct(bb + 1)
	g.progress()
	return nil
}

// nextDealer finds the button for a new hand: the first player after the
// previous dealer, in the previous hand's seat order, who is still seated.
func (g *Game) nextDealer(seats []Seat) int {
	if g.handNumber == 0 {
		return 0
	}
	index := make(map[string]int, len(seats))
	for i, s := range seats {
		index[s.ID] = i
	}
	n := len(g.players)
	for i := 1; i <= n; i++ {
		if pos, ok := index[g.players[(g.dealer+i)%n].ID]; ok {
			return pos
		}
	}
	return 0
}

func validateSeats(seats []Seat) error {
	if len(seats) < MinPlayers || len(seats) > MaxPlayers {
		return fmt.Errorf("%w: need %d-%d players, got %d", ErrInvalidPlayerCount, MinPlayers, MaxPlayers, len(seats))
	}
	seen := make(map[string]bool, len(seats))
	for _, s := range seats {
		if s.ID == "" {
			return fmt.Errorf("%w: empty player id", ErrUnknownPlayer)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, s.ID)
		}
		seen[s.ID] = true
		if s.Chips <= 0 {
			return fmt.Errorf("%w: %s has %d chips", ErrInvalidChips, s.ID, s.Chips)
		}
	}
	return nil
}

// postBlind takes up to amount from p, putting p all-in when the stack is
// short.
func (g *Game) postBlind(p *Player, amount int) {
	paid := min(amount, p.Chips)
	p.Chips -= paid
	p.CurrentBet += paid
	p.TotalBet += paid
	g.pot += paid
	if p.Chips == 0 {
		p.IsAllIn = true
	}
	g.record(p, PostBlind, paid)
}

func (g *Game) record(p *Player, kind ActionKind, amount int) {
	g.actions = append(g.actions, ActionRecord{
		PlayerID: p.ID,
		Phase:    g.phase,
		Kind:     kind,
		Amount:   amount,
		PotAfter: g.pot,
	})
}

// State returns a deep copy of the game.
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	players := make([]Player, len(g.players))
	for i, p := range g.players {
		players[i] = *p
		players[i].Hand = slices.Clone(p.Hand)
	}
	winners := slices.Clone(g.winners)
	for i, w := range winners {
		if w.Hand != nil {
			h := *w.Hand
			h.Cards = slices.Clone(h.Cards)
			winners[i].Hand = &h
		}
	}

	return GameState{
		ID:                    g.id,
		HandNumber:            g.handNumber,
		Players:               players,
		CommunityCards:        slices.Clone(g.board),
		Pot:                   g.pot,
		CurrentBet:            g.currentBet,
		DealerPosition:        g.dealer,
		SmallBlindPosition:    g.smallBlindPos,
		BigBlindPosition:      g.bigBlindPos,
		CurrentPlayerPosition: g.current,
		Phase:                 g.phase,
		Status:                g.status,
		SmallBlind:            g.smallBlind,
		BigBlind:              g.bigBlind,
		Winners:               winners,
		Actions:               slices.Clone(g.actions),
	}
}

// CurrentPlayer returns a copy of the player whose turn it is.
func (g *Game) CurrentPlayer() (Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status != Playing || g.current < 0 {
		return Player{}, false
	}
	p := *g.players[g.current]
	p.Hand = slices.Clone(p.Hand)
	return p, true
}

// ValidActions lists what the current player may do. It is empty when
// nobody is to act.
func (g *Game) ValidActions() []ActionKind {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status != Playing || g.current < 0 {
		return nil
	}

	p := g.players[g.current]
	toCall := g.currentBet - p.CurrentBet
	actions := []ActionKind{Fold}
	if toCall == 0 {
		actions = append(actions, Check)
	} else if toCall <= p.Chips {
		actions = append(actions, Call)
	}
	if p.Chips > toCall {
		actions = append(actions, Bet)
	}
	return append(actions, AllIn)
}

// TotalChips is every chip at the table, stacks plus pot. It does not
// change while a hand is played.
func (g *Game) TotalChips() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := g.pot
	for _, p := range g.players {
		total += p.Chips
	}
	return total
}

// Status reports whether a hand is live.
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

func (g *Game) find(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
