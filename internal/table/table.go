// Package table serialises play at a single poker table. Each Table runs
// one goroutine that owns its game; every action, deal and snapshot goes
// through that goroutine in the order it arrives.
package table

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/holdemengine/internal/game"
	"github.com/thoas/go-funk"
)

// ErrTableClosed is returned by calls made after the table stopped.
var ErrTableClosed = errors.New("table closed")

// TimeoutAction is what the table does for a player who runs out of time.
type TimeoutAction string

const (
	// TimeoutCheck checks when that is legal and folds otherwise.
	TimeoutCheck TimeoutAction = "check"
	// TimeoutFold always folds.
	TimeoutFold TimeoutAction = "fold"
)

// Config holds table settings.
type Config struct {
	Game game.Config
	// ActionTimeout is how long a player may take; zero waits forever.
	ActionTimeout time.Duration
	TimeoutAction TimeoutAction
}

// Turn is the decision the table is waiting on.
type Turn struct {
	State  game.GameState
	Player game.Player
	Valid  []game.ActionKind
}

// Table runs one game behind a command channel.
type Table struct {
	id     string
	cfg    Config
	game   *game.Game
	logger *log.Logger
	clock  quartz.Clock

	commands chan func()
	timeouts chan uint64
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	// Owned by the Run goroutine.
	timer   *quartz.Timer
	turnSeq uint64

	subsMu  sync.Mutex
	subs    map[int]chan game.GameState
	nextSub int
	stopped bool // set once Run has released the subscribers
}

// New creates a table. Run must be called before it accepts commands.
func New(id string, cfg Config, logger *log.Logger, clock quartz.Clock, opts ...game.Option) (*Table, error) {
	if cfg.TimeoutAction == "" {
		cfg.TimeoutAction = TimeoutCheck
	}
	if cfg.TimeoutAction != TimeoutCheck && cfg.TimeoutAction != TimeoutFold {
		return nil, fmt.Errorf("unknown timeout action %q", cfg.TimeoutAction)
	}

	logger = logger.WithPrefix("table " + id)
	g, err := game.New(cfg.Game, append([]game.Option{game.WithLogger(logger)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", id, err)
	}

	return &Table{
		id:       id,
		cfg:      cfg,
		game:     g,
		logger:   logger,
		clock:    clock,
		commands: make(chan func()),
		timeouts: make(chan uint64),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		subs:     make(map[int]chan game.GameState),
	}, nil
}

// ID returns the table id.
func (t *Table) ID() string {
	return t.id
}

// Run processes commands until ctx is cancelled or Close is called.
func (t *Table) Run(ctx context.Context) error {
	defer close(t.done)
	defer t.stopTimer()
	defer t.closeSubscribers()

	t.logger.Debug("Table running")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.stopCh:
			return nil
		case cmd := <-t.commands:
			cmd()
		case seq := <-t.timeouts:
			t.handleTimeout(seq)
		}
	}
}

// Close stops the table.
func (t *Table) Close() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
	})
}

// Done is closed once Run has returned.
func (t *Table) Done() <-chan struct{} {
	return t.done
}

// do runs fn on the table goroutine and waits for it.
func (t *Table) do(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	select {
	case t.commands <- func() { errc <- fn() }:
	case <-t.done:
		return ErrTableClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// mutate runs fn on the table goroutine and, when it succeeds, publishes
// the new state and re-arms the action timer.
func (t *Table) mutate(ctx context.Context, fn func() error) error {
	return t.do(ctx, func() error {
		if err := fn(); err != nil {
			return err
		}
		t.changed()
		return nil
	})
}

// Start deals the first hand to seats.
func (t *Table) Start(ctx context.Context, seats []game.Seat) error {
	return t.mutate(ctx, func() error {
		if err := t.game.StartNewGame(seats); err != nil {
			return err
		}
		t.logger.Info("Hand started", "players", len(seats))
		return nil
	})
}

// NextHand deals a new hand to every player from the last hand who still
// has chips, moving the dealer button on.
func (t *Table) NextHand(ctx context.Context) error {
	return t.mutate(ctx, func() error {
		last := t.game.State()
		if last.HandNumber == 0 {
			return fmt.Errorf("%w: no previous hand", game.ErrHandNotInProgress)
		}
		funded := funk.Filter(last.Players, func(p game.Player) bool {
			return p.Chips > 0
		}).([]game.Player)
		seats := funk.Map(funded, func(p game.Player) game.Seat {
			return game.Seat{ID: p.ID, Name: p.Name, Chips: p.Chips}
		}).([]game.Seat)

		if err := t.game.StartNewGame(seats); err != nil {
			return err
		}
		t.logger.Debug("Hand started", "players", len(seats), "busted", len(last.Players)-len(seats))
		return nil
	})
}

// Act applies a player's action.
func (t *Table) Act(ctx context.Context, playerID string, a game.Action) error {
	return t.mutate(ctx, func() error {
		return t.game.Apply(playerID, a)
	})
}

// Deal forces the next street.
func (t *Table) Deal(ctx context.Context) error {
	return t.mutate(ctx, t.game.DealCommunityCards)
}

// State returns a snapshot of the game.
func (t *Table) State(ctx context.Context) (game.GameState, error) {
	var s game.GameState
	err := t.do(ctx, func() error {
		s = t.game.State()
		return nil
	})
	return s, err
}

// Turn returns the pending decision, or false when nobody is to act.
func (t *Table) Turn(ctx context.Context) (Turn, bool, error) {
	var (
		turn Turn
		ok   bool
	)
	err := t.do(ctx, func() error {
		turn.State = t.game.State()
		turn.Player, ok = t.game.CurrentPlayer()
		turn.Valid = t.game.ValidActions()
		return nil
	})
	return turn, ok, err
}

// Subscribe returns a channel that receives a snapshot after every change,
// and a function to stop receiving. Snapshots are dropped rather than
// queued past buffer when the subscriber falls behind. The channel is
// closed when the table stops, or straight away if it already has.
func (t *Table) Subscribe(buffer int) (<-chan game.GameState, func()) {
	ch := make(chan game.GameState, buffer)

	t.subsMu.Lock()
	if t.stopped {
		t.subsMu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := t.nextSub
	t.nextSub++
	t.subs[id] = ch
	t.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			t.subsMu.Lock()
			defer t.subsMu.Unlock()
			if _, ok := t.subs[id]; ok {
				delete(t.subs, id)
				close(ch)
			}
		})
	}
}

func (t *Table) closeSubscribers() {
	t.subsMu.Lock()
	defer t.subsMu.Unlock()
	t.stopped = true
	for id, ch := range t.subs {
		delete(t.subs, id)
		close(ch)
	}
}

// changed runs after every successful mutation.
func (t *Table) changed() {
	t.publish()
	t.armTimer()
}

func (t *Table) publish() {
	t.subsMu.Lock()
	defer t.subsMu.Unlock()
	for id, ch := range t.subs {
		select {
		case ch <- t.game.State():
		default:
			t.logger.Debug("Dropped snapshot for slow subscriber", "subscriber", id)
		}
	}
}

func (t *Table) stopTimer() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// armTimer starts the clock on whoever is to act now. A timer left over
// from an earlier turn is stopped, and its sequence number no longer
// matches if it already fired.
func (t *Table) armTimer() {
	t.stopTimer()
	t.turnSeq++
	if t.cfg.ActionTimeout <= 0 {
		return
	}
	if _, ok := t.game.CurrentPlayer(); !ok {
		return
	}

	seq := t.turnSeq
	t.timer = t.clock.AfterFunc(t.cfg.ActionTimeout, func() {
		select {
		case t.timeouts <- seq:
		case <-t.done:
		}
	})
}

func (t *Table) handleTimeout(seq uint64) {
	if seq != t.turnSeq {
		return
	}
	p, ok := t.game.CurrentPlayer()
	if !ok {
		return
	}

	a := game.FoldAction()
	if t.cfg.TimeoutAction == TimeoutCheck && p.CurrentBet == t.game.State().CurrentBet {
		a = game.CheckAction()
	}
	if err := t.game.Apply(p.ID, a); err != nil {
		t.logger.Error("Failed to apply timeout action", "player", p.ID, "action", a, "error", err)
		return
	}
	t.logger.Warn("Player timed out", "player", p.ID, "action", a, "timeout", t.cfg.ActionTimeout)
	t.changed()
}
