// Package statistics accumulates per-player results over many hands.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/holdemengine/internal/game"
)

// BigPotBB is the pot size, in big blinds, from which a pot counts as big.
const BigPotBB = 50

// HandResult is one player's outcome in a single hand.
type HandResult struct {
	NetBB          float64 // big blinds won or lost
	Position       int     // seats after the button, 0 is the button
	WentToShowdown bool
	FinalPotSize   int // chips
	BigBlind       int
	StreetReached  string
}

// ResultFor extracts id's result from a finished hand.
func ResultFor(s game.GameState, id string) (HandResult, bool) {
	idx := -1
	for i, p := range s.Players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || s.Status == game.Playing || s.BigBlind <= 0 {
		return HandResult{}, false
	}
	p := s.Players[idx]

	won, pot, showdown := 0, 0, false
	for _, w := range s.Winners {
		pot += w.Amount
		if w.PlayerID == id {
			won += w.Amount
		}
		if w.Hand != nil {
			showdown = true
		}
	}

	n := len(s.Players)
	return HandResult{
		NetBB:          float64(won-p.TotalBet) / float64(s.BigBlind),
		Position:       (idx - s.DealerPosition + n) % n,
		WentToShowdown: showdown && p.IsActive,
		FinalPotSize:   pot,
		BigBlind:       s.BigBlind,
		StreetReached:  streetName(len(s.CommunityCards)),
	}, true
}

func streetName(board int) string {
	switch board {
	case 0:
		return game.Preflop.String()
	case 3:
		return game.Flop.String()
	case 4:
		return game.Turn.String()
	default:
		return game.River.String()
	}
}

// PositionStats tracks results from one position.
type PositionStats struct {
	Hands int
	SumBB float64
}

// Statistics tracks one player's results.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64 // sum of squares, for the variance
	Values []float64

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64
	NonShowdownBB   float64
	AllBB           float64

	PositionResults [game.MaxPlayers]PositionStats

	MaxPotChips int
	MaxPotBB    float64
	BigPots     int
	BigPotsBB   float64
}

// Mean returns the average result in big blinds per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// BBPer100 returns the win rate in big blinds per hundred hands.
func (s *Statistics) BBPer100() float64 {
	return 100 * s.Mean()
}

// Variance returns the sample variance of all results.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a hand result.
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if netBB > 0 {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}
	s.AllBB += netBB

	if pos := result.Position; pos >= 0 && pos < len(s.PositionResults) {
		s.PositionResults[pos].Hands++
		s.PositionResults[pos].SumBB += netBB
	}

	if result.BigBlind <= 0 {
		return
	}
	potBB := float64(result.FinalPotSize) / float64(result.BigBlind)
	if result.FinalPotSize > s.MaxPotChips {
		s.MaxPotChips = result.FinalPotSize
		s.MaxPotBB = potBB
	}
	if potBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Median returns the median result.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the result at p (0.0 to 1.0), interpolating between
// neighbouring values.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the average result from position.
func (s *Statistics) PositionMean(position int) float64 {
	if position < 0 || position >= len(s.PositionResults) {
		return 0
	}
	ps := s.PositionResults[position]
	if ps.Hands == 0 {
		return 0
	}
	return ps.SumBB / float64(ps.Hands)
}

// IsLedgerBalanced checks that showdown and non-showdown results add up.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the counters agree with each other.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	positionHands := 0
	for _, ps := range s.PositionResults {
		positionHands += ps.Hands
	}
	if positionHands != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", positionHands, s.Hands)
	}
	return nil
}

// Tracker keeps Statistics for every player seen at a table.
type Tracker struct {
	players map[string]*Statistics
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{players: make(map[string]*Statistics)}
}

// AddHand records every seated player's result from a finished hand.
func (t *Tracker) AddHand(s game.GameState) {
	for _, p := range s.Players {
		r, ok := ResultFor(s, p.ID)
		if !ok {
			continue
		}
		st, ok := t.players[p.ID]
		if !ok {
			st = &Statistics{}
			t.players[p.ID] = st
		}
		st.Add(r)
	}
}

// Player returns id's statistics.
func (t *Tracker) Player(id string) (*Statistics, bool) {
	st, ok := t.players[id]
	return st, ok
}

// Players lists tracked players by id.
func (t *Tracker) Players() []string {
	ids := make([]string, 0, len(t.players))
	for id := range t.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
