package evaluator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lox/holdemengine/internal/deck"
)

// Category is the hand class, 1 (high card) through 10 (royal flush).
// Higher is stronger.
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Hand is the best five-card hand found by Evaluate. Cards are ordered with
// the deciding group first and kickers after, each descending.
type Hand struct {
	Cards []deck.Card
	Rank  Category
	Name  string
}

// String returns e.g. "Full House [A♥ A♦ A♣ K♠ K♥]"
func (h Hand) String() string {
	cardStrs := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		cardStrs[i] = c.String()
	}
	return fmt.Sprintf("%s [%s]", h.Name, strings.Join(cardStrs, " "))
}

// isWheel reports whether the hand is a five-high straight (A-2-3-4-5).
func (h Hand) isWheel() bool {
	if h.Rank != Straight && h.Rank != StraightFlush {
		return false
	}
	return len(h.Cards) == 5 && h.Cards[0].Rank == deck.Five && h.Cards[4].Rank == deck.Ace
}

// values returns the tie-break sequence. The wheel's Ace counts as 1.
func (h Hand) values() []int {
	vals := make([]int, len(h.Cards))
	for i, c := range h.Cards {
		vals[i] = c.Value()
	}
	if h.isWheel() {
		vals[4] = 1
	}
	return vals
}

// Compare orders two hands: -1 if a is weaker, 0 if they tie, 1 if a is
// stronger. Category decides first, then card values position by position.
func Compare(a, b Hand) int {
	if a.Rank != b.Rank {
		if a.Rank < b.Rank {
			return -1
		}
		return 1
	}
	av, bv := a.values(), b.values()
	for i := 0; i < len(av) && i < len(bv); i++ {
		if av[i] != bv[i] {
			if av[i] < bv[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Beats reports whether h is strictly stronger than other.
func (h Hand) Beats(other Hand) bool {
	return Compare(h, other) > 0
}

// BestHands returns the keys holding the strongest hand, sorted. More than
// one key means a tie.
func BestHands(hands map[string]Hand) []string {
	var best []string
	var top Hand
	for id, h := range hands {
		if len(best) == 0 {
			best, top = []string{id}, h
			continue
		}
		switch Compare(h, top) {
		case 1:
			best, top = []string{id}, h
		case 0:
			best = append(best, id)
		}
	}
	sort.Strings(best)
	return best
}
