// Package evaluator ranks Texas Hold'em hands.
//
// Evaluate picks the best five cards out of two hole cards and up to five
// community cards by walking the hand categories from strongest to weakest
// and returning the first that matches. It has no state and is safe to call
// from any number of goroutines.
package evaluator

import (
	"sort"

	"github.com/lox/holdemengine/internal/deck"
)

// handSize is the number of cards in a made hand.
const handSize = 5

// grouping holds the candidate cards indexed the ways the category checks
// need them. All slices are ordered by descending rank.
type grouping struct {
	sorted []deck.Card
	ranks  []deck.Rank // distinct ranks present
	byRank map[deck.Rank][]deck.Card
	bySuit map[deck.Suit][]deck.Card
}

func newGrouping(cards []deck.Card) grouping {
	g := grouping{
		sorted: cards,
		byRank: make(map[deck.Rank][]deck.Card, len(cards)),
		bySuit: make(map[deck.Suit][]deck.Card, 4),
	}
	for _, c := range cards {
		if len(g.byRank[c.Rank]) == 0 {
			g.ranks = append(g.ranks, c.Rank)
		}
		g.byRank[c.Rank] = append(g.byRank[c.Rank], c)
		g.bySuit[c.Suit] = append(g.bySuit[c.Suit], c)
	}
	return g
}

// Evaluate returns the best five-card hand that can be made from the hole
// and community cards. With fewer than five cards in total it returns the
// best partial hand it can describe.
func Evaluate(hole, community []deck.Card) Hand {
	cards := make([]deck.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Rank > cards[j].Rank
	})

	g := newGrouping(cards)
	flush := g.flushCards()

	if flush != nil {
		if sf := straightIn(flush); sf != nil {
			if sf[0].Rank == deck.Ace {
				return newHand(RoyalFlush, sf)
			}
			return newHand(StraightFlush, sf)
		}
	}

	if quad := g.rankWithCount(4, 4); quad != 0 {
		made := append(clone(g.byRank[quad]), g.kickers(1, quad)...)
		return newHand(FourOfAKind, made)
	}

	if trips := g.rankWithCount(3, 3); trips != 0 {
		if pair := g.rankWithCount(2, 4, trips); pair != 0 {
			made := append(clone(g.byRank[trips][:3]), g.byRank[pair][:2]...)
			return newHand(FullHouse, made)
		}
	}

	if flush != nil {
		return newHand(Flush, clone(flush[:handSize]))
	}

	if s := straightIn(g.sorted); s != nil {
		return newHand(Straight, s)
	}

	if trips := g.rankWithCount(3, 3); trips != 0 {
		made := append(clone(g.byRank[trips]), g.kickers(2, trips)...)
		return newHand(ThreeOfAKind, made)
	}

	if high := g.rankWithCount(2, 4); high != 0 {
		if low := g.rankWithCount(2, 4, high); low != 0 {
			made := append(clone(g.byRank[high][:2]), g.byRank[low][:2]...)
			made = append(made, g.kickers(1, high, low)...)
			return newHand(TwoPair, made)
		}
		made := append(clone(g.byRank[high][:2]), g.kickers(3, high)...)
		return newHand(OnePair, made)
	}

	n := min(handSize, len(g.sorted))
	return newHand(HighCard, clone(g.sorted[:n]))
}

func newHand(cat Category, cards []deck.Card) Hand {
	return Hand{Cards: cards, Rank: cat, Name: cat.String()}
}

// flushCards returns every card of the strongest suit holding at least five
// cards, or nil when there is no flush.
func (g grouping) flushCards() []deck.Card {
	var best []deck.Card
	for _, suit := range deck.Suits {
		cards := g.bySuit[suit]
		if len(cards) < handSize {
			continue
		}
		if best == nil || strongerTop(cards, best) {
			best = cards
		}
	}
	return best
}

// strongerTop compares the five highest cards of two descending runs.
func strongerTop(a, b []deck.Card) bool {
	for i := 0; i < handSize; i++ {
		if a[i].Rank != b[i].Rank {
			return a[i].Rank > b[i].Rank
		}
	}
	return false
}

// rankWithCount returns the highest rank whose group size lies in
// [lo, hi], skipping the excluded ranks. Zero means none.
func (g grouping) rankWithCount(lo, hi int, exclude ...deck.Rank) deck.Rank {
	for _, r := range g.ranks {
		if excluded(r, exclude) {
			continue
		}
		if n := len(g.byRank[r]); n >= lo && n <= hi {
			return r
		}
	}
	return 0
}

// kickers returns the n highest cards whose ranks are not excluded.
func (g grouping) kickers(n int, exclude ...deck.Rank) []deck.Card {
	out := make([]deck.Card, 0, n)
	for _, c := range g.sorted {
		if len(out) == n {
			break
		}
		if !excluded(c.Rank, exclude) {
			out = append(out, c)
		}
	}
	return out
}

func excluded(r deck.Rank, ranks []deck.Rank) bool {
	for _, x := range ranks {
		if r == x {
			return true
		}
	}
	return false
}

// straightIn finds the highest five-card straight in a descending run of
// cards. The wheel comes back ordered 5-4-3-2-A.
func straightIn(cards []deck.Card) []deck.Card {
	first := make(map[deck.Rank]deck.Card, len(cards))
	for _, c := range cards {
		if _, ok := first[c.Rank]; !ok {
			first[c.Rank] = c
		}
	}

	for high := deck.Ace; high >= deck.Six; high-- {
		run := make([]deck.Card, 0, handSize)
		for r := high; r > high-handSize; r-- {
			c, ok := first[r]
			if !ok {
				break
			}
			run = append(run, c)
		}
		if len(run) == handSize {
			return run
		}
	}

	ace, ok := first[deck.Ace]
	if !ok {
		return nil
	}
	wheel := make([]deck.Card, 0, handSize)
	for r := deck.Five; r >= deck.Two; r-- {
		c, ok := first[r]
		if !ok {
			return nil
		}
		wheel = append(wheel, c)
	}
	return append(wheel, ace)
}

func clone(cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards), max(len(cards), handSize))
	copy(out, cards)
	return out
}
