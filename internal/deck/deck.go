package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// Size is the number of cards in a full deck.
const Size = 52

// ErrInsufficientCards is returned when more cards are requested than remain.
var ErrInsufficientCards = errors.New("insufficient cards in deck")

// ErrDuplicateCard is returned when a stacked deck repeats a card.
var ErrDuplicateCard = errors.New("duplicate card")

// Deck is an ordered stack of cards dealt from the front.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck returns a full, unshuffled 52-card deck. The rng is used by
// Shuffle; it may be nil for decks that are never shuffled.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	d.fill()
	return d
}

// NewStackedDeck returns a deck that deals exactly the given cards in
// order. It exists so tests can script a hand.
func NewStackedDeck(cards []Card) (*Deck, error) {
	seen := make(map[Card]bool, len(cards))
	for _, c := range cards {
		if !c.Rank.Valid() || c.Suit < Spades || c.Suit > Clubs {
			return nil, fmt.Errorf("invalid card %v", c)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = true
	}
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d, nil
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle permutes the remaining cards in place using Fisher-Yates.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns n cards from the front of the deck. The deck is
// left untouched when it cannot satisfy the request.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("%w: requested %d, %d remaining", ErrInsufficientCards, n, len(d.cards))
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Reset refills the deck with a fresh ordered set of 52 cards. It does not
// shuffle.
func (d *Deck) Reset() {
	if cap(d.cards) < Size {
		d.cards = make([]Card, 0, Size)
	}
	d.fill()
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Cards returns a copy of the cards still in the deck, front first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
