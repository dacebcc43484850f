package deck

import (
	"errors"
	"testing"

	"github.com/lox/holdemengine/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardSet(cards []Card) map[Card]int {
	set := make(map[Card]int, len(cards))
	for _, c := range cards {
		set[c]++
	}
	return set
}

func TestNewDeckIsComplete(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(1))
	require.Equal(t, Size, d.CardsRemaining())

	set := cardSet(d.Cards())
	assert.Len(t, set, 52, "all cards must be unique")
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			assert.Equal(t, 1, set[NewCard(suit, rank)], "missing %s%s", rank, suit)
		}
	}
}

func TestShuffleConservesCards(t *testing.T) {
	t.Parallel()
	for seed := int64(0); seed < 20; seed++ {
		d := NewDeck(randutil.New(seed))
		before := cardSet(d.Cards())
		d.Shuffle()
		assert.Equal(t, before, cardSet(d.Cards()), "seed %d", seed)
	}
}

func TestShuffleChangesOrder(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(99))
	ordered := d.Cards()
	d.Shuffle()
	assert.NotEqual(t, ordered, d.Cards())
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()
	a := NewDeck(randutil.New(5))
	b := NewDeck(randutil.New(5))
	a.Shuffle()
	b.Shuffle()
	assert.Equal(t, a.Cards(), b.Cards())
}

func TestDealRemovesFromFront(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(3))
	d.Shuffle()
	original := d.Cards()

	dealt, err := d.Deal(5)
	require.NoError(t, err)
	assert.Equal(t, original[:5], dealt)
	assert.Equal(t, 47, d.CardsRemaining())

	// dealt + remaining reproduces the original set
	all := append(dealt, d.Cards()...)
	assert.Equal(t, cardSet(original), cardSet(all))
}

func TestDealExhaustion(t *testing.T) {
	t.Parallel()
	d := NewDeck(nil)

	_, err := d.Deal(53)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientCards))
	assert.Equal(t, 52, d.CardsRemaining(), "failed deal must not modify the deck")

	_, err = d.Deal(-1)
	assert.ErrorIs(t, err, ErrInsufficientCards)

	cards, err := d.Deal(52)
	require.NoError(t, err)
	assert.Len(t, cards, 52)
	assert.Equal(t, 0, d.CardsRemaining())

	_, err = d.Deal(1)
	assert.ErrorIs(t, err, ErrInsufficientCards)
}

func TestDealtCardsAreCopies(t *testing.T) {
	t.Parallel()
	d := NewDeck(nil)
	dealt, err := d.Deal(2)
	require.NoError(t, err)
	dealt[0] = NewCard(Clubs, Ace)
	next, err := d.Deal(1)
	require.NoError(t, err)
	assert.Equal(t, NewCard(Spades, Four), next[0])
}

func TestReset(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(11))
	fresh := d.Cards()
	d.Shuffle()
	_, err := d.Deal(20)
	require.NoError(t, err)

	d.Reset()
	assert.Equal(t, 52, d.CardsRemaining())
	assert.Equal(t, fresh, d.Cards(), "reset yields the ordered deck, unshuffled")
}

func TestNewStackedDeck(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("AhKhQhJhTh")
	d, err := NewStackedDeck(cards)
	require.NoError(t, err)

	got, err := d.Deal(5)
	require.NoError(t, err)
	assert.Equal(t, cards, got)

	_, err = NewStackedDeck(MustParseCards("AhAh"))
	assert.ErrorIs(t, err, ErrDuplicateCard)
}
