package poker

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrDeckExhausted is returned when more cards are requested than remain in the deck
var ErrDeckExhausted = errors.New("deck exhausted")

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// Deck represents a standard 52-card deck
type Deck struct {
	cards [DeckSize]Card // Fixed size array
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := newOrderedDeck(rng)
	d.Shuffle()
	return d
}

// newOrderedDeck creates all 52 cards, suit by suit, without shuffling
func newOrderedDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		next: 0,
		rng:  rng,
	}

	i := 0
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	return d
}

// NewStackedDeck returns a deck whose first cards are top, in dealing order.
// The remaining cards are shuffled with rng, or left in suit order when rng is nil.
// It panics if top contains an invalid or repeated card.
func NewStackedDeck(rng *rand.Rand, top ...Card) *Deck {
	if len(top) > DeckSize {
		panic("too many stacked cards")
	}
	seen := make(map[Card]bool, len(top))
	for _, c := range top {
		if !c.Valid() {
			panic(fmt.Sprintf("invalid stacked card %v", c))
		}
		if seen[c] {
			panic(fmt.Sprintf("duplicate stacked card %s", c))
		}
		seen[c] = true
	}

	d := &Deck{rng: rng}
	copy(d.cards[:], top)
	i := len(top)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			if seen[c] {
				continue
			}
			d.cards[i] = c
			i++
		}
	}

	if rng != nil {
		rest := d.cards[len(top):]
		for j := len(rest) - 1; j > 0; j-- {
			k := rng.Intn(j + 1)
			rest[j], rest[k] = rest[k], rest[j]
		}
	}
	return d
}

// Shuffle shuffles the deck using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, fmt.Errorf("deal %d with %d remaining: %w", n, d.CardsRemaining(), ErrDeckExhausted)
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Reset resets and reshuffles the deck
func (d *Deck) Reset() {
	d.Shuffle()
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

// Remaining returns a copy of the undealt cards in dealing order
func (d *Deck) Remaining() []Card {
	out := make([]Card, d.CardsRemaining())
	copy(out, d.cards[d.next:])
	return out
}
