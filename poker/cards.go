package poker

import (
	"fmt"
	"strings"
)

// Suit is one of the four French suits.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in deck-building order.
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return [...]string{"♥", "♦", "♣", "♠"}[s]
}

// IsRed reports whether the suit is printed in red.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank constants. Ranks run 2-14 so that arithmetic on them matches face value.
const (
	Two   = 2
	Three = 3
	Four  = 4
	Five  = 5
	Six   = 6
	Seven = 7
	Eight = 8
	Nine  = 9
	Ten   = 10
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// Card is an immutable playing card. Two cards are the same card iff rank and suit match.
type Card struct {
	Rank int
	Suit Suit
}

// NewCard creates a card from rank (2-14) and suit
func NewCard(rank int, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Valid reports whether the card is one of the 52 cards of a standard deck.
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit <= Spades
}

// RankLabel returns the face label of the rank ("2".."10", "J", "Q", "K", "A").
func RankLabel(rank int) string {
	switch rank {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if rank >= Two && rank <= Ten {
		return fmt.Sprint(rank)
	}
	return "?"
}

// String returns the display form, e.g. "10♥" or "A♠".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return RankLabel(c.Rank) + c.Suit.String()
}

// ParseCard parses "As", "Th", "10h" or "A♠" into a Card
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) < 2 || len(runes) > 3 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	rankPart := string(runes[:len(runes)-1])
	suitPart := runes[len(runes)-1]

	var rank int
	switch strings.ToUpper(rankPart) {
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = int(rankPart[0] - '0')
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank: %q", rankPart)
	}

	var suit Suit
	switch suitPart {
	case 'h', 'H', '♥':
		suit = Hearts
	case 'd', 'D', '♦':
		suit = Diamonds
	case 'c', 'C', '♣':
		suit = Clubs
	case 's', 'S', '♠':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit: %q", suitPart)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a whitespace separated list of cards, e.g. "As Kd 10h".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
