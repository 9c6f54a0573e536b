package phh

import (
	"strings"

	"github.com/lox/headsup/poker"
)

var phhRanks = map[int]string{
	poker.Ten: "T", poker.Jack: "J", poker.Queen: "Q", poker.King: "K", poker.Ace: "A",
}

var phhSuits = [...]string{poker.Hearts: "h", poker.Diamonds: "d", poker.Clubs: "c", poker.Spades: "s"}

// FormatCard converts a card to PHH notation (e.g. 10♥ becomes Th)
func FormatCard(c poker.Card) string {
	if !c.Valid() {
		return "??"
	}
	rank, ok := phhRanks[c.Rank]
	if !ok {
		rank = poker.RankLabel(c.Rank)
	}
	return rank + phhSuits[c.Suit]
}

// FormatCards concatenates cards in PHH notation, as used in deal actions
func FormatCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(FormatCard(c))
	}
	return b.String()
}
