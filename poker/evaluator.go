package poker

import (
	"fmt"
	"slices"
)

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
// The numeric value is the category score (High Card 0 ... Straight Flush 8).
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable hand description.
func (ht HandType) String() string {
	switch ht {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
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
	default:
		return "Unknown"
	}
}

// Spanish returns the category name as printed on Spanish tables.
func (ht HandType) Spanish() string {
	switch ht {
	case HighCard:
		return "Carta Alta"
	case Pair:
		return "Par"
	case TwoPair:
		return "Doble Par"
	case ThreeOfAKind:
		return "Trío"
	case Straight:
		return "Escalera"
	case Flush:
		return "Color"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Póker"
	case StraightFlush:
		return "Escalera de Color"
	default:
		return "Desconocida"
	}
}

// HandResult is the outcome of evaluating a set of cards.
// High is the tie-break value and is only populated for HighCard.
type HandResult struct {
	Type HandType
	High int
}

// Score returns the category score, 0 for High Card through 8 for Straight Flush.
func (r HandResult) Score() int {
	return int(r.Type)
}

func (r HandResult) String() string {
	if r.Type == HighCard && r.High > 0 {
		return fmt.Sprintf("%s (%s)", r.Type, RankLabel(r.High))
	}
	return r.Type.String()
}

// Evaluate determines the best category among cards, which must hold at least 5 cards.
//
// Straights are found over distinct ranks only, with Ace always high, so
// A-2-3-4-5 does not count. A flush together with a straight anywhere in the
// cards is treated as a straight flush; the two need not share cards.
func Evaluate(cards []Card) HandResult {
	var rankCounts [Ace + 1]int
	var suitCounts [4]int
	high := 0
	for _, c := range cards {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
		high = max(high, c.Rank)
	}

	flush := false
	for _, n := range suitCounts {
		if n >= 5 {
			flush = true
			break
		}
	}
	straight := hasStraight(rankCounts[:])

	var quads, trips, pairs int
	for rank := Two; rank <= Ace; rank++ {
		switch rankCounts[rank] {
		case 4:
			quads++
		case 3:
			trips++
		case 2:
			pairs++
		}
	}

	switch {
	case flush && straight:
		return HandResult{Type: StraightFlush}
	case quads > 0:
		return HandResult{Type: FourOfAKind}
	case trips > 0 && pairs > 0:
		return HandResult{Type: FullHouse}
	case flush:
		return HandResult{Type: Flush}
	case straight:
		return HandResult{Type: Straight}
	case trips > 0:
		return HandResult{Type: ThreeOfAKind}
	case pairs >= 2:
		return HandResult{Type: TwoPair}
	case pairs == 1:
		return HandResult{Type: Pair}
	default:
		return HandResult{Type: HighCard, High: high}
	}
}

// hasStraight scans every 5-wide window of the sorted distinct ranks
func hasStraight(rankCounts []int) bool {
	distinct := make([]int, 0, 7)
	for rank, n := range rankCounts {
		if n > 0 {
			distinct = append(distinct, rank)
		}
	}
	slices.Sort(distinct)
	for i := 0; i+4 < len(distinct); i++ {
		if distinct[i+4]-distinct[i] == 4 {
			return true
		}
	}
	return false
}

// CompareHands compares two results.
// Returns 1 if a wins, -1 if b wins, 0 on a tie.
func CompareHands(a, b HandResult) int {
	switch {
	case a.Type > b.Type:
		return 1
	case a.Type < b.Type:
		return -1
	case a.High > b.High:
		return 1
	case a.High < b.High:
		return -1
	default:
		return 0
	}
}
