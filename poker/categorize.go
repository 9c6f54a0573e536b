package poker

// HoleCardCategory represents the strength category of hole cards
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// CategorizeHoleCards provides a simple preflop hand categorization.
// Categories: Premium (JJ+, AK), Strong (TT, AQ/AJ), Medium (77+, suited broadway),
// Weak (small pairs, suited connectors), Trash (everything else).
func CategorizeHoleCards(card1, card2 Card) HoleCardCategory {
	if !card1.Valid() || !card2.Valid() {
		return CategoryUnknown
	}

	suited := card1.Suit == card2.Suit

	// Order ranks (smaller first)
	small, big := card1.Rank, card2.Rank
	if small > big {
		small, big = big, small
	}

	isPair := small == big
	if isPair && small >= Jack {
		return CategoryPremium
	}
	if small == King && big == Ace {
		return CategoryPremium
	}

	if isPair && small == Ten {
		return CategoryStrong
	}
	if big == Ace && (small == Queen || small == Jack) {
		return CategoryStrong
	}

	if isPair && small >= Seven {
		return CategoryMedium
	}
	if suited && small >= Ten {
		return CategoryMedium
	}

	if isPair {
		return CategoryWeak
	}
	if suited && big-small <= 2 {
		return CategoryWeak
	}

	return CategoryTrash
}

// IsPocketPair reports whether both hole cards share a rank.
func IsPocketPair(card1, card2 Card) bool {
	return card1.Rank == card2.Rank
}

// HasHighCard reports whether either hole card is at least minRank.
func HasHighCard(card1, card2 Card, minRank int) bool {
	return card1.Rank >= minRank || card2.Rank >= minRank
}
