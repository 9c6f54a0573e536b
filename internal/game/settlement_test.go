package game

import (
	"testing"

	"github.com/lox/headsup/poker"
	"github.com/stretchr/testify/assert"
)

func TestSettle(t *testing.T) {
	t.Parallel()

	pair := poker.HandResult{Type: poker.OnePair}
	flush := poker.HandResult{Type: poker.Flush}
	kingHigh := poker.HandResult{Type: poker.HighCard, High: poker.King}
	aceHigh := poker.HandResult{Type: poker.HighCard, High: poker.Ace}

	tests := []struct {
		name    string
		pot     int
		chips   [2]int
		result  Result
		want    [2]int
		winner  string
		message string
	}{
		{
			name:    "player folds",
			pot:     120,
			chips:   [2]int{890, 990},
			result:  FoldResult(Player),
			want:    [2]int{890, 1110},
			winner:  "opponent",
			message: "Opponent wins by fold",
		},
		{
			name:    "opponent folds",
			pot:     220,
			chips:   [2]int{890, 890},
			result:  FoldResult(Opponent),
			want:    [2]int{1110, 890},
			winner:  "player",
			message: "Player wins by fold",
		},
		{
			name:    "higher category wins",
			pot:     20,
			chips:   [2]int{990, 990},
			result:  ShowdownResult(flush, pair),
			want:    [2]int{1010, 990},
			winner:  "player",
			message: "You win with Flush",
		},
		{
			name:    "opponent higher category",
			pot:     20,
			chips:   [2]int{990, 990},
			result:  ShowdownResult(pair, flush),
			want:    [2]int{990, 1010},
			winner:  "opponent",
			message: "Opponent wins with Flush",
		},
		{
			name:    "high card decided by top rank",
			pot:     20,
			chips:   [2]int{990, 990},
			result:  ShowdownResult(kingHigh, aceHigh),
			want:    [2]int{990, 1010},
			winner:  "opponent",
			message: "Opponent wins with High Card",
		},
		{
			name:    "equal category splits",
			pot:     120,
			chips:   [2]int{890, 990},
			result:  ShowdownResult(pair, pair),
			want:    [2]int{950, 1050},
			winner:  "tie",
			message: "Split pot, both hold One Pair",
		},
		{
			name:    "odd chip goes to the player",
			pot:     15,
			chips:   [2]int{0, 990},
			result:  ShowdownResult(aceHigh, aceHigh),
			want:    [2]int{8, 997},
			winner:  "tie",
			message: "Split pot, both hold High Card",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := Settle(tt.pot, tt.chips, tt.result)

			assert.Equal(t, tt.want, out.Chips)
			assert.Equal(t, tt.winner, out.WinnerLabel())
			assert.Equal(t, tt.message, out.Message)
			assert.Equal(t, tt.pot, out.Awarded[Player]+out.Awarded[Opponent], "pot fully distributed")
			assert.Equal(t, tt.chips[Player]+tt.chips[Opponent]+tt.pot, out.Chips[Player]+out.Chips[Opponent])
		})
	}
}

func TestSettleDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	chips := [2]int{500, 500}
	_ = Settle(100, chips, FoldResult(Player))
	assert.Equal(t, [2]int{500, 500}, chips)
}
