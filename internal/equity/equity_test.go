package equity

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/lox/headsup/poker"
)

func TestEstimate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		hole        string
		board       string
		opp         Range
		samples     int
		expectedMin float64
		expectedMax float64
	}{
		{"Pocket Aces vs Random", "As Ad", "", RandomRange{}, 1000, 0.55, 0.95},
		{"72o vs Random", "7h 2c", "", RandomRange{}, 1000, 0.30, 0.55},
		{"Made quads", "Ah Ac", "Ad As 2c", RandomRange{}, 400, 0.97, 1.00},
		{"Pocket Aces vs Strong", "As Ad", "", StrongRange{}, 1000, 0.40, 0.90},
		{"Complete board is exact", "As Ks", "Ah Kd 9s 4c 3h", RandomRange{}, 200, 0.80, 1.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hole := poker.MustParseCards(tt.hole)
			var board []poker.Card
			if tt.board != "" {
				board = poker.MustParseCards(tt.board)
			}

			rng := rand.New(rand.NewSource(12345))
			r, err := Estimate(hole, board, tt.opp, tt.samples, rng)
			if err != nil {
				t.Fatalf("Estimate failed: %v", err)
			}
			if r.Samples != tt.samples {
				t.Errorf("Expected %d samples, got %d", tt.samples, r.Samples)
			}
			if eq := r.Equity(); eq < tt.expectedMin || eq > tt.expectedMax {
				t.Errorf("Equity %.3f outside expected range [%.3f, %.3f]", eq, tt.expectedMin, tt.expectedMax)
			}
		})
	}
}

func TestEstimateParallelIsReproducible(t *testing.T) {
	t.Parallel()
	hole := poker.MustParseCards("Kh Qh")
	board := poker.MustParseCards("Jh 2c 7d")

	run := func() Result {
		r, err := EstimateParallel(context.Background(), hole, board, RandomRange{}, 2000, rand.New(rand.NewSource(9)))
		if err != nil {
			t.Fatalf("EstimateParallel failed: %v", err)
		}
		return r
	}
	a, b := run(), run()
	if a != b {
		t.Errorf("Same seed gave different results: %+v vs %+v", a, b)
	}
	if a.Samples != 2000 {
		t.Errorf("Expected 2000 samples, got %d", a.Samples)
	}
}

func TestEstimateParallelCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EstimateParallel(ctx, poker.MustParseCards("As Ad"), nil, RandomRange{}, 1000, rand.New(rand.NewSource(1)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestEstimateRejectsBadInput(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	if _, err := Estimate(poker.MustParseCards("As"), nil, RandomRange{}, 10, rng); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("Expected ErrInvalidHand for one hole card, got %v", err)
	}
	board := poker.MustParseCards("2c 3c 4c 5c 6c 7c")
	if _, err := Estimate(poker.MustParseCards("As Ad"), board, RandomRange{}, 10, rng); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("Expected ErrInvalidHand for six board cards, got %v", err)
	}
	if _, err := Estimate(poker.MustParseCards("As Ad"), poker.MustParseCards("As 2c 3c"), RandomRange{}, 10, rng); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("Expected ErrInvalidHand for a repeated card, got %v", err)
	}
	if _, err := Estimate([]poker.Card{{}, poker.NewCard(poker.Ace, poker.Spades)}, nil, RandomRange{}, 10, rng); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("Expected ErrInvalidHand for an invalid card, got %v", err)
	}
	if _, err := Estimate(poker.MustParseCards("As Ad"), nil, RandomRange{}, 0, rng); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("Expected ErrInvalidHand for zero samples, got %v", err)
	}
}

func TestCardSet(t *testing.T) {
	t.Parallel()
	cards := poker.MustParseCards("2h As Td")
	cs := NewCardSet(cards)
	for _, c := range cards {
		if !cs.Contains(c) {
			t.Errorf("CardSet missing %s", c)
		}
	}
	if cs.Contains(poker.MustParseCards("Ah")[0]) {
		t.Error("CardSet contains a card never added")
	}

	all := NewCardSet()
	for _, suit := range poker.Suits {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			all.Add(poker.NewCard(rank, suit))
		}
	}
	if all != CardSet(1<<52-1) {
		t.Errorf("Full deck should set exactly 52 bits, got %b", all)
	}
}

func TestStrongRangeSamplesStrongHands(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(3))
	available, err := unseen(poker.MustParseCards("2c 3d"), nil)
	if err != nil {
		t.Fatal(err)
	}
	for range 200 {
		hand, ok := StrongRange{}.SampleHand(available, rng)
		if !ok {
			t.Fatal("StrongRange failed to sample")
		}
		cat := poker.CategorizeHoleCards(hand[0], hand[1])
		if cat != poker.CategoryPremium && cat != poker.CategoryStrong {
			t.Errorf("StrongRange sampled %s%s (%s)", hand[0], hand[1], cat)
		}
	}
}
