// Package equity estimates the player's chance of winning a showdown by
// Monte Carlo sampling of the unseen cards.
//
// Hands are compared with the same simplified rules the game settles with:
// category first, then the top card only between two High Card hands.
package equity

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/lox/headsup/poker"
	"golang.org/x/sync/errgroup"
)

// ParallelThreshold is the sample count from which Estimate fans out to workers
const ParallelThreshold = 500

// ErrInvalidHand is returned unless there are two hole cards, at most five
// board cards, no card twice and a positive sample count
var ErrInvalidHand = errors.New("invalid hand")

// Result counts the showdowns won and tied out of Samples
type Result struct {
	Wins    int
	Ties    int
	Samples int
}

// Equity returns the share of the pot won on average, ties counting half
func (r Result) Equity() float64 {
	if r.Samples == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Ties)/2) / float64(r.Samples)
}

func (r Result) add(o Result) Result {
	return Result{Wins: r.Wins + o.Wins, Ties: r.Ties + o.Ties, Samples: r.Samples + o.Samples}
}

// CardSet is a bitset of cards, one bit per card: index = (rank-2)*4 + suit
type CardSet uint64

func cardIndex(c poker.Card) int {
	return (c.Rank-poker.Two)*4 + int(c.Suit)
}

// Add adds a card to the set
func (cs *CardSet) Add(c poker.Card) {
	*cs |= 1 << cardIndex(c)
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(c poker.Card) bool {
	return cs&(1<<cardIndex(c)) != 0
}

// NewCardSet creates a CardSet from cards
func NewCardSet(cards ...[]poker.Card) CardSet {
	var cs CardSet
	for _, group := range cards {
		for _, c := range group {
			cs.Add(c)
		}
	}
	return cs
}

// Range samples the opponent's hole cards
type Range interface {
	SampleHand(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool)
}

// RandomRange is any two unseen cards
type RandomRange struct{}

func (RandomRange) SampleHand(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool) {
	if len(available) < 2 {
		return [2]poker.Card{}, false
	}
	idx1 := rng.Intn(len(available))
	idx2 := rng.Intn(len(available) - 1)
	if idx2 >= idx1 {
		idx2++
	}
	return [2]poker.Card{available[idx1], available[idx2]}, true
}

// StrongRange only holds Premium and Strong starting hands, the hands the
// bot raises for value
type StrongRange struct{}

func (StrongRange) SampleHand(available []poker.Card, rng *rand.Rand) ([2]poker.Card, bool) {
	for range 200 {
		hand, ok := RandomRange{}.SampleHand(available, rng)
		if !ok {
			return hand, false
		}
		switch poker.CategorizeHoleCards(hand[0], hand[1]) {
		case poker.CategoryPremium, poker.CategoryStrong:
			return hand, true
		}
	}
	return RandomRange{}.SampleHand(available, rng)
}

// Estimate runs samples showdowns against opp, in parallel for large sample counts
func Estimate(hole, board []poker.Card, opp Range, samples int, rng *rand.Rand) (Result, error) {
	if samples >= ParallelThreshold {
		return EstimateParallel(context.Background(), hole, board, opp, samples, rng)
	}
	return EstimateSequential(hole, board, opp, samples, rng)
}

// EstimateSequential runs every sample on the calling goroutine
func EstimateSequential(hole, board []poker.Card, opp Range, samples int, rng *rand.Rand) (Result, error) {
	available, err := unseen(hole, board, samples)
	if err != nil {
		return Result{}, err
	}
	return runWorker(hole, board, available, opp, samples, rng), nil
}

// EstimateParallel divides samples among workers, each with its own RNG
// seeded from rng, so the result is reproducible for a given seed.
func EstimateParallel(ctx context.Context, hole, board []poker.Card, opp Range, samples int, rng *rand.Rand) (Result, error) {
	available, err := unseen(hole, board, samples)
	if err != nil {
		return Result{}, err
	}

	workers := min(runtime.NumCPU(), 8)
	perWorker := samples / workers
	remainder := samples % workers

	results := make([]Result, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := perWorker
		if w < remainder {
			n++
		}
		seed := rng.Int63()

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[w] = runWorker(hole, board, available, opp, n, rand.New(rand.NewSource(seed)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var total Result
	for _, r := range results {
		total = total.add(r)
	}
	return total, nil
}

// unseen validates the input and lists the cards not in hole or board
func unseen(hole, board []poker.Card, samples int) ([]poker.Card, error) {
	switch {
	case len(hole) != 2:
		return nil, fmt.Errorf("%d hole cards: %w", len(hole), ErrInvalidHand)
	case len(board) > 5:
		return nil, fmt.Errorf("%d board cards: %w", len(board), ErrInvalidHand)
	case samples <= 0:
		return nil, fmt.Errorf("%d samples: %w", samples, ErrInvalidHand)
	}

	var used CardSet
	for _, group := range [][]poker.Card{hole, board} {
		for _, c := range group {
			if !c.Valid() {
				return nil, fmt.Errorf("card %v: %w", c, ErrInvalidHand)
			}
			if used.Contains(c) {
				return nil, fmt.Errorf("%s appears twice: %w", c, ErrInvalidHand)
			}
			used.Add(c)
		}
	}

	available := make([]poker.Card, 0, 52-len(hole)-len(board))
	for _, suit := range poker.Suits {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			c := poker.NewCard(rank, suit)
			if !used.Contains(c) {
				available = append(available, c)
			}
		}
	}
	return available, nil
}

func runWorker(hole, board, available []poker.Card, opp Range, samples int, rng *rand.Rand) Result {
	var r Result

	base := NewCardSet(hole, board)
	heroHand := make([]poker.Card, 7)
	oppHand := make([]poker.Card, 7)
	candidates := make([]poker.Card, 0, len(available))

	for range samples {
		oppHole, ok := opp.SampleHand(available, rng)
		if !ok {
			continue
		}
		used := base
		used.Add(oppHole[0])
		used.Add(oppHole[1])

		candidates = candidates[:0]
		for _, c := range available {
			if !used.Contains(c) {
				candidates = append(candidates, c)
			}
		}

		// Complete the board with a partial Fisher-Yates draw from the tail.
		copy(heroHand[2:], board)
		for i := len(board); i < 5; i++ {
			last := len(candidates) - 1 - (i - len(board))
			idx := rng.Intn(last + 1)
			candidates[idx], candidates[last] = candidates[last], candidates[idx]
			heroHand[2+i] = candidates[last]
		}

		heroHand[0], heroHand[1] = hole[0], hole[1]
		copy(oppHand[2:], heroHand[2:])
		oppHand[0], oppHand[1] = oppHole[0], oppHole[1]

		switch poker.CompareHands(poker.Evaluate(heroHand), poker.Evaluate(oppHand)) {
		case 1:
			r.Wins++
		case 0:
			r.Ties++
		}
		r.Samples++
	}
	return r
}
