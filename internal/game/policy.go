package game

import (
	"fmt"
	"math/rand"

	"github.com/lox/headsup/poker"
)

// Default opponent strategy
const (
	DefaultAggressiveness = 0.85
	DefaultBluff          = 0.30
)

// strongRank is the lowest hole card rank that makes a hand strong on its own
const strongRank = poker.Ten

// Strategy holds the opponent's tunable probabilities
type Strategy struct {
	Aggressiveness float64 // probability of raising when strong
	Bluff          float64 // probability of raising regardless of strength
}

// DefaultStrategy returns the stock opponent strategy
func DefaultStrategy() Strategy {
	return Strategy{Aggressiveness: DefaultAggressiveness, Bluff: DefaultBluff}
}

// Decision is a single opponent action
type Decision struct {
	Action    Action
	Amount    int
	Reasoning string
}

// Policy is the scripted opponent. It only considers raising pre-flop and
// always checks or calls once community cards are out.
type Policy struct {
	strategy    Strategy
	raiseAmount int
	rng         *rand.Rand
}

// NewPolicy creates an opponent policy drawing from rng
func NewPolicy(rng *rand.Rand, strategy Strategy, raiseAmount int) *Policy {
	if rng == nil {
		panic("rng is required for opponent policy")
	}
	return &Policy{
		strategy:    strategy,
		raiseAmount: raiseAmount,
		rng:         rng,
	}
}

// Strategy returns the policy's configured probabilities
func (p *Policy) Strategy() Strategy {
	return p.strategy
}

// IsStrong reports whether hole cards are strong: a ten or better, or a pocket pair
func IsStrong(hand [2]poker.Card) bool {
	return poker.HasHighCard(hand[0], hand[1], strongRank) || poker.IsPocketPair(hand[0], hand[1])
}

// Decide picks the opponent's action for the given phase and stack
func (p *Policy) Decide(hand [2]poker.Card, phase Phase, chips int) Decision {
	if phase != PreFlop {
		return Decision{Action: CheckCall, Reasoning: "post-flop, check/call"}
	}

	strong := IsStrong(hand)
	category := poker.CategorizeHoleCards(hand[0], hand[1])

	// Both draws are always taken so the RNG stream does not depend on hand strength.
	aggression := p.rng.Float64()
	bluff := p.rng.Float64()

	valueRaise := strong && aggression < p.strategy.Aggressiveness
	bluffRaise := bluff < p.strategy.Bluff
	if !valueRaise && !bluffRaise {
		return Decision{Action: CheckCall, Reasoning: fmt.Sprintf("%s hand, check/call", category)}
	}

	if chips < p.raiseAmount {
		return Decision{
			Action:    CheckCall,
			Reasoning: fmt.Sprintf("wants to raise with %s hand but has %d chips", category, chips),
		}
	}

	kind := "bluff"
	if valueRaise {
		kind = "value"
	}
	return Decision{
		Action:    Raise,
		Amount:    p.raiseAmount,
		Reasoning: fmt.Sprintf("%s raise with %s hand", kind, category),
	}
}
