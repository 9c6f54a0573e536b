package game

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/headsup/poker"
)

// stackedDeck deals cards in the order given: player hole cards, opponent
// hole cards, flop, turn, river. The rest of the deck is left in suit order.
func stackedDeck(cards string) DeckSource {
	top := poker.MustParseCards(cards)
	return func(*rand.Rand) *poker.Deck {
		return poker.NewStackedDeck(nil, top...)
	}
}

// newTestRound creates a round with default rules, a fixed seed and both stacks at 1000
func newTestRound(t testing.TB, deck DeckSource) *Round {
	t.Helper()
	r := NewRound(rand.New(rand.NewSource(42)), DefaultRules(), [2]int{1000, 1000})
	if deck != nil {
		r.newDeck = deck
	}
	return r
}

// newTestSession creates a quiet session with a fixed seed
func newTestSession(t testing.TB, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	return NewSession(rand.New(rand.NewSource(42)), opts...)
}

// neverRaise never raises; alwaysRaise raises whenever it has the chips
var (
	neverRaise  = Strategy{Aggressiveness: 0, Bluff: 0}
	alwaysRaise = Strategy{Aggressiveness: 1, Bluff: 1}
	valueOnly   = Strategy{Aggressiveness: 1, Bluff: 0}
)

// eventRecorder collects published events
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(e GameEvent) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}
