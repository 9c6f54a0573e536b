package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/lox/headsup/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hole(t *testing.T, s string) [2]poker.Card {
	t.Helper()
	cards, err := poker.ParseCards(s)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	return [2]poker.Card{cards[0], cards[1]}
}

func TestIsStrong(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hand   string
		strong bool
	}{
		{"As 2c", true},
		{"Th 3d", true},
		{"9h 9d", true},
		{"2c 2d", true},
		{"9h 8d", false},
		{"7c 2d", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.strong, IsStrong(hole(t, tt.hand)), tt.hand)
	}
}

func TestPolicyChecksAfterFlop(t *testing.T) {
	t.Parallel()
	p := NewPolicy(rand.New(rand.NewSource(1)), alwaysRaise, 100)
	for _, phase := range []Phase{Flop, Turn, River} {
		d := p.Decide(hole(t, "As Ad"), phase, 1000)
		assert.Equal(t, CheckCall, d.Action, "%s", phase)
	}
}

func TestPolicyPreFlop(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		strategy  Strategy
		hand      string
		chips     int
		action    Action
		reasoning string
	}{
		{"value raise", valueOnly, "As Kd", 990, Raise, "value raise with Premium hand"},
		{"weak hand without bluff", valueOnly, "7c 2d", 990, CheckCall, "Trash hand, check/call"},
		{"bluff with weak hand", Strategy{Aggressiveness: 0, Bluff: 1}, "7c 2d", 990, Raise, "bluff raise"},
		{"never raises", neverRaise, "As Ad", 990, CheckCall, "check/call"},
		{"short stack cannot raise", alwaysRaise, "As Ad", 99, CheckCall, "has 99 chips"},
		{"exactly the raise amount", alwaysRaise, "As Ad", 100, Raise, "raise"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewPolicy(rand.New(rand.NewSource(7)), tt.strategy, 100)
			d := p.Decide(hole(t, tt.hand), PreFlop, tt.chips)
			assert.Equal(t, tt.action, d.Action)
			assert.True(t, strings.Contains(d.Reasoning, tt.reasoning), "reasoning %q", d.Reasoning)
			if d.Action == Raise {
				assert.Equal(t, 100, d.Amount)
			}
		})
	}
}

func TestPolicyAlwaysDrawsTwice(t *testing.T) {
	t.Parallel()
	for _, hand := range []string{"As Ad", "7c 2d"} {
		rng := rand.New(rand.NewSource(99))
		p := NewPolicy(rng, DefaultStrategy(), 100)
		p.Decide(hole(t, hand), PreFlop, 990)

		ref := rand.New(rand.NewSource(99))
		ref.Float64()
		ref.Float64()
		assert.Equal(t, ref.Float64(), rng.Float64(), "hand %s consumed a different number of draws", hand)
	}
}

func TestPolicyDeterministicForSeed(t *testing.T) {
	t.Parallel()
	a := NewPolicy(rand.New(rand.NewSource(3)), DefaultStrategy(), 100)
	b := NewPolicy(rand.New(rand.NewSource(3)), DefaultStrategy(), 100)
	hand := hole(t, "Qs 4d")
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Decide(hand, PreFlop, 990), b.Decide(hand, PreFlop, 990))
	}
}

func TestPolicyRaiseFrequency(t *testing.T) {
	t.Parallel()
	p := NewPolicy(rand.New(rand.NewSource(11)), DefaultStrategy(), 100)

	const n = 10000
	strong, weak := 0, 0
	for i := 0; i < n; i++ {
		if p.Decide(hole(t, "As Kd"), PreFlop, 990).Action == Raise {
			strong++
		}
		if p.Decide(hole(t, "7c 2d"), PreFlop, 990).Action == Raise {
			weak++
		}
	}

	// Strong: 1 - (1-0.85)(1-0.30) = 0.895. Weak: 0.30.
	assert.InDelta(t, 0.895, float64(strong)/n, 0.02)
	assert.InDelta(t, 0.30, float64(weak)/n, 0.02)
}

func TestNewPolicyRequiresRNG(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewPolicy(nil, DefaultStrategy(), 100) })
}
