package simulator

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/lox/headsup/internal/equity"
	"github.com/lox/headsup/internal/game"
)

// PlayerStrategy chooses actions for the simulated human player
type PlayerStrategy interface {
	Name() string
	Act(snap game.Snapshot, rules game.Rules, rng *rand.Rand) game.Action
}

var playerStrategies = map[string]func() PlayerStrategy{
	"call":       func() PlayerStrategy { return callPlayer{} },
	"random":     func() PlayerStrategy { return randomPlayer{} },
	"aggressive": func() PlayerStrategy { return aggressivePlayer{} },
	"equity":     func() PlayerStrategy { return equityPlayer{samples: 200} },
}

// PlayerStrategies lists the available strategy names
func PlayerStrategies() []string {
	names := make([]string, 0, len(playerStrategies))
	for name := range playerStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewPlayerStrategy returns the named strategy
func NewPlayerStrategy(name string) (PlayerStrategy, error) {
	newFn, ok := playerStrategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown player strategy %q (want one of %v)", name, PlayerStrategies())
	}
	return newFn(), nil
}

// callPlayer checks or calls every decision
type callPlayer struct{}

func (callPlayer) Name() string { return "call" }

func (callPlayer) Act(game.Snapshot, game.Rules, *rand.Rand) game.Action {
	return game.CheckCall
}

// randomPlayer folds 10% of the time, otherwise raises or calls evenly
type randomPlayer struct{}

func (randomPlayer) Name() string { return "random" }

func (randomPlayer) Act(snap game.Snapshot, rules game.Rules, rng *rand.Rand) game.Action {
	r := rng.Float64()
	switch {
	case r < 0.1:
		return game.Fold
	case r < 0.55 && snap.PlayerChips >= rules.RaiseAmount:
		return game.Raise
	default:
		return game.CheckCall
	}
}

// aggressivePlayer raises pre-flop whenever it can and calls afterwards
type aggressivePlayer struct{}

func (aggressivePlayer) Name() string { return "aggressive" }

func (aggressivePlayer) Act(snap game.Snapshot, rules game.Rules, _ *rand.Rand) game.Action {
	if snap.Phase == game.PreFlop && snap.PlayerChips >= rules.RaiseAmount {
		return game.Raise
	}
	return game.CheckCall
}

// equityPlayer raises with a clear edge against a random hand and folds
// without one
type equityPlayer struct {
	samples int
}

func (equityPlayer) Name() string { return "equity" }

func (p equityPlayer) Act(snap game.Snapshot, rules game.Rules, rng *rand.Rand) game.Action {
	r, err := equity.EstimateSequential(snap.PlayerHand, snap.Community, equity.RandomRange{}, p.samples, rng)
	if err != nil {
		return game.CheckCall
	}
	switch eq := r.Equity(); {
	case eq >= 0.6 && snap.PlayerChips >= rules.RaiseAmount:
		return game.Raise
	case eq < 0.3:
		return game.Fold
	default:
		return game.CheckCall
	}
}
