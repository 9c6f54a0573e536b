// Package game implements a heads-up, simplified Texas Hold'em round engine:
// a human player against a scripted opponent.
//
// The main type is Session, which owns both chip stacks, the current Round
// and the opponent Policy across hands. Round is the phase state machine
// (PreDeal, PreFlop, Flop, Turn, River, then Showdown or FoldEnded) and
// Settle resolves the pot.
//
// # Basic Usage
//
//	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
//	s := game.NewSession(rng)
//	snap, _ := s.NewRound()
//	snap, err := s.PlayerAction(game.Raise)
//	if snap.OpponentToAct() {
//	    snap, err = s.OpponentAct(snap.RoundID)
//	}
//
// # Deterministic Testing
//
// The RNG is required and drives both the shuffle and the opponent's draws.
// A stacked deck gives complete control over the cards:
//
//	deck := func(*rand.Rand) *poker.Deck { return poker.NewStackedDeck(nil, cards...) }
//	s := game.NewSession(rng, game.WithDeckSource(deck))
//
// # Opponent Timing
//
// The engine is synchronous. The opponent's thinking delay is a Thinker, a
// cancellable deferred task on a quartz.Clock that a presentation layer uses
// to call Session.OpponentAct later. Session.OpponentAct rejects decisions
// scheduled for an earlier hand.
//
// # Simplifications
//
// The opponent only considers raising pre-flop and always checks or calls
// afterwards. A check/call never moves chips; the pot only grows by antes and
// raises. Ties at equal category are not broken by kickers except for High
// Card, and an ace never plays low in a straight.
package game
