package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Session owns the chip stacks, the current round and the opponent across
// hands. It is the single writer of its Round: callers acting from several
// goroutines must serialise their calls.
//
// Example usage:
//
//	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
//	s := NewSession(rng, WithLogger(logger))
//	snap, _ := s.NewRound()
//	snap, _ = s.PlayerAction(Raise)
//	if snap.OpponentToAct() {
//	    snap, _ = s.OpponentAct(snap.RoundID)
//	}
type Session struct {
	round    *Round
	policy   *Policy
	rules    Rules
	start    [2]int // stacks a fresh tournament begins with
	rng      *rand.Rand
	deck     DeckSource
	bus      EventBus
	clock    quartz.Clock
	logger   *log.Logger
	hands    int
	finished bool
}

// NewSession creates a session with required RNG and optional configuration.
// The RNG drives both the shuffle and the opponent's draws.
func NewSession(rng *rand.Rand, opts ...Option) *Session {
	if rng == nil {
		panic("rng is required for session creation")
	}

	cfg := &sessionConfig{
		rules:    DefaultRules(),
		strategy: DefaultStrategy(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}

	chips := [2]int{cfg.rules.StartingChips, cfg.rules.StartingChips}
	if cfg.chips != nil {
		chips = *cfg.chips
	}

	s := &Session{
		policy: NewPolicy(rng, cfg.strategy, cfg.rules.RaiseAmount),
		rules:  cfg.rules,
		start:  chips,
		rng:    rng,
		deck:   cfg.deck,
		bus:    cfg.bus,
		clock:  cfg.clock,
		logger: cfg.logger.WithPrefix("session"),
	}
	s.round = s.freshRound(0)
	return s
}

func (s *Session) freshRound(lastID int) *Round {
	r := NewRound(s.rng, s.rules, s.start)
	r.id = lastID
	if s.deck != nil {
		r.newDeck = s.deck
	}
	return r
}

// Rules returns the session's betting constants
func (s *Session) Rules() Rules { return s.rules }

// Strategy returns the opponent's strategy
func (s *Session) Strategy() Strategy { return s.policy.Strategy() }

// Events returns the bus session events are published on
func (s *Session) Events() EventBus { return s.bus }

// HandsPlayed returns the number of hands dealt since the session started or was reset
func (s *Session) HandsPlayed() int { return s.hands }

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	return s.round.Snapshot()
}

// Validate checks the structural invariants of the current round
func (s *Session) Validate() error {
	return s.round.Validate()
}

// NewRound deals the next hand. Once a stack is empty it yields a
// TournamentOver snapshot instead. Dealing while a hand is in play is rejected.
func (s *Session) NewRound() (Snapshot, error) {
	r := s.round
	if err := r.Deal(); err != nil {
		return r.Snapshot(), err
	}

	if r.Phase() == TournamentOver {
		chips := r.Chips()
		loser := Player
		if chips[Player] > 0 {
			loser = Opponent
		}
		if !s.finished {
			s.finished = true
			s.logger.Info("Tournament over", "loser", loser, "hands", s.hands, "player", chips[Player], "opponent", chips[Opponent])
			s.bus.Publish(TournamentOverEvent{
				Loser:     loser,
				Chips:     chips,
				Message:   r.Message(),
				timestamp: s.clock.Now(),
			})
		}
		return r.Snapshot(), nil
	}

	s.hands++
	s.logger.Debug("Dealt hand", "round", r.ID(), "pot", r.Pot(), "player", r.Chips()[Player], "opponent", r.Chips()[Opponent])
	s.bus.Publish(RoundStartEvent{
		RoundID:   r.ID(),
		Ante:      s.rules.Ante,
		Antes:     r.Antes(),
		Pot:       r.Pot(),
		Chips:     r.Chips(),
		timestamp: s.clock.Now(),
	})
	return r.Snapshot(), nil
}

// Reset starts a new tournament with the starting stacks. Any hand in play is abandoned.
func (s *Session) Reset() Snapshot {
	s.round = s.freshRound(s.round.ID())
	s.hands = 0
	s.finished = false
	s.logger.Info("Tournament reset", "player", s.start[Player], "opponent", s.start[Opponent])
	return s.round.Snapshot()
}

// PlayerAction applies the human player's action. It is only legal on the
// player's turn during a betting phase.
func (s *Session) PlayerAction(a Action) (Snapshot, error) {
	r := s.round
	if !r.Phase().IsBetting() || r.Turn() != Player {
		return r.Snapshot(), fmt.Errorf("player %s during %s on %s's turn: %w", a, r.Phase(), r.Turn(), ErrInvalidTransition)
	}
	if err := s.apply(Player, a, ""); err != nil {
		return r.Snapshot(), err
	}
	return r.Snapshot(), nil
}

// OpponentAct consults the opponent policy and applies its decision. roundID
// must match the current hand so that a decision scheduled for an earlier
// hand cannot act on a newer one.
func (s *Session) OpponentAct(roundID int) (Snapshot, error) {
	r := s.round
	if roundID != r.ID() {
		return r.Snapshot(), fmt.Errorf("stale opponent decision for hand %d, current hand %d: %w", roundID, r.ID(), ErrInvalidTransition)
	}
	if !r.Phase().IsBetting() || r.Turn() != Opponent {
		return r.Snapshot(), fmt.Errorf("opponent acting during %s on %s's turn: %w", r.Phase(), r.Turn(), ErrInvalidTransition)
	}

	d := s.policy.Decide(r.Hand(Opponent), r.Phase(), r.Chips()[Opponent])
	s.logger.Debug("Opponent decision", "round", r.ID(), "action", d.Action, "reasoning", d.Reasoning)

	err := s.apply(Opponent, d.Action, d.Reasoning)
	if errors.Is(err, ErrInsufficientChips) {
		s.logger.Warn("Opponent raise rejected, falling back to check/call", "error", err)
		err = s.apply(Opponent, CheckCall, "short stack, check/call")
	}
	if err != nil {
		return r.Snapshot(), err
	}
	return r.Snapshot(), nil
}

func (s *Session) apply(by Participant, a Action, reasoning string) error {
	r := s.round
	before := r.Phase()
	potAfter := r.Pot()
	amount := 0

	var err error
	switch a {
	case Fold:
		err = r.Fold(by)
	case CheckCall:
		err = r.AdvancePhase(by)
	case Raise:
		err = r.Raise(by)
		amount = s.rules.RaiseAmount
		potAfter += amount
	default:
		err = fmt.Errorf("unknown action %d: %w", a, ErrInvalidTransition)
	}
	if err != nil {
		return err
	}

	s.bus.Publish(ActionEvent{
		RoundID:     r.ID(),
		Participant: by,
		Action:      a,
		Amount:      amount,
		Reasoning:   reasoning,
		PotAfter:    potAfter,
		timestamp:   s.clock.Now(),
	})

	switch {
	case r.Phase().IsTerminal():
		out := *r.Outcome()
		s.logger.Info("Hand complete", "round", r.ID(), "phase", r.Phase(), "winner", out.WinnerLabel(), "reason", out.Reason, "player", out.Chips[Player], "opponent", out.Chips[Opponent])
		s.bus.Publish(RoundEndEvent{
			RoundID:      r.ID(),
			Phase:        r.Phase(),
			Outcome:      out,
			Community:    r.Community(),
			PlayerHand:   r.Hand(Player),
			OpponentHand: r.Hand(Opponent),
			timestamp:    s.clock.Now(),
		})
	case r.Phase() != before:
		s.bus.Publish(PhaseChangeEvent{
			RoundID:   r.ID(),
			Phase:     r.Phase(),
			Community: r.Community(),
			timestamp: s.clock.Now(),
		})
	}
	return nil
}
