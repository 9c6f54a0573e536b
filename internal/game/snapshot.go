package game

import (
	"github.com/lox/headsup/poker"
)

// Snapshot is an immutable view of a round for presentation layers.
// The opponent's hole cards are only included once the round is terminal.
type Snapshot struct {
	RoundID       int
	Phase         Phase
	Turn          Participant
	Pot           int
	PlayerChips   int
	OpponentChips int
	PlayerHand    []poker.Card
	OpponentHand  []poker.Card
	Community     []poker.Card
	Message       string
	Outcome       *Outcome
}

// Snapshot captures the current state of the round
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		RoundID:       r.id,
		Phase:         r.phase,
		Turn:          r.turn,
		Pot:           r.pot,
		PlayerChips:   r.chips[Player],
		OpponentChips: r.chips[Opponent],
		Community:     r.Community(),
		Message:       r.message,
	}
	if r.id > 0 && r.phase != PreDeal {
		s.PlayerHand = []poker.Card{r.hands[Player][0], r.hands[Player][1]}
		if r.phase.IsTerminal() {
			s.OpponentHand = []poker.Card{r.hands[Opponent][0], r.hands[Opponent][1]}
		}
	}
	if r.outcome != nil {
		out := *r.outcome
		s.Outcome = &out
	}
	return s
}

// PhaseLabel returns the display label of the phase
func (s Snapshot) PhaseLabel() string {
	return s.Phase.String()
}

// OpponentRevealed reports whether the opponent's hole cards are visible
func (s Snapshot) OpponentRevealed() bool {
	return s.OpponentHand != nil
}

// CanAct reports whether the player may act now
func (s Snapshot) CanAct() bool {
	return s.Phase.IsBetting() && s.Turn == Player
}

// OpponentToAct reports whether the opponent is due to act
func (s Snapshot) OpponentToAct() bool {
	return s.Phase.IsBetting() && s.Turn == Opponent
}

// Winner returns "player", "opponent", "tie", or "" when the round is unresolved
func (s Snapshot) Winner() string {
	if s.Outcome == nil {
		return ""
	}
	return s.Outcome.WinnerLabel()
}

// TotalChips is the sum of both stacks and the pot
func (s Snapshot) TotalChips() int {
	return s.PlayerChips + s.OpponentChips + s.Pot
}
