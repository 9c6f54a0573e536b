package game

// Phase represents where a round is in its lifecycle
type Phase int

const (
	PreDeal Phase = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
	FoldEnded
	TournamentOver
)

func (p Phase) String() string {
	if p < PreDeal || p > TournamentOver {
		return "unknown"
	}
	return [...]string{"pre-deal", "pre-flop", "flop", "turn", "river", "showdown", "fold", "tournament-over"}[p]
}

// IsBetting reports whether participants may act in this phase
func (p Phase) IsBetting() bool {
	return p >= PreFlop && p <= River
}

// IsTerminal reports whether the round has been resolved
func (p Phase) IsTerminal() bool {
	return p == Showdown || p == FoldEnded || p == TournamentOver
}

// CommunityCount returns how many community cards are dealt by this phase
func (p Phase) CommunityCount() int {
	switch p {
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Showdown:
		return 5
	default:
		return 0
	}
}

// Participant is one of the two seats at the table
type Participant int

const (
	Player Participant = iota
	Opponent
)

func (p Participant) String() string {
	return [...]string{"player", "opponent"}[p]
}

// Other returns the participant across the table
func (p Participant) Other() Participant {
	if p == Player {
		return Opponent
	}
	return Player
}

// Action represents a participant action
type Action int

const (
	Fold Action = iota
	CheckCall
	Raise
)

func (a Action) String() string {
	return [...]string{"fold", "check/call", "raise"}[a]
}

// ParseAction converts "fold", "check", "call", "check/call" or "raise" into an Action
func ParseAction(s string) (Action, bool) {
	switch s {
	case "fold", "f":
		return Fold, true
	case "check", "call", "check/call", "c":
		return CheckCall, true
	case "raise", "r":
		return Raise, true
	}
	return Fold, false
}
