package statistics

import (
	"fmt"
	"math"
	"sort"
)

// BigPotThreshold is the pot size, in chips, at which a hand counts as high action
const BigPotThreshold = 200

// HandResult represents the outcome of a single hand from the player's side
type HandResult struct {
	NetChips       int    // Chips won (positive) or lost by the player this hand, ante included
	Seed           int64  // Tournament seed, for replay
	WentToShowdown bool   // Did the hand reach showdown?
	FinalPot       int    // Pot distributed at settlement
	PhaseReached   string // Furthest betting phase (pre-flop, flop, turn, river)
	Winner         string // "player", "opponent" or "tie"
	Category       string // Winning hand category at showdown, empty on a fold
}

// TournamentResult is the outcome of one tournament played until a stack is empty
type TournamentResult struct {
	Seed       int64
	Hands      int
	Winner     string // "player", "opponent", or "" when the hand limit was reached first
	FinalChips [2]int // player, opponent
}

// PhaseStats tracks results of hands that ended after reaching a phase
type PhaseStats struct {
	Hands     int
	SumChips  float64
	SumChips2 float64
}

// Statistics tracks aggregate results of simulated play
type Statistics struct {
	Hands     int
	SumChips  float64
	SumChips2 float64   // Sum of squares for variance calculation
	Values    []float64 // All per-hand results for median/percentile calculation

	PlayerWins   int
	OpponentWins int
	Ties         int

	// Showdown vs fold accounting, tracking losses as well as wins
	ShowdownWins      int
	NonShowdownWins   int
	ShowdownChips     float64
	NonShowdownChips  float64
	AllChips          float64
	Showdowns         int
	WinningCategories map[string]int
	PhaseResults      map[string]*PhaseStats

	MaxPot       int
	BigPots      int
	BigPotsChips float64

	Tournaments       int
	PlayerTournaments int
	BotTournaments    int
	Unfinished        int
	TournamentHands   int
	LongestTournament int
}

// Mean returns the player's average result in chips per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumChips / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumChips2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	net := float64(result.NetChips)
	s.Hands++
	s.SumChips += net
	s.SumChips2 += net * net
	s.Values = append(s.Values, net)

	switch result.Winner {
	case "player":
		s.PlayerWins++
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	case "opponent":
		s.OpponentWins++
	default:
		s.Ties++
	}

	if result.WentToShowdown {
		s.Showdowns++
		s.ShowdownChips += net
		if result.Category != "" {
			if s.WinningCategories == nil {
				s.WinningCategories = make(map[string]int)
			}
			s.WinningCategories[result.Category]++
		}
	} else {
		s.NonShowdownChips += net
	}
	s.AllChips += net

	if result.PhaseReached != "" {
		if s.PhaseResults == nil {
			s.PhaseResults = make(map[string]*PhaseStats)
		}
		ps := s.PhaseResults[result.PhaseReached]
		if ps == nil {
			ps = &PhaseStats{}
			s.PhaseResults[result.PhaseReached] = ps
		}
		ps.Hands++
		ps.SumChips += net
		ps.SumChips2 += net * net
	}

	if result.FinalPot > s.MaxPot {
		s.MaxPot = result.FinalPot
	}
	if result.FinalPot >= BigPotThreshold {
		s.BigPots++
		s.BigPotsChips += net
	}
}

// AddTournament records a finished (or abandoned) tournament
func (s *Statistics) AddTournament(result TournamentResult) {
	s.Tournaments++
	s.TournamentHands += result.Hands
	if result.Hands > s.LongestTournament {
		s.LongestTournament = result.Hands
	}
	switch result.Winner {
	case "player":
		s.PlayerTournaments++
	case "opponent":
		s.BotTournaments++
	default:
		s.Unfinished++
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumChips += other.SumChips
	s.SumChips2 += other.SumChips2
	s.Values = append(s.Values, other.Values...)

	s.PlayerWins += other.PlayerWins
	s.OpponentWins += other.OpponentWins
	s.Ties += other.Ties
	s.ShowdownWins += other.ShowdownWins
	s.NonShowdownWins += other.NonShowdownWins
	s.ShowdownChips += other.ShowdownChips
	s.NonShowdownChips += other.NonShowdownChips
	s.AllChips += other.AllChips
	s.Showdowns += other.Showdowns

	for cat, n := range other.WinningCategories {
		if s.WinningCategories == nil {
			s.WinningCategories = make(map[string]int)
		}
		s.WinningCategories[cat] += n
	}
	for phase, ops := range other.PhaseResults {
		if s.PhaseResults == nil {
			s.PhaseResults = make(map[string]*PhaseStats)
		}
		ps := s.PhaseResults[phase]
		if ps == nil {
			ps = &PhaseStats{}
			s.PhaseResults[phase] = ps
		}
		ps.Hands += ops.Hands
		ps.SumChips += ops.SumChips
		ps.SumChips2 += ops.SumChips2
	}

	s.MaxPot = max(s.MaxPot, other.MaxPot)
	s.BigPots += other.BigPots
	s.BigPotsChips += other.BigPotsChips

	s.Tournaments += other.Tournaments
	s.PlayerTournaments += other.PlayerTournaments
	s.BotTournaments += other.BotTournaments
	s.Unfinished += other.Unfinished
	s.TournamentHands += other.TournamentHands
	s.LongestTournament = max(s.LongestTournament, other.LongestTournament)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PhaseMean returns the mean result of hands that ended after reaching phase
func (s *Statistics) PhaseMean(phase string) float64 {
	ps := s.PhaseResults[phase]
	if ps == nil || ps.Hands == 0 {
		return 0
	}
	return ps.SumChips / float64(ps.Hands)
}

// ShowdownRate returns the fraction of hands that reached showdown
func (s *Statistics) ShowdownRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Showdowns) / float64(s.Hands)
}

// MeanTournamentLength returns the average number of hands per tournament
func (s *Statistics) MeanTournamentLength() float64 {
	if s.Tournaments == 0 {
		return 0
	}
	return float64(s.TournamentHands) / float64(s.Tournaments)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllChips-s.ShowdownChips-s.NonShowdownChips) <= 1e-6
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%.0f, showdown=%.0f, non-showdown=%.0f",
			s.AllChips, s.ShowdownChips, s.NonShowdownChips)
	}

	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}

	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}

	if s.PlayerWins+s.OpponentWins+s.Ties != s.Hands {
		return fmt.Errorf("wins %d + losses %d + ties %d do not match hands %d",
			s.PlayerWins, s.OpponentWins, s.Ties, s.Hands)
	}

	if s.ShowdownWins+s.NonShowdownWins != s.PlayerWins {
		return fmt.Errorf("showdown wins (%d) + fold wins (%d) do not match player wins (%d)",
			s.ShowdownWins, s.NonShowdownWins, s.PlayerWins)
	}

	phaseHands := 0
	for _, ps := range s.PhaseResults {
		phaseHands += ps.Hands
	}
	if phaseHands != s.Hands {
		return fmt.Errorf("phase hands total (%d) does not match total hands (%d)", phaseHands, s.Hands)
	}

	if s.Tournaments > 0 && s.TournamentHands != s.Hands {
		return fmt.Errorf("tournament hands (%d) do not match hands (%d)", s.TournamentHands, s.Hands)
	}

	return nil
}
