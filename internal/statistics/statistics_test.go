package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.ShowdownRate() != 0 {
		t.Errorf("Expected showdown rate of 0 for empty stats, got %f", stats.ShowdownRate())
	}
	if stats.MeanTournamentLength() != 0 {
		t.Errorf("Expected tournament length of 0 for empty stats, got %f", stats.MeanTournamentLength())
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	results := []HandResult{
		{NetChips: 10, Winner: "player", PhaseReached: "pre-flop", FinalPot: 20},
		{NetChips: -110, Winner: "opponent", WentToShowdown: true, PhaseReached: "river", FinalPot: 220, Category: "One Pair"},
		{NetChips: 110, Winner: "player", WentToShowdown: true, PhaseReached: "river", FinalPot: 220, Category: "Flush"},
		{NetChips: 0, Winner: "tie", WentToShowdown: true, PhaseReached: "river", FinalPot: 20, Category: "Two Pair"},
		{NetChips: -10, Winner: "opponent", PhaseReached: "flop", FinalPot: 20},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if stats.Hands != 5 {
		t.Errorf("Expected 5 hands, got %d", stats.Hands)
	}
	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0, got %f", stats.Mean())
	}
	// Sorted values: -110, -10, 0, 10, 110
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0, got %f", stats.Median())
	}
	if stats.PlayerWins != 2 || stats.OpponentWins != 2 || stats.Ties != 1 {
		t.Errorf("Expected 2/2/1 wins/losses/ties, got %d/%d/%d", stats.PlayerWins, stats.OpponentWins, stats.Ties)
	}
	if stats.ShowdownWins != 1 || stats.NonShowdownWins != 1 {
		t.Errorf("Expected 1 showdown and 1 fold win, got %d and %d", stats.ShowdownWins, stats.NonShowdownWins)
	}
	if stats.Showdowns != 3 {
		t.Errorf("Expected 3 showdowns, got %d", stats.Showdowns)
	}
	if math.Abs(stats.ShowdownRate()-0.6) > 1e-9 {
		t.Errorf("Expected showdown rate of 0.6, got %f", stats.ShowdownRate())
	}
	if stats.WinningCategories["Flush"] != 1 || stats.WinningCategories["One Pair"] != 1 {
		t.Errorf("Unexpected winning categories: %v", stats.WinningCategories)
	}
	if stats.PhaseResults["river"].Hands != 3 {
		t.Errorf("Expected 3 hands ending on the river, got %d", stats.PhaseResults["river"].Hands)
	}
	if stats.PhaseMean("flop") != -10 {
		t.Errorf("Expected flop mean of -10, got %f", stats.PhaseMean("flop"))
	}
	if stats.PhaseMean("turn") != 0 {
		t.Errorf("Expected 0 for a phase with no hands, got %f", stats.PhaseMean("turn"))
	}
	if stats.MaxPot != 220 || stats.BigPots != 2 {
		t.Errorf("Expected max pot 220 and 2 big pots, got %d and %d", stats.MaxPot, stats.BigPots)
	}
	if !stats.IsLedgerBalanced() {
		t.Error("Expected ledger to be balanced")
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HandResult{NetChips: i, Winner: "player", PhaseReached: "pre-flop"})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{1.0, 5.0},
	}
	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_VarianceAndConfidence(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []int{1, 3, 5} {
		stats.Add(HandResult{NetChips: v, Winner: "player", PhaseReached: "flop"})
	}

	if math.Abs(stats.Variance()-4.0) > 1e-9 {
		t.Errorf("Expected variance of 4, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-2.0) > 1e-9 {
		t.Errorf("Expected stddev of 2, got %f", stats.StdDev())
	}

	low, high := stats.ConfidenceInterval95()
	if math.Abs((low+high)/2-stats.Mean()) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f", low, high)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestStatistics_Tournaments(t *testing.T) {
	stats := &Statistics{}
	stats.AddTournament(TournamentResult{Hands: 12, Winner: "player"})
	stats.AddTournament(TournamentResult{Hands: 30, Winner: "opponent"})
	stats.AddTournament(TournamentResult{Hands: 3, Winner: ""})

	if stats.PlayerTournaments != 1 || stats.BotTournaments != 1 || stats.Unfinished != 1 {
		t.Errorf("Unexpected tournament split: %d/%d/%d", stats.PlayerTournaments, stats.BotTournaments, stats.Unfinished)
	}
	if stats.MeanTournamentLength() != 15 {
		t.Errorf("Expected mean length 15, got %f", stats.MeanTournamentLength())
	}
	if stats.LongestTournament != 30 {
		t.Errorf("Expected longest tournament 30, got %d", stats.LongestTournament)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	hands := []HandResult{
		{NetChips: 10, Winner: "player", PhaseReached: "pre-flop", FinalPot: 20},
		{NetChips: -210, Winner: "opponent", WentToShowdown: true, PhaseReached: "river", FinalPot: 420, Category: "Straight"},
		{NetChips: 110, Winner: "player", WentToShowdown: true, PhaseReached: "river", FinalPot: 220, Category: "Trips"},
		{NetChips: -10, Winner: "opponent", PhaseReached: "turn", FinalPot: 20},
	}
	for i, h := range hands {
		all.Add(h)
		if i < 2 {
			a.Add(h)
		} else {
			b.Add(h)
		}
	}
	a.AddTournament(TournamentResult{Hands: 2, Winner: "opponent"})
	b.AddTournament(TournamentResult{Hands: 2, Winner: "player"})
	all.AddTournament(TournamentResult{Hands: 2, Winner: "opponent"})
	all.AddTournament(TournamentResult{Hands: 2, Winner: "player"})

	merged := &Statistics{}
	merged.Merge(a)
	merged.Merge(b)

	if merged.Hands != all.Hands || merged.Mean() != all.Mean() || merged.Variance() != all.Variance() {
		t.Errorf("Merged summary differs: hands %d/%d mean %f/%f", merged.Hands, all.Hands, merged.Mean(), all.Mean())
	}
	if merged.MaxPot != 420 || merged.BigPots != 2 {
		t.Errorf("Expected max pot 420 and 2 big pots, got %d and %d", merged.MaxPot, merged.BigPots)
	}
	if merged.PhaseResults["river"].Hands != 2 || merged.WinningCategories["Straight"] != 1 {
		t.Errorf("Merged breakdowns differ: %v %v", merged.PhaseResults, merged.WinningCategories)
	}
	if merged.Tournaments != 2 || merged.PlayerTournaments != 1 {
		t.Errorf("Expected 2 tournaments with 1 player win, got %d and %d", merged.Tournaments, merged.PlayerTournaments)
	}
	if err := merged.Validate(); err != nil {
		t.Errorf("Expected merged stats to validate, got %v", err)
	}
}

func TestStatistics_Validate(t *testing.T) {
	tests := []struct {
		name  string
		stats *Statistics
		want  string
	}{
		{
			name:  "no hands",
			stats: &Statistics{},
			want:  "invalid hands count",
		},
		{
			name: "ledger mismatch",
			stats: &Statistics{
				Hands: 1, Values: []float64{10}, PlayerWins: 1, NonShowdownWins: 1,
				AllChips: 10, ShowdownChips: 5, NonShowdownChips: 6,
			},
			want: "ledger mismatch",
		},
		{
			name:  "values mismatch",
			stats: &Statistics{Hands: 2, Values: []float64{1}},
			want:  "values array length",
		},
		{
			name:  "wins do not add up",
			stats: &Statistics{Hands: 2, Values: []float64{1, 1}, PlayerWins: 3},
			want:  "do not match hands",
		},
		{
			name: "phase breakdown short",
			stats: &Statistics{
				Hands: 1, Values: []float64{1}, PlayerWins: 1, NonShowdownWins: 1,
				PhaseResults: map[string]*PhaseStats{},
			},
			want: "phase hands total",
		},
	}
	for _, tt := range tests {
		err := tt.stats.Validate()
		if err == nil {
			t.Errorf("%s: expected validation to fail", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}
