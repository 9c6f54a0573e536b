package main

import (
	"time"

	"github.com/lox/headsup/internal/statistics"
)

// report is the JSON summary written with --output
type report struct {
	Seed        int64          `json:"seed"`
	Player      string         `json:"player"`
	Tournaments int            `json:"tournaments"`
	Hands       int            `json:"hands"`
	DurationMS  int64          `json:"duration_ms"`
	Outcomes    outcomeReport  `json:"tournament_outcomes"`
	Chips       chipReport     `json:"chips_per_hand"`
	Showdowns   int            `json:"showdowns"`
	MaxPot      int            `json:"max_pot"`
	BigPots     int            `json:"big_pots"`
	Categories  map[string]int `json:"winning_categories,omitempty"`
	Phases      map[string]int `json:"hands_by_phase,omitempty"`
}

type outcomeReport struct {
	Player     int `json:"player"`
	Bot        int `json:"bot"`
	Unfinished int `json:"unfinished"`
}

type chipReport struct {
	Mean   float64    `json:"mean"`
	Median float64    `json:"median"`
	StdDev float64    `json:"std_dev"`
	CI95   [2]float64 `json:"ci95"`
}

func newReport(stats *statistics.Statistics, cli CLI, seed int64, duration time.Duration) report {
	low, high := stats.ConfidenceInterval95()
	r := report{
		Seed:        seed,
		Player:      cli.Player,
		Tournaments: stats.Tournaments,
		Hands:       stats.Hands,
		DurationMS:  duration.Milliseconds(),
		Outcomes: outcomeReport{
			Player:     stats.PlayerTournaments,
			Bot:        stats.BotTournaments,
			Unfinished: stats.Unfinished,
		},
		Chips: chipReport{
			Mean:   stats.Mean(),
			Median: stats.Median(),
			StdDev: stats.StdDev(),
			CI95:   [2]float64{low, high},
		},
		Showdowns:  stats.Showdowns,
		MaxPot:     stats.MaxPot,
		BigPots:    stats.BigPots,
		Categories: stats.WinningCategories,
	}
	if len(stats.PhaseResults) > 0 {
		r.Phases = make(map[string]int, len(stats.PhaseResults))
		for phase, ps := range stats.PhaseResults {
			r.Phases[phase] = ps.Hands
		}
	}
	return r
}
