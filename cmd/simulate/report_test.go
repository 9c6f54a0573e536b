package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lox/headsup/internal/fileutil"
	"github.com/lox/headsup/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFromStatistics(t *testing.T) {
	t.Parallel()
	stats := &statistics.Statistics{}
	stats.Add(statistics.HandResult{NetChips: 120, WentToShowdown: true, FinalPot: 240, PhaseReached: "river", Winner: "player", Category: "Two Pair"})
	stats.Add(statistics.HandResult{NetChips: -10, FinalPot: 20, PhaseReached: "pre-flop", Winner: "opponent"})
	stats.AddTournament(statistics.TournamentResult{Hands: 2, Winner: "player"})

	r := newReport(stats, CLI{Player: "call"}, 42, 1500*time.Millisecond)

	assert.Equal(t, int64(42), r.Seed)
	assert.Equal(t, 2, r.Hands)
	assert.Equal(t, int64(1500), r.DurationMS)
	assert.Equal(t, outcomeReport{Player: 1}, r.Outcomes)
	assert.InDelta(t, 55.0, r.Chips.Mean, 1e-9)
	assert.Equal(t, 240, r.MaxPot)
	assert.Equal(t, 1, r.BigPots)
	assert.Equal(t, map[string]int{"Two Pair": 1}, r.Categories)
	assert.Equal(t, map[string]int{"river": 1, "pre-flop": 1}, r.Phases)
}

func TestReportWrittenAsJSON(t *testing.T) {
	t.Parallel()
	stats := &statistics.Statistics{}
	stats.Add(statistics.HandResult{NetChips: -10, FinalPot: 20, PhaseReached: "pre-flop", Winner: "opponent"})

	path := filepath.Join(t.TempDir(), "out", "report.json")
	require.NoError(t, fileutil.WriteJSONAtomic(path, newReport(stats, CLI{Player: "random"}, 7, time.Second)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "random", decoded["player"])
	assert.EqualValues(t, 1, decoded["hands"])
	assert.Contains(t, decoded, "chips_per_hand")
	assert.NotContains(t, decoded, "winning_categories")
}
