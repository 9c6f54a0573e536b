package phh

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/headsup/internal/fileutil"
	"github.com/lox/headsup/internal/game"
)

// RecorderConfig configures a hand-history recorder
type RecorderConfig struct {
	SessionID string
	Players   [2]string // display names, indexed by game.Participant
	Rules     game.Rules
	Path      string // session file rewritten after every hand; empty keeps hands in memory only
}

// Recorder is a game.EventSubscriber that turns session events into PHH
// hand histories.
type Recorder struct {
	cfg    RecorderConfig
	logger *log.Logger

	mu        sync.Mutex
	current   *HandHistory
	streetBet [2]int
	hands     []HandHistory
	lastErr   error
}

var _ game.EventSubscriber = (*Recorder)(nil)

// NewRecorder creates a recorder
func NewRecorder(cfg RecorderConfig, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{
		cfg:    cfg,
		logger: logger.WithPrefix("phh").With("session", cfg.SessionID),
	}
}

// OnEvent records the event into the hand in progress
func (r *Recorder) OnEvent(event game.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch e := event.(type) {
	case game.RoundStartEvent:
		r.startHand(e)
	case game.ActionEvent:
		r.recordAction(e)
	case game.PhaseChangeEvent:
		r.recordBoard(e)
	case game.RoundEndEvent:
		if r.finishHand(e) && r.cfg.Path != "" {
			if err := r.flushLocked(); err != nil {
				r.lastErr = err
				r.logger.Error("Failed to write hand history", "path", r.cfg.Path, "error", err)
			}
		}
	}
}

func (r *Recorder) startHand(e game.RoundStartEvent) {
	hist := &HandHistory{
		Variant:           Variant,
		Table:             r.cfg.SessionID,
		SeatCount:         2,
		Seats:             []int{1, 2},
		Antes:             []int{e.Antes[game.Player], e.Antes[game.Opponent]},
		BlindsOrStraddles: []int{0, 0},
		MinBet:            r.cfg.Rules.RaiseAmount,
		StartingStacks: []int{
			e.Chips[game.Player] + e.Antes[game.Player],
			e.Chips[game.Opponent] + e.Antes[game.Opponent],
		},
		Actions:   make([]string, 0, 16),
		Players:   []string{r.cfg.Players[game.Player], r.cfg.Players[game.Opponent]},
		HandID:    fmt.Sprintf("%s-%d", r.cfg.SessionID, e.RoundID),
		Timestamp: e.Timestamp(),
	}
	r.current = hist
	r.streetBet = [2]int{}
}

func (r *Recorder) recordAction(e game.ActionEvent) {
	if r.current == nil {
		return
	}
	if e.Action == game.Raise {
		r.streetBet[e.Participant] += e.Amount
	}
	r.current.Actions = append(r.current.Actions, FormatAction(e.Participant, e.Action, r.streetBet[e.Participant]))
}

func (r *Recorder) recordBoard(e game.PhaseChangeEvent) {
	if r.current == nil {
		return
	}
	prev := len(r.current.Board)
	if prev > len(e.Community) {
		prev = len(e.Community)
	}
	board := make([]string, len(e.Community))
	for i, c := range e.Community {
		board[i] = FormatCard(c)
	}
	r.current.Board = board
	if fresh := e.Community[prev:]; len(fresh) > 0 {
		r.current.Actions = append(r.current.Actions, "d db "+FormatCards(fresh))
	}
	r.streetBet = [2]int{}
}

// finishHand completes the hand in progress and reports whether one was recorded
func (r *Recorder) finishHand(e game.RoundEndEvent) bool {
	hist := r.current
	if hist == nil {
		return false
	}
	r.current = nil

	deal := []string{
		"d dh p1 " + FormatCards(e.PlayerHand[:]),
		"d dh p2 " + FormatCards(e.OpponentHand[:]),
	}
	hist.Actions = append(deal, hist.Actions...)

	if e.Phase == game.Showdown {
		hist.Actions = append(hist.Actions,
			"p1 sm "+FormatCards(e.PlayerHand[:]),
			"p2 sm "+FormatCards(e.OpponentHand[:]),
		)
	}

	out := e.Outcome
	hist.FinishingStacks = []int{out.Chips[game.Player], out.Chips[game.Opponent]}
	hist.Winnings = []int{out.Awarded[game.Player], out.Awarded[game.Opponent]}
	populateTimeFields(hist)

	r.hands = append(r.hands, *hist)
	r.logger.Debug("Recorded hand", "hand", hist.HandID, "actions", len(hist.Actions))
	return true
}

// Hands returns a copy of the recorded hands
func (r *Recorder) Hands() []HandHistory {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]HandHistory(nil), r.hands...)
}

// Err returns the last error encountered writing the session file
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Flush rewrites the session file with every recorded hand
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cfg.Path == "" {
		return nil
	}
	return r.flushLocked()
}

func (r *Recorder) flushLocked() error {
	if len(r.hands) == 0 {
		return nil
	}
	return fileutil.WriteAtomic(r.cfg.Path, 0o644, func(w io.Writer) error {
		return EncodeSession(w, r.hands)
	})
}
