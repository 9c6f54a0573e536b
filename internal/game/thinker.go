package game

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// DefaultThinkDelay is how long the opponent "thinks" before acting
const DefaultThinkDelay = time.Second

// Thinker schedules the opponent's deferred decision. At most one task is
// pending: scheduling again or cancelling discards the previous one, and a
// discarded task never runs even if its timer already fired.
//
// The task runs on the clock's goroutine. It should hand control back to the
// session's owner (for example by sending a message) rather than mutate the
// session directly.
type Thinker struct {
	clock  quartz.Clock
	delay  time.Duration
	logger *log.Logger

	mu    sync.Mutex
	timer *quartz.Timer
	gen   uint64
}

// NewThinker creates a thinker firing after delay on clock
func NewThinker(clock quartz.Clock, delay time.Duration, logger *log.Logger) *Thinker {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Thinker{
		clock:  clock,
		delay:  delay,
		logger: logger.WithPrefix("thinker"),
	}
}

// Delay returns the configured thinking time
func (t *Thinker) Delay() time.Duration {
	return t.delay
}

// Schedule runs task after the thinking delay, replacing any pending task
func (t *Thinker) Schedule(roundID int, task func(roundID int)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	gen := t.gen

	t.logger.Debug("Scheduling opponent decision", "round", roundID, "delay", t.delay)
	t.timer = t.clock.AfterFunc(t.delay, func() {
		t.mu.Lock()
		if gen != t.gen {
			t.mu.Unlock()
			t.logger.Debug("Dropping stale opponent decision", "round", roundID)
			return
		}
		t.timer = nil
		t.mu.Unlock()

		task(roundID)
	}, "thinker")
}

// Cancel discards the pending task, if any. It reports whether one was pending.
func (t *Thinker) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending := t.timer != nil
	t.stopLocked()
	t.gen++
	if pending {
		t.logger.Debug("Cancelled opponent decision")
	}
	return pending
}

// Pending reports whether a task is waiting to run
func (t *Thinker) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

func (t *Thinker) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
