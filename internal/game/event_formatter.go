package game

import (
	"fmt"

	"github.com/lox/headsup/poker"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowReasonings bool // Include opponent reasoning (for debugging and logs)
	Spanish        bool // Use Spanish hand category names
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any event as a single human-readable line
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return fmt.Sprintf("Hand #%d: ante %d each, pot %d", e.RoundID, e.Ante, e.Pot)
	case PhaseChangeEvent:
		return fmt.Sprintf("*** %s *** [%s]", e.Phase, poker.FormatCards(e.Community))
	case ActionEvent:
		return ef.FormatAction(e)
	case RoundEndEvent:
		return ef.FormatRoundEnd(e)
	case TournamentOverEvent:
		return e.Message
	default:
		return fmt.Sprintf("unknown event %s", event.EventType())
	}
}

// FormatAction formats an action event
func (ef *EventFormatter) FormatAction(e ActionEvent) string {
	who := "You"
	if e.Participant == Opponent {
		who = "Opponent"
	}

	var text string
	switch e.Action {
	case Fold:
		text = fmt.Sprintf("%s: folds", who)
	case CheckCall:
		text = fmt.Sprintf("%s: checks/calls (pot now: %d)", who, e.PotAfter)
	case Raise:
		text = fmt.Sprintf("%s: raises %d (pot now: %d)", who, e.Amount, e.PotAfter)
	}

	if ef.opts.ShowReasonings && e.Reasoning != "" {
		text += fmt.Sprintf(" [%s]", e.Reasoning)
	}
	return text
}

// FormatRoundEnd formats a settled hand
func (ef *EventFormatter) FormatRoundEnd(e RoundEndEvent) string {
	o := e.Outcome
	if o.Folded {
		return o.Message
	}
	return fmt.Sprintf("Showdown: you %s (%s), opponent %s (%s): %s",
		poker.FormatCards(e.PlayerHand[:]), ef.Category(o.Hands[Player]),
		poker.FormatCards(e.OpponentHand[:]), ef.Category(o.Hands[Opponent]),
		ef.outcomeMessage(o))
}

// Category names the hand category in the configured language
func (ef *EventFormatter) Category(r poker.HandResult) string {
	if ef.opts.Spanish {
		return r.Type.Spanish()
	}
	return r.String()
}

func (ef *EventFormatter) outcomeMessage(o Outcome) string {
	if !ef.opts.Spanish {
		return o.Message
	}
	switch {
	case o.Tie:
		return "Empate total"
	case o.Winner == Player:
		return fmt.Sprintf("Ganas con %s", o.Hands[Player].Type.Spanish())
	default:
		return fmt.Sprintf("Bot gana con %s", o.Hands[Opponent].Type.Spanish())
	}
}
