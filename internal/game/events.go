package game

import (
	"time"

	"github.com/lox/headsup/poker"
)

// GameEvent represents any event that occurs during a session
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when a new hand is dealt
type RoundStartEvent struct {
	RoundID   int
	Ante      int
	Antes     [2]int // posted by each participant; a short stack posts less
	Pot       int
	Chips     [2]int // stacks after the antes
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// PhaseChangeEvent is published when community cards are dealt
type PhaseChangeEvent struct {
	RoundID   int
	Phase     Phase
	Community []poker.Card
	timestamp time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// ActionEvent is published when a participant acts
type ActionEvent struct {
	RoundID     int
	Participant Participant
	Action      Action
	Amount      int
	Reasoning   string
	PotAfter    int
	timestamp   time.Time
}

func (e ActionEvent) EventType() EventType { return EventTypeAction }
func (e ActionEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published when a hand is settled
type RoundEndEvent struct {
	RoundID      int
	Phase        Phase
	Outcome      Outcome
	Community    []poker.Card
	PlayerHand   [2]poker.Card
	OpponentHand [2]poker.Card
	timestamp    time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// TournamentOverEvent is published when a deal is refused because a stack is empty
type TournamentOverEvent struct {
	Loser     Participant
	Chips     [2]int
	Message   string
	timestamp time.Time
}

func (e TournamentOverEvent) EventType() EventType { return EventTypeTournamentOver }
func (e TournamentOverEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives published events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers run on the
// publishing goroutine, in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events.
// Function subscribers are not comparable and cannot be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
