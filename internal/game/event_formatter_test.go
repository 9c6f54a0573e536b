package game

import (
	"testing"

	"github.com/lox/headsup/poker"
	"github.com/stretchr/testify/assert"
)

func TestEventFormatter(t *testing.T) {
	t.Parallel()
	ef := NewEventFormatter(FormattingOptions{})

	assert.Equal(t, "Hand #4: ante 10 each, pot 20",
		ef.Format(RoundStartEvent{RoundID: 4, Ante: 10, Pot: 20}))
	assert.Equal(t, "*** flop *** [A♥ K♦ 9♠]",
		ef.Format(PhaseChangeEvent{Phase: Flop, Community: poker.MustParseCards("Ah Kd 9s")}))
	assert.Equal(t, "You: raises 100 (pot now: 120)",
		ef.Format(ActionEvent{Participant: Player, Action: Raise, Amount: 100, PotAfter: 120}))
	assert.Equal(t, "Opponent: checks/calls (pot now: 120)",
		ef.Format(ActionEvent{Participant: Opponent, Action: CheckCall, PotAfter: 120, Reasoning: "post-flop, check/call"}))
	assert.Equal(t, "You: folds",
		ef.Format(ActionEvent{Participant: Player, Action: Fold}))
}

func TestEventFormatterReasonings(t *testing.T) {
	t.Parallel()
	ef := NewEventFormatter(FormattingOptions{ShowReasonings: true})
	line := ef.Format(ActionEvent{Participant: Opponent, Action: CheckCall, PotAfter: 20, Reasoning: "post-flop, check/call"})
	assert.Equal(t, "Opponent: checks/calls (pot now: 20) [post-flop, check/call]", line)
}

func TestEventFormatterShowdown(t *testing.T) {
	t.Parallel()
	out := Settle(20, [2]int{990, 990}, ShowdownResult(
		poker.HandResult{Type: poker.TwoPair},
		poker.HandResult{Type: poker.HighCard, High: poker.Ace},
	))
	e := RoundEndEvent{
		Phase:        Showdown,
		Outcome:      out,
		PlayerHand:   [2]poker.Card{poker.NewCard(poker.Ace, poker.Spades), poker.NewCard(poker.King, poker.Spades)},
		OpponentHand: [2]poker.Card{poker.NewCard(poker.Seven, poker.Clubs), poker.NewCard(poker.Two, poker.Diamonds)},
	}

	english := NewEventFormatter(FormattingOptions{}).Format(e)
	assert.Equal(t, "Showdown: you A♠ K♠ (Two Pair), opponent 7♣ 2♦ (High Card (A)): You win with Two Pair", english)

	spanish := NewEventFormatter(FormattingOptions{Spanish: true}).Format(e)
	assert.Equal(t, "Showdown: you A♠ K♠ (Doble Par), opponent 7♣ 2♦ (Carta Alta): Ganas con Doble Par", spanish)
}

func TestEventFormatterFoldAndTie(t *testing.T) {
	t.Parallel()
	fold := RoundEndEvent{Phase: FoldEnded, Outcome: Settle(120, [2]int{890, 990}, FoldResult(Opponent))}
	assert.Equal(t, "Player wins by fold", NewEventFormatter(FormattingOptions{}).Format(fold))

	pair := poker.HandResult{Type: poker.OnePair}
	tie := RoundEndEvent{Phase: Showdown, Outcome: Settle(20, [2]int{990, 990}, ShowdownResult(pair, pair))}
	assert.Contains(t, NewEventFormatter(FormattingOptions{Spanish: true}).Format(tie), "Empate total")
}

func TestEventBusUnsubscribe(t *testing.T) {
	t.Parallel()
	bus := NewEventBus()
	a, b := &eventRecorder{}, &eventRecorder{}
	bus.Subscribe(a)
	bus.Subscribe(b)
	calls := 0
	fn := EventSubscriberFunc(func(GameEvent) { calls++ })
	bus.Subscribe(fn)

	bus.Publish(RoundStartEvent{RoundID: 1})
	bus.Unsubscribe(a)
	bus.Unsubscribe(fn)
	bus.Publish(RoundStartEvent{RoundID: 2})

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 2)
	assert.Equal(t, 2, calls, "function subscribers cannot be removed")
}
