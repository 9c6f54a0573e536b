package game

import (
	"fmt"
	"math/rand"

	"github.com/lox/headsup/poker"
)

// Default betting constants
const (
	DefaultAnte          = 10
	DefaultRaiseAmount   = 100
	DefaultStartingChips = 1000
)

// Rules are the fixed betting constants for a session
type Rules struct {
	Ante          int
	RaiseAmount   int
	StartingChips int
}

// DefaultRules returns the stock ante, raise and starting stack
func DefaultRules() Rules {
	return Rules{
		Ante:          DefaultAnte,
		RaiseAmount:   DefaultRaiseAmount,
		StartingChips: DefaultStartingChips,
	}
}

// DeckSource produces the deck for a new round
type DeckSource func(rng *rand.Rand) *poker.Deck

// Round is the state machine for one hand of play. The same Round is dealt
// again for the next hand so chip stacks carry over between hands.
type Round struct {
	id        int
	phase     Phase
	turn      Participant
	hands     [2][2]poker.Card
	community []poker.Card
	pot       int
	chips     [2]int
	antes     [2]int
	message   string
	outcome   *Outcome

	rules   Rules
	rng     *rand.Rand
	newDeck DeckSource
	deck    *poker.Deck
}

// NewRound creates a round waiting to be dealt
func NewRound(rng *rand.Rand, rules Rules, chips [2]int) *Round {
	if rng == nil {
		panic("rng is required for round creation")
	}
	return &Round{
		phase:   PreDeal,
		turn:    Player,
		chips:   chips,
		message: "Welcome, deal to start",
		rules:   rules,
		rng:     rng,
		newDeck: poker.NewDeck,
	}
}

// ID returns the number of hands dealt so far; it identifies the current hand
func (r *Round) ID() int { return r.id }

// Phase returns the current phase
func (r *Round) Phase() Phase { return r.phase }

// Turn returns who is due to act
func (r *Round) Turn() Participant { return r.turn }

// Pot returns the chips in the middle
func (r *Round) Pot() int { return r.pot }

// Chips returns both stacks, indexed by Participant
func (r *Round) Chips() [2]int { return r.chips }

// Antes returns what each participant posted at the start of the current hand
func (r *Round) Antes() [2]int { return r.antes }

// Hand returns a participant's private cards
func (r *Round) Hand(p Participant) [2]poker.Card { return r.hands[p] }

// Community returns a copy of the community cards
func (r *Round) Community() []poker.Card {
	return append([]poker.Card(nil), r.community...)
}

// Outcome returns the settled outcome, or nil while the hand is in play
func (r *Round) Outcome() *Outcome { return r.outcome }

// Message returns the latest human-readable status line
func (r *Round) Message() string { return r.message }

// Rules returns the betting constants
func (r *Round) Rules() Rules { return r.rules }

// Deal starts a new hand from PreDeal or any terminal phase. When either
// stack is empty it moves to TournamentOver instead of dealing.
func (r *Round) Deal() error {
	if r.phase.IsBetting() {
		return fmt.Errorf("deal during %s: %w", r.phase, ErrInvalidTransition)
	}

	if r.chips[Player] <= 0 || r.chips[Opponent] <= 0 {
		loser := Player
		if r.chips[Player] > 0 {
			loser = Opponent
		}
		r.phase = TournamentOver
		r.outcome = nil
		r.message = TournamentOverMessage(loser)
		return nil
	}

	r.id++
	r.deck = r.newDeck(r.rng)
	r.hands[Player] = r.drawHole()
	r.hands[Opponent] = r.drawHole()
	r.community = make([]poker.Card, 0, 5)
	r.outcome = nil

	// Ante: a short stack posts what it has
	r.pot = 0
	for _, p := range []Participant{Player, Opponent} {
		ante := min(r.rules.Ante, r.chips[p])
		r.chips[p] -= ante
		r.antes[p] = ante
		r.pot += ante
	}

	r.phase = PreFlop
	r.turn = Player
	r.message = "Your turn"
	return nil
}

// AdvancePhase is a check/call by the acting participant. It deals the next
// community cards and hands the turn back to the player, or at the river
// resolves the hand at showdown.
func (r *Round) AdvancePhase(by Participant) error {
	if err := r.checkTurn(by); err != nil {
		return err
	}

	switch r.phase {
	case PreFlop:
		r.community = append(r.community, r.draw(3)...)
		r.phase = Flop
	case Flop:
		r.community = append(r.community, r.draw(1)...)
		r.phase = Turn
	case Turn:
		r.community = append(r.community, r.draw(1)...)
		r.phase = River
	case River:
		r.showdown()
		return nil
	}

	r.turn = Player
	if by == Opponent {
		r.message = "Opponent checks/calls, your turn"
	} else {
		r.message = "Your turn"
	}
	return nil
}

// Raise moves the fixed raise amount from by's stack into the pot and passes the turn
func (r *Round) Raise(by Participant) error {
	if err := r.checkTurn(by); err != nil {
		return err
	}
	amount := r.rules.RaiseAmount
	if r.chips[by] < amount {
		return fmt.Errorf("%s has %d, raise needs %d: %w", by, r.chips[by], amount, ErrInsufficientChips)
	}

	r.chips[by] -= amount
	r.pot += amount
	r.turn = by.Other()
	if by == Player {
		r.message = fmt.Sprintf("You raise %d", amount)
	} else {
		r.message = fmt.Sprintf("Opponent raises %d", amount)
	}
	return nil
}

// Fold ends the hand immediately and awards the pot to the other participant.
// It is allowed in any betting phase regardless of whose turn it is.
func (r *Round) Fold(by Participant) error {
	if !r.phase.IsBetting() {
		return fmt.Errorf("%s fold during %s: %w", by, r.phase, ErrInvalidTransition)
	}
	r.phase = FoldEnded
	r.settle(FoldResult(by))
	return nil
}

// Validate checks the structural invariants of the round
func (r *Round) Validate() error {
	if r.pot < 0 {
		return fmt.Errorf("negative pot %d", r.pot)
	}
	if r.phase == PreDeal || r.phase == TournamentOver {
		return nil
	}
	if r.phase.IsBetting() && len(r.community) != r.phase.CommunityCount() {
		return fmt.Errorf("%d community cards during %s", len(r.community), r.phase)
	}
	if r.phase.IsTerminal() && r.pot != 0 {
		return fmt.Errorf("pot of %d left after %s", r.pot, r.phase)
	}

	seen := make(map[poker.Card]bool, 9)
	cards := append([]poker.Card{}, r.hands[Player][:]...)
	cards = append(cards, r.hands[Opponent][:]...)
	cards = append(cards, r.community...)
	for _, c := range cards {
		if seen[c] {
			return fmt.Errorf("card %s dealt twice", c)
		}
		seen[c] = true
	}
	return nil
}

func (r *Round) checkTurn(by Participant) error {
	if !r.phase.IsBetting() {
		return fmt.Errorf("%s acting during %s: %w", by, r.phase, ErrInvalidTransition)
	}
	if r.turn != by {
		return fmt.Errorf("%s acting on %s's turn: %w", by, r.turn, ErrInvalidTransition)
	}
	return nil
}

func (r *Round) showdown() {
	r.phase = Showdown
	r.settle(ShowdownResult(
		poker.Evaluate(r.sevenCards(Player)),
		poker.Evaluate(r.sevenCards(Opponent)),
	))
}

func (r *Round) sevenCards(p Participant) []poker.Card {
	cards := make([]poker.Card, 0, 7)
	cards = append(cards, r.hands[p][:]...)
	return append(cards, r.community...)
}

func (r *Round) settle(res Result) {
	out := Settle(r.pot, r.chips, res)
	r.chips = out.Chips
	r.pot = 0
	r.outcome = &out
	r.message = out.Message
}

func (r *Round) drawHole() [2]poker.Card {
	cards := r.draw(2)
	return [2]poker.Card{cards[0], cards[1]}
}

// draw panics when the deck runs out: at most 9 of 52 cards are ever dealt,
// so exhaustion means the state machine is broken.
func (r *Round) draw(n int) []poker.Card {
	cards, err := r.deck.Deal(n)
	if err != nil {
		panic(fmt.Sprintf("round %d: %v", r.id, err))
	}
	return cards
}

// TournamentOverMessage is the status line shown once loser has no chips left
func TournamentOverMessage(loser Participant) string {
	if loser == Player {
		return "Player is out of chips, opponent wins the tournament"
	}
	return "Opponent is out of chips, you win the tournament"
}
