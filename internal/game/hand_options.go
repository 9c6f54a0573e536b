package game

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Option configures a Session during creation.
type Option func(*sessionConfig)

// sessionConfig holds all configuration for creating a session.
type sessionConfig struct {
	rules    Rules
	strategy Strategy
	chips    *[2]int    // If nil, both stacks start at rules.StartingChips
	deck     DeckSource // If nil, a fresh shuffled deck per hand
	logger   *log.Logger
	clock    quartz.Clock
	bus      EventBus
}

// Option Functions

// WithRules replaces ante, raise amount and starting stack at once.
func WithRules(rules Rules) Option {
	return func(c *sessionConfig) {
		c.rules = rules
	}
}

// WithAnte sets the ante each participant posts per hand. Default is 10.
func WithAnte(ante int) Option {
	return func(c *sessionConfig) {
		c.rules.Ante = ante
	}
}

// WithRaiseAmount sets the fixed raise size. Default is 100.
func WithRaiseAmount(amount int) Option {
	return func(c *sessionConfig) {
		c.rules.RaiseAmount = amount
	}
}

// WithStartingChips sets the same starting stack for both participants.
// Default is 1000 if not specified.
func WithStartingChips(chips int) Option {
	return func(c *sessionConfig) {
		c.rules.StartingChips = chips
		c.chips = nil
	}
}

// WithChips sets individual starting stacks, mostly useful in tests.
func WithChips(player, opponent int) Option {
	return func(c *sessionConfig) {
		c.chips = &[2]int{player, opponent}
	}
}

// WithStrategy sets the opponent's aggressiveness and bluff probabilities.
func WithStrategy(strategy Strategy) Option {
	return func(c *sessionConfig) {
		c.strategy = strategy
	}
}

// WithDeckSource sets how each hand's deck is produced.
// This allows stacked decks for deterministic scenarios.
func WithDeckSource(src DeckSource) Option {
	return func(c *sessionConfig) {
		c.deck = src
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) Option {
	return func(c *sessionConfig) {
		c.clock = clock
	}
}

// WithEventBus sets the bus events are published on.
func WithEventBus(bus EventBus) Option {
	return func(c *sessionConfig) {
		c.bus = bus
	}
}
