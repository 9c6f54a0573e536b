// Package config loads the optional HCL configuration file for a session.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/headsup/internal/game"
)

// DefaultOpponentName is shown when the opponent block is absent
const DefaultOpponentName = "bot"

// ErrInvalidConfig is returned when a loaded configuration fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the complete configuration file
type Config struct {
	Game     *GameSettings     `hcl:"game,block"`
	Opponent *OpponentSettings `hcl:"opponent,block"`
}

// GameSettings holds the fixed betting constants
type GameSettings struct {
	StartingChips int `hcl:"starting_chips,optional"`
	Ante          int `hcl:"ante,optional"`
	RaiseAmount   int `hcl:"raise_amount,optional"`
}

// OpponentSettings tunes the scripted opponent. The block label is its display name.
type OpponentSettings struct {
	Name           string   `hcl:"name,label"`
	Aggressiveness *float64 `hcl:"aggressiveness,optional"`
	Bluff          *float64 `hcl:"bluff,optional"`
	ThinkDelay     string   `hcl:"think_delay,optional"`

	delay time.Duration
}

// Default returns the stock configuration
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return c
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse reads configuration from HCL source; filename is only used in diagnostics
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Game.StartingChips == 0 {
		c.Game.StartingChips = game.DefaultStartingChips
	}
	if c.Game.Ante == 0 {
		c.Game.Ante = game.DefaultAnte
	}
	if c.Game.RaiseAmount == 0 {
		c.Game.RaiseAmount = game.DefaultRaiseAmount
	}

	if c.Opponent == nil {
		c.Opponent = &OpponentSettings{Name: DefaultOpponentName}
	}
	if c.Opponent.Aggressiveness == nil {
		v := game.DefaultAggressiveness
		c.Opponent.Aggressiveness = &v
	}
	if c.Opponent.Bluff == nil {
		v := game.DefaultBluff
		c.Opponent.Bluff = &v
	}
	if c.Opponent.ThinkDelay == "" {
		c.Opponent.ThinkDelay = game.DefaultThinkDelay.String()
	}
}

// Validate checks the configuration and resolves the think delay
func (c *Config) Validate() error {
	g := c.Game
	if g.StartingChips < 0 || g.Ante < 0 || g.RaiseAmount < 0 {
		return fmt.Errorf("chip amounts must not be negative: %w", ErrInvalidConfig)
	}
	if g.Ante >= g.StartingChips {
		return fmt.Errorf("ante %d must be below starting chips %d: %w", g.Ante, g.StartingChips, ErrInvalidConfig)
	}

	o := c.Opponent
	if o.Name == "" {
		return fmt.Errorf("opponent name is empty: %w", ErrInvalidConfig)
	}
	for name, p := range map[string]float64{"aggressiveness": *o.Aggressiveness, "bluff": *o.Bluff} {
		if p < 0 || p > 1 {
			return fmt.Errorf("opponent %s %v outside [0, 1]: %w", name, p, ErrInvalidConfig)
		}
	}

	delay, err := time.ParseDuration(o.ThinkDelay)
	if err != nil {
		return fmt.Errorf("opponent think_delay: %v: %w", err, ErrInvalidConfig)
	}
	if delay < 0 {
		return fmt.Errorf("opponent think_delay %s is negative: %w", delay, ErrInvalidConfig)
	}
	o.delay = delay
	return nil
}

// Rules returns the betting constants
func (c *Config) Rules() game.Rules {
	return game.Rules{
		Ante:          c.Game.Ante,
		RaiseAmount:   c.Game.RaiseAmount,
		StartingChips: c.Game.StartingChips,
	}
}

// Strategy returns the opponent's probabilities
func (c *Config) Strategy() game.Strategy {
	return game.Strategy{
		Aggressiveness: *c.Opponent.Aggressiveness,
		Bluff:          *c.Opponent.Bluff,
	}
}

// ThinkDelay returns how long the opponent waits before acting
func (c *Config) ThinkDelay() time.Duration {
	return c.Opponent.delay
}

// OpponentName returns the opponent's display name
func (c *Config) OpponentName() string {
	return c.Opponent.Name
}

// Options converts the configuration into session options
func (c *Config) Options() []game.Option {
	return []game.Option{
		game.WithRules(c.Rules()),
		game.WithStrategy(c.Strategy()),
	}
}
