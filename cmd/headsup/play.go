package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/headsup/internal/config"
	"github.com/lox/headsup/internal/game"
	"github.com/lox/headsup/internal/gameid"
	"github.com/lox/headsup/internal/phh"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/tui"
	"github.com/muesli/termenv"
)

// PlayCmd runs the interactive game
type PlayCmd struct {
	Config     string        `short:"c" type:"path" default:"headsup.hcl" help:"HCL config file (missing file uses defaults)"`
	Seed       int64         `default:"0" help:"RNG seed (0 for random)"`
	LogFile    string        `type:"path" default:"headsup.log" help:"Log file (the terminal belongs to the game)"`
	Debug      bool          `help:"Enable debug logging"`
	NoColor    bool          `help:"Disable colours"`
	ThinkDelay time.Duration `help:"Override the bot's thinking delay"`
	HistoryDir string        `type:"path" help:"Write PHH hand histories to this directory"`
	Spanish    bool          `help:"Spanish hand category names"`
	Reasoning  bool          `help:"Show the bot's reasoning in the log"`
	Odds       bool          `help:"Start with the win odds display on (toggle with o)"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	level := log.InfoLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "headsup",
		Level:           level,
	})

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	seed := randutil.Seed(c.Seed)
	sessionID := gameid.Generate()
	logger.Info("Starting session", "session", sessionID, "seed", seed, "opponent", cfg.OpponentName())

	bus := game.NewEventBus()
	opts := append(cfg.Options(), game.WithLogger(logger), game.WithEventBus(bus))
	session := game.NewSession(randutil.New(seed), opts...)

	var recorder *phh.Recorder
	historyPath := filepath.Join(c.HistoryDir, fmt.Sprintf("session-%s.phhs", sessionID))
	if c.HistoryDir != "" {
		recorder = phh.NewRecorder(phh.RecorderConfig{
			SessionID: sessionID,
			Players:   [2]string{"you", cfg.OpponentName()},
			Rules:     session.Rules(),
			Path:      historyPath,
		}, logger)
		bus.Subscribe(recorder)
	}

	delay := cfg.ThinkDelay()
	if c.ThinkDelay > 0 {
		delay = c.ThinkDelay
	}
	thinker := game.NewThinker(quartz.NewReal(), delay, logger)

	model := tui.NewModel(session, thinker, tui.Options{
		OpponentName:   cfg.OpponentName(),
		Spanish:        c.Spanish,
		ShowReasonings: c.Reasoning,
		ShowOdds:       c.Odds,
		OddsSeed:       randutil.DeriveSeed(seed, 0),
		Logger:         logger,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	thinker.Cancel()

	logger.Info("Session ended", "session", sessionID, "hands", session.HandsPlayed())
	if recorder != nil {
		if err := recorder.Err(); err != nil {
			return fmt.Errorf("writing hand history: %w", err)
		}
		if n := len(recorder.Hands()); n > 0 {
			fmt.Printf("Wrote %d hands to %s\n", n, historyPath)
		}
	}
	return nil
}
