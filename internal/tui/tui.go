package tui

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/headsup/internal/equity"
	"github.com/lox/headsup/internal/game"
)

const (
	tableWidth = 34

	// oddsSamples is the Monte Carlo sample count behind the win odds display
	oddsSamples = 1000
)

// Options configure the presentation of a Model
type Options struct {
	OpponentName   string
	Spanish        bool // Spanish hand category names
	ShowReasonings bool // append the opponent's reasoning to its actions in the log
	ShowOdds       bool // start with the win odds display on
	OddsSeed       int64
	Logger         *log.Logger
}

// opponentTurnMsg is delivered once the opponent has finished thinking
type opponentTurnMsg struct {
	roundID int
}

// Model is the Bubble Tea model for a heads-up game. All session calls
// happen in Update, so the session has a single writer.
type Model struct {
	session   *game.Session
	thinker   *game.Thinker
	formatter *game.EventFormatter
	logger    *log.Logger
	opponent  string

	keys        keyMap
	help        help.Model
	logViewport viewport.Model

	snap    game.Snapshot
	gameLog []string
	status  string

	showOdds bool
	odds     float64
	hasOdds  bool
	oddsRng  *rand.Rand

	opponentTurns chan int
	done          chan struct{}
	closeOnce     sync.Once

	width    int
	height   int
	quitting bool
}

// NewModel creates a model driving session, with the opponent's delay
// scheduled on thinker
func NewModel(session *game.Session, thinker *game.Thinker, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.OpponentName == "" {
		opts.OpponentName = "Opponent"
	}

	vp := viewport.New(10, 5)
	vp.KeyMap.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	vp.KeyMap.PageUp = key.NewBinding(key.WithKeys("pgup"))
	vp.KeyMap.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	vp.KeyMap.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))

	m := &Model{
		session: session,
		thinker: thinker,
		formatter: game.NewEventFormatter(game.FormattingOptions{
			ShowReasonings: opts.ShowReasonings,
			Spanish:        opts.Spanish,
		}),
		logger:        opts.Logger.WithPrefix("tui"),
		opponent:      opts.OpponentName,
		keys:          defaultKeyMap(),
		help:          help.New(),
		logViewport:   vp,
		snap:          session.Snapshot(),
		status:        "Press n to deal a hand",
		showOdds:      opts.ShowOdds,
		oddsRng:       rand.New(rand.NewSource(opts.OddsSeed)),
		opponentTurns: make(chan int, 1),
		done:          make(chan struct{}),
	}
	session.Events().Subscribe(game.EventSubscriberFunc(m.onEvent))
	return m
}

// Init starts listening for the opponent's deferred decisions
func (m *Model) Init() tea.Cmd {
	return m.listenForOpponent()
}

func (m *Model) listenForOpponent() tea.Cmd {
	return func() tea.Msg {
		select {
		case id := <-m.opponentTurns:
			return opponentTurnMsg{roundID: id}
		case <-m.done:
			return nil
		}
	}
}

// opponentReady runs on the thinker's clock goroutine
func (m *Model) opponentReady(roundID int) {
	select {
	case m.opponentTurns <- roundID:
	case <-m.done:
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case opponentTurnMsg:
		m.opponentTurn(msg.roundID)
		cmds = append(cmds, m.listenForOpponent())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
		case key.Matches(msg, m.keys.Deal):
			m.deal()
		case key.Matches(msg, m.keys.Fold):
			m.act(game.Fold)
		case key.Matches(msg, m.keys.Call):
			m.act(game.CheckCall)
		case key.Matches(msg, m.keys.Raise):
			m.act(game.Raise)
		case key.Matches(msg, m.keys.Reset):
			m.reset()
		case key.Matches(msg, m.keys.Odds):
			m.showOdds = !m.showOdds
			m.computeOdds()
		default:
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.thinker.Cancel()
	m.closeOnce.Do(func() { close(m.done) })
	return tea.Quit
}

func (m *Model) deal() {
	if m.snap.Phase.IsBetting() {
		m.status = "Finish the current hand first"
		return
	}
	m.thinker.Cancel()
	snap, err := m.session.NewRound()
	if err != nil {
		m.logger.Debug("Deal rejected", "error", err)
		m.status = "Finish the current hand first"
		return
	}
	m.update(snap)
}

func (m *Model) reset() {
	m.thinker.Cancel()
	m.snap = m.session.Reset()
	m.computeOdds()
	m.gameLog = append(m.gameLog, InfoStyle.Render("--- new tournament ---"))
	m.status = "Press n to deal a hand"
	m.refreshLog()
}

func (m *Model) act(a game.Action) {
	snap, err := m.session.PlayerAction(a)
	switch {
	case errors.Is(err, game.ErrInsufficientChips):
		m.status = "Not enough chips to raise"
		return
	case errors.Is(err, game.ErrInvalidTransition):
		if m.snap.OpponentToAct() {
			m.status = fmt.Sprintf("Waiting for %s", m.opponent)
		} else {
			m.status = "Press n to deal a hand"
		}
		return
	case err != nil:
		m.logger.Error("Player action failed", "action", a, "error", err)
		m.status = err.Error()
		return
	}
	m.update(snap)
}

func (m *Model) opponentTurn(roundID int) {
	snap, err := m.session.OpponentAct(roundID)
	if err != nil {
		// A decision for an abandoned hand is expected after a reset.
		m.logger.Debug("Opponent decision dropped", "round", roundID, "error", err)
		return
	}
	m.update(snap)
}

// update adopts snap and schedules the opponent when it is due to act
func (m *Model) update(snap game.Snapshot) {
	m.snap = snap
	m.status = ""
	switch {
	case snap.OpponentToAct():
		m.status = fmt.Sprintf("%s is thinking...", m.opponent)
		m.thinker.Schedule(snap.RoundID, m.opponentReady)
	case snap.Phase == game.TournamentOver:
		m.status = "Press x to start a new tournament"
	case snap.Phase.IsTerminal():
		m.status = "Press n to deal the next hand"
	}
	m.computeOdds()
	m.refreshLog()
}

// computeOdds estimates the player's showdown equity against a random hand
func (m *Model) computeOdds() {
	m.hasOdds = false
	if !m.showOdds || !m.snap.Phase.IsBetting() {
		return
	}
	r, err := equity.Estimate(m.snap.PlayerHand, m.snap.Community, equity.RandomRange{}, oddsSamples, m.oddsRng)
	if err != nil {
		m.logger.Warn("Failed to estimate odds", "error", err)
		return
	}
	m.odds = r.Equity()
	m.hasOdds = true
}

func (m *Model) onEvent(e game.GameEvent) {
	line := m.formatter.Format(e)
	switch e.EventType() {
	case game.EventTypeRoundStart:
		line = HandInfoStyle.Render(line)
	case game.EventTypeRoundEnd:
		line = MessageStyle.Render(line)
	case game.EventTypeTournamentOver:
		line = ErrorStyle.Render(line)
	}
	m.gameLog = append(m.gameLog, line)
}

func (m *Model) refreshLog() {
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	// header, help and the pane border
	m.logViewport.Width = max(m.width-tableWidth-4, 1)
	m.logViewport.Height = max(m.height-helpHeight-3, 1)
	m.refreshLog()
}

// Snapshot returns the state currently displayed
func (m *Model) Snapshot() game.Snapshot {
	return m.snap
}

// Status returns the prompt line under the table
func (m *Model) Status() string {
	return m.status
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(fmt.Sprintf("Heads-Up Hold'em vs %s", m.opponent))

	table := PaneStyle.
		Width(tableWidth - 2).
		Height(m.logViewport.Height).
		Render(m.renderTable())
	logPane := PaneStyle.
		Width(m.logViewport.Width).
		Height(m.logViewport.Height).
		Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, table, logPane),
		m.help.View(m.keys),
	)
}

func (m *Model) renderTable() string {
	s := m.snap
	var b strings.Builder

	if s.RoundID > 0 && s.Phase != game.PreDeal {
		fmt.Fprintf(&b, "Hand #%d  %s\n\n", s.RoundID, s.PhaseLabel())
	} else {
		b.WriteString("No hand in play\n\n")
	}

	fmt.Fprintf(&b, "%s: %d\n", m.opponent, s.OpponentChips)
	switch {
	case s.OpponentRevealed():
		b.WriteString(FormatCards(s.OpponentHand, 2))
	case s.Phase != game.PreDeal:
		b.WriteString(FormatCards(nil, 2))
	}
	b.WriteString(m.category(game.Opponent))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Board: %s\n", FormatCards(s.Community, 5))
	b.WriteString(PotStyle.Render(fmt.Sprintf("Pot: %d", s.Pot)))
	if m.hasOdds {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  Win odds: %.0f%%", m.odds*100)))
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "You: %d\n", s.PlayerChips)
	if len(s.PlayerHand) > 0 {
		b.WriteString(FormatCards(s.PlayerHand, 2))
	}
	b.WriteString(m.category(game.Player))
	b.WriteString("\n\n")

	if s.Message != "" {
		b.WriteString(MessageStyle.Render(s.Message))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(InfoStyle.Render(m.status))
	}
	return b.String()
}

// category names a participant's hand once it has been shown down
func (m *Model) category(p game.Participant) string {
	out := m.snap.Outcome
	if out == nil || out.Folded || m.snap.Phase != game.Showdown {
		return ""
	}
	return " " + m.formatter.Category(out.Hands[p])
}

// Log returns the rendered event log
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}
