package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/headsup/internal/phh"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// HistoryCmd prints hands recorded with --history-dir
type HistoryCmd struct {
	File  string `arg:"" name:"file" type:"existingfile" help:"Path to a session .phhs file"`
	Limit int    `help:"Maximum number of hands to print (0 = all)"`
}

func (c *HistoryCmd) Run() error {
	f, err := os.Open(filepath.Clean(c.File))
	if err != nil {
		return err
	}
	defer f.Close()

	hands, err := phh.DecodeSession(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", c.File, err)
	}
	if len(hands) == 0 {
		return errors.New("no hands found in " + c.File)
	}

	limit := c.Limit
	if limit <= 0 || limit > len(hands) {
		limit = len(hands)
	}
	for i := range limit {
		printHand(os.Stdout, i+1, hands[i])
	}
	return nil
}

func printHand(w io.Writer, n int, hand phh.HandHistory) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Hand %d (%s)", n, hand.HandID)))
	players := hand.Players
	if len(players) < 2 {
		players = []string{"p1", "p2"}
	}
	for i, name := range players {
		line := fmt.Sprintf("  %-8s ante %d, stack %d", name, at(hand.Antes, i), at(hand.StartingStacks, i))
		if len(hand.FinishingStacks) > i {
			line += fmt.Sprintf(" -> %d", hand.FinishingStacks[i])
		}
		fmt.Fprintln(w, line)
	}
	for _, action := range hand.Actions {
		fmt.Fprintf(w, "    %s\n", describeAction(action, players))
	}
	fmt.Fprintln(w)
}

// describeAction expands a PHH action line ("p1 cbr 100") into prose
func describeAction(action string, players []string) string {
	fields := strings.Fields(action)
	if len(fields) < 2 {
		return action
	}
	actor := fields[0]
	for i, name := range players {
		if actor == fmt.Sprintf("p%d", i+1) {
			actor = name
		}
	}

	switch {
	case fields[0] == "d" && fields[1] == "db" && len(fields) > 2:
		return "board " + fields[2]
	case fields[0] == "d" && fields[1] == "dh" && len(fields) > 3:
		return describeAction(fields[2]+" dh "+fields[3], players)
	case fields[1] == "dh" && len(fields) > 2:
		return actor + " holds " + fields[2]
	case fields[1] == "f":
		return actor + " folds"
	case fields[1] == "cc":
		return actor + " checks/calls"
	case fields[1] == "cbr" && len(fields) > 2:
		return actor + " raises to " + fields[2]
	case fields[1] == "sm" && len(fields) > 2:
		return actor + " shows " + fields[2]
	default:
		return action
	}
}

func at(values []int, i int) int {
	if i < len(values) {
		return values[i]
	}
	return 0
}
