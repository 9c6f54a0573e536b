package phh

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/lox/headsup/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeSession writes hands as a PHHS file: one numbered table per hand.
func EncodeSession(w io.Writer, hands []HandHistory) error {
	for i := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, &hands[i]); err != nil {
			return fmt.Errorf("phh: encoding hand %d: %w", i+1, err)
		}
	}
	return nil
}

// DecodeSession reads a PHHS file written by EncodeSession, in section order
func DecodeSession(r io.Reader) ([]HandHistory, error) {
	var sections map[string]HandHistory
	if _, err := toml.NewDecoder(r).Decode(&sections); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}

	keys := make([]int, 0, len(sections))
	for k := range sections {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("phh: section %q is not a hand number", k)
		}
		keys = append(keys, n)
	}
	sort.Ints(keys)

	hands := make([]HandHistory, 0, len(keys))
	for _, k := range keys {
		hands = append(hands, sections[strconv.Itoa(k)])
	}
	return hands, nil
}

// FormatAction converts a session action to a PHH action string. streetBet
// is the actor's total raised on the current street, including this action.
func FormatAction(p game.Participant, a game.Action, streetBet int) string {
	player := playerCode(p)
	switch a {
	case game.Fold:
		return player + " f"
	case game.Raise:
		return fmt.Sprintf("%s cbr %d", player, streetBet)
	default:
		return player + " cc"
	}
}

func playerCode(p game.Participant) string {
	return fmt.Sprintf("p%d", int(p)+1)
}
