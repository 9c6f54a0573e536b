package game

import (
	"fmt"

	"github.com/lox/headsup/poker"
)

// Result describes how a round ended and is the input to Settle
type Result struct {
	Folded bool
	Folder Participant
	Hands  [2]poker.HandResult // indexed by Participant, showdown only
}

// FoldResult is the result of folder giving up the round
func FoldResult(folder Participant) Result {
	return Result{Folded: true, Folder: folder}
}

// ShowdownResult is the result of comparing both evaluated hands
func ShowdownResult(player, opponent poker.HandResult) Result {
	return Result{Hands: [2]poker.HandResult{player, opponent}}
}

// Outcome is the immutable record of a settled round
type Outcome struct {
	Winner  Participant // meaningless when Tie is set
	Tie     bool
	Folded  bool
	Reason  string // category name of the deciding hand, or "fold"
	Hands   [2]poker.HandResult
	Pot     int    // pot that was distributed
	Awarded [2]int // chips each participant received
	Chips   [2]int // stacks after settlement
	Message string
}

// WinnerLabel returns "player", "opponent" or "tie"
func (o Outcome) WinnerLabel() string {
	if o.Tie {
		return "tie"
	}
	return o.Winner.String()
}

// Settle distributes pot into chips according to r.
//
// A fold awards the whole pot to the other participant. At showdown the higher
// category wins; equal categories fall back to the High Card tie-break and any
// remaining tie splits the pot, with an odd chip going to the player.
func Settle(pot int, chips [2]int, r Result) Outcome {
	out := Outcome{Pot: pot, Folded: r.Folded}

	if r.Folded {
		out.Winner = r.Folder.Other()
		out.Reason = "fold"
		out.Awarded[out.Winner] = pot
		out.Message = fmt.Sprintf("%s wins by fold", participantTitle(out.Winner))
	} else {
		out.Hands = r.Hands
		switch poker.CompareHands(r.Hands[Player], r.Hands[Opponent]) {
		case 1:
			out.Winner = Player
			out.Awarded[Player] = pot
			out.Reason = r.Hands[Player].Type.String()
			out.Message = fmt.Sprintf("You win with %s", out.Reason)
		case -1:
			out.Winner = Opponent
			out.Awarded[Opponent] = pot
			out.Reason = r.Hands[Opponent].Type.String()
			out.Message = fmt.Sprintf("Opponent wins with %s", out.Reason)
		default:
			out.Tie = true
			half := pot / 2
			out.Awarded[Opponent] = half
			out.Awarded[Player] = pot - half
			out.Reason = r.Hands[Player].Type.String()
			out.Message = fmt.Sprintf("Split pot, both hold %s", out.Reason)
		}
	}

	out.Chips = [2]int{
		chips[Player] + out.Awarded[Player],
		chips[Opponent] + out.Awarded[Opponent],
	}
	return out
}

func participantTitle(p Participant) string {
	if p == Player {
		return "Player"
	}
	return "Opponent"
}
