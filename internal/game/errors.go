package game

import "errors"

var (
	// ErrInvalidTransition is returned when an action is attempted out of turn
	// or in a phase that does not allow it. State is left untouched.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInsufficientChips is returned when a raise exceeds the acting stack.
	ErrInsufficientChips = errors.New("insufficient chips")
)
