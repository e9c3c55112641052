package game

import (
	"errors"
	"fmt"
)

var (
	ErrSeatCount            = errors.New("a game needs exactly 4 seats")
	ErrNilAgent             = errors.New("seat has no agent")
	ErrGameOver             = errors.New("game is already over")
	ErrIllegalPlay          = errors.New("card does not match the discard top")
	ErrInvalidDecisionIndex = errors.New("decision index out of range")
	ErrCannotDeclareLow     = errors.New("low hand can only be declared when playing from exactly 2 cards")
	ErrUnknownDecision      = errors.New("unknown decision type")
	ErrPlayerQuit           = errors.New("player quit")
)

// InvalidDecisionError reports a decision that points outside the seat's hand
type InvalidDecisionError struct {
	Seat     int
	Index    int
	HandSize int
}

func (e *InvalidDecisionError) Error() string {
	return fmt.Sprintf("seat %d chose card %d with %d cards in hand", e.Seat, e.Index, e.HandSize)
}

func (e *InvalidDecisionError) Unwrap() error { return ErrInvalidDecisionIndex }
