package game

import (
	"fmt"

	"github.com/lox/adna/internal/card"
)

const (
	// NumSeats is the fixed size of the seat ring
	NumSeats = 4
	// HandSize is the number of cards dealt to each seat
	HandSize = 5
	// LowHandPenalty is drawn for a missed low-hand declaration
	LowHandPenalty = 2
)

var seatNames = [NumSeats]string{"A", "B", "C", "D"}

// SeatName returns the default name of a seat, or "?" when out of range
func SeatName(seat int) string {
	if seat < 0 || seat >= NumSeats {
		return "?"
	}
	return seatNames[seat]
}

// IsLegal reports whether candidate may be played on top. A play is legal
// when the suits match, or when both ranks are numeric and equal, or when
// both ranks are the same action kind.
func IsLegal(candidate, top card.Card) bool {
	if candidate.Suit == top.Suit {
		return true
	}

	switch {
	case candidate.Rank.IsNumeric() && top.Rank.IsNumeric():
		return candidate.Rank == top.Rank
	case candidate.Rank.IsAction() && top.Rank.IsAction():
		return candidate.Rank.Kind() == top.Rank.Kind()
	default:
		return false
	}
}

// CanContinue reports whether c escalates the pending stack p
func CanContinue(c card.Card, p Pending) bool {
	return p.Active() && c.Rank == p.Rank
}

// LegalIndexes returns the positions in hand that may be played on top
func LegalIndexes(hand []card.Card, top card.Card) []int {
	var idx []int
	for i, c := range hand {
		if IsLegal(c, top) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Direction is the sense in which the turn pointer moves around the ring
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Reversed returns the opposite direction
func (d Direction) Reversed() Direction { return -d }

func (d Direction) String() string {
	if d == CounterClockwise {
		return "counter-clockwise"
	}
	return "clockwise"
}

// Next returns the seat after seat in direction d. The result is always in
// [0, NumSeats).
func Next(seat int, d Direction) int {
	return ((seat+int(d))%NumSeats + NumSeats) % NumSeats
}

// Pending is the accumulated Take penalty owed by the next seat that cannot
// continue the stack. Count is zero exactly when Rank is the zero Rank.
type Pending struct {
	Count int
	Rank  card.Rank
}

// Active reports whether a penalty is owed
func (p Pending) Active() bool { return p.Count > 0 }

// Add stacks a Take card onto the pending penalty
func (p Pending) Add(r card.Rank) Pending {
	return Pending{Count: p.Count + r.Penalty(), Rank: r}
}

func (p Pending) String() string {
	if !p.Active() {
		return "none"
	}
	return fmt.Sprintf("%s x%d", p.Rank, p.Count)
}
