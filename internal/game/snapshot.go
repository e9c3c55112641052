package game

import "github.com/lox/adna/internal/card"

// SeatSnapshot is the read-only state of one seat
type SeatSnapshot struct {
	Seat        int
	Name        string
	Hand        []card.Card
	DeclaredLow bool
}

// HandSize returns the number of cards held by the seat
func (s SeatSnapshot) HandSize() int { return len(s.Hand) }

// Snapshot is a read-only copy of the whole round. Display collaborators get
// one with every event; they decide which hands to reveal.
type Snapshot struct {
	Turn            int
	ActiveSeat      int
	Direction       Direction
	Pending         Pending
	Top             card.Card
	HasTop          bool
	DrawPileSize    int
	DiscardPileSize int
	Seats           [NumSeats]SeatSnapshot
	Done            bool
}

// EndReason explains how a game finished
type EndReason string

const (
	ReasonWinner        EndReason = "winner"
	ReasonDeckExhausted EndReason = "deck_exhausted"
	ReasonTurnLimit     EndReason = "turn_limit"
)

// Result summarises a finished game
type Result struct {
	Winner           int // -1 when nobody won
	WinnerName       string
	Reason           EndReason
	Turns            int
	Reshuffles       int
	LowHandPenalties int
	StacksServed     int
	IllegalPlays     int
}

// HasWinner reports whether a seat won the game
func (r Result) HasWinner() bool {
	return r.Reason == ReasonWinner && r.Winner >= 0
}
