package game

import "github.com/lox/adna/internal/card"

// DecisionType is the kind of move a seat makes on its turn
type DecisionType int

const (
	PlayCard DecisionType = iota
	PlayCardAndDeclareLow
	DrawCard
)

func (t DecisionType) String() string {
	switch t {
	case PlayCard:
		return "play"
	case PlayCardAndDeclareLow:
		return "play+declare"
	case DrawCard:
		return "draw"
	default:
		return "unknown"
	}
}

// Decision represents a seat's move with reasoning
type Decision struct {
	Type      DecisionType
	Index     int    // Hand index of the card to play; ignored for DrawCard
	Reasoning string // Human-readable explanation
}

// Play returns a decision to play the card at index i
func Play(i int, reasoning string) Decision {
	return Decision{Type: PlayCard, Index: i, Reasoning: reasoning}
}

// PlayAndDeclare returns a decision to play the card at index i and declare
// a low hand
func PlayAndDeclare(i int, reasoning string) Decision {
	return Decision{Type: PlayCardAndDeclareLow, Index: i, Reasoning: reasoning}
}

// Draw returns a decision to draw
func Draw(reasoning string) Decision {
	return Decision{Type: DrawCard, Reasoning: reasoning}
}

// VisibleState is everything a seat may look at when deciding. Slices are
// copies; agents may keep or modify them freely.
type VisibleState struct {
	Seat           int
	Hand           []card.Card
	Top            card.Card
	DiscardHistory []card.Card // Bottom first; the last element is Top
	Pending        Pending
	Direction      Direction
	HandSizes      [NumSeats]int
	DrawPileSize   int
}

// Agent represents any entity (human or bot) that can decide for a seat.
// Agents receive a copy of the visible state and return a decision; the
// engine alone mutates game state.
type Agent interface {
	RequestDecision(seat int, state VisibleState) (Decision, error)
}

// AgentFunc adapts a function to the Agent interface
type AgentFunc func(seat int, state VisibleState) (Decision, error)

func (f AgentFunc) RequestDecision(seat int, state VisibleState) (Decision, error) {
	return f(seat, state)
}

// Rejecter is implemented by interactive agents that can be told their
// decision was unusable and asked again. Agents that do not implement it
// are treated as having violated the contract.
type Rejecter interface {
	Reject(err error)
}
