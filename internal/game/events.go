package game

import (
	"time"

	"github.com/lox/adna/internal/card"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for rule engine events
const (
	EventTypeGameStart        EventType = "game_start"
	EventTypeTurnStart        EventType = "turn_start"
	EventTypeCardPlayed       EventType = "card_played"
	EventTypeCardsDrawn       EventType = "cards_drawn"
	EventTypeDirectionChanged EventType = "direction_changed"
	EventTypeSeatSkipped      EventType = "seat_skipped"
	EventTypePenaltyStacked   EventType = "penalty_stacked"
	EventTypeReshuffle        EventType = "reshuffle"
	EventTypeGameEnd          EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game. Every event
// carries a snapshot taken right after the change it describes.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
	State() Snapshot
}

type baseEvent struct {
	snapshot  Snapshot
	timestamp time.Time
}

func newBase(s Snapshot) baseEvent {
	return baseEvent{snapshot: s, timestamp: time.Now()}
}

func (e baseEvent) Timestamp() time.Time { return e.timestamp }
func (e baseEvent) State() Snapshot      { return e.snapshot }

// GameStartEvent is published once the discard pile is turned and hands are dealt
type GameStartEvent struct {
	baseEvent
	Seed int64
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }

// TurnStartEvent is published before the active seat does anything
type TurnStartEvent struct {
	baseEvent
	Seat int
}

func (e TurnStartEvent) EventType() EventType { return EventTypeTurnStart }

// CardPlayedEvent is published when a card moves from a hand to the discard pile
type CardPlayedEvent struct {
	baseEvent
	Seat        int
	Card        card.Card
	DeclaredLow bool
	Reasoning   string
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }

// DrawReason explains why a seat drew cards
type DrawReason string

const (
	DrawReasonChoice       DrawReason = "draw"
	DrawReasonStackPenalty DrawReason = "stack_penalty"
	DrawReasonLowHand      DrawReason = "low_hand_penalty"
	DrawReasonIllegalPlay  DrawReason = "illegal_play"
	DrawReasonNoCall       DrawReason = "no_call_on_last_card"
)

// CardsDrawnEvent is published when a seat takes cards from the deck.
// Drawn may be shorter than Requested if the deck ran out.
type CardsDrawnEvent struct {
	baseEvent
	Seat      int
	Requested int
	Drawn     []card.Card
	Reason    DrawReason
	Reasoning string
}

func (e CardsDrawnEvent) EventType() EventType { return EventTypeCardsDrawn }

// DirectionChangedEvent is published when a Reverse is resolved
type DirectionChangedEvent struct {
	baseEvent
	Direction Direction
}

func (e DirectionChangedEvent) EventType() EventType { return EventTypeDirectionChanged }

// SeatSkippedEvent is published when a Skip costs a seat its turn
type SeatSkippedEvent struct {
	baseEvent
	Seat int
}

func (e SeatSkippedEvent) EventType() EventType { return EventTypeSeatSkipped }

// PenaltyStackedEvent is published when a Take card adds to the pending penalty
type PenaltyStackedEvent struct {
	baseEvent
	Pending Pending
}

func (e PenaltyStackedEvent) EventType() EventType { return EventTypePenaltyStacked }

// ReshuffleEvent is published when the discard pile is recycled into the draw pile
type ReshuffleEvent struct {
	baseEvent
	Recycled int
}

func (e ReshuffleEvent) EventType() EventType { return EventTypeReshuffle }

// GameEndEvent is published once when the game reaches its terminal state
type GameEndEvent struct {
	baseEvent
	Result Result
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to the EventSubscriber interface
type SubscriberFunc func(event GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Events are
// delivered synchronously in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
