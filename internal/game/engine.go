package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/deck"
)

// Seat binds a player name to the agent that decides for it
type Seat struct {
	Name  string
	Agent Agent
}

// Options configure an Engine
type Options struct {
	Logger   *log.Logger
	EventBus EventBus
	MaxTurns int   // 0 means no limit
	Seed     int64 // Reported in GameStartEvent only; shuffling is owned by the deck
}

// Engine is the round controller. It owns the turn pointer, the direction
// and the pending penalty, and is the only thing that mutates the deck and
// the hands.
type Engine struct {
	deck    *deck.Deck
	players [NumSeats]*Player
	agents  [NumSeats]Agent

	active    int
	direction Direction
	pending   Pending
	turns     int

	started bool
	done    bool
	result  Result

	maxTurns int
	seed     int64
	logger   *log.Logger
	bus      EventBus
}

// NewEngine creates an engine for exactly NumSeats seats. Seat 0 acts first.
func NewEngine(d *deck.Deck, seats []Seat, opts Options) (*Engine, error) {
	if len(seats) != NumSeats {
		return nil, fmt.Errorf("%w: got %d", ErrSeatCount, len(seats))
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	bus := opts.EventBus
	if bus == nil {
		bus = NewEventBus()
	}

	e := &Engine{
		deck:      d,
		direction: Clockwise,
		maxTurns:  opts.MaxTurns,
		seed:      opts.Seed,
		logger:    logger.WithPrefix("engine"),
		bus:       bus,
		result:    Result{Winner: -1},
	}
	for i, s := range seats {
		if s.Agent == nil {
			return nil, fmt.Errorf("seat %d (%s): %w", i, s.Name, ErrNilAgent)
		}
		e.players[i] = NewPlayer(s.Name)
		e.agents[i] = s.Agent
	}
	return e, nil
}

// EventBus returns the bus events are published on
func (e *Engine) EventBus() EventBus {
	return e.bus
}

// Start turns over the discard pile and deals HandSize cards to each seat,
// one card at a time in seat order. Step calls it if needed.
func (e *Engine) Start() {
	if e.started {
		return
	}
	e.started = true

	top, err := e.deck.InitializeDiscard()
	if err != nil {
		e.end(ReasonDeckExhausted, -1)
		return
	}
	e.logger.Debug("Discard pile initialised", "top", top, "pile", e.deck.DiscardPileSize())

	for range HandSize {
		for seat, p := range e.players {
			c, err := e.deck.DrawOne()
			if err != nil {
				e.logger.Error("Deck ran out while dealing", "seat", seat)
				e.end(ReasonDeckExhausted, -1)
				return
			}
			p.take(c)
		}
	}

	e.logger.Info("Game started", "seed", e.seed, "top", top)
	e.bus.Publish(GameStartEvent{baseEvent: newBase(e.Snapshot()), Seed: e.seed})
}

// Run plays turns until the game ends and returns the result
func (e *Engine) Run() (*Result, error) {
	for {
		done, err := e.Step()
		if err != nil {
			return nil, err
		}
		if done {
			r := e.result
			return &r, nil
		}
	}
}

// Step plays one turn for the active seat. It returns true once the game
// has reached its terminal state.
func (e *Engine) Step() (bool, error) {
	if e.done {
		return true, ErrGameOver
	}
	if !e.started {
		e.Start()
		if e.done {
			return true, nil
		}
	}
	if e.maxTurns > 0 && e.turns >= e.maxTurns {
		e.logger.Warn("Turn limit reached", "turns", e.turns)
		e.end(ReasonTurnLimit, -1)
		return true, nil
	}

	e.turns++
	e.result.Turns = e.turns
	seat := e.active
	p := e.players[seat]
	e.bus.Publish(TurnStartEvent{baseEvent: newBase(e.Snapshot()), Seat: seat})

	if p.HandSize() == 1 && !p.DeclaredLow() {
		e.logger.Info("Low hand not declared", "player", p.Name)
		e.result.LowHandPenalties++
		if !e.drawCards(seat, LowHandPenalty, DrawReasonLowHand, "did not declare a low hand") {
			return true, nil
		}
		e.advance()
		return false, nil
	}

	if e.pending.Active() && !p.hasRank(e.pending.Rank) {
		if !e.serveStack(seat, "cannot continue the stack") {
			return true, nil
		}
		e.advance()
		return false, nil
	}

	decision, err := e.requestDecision(seat)
	if err != nil {
		return false, err
	}

	e.logger.Debug("Player decision",
		"player", p.Name,
		"decision", decision.Type,
		"index", decision.Index,
		"reasoning", decision.Reasoning)

	switch decision.Type {
	case DrawCard:
		if e.pending.Active() {
			if !e.serveStack(seat, decision.Reasoning) {
				return true, nil
			}
		} else if !e.drawCards(seat, 1, DrawReasonChoice, decision.Reasoning) {
			return true, nil
		}

	case PlayCard, PlayCardAndDeclareLow:
		if c := p.hand[decision.Index]; !e.playable(c) {
			if !e.rejectPlay(seat, c) {
				return true, nil
			}
			break
		}

		c := p.removeAt(decision.Index)
		e.deck.Discard(c)
		declared := decision.Type == PlayCardAndDeclareLow
		if declared {
			p.declareLow()
		}
		e.bus.Publish(CardPlayedEvent{
			baseEvent:   newBase(e.Snapshot()),
			Seat:        seat,
			Card:        c,
			DeclaredLow: declared,
			Reasoning:   decision.Reasoning,
		})

		e.resolveAction(c)

		if p.HandSize() == 0 && e.settleEmptyHand(seat) {
			return true, nil
		}

	default:
		// requestDecision only returns known types.
		return false, fmt.Errorf("seat %d: %w", seat, ErrUnknownDecision)
	}

	e.advance()
	return false, nil
}

// settleEmptyHand decides what happens to a seat that has just played its
// last card: a win if it declared a low hand, a penalty draw otherwise. It
// returns true if the game ended.
func (e *Engine) settleEmptyHand(seat int) bool {
	p := e.players[seat]
	if p.DeclaredLow() {
		e.end(ReasonWinner, seat)
		return true
	}

	e.logger.Info("Played last card without declaring", "player", p.Name)
	e.result.LowHandPenalties++
	return !e.drawCards(seat, LowHandPenalty, DrawReasonNoCall, "went out without declaring a low hand")
}

// requestDecision asks the seat's agent until it returns a decision the
// engine can apply. Agents that cannot be re-prompted fail on the first
// unusable decision.
func (e *Engine) requestDecision(seat int) (Decision, error) {
	p := e.players[seat]
	agent := e.agents[seat]

	for {
		d, err := agent.RequestDecision(seat, e.visibleState(seat))
		if err != nil {
			return Decision{}, fmt.Errorf("seat %d (%s): %w", seat, p.Name, err)
		}

		verr := validateDecision(seat, p, d)
		if verr == nil {
			return d, nil
		}

		if r, ok := agent.(Rejecter); ok {
			e.logger.Debug("Decision rejected", "player", p.Name, "error", verr)
			r.Reject(verr)
			continue
		}

		e.logger.Error("Agent produced an unusable decision", "player", p.Name, "error", verr)
		return Decision{}, verr
	}
}

func validateDecision(seat int, p *Player, d Decision) error {
	switch d.Type {
	case DrawCard:
		return nil
	case PlayCard, PlayCardAndDeclareLow:
		if d.Index < 0 || d.Index >= p.HandSize() {
			return &InvalidDecisionError{Seat: seat, Index: d.Index, HandSize: p.HandSize()}
		}
		if d.Type == PlayCardAndDeclareLow && p.HandSize() != 2 {
			return fmt.Errorf("seat %d has %d cards: %w", seat, p.HandSize(), ErrCannotDeclareLow)
		}
		return nil
	default:
		return fmt.Errorf("seat %d: %w", seat, ErrUnknownDecision)
	}
}

// playable reports whether c may be played now. While a penalty is pending
// only a card of the pending rank is accepted.
func (e *Engine) playable(c card.Card) bool {
	top, ok := e.deck.PeekTop()
	if !ok {
		return true
	}
	if e.pending.Active() {
		return CanContinue(c, e.pending) && IsLegal(c, top)
	}
	return IsLegal(c, top)
}

// rejectPlay turns an illegal play into a forced draw: the whole pending
// penalty if one is owed, one card otherwise.
func (e *Engine) rejectPlay(seat int, c card.Card) bool {
	e.result.IllegalPlays++
	e.logger.Info("Illegal play", "player", e.players[seat].Name, "card", c, "error", ErrIllegalPlay)

	reasoning := fmt.Sprintf("%s cannot be played", c)
	if e.pending.Active() {
		n := e.pending.Count
		e.pending = Pending{}
		e.result.StacksServed++
		return e.drawCards(seat, n, DrawReasonIllegalPlay, reasoning)
	}
	return e.drawCards(seat, 1, DrawReasonIllegalPlay, reasoning)
}

// serveStack makes seat draw the pending penalty and clears it
func (e *Engine) serveStack(seat int, reasoning string) bool {
	n := e.pending.Count
	e.pending = Pending{}
	e.result.StacksServed++
	e.logger.Debug("Serving stacked penalty", "player", e.players[seat].Name, "cards", n)
	return e.drawCards(seat, n, DrawReasonStackPenalty, reasoning)
}

func (e *Engine) resolveAction(c card.Card) {
	switch c.Rank.Kind() {
	case card.KindReverse:
		e.direction = e.direction.Reversed()
		e.logger.Debug("Direction reversed", "direction", e.direction)
		e.bus.Publish(DirectionChangedEvent{baseEvent: newBase(e.Snapshot()), Direction: e.direction})

	case card.KindSkip:
		e.active = Next(e.active, e.direction)
		e.logger.Debug("Seat skipped", "player", e.players[e.active].Name)
		e.bus.Publish(SeatSkippedEvent{baseEvent: newBase(e.Snapshot()), Seat: e.active})

	case card.KindTakeTwo, card.KindTakeFour:
		e.pending = e.pending.Add(c.Rank)
		e.logger.Debug("Penalty stacked", "pending", e.pending)
		e.bus.Publish(PenaltyStackedEvent{baseEvent: newBase(e.Snapshot()), Pending: e.pending})

	case card.KindNumeric:
	}
}

// drawCards moves up to n cards from the deck to seat. It returns false if
// the deck ran out, in which case the game has ended with no winner.
func (e *Engine) drawCards(seat, n int, reason DrawReason, reasoning string) bool {
	p := e.players[seat]
	drawn := make([]card.Card, 0, n)
	exhausted := false

	for range n {
		before := e.deck.Reshuffles()
		recyclable := e.deck.DiscardPileSize() - 1

		c, err := e.deck.DrawOne()
		if err != nil {
			if !errors.Is(err, deck.ErrExhausted) {
				e.logger.Error("Unexpected deck error", "error", err)
			}
			exhausted = true
			break
		}

		if e.deck.Reshuffles() > before {
			e.result.Reshuffles++
			e.logger.Info("Discard pile reshuffled", "cards", recyclable)
			e.bus.Publish(ReshuffleEvent{baseEvent: newBase(e.Snapshot()), Recycled: recyclable})
		}
		drawn = append(drawn, c)
	}

	p.take(drawn...)
	e.logger.Debug("Cards drawn", "player", p.Name, "requested", n, "drawn", len(drawn), "reason", reason)
	e.bus.Publish(CardsDrawnEvent{
		baseEvent: newBase(e.Snapshot()),
		Seat:      seat,
		Requested: n,
		Drawn:     drawn,
		Reason:    reason,
		Reasoning: reasoning,
	})

	if exhausted {
		e.logger.Info("No more cards to draw", "player", p.Name)
		e.end(ReasonDeckExhausted, -1)
		return false
	}
	return true
}

func (e *Engine) advance() {
	e.active = Next(e.active, e.direction)
}

func (e *Engine) end(reason EndReason, winner int) {
	e.done = true
	e.result.Reason = reason
	e.result.Winner = winner
	if winner >= 0 {
		e.result.WinnerName = e.players[winner].Name
		e.logger.Info("Game won", "winner", e.result.WinnerName, "turns", e.turns)
	} else {
		e.logger.Info("Game over with no winner", "reason", reason, "turns", e.turns)
	}
	e.bus.Publish(GameEndEvent{baseEvent: newBase(e.Snapshot()), Result: e.result})
}

// Done reports whether the game has ended
func (e *Engine) Done() bool {
	return e.done
}

// Result returns the result so far; it is final once Done reports true
func (e *Engine) Result() Result {
	return e.result
}

// ActiveSeat returns the seat whose turn is next
func (e *Engine) ActiveSeat() int {
	return e.active
}

// Direction returns the current direction of play
func (e *Engine) Direction() Direction {
	return e.direction
}

// Pending returns the penalty owed by the next seat that cannot stack
func (e *Engine) Pending() Pending {
	return e.pending
}

// Player returns the state of seat
func (e *Engine) Player(seat int) *Player {
	return e.players[seat]
}

// CardCount returns the number of cards across the deck and every hand.
// It is deck.Size for the whole life of a game.
func (e *Engine) CardCount() int {
	n := e.deck.Len()
	for _, p := range e.players {
		n += p.HandSize()
	}
	return n
}

// Snapshot returns a read-only copy of the round
func (e *Engine) Snapshot() Snapshot {
	top, hasTop := e.deck.PeekTop()
	s := Snapshot{
		Turn:            e.turns,
		ActiveSeat:      e.active,
		Direction:       e.direction,
		Pending:         e.pending,
		Top:             top,
		HasTop:          hasTop,
		DrawPileSize:    e.deck.DrawPileSize(),
		DiscardPileSize: e.deck.DiscardPileSize(),
		Done:            e.done,
	}
	for i, p := range e.players {
		s.Seats[i] = SeatSnapshot{
			Seat:        i,
			Name:        p.Name,
			Hand:        p.Hand(),
			DeclaredLow: p.DeclaredLow(),
		}
	}
	return s
}

func (e *Engine) visibleState(seat int) VisibleState {
	top, _ := e.deck.PeekTop()
	vs := VisibleState{
		Seat:           seat,
		Hand:           e.players[seat].Hand(),
		Top:            top,
		DiscardHistory: e.deck.DiscardPile(),
		Pending:        e.pending,
		Direction:      e.direction,
		DrawPileSize:   e.deck.DrawPileSize(),
	}
	for i, p := range e.players {
		vs.HandSizes[i] = p.HandSize()
	}
	return vs
}
