package history

import (
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/adna/internal/game"
)

// RecorderConfig configures a Recorder for one game
type RecorderConfig struct {
	GameID   string
	Policies [game.NumSeats]string
	MaxTurns int
	Clock    quartz.Clock // Nil means the real clock

	// OnComplete is called with the finished record from the goroutine
	// that published the end of the game
	OnComplete func(*Record)
}

// Recorder is an EventSubscriber that builds the record of a game as it is
// played
type Recorder struct {
	cfg   RecorderConfig
	clock quartz.Clock

	mu     sync.Mutex
	record *Record
	done   bool
}

// NewRecorder creates a recorder
func NewRecorder(cfg RecorderConfig) *Recorder {
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Recorder{cfg: cfg, clock: clock}
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	r.mu.Lock()

	if start, ok := event.(game.GameStartEvent); ok {
		r.begin(start)
		r.mu.Unlock()
		return
	}
	if r.record == nil || r.done {
		r.mu.Unlock()
		return
	}

	rec := r.record
	switch e := event.(type) {
	case game.CardPlayedEvent:
		rec.Actions = append(rec.Actions, FormatPlay(e.Seat, e.Card, e.DeclaredLow))
	case game.CardsDrawnEvent:
		rec.Actions = append(rec.Actions, FormatDraw(e.Seat, e.Reason, e.Drawn))
	case game.SeatSkippedEvent:
		rec.Actions = append(rec.Actions, FormatSkip(e.Seat))
	case game.DirectionChangedEvent:
		rec.Actions = append(rec.Actions, FormatReverse(e.Direction))
	case game.ReshuffleEvent:
		rec.Actions = append(rec.Actions, FormatReshuffle(e.Recycled))
	case game.GameEndEvent:
		rec.Reason = string(e.Result.Reason)
		rec.Turns = e.Result.Turns
		if e.Result.HasWinner() {
			rec.Winner = e.Result.WinnerName
		}
		r.done = true
	}

	finished := r.done
	r.mu.Unlock()

	if finished && r.cfg.OnComplete != nil {
		r.cfg.OnComplete(rec)
	}
}

func (r *Recorder) begin(e game.GameStartEvent) {
	s := e.State()
	now := r.clock.Now()

	rec := &Record{
		Variant:   Variant,
		Game:      r.cfg.GameID,
		Seed:      e.Seed,
		MaxTurns:  r.cfg.MaxTurns,
		Players:   make([]string, game.NumSeats),
		Policies:  make([]string, game.NumSeats),
		Start:     s.Top.Code(),
		Actions:   make([]string, 0, 64),
		Time:      now.UTC().Format(time.RFC3339),
		Timestamp: now,
	}
	for i, seat := range s.Seats {
		rec.Players[i] = seat.Name
		rec.Policies[i] = r.cfg.Policies[i]
		rec.Actions = append(rec.Actions, FormatDeal(i, seat.Hand))
	}

	r.record = rec
	r.done = false
}

// Record returns the record once the game has finished
func (r *Recorder) Record() (*Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.record, r.done
}
