package history

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/bot"
	"github.com/lox/adna/internal/deck"
	"github.com/lox/adna/internal/game"
	"github.com/lox/adna/internal/randutil"
)

var (
	// ErrNotReplayable is returned for a record with a human seat, whose
	// decisions cannot be reproduced
	ErrNotReplayable = errors.New("history: record has a human seat")
	ErrMismatch      = errors.New("history: replay does not match record")
)

// Replay plays the recorded game again from its seed with the recorded
// policies and returns the new record
func Replay(rec *Record, logger *log.Logger) (*Record, error) {
	if rec == nil {
		return nil, ErrNilRecord
	}
	if len(rec.Players) != game.NumSeats || len(rec.Policies) != game.NumSeats {
		return nil, fmt.Errorf("history: record needs %d players and policies", game.NumSeats)
	}

	var policies [game.NumSeats]string
	seats := make([]game.Seat, game.NumSeats)
	for i, policy := range rec.Policies {
		if policy == bot.PolicyHuman {
			return nil, fmt.Errorf("%w: seat %s", ErrNotReplayable, rec.Players[i])
		}
		agent, err := bot.New(policy, logger)
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", rec.Players[i], err)
		}
		policies[i] = policy
		seats[i] = game.Seat{Name: rec.Players[i], Agent: agent}
	}

	recorder := NewRecorder(RecorderConfig{GameID: rec.Game, Policies: policies, MaxTurns: rec.MaxTurns})
	bus := game.NewEventBus()
	bus.Subscribe(recorder)

	engine, err := game.NewEngine(deck.New(randutil.New(rec.Seed)), seats, game.Options{
		Logger:   logger,
		EventBus: bus,
		MaxTurns: rec.MaxTurns,
		Seed:     rec.Seed,
	})
	if err != nil {
		return nil, err
	}
	if _, err := engine.Run(); err != nil {
		return nil, err
	}

	replayed, _ := recorder.Record()
	return replayed, nil
}

// Verify replays rec and reports the first action that differs
func Verify(rec *Record, logger *log.Logger) error {
	replayed, err := Replay(rec, logger)
	if err != nil {
		return err
	}

	if i := firstDifference(rec.Actions, replayed.Actions); i >= 0 {
		return fmt.Errorf("%w: action %d is %q, replay has %q", ErrMismatch, i+1, at(rec.Actions, i), at(replayed.Actions, i))
	}
	if rec.Reason != replayed.Reason || rec.Winner != replayed.Winner || rec.Turns != replayed.Turns {
		return fmt.Errorf("%w: recorded %s %s after %d turns, replay %s %s after %d turns", ErrMismatch,
			rec.Reason, rec.Winner, rec.Turns, replayed.Reason, replayed.Winner, replayed.Turns)
	}
	return nil
}

func firstDifference(a, b []string) int {
	if slices.Equal(a, b) {
		return -1
	}
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return i
		}
	}
	return min(len(a), len(b))
}

func at(actions []string, i int) string {
	if i < len(actions) {
		return actions[i]
	}
	return "<none>"
}
