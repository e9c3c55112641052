package game

import (
	"testing"

	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/deck"
	"github.com/lox/adna/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstLegal plays the first card it is allowed to and declares whenever it
// can
var firstLegal = AgentFunc(func(_ int, s VisibleState) (Decision, error) {
	for i, c := range s.Hand {
		if s.Pending.Active() && !CanContinue(c, s.Pending) {
			continue
		}
		if !IsLegal(c, s.Top) {
			continue
		}
		if len(s.Hand) == 2 {
			return PlayAndDeclare(i, "first legal card"), nil
		}
		return Play(i, "first legal card"), nil
	}
	return Draw("nothing playable"), nil
})

func playSeeded(t *testing.T, seed int64, sub EventSubscriber) *Result {
	t.Helper()
	bus := NewEventBus()
	if sub != nil {
		bus.Subscribe(sub)
	}
	seats := []Seat{
		{Name: "A", Agent: firstLegal},
		{Name: "B", Agent: firstLegal},
		{Name: "C", Agent: firstLegal},
		{Name: "D", Agent: firstLegal},
	}
	e, err := NewEngine(deck.New(randutil.New(seed)), seats, Options{EventBus: bus, MaxTurns: 2000, Seed: seed})
	require.NoError(t, err)

	result, err := e.Run()
	require.NoError(t, err)
	return result
}

func TestInvariantsHoldThroughoutSeededGames(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		var violations []string
		check := SubscriberFunc(func(ev GameEvent) {
			s := ev.State()
			total := s.DrawPileSize + s.DiscardPileSize
			for _, seat := range s.Seats {
				total += seat.HandSize()
			}
			if total != deck.Size {
				violations = append(violations, "card count changed after "+ev.EventType().String())
			}
			if s.Pending.Active() != (s.Pending.Rank != card.Rank{}) {
				violations = append(violations, "pending count and rank disagree")
			}
			if s.Pending.Active() && (!s.Pending.Rank.IsTake() || s.Pending.Count%2 != 0) {
				violations = append(violations, "pending is not a take penalty")
			}
			if s.ActiveSeat < 0 || s.ActiveSeat >= NumSeats {
				violations = append(violations, "active seat out of range")
			}
			if s.Direction != Clockwise && s.Direction != CounterClockwise {
				violations = append(violations, "bad direction")
			}
		})

		result := playSeeded(t, seed, check)
		assert.Empty(t, violations, "seed %d", seed)
		assert.NotEmpty(t, result.Reason, "seed %d", seed)
		if result.HasWinner() {
			assert.Equal(t, ReasonWinner, result.Reason)
		}
	}
}

func TestSameSeedReplaysIdentically(t *testing.T) {
	record := func(seed int64) ([]Snapshot, *Result) {
		var snaps []Snapshot
		result := playSeeded(t, seed, SubscriberFunc(func(ev GameEvent) {
			snaps = append(snaps, ev.State())
		}))
		return snaps, result
	}

	first, r1 := record(42)
	second, r2 := record(42)
	assert.Equal(t, first, second)
	assert.Equal(t, r1, r2)

	other, _ := record(43)
	assert.NotEqual(t, first, other)
}
