package bot

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/deck"
	"github.com/lox/adna/internal/game"
	"github.com/lox/adna/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func state(hand, top, history string) game.VisibleState {
	pile := card.MustParseCards(history + " " + top)
	return game.VisibleState{
		Hand:           card.MustParseCards(hand),
		Top:            card.MustParse(top),
		DiscardHistory: pile,
		Direction:      game.Clockwise,
	}
}

func decide(t *testing.T, agent game.Agent, s game.VisibleState) game.Decision {
	t.Helper()
	d, err := agent.RequestDecision(0, s)
	require.NoError(t, err)
	require.NotEmpty(t, d.Reasoning)
	return d
}

func TestAggressive(t *testing.T) {
	tests := []struct {
		name    string
		hand    string
		top     string
		history string
		want    game.Decision
	}{
		{"stacks on a matching action", "3v Sb +2p", "+2v", "", game.Play(2, "")},
		{"take four before take two", "+2o 3o +4o", "5o", "", game.Play(2, "")},
		{"take two before skip", "So 3o +2o", "5o", "", game.Play(2, "")},
		{"skip or reverse in hand order", "3o Ro So", "5o", "", game.Play(1, "")},
		{"rarest suit on the pile", "5b 5p 5v", "5o", "1b 2b 3p 4v 4v", game.Play(1, "")},
		{"ties keep hand order", "5b 5p 1v", "5o", "1v", game.Play(0, "")},
		{"draws without a legal card", "1b 2b", "5o", "", game.Draw("")},
	}

	agent := NewAggressive(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decide(t, agent, state(tt.hand, tt.top, tt.history))
			assert.Equal(t, tt.want.Type, d.Type)
			if d.Type != game.DrawCard {
				assert.Equal(t, tt.want.Index, d.Index)
			}
		})
	}
}

func TestConservative(t *testing.T) {
	tests := []struct {
		name string
		hand string
		top  string
		want game.Decision
	}{
		{"defends on a matching action", "So 3v Sb", "Sv", game.Play(0, "")},
		{"numeric in most held suit", "5b 2o +2o 5p 3o", "5v", game.Play(0, "")},
		{"numeric before actions", "+4o So 3o", "5o", game.Play(2, "")},
		{"prefers own suit", "7p 3o +2o 1o", "7o", game.Play(1, "")},
		{"skip before take", "+4o +2o Ro", "5o", game.Play(2, "")},
		{"take as a last resort", "+4o 1b 2b", "5o", game.Play(0, "")},
		{"draws without a legal card", "1b 2b", "5o", game.Draw("")},
	}

	agent := NewConservative(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decide(t, agent, state(tt.hand, tt.top, ""))
			assert.Equal(t, tt.want.Type, d.Type)
			if d.Type != game.DrawCard {
				assert.Equal(t, tt.want.Index, d.Index)
			}
		})
	}
}

func TestPoliciesHonourPendingStack(t *testing.T) {
	s := state("+4o 5o +2b", "+2o", "")
	s.Pending = game.Pending{Count: 2, Rank: card.TakeTwo}

	for _, agent := range []game.Agent{NewAggressive(nil), NewConservative(nil)} {
		d := decide(t, agent, s)
		assert.Equal(t, game.PlayCard, d.Type)
		assert.Equal(t, 2, d.Index)
	}

	s = state("+4o 5o", "+2o", "")
	s.Pending = game.Pending{Count: 2, Rank: card.TakeTwo}
	for _, agent := range []game.Agent{NewAggressive(nil), NewConservative(nil)} {
		assert.Equal(t, game.DrawCard, decide(t, agent, s).Type)
	}
}

func TestPoliciesDeclareOnSecondToLastCard(t *testing.T) {
	for _, agent := range []game.Agent{NewAggressive(nil), NewConservative(nil)} {
		d := decide(t, agent, state("3o 9b", "5o", ""))
		assert.Equal(t, game.PlayCardAndDeclareLow, d.Type)
		assert.Equal(t, 0, d.Index)

		d = decide(t, agent, state("3o", "5o", ""))
		assert.Equal(t, game.PlayCard, d.Type)
	}
}

// A single Take 2 against a Take 2 with nothing pending is played and opens
// a stack of two.
func TestAggressiveOpensStackOnMatchingTakeTwo(t *testing.T) {
	s := state("+2p", "+2v", "")
	d := decide(t, NewAggressive(nil), s)
	require.Equal(t, game.PlayCard, d.Type)
	require.Equal(t, 0, d.Index)
	assert.Equal(t, game.Pending{Count: 2, Rank: card.TakeTwo}, s.Pending.Add(s.Hand[d.Index].Rank))
}

func TestNew(t *testing.T) {
	a, err := New(PolicyAggressive, nil)
	require.NoError(t, err)
	assert.IsType(t, &Aggressive{}, a)

	c, err := New(PolicyConservative, nil)
	require.NoError(t, err)
	assert.IsType(t, &Conservative{}, c)

	_, err = New(PolicyHuman, nil)
	assert.ErrorIs(t, err, ErrInteractive)

	_, err = New("random", nil)
	assert.ErrorIs(t, err, ErrUnknownPolicy)

	assert.True(t, IsPolicy("human"))
	assert.False(t, IsPolicy("maniac"))
}

func TestBotsOnlyGamesFinish(t *testing.T) {
	logger := log.New(io.Discard)
	for seed := int64(1); seed <= 20; seed++ {
		seats := []game.Seat{
			{Name: "A", Agent: NewAggressive(logger)},
			{Name: "B", Agent: NewConservative(logger)},
			{Name: "C", Agent: NewAggressive(logger)},
			{Name: "D", Agent: NewConservative(logger)},
		}
		e, err := game.NewEngine(deck.New(randutil.New(seed)), seats, game.Options{MaxTurns: 5000})
		require.NoError(t, err)

		result, err := e.Run()
		require.NoError(t, err, "seed %d", seed)
		assert.Equal(t, deck.Size, e.CardCount(), "seed %d", seed)
		if result.HasWinner() {
			assert.Zero(t, e.Player(result.Winner).HandSize())
		}
	}
}

func TestPacedWaitsForClock(t *testing.T) {
	mock := quartz.NewMock(t)
	inner := NewAggressive(nil)
	paced := NewPaced(inner, mock, 600*time.Millisecond)

	decided := make(chan game.Decision, 1)
	go func() {
		d, err := paced.RequestDecision(0, state("3o", "5o", ""))
		assert.NoError(t, err)
		decided <- d
	}()

	require.Eventually(t, func() bool {
		_, ok := mock.Peek()
		return ok
	}, time.Second, time.Millisecond)

	select {
	case <-decided:
		t.Fatal("decision returned before the delay elapsed")
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mock.Advance(600 * time.Millisecond).MustWait(ctx)

	select {
	case d := <-decided:
		assert.Equal(t, game.PlayCard, d.Type)
	case <-ctx.Done():
		t.Fatal("paced agent never decided")
	}
}

func TestPacedWithoutDelay(t *testing.T) {
	paced := NewPaced(NewConservative(nil), quartz.NewMock(t), 0)
	d, err := paced.RequestDecision(0, state("1b", "5o", ""))
	require.NoError(t, err)
	assert.Equal(t, game.DrawCard, d.Type)
}
