package history

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/adna/internal/bot"
	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/deck"
	"github.com/lox/adna/internal/game"
	"github.com/lox/adna/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var botPolicies = [game.NumSeats]string{
	bot.PolicyAggressive, bot.PolicyConservative, bot.PolicyAggressive, bot.PolicyConservative,
}

// recordGame plays a bot-only game on seed and returns its record
func recordGame(t *testing.T, seed int64, clock quartz.Clock) *Record {
	t.Helper()

	var completed *Record
	recorder := NewRecorder(RecorderConfig{
		GameID:     "01jxtest0000000000000000aa",
		Policies:   botPolicies,
		MaxTurns:   3000,
		Clock:      clock,
		OnComplete: func(r *Record) { completed = r },
	})
	bus := game.NewEventBus()
	bus.Subscribe(recorder)

	seats := make([]game.Seat, game.NumSeats)
	for i, policy := range botPolicies {
		agent, err := bot.New(policy, nil)
		require.NoError(t, err)
		seats[i] = game.Seat{Name: game.SeatName(i), Agent: agent}
	}
	engine, err := game.NewEngine(deck.New(randutil.New(seed)), seats, game.Options{EventBus: bus, MaxTurns: 3000, Seed: seed})
	require.NoError(t, err)
	_, err = engine.Run()
	require.NoError(t, err)

	rec, done := recorder.Record()
	require.True(t, done)
	require.Same(t, rec, completed)
	return rec
}

func TestFormatActions(t *testing.T) {
	assert.Equal(t, "d p1 3o Sb +2v", FormatDeal(0, card.MustParseCards("3o Sb +2v")))
	assert.Equal(t, "p2 pl Rv", FormatPlay(1, card.MustParse("Rv"), false))
	assert.Equal(t, "p3 pl 7b !", FormatPlay(2, card.MustParse("7b"), true))
	assert.Equal(t, "p4 dr stack_penalty 1o 2o", FormatDraw(3, game.DrawReasonStackPenalty, card.MustParseCards("1o 2o")))
	assert.Equal(t, "p1 dr draw", FormatDraw(0, game.DrawReasonChoice, nil))
	assert.Equal(t, "p2 sk", FormatSkip(1))
	assert.Equal(t, "rv counter-clockwise", FormatReverse(game.CounterClockwise))
	assert.Equal(t, "rs 57", FormatReshuffle(57))
}

func TestRecorderCapturesGame(t *testing.T) {
	mock := quartz.NewMock(t)
	mock.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	rec := recordGame(t, 21, mock)

	assert.Equal(t, Variant, rec.Variant)
	assert.Equal(t, int64(21), rec.Seed)
	assert.Equal(t, []string{"A", "B", "C", "D"}, rec.Players)
	assert.Equal(t, botPolicies[:], rec.Policies)
	assert.Equal(t, "2025-06-01T12:00:00Z", rec.Time)
	assert.NotEmpty(t, rec.Start)
	assert.NotEmpty(t, rec.Reason)
	assert.Positive(t, rec.Turns)

	require.Greater(t, len(rec.Actions), game.NumSeats)
	for i := range game.NumSeats {
		assert.True(t, strings.HasPrefix(rec.Actions[i], "d p"), rec.Actions[i])
		assert.Len(t, strings.Fields(rec.Actions[i]), 2+game.HandSize)
	}
	if rec.Reason == string(game.ReasonWinner) {
		assert.NotEmpty(t, rec.Winner)
	}
}

func TestRecorderIgnoresEventsBeforeStart(t *testing.T) {
	recorder := NewRecorder(RecorderConfig{GameID: "x"})
	recorder.OnEvent(game.SeatSkippedEvent{Seat: 1})

	rec, done := recorder.Record()
	assert.Nil(t, rec)
	assert.False(t, done)
}

func TestEncodeDecode(t *testing.T) {
	rec := recordGame(t, 3, nil)

	data, err := EncodeToBytes(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `variant = "adna"`)

	decoded, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, rec.Actions, decoded.Actions)
	assert.Equal(t, rec.Seed, decoded.Seed)
	assert.Equal(t, rec.Winner, decoded.Winner)
	assert.Equal(t, rec.Timestamp.Unix(), decoded.Timestamp.Unix())

	assert.ErrorIs(t, Encode(io.Discard, nil), ErrNilRecord)

	_, err = Decode(strings.NewReader(`variant = "holdem"`))
	assert.ErrorContains(t, err, "unsupported variant")
}

func TestStoreSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "games")
	store, err := NewStore(dir, nil)
	require.NoError(t, err)

	rec := recordGame(t, 8, nil)
	path, err := store.Save(rec)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, rec.Game+Extension), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should remain")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Actions, loaded.Actions)

	// Saving again overwrites in place
	rec.Turns++
	_, err = store.Save(rec)
	require.NoError(t, err)
	loaded, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Turns, loaded.Turns)
}

func TestStoreRejectsIncompleteRecords(t *testing.T) {
	store, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = store.Save(nil)
	assert.ErrorIs(t, err, ErrNilRecord)
	_, err = store.Save(&Record{Variant: Variant})
	assert.ErrorContains(t, err, "no game ID")

	_, err = NewStore("", nil)
	assert.Error(t, err)
}

func TestWriteFileAtomicInvalidDir(t *testing.T) {
	err := writeFileAtomic("/nonexistent/dir/game.adna.toml", []byte("data"), 0o644)
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	logger := log.New(io.Discard)
	rec := recordGame(t, 13, nil)

	require.NoError(t, Verify(rec, logger))

	tampered := *rec
	tampered.Actions = append([]string(nil), rec.Actions...)
	tampered.Actions[len(tampered.Actions)-1] = "p1 pl 9v tampered"
	assert.ErrorIs(t, Verify(&tampered, logger), ErrMismatch)

	human := *rec
	human.Policies = []string{bot.PolicyHuman, "aggressive", "aggressive", "aggressive"}
	assert.ErrorIs(t, Verify(&human, logger), ErrNotReplayable)
}

func TestDescribe(t *testing.T) {
	players := []string{"A", "B", "C", "D"}
	tests := []struct {
		action string
		want   string
	}{
		{"d p1 3o Sb", "A is dealt 3 orange, Skip brown"},
		{"p2 pl +2v", "B plays Take 2 violet"},
		{"p3 pl 7b !", "C plays 7 brown and says Adná!"},
		{"p4 dr stack_penalty 1o 2o", "D draws 2 (stack_penalty): 1 orange, 2 orange"},
		{"p1 dr draw", "A draws nothing (draw)"},
		{"p2 sk", "B is skipped"},
		{"rv counter-clockwise", "Direction reversed, play now goes counter-clockwise"},
		{"rs 57", "Discard pile reshuffled into the deck (57 cards)"},
		{"p9 sk", "p9 is skipped"},
		{"zz", "zz"},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.action, players))
		})
	}
}
