package simulator

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/bot"
	"github.com/lox/adna/internal/game"
	"github.com/lox/adna/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	sim := New(Config{Games: 10, Seed: 12345})
	require.NotNil(t, sim)

	assert.Equal(t, 10, sim.config.Games)
	assert.Equal(t, int64(12345), sim.config.Seed)
	assert.Equal(t, DefaultMaxTurns, sim.config.MaxTurns)
	assert.Positive(t, sim.config.Workers)
	assert.Equal(t, DefaultPolicies(), sim.config.Policies)
}

func TestSimulator_Run(t *testing.T) {
	sim := New(Config{
		Games:   20,
		Seed:    7,
		Workers: 4,
		Logger:  log.New(io.Discard),
	})

	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, stats.Games)
	assert.Len(t, stats.Values, 20)
	assert.Equal(t, stats.Games, stats.Wins()+stats.NoWinner())
	assert.Positive(t, stats.Mean())
	assert.LessOrEqual(t, stats.Longest, DefaultMaxTurns)
}

func TestSimulator_SameSeedAnyWorkerCount(t *testing.T) {
	run := func(workers int) [game.NumSeats]int {
		stats, err := New(Config{Games: 30, Seed: 99, Workers: workers}).Run(context.Background())
		require.NoError(t, err)

		var wins [game.NumSeats]int
		for seat := range game.NumSeats {
			wins[seat] = stats.Seats[seat].Wins
		}
		return wins
	}

	serial := run(1)
	assert.Equal(t, serial, run(2))
	assert.Equal(t, serial, run(8))

	a, err := New(Config{Games: 30, Seed: 99, Workers: 1}).Run(context.Background())
	require.NoError(t, err)
	b, err := New(Config{Games: 30, Seed: 99, Workers: 6}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSimulator_RejectsHumanSeats(t *testing.T) {
	sim := New(Config{
		Games:    1,
		Policies: [game.NumSeats]string{bot.PolicyHuman, bot.PolicyAggressive, bot.PolicyHuman, bot.PolicyConservative},
	})

	_, err := sim.Run(context.Background())
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "seat A is human")
}

func TestSimulator_RejectsUnknownPolicy(t *testing.T) {
	sim := New(Config{
		Games:    1,
		Policies: [game.NumSeats]string{bot.PolicyAggressive, "reckless", bot.PolicyAggressive, bot.PolicyConservative},
	})

	_, err := sim.Run(context.Background())
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, bot.ErrUnknownPolicy)
}

func TestSimulator_RejectsEmptyBatch(t *testing.T) {
	_, err := New(Config{Games: 0}).Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSimulator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Games: 50, Workers: 2}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_SavesHistory(t *testing.T) {
	dir := t.TempDir()
	_, err := New(Config{Games: 5, Seed: 3, Workers: 2, HistoryDir: dir}).Run(context.Background())
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(dir, "*"+history.Extension))
	require.NoError(t, err)
	require.Len(t, files, 5)

	rec, err := history.Load(files[0])
	require.NoError(t, err)
	assert.NoError(t, history.Verify(rec, nil))
}

func TestSimulator_SkipsUnfinishedRecords(t *testing.T) {
	dir := t.TempDir()
	store, err := history.NewStore(dir, nil)
	require.NoError(t, err)
	sim := New(Config{Games: 1})
	sim.store = store

	err = sim.saveRecord(history.NewRecorder(history.RecorderConfig{GameID: "unfinished"}))
	assert.ErrorIs(t, err, history.ErrIncomplete)

	files, err := filepath.Glob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
