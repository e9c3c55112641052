package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/bot"
	"github.com/lox/adna/internal/config"
	"github.com/lox/adna/internal/game"
	"github.com/lox/adna/internal/history"
	"github.com/lox/adna/internal/simulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adna.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
seed      = 7
log_level = "warn"
color     = true
`), 0o644))

	cfg, err := (&Globals{Config: path}).load()
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.ColorEnabled())

	cfg, err = (&Globals{Config: path, Seed: 99, LogLevel: "debug", NoColor: true, LogFile: "other.log"}).load()
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "other.log", cfg.LogFile)
	assert.False(t, cfg.ColorEnabled())
}

func TestGlobalsMissingConfigUsesDefaults(t *testing.T) {
	cfg, err := (&Globals{Config: filepath.Join(t.TempDir(), "missing.hcl")}).load()
	require.NoError(t, err)
	assert.Equal(t, config.Default().Policies(), cfg.Policies())
}

func TestPlayPlainQuitsOnClosedInput(t *testing.T) {
	cfg := config.Default()
	cfg.BotDelay = "0s"
	color := false
	cfg.Color = &color
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	err := playPlain(cfg, 42, log.New(io.Discard), strings.NewReader(""), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Game started with seed 42")
	assert.Contains(t, text, "Your hand:")
	assert.Contains(t, text, "Goodbye!")
}

func TestPlayPlainWithBotsOnly(t *testing.T) {
	cfg := config.Default()
	cfg.BotDelay = "0s"
	cfg.MaxTurns = 3000
	for i := range cfg.Seats {
		cfg.Seats[i].Policy = bot.PolicyConservative
	}
	color := false
	cfg.Color = &color
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	require.NoError(t, playPlain(cfg, 5, log.New(io.Discard), strings.NewReader(""), &out))

	text := out.String()
	assert.NotContains(t, text, "Your hand:")
	assert.True(t, strings.Contains(text, "wins after") || strings.Contains(text, "No winner"))
}

func TestSimulateRun(t *testing.T) {
	var out bytes.Buffer
	err := runSimulation(context.Background(), &out, simulator.Config{
		Games:    12,
		Seed:     11,
		Workers:  3,
		Policies: simulator.DefaultPolicies(),
		Logger:   log.New(io.Discard),
	}, false)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "12 games")
	assert.Contains(t, text, "aggressive")
	assert.Contains(t, text, "Seed 11")
}

func TestSimulateRejectsHumanSeat(t *testing.T) {
	policies := [game.NumSeats]string{bot.PolicyHuman, bot.PolicyAggressive, bot.PolicyAggressive, bot.PolicyAggressive}

	err := runSimulation(context.Background(), io.Discard, simulator.Config{Games: 1, Policies: policies}, false)
	assert.ErrorIs(t, err, simulator.ErrInvalidConfig)
}

func TestPlayPlainSavesRecord(t *testing.T) {
	cfg := config.Default()
	cfg.BotDelay = "0s"
	cfg.MaxTurns = 3000
	cfg.HistoryDir = t.TempDir()
	for i := range cfg.Seats {
		cfg.Seats[i].Policy = bot.PolicyAggressive
	}
	color := false
	cfg.Color = &color
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	require.NoError(t, playPlain(cfg, 17, log.New(io.Discard), strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "Game record saved to "+cfg.HistoryDir)

	files, err := filepath.Glob(filepath.Join(cfg.HistoryDir, "*"+history.Extension))
	require.NoError(t, err)
	require.Len(t, files, 1)

	rec, err := history.Load(files[0])
	require.NoError(t, err)
	require.NoError(t, history.Verify(rec, nil))

	out.Reset()
	require.NoError(t, showRecord(&out, rec, false))
	text := out.String()
	assert.Contains(t, text, "Game "+rec.Game)
	assert.Contains(t, text, "A is dealt")
	assert.Contains(t, text, "Top of the pile:")
}
