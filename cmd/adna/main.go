package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/lox/adna/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command. Each one overrides the
// matching setting of the config file.
type Globals struct {
	Config   string `short:"c" default:"adna.hcl" env:"ADNA_CONFIG" help:"HCL table configuration file"`
	LogLevel string `env:"ADNA_LOG_LEVEL" help:"Log level: debug, info, warn or error"`
	LogFile  string `env:"ADNA_LOG_FILE" help:"File the game log is written to"`
	NoColor  bool   `env:"ADNA_NO_COLOR" help:"Disable coloured output"`
	Seed     int64  `env:"ADNA_SEED" help:"Deck seed, 0 for a fresh one"`

	HistoryDir string `env:"ADNA_HISTORY_DIR" help:"Directory game records are saved to"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play a game at the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play a batch of bot-only games and report the results"`
	History  HistoryCmd       `cmd:"" help:"Read and replay saved game records"`
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("adna"),
		kong.Description("Adná, a four-seat shedding card game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the config file and applies the global overrides. The caller
// applies its own overrides and then validates.
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.LogFile = g.LogFile
	}
	if g.NoColor {
		color := false
		cfg.Color = &color
	}
	if g.Seed != 0 {
		cfg.Seed = g.Seed
	}
	if g.HistoryDir != "" {
		cfg.HistoryDir = g.HistoryDir
	}
	return cfg, nil
}

// openLog creates the log file for a game. The terminal belongs to the
// players, so nothing is logged there.
func openLog(cfg *config.Config) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "adna",
		Level:           cfg.Level(),
	})
	return logger, f, nil
}
