package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/display"
	"github.com/lox/adna/internal/game"
	"github.com/lox/adna/internal/randutil"
	"github.com/lox/adna/internal/simulator"
)

type SimulateCmd struct {
	Games    int      `short:"n" default:"1000" help:"Number of games to simulate"`
	Workers  int      `short:"w" default:"0" help:"Games played in parallel, 0 for one per CPU"`
	Policies []string `default:"aggressive,conservative,aggressive,conservative" help:"Policy of each seat, in seat order"`
	MaxTurns int      `default:"5000" help:"Turn cap per game"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if len(c.Policies) != game.NumSeats {
		return fmt.Errorf("need %d policies, got %d", game.NumSeats, len(c.Policies))
	}
	var policies [game.NumSeats]string
	for i, p := range c.Policies {
		policies[i] = strings.TrimSpace(p)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.Level(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runSimulation(ctx, os.Stdout, simulator.Config{
		Games:      c.Games,
		Seed:       randutil.Resolve(cfg.Seed),
		Workers:    c.Workers,
		Policies:   policies,
		MaxTurns:   c.MaxTurns,
		Logger:     logger,
		HistoryDir: cfg.HistoryDir,
	}, cfg.ColorEnabled())
}

func runSimulation(ctx context.Context, out io.Writer, sim simulator.Config, color bool) error {
	start := time.Now()
	stats, err := simulator.New(sim).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(out, display.Summary(display.NewTheme(out, color), stats, sim.Policies))
	fmt.Fprintf(out, "Seed %d, finished in %s\n", sim.Seed, time.Since(start).Round(time.Millisecond))
	if sim.HistoryDir != "" {
		fmt.Fprintf(out, "Game records saved to %s\n", sim.HistoryDir)
	}
	return nil
}
