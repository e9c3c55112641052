package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/bot"
	"github.com/lox/adna/internal/config"
	"github.com/lox/adna/internal/deck"
	"github.com/lox/adna/internal/display"
	"github.com/lox/adna/internal/game"
	"github.com/lox/adna/internal/gameid"
	"github.com/lox/adna/internal/history"
	"github.com/lox/adna/internal/randutil"
	"github.com/lox/adna/internal/tui"
)

type PlayCmd struct {
	Plain         bool   `help:"Prompt line by line instead of opening the full-screen table"`
	BotDelay      string `env:"ADNA_BOT_DELAY" help:"Pause before each automated decision, e.g. 600ms"`
	ShowReasoning bool   `help:"Show why automated seats chose their moves"`
	MaxTurns      int    `help:"End the game without a winner after this many turns, 0 for no cap"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.BotDelay != "" {
		cfg.BotDelay = c.BotDelay
	}
	if c.ShowReasoning {
		cfg.ShowReasoning = true
	}
	if c.MaxTurns > 0 {
		cfg.MaxTurns = c.MaxTurns
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	seed := randutil.Resolve(cfg.Seed)
	logger.Info("Starting game", "seed", seed, "policies", cfg.Policies(), "plain", c.Plain)

	if c.Plain {
		return playPlain(cfg, seed, logger, os.Stdin, os.Stdout)
	}
	return playTUI(cfg, seed, logger)
}

// newTable seats an agent per configured seat. Automated seats are paced
// so a person can follow them; human seats come from human.
func newTable(cfg *config.Config, seed int64, bus game.EventBus, logger *log.Logger, human func(name string) game.Agent) (*game.Engine, error) {
	seats := make([]game.Seat, 0, len(cfg.Seats))
	for _, sc := range cfg.Seats {
		var agent game.Agent
		if sc.Policy == bot.PolicyHuman {
			agent = human(sc.Name)
		} else {
			b, err := bot.New(sc.Policy, logger)
			if err != nil {
				return nil, fmt.Errorf("seat %s: %w", sc.Name, err)
			}
			agent = bot.NewPaced(b, nil, cfg.Delay())
		}
		seats = append(seats, game.Seat{Name: sc.Name, Agent: agent})
	}

	return game.NewEngine(deck.New(randutil.New(seed)), seats, game.Options{
		Logger:   logger,
		EventBus: bus,
		MaxTurns: cfg.MaxTurns,
		Seed:     seed,
	})
}

// record subscribes a recorder that saves the game once it ends. It returns
// the path the record is saved to, or "" when recording is off.
func record(cfg *config.Config, bus game.EventBus, logger *log.Logger) (string, error) {
	if cfg.HistoryDir == "" {
		return "", nil
	}
	store, err := history.NewStore(cfg.HistoryDir, logger)
	if err != nil {
		return "", err
	}

	id := gameid.Generate()
	logger.Info("Recording game", "game", id)
	bus.Subscribe(history.NewRecorder(history.RecorderConfig{
		GameID:   id,
		Policies: cfg.Policies(),
		MaxTurns: cfg.MaxTurns,
		OnComplete: func(rec *history.Record) {
			if _, err := store.Save(rec); err != nil {
				logger.Error("Failed to save game record", "game", id, "error", err)
			}
		},
	}))
	return store.Path(id), nil
}

func playPlain(cfg *config.Config, seed int64, logger *log.Logger, in io.Reader, out io.Writer) error {
	console := display.NewConsole(out, display.Options{
		Color:         cfg.ColorEnabled(),
		ShowReasoning: cfg.ShowReasoning,
		Humans:        cfg.Humans(),
	})
	bus := game.NewEventBus()
	bus.Subscribe(console)
	recordPath, err := record(cfg, bus, logger)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	engine, err := newTable(cfg, seed, bus, logger, func(name string) game.Agent {
		return tui.NewLineAgent(name, scanner, out, console.Theme(), logger)
	})
	if err != nil {
		return err
	}

	if _, err := engine.Run(); err != nil {
		if errors.Is(err, game.ErrPlayerQuit) {
			logger.Info("Player quit", "error", err)
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		return err
	}
	if recordPath != "" {
		fmt.Fprintf(out, "Game record saved to %s\n", recordPath)
	}
	return nil
}

func playTUI(cfg *config.Config, seed int64, logger *log.Logger) error {
	model := tui.NewTUIModel(logger, tui.Options{
		Color:         cfg.ColorEnabled(),
		ShowReasoning: cfg.ShowReasoning,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())

	bus := game.NewEventBus()
	bus.Subscribe(tui.NewBridge(program))
	recordPath, err := record(cfg, bus, logger)
	if err != nil {
		return err
	}

	engine, err := newTable(cfg, seed, bus, logger, func(name string) game.Agent {
		return tui.NewTUIAgent(name, model, program, logger)
	})
	if err != nil {
		return err
	}

	type outcome struct {
		result *game.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := engine.Run()
		done <- outcome{result, err}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	select {
	case o := <-done:
		if o.err != nil {
			if errors.Is(o.err, game.ErrPlayerQuit) {
				logger.Info("Player quit", "error", o.err)
				return nil
			}
			return o.err
		}
		formatter := display.NewEventFormatter(display.NewTheme(os.Stdout, cfg.ColorEnabled()), display.FormattingOptions{})
		fmt.Println(formatter.FormatResult(*o.result))
		if recordPath != "" {
			fmt.Printf("Game record saved to %s\n", recordPath)
		}
	default:
		// The engine is parked in a paced bot turn or a prompt that will
		// never be answered; the process exits underneath it
		logger.Info("Left before the game finished")
	}
	return nil
}
