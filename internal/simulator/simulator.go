// Package simulator plays batches of bot-only games and aggregates the
// results. Games run in parallel but are aggregated in order, so a batch is
// reproducible from its seed whatever the worker count.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/bot"
	"github.com/lox/adna/internal/deck"
	"github.com/lox/adna/internal/game"
	"github.com/lox/adna/internal/gameid"
	"github.com/lox/adna/internal/history"
	"github.com/lox/adna/internal/randutil"
	"github.com/lox/adna/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxTurns caps a simulated game that would otherwise never end
const DefaultMaxTurns = 5000

// ErrInvalidConfig is returned for a batch that cannot be run
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Seed     int64
	Workers  int // 0 means one per CPU
	Policies [game.NumSeats]string // Zero value means DefaultPolicies
	MaxTurns int // 0 means DefaultMaxTurns
	Logger   *log.Logger

	// HistoryDir, when set, saves the record of every game there
	HistoryDir string
}

// DefaultPolicies seats the two bot styles alternately
func DefaultPolicies() [game.NumSeats]string {
	return [game.NumSeats]string{
		bot.PolicyAggressive,
		bot.PolicyConservative,
		bot.PolicyAggressive,
		bot.PolicyConservative,
	}
}

// Simulator runs Adná game simulations
type Simulator struct {
	config Config
	logger *log.Logger
	store  *history.Store
	ids    *gameid.Generator
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if config.Policies == ([game.NumSeats]string{}) {
		config.Policies = DefaultPolicies()
	}
	if config.MaxTurns <= 0 {
		config.MaxTurns = DefaultMaxTurns
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

func (s *Simulator) validate() error {
	if s.config.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, s.config.Games)
	}
	for seat, policy := range s.config.Policies {
		if policy == bot.PolicyHuman {
			return fmt.Errorf("%w: seat %s is human, simulations are bot-only", ErrInvalidConfig, game.SeatName(seat))
		}
		if !bot.IsPolicy(policy) {
			return fmt.Errorf("%w: seat %s: %w %q", ErrInvalidConfig, game.SeatName(seat), bot.ErrUnknownPolicy, policy)
		}
	}
	return nil
}

// Run plays every game of the batch and returns the aggregated statistics
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	s.logger.Info("Starting simulation",
		"games", s.config.Games,
		"seed", s.config.Seed,
		"workers", s.config.Workers,
		"policies", s.config.Policies)

	if s.config.HistoryDir != "" {
		store, err := history.NewStore(s.config.HistoryDir, s.logger)
		if err != nil {
			return nil, err
		}
		s.store = store
		s.ids = gameid.NewGenerator(nil, nil)
	}

	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range s.config.Games {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.playGame(i)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, result := range results {
		stats.Add(result)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete", "games", stats.Games, "mean_turns", stats.Mean())
	return stats, nil
}

// playGame plays game i of the batch on its own derived seed
func (s *Simulator) playGame(i int) (statistics.GameResult, error) {
	seed := randutil.Derive(s.config.Seed, i)

	seats := make([]game.Seat, game.NumSeats)
	for seat, policy := range s.config.Policies {
		agent, err := bot.New(policy, s.logger)
		if err != nil {
			return statistics.GameResult{}, fmt.Errorf("seat %s: %w", game.SeatName(seat), err)
		}
		seats[seat] = game.Seat{Name: game.SeatName(seat), Agent: agent}
	}

	bus := game.NewEventBus()
	var recorder *history.Recorder
	if s.store != nil {
		id, err := s.ids.Next()
		if err != nil {
			return statistics.GameResult{}, err
		}
		recorder = history.NewRecorder(history.RecorderConfig{
			GameID:   id,
			Policies: s.config.Policies,
			MaxTurns: s.config.MaxTurns,
		})
		bus.Subscribe(recorder)
	}

	engine, err := game.NewEngine(deck.New(randutil.New(seed)), seats, game.Options{
		Logger:   s.logger,
		EventBus: bus,
		MaxTurns: s.config.MaxTurns,
		Seed:     seed,
	})
	if err != nil {
		return statistics.GameResult{}, err
	}

	result, err := engine.Run()
	if err != nil {
		return statistics.GameResult{}, fmt.Errorf("game %d (seed %d): %w", i, seed, err)
	}

	if recorder != nil {
		if err := s.saveRecord(recorder); err != nil {
			return statistics.GameResult{}, fmt.Errorf("game %d: %w", i, err)
		}
	}

	s.logger.Debug("Game finished", "game", i, "seed", seed, "reason", result.Reason, "winner", result.WinnerName, "turns", result.Turns)
	return statistics.GameResult{Index: i, Seed: seed, Result: *result}, nil
}

// saveRecord stores the finished game held by recorder
func (s *Simulator) saveRecord(recorder *history.Recorder) error {
	rec, done := recorder.Record()
	if !done {
		return history.ErrIncomplete
	}
	_, err := s.store.Save(rec)
	return err
}
