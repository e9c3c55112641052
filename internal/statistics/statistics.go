// Package statistics aggregates the results of many simulated games
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/adna/internal/game"
)

// GameResult is the outcome of a single simulated game
type GameResult struct {
	Index  int   // Position of the game in the batch
	Seed   int64 // Deck seed for this game (for replay)
	Result game.Result
}

// SeatStats tracks statistics for a specific seat
type SeatStats struct {
	Wins   int
	SumWin float64 // Turns taken by the games this seat won
}

// Statistics tracks a batch of Adná games
type Statistics struct {
	Games  int
	Sum    float64   // Sum of game lengths in turns
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Store all lengths for median/percentile calculation

	Seats [game.NumSeats]SeatStats

	// Games that ended without a winner
	DeckExhausted int
	TurnLimit     int

	// Rule activity, summed over every game
	Reshuffles       int
	LowHandPenalties int
	StacksServed     int
	IllegalPlays     int

	Longest  int // Longest game in turns
	Shortest int // Shortest game in turns
}

// Mean returns the arithmetic mean game length in turns
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Sum / float64(s.Games)
}

// Variance returns the sample variance of game length
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of game length
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add records a finished game
func (s *Statistics) Add(result GameResult) {
	r := result.Result
	turns := float64(r.Turns)

	s.Games++
	s.Sum += turns
	s.Sum2 += turns * turns
	s.Values = append(s.Values, turns)

	if s.Games == 1 || r.Turns > s.Longest {
		s.Longest = r.Turns
	}
	if s.Games == 1 || r.Turns < s.Shortest {
		s.Shortest = r.Turns
	}

	switch r.Reason {
	case game.ReasonWinner:
		if r.Winner >= 0 && r.Winner < game.NumSeats {
			s.Seats[r.Winner].Wins++
			s.Seats[r.Winner].SumWin += turns
		}
	case game.ReasonDeckExhausted:
		s.DeckExhausted++
	case game.ReasonTurnLimit:
		s.TurnLimit++
	}

	s.Reshuffles += r.Reshuffles
	s.LowHandPenalties += r.LowHandPenalties
	s.StacksServed += r.StacksServed
	s.IllegalPlays += r.IllegalPlays
}

// Wins returns the number of games won by any seat
func (s *Statistics) Wins() int {
	total := 0
	for _, seat := range s.Seats {
		total += seat.Wins
	}
	return total
}

// NoWinner returns the number of games that ended without a winner
func (s *Statistics) NoWinner() int {
	return s.DeckExhausted + s.TurnLimit
}

// WinRate returns the share of games won by seat, between 0 and 1
func (s *Statistics) WinRate(seat int) float64 {
	if seat < 0 || seat >= game.NumSeats || s.Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Games)
}

// SeatMean returns the mean length of the games won by seat
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= game.NumSeats {
		return 0
	}
	ss := s.Seats[seat]
	if ss.Wins == 0 {
		return 0
	}
	return ss.SumWin / float64(ss.Wins)
}

// Median returns the median game length
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the game length at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the recorded totals agree with each other
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if total := s.Wins() + s.NoWinner(); total != s.Games {
		return fmt.Errorf("outcomes total (%d) does not match games count (%d)", total, s.Games)
	}

	return nil
}
