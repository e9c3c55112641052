// Package bot holds the automated seat policies. Each policy is a
// game.Agent that only looks at the VisibleState it is given.
package bot

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/game"
)

// Policy names accepted by New and by the config file
const (
	PolicyHuman        = "human"
	PolicyAggressive   = "aggressive"
	PolicyConservative = "conservative"
)

var (
	ErrUnknownPolicy = errors.New("unknown policy")
	ErrInteractive   = errors.New("policy needs an interactive terminal")
)

// Policies returns every policy name in a stable order
func Policies() []string {
	return []string{PolicyHuman, PolicyAggressive, PolicyConservative}
}

// IsPolicy reports whether name is a known policy
func IsPolicy(name string) bool {
	return slices.Contains(Policies(), name)
}

// New creates the automated agent for policy. Human seats are not built
// here; callers wire an interactive agent for them.
func New(policy string, logger *log.Logger) (game.Agent, error) {
	switch policy {
	case PolicyAggressive:
		return NewAggressive(logger), nil
	case PolicyConservative:
		return NewConservative(logger), nil
	case PolicyHuman:
		return nil, fmt.Errorf("%s: %w", policy, ErrInteractive)
	default:
		return nil, fmt.Errorf("%q: %w", policy, ErrUnknownPolicy)
	}
}

func discardIfNil(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}

// legalPlays returns the hand positions the engine would accept this turn.
// While a penalty is pending only cards that continue the stack qualify.
func legalPlays(s game.VisibleState) []int {
	var idx []int
	for i, c := range s.Hand {
		if s.Pending.Active() && !game.CanContinue(c, s.Pending) {
			continue
		}
		if game.IsLegal(c, s.Top) {
			idx = append(idx, i)
		}
	}
	return idx
}

// stackCard returns the first legal card that repeats an action on top
func stackCard(s game.VisibleState, legal []int) (int, bool) {
	if !s.Top.Rank.IsAction() {
		return 0, false
	}
	for _, i := range legal {
		if s.Hand[i].Rank == s.Top.Rank {
			return i, true
		}
	}
	return 0, false
}

// firstOfKind returns the first legal card of kind k in hand order
func firstOfKind(s game.VisibleState, legal []int, kinds ...card.Kind) (int, bool) {
	for _, i := range legal {
		if slices.Contains(kinds, s.Hand[i].Rank.Kind()) {
			return i, true
		}
	}
	return 0, false
}

// numericBySuit orders the legal numeric cards by score, keeping hand order
// between equal scores, and returns the first
func numericBySuit(s game.VisibleState, legal []int, score func(card.Suit) int) (int, bool) {
	var numeric []int
	for _, i := range legal {
		if s.Hand[i].Rank.IsNumeric() {
			numeric = append(numeric, i)
		}
	}
	if len(numeric) == 0 {
		return 0, false
	}
	slices.SortStableFunc(numeric, func(a, b int) int {
		return score(s.Hand[a].Suit) - score(s.Hand[b].Suit)
	})
	return numeric[0], true
}

func suitCounts(cards []card.Card) map[card.Suit]int {
	counts := make(map[card.Suit]int, len(card.Suits))
	for _, c := range cards {
		counts[c.Suit]++
	}
	return counts
}

// play wraps index i in a decision, declaring a low hand when the play
// leaves exactly one card
func play(s game.VisibleState, i int, reasoning string) game.Decision {
	if len(s.Hand) == 2 {
		return game.PlayAndDeclare(i, reasoning+", Adná!")
	}
	return game.Play(i, reasoning)
}

func draw(s game.VisibleState) game.Decision {
	if s.Pending.Active() {
		return game.Draw(fmt.Sprintf("cannot stack, taking %d", s.Pending.Count))
	}
	return game.Draw("nothing playable, drawing")
}
