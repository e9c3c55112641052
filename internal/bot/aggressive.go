package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/game"
)

// Aggressive spends action cards as soon as it can and keeps the next seat
// guessing by playing suits that rarely show up on the pile
type Aggressive struct {
	logger *log.Logger
}

// NewAggressive creates an aggressive policy
func NewAggressive(logger *log.Logger) *Aggressive {
	return &Aggressive{logger: discardIfNil(logger).WithPrefix("aggressive")}
}

func (a *Aggressive) RequestDecision(seat int, s game.VisibleState) (game.Decision, error) {
	d := a.decide(s)
	a.logger.Debug("Decision", "seat", seat, "type", d.Type, "index", d.Index, "reasoning", d.Reasoning)
	return d, nil
}

func (a *Aggressive) decide(s game.VisibleState) game.Decision {
	legal := legalPlays(s)
	if len(legal) == 0 {
		return draw(s)
	}

	if i, ok := stackCard(s, legal); ok {
		return play(s, i, fmt.Sprintf("stacking %s", s.Hand[i]))
	}

	for _, kinds := range [][]card.Kind{
		{card.KindTakeFour},
		{card.KindTakeTwo},
		{card.KindSkip, card.KindReverse},
	} {
		if i, ok := firstOfKind(s, legal, kinds...); ok {
			return play(s, i, fmt.Sprintf("attacking with %s", s.Hand[i]))
		}
	}

	pile := suitCounts(s.DiscardHistory)
	if i, ok := numericBySuit(s, legal, func(su card.Suit) int { return pile[su] }); ok {
		return play(s, i, fmt.Sprintf("%s is rare on the pile", s.Hand[i].Suit))
	}

	return play(s, legal[0], "any legal card")
}
