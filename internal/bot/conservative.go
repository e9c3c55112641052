package bot

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/game"
)

// Conservative defends against stacks, plays numbers in the suit it holds
// most of and hoards Take cards for last
type Conservative struct {
	logger *log.Logger
}

// NewConservative creates a conservative policy
func NewConservative(logger *log.Logger) *Conservative {
	return &Conservative{logger: discardIfNil(logger).WithPrefix("conservative")}
}

func (c *Conservative) RequestDecision(seat int, s game.VisibleState) (game.Decision, error) {
	d := c.decide(s)
	c.logger.Debug("Decision", "seat", seat, "type", d.Type, "index", d.Index, "reasoning", d.Reasoning)
	return d, nil
}

func (c *Conservative) decide(s game.VisibleState) game.Decision {
	legal := legalPlays(s)
	if len(legal) == 0 {
		return draw(s)
	}

	if i, ok := stackCard(s, legal); ok {
		return play(s, i, fmt.Sprintf("defending with %s", s.Hand[i]))
	}

	own := suitCounts(s.Hand)
	if i, ok := numericBySuit(s, legal, func(su card.Suit) int { return -own[su] }); ok {
		return play(s, i, fmt.Sprintf("keeping options open in %s", s.Hand[i].Suit))
	}

	if i, ok := firstOfKind(s, legal, card.KindSkip, card.KindReverse); ok {
		return play(s, i, fmt.Sprintf("last resort %s", s.Hand[i]))
	}
	if i, ok := firstOfKind(s, legal, card.KindTakeTwo, card.KindTakeFour); ok {
		return play(s, i, fmt.Sprintf("last resort %s", s.Hand[i]))
	}

	return play(s, legal[0], "any legal card")
}
