package game

import (
	"fmt"

	"github.com/lox/adna/internal/card"
)

// Player is the per-seat state: a name, an ordered hand and the low-hand
// declaration flag
type Player struct {
	Name        string
	hand        []card.Card
	declaredLow bool
}

// NewPlayer creates a player with an empty hand
func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// Hand returns a copy of the player's hand in order
func (p *Player) Hand() []card.Card {
	hand := make([]card.Card, len(p.hand))
	copy(hand, p.hand)
	return hand
}

// HandSize returns the number of cards held
func (p *Player) HandSize() int {
	return len(p.hand)
}

// DeclaredLow reports whether the player has declared a low hand
func (p *Player) DeclaredLow() bool {
	return p.declaredLow
}

// take adds drawn cards to the end of the hand and clears any declaration
func (p *Player) take(cards ...card.Card) {
	p.hand = append(p.hand, cards...)
	p.declaredLow = false
}

// removeAt takes the card at index i out of the hand, keeping the order of
// the remaining cards. Callers validate i first.
func (p *Player) removeAt(i int) card.Card {
	c := p.hand[i]
	p.hand = append(p.hand[:i], p.hand[i+1:]...)
	return c
}

func (p *Player) declareLow() {
	p.declaredLow = true
}

// hasRank reports whether any card in hand has rank r
func (p *Player) hasRank(r card.Rank) bool {
	for _, c := range p.hand {
		if c.Rank == r {
			return true
		}
	}
	return false
}

func (p *Player) String() string {
	return fmt.Sprintf("Player %s (cards: %d)", p.Name, len(p.hand))
}
