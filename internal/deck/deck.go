package deck

import (
	"errors"
	rand "math/rand/v2"

	"github.com/lox/adna/internal/card"
)

// Size is the number of cards in a standard Adná deck
const Size = 100

// ErrExhausted is returned when the draw pile is empty and the discard pile
// has fewer than two cards to recycle
var ErrExhausted = errors.New("deck exhausted")

// Deck owns the draw pile and the discard pile. Cards are drawn from the end
// of the draw pile and discarded onto the end of the discard pile.
type Deck struct {
	draw       []card.Card
	discard    []card.Card
	rng        *rand.Rand
	reshuffles int
}

// Standard returns the 100 cards of a deck in a fixed order: per suit, two
// of each number 1..9, two Take 2, two Reverse, two Skip and one Take 4.
func Standard() []card.Card {
	cards := make([]card.Card, 0, Size)
	for _, suit := range card.Suits {
		for n := card.MinNumber; n <= card.MaxNumber; n++ {
			cards = append(cards, card.New(suit, card.Number(n)), card.New(suit, card.Number(n)))
		}
		cards = append(cards,
			card.New(suit, card.TakeTwo), card.New(suit, card.TakeTwo),
			card.New(suit, card.Reverse), card.New(suit, card.Reverse),
			card.New(suit, card.Skip), card.New(suit, card.Skip),
			card.New(suit, card.TakeFour),
		)
	}
	return cards
}

// New creates a standard deck shuffled with rng. A nil rng falls back to
// the global math/rand/v2 source.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		draw: Standard(),
		rng:  rng,
	}
	d.Shuffle()
	return d
}

// NewStacked creates a deck whose draw pile yields cards in the given order.
// The pile is not shuffled; rng is only used by later reshuffles.
func NewStacked(rng *rand.Rand, cards []card.Card) *Deck {
	draw := make([]card.Card, len(cards))
	for i, c := range cards {
		draw[len(cards)-1-i] = c
	}
	return &Deck{draw: draw, rng: rng}
}

// Shuffle randomizes the order of the draw pile
func (d *Deck) Shuffle() {
	swap := func(i, j int) { d.draw[i], d.draw[j] = d.draw[j], d.draw[i] }
	if d.rng != nil {
		d.rng.Shuffle(len(d.draw), swap)
		return
	}
	rand.Shuffle(len(d.draw), swap)
}

// DrawOne removes and returns the next card of the draw pile. When the draw
// pile is empty the discard pile, minus its top card, is shuffled into a new
// draw pile first. ErrExhausted is returned if that leaves nothing to draw.
func (d *Deck) DrawOne() (card.Card, error) {
	if len(d.draw) == 0 {
		if err := d.reshuffle(); err != nil {
			return card.Card{}, err
		}
	}

	c := d.draw[len(d.draw)-1]
	d.draw = d.draw[:len(d.draw)-1]
	return c, nil
}

func (d *Deck) reshuffle() error {
	if len(d.discard) < 2 {
		return ErrExhausted
	}

	top := d.discard[len(d.discard)-1]
	d.draw = append(d.draw[:0], d.discard[:len(d.discard)-1]...)
	d.discard = []card.Card{top}
	d.Shuffle()
	d.reshuffles++
	return nil
}

// Discard places c on top of the discard pile
func (d *Deck) Discard(c card.Card) {
	d.discard = append(d.discard, c)
}

// PeekTop returns the top of the discard pile, or false if nothing has been
// discarded yet
func (d *Deck) PeekTop() (card.Card, bool) {
	if len(d.discard) == 0 {
		return card.Card{}, false
	}
	return d.discard[len(d.discard)-1], true
}

// InitializeDiscard turns over cards until a numeric one shows. Action cards
// turned over on the way stay in the discard pile underneath it. The numeric
// card becomes the visible top and is returned.
func (d *Deck) InitializeDiscard() (card.Card, error) {
	for {
		c, err := d.DrawOne()
		if err != nil {
			return card.Card{}, err
		}
		d.Discard(c)
		if c.Rank.IsNumeric() {
			return c, nil
		}
	}
}

// DrawPileSize returns the number of cards left to draw before a reshuffle
func (d *Deck) DrawPileSize() int {
	return len(d.draw)
}

// DiscardPileSize returns the number of cards in the discard pile
func (d *Deck) DiscardPileSize() int {
	return len(d.discard)
}

// DiscardPile returns a copy of the discard pile, bottom first
func (d *Deck) DiscardPile() []card.Card {
	pile := make([]card.Card, len(d.discard))
	copy(pile, d.discard)
	return pile
}

// Reshuffles returns how many times the discard pile has been recycled
func (d *Deck) Reshuffles() int {
	return d.reshuffles
}

// Len returns the number of cards held by the deck across both piles
func (d *Deck) Len() int {
	return len(d.draw) + len(d.discard)
}
