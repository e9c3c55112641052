package game

import (
	"testing"

	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/deck"
	"github.com/stretchr/testify/assert"
)

func TestIsLegal(t *testing.T) {
	tests := []struct {
		candidate string
		top       string
		legal     bool
	}{
		{"3o", "7o", true},   // same suit
		{"3b", "3o", true},   // same number
		{"3b", "4o", false},  // nothing in common
		{"Sb", "So", true},   // same action
		{"Sb", "Ro", false},  // different actions
		{"+2b", "+2o", true}, // same take
		{"+2b", "+4o", false},
		{"+4b", "3b", true}, // suit beats rank type
		{"+4b", "3o", false},
		{"3b", "So", false}, // numeric against action
		{"Rv", "Rp", true},
	}

	for _, tt := range tests {
		t.Run(tt.candidate+" on "+tt.top, func(t *testing.T) {
			assert.Equal(t, tt.legal, IsLegal(card.MustParse(tt.candidate), card.MustParse(tt.top)))
		})
	}
}

func TestIsLegalIsSymmetric(t *testing.T) {
	cards := deck.Standard()
	for _, a := range cards {
		for _, b := range cards {
			if IsLegal(a, b) != IsLegal(b, a) {
				t.Fatalf("IsLegal(%s, %s) != IsLegal(%s, %s)", a, b, b, a)
			}
		}
	}
}

func TestLegalIndexes(t *testing.T) {
	hand := card.MustParseCards("3b 7o Sp 7v +2o")
	assert.Equal(t, []int{0, 1, 3}, LegalIndexes(hand, card.MustParse("7b")))
	assert.Empty(t, LegalIndexes(card.MustParseCards("3b 4o"), card.MustParse("9v")))
}

func TestNext(t *testing.T) {
	assert.Equal(t, 1, Next(0, Clockwise))
	assert.Equal(t, 0, Next(3, Clockwise))
	assert.Equal(t, 3, Next(0, CounterClockwise))
	assert.Equal(t, 1, Next(2, CounterClockwise))

	for seat := range NumSeats {
		for _, d := range []Direction{Clockwise, CounterClockwise} {
			n := Next(seat, d)
			assert.GreaterOrEqual(t, n, 0)
			assert.Less(t, n, NumSeats)
			assert.Equal(t, seat, Next(n, d.Reversed()))
		}
	}
}

func TestSeatName(t *testing.T) {
	assert.Equal(t, "A", SeatName(0))
	assert.Equal(t, "D", SeatName(3))
	assert.Equal(t, "?", SeatName(4))
	assert.Equal(t, "?", SeatName(-1))
}

func TestPending(t *testing.T) {
	var p Pending
	assert.False(t, p.Active())
	assert.Equal(t, "none", p.String())

	p = p.Add(card.TakeTwo)
	assert.True(t, p.Active())
	assert.Equal(t, Pending{Count: 2, Rank: card.TakeTwo}, p)

	p = p.Add(card.TakeTwo)
	assert.Equal(t, 4, p.Count)

	assert.True(t, CanContinue(card.MustParse("+2v"), p))
	assert.False(t, CanContinue(card.MustParse("+4v"), p))
	assert.False(t, CanContinue(card.MustParse("+2v"), Pending{}))

	four := Pending{}.Add(card.TakeFour)
	assert.Equal(t, Pending{Count: 4, Rank: card.TakeFour}, four)
	assert.Equal(t, 8, four.Add(card.TakeFour).Count)
}
