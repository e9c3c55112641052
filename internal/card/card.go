// Package card defines the immutable card values of an Adná deck.
//
// A card is a suit paired with a rank. A rank is either a number from 1 to 9
// or one of four action kinds. Rank is a closed type: the only ways to make
// one are Number and the four action values, so every switch over Kind is
// exhaustive.
package card

import (
	"fmt"
	"strings"
)

// Suit represents one of the four card colours
type Suit uint8

const (
	Brown Suit = iota
	Orange
	Pink
	Violet
)

// Suits lists every suit in deck-building order
var Suits = [...]Suit{Brown, Orange, Pink, Violet}

// String returns the name of the suit
func (s Suit) String() string {
	switch s {
	case Brown:
		return "brown"
	case Orange:
		return "orange"
	case Pink:
		return "pink"
	case Violet:
		return "violet"
	default:
		return "?"
	}
}

// Code returns the single-letter code used by ParseCard
func (s Suit) Code() byte {
	switch s {
	case Brown:
		return 'b'
	case Orange:
		return 'o'
	case Pink:
		return 'p'
	case Violet:
		return 'v'
	default:
		return '?'
	}
}

// Kind tells numeric ranks apart from the action kinds
type Kind uint8

const (
	KindNumeric Kind = iota
	KindTakeTwo
	KindTakeFour
	KindSkip
	KindReverse
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindTakeTwo:
		return "Take 2"
	case KindTakeFour:
		return "Take 4"
	case KindSkip:
		return "Skip"
	case KindReverse:
		return "Reverse"
	default:
		return "?"
	}
}

// Rank is either Number(1..9) or one of the action ranks below.
// The zero Rank is not a valid rank.
type Rank struct {
	kind  Kind
	value uint8
}

// Action ranks
var (
	TakeTwo  = Rank{kind: KindTakeTwo}
	TakeFour = Rank{kind: KindTakeFour}
	Skip     = Rank{kind: KindSkip}
	Reverse  = Rank{kind: KindReverse}
)

const (
	MinNumber = 1
	MaxNumber = 9
)

// Number returns the numeric rank n. It panics if n is outside 1..9.
func Number(n int) Rank {
	if n < MinNumber || n > MaxNumber {
		panic(fmt.Sprintf("card: numeric rank %d out of range", n))
	}
	return Rank{kind: KindNumeric, value: uint8(n)}
}

// Kind returns the kind of the rank
func (r Rank) Kind() Kind { return r.kind }

// Value returns the number of a numeric rank, or 0 for an action rank
func (r Rank) Value() int {
	if r.kind != KindNumeric {
		return 0
	}
	return int(r.value)
}

// IsNumeric reports whether r is Number(1..9)
func (r Rank) IsNumeric() bool { return r.kind == KindNumeric && r.value >= MinNumber }

// IsAction reports whether r is one of the four action ranks
func (r Rank) IsAction() bool { return r.kind != KindNumeric }

// IsTake reports whether r is Take 2 or Take 4
func (r Rank) IsTake() bool { return r.kind == KindTakeTwo || r.kind == KindTakeFour }

// Penalty returns the number of cards a Take rank adds to a stack
func (r Rank) Penalty() int {
	switch r.kind {
	case KindTakeTwo:
		return 2
	case KindTakeFour:
		return 4
	default:
		return 0
	}
}

// String returns the display name of the rank, e.g. "7" or "Take 2"
func (r Rank) String() string {
	if r.kind == KindNumeric {
		if r.value == 0 {
			return "?"
		}
		return fmt.Sprintf("%d", r.value)
	}
	return r.kind.String()
}

// Code returns the short code used by ParseCard: a digit, "+2", "+4", "S" or "R"
func (r Rank) Code() string {
	switch r.kind {
	case KindNumeric:
		return r.String()
	case KindTakeTwo:
		return "+2"
	case KindTakeFour:
		return "+4"
	case KindSkip:
		return "S"
	case KindReverse:
		return "R"
	default:
		return "?"
	}
}

// Card represents a single Adná card. Cards are compared with ==.
type Card struct {
	Suit Suit
	Rank Rank
}

// New creates a new card
func New(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display form of a card (e.g., "3 orange", "Skip brown")
func (c Card) String() string {
	return fmt.Sprintf("%s %s", c.Rank, c.Suit)
}

// Code returns the short form of a card (e.g., "3o", "Sb", "+2p")
func (c Card) Code() string {
	return c.Rank.Code() + string(c.Suit.Code())
}

// ParseCard parses the short form produced by Code. Parsing is case
// insensitive for suits and action letters.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	suit, err := parseSuit(s[len(s)-1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}

	rank, err := parseRank(s[:len(s)-1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}

	return New(suit, rank), nil
}

// ParseCards parses a whitespace separated list of short card forms
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// MustParse is like ParseCard but panics on error
func MustParse(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 'b', 'B':
		return Brown, nil
	case 'o', 'O':
		return Orange, nil
	case 'p', 'P':
		return Pink, nil
	case 'v', 'V':
		return Violet, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", b)
	}
}

func parseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "+2":
		return TakeTwo, nil
	case "+4":
		return TakeFour, nil
	case "S":
		return Skip, nil
	case "R":
		return Reverse, nil
	}
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return Number(int(s[0] - '0')), nil
	}
	return Rank{}, fmt.Errorf("unknown rank %q", s)
}
