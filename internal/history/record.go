// Package history records finished games as TOML files. A record holds the
// seed, the seating and every action in order, so a bot-only game can be
// replayed exactly and any game can be read back afterwards.
package history

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lox/adna/internal/card"
	"github.com/lox/adna/internal/game"
)

// Variant names the rules a record was played under
const Variant = "adna"

var (
	ErrNilRecord = errors.New("history: record is nil")
	// ErrIncomplete is returned for a recorder whose game has not ended
	ErrIncomplete = errors.New("history: game has not ended")
)

// Record is one game in the history file format
type Record struct {
	Variant  string   `toml:"variant"`
	Game     string   `toml:"game"`
	Seed     int64    `toml:"seed"`
	MaxTurns int      `toml:"max_turns,omitempty"`
	Players  []string `toml:"players"`
	Policies []string `toml:"policies"`
	Start    string   `toml:"start"` // First card on the discard pile
	Actions  []string `toml:"actions"`
	Winner   string   `toml:"winner,omitempty"`
	Reason   string   `toml:"reason"`
	Turns    int      `toml:"turns"`
	Time     string   `toml:"time,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// Encode writes the record to w in TOML
func Encode(w io.Writer, rec *Record) error {
	if rec == nil {
		return ErrNilRecord
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(rec)
}

// EncodeToBytes encodes and returns the result as bytes
func EncodeToBytes(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one record
func Decode(r io.Reader) (*Record, error) {
	var rec Record
	if _, err := toml.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("history: decode: %w", err)
	}
	if rec.Variant != Variant {
		return nil, fmt.Errorf("history: unsupported variant %q", rec.Variant)
	}
	if rec.Time != "" {
		ts, err := time.Parse(time.RFC3339, rec.Time)
		if err != nil {
			return nil, fmt.Errorf("history: time: %w", err)
		}
		rec.Timestamp = ts
	}
	return &rec, nil
}

// Action vocabulary. Seats are written p1 to p4 and cards by their codes.
//
//	d p1 3o Sb +2v 9p Ro    dealt hand
//	p1 pl 3o                play
//	p1 pl 3o !              play and declare a low hand
//	p2 dr draw 7b           draw, with the reason and the cards drawn
//	p3 sk                   skipped
//	rv counter-clockwise    direction reversed
//	rs 57                   discard pile reshuffled

func player(seat int) string {
	return fmt.Sprintf("p%d", seat+1)
}

func codes(cards []card.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Code()
	}
	return strings.Join(parts, " ")
}

// FormatDeal records the hand a seat was dealt
func FormatDeal(seat int, hand []card.Card) string {
	return strings.TrimSpace(fmt.Sprintf("d %s %s", player(seat), codes(hand)))
}

// FormatPlay records a card played from a hand
func FormatPlay(seat int, c card.Card, declared bool) string {
	if declared {
		return fmt.Sprintf("%s pl %s !", player(seat), c.Code())
	}
	return fmt.Sprintf("%s pl %s", player(seat), c.Code())
}

// FormatDraw records cards drawn into a hand. A draw cut short by an
// empty deck records only the cards that arrived.
func FormatDraw(seat int, reason game.DrawReason, drawn []card.Card) string {
	return strings.TrimSpace(fmt.Sprintf("%s dr %s %s", player(seat), reason, codes(drawn)))
}

// FormatSkip records a seat losing its turn to a Skip
func FormatSkip(seat int) string {
	return fmt.Sprintf("%s sk", player(seat))
}

// FormatReverse records a change of direction
func FormatReverse(d game.Direction) string {
	return fmt.Sprintf("rv %s", d)
}

// FormatReshuffle records the discard pile being recycled
func FormatReshuffle(recycled int) string {
	return fmt.Sprintf("rs %d", recycled)
}

// Describe turns a recorded action back into a sentence. Actions it does
// not recognise are returned unchanged.
func Describe(action string, players []string) string {
	fields := strings.Fields(action)
	if len(fields) < 2 {
		return action
	}

	name := func(token string) string {
		var n int
		if _, err := fmt.Sscanf(token, "p%d", &n); err != nil || n < 1 || n > len(players) {
			return token
		}
		return players[n-1]
	}
	names := func(tokens []string) string {
		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			c, err := card.ParseCard(tok)
			if err != nil {
				parts[i] = tok
				continue
			}
			parts[i] = c.String()
		}
		return strings.Join(parts, ", ")
	}

	switch {
	case fields[0] == "d":
		return fmt.Sprintf("%s is dealt %s", name(fields[1]), names(fields[2:]))
	case fields[0] == "rv":
		return fmt.Sprintf("Direction reversed, play now goes %s", fields[1])
	case fields[0] == "rs":
		return fmt.Sprintf("Discard pile reshuffled into the deck (%s cards)", fields[1])
	case fields[1] == "pl" && len(fields) >= 3:
		text := fmt.Sprintf("%s plays %s", name(fields[0]), names(fields[2:3]))
		if len(fields) > 3 && fields[3] == "!" {
			text += " and says Adná!"
		}
		return text
	case fields[1] == "dr" && len(fields) >= 3:
		drawn := fields[3:]
		if len(drawn) == 0 {
			return fmt.Sprintf("%s draws nothing (%s)", name(fields[0]), fields[2])
		}
		return fmt.Sprintf("%s draws %d (%s): %s", name(fields[0]), len(drawn), fields[2], names(drawn))
	case fields[1] == "sk":
		return fmt.Sprintf("%s is skipped", name(fields[0]))
	}
	return action
}
