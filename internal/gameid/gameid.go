// Package gameid names games. IDs are UUIDv7 values written as 26
// lowercase Crockford base32 characters, so they sort by creation time and
// make safe file names.
package gameid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32, as used by TypeID
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an ID
const Length = 26

// Generator creates game IDs from a clock and a source of entropy
type Generator struct {
	clock   quartz.Clock
	entropy io.Reader
}

// NewGenerator creates a generator. A nil clock means the real clock and a
// nil entropy source means crypto/rand.
func NewGenerator(clock quartz.Clock, entropy io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Generator{clock: clock, entropy: entropy}
}

// Generate creates a game ID with the real clock and crypto/rand
func Generate() string {
	id, err := NewGenerator(nil, nil).Next()
	if err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	return id
}

// Next creates a new game ID
func (g *Generator) Next() (string, error) {
	var uuid [16]byte

	// 48-bit millisecond timestamp, then random bits with the version and
	// variant fields overwritten
	ms := uint64(g.clock.Now().UnixMilli())
	binary.BigEndian.PutUint16(uuid[0:2], uint16(ms>>32))
	binary.BigEndian.PutUint32(uuid[2:6], uint32(ms))

	if _, err := io.ReadFull(g.entropy, uuid[6:]); err != nil {
		return "", fmt.Errorf("read entropy: %w", err)
	}
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encode(uuid), nil
}

// encode writes the 128 bits as 26 characters. The first character only
// carries the top 3 bits, so it is never above '7'.
func encode(uuid [16]byte) string {
	hi := binary.BigEndian.Uint64(uuid[0:8])
	lo := binary.BigEndian.Uint64(uuid[8:16])

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate checks if a game ID is well formed
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
