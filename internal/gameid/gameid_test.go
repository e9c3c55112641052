package gameid

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := Generate()
		assert.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	mock := quartz.NewMock(t)
	mock.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	entropy := bytes.Repeat([]byte{0xab}, 20)
	a, err := NewGenerator(mock, bytes.NewReader(entropy)).Next()
	require.NoError(t, err)
	b, err := NewGenerator(mock, bytes.NewReader(entropy)).Next()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NoError(t, Validate(a))
}

func TestGeneratorSortsByTime(t *testing.T) {
	mock := quartz.NewMock(t)
	mock.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	gen := NewGenerator(mock, bytes.NewReader(make([]byte, 10*10)))

	var ids []string
	for range 10 {
		id, err := gen.Next()
		require.NoError(t, err)
		ids = append(ids, id)
		mock.Advance(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "%s should sort before %s", ids[i-1], ids[i])
	}
}

func TestGeneratorEntropyExhausted(t *testing.T) {
	_, err := NewGenerator(quartz.NewMock(t), bytes.NewReader([]byte{1, 2, 3})).Next()
	assert.ErrorContains(t, err, "read entropy")
}

func TestEncodeVersionBits(t *testing.T) {
	var uuid [16]byte
	assert.Equal(t, strings.Repeat("0", Length), encode(uuid))

	for i := range uuid {
		uuid[i] = 0xff
	}
	assert.Equal(t, "7"+strings.Repeat("z", Length-1), encode(uuid))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase not allowed", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	assert.Len(t, alphabet, 32)

	seen := make(map[rune]bool)
	for _, char := range alphabet {
		assert.False(t, seen[char], "duplicate character in alphabet: %c", char)
		seen[char] = true
	}
	for _, char := range "ilou" {
		assert.NotContains(t, alphabet, string(char))
	}
}
