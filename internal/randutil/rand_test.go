package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for range 16 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, int64(7), Resolve(7))
	assert.NotZero(t, Resolve(0))
}

func TestDerive(t *testing.T) {
	assert.Equal(t, Derive(1, 3), Derive(1, 3))
	assert.NotEqual(t, Derive(1, 0), Derive(1, 1))
	assert.NotEqual(t, Derive(1, 1), Derive(2, 1))
}
