package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}

	a := g.Generate()
	b := g.Generate()

	assert.NotEqual(t, a, b)
	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestFixedGenerator(t *testing.T) {
	g := NewFixedGenerator("a", "b")

	assert.Equal(t, "a", g.Generate())
	assert.Equal(t, "b", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}

func TestClock(t *testing.T) {
	c := NewClock()

	assert.Equal(t, int64(0), c.Current())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(2), c.Current())
}
