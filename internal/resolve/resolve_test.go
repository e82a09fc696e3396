package resolve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/girder/internal/card"
)

func snapshotWith(cards ...*card.Card) map[string]*card.Card {
	snap := make(map[string]*card.Card, len(cards))
	for _, c := range cards {
		snap[c.ID] = c
	}
	return snap
}

func TestInputs_Literals(t *testing.T) {
	schema := card.Schema{
		{Key: "B", Default: 100},
		{Key: "H", Default: 200},
	}
	c := &card.Card{ID: "c1", Inputs: card.Inputs{
		"B": card.Lit("300"),
		"H": card.Lit("  600.5 "),
	}}

	got := Inputs(c, schema, nil)
	assert.Equal(t, map[string]float64{"B": 300, "H": 600.5}, got)
}

func TestInputs_MissingSlotUsesSchemaDefault(t *testing.T) {
	schema := card.Schema{{Key: "B", Default: 100}}
	c := &card.Card{ID: "c1", Inputs: card.Inputs{}}

	got := Inputs(c, schema, nil)
	assert.Equal(t, map[string]float64{"B": 100}, got)
}

func TestInputs_MalformedLiteralUsesSchemaDefault(t *testing.T) {
	schema := card.Schema{{Key: "B", Default: 100}}

	for _, raw := range []string{"", "abc", "12,5", "NaN", "Inf", "-Inf"} {
		c := &card.Card{ID: "c1", Inputs: card.Inputs{"B": card.Lit(raw)}}
		got := Inputs(c, schema, nil)
		assert.Equal(t, 100.0, got["B"], "raw %q", raw)
	}
}

func TestInputs_Reference(t *testing.T) {
	schema := card.Schema{{Key: "M", Default: 7}}
	producer := &card.Card{ID: "b1", Outputs: map[string]float64{"M": 20000}}
	c := &card.Card{ID: "chk", Inputs: card.Inputs{
		"M": card.Ref{Card: "b1", Output: "M"},
	}}

	got := Inputs(c, schema, snapshotWith(producer, c))
	assert.Equal(t, 20000.0, got["M"])
}

func TestInputs_DanglingReferenceIsZeroNotDefault(t *testing.T) {
	schema := card.Schema{{Key: "M", Default: 7}}

	tests := []struct {
		name     string
		snapshot map[string]*card.Card
	}{
		{"producer absent", snapshotWith()},
		{"producer has no outputs", snapshotWith(&card.Card{ID: "b1"})},
		{"output key missing", snapshotWith(&card.Card{ID: "b1", Outputs: map[string]float64{"V": 1}})},
		{"output not finite", snapshotWith(&card.Card{ID: "b1", Outputs: map[string]float64{"M": math.NaN()}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &card.Card{ID: "chk", Inputs: card.Inputs{
				"M": card.Ref{Card: "b1", Output: "M"},
			}}
			got := Inputs(c, schema, tt.snapshot)
			assert.Equal(t, 0.0, got["M"])
		})
	}
}

func TestInputs_UndeclaredStoredKeysIncluded(t *testing.T) {
	schema := card.Schema{{Key: "B", Default: 1}}
	c := &card.Card{ID: "c1", Inputs: card.Inputs{
		"B":  card.Lit("2"),
		"v2": card.Lit("20"),
		"v1": card.Lit("10"),
	}}

	got := Inputs(c, schema, nil)
	assert.Equal(t, map[string]float64{"B": 2, "v1": 10, "v2": 20}, got)
}

func TestEffectiveSchema(t *testing.T) {
	static := card.Schema{{Key: "L", Default: 1000}}

	assert.Equal(t, static, EffectiveSchema(static, nil, nil))

	dynamic := func(c *card.Card) card.Schema {
		return card.Schema{{Key: "v1"}, {Key: "L", Default: 2000}}
	}
	merged := EffectiveSchema(static, dynamic, &card.Card{})
	assert.Equal(t, card.Schema{
		{Key: "L", Default: 2000},
		{Key: "v1"},
	}, merged)
}
