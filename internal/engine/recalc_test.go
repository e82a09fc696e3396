package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/girder/internal/card"
)

func TestRecalc_FailureIsolation(t *testing.T) {
	s, err := NewSheetFrom(testCatalog(), []*card.Card{
		sourceCard("s1", "3"),
		{ID: "bad", Type: "divider", Inputs: card.Inputs{
			"num": card.Lit("1"),
			"den": card.Lit("0"),
		}},
		{ID: "down", Type: "adder", Inputs: card.Inputs{
			"p": card.Ref{Card: "bad", Output: "out"},
			"q": card.Lit("5"),
		}},
	})
	require.NoError(t, err)

	// the failed card carries the error and nothing else
	bad, _ := s.Card("bad")
	assert.Equal(t, "division by zero", bad.Error)
	assert.Empty(t, bad.Outputs)

	// siblings are unaffected, downstream computes with 0
	assert.Equal(t, 3.0, mustOutput(t, s, "s1", "out"))
	assert.Equal(t, 5.0, mustOutput(t, s, "down", "out"))
	down, _ := s.Card("down")
	assert.Empty(t, down.Error)

	assert.Equal(t, 1, s.LastPass().Failed)
}

func TestRecalc_FailureRecovery(t *testing.T) {
	s, err := NewSheetFrom(testCatalog(), []*card.Card{
		{ID: "d", Type: "divider", Inputs: card.Inputs{
			"num": card.Lit("6"),
			"den": card.Lit("0"),
		}},
	})
	require.NoError(t, err)

	d, _ := s.Card("d")
	require.NotEmpty(t, d.Error)

	require.NoError(t, s.SetLiteral("d", "den", "2"))
	assert.Equal(t, 3.0, mustOutput(t, s, "d", "out"))
	d, _ = s.Card("d")
	assert.Empty(t, d.Error, "error cleared on successful recompute")
}

func TestRecalc_PanicIsolation(t *testing.T) {
	s, err := NewSheetFrom(testCatalog(), []*card.Card{
		{ID: "p", Type: "panicky"},
		sourceCard("s1", "3"),
	})
	require.NoError(t, err)

	p, _ := s.Card("p")
	assert.Contains(t, p.Error, "calculation panicked: boom")
	assert.Empty(t, p.Outputs)

	assert.Equal(t, 3.0, mustOutput(t, s, "s1", "out"))
	assert.Equal(t, 1, s.LastPass().Failed)
}

func TestRecalc_NonFiniteOutputsDropped(t *testing.T) {
	s, err := NewSheetFrom(testCatalog(), []*card.Card{
		{ID: "l", Type: "leaky", Inputs: card.Inputs{
			"num": card.Lit("1"),
			"den": card.Lit("0"),
		}},
	})
	require.NoError(t, err)

	l, _ := s.Card("l")
	assert.Equal(t, map[string]float64{"ok": 1}, l.Outputs, "Inf output dropped, finite kept")
	assert.Empty(t, l.Error)
	assert.Equal(t, 0, s.LastPass().Failed)
}

func TestRecalc_CycleToleratedAllCardsComputed(t *testing.T) {
	s, err := NewSheetFrom(testCatalog(), []*card.Card{
		{ID: "x", Type: "adder", Inputs: card.Inputs{
			"p": card.Ref{Card: "y", Output: "out"},
			"q": card.Lit("1"),
		}},
		{ID: "y", Type: "adder", Inputs: card.Inputs{
			"p": card.Ref{Card: "x", Output: "out"},
		}},
		sourceCard("s1", "3"),
	})
	require.NoError(t, err)

	report := s.LastPass()
	require.Len(t, report.Cycles, 1)
	assert.Equal(t, report.Cards, 3)

	// every card still computed, including the cycle members
	x, _ := s.Card("x")
	y, _ := s.Card("y")
	assert.NotEmpty(t, x.Outputs)
	assert.NotEmpty(t, y.Outputs)
	assert.Empty(t, x.Error)
	assert.Empty(t, y.Error)
	assert.Equal(t, 3.0, mustOutput(t, s, "s1", "out"))

	assert.Len(t, s.Cycles(), 1)
}

func TestRecalc_CycleConvergesWhenBroken(t *testing.T) {
	s, err := NewSheetFrom(testCatalog(), []*card.Card{
		{ID: "x", Type: "adder", Inputs: card.Inputs{
			"p": card.Ref{Card: "y", Output: "out"},
			"q": card.Lit("1"),
		}},
		{ID: "y", Type: "adder", Inputs: card.Inputs{
			"p": card.Ref{Card: "x", Output: "out"},
		}},
	})
	require.NoError(t, err)

	require.NoError(t, s.ClearReference("y", "p"))
	report := s.Recalculate()
	assert.Empty(t, report.Cycles)
	assert.Equal(t, 0.0, mustOutput(t, s, "y", "out"))
	assert.Equal(t, 1.0, mustOutput(t, s, "x", "out"))
}

func TestPassReport_String(t *testing.T) {
	r := PassReport{Pass: 3, Cards: 5, Failed: 1}
	assert.Equal(t, "pass 3: 5 cards, 1 failed, 0 cycles", r.String())
}
