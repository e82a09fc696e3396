package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/girder/internal/card"
)

func mkCard(id string, refs map[string]string) *card.Card {
	c := &card.Card{ID: id, Type: "t", Inputs: card.Inputs{}}
	for key, producer := range refs {
		c.Inputs[key] = card.Ref{Card: producer, Output: "out"}
	}
	return c
}

func TestBuild_EveryCardHasEntry(t *testing.T) {
	cards := []*card.Card{mkCard("a", nil), mkCard("b", nil)}
	adj := Build(cards)

	require.Len(t, adj, 2)
	assert.Empty(t, adj["a"])
	assert.Empty(t, adj["b"])
}

func TestBuild_Edges(t *testing.T) {
	cards := []*card.Card{
		mkCard("a", nil),
		mkCard("b", map[string]string{"x": "a"}),
		mkCard("c", map[string]string{"x": "a", "y": "b"}),
	}
	adj := Build(cards)

	assert.Equal(t, []string{"b", "c"}, adj["a"])
	assert.Equal(t, []string{"c"}, adj["b"])
	assert.Empty(t, adj["c"])
}

func TestBuild_DedupsEdges(t *testing.T) {
	cards := []*card.Card{
		mkCard("a", nil),
		mkCard("b", map[string]string{"x": "a", "y": "a", "z": "a"}),
	}
	adj := Build(cards)

	assert.Equal(t, []string{"b"}, adj["a"])
}

func TestBuild_DanglingRefOmitted(t *testing.T) {
	cards := []*card.Card{
		mkCard("a", map[string]string{"x": "ghost"}),
	}
	adj := Build(cards)

	require.Len(t, adj, 1)
	assert.Empty(t, adj["a"])
	_, exists := adj["ghost"]
	assert.False(t, exists)
}

func TestBuild_LiteralsContributeNoEdges(t *testing.T) {
	a := &card.Card{ID: "a", Type: "t", Inputs: card.Inputs{"x": card.Lit("5")}}
	adj := Build([]*card.Card{a})
	assert.Empty(t, adj["a"])
}

func TestSort_IndependentCardsKeepListOrder(t *testing.T) {
	cards := []*card.Card{mkCard("a", nil), mkCard("b", nil), mkCard("c", nil)}
	order := Sort(cards, Build(cards))

	assert.Equal(t, []string{"a", "b", "c"}, order.IDs)
	assert.False(t, order.HasCycles())
}

func TestSort_ProducerBeforeConsumer(t *testing.T) {
	// consumer appears first in list order
	cards := []*card.Card{
		mkCard("chk", map[string]string{"M": "b1"}),
		mkCard("b1", nil),
	}
	order := Sort(cards, Build(cards))

	assert.Equal(t, []string{"b1", "chk"}, order.IDs)
	assert.False(t, order.HasCycles())
}

func TestSort_Diamond(t *testing.T) {
	cards := []*card.Card{
		mkCard("s", nil),
		mkCard("x", map[string]string{"in": "s"}),
		mkCard("y", map[string]string{"in": "s"}),
		mkCard("t", map[string]string{"a": "x", "b": "y"}),
	}
	order := Sort(cards, Build(cards))

	assert.Equal(t, []string{"s", "x", "y", "t"}, order.IDs)
}

func TestSort_CycleEveryCardStillAppears(t *testing.T) {
	cards := []*card.Card{
		mkCard("a", map[string]string{"in": "b"}),
		mkCard("b", map[string]string{"in": "a"}),
		mkCard("c", nil),
	}
	order := Sort(cards, Build(cards))

	require.True(t, order.HasCycles())
	assert.ElementsMatch(t, []string{"a", "b", "c"}, order.IDs)
	assert.Len(t, order.IDs, 3)

	require.Len(t, order.Cycles, 1)
	path := order.Cycles[0].IDs
	assert.Equal(t, path[0], path[len(path)-1], "cycle path closes on itself")
}

func TestSort_SelfReference(t *testing.T) {
	cards := []*card.Card{mkCard("a", map[string]string{"in": "a"})}
	order := Sort(cards, Build(cards))

	assert.Equal(t, []string{"a"}, order.IDs)
	require.Len(t, order.Cycles, 1)
	assert.Equal(t, []string{"a", "a"}, order.Cycles[0].IDs)
}

func TestSort_Deterministic(t *testing.T) {
	cards := []*card.Card{
		mkCard("r1", nil),
		mkCard("r2", nil),
		mkCard("m", map[string]string{"a": "r1", "b": "r2"}),
		mkCard("n", map[string]string{"a": "r2"}),
	}

	first := Sort(cards, Build(cards))
	for i := 0; i < 50; i++ {
		again := Sort(cards, Build(cards))
		require.Equal(t, first.IDs, again.IDs)
	}
}
