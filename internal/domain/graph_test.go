package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDualHypergraph(t *testing.T) {
	e1 := mustEdge(t, "e1", []string{"v1", "v2"}, WithTail("v3"))
	e2 := mustEdge(t, "e2", []string{"v2", "v4"})
	e3 := mustEdge(t, "e3", []string{"v4", "v5"})

	dual := DeriveDualHypergraph([]SimpleHyperEdge{e1, e2, e3})

	assert.Equal(t, []string{"v1", "v2", "v3", "v4", "v5"}, dual.Nodes)
	assert.Equal(t, []string{"e1", "e2", "e3"}, dual.EdgeIDs)
	assert.Equal(t, 5, dual.Incidence.Rows())
	assert.Equal(t, 3, dual.Incidence.Cols())
	assert.True(t, dual.Transposed.Equal(dual.Incidence.Transpose()))

	assert.Equal(t, []NodeDual{
		{Node: "v1", Edges: []string{"e1"}},
		{Node: "v2", Edges: []string{"e1", "e2"}},
		{Node: "v3", Edges: []string{"e1"}},
		{Node: "v4", Edges: []string{"e2", "e3"}},
		{Node: "v5", Edges: []string{"e3"}},
	}, dual.Duals)
}

func TestDeriveDualHypergraphEmpty(t *testing.T) {
	dual := DeriveDualHypergraph(nil)

	assert.Empty(t, dual.Nodes)
	assert.Empty(t, dual.Duals)
	assert.Equal(t, 0, dual.Transposed.Rows())
}

func TestHypergraphValidate(t *testing.T) {
	g := NewHypergraph("test")
	g.AddEdge(mustEdge(t, "e1", []string{"a"}))
	require.NoError(t, g.Validate())

	g.AddEdge(mustEdge(t, "e1", []string{"b"}))
	assert.Error(t, g.Validate())
}
