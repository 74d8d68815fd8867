package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hgdb/internal/apperror"
)

func strs(s ...string) *[]string { return &s }

func TestNewSimpleHyperEdge(t *testing.T) {
	t.Run("creates directed edge", func(t *testing.T) {
		edge, err := NewSimpleHyperEdge("e1", "Friendship", []string{"v1", "v2"},
			WithTail("v3"),
			WithTraversable(true),
			WithProperties(NewProperty("type", "linked")),
		)
		require.NoError(t, err)

		assert.True(t, edge.Directed)
		assert.True(t, edge.Traversable)
		assert.Equal(t, []string{"v1", "v2"}, edge.HeadHyperNodes)
		assert.Equal(t, strs("v3"), edge.TailHyperNodes)
		p, ok := edge.Property("type")
		require.True(t, ok)
		assert.Equal(t, []string{"linked"}, p.Value)
	})

	t.Run("creates undirected edge without tail", func(t *testing.T) {
		edge, err := NewSimpleHyperEdge("e2", "e2", []string{"v4", "v5"})
		require.NoError(t, err)

		assert.False(t, edge.Directed)
		assert.Nil(t, edge.TailHyperNodes)
		assert.NotNil(t, edge.MainProperties)
	})

	t.Run("copies head input", func(t *testing.T) {
		head := []string{"a", "b"}
		edge, err := NewSimpleHyperEdge("e", "e", head)
		require.NoError(t, err)

		head[0] = "mutated"
		assert.Equal(t, "a", edge.HeadHyperNodes[0])
	})
}

func TestSimpleHyperEdgeValidate(t *testing.T) {
	tests := []struct {
		name string
		edge SimpleHyperEdge
	}{
		{"missing id", SimpleHyperEdge{HeadHyperNodes: []string{"a"}}},
		{"empty head", SimpleHyperEdge{ID: "e"}},
		{"empty node id in head", SimpleHyperEdge{ID: "e", HeadHyperNodes: []string{"a", ""}}},
		{"duplicate head node", SimpleHyperEdge{ID: "e", HeadHyperNodes: []string{"a", "a"}}},
		{"directed without tail", SimpleHyperEdge{ID: "e", Directed: true, HeadHyperNodes: []string{"a"}}},
		{"directed with empty tail", SimpleHyperEdge{ID: "e", Directed: true, HeadHyperNodes: []string{"a"}, TailHyperNodes: strs()}},
		{"undirected with tail", SimpleHyperEdge{ID: "e", HeadHyperNodes: []string{"a"}, TailHyperNodes: strs("b")}},
		{"duplicate tail node", SimpleHyperEdge{ID: "e", Directed: true, HeadHyperNodes: []string{"a"}, TailHyperNodes: strs("b", "b")}},
		{"empty property key", SimpleHyperEdge{ID: "e", HeadHyperNodes: []string{"a"}, MainProperties: []Property{{Key: ""}}}},
		{"duplicate property key", SimpleHyperEdge{ID: "e", HeadHyperNodes: []string{"a"}, MainProperties: []Property{NewProperty("k"), NewProperty("k", "x")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edge.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrValidation), "expected validation error, got %v", err)
		})
	}

	t.Run("head and tail may overlap", func(t *testing.T) {
		edge := SimpleHyperEdge{ID: "e", Directed: true, HeadHyperNodes: []string{"a", "b"}, TailHyperNodes: strs("b", "c")}
		assert.NoError(t, edge.Validate())
	})
}

func TestNewSimpleHyperEdgeRejectsMalformed(t *testing.T) {
	_, err := NewSimpleHyperEdge("e", "e", []string{"a"}, WithTail())
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestSimpleHyperEdgeNodes(t *testing.T) {
	edge := SimpleHyperEdge{ID: "e", Directed: true, HeadHyperNodes: []string{"v2", "v1"}, TailHyperNodes: strs("v1", "v3")}

	assert.Equal(t, []string{"v2", "v1", "v3"}, edge.Nodes())
	assert.True(t, edge.Incident("v3"))
	assert.False(t, edge.Incident("v9"))
}

func TestSimpleHyperEdgeClone(t *testing.T) {
	edge := SimpleHyperEdge{
		ID:             "e",
		Directed:       true,
		MainProperties: []Property{NewProperty("k", "v")},
		HeadHyperNodes: []string{"a"},
		TailHyperNodes: strs("b"),
	}

	clone := edge.Clone()
	require.True(t, edge.Equal(&clone))

	clone.HeadHyperNodes[0] = "x"
	(*clone.TailHyperNodes)[0] = "y"
	clone.MainProperties[0].Value[0] = "z"

	assert.Equal(t, "a", edge.HeadHyperNodes[0])
	assert.Equal(t, "b", (*edge.TailHyperNodes)[0])
	assert.Equal(t, "v", edge.MainProperties[0].Value[0])
	assert.False(t, edge.Equal(&clone))
}

func TestSimpleHyperEdgeEqualDistinguishesTailPresence(t *testing.T) {
	a := SimpleHyperEdge{ID: "e", HeadHyperNodes: []string{"a"}}
	b := SimpleHyperEdge{ID: "e", HeadHyperNodes: []string{"a"}, TailHyperNodes: strs()}

	assert.False(t, a.Equal(&b))
	assert.False(t, a.Equal(nil))
}

func TestSimpleHyperEdgeRelationships(t *testing.T) {
	t.Run("directed edge reduces to head x tail", func(t *testing.T) {
		edge, err := NewSimpleHyperEdge("e", "e", []string{"v1", "v2"}, WithTail("v2", "v3"),
			WithProperties(NewProperty("type", "linked")))
		require.NoError(t, err)

		rels := edge.Relationships()

		assert.Equal(t, []Relationship{
			NewRelationship("v1", "v2", true, "type"),
			NewRelationship("v1", "v3", true, "type"),
			NewRelationship("v2", "v3", true, "type"),
		}, rels)
	})

	t.Run("undirected edge reduces to unordered pairs", func(t *testing.T) {
		edge, err := NewSimpleHyperEdge("e", "e", []string{"a", "b", "c"})
		require.NoError(t, err)

		rels := edge.Relationships()

		require.Len(t, rels, 3)
		assert.Equal(t, "a", rels[0].Node1)
		assert.Equal(t, "b", rels[0].Node2)
		assert.False(t, rels[2].Directed)
	})
}
