package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hgdb/internal/domain"
)

func sampleGraph(t *testing.T) *domain.Hypergraph {
	t.Helper()
	g := domain.NewHypergraph("test_simple")
	g.AddEdge(*friendship(t))

	undirected, err := domain.NewSimpleHyperEdge("e2", "e2", []string{"v4", "v5"},
		domain.WithProperties(domain.NewProperty("type", "not-linked")))
	require.NoError(t, err)
	g.AddEdge(*undirected)
	return g
}

func TestBulkCodecRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			importer, exporter, ok := ForFormat(format)
			require.True(t, ok)
			graph := sampleGraph(t)

			var buf bytes.Buffer
			require.NoError(t, exporter.Export(graph, &buf))

			parsed, err := importer.Parse(&buf)
			require.NoError(t, err)
			assert.Equal(t, graph, parsed)
		})
	}
}

func TestForFormatUnknown(t *testing.T) {
	_, _, ok := ForFormat("xml")
	assert.False(t, ok)
}

func TestYAMLParse(t *testing.T) {
	doc := `
name: social
hyperedges:
  - id: e1
    name: Friendship
    traversable: true
    directed: true
    head_hyper_nodes: [v1, v2]
    tail_hyper_nodes: [v3]
    main_properties:
      - key: type
        value: [linked]
  - id: e2
    name: Group
    head_hyper_nodes: [v4]
`
	graph, err := NewYAMLCodec().Parse(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, graph.Edges, 2)
	assert.Equal(t, "social", graph.Name)
	assert.Equal(t, []string{"v3"}, graph.Edges[0].Tail())
	assert.Nil(t, graph.Edges[1].TailHyperNodes)
	assert.NoError(t, graph.Validate())
}

func TestYAMLParseDirectedWithoutTailFailsValidation(t *testing.T) {
	doc := `
hyperedges:
  - id: e1
    name: broken
    directed: true
    head_hyper_nodes: [v1]
`
	graph, err := NewYAMLCodec().Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Error(t, graph.Validate())
}

func TestYAMLParseUnknownField(t *testing.T) {
	_, err := NewYAMLCodec().Parse(strings.NewReader("hyperedges:\n  - id: e1\n    address: abc\n"))
	assert.Error(t, err)
}

func TestJSONParseInvalid(t *testing.T) {
	_, err := NewJSONCodec().Parse(strings.NewReader("{"))
	assert.Error(t, err)
}
