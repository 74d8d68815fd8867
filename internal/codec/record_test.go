package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hgdb/internal/domain"
)

func friendship(t *testing.T) *domain.SimpleHyperEdge {
	t.Helper()
	edge, err := domain.NewSimpleHyperEdge("e1", "Friendship", []string{"v1", "v2"},
		domain.WithTail("v3"),
		domain.WithTraversable(true),
		domain.WithProperties(domain.NewProperty("type", "linked"), domain.NewProperty("since", "2019", "2020")),
	)
	require.NoError(t, err)
	return edge
}

func TestRecordRoundTrip(t *testing.T) {
	source := friendship(t)
	undirected, err := domain.NewSimpleHyperEdge("e2", "Group", []string{"v4", "v5"})
	require.NoError(t, err)

	t.Run("simple hyperedges", func(t *testing.T) {
		c := SimpleHyperEdgeRecord()
		for _, edge := range []*domain.SimpleHyperEdge{source, undirected} {
			data, err := c.Encode(edge)
			require.NoError(t, err)

			got, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, edge, got)
		}
	})

	t.Run("light hyperedge", func(t *testing.T) {
		light, err := domain.NewLightHyperEdge("l1", *source,
			domain.NewRelationship("v1", "v3", true, "type"),
			domain.Traverse{Path: []string{}},
			domain.StructuralProperty{Address: []string{"dc1", "rack4"}},
		)
		require.NoError(t, err)
		c := LightHyperEdgeRecord()

		data, err := c.Encode(light)
		require.NoError(t, err)
		got, err := c.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, light, got)
	})

	t.Run("dual hyperedge", func(t *testing.T) {
		dual := domain.NewDualHyperEdge(source)
		c := DualHyperEdgeRecord()

		data, err := c.Encode(dual)
		require.NoError(t, err)
		got, err := c.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, dual, got)
	})
}

func TestRecordFieldNames(t *testing.T) {
	data, err := SimpleHyperEdgeRecord().Encode(friendship(t))
	require.NoError(t, err)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &env))
	assert.JSONEq(t, `"simple_hyper_edge"`, string(env["kind"]))

	var record map[string]any
	require.NoError(t, json.Unmarshal(env["record"], &record))
	for _, field := range []string{"id", "name", "main_properties", "traversable", "directed", "head_hyper_nodes", "tail_hyper_nodes"} {
		assert.Contains(t, record, field)
	}
}

func TestRecordUndirectedTailIsNull(t *testing.T) {
	edge, err := domain.NewSimpleHyperEdge("e2", "e2", []string{"a"})
	require.NoError(t, err)

	data, err := SimpleHyperEdgeRecord().Encode(edge)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"tail_hyper_nodes":null`)
}

func TestRecordDecodeRejects(t *testing.T) {
	simple := SimpleHyperEdgeRecord()
	valid, err := simple.Encode(friendship(t))
	require.NoError(t, err)

	tampered := []byte(string(valid))
	for i := 0; i+4 <= len(tampered); i++ {
		if string(tampered[i:i+4]) == `"v1"` {
			copy(tampered[i:], `"v9"`)
			break
		}
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("not json")},
		{"wrong kind", mustEncode(t, DualHyperEdgeRecord(), domain.NewDualHyperEdge(friendship(t)))},
		{"unknown schema", []byte(`{"schema":99,"kind":"simple_hyper_edge","checksum":"0","record":{}}`)},
		{"checksum mismatch", tampered},
		{"bare record without envelope", []byte(`{"id":"e1","name":"x"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := simple.Decode(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestRecordDecodeRejectsUnknownFields(t *testing.T) {
	record := []byte(`{"id":"e1","name":"x","address":"abc"}`)
	data, err := json.Marshal(envelope{
		Schema:   SchemaVersion,
		Kind:     KindSimpleHyperEdge,
		Checksum: checksum(record),
		Record:   record,
	})
	require.NoError(t, err)

	_, err = SimpleHyperEdgeRecord().Decode(data)
	assert.Error(t, err)
}

func TestRecordEncodeNil(t *testing.T) {
	_, err := SimpleHyperEdgeRecord().Encode(nil)
	assert.Error(t, err)
}

func mustEncode[T any](t *testing.T, c *Record[T], v *T) []byte {
	t.Helper()
	data, err := c.Encode(v)
	require.NoError(t, err)
	return data
}
