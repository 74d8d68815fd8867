package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"hgdb/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports hypergraph data from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Hypergraph, error) {
	var graph domain.Hypergraph
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&graph); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if graph.Edges == nil {
		graph.Edges = make([]domain.SimpleHyperEdge, 0)
	}

	return &graph, nil
}

// Export exports hypergraph data to JSON
func (c *JSONCodec) Export(graph *domain.Hypergraph, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(graph); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
