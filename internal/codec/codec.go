// Package codec converts hypergraph records to and from bytes.
//
// Record encodes a single entity for the key-value store inside a versioned
// envelope. The JSON and YAML codecs import and export whole hypergraphs.
package codec

import (
	"io"

	"hgdb/internal/domain"
)

// Importer interface for importing hypergraph data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Hypergraph, error)
	Format() string
}

// Exporter interface for exporting hypergraph data to various formats
type Exporter interface {
	Export(graph *domain.Hypergraph, w io.Writer) error
	Format() string
}

// ForFormat returns the import/export codec registered for format
func ForFormat(format string) (Importer, Exporter, bool) {
	switch format {
	case "json":
		c := NewJSONCodec()
		return c, c, true
	case "yaml", "yml":
		c := NewYAMLCodec()
		return c, c, true
	}
	return nil, nil, false
}
