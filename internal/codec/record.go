package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"hgdb/internal/domain"
)

// SchemaVersion is the current record envelope version
const SchemaVersion = 1

// Record kinds stored in the envelope
const (
	KindSimpleHyperEdge = "simple_hyper_edge"
	KindLightHyperEdge  = "light_hyper_edge"
	KindDualHyperEdge   = "dual_hyper_edge"
)

// envelope wraps every stored record. The checksum is the xxhash64 of the
// record bytes exactly as stored.
type envelope struct {
	Schema   int             `json:"schema"`
	Kind     string          `json:"kind"`
	Checksum string          `json:"checksum"`
	Record   json.RawMessage `json:"record"`
}

// Record encodes and decodes one entity kind. Decoding is strict: a payload
// whose kind, schema version or checksum does not match, or whose record
// carries unknown fields, is rejected.
type Record[T any] struct {
	kind string
}

// NewRecord creates a record codec for kind
func NewRecord[T any](kind string) *Record[T] {
	return &Record[T]{kind: kind}
}

// SimpleHyperEdgeRecord returns the codec for SimpleHyperEdge records
func SimpleHyperEdgeRecord() *Record[domain.SimpleHyperEdge] {
	return NewRecord[domain.SimpleHyperEdge](KindSimpleHyperEdge)
}

// LightHyperEdgeRecord returns the codec for LightHyperEdge records
func LightHyperEdgeRecord() *Record[domain.LightHyperEdge] {
	return NewRecord[domain.LightHyperEdge](KindLightHyperEdge)
}

// DualHyperEdgeRecord returns the codec for DualHyperEdge records
func DualHyperEdgeRecord() *Record[domain.DualHyperEdge] {
	return NewRecord[domain.DualHyperEdge](KindDualHyperEdge)
}

// Kind returns the record kind
func (c *Record[T]) Kind() string {
	return c.kind
}

// Encode serializes v into an envelope
func (c *Record[T]) Encode(v *T) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("encode %s: nil record", c.kind)
	}
	record, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.kind, err)
	}

	data, err := json.Marshal(envelope{
		Schema:   SchemaVersion,
		Kind:     c.kind,
		Checksum: checksum(record),
		Record:   record,
	})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", c.kind, err)
	}
	return data, nil
}

// Decode parses an envelope produced by Encode
func (c *Record[T]) Decode(data []byte) (*T, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Schema != SchemaVersion {
		return nil, fmt.Errorf("unsupported schema version %d (want %d)", env.Schema, SchemaVersion)
	}
	if env.Kind != c.kind {
		return nil, fmt.Errorf("record kind %q, want %q", env.Kind, c.kind)
	}
	if got := checksum(env.Record); got != env.Checksum {
		return nil, fmt.Errorf("checksum mismatch: stored %s, computed %s", env.Checksum, got)
	}

	var v T
	decoder := json.NewDecoder(bytes.NewReader(env.Record))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.kind, err)
	}
	return &v, nil
}

func checksum(b []byte) string {
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}
