package domain

import (
	"slices"

	"hgdb/internal/apperror"
)

// SimpleHyperEdge connects a head node set to an optional tail node set.
//
// TailHyperNodes is nil for undirected edges and non-nil for directed ones;
// it encodes as JSON null when absent.
type SimpleHyperEdge struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	MainProperties []Property `json:"main_properties"`
	Traversable    bool       `json:"traversable"`
	Directed       bool       `json:"directed"`
	HeadHyperNodes []string   `json:"head_hyper_nodes"`
	TailHyperNodes *[]string  `json:"tail_hyper_nodes"`
}

// EdgeOption configures a SimpleHyperEdge under construction
type EdgeOption func(*SimpleHyperEdge)

// WithTail marks the edge directed with the given tail nodes
func WithTail(nodes ...string) EdgeOption {
	return func(e *SimpleHyperEdge) {
		tail := append([]string{}, nodes...)
		e.Directed = true
		e.TailHyperNodes = &tail
	}
}

// WithProperties sets the edge's main properties
func WithProperties(props ...Property) EdgeOption {
	return func(e *SimpleHyperEdge) {
		e.MainProperties = cloneProperties(props)
	}
}

// WithTraversable sets the traversable flag
func WithTraversable(traversable bool) EdgeOption {
	return func(e *SimpleHyperEdge) {
		e.Traversable = traversable
	}
}

// NewSimpleHyperEdge creates a validated hyperedge. Malformed input is
// rejected with a validation error, never coerced.
func NewSimpleHyperEdge(id, name string, head []string, opts ...EdgeOption) (*SimpleHyperEdge, error) {
	edge := &SimpleHyperEdge{
		ID:             id,
		Name:           name,
		MainProperties: []Property{},
		HeadHyperNodes: append([]string{}, head...),
	}
	for _, opt := range opts {
		opt(edge)
	}

	if err := edge.Validate(); err != nil {
		return nil, err
	}
	return edge, nil
}

// Validate checks that the edge is well-formed
func (e *SimpleHyperEdge) Validate() error {
	if e.ID == "" {
		return apperror.Validationf("id is required")
	}
	if len(e.HeadHyperNodes) == 0 {
		return apperror.Validationf("head_hyper_nodes must not be empty").WithKey(e.ID)
	}
	if err := validateNodeSet("head_hyper_nodes", e.HeadHyperNodes); err != nil {
		return err.WithKey(e.ID)
	}

	switch {
	case e.Directed && e.TailHyperNodes == nil:
		return apperror.Validationf("directed edge requires tail_hyper_nodes").WithKey(e.ID)
	case e.Directed && len(*e.TailHyperNodes) == 0:
		return apperror.Validationf("tail_hyper_nodes must not be empty for a directed edge").WithKey(e.ID)
	case !e.Directed && e.TailHyperNodes != nil:
		return apperror.Validationf("undirected edge must not carry tail_hyper_nodes").WithKey(e.ID)
	}
	if e.TailHyperNodes != nil {
		if err := validateNodeSet("tail_hyper_nodes", *e.TailHyperNodes); err != nil {
			return err.WithKey(e.ID)
		}
	}

	if err := validateProperties("main_properties", e.MainProperties); err != nil {
		return err
	}
	return nil
}

// validateNodeSet rejects empty and duplicate node ids within one set
func validateNodeSet(field string, nodes []string) *apperror.Error {
	seen := make(map[string]struct{}, len(nodes))
	for i, n := range nodes {
		if n == "" {
			return apperror.Validationf("%s[%d]: empty node id", field, i)
		}
		if _, dup := seen[n]; dup {
			return apperror.Validationf("%s: duplicate node %q", field, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Tail returns the tail node set, or nil when absent
func (e *SimpleHyperEdge) Tail() []string {
	if e.TailHyperNodes == nil {
		return nil
	}
	return *e.TailHyperNodes
}

// Nodes returns the edge's node universe: head first, then tail, with
// duplicates removed by first occurrence
func (e *SimpleHyperEdge) Nodes() []string {
	tail := e.Tail()
	nodes := make([]string, 0, len(e.HeadHyperNodes)+len(tail))
	seen := make(map[string]struct{}, cap(nodes))
	for _, set := range [][]string{e.HeadHyperNodes, tail} {
		for _, n := range set {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Incident reports whether node is a head or tail member of the edge
func (e *SimpleHyperEdge) Incident(node string) bool {
	return slices.Contains(e.HeadHyperNodes, node) || slices.Contains(e.Tail(), node)
}

// Property looks up a main property by key
func (e *SimpleHyperEdge) Property(key string) (Property, bool) {
	for _, p := range e.MainProperties {
		if p.Key == key {
			return p, true
		}
	}
	return Property{}, false
}

// Clone returns a deep copy of the edge
func (e *SimpleHyperEdge) Clone() SimpleHyperEdge {
	out := *e
	out.MainProperties = cloneProperties(e.MainProperties)
	out.HeadHyperNodes = slices.Clone(e.HeadHyperNodes)
	out.TailHyperNodes = cloneNodeSet(e.TailHyperNodes)
	return out
}

// Equal reports whether two edges are structurally identical
func (e *SimpleHyperEdge) Equal(other *SimpleHyperEdge) bool {
	if other == nil {
		return false
	}
	return e.ID == other.ID &&
		e.Name == other.Name &&
		e.Traversable == other.Traversable &&
		e.Directed == other.Directed &&
		propertiesEqual(e.MainProperties, other.MainProperties) &&
		slices.Equal(e.HeadHyperNodes, other.HeadHyperNodes) &&
		nodeSetEqual(e.TailHyperNodes, other.TailHyperNodes)
}

// Relationships reduces the hyperedge to pairwise relationships: head×tail
// for a directed edge, every unordered head pair for an undirected one.
// Self-pairs are skipped. Each relationship carries the edge's property keys.
func (e *SimpleHyperEdge) Relationships() []Relationship {
	keys := make([]string, 0, len(e.MainProperties))
	for _, p := range e.MainProperties {
		keys = append(keys, p.Key)
	}

	var rels []Relationship
	if e.Directed {
		for _, h := range e.HeadHyperNodes {
			for _, t := range e.Tail() {
				if h == t {
					continue
				}
				rels = append(rels, NewRelationship(h, t, true, keys...))
			}
		}
		return rels
	}

	for i, a := range e.HeadHyperNodes {
		for _, b := range e.HeadHyperNodes[i+1:] {
			rels = append(rels, NewRelationship(a, b, false, keys...))
		}
	}
	return rels
}

func cloneNodeSet(nodes *[]string) *[]string {
	if nodes == nil {
		return nil
	}
	out := slices.Clone(*nodes)
	return &out
}

func nodeSetEqual(a, b *[]string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return slices.Equal(*a, *b)
}
