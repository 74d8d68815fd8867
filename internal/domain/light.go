package domain

import (
	"slices"

	"hgdb/internal/apperror"
)

// Relationship is a pairwise reduction of a hyperedge to a binary edge
type Relationship struct {
	Node1          string   `json:"node_1"`
	Node2          string   `json:"node_2"`
	EdgeProperties []string `json:"edge_properties"`
	Directed       bool     `json:"directed"`
}

// NewRelationship creates a relationship between two nodes
func NewRelationship(node1, node2 string, directed bool, edgeProperties ...string) Relationship {
	return Relationship{
		Node1:          node1,
		Node2:          node2,
		EdgeProperties: append([]string{}, edgeProperties...),
		Directed:       directed,
	}
}

// Reverse swaps the endpoints. Reversing an undirected relationship yields
// an equivalent relationship.
func (r Relationship) Reverse() Relationship {
	return Relationship{
		Node1:          r.Node2,
		Node2:          r.Node1,
		EdgeProperties: slices.Clone(r.EdgeProperties),
		Directed:       r.Directed,
	}
}

// StructuralProperty is free-form, order-significant location metadata
type StructuralProperty struct {
	Address []string `json:"address"`
}

// Traverse is an ordered node/edge path, possibly empty
type Traverse struct {
	Path []string `json:"path"`
}

// LightHyperEdge owns one SimpleHyperEdge plus auxiliary metadata
type LightHyperEdge struct {
	ID                   string               `json:"id"`
	SimpleHyperEdge      SimpleHyperEdge      `json:"simple_hyper_edge"`
	StructuralProperties []StructuralProperty `json:"structural_properties"`
	Relationship         Relationship         `json:"relationship"`
	Traverse             Traverse             `json:"traverse"`
}

// NewLightHyperEdge creates a validated light hyperedge
func NewLightHyperEdge(id string, edge SimpleHyperEdge, rel Relationship, traverse Traverse, structural ...StructuralProperty) (*LightHyperEdge, error) {
	light := &LightHyperEdge{
		ID:                   id,
		SimpleHyperEdge:      edge.Clone(),
		StructuralProperties: append([]StructuralProperty{}, structural...),
		Relationship:         rel,
		Traverse:             traverse,
	}
	if err := light.Validate(); err != nil {
		return nil, err
	}
	return light, nil
}

// Validate checks the light edge and the hyperedge it owns
func (l *LightHyperEdge) Validate() error {
	if l.ID == "" {
		return apperror.Validationf("id is required")
	}
	if err := l.SimpleHyperEdge.Validate(); err != nil {
		return err
	}
	if l.Relationship.Node1 == "" || l.Relationship.Node2 == "" {
		return apperror.Validationf("relationship requires node_1 and node_2").WithKey(l.ID)
	}
	return nil
}
