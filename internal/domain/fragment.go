package domain

import "hgdb/internal/apperror"

// Hypergraph is a set of hyperedges used for bulk import/export
type Hypergraph struct {
	Name  string            `json:"name,omitempty"`
	Edges []SimpleHyperEdge `json:"hyperedges"`
}

// NewHypergraph creates an empty hypergraph
func NewHypergraph(name string) *Hypergraph {
	return &Hypergraph{
		Name:  name,
		Edges: make([]SimpleHyperEdge, 0),
	}
}

// AddEdge adds an edge to the hypergraph
func (g *Hypergraph) AddEdge(edge SimpleHyperEdge) {
	g.Edges = append(g.Edges, edge)
}

// Validate validates every edge and rejects duplicate edge ids
func (g *Hypergraph) Validate() error {
	seen := make(map[string]struct{}, len(g.Edges))
	for i := range g.Edges {
		if err := g.Edges[i].Validate(); err != nil {
			return err
		}
		if _, dup := seen[g.Edges[i].ID]; dup {
			return apperror.Validationf("duplicate hyperedge id").WithKey(g.Edges[i].ID)
		}
		seen[g.Edges[i].ID] = struct{}{}
	}
	return nil
}
