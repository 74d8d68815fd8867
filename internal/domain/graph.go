package domain

// NodeDual is one hyperedge of the node-centric dual hypergraph: an original
// node together with the ids of the original edges incident to it
type NodeDual struct {
	Node  string   `json:"node"`
	Edges []string `json:"edges"`
}

// DualHypergraph is the node-centric dual of a set of hyperedges. In the
// dual, original nodes become hyperedges and original edges become nodes.
type DualHypergraph struct {
	Nodes      []string        `json:"nodes"`
	EdgeIDs    []string        `json:"edge_ids"`
	Incidence  IncidenceMatrix `json:"incidence"`
	Transposed IncidenceMatrix `json:"transposed"`
	Duals      []NodeDual      `json:"duals"`
}

// DeriveDualHypergraph computes the node-centric dual of edges. The node
// universe is the union of every edge's nodes in edge order, first
// occurrence wins. Dual membership is read off the transposed incidence
// matrix: column i of M' lists the edges incident to node i.
func DeriveDualHypergraph(edges []SimpleHyperEdge) *DualHypergraph {
	nodes := UnionNodes(edges)
	ids := make([]string, len(edges))
	for j := range edges {
		ids[j] = edges[j].ID
	}

	m := Incidence(nodes, edges)
	mt := m.Transpose()

	duals := make([]NodeDual, 0, len(nodes))
	for i, node := range nodes {
		members := make([]string, 0)
		for j, incident := range mt.Column(i) {
			if incident {
				members = append(members, ids[j])
			}
		}
		duals = append(duals, NodeDual{Node: node, Edges: members})
	}

	return &DualHypergraph{
		Nodes:      nodes,
		EdgeIDs:    ids,
		Incidence:  m,
		Transposed: mt,
		Duals:      duals,
	}
}

// UnionNodes returns every node of edges in edge order, deduplicated by
// first occurrence
func UnionNodes(edges []SimpleHyperEdge) []string {
	nodes := make([]string, 0)
	seen := make(map[string]struct{})
	for j := range edges {
		for _, n := range edges[j].Nodes() {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			nodes = append(nodes, n)
		}
	}
	return nodes
}
