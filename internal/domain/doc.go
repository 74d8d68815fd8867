// Package domain defines the hypergraph record types and the pure
// computations over them.
//
// # Core Types
//
// SimpleHyperEdge connects a non-empty head node set to an optional tail
// node set. The tail is present iff the edge is directed. Nodes are opaque
// string ids; no node entity is persisted.
//
// LightHyperEdge owns one SimpleHyperEdge plus structural metadata, a
// pairwise Relationship view and a Traverse path.
//
// DualHyperEdge is derived from a SimpleHyperEdge. Its id is
// "dual_" + source id and it keeps a copy of the source for provenance.
//
// # Incidence
//
// Incidence builds the k×m node×hyperedge boolean matrix for a caller-ordered
// node universe and edge list. Transpose flips it to the edge-centric view.
// DeriveDualHypergraph uses the transpose to compute the node-centric dual of
// a set of edges.
//
// # Validation
//
// Constructors and Validate methods reject malformed records with an
// apperror.KindValidation error. Nothing is deduplicated or coerced
// silently.
//
// This package has no storage or encoding dependencies.
package domain
