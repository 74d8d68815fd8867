package domain

import (
	"slices"
	"strings"

	"hgdb/internal/apperror"
)

const (
	// DualIDPrefix prefixes the id of a dual derived from a source edge
	DualIDPrefix = "dual_"
	// DualNamePrefix prefixes the name of a dual derived from a source edge
	DualNamePrefix = "Dual of "
)

// DualHyperEdge is the edge-centric record derived from a SimpleHyperEdge.
// The source edge is retained for provenance; its main properties are
// re-interpreted as dual properties.
type DualHyperEdge struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SimpleHyperEdge SimpleHyperEdge `json:"simple_hyper_edge"`
	DualProperties  []Property      `json:"dual_properties"`
	Traversable     bool            `json:"traversable"`
	HeadHyperNodes  []string        `json:"head_hyper_nodes"`
	TailHyperNodes  *[]string       `json:"tail_hyper_nodes"`
}

// DualID returns the id of the dual derived from sourceID
func DualID(sourceID string) string {
	return DualIDPrefix + sourceID
}

// SourceID strips the dual prefix from id; ok is false if id is not a dual id
func SourceID(id string) (string, bool) {
	return strings.CutPrefix(id, DualIDPrefix)
}

// NewDualHyperEdge derives the dual record of source. All sequences are
// copied, so the dual shares no memory with source.
func NewDualHyperEdge(source *SimpleHyperEdge) *DualHyperEdge {
	return &DualHyperEdge{
		ID:              DualID(source.ID),
		Name:            DualNamePrefix + source.Name,
		SimpleHyperEdge: source.Clone(),
		DualProperties:  cloneProperties(source.MainProperties),
		Traversable:     source.Traversable,
		HeadHyperNodes:  slices.Clone(source.HeadHyperNodes),
		TailHyperNodes:  cloneNodeSet(source.TailHyperNodes),
	}
}

// Validate checks the dual against the source it claims to derive from:
// head, tail, traversable flag and dual properties must all match it.
func (d *DualHyperEdge) Validate() error {
	source := &d.SimpleHyperEdge
	if err := source.Validate(); err != nil {
		return err
	}
	if d.ID != DualID(source.ID) {
		return apperror.Validationf("dual id must be %q", DualID(source.ID)).WithKey(d.ID)
	}
	if !slices.Equal(d.HeadHyperNodes, source.HeadHyperNodes) {
		return apperror.Validationf("head_hyper_nodes must match the source edge").WithKey(d.ID)
	}
	if !nodeSetEqual(d.TailHyperNodes, source.TailHyperNodes) {
		return apperror.Validationf("tail_hyper_nodes must match the source edge").WithKey(d.ID)
	}
	if d.Traversable != source.Traversable {
		return apperror.Validationf("traversable must match the source edge").WithKey(d.ID)
	}
	if !propertiesEqual(d.DualProperties, source.MainProperties) {
		return apperror.Validationf("dual_properties must match the source edge's main_properties").WithKey(d.ID)
	}
	return nil
}

// Nodes returns the dual's node universe: head first, then tail, deduplicated
func (d *DualHyperEdge) Nodes() []string {
	e := SimpleHyperEdge{HeadHyperNodes: d.HeadHyperNodes, TailHyperNodes: d.TailHyperNodes}
	return e.Nodes()
}
