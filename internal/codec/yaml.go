package codec

import (
	"fmt"
	"io"

	"hgdb/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export of hypergraphs
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlHypergraph represents the YAML structure for a hypergraph
type yamlHypergraph struct {
	Name       string     `yaml:"name,omitempty"`
	Hyperedges []yamlEdge `yaml:"hyperedges"`
}

type yamlEdge struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Traversable    bool           `yaml:"traversable"`
	Directed       bool           `yaml:"directed"`
	HeadHyperNodes []string       `yaml:"head_hyper_nodes,flow"`
	TailHyperNodes *[]string      `yaml:"tail_hyper_nodes,omitempty,flow"`
	MainProperties []yamlProperty `yaml:"main_properties,omitempty"`
}

type yamlProperty struct {
	Key   string   `yaml:"key"`
	Value []string `yaml:"value,flow"`
}

// Parse imports hypergraph data from YAML. A directed edge without an
// explicit tail keeps a nil tail so validation reports it.
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Hypergraph, error) {
	var yg yamlHypergraph
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&yg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	graph := domain.NewHypergraph(yg.Name)
	for _, ye := range yg.Hyperedges {
		edge := domain.SimpleHyperEdge{
			ID:             ye.ID,
			Name:           ye.Name,
			MainProperties: make([]domain.Property, 0, len(ye.MainProperties)),
			Traversable:    ye.Traversable,
			Directed:       ye.Directed,
			HeadHyperNodes: ye.HeadHyperNodes,
			TailHyperNodes: ye.TailHyperNodes,
		}
		for _, yp := range ye.MainProperties {
			edge.MainProperties = append(edge.MainProperties, domain.NewProperty(yp.Key, yp.Value...))
		}
		graph.AddEdge(edge)
	}

	return graph, nil
}

// Export exports hypergraph data to YAML
func (c *YAMLCodec) Export(graph *domain.Hypergraph, w io.Writer) error {
	yg := yamlHypergraph{
		Name:       graph.Name,
		Hyperedges: make([]yamlEdge, 0, len(graph.Edges)),
	}

	for _, edge := range graph.Edges {
		ye := yamlEdge{
			ID:             edge.ID,
			Name:           edge.Name,
			Traversable:    edge.Traversable,
			Directed:       edge.Directed,
			HeadHyperNodes: edge.HeadHyperNodes,
			TailHyperNodes: edge.TailHyperNodes,
		}
		for _, p := range edge.MainProperties {
			ye.MainProperties = append(ye.MainProperties, yamlProperty{Key: p.Key, Value: p.Value})
		}
		yg.Hyperedges = append(yg.Hyperedges, ye)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yg); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
