package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hgdb/internal/apperror"
	"hgdb/internal/codec"
	"hgdb/internal/domain"
)

// Import strategies
const (
	// StrategyMerge upserts imported edges and keeps every other edge
	StrategyMerge = "merge"
	// StrategyReplace upserts imported edges and deletes every edge not imported
	StrategyReplace = "replace"
)

// EdgeService provides business logic for simple and light hyperedges
type EdgeService struct {
	stores   *Stores
	eventBus *EventBus
	logger   *zap.Logger
}

// NewEdgeService creates a new edge service
func NewEdgeService(stores *Stores, eventBus *EventBus, logger *zap.Logger) *EdgeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EdgeService{
		stores:   stores,
		eventBus: eventBus,
		logger:   logger.Named("edges"),
	}
}

// GetEdge retrieves a single simple hyperedge by key
func (s *EdgeService) GetEdge(ctx context.Context, key string) (*domain.SimpleHyperEdge, error) {
	edge, err := s.stores.Simple.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if edge == nil {
		return nil, apperror.NotFound(key).WithMessage("hyperedge not found")
	}
	return edge, nil
}

// ListEdges returns every decodable simple hyperedge
func (s *EdgeService) ListEdges(ctx context.Context) ([]domain.SimpleHyperEdge, error) {
	return s.stores.Simple.GetAll(ctx)
}

// CreateEdge validates and stores a new edge under its id. An empty id is
// replaced by a generated UUID.
func (s *EdgeService) CreateEdge(ctx context.Context, edge *domain.SimpleHyperEdge) error {
	if edge == nil {
		return apperror.Validationf("hyperedge is required")
	}
	if edge.ID == "" {
		edge.ID = uuid.NewString()
	}
	return s.PutEdge(ctx, edge.ID, edge)
}

// PutEdge validates edge and stores it under key, fully replacing any
// existing record. The edge id must match the key; an empty id takes the key.
func (s *EdgeService) PutEdge(ctx context.Context, key string, edge *domain.SimpleHyperEdge) error {
	if edge == nil {
		return apperror.Validationf("hyperedge is required")
	}
	if edge.ID == "" {
		edge.ID = key
	}
	if edge.ID != key {
		return apperror.Validationf("hyperedge id %q does not match key", edge.ID).WithKey(key)
	}
	if err := edge.Validate(); err != nil {
		return err
	}

	existing, err := s.stores.Simple.GetByKey(ctx, key)
	if err != nil && apperror.KindOf(err) != apperror.KindDeserialization {
		return err
	}

	if err := s.stores.Simple.Create(ctx, key, edge); err != nil {
		return err
	}

	eventType := EventEdgeCreated
	if existing != nil {
		eventType = EventEdgeUpdated
	}
	s.logger.Debug("hyperedge stored", zap.String("key", key), zap.String("event", string(eventType)))
	s.eventBus.Publish(Event{
		Type:    eventType,
		Payload: map[string]string{"edge_id": key},
	})
	return nil
}

// DeleteEdge removes an edge. Duals derived from it are left in place.
func (s *EdgeService) DeleteEdge(ctx context.Context, key string) error {
	if err := s.stores.Simple.Delete(ctx, key); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventEdgeDeleted,
		Payload: map[string]string{"edge_id": key},
	})
	return nil
}

// GetLightEdge retrieves a single light hyperedge by key
func (s *EdgeService) GetLightEdge(ctx context.Context, key string) (*domain.LightHyperEdge, error) {
	light, err := s.stores.Light.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if light == nil {
		return nil, apperror.NotFound(key).WithMessage("light hyperedge not found")
	}
	return light, nil
}

// ListLightEdges returns every decodable light hyperedge
func (s *EdgeService) ListLightEdges(ctx context.Context) ([]domain.LightHyperEdge, error) {
	return s.stores.Light.GetAll(ctx)
}

// PutLightEdge validates light and stores it under key
func (s *EdgeService) PutLightEdge(ctx context.Context, key string, light *domain.LightHyperEdge) error {
	if light == nil {
		return apperror.Validationf("light hyperedge is required")
	}
	if light.ID == "" {
		light.ID = key
	}
	if light.ID != key {
		return apperror.Validationf("light hyperedge id %q does not match key", light.ID).WithKey(key)
	}
	if err := light.Validate(); err != nil {
		return err
	}
	if err := s.stores.Light.Create(ctx, key, light); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventLightEdgeSaved,
		Payload: map[string]string{"light_edge_id": key},
	})
	return nil
}

// DeleteLightEdge removes a light hyperedge
func (s *EdgeService) DeleteLightEdge(ctx context.Context, key string) error {
	if err := s.stores.Light.Delete(ctx, key); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventLightEdgeDeleted,
		Payload: map[string]string{"light_edge_id": key},
	})
	return nil
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Strategy string `json:"strategy"`
	Created  int    `json:"created"`
	Updated  int    `json:"updated"`
	Deleted  int    `json:"deleted"`
}

// Import stores every edge of graph. The whole graph is validated before
// anything is written. Writes are not transactional: a storage failure part
// way through leaves the edges written so far in place.
func (s *EdgeService) Import(ctx context.Context, graph *domain.Hypergraph, strategy string) (*ImportResult, error) {
	if strategy == "" {
		strategy = StrategyMerge
	}
	if strategy != StrategyMerge && strategy != StrategyReplace {
		return nil, apperror.Validationf("unknown import strategy %q", strategy)
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.stores.Simple.Keys(ctx)
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(existing))
	for _, k := range existing {
		present[k] = true
	}

	result := &ImportResult{Strategy: strategy}
	imported := make(map[string]bool, len(graph.Edges))
	for i := range graph.Edges {
		edge := &graph.Edges[i]
		if err := s.stores.Simple.Create(ctx, edge.ID, edge); err != nil {
			return result, fmt.Errorf("import %s: %w", edge.ID, err)
		}
		imported[edge.ID] = true
		if present[edge.ID] {
			result.Updated++
		} else {
			result.Created++
		}
	}

	if strategy == StrategyReplace {
		for _, k := range existing {
			if imported[k] {
				continue
			}
			if err := s.stores.Simple.Delete(ctx, k); err != nil {
				return result, fmt.Errorf("import cleanup %s: %w", k, err)
			}
			result.Deleted++
		}
	}

	s.logger.Info("hypergraph imported",
		zap.String("name", graph.Name),
		zap.String("strategy", strategy),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("deleted", result.Deleted),
	)
	s.eventBus.Publish(Event{Type: EventGraphImported, Payload: result})
	return result, nil
}

// ImportFrom parses r in format and imports the result
func (s *EdgeService) ImportFrom(ctx context.Context, format string, r io.Reader, strategy string) (*ImportResult, error) {
	importer, _, ok := codec.ForFormat(format)
	if !ok {
		return nil, apperror.Validationf("unsupported format %q", format)
	}
	graph, err := importer.Parse(r)
	if err != nil {
		return nil, apperror.ErrDeserialization.WithMessage("failed to parse " + importer.Format()).WithInternal(err)
	}
	return s.Import(ctx, graph, strategy)
}

// Export collects every decodable simple hyperedge into a hypergraph
func (s *EdgeService) Export(ctx context.Context, name string) (*domain.Hypergraph, error) {
	edges, err := s.stores.Simple.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	graph := domain.NewHypergraph(name)
	for _, edge := range edges {
		graph.AddEdge(edge)
	}
	return graph, nil
}

// ExportTo writes every simple hyperedge to w in format
func (s *EdgeService) ExportTo(ctx context.Context, format, name string, w io.Writer) error {
	_, exporter, ok := codec.ForFormat(format)
	if !ok {
		return apperror.Validationf("unsupported format %q", format)
	}
	graph, err := s.Export(ctx, name)
	if err != nil {
		return err
	}
	if err := exporter.Export(graph, w); err != nil {
		return apperror.ErrSerialization.WithMessage("failed to write " + exporter.Format()).WithInternal(err)
	}
	return nil
}
