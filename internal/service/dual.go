package service

import (
	"context"

	"go.uber.org/zap"

	"hgdb/internal/apperror"
	"hgdb/internal/domain"
)

// DualSynthesis is the outcome of synthesizing one dual: the stored record
// plus the incidence relation it was derived from
type DualSynthesis struct {
	Dual       *domain.DualHyperEdge  `json:"dual"`
	Nodes      []string               `json:"nodes"`
	Incidence  domain.IncidenceMatrix `json:"incidence"`
	Transposed domain.IncidenceMatrix `json:"transposed"`
}

// DualService synthesizes dual records and dual hypergraphs
type DualService struct {
	stores   *Stores
	eventBus *EventBus
	logger   *zap.Logger
}

// NewDualService creates a new dual service
func NewDualService(stores *Stores, eventBus *EventBus, logger *zap.Logger) *DualService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DualService{
		stores:   stores,
		eventBus: eventBus,
		logger:   logger.Named("dual"),
	}
}

// CreateDual loads the edge stored under sourceKey, derives its dual and
// stores it under "dual_" + source id. A missing source fails with a not
// found error and writes nothing. Reading the source and writing the dual
// are not atomic.
func (s *DualService) CreateDual(ctx context.Context, sourceKey string) (*DualSynthesis, error) {
	source, err := s.stores.Simple.GetByKey(ctx, sourceKey)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, apperror.NotFound(sourceKey).WithMessage("source hyperedge not found")
	}
	if err := source.Validate(); err != nil {
		return nil, err
	}

	nodes := source.Nodes()
	m := domain.Incidence(nodes, []domain.SimpleHyperEdge{*source})
	mt := m.Transpose()

	dual := domain.NewDualHyperEdge(source)
	if err := dual.Validate(); err != nil {
		return nil, err
	}
	if err := s.stores.Dual.Create(ctx, dual.ID, dual); err != nil {
		return nil, err
	}

	s.logger.Info("dual synthesized",
		zap.String("source", source.ID),
		zap.String("dual", dual.ID),
		zap.Int("nodes", len(nodes)),
	)
	s.eventBus.Publish(Event{
		Type:    EventDualCreated,
		Payload: map[string]string{"dual_id": dual.ID, "source_id": source.ID},
	})

	return &DualSynthesis{
		Dual:       dual,
		Nodes:      nodes,
		Incidence:  m,
		Transposed: mt,
	}, nil
}

// GetDual retrieves a dual record by its own key
func (s *DualService) GetDual(ctx context.Context, key string) (*domain.DualHyperEdge, error) {
	dual, err := s.stores.Dual.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if dual == nil {
		return nil, apperror.NotFound(key).WithMessage("dual hyperedge not found")
	}
	return dual, nil
}

// GetDualOf retrieves the dual derived from the edge with sourceID
func (s *DualService) GetDualOf(ctx context.Context, sourceID string) (*domain.DualHyperEdge, error) {
	return s.GetDual(ctx, domain.DualID(sourceID))
}

// ListDuals returns every decodable dual record
func (s *DualService) ListDuals(ctx context.Context) ([]domain.DualHyperEdge, error) {
	return s.stores.Dual.GetAll(ctx)
}

// DeleteDual removes a dual record. The source edge is left in place.
func (s *DualService) DeleteDual(ctx context.Context, key string) error {
	if err := s.stores.Dual.Delete(ctx, key); err != nil {
		return err
	}
	s.eventBus.Publish(Event{
		Type:    EventDualDeleted,
		Payload: map[string]string{"dual_id": key},
	})
	return nil
}

// loadEdges resolves every key, failing on the first one that is absent
func (s *DualService) loadEdges(ctx context.Context, keys []string) ([]domain.SimpleHyperEdge, error) {
	edges := make([]domain.SimpleHyperEdge, 0, len(keys))
	for _, key := range keys {
		edge, err := s.stores.Simple.GetByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if edge == nil {
			return nil, apperror.NotFound(key).WithMessage("hyperedge not found")
		}
		edges = append(edges, *edge)
	}
	return edges, nil
}

// IncidenceResult is a node×hyperedge matrix with its axes
type IncidenceResult struct {
	Nodes      []string               `json:"nodes"`
	EdgeIDs    []string               `json:"edge_ids"`
	Incidence  domain.IncidenceMatrix `json:"incidence"`
	Transposed domain.IncidenceMatrix `json:"transposed"`
}

// Incidence builds the matrix between nodes and the stored edges named by
// edgeKeys, in the order given. When nodes is empty the union of the edges'
// nodes is used.
func (s *DualService) Incidence(ctx context.Context, nodes, edgeKeys []string) (*IncidenceResult, error) {
	edges, err := s.loadEdges(ctx, edgeKeys)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		nodes = domain.UnionNodes(edges)
	}

	ids := make([]string, len(edges))
	for j := range edges {
		ids[j] = edges[j].ID
	}

	m := domain.Incidence(nodes, edges)
	return &IncidenceResult{
		Nodes:      nodes,
		EdgeIDs:    ids,
		Incidence:  m,
		Transposed: m.Transpose(),
	}, nil
}

// DualHypergraph derives the node-centric dual of the stored edges named by
// edgeKeys. An empty key list selects every stored edge.
func (s *DualService) DualHypergraph(ctx context.Context, edgeKeys []string) (*domain.DualHypergraph, error) {
	var (
		edges []domain.SimpleHyperEdge
		err   error
	)
	if len(edgeKeys) == 0 {
		edges, err = s.stores.Simple.GetAll(ctx)
	} else {
		edges, err = s.loadEdges(ctx, edgeKeys)
	}
	if err != nil {
		return nil, err
	}
	return domain.DeriveDualHypergraph(edges), nil
}
