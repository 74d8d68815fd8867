package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hgdb/internal/codec"
	"hgdb/internal/config"
	"hgdb/internal/domain"
	"hgdb/internal/repository"
	"hgdb/internal/repository/sqlite"
)

// Stores holds one repository facade per entity kind
type Stores struct {
	Simple *repository.Repository[domain.SimpleHyperEdge]
	Light  *repository.Repository[domain.LightHyperEdge]
	Dual   *repository.Repository[domain.DualHyperEdge]
}

// OpenStores binds each entity kind to its own keyspace in db
func OpenStores(ctx context.Context, db *sqlite.DB, names config.KeyspacesConfig, logger *zap.Logger) (*Stores, error) {
	simple, err := db.Keyspace(ctx, names.Simple)
	if err != nil {
		return nil, fmt.Errorf("open simple keyspace: %w", err)
	}
	light, err := db.Keyspace(ctx, names.Light)
	if err != nil {
		return nil, fmt.Errorf("open light keyspace: %w", err)
	}
	dual, err := db.Keyspace(ctx, names.Dual)
	if err != nil {
		return nil, fmt.Errorf("open dual keyspace: %w", err)
	}

	return NewStores(simple, light, dual, logger), nil
}

// NewStores builds the facades over arbitrary gateways
func NewStores(simple, light, dual repository.Gateway, logger *zap.Logger) *Stores {
	return &Stores{
		Simple: repository.New[domain.SimpleHyperEdge](simple, codec.SimpleHyperEdgeRecord(), logger),
		Light:  repository.New[domain.LightHyperEdge](light, codec.LightHyperEdgeRecord(), logger),
		Dual:   repository.New[domain.DualHyperEdge](dual, codec.DualHyperEdgeRecord(), logger),
	}
}
