package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"hgdb/internal/apperror"
)

// KV is one stored entry
type KV struct {
	Key   []byte
	Value []byte
}

// Gateway is the byte-oriented key-value contract of the embedded engine.
// Get returns nil, nil for an absent key. Delete of an absent key is not an
// error. Scan returns every entry from the start of the keyspace in key order.
type Gateway interface {
	Put(ctx context.Context, key, value []byte) error
	Get(ctx context.Context, key []byte) ([]byte, error)
	Delete(ctx context.Context, key []byte) error
	Scan(ctx context.Context) ([]KV, error)
}

// Codec converts one entity kind to and from stored bytes
type Codec[T any] interface {
	Kind() string
	Encode(v *T) ([]byte, error)
	Decode(data []byte) (*T, error)
}

// Repository maps one entity kind onto a Gateway, at most one encoded
// record per key
type Repository[T any] struct {
	gw     Gateway
	codec  Codec[T]
	logger *zap.Logger
}

// New creates a repository facade. A nil logger discards log output.
func New[T any](gw Gateway, codec Codec[T], logger *zap.Logger) *Repository[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository[T]{
		gw:     gw,
		codec:  codec,
		logger: logger.Named("repository").With(zap.String("kind", codec.Kind())),
	}
}

// Create stores entity under key, silently replacing any existing record
func (r *Repository[T]) Create(ctx context.Context, key string, entity *T) error {
	if key == "" {
		return apperror.Validationf("key is required")
	}

	data, err := r.codec.Encode(entity)
	if err != nil {
		r.logger.Error("serialization failed", zap.String("key", key), zap.Error(err))
		return apperror.ErrSerialization.WithKey(key).WithInternal(err)
	}

	if err := r.gw.Put(ctx, []byte(key), data); err != nil {
		return storageError(key, err)
	}
	return nil
}

// Update fully replaces the record under key. It is identical to Create.
func (r *Repository[T]) Update(ctx context.Context, key string, entity *T) error {
	return r.Create(ctx, key, entity)
}

// GetByKey loads the record under key. It returns nil, nil when the key is
// absent and a deserialization error when the stored bytes do not decode.
func (r *Repository[T]) GetByKey(ctx context.Context, key string) (*T, error) {
	if key == "" {
		return nil, apperror.Validationf("key is required")
	}

	data, err := r.gw.Get(ctx, []byte(key))
	if err != nil {
		return nil, storageError(key, err)
	}
	if data == nil {
		return nil, nil
	}

	entity, err := r.codec.Decode(data)
	if err != nil {
		r.logger.Error("deserialization failed", zap.String("key", key), zap.Error(err))
		return nil, apperror.ErrDeserialization.WithKey(key).WithInternal(err)
	}
	return entity, nil
}

// Delete removes the record under key. Deleting an absent key succeeds.
func (r *Repository[T]) Delete(ctx context.Context, key string) error {
	if key == "" {
		return apperror.Validationf("key is required")
	}
	if err := r.gw.Delete(ctx, []byte(key)); err != nil {
		return storageError(key, err)
	}
	return nil
}

// GetAll scans the whole keyspace. Entries that do not decode as this
// repository's kind are logged and skipped, so the result is best-effort
// when the keyspace is shared. A gateway failure aborts the scan.
func (r *Repository[T]) GetAll(ctx context.Context) ([]T, error) {
	entries, err := r.gw.Scan(ctx)
	if err != nil {
		r.logger.Error("scan failed", zap.Error(err))
		return nil, storageError("", err)
	}

	out := make([]T, 0, len(entries))
	for _, kv := range entries {
		entity, err := r.codec.Decode(kv.Value)
		if err != nil {
			r.logger.Warn("skipping undecodable record",
				zap.ByteString("key", kv.Key),
				zap.Error(err),
			)
			continue
		}
		out = append(out, *entity)
	}
	return out, nil
}

// Keys lists every key in the keyspace, decodable or not
func (r *Repository[T]) Keys(ctx context.Context) ([]string, error) {
	entries, err := r.gw.Scan(ctx)
	if err != nil {
		return nil, storageError("", err)
	}
	keys := make([]string, 0, len(entries))
	for _, kv := range entries {
		keys = append(keys, string(kv.Key))
	}
	return keys, nil
}

// storageError wraps a gateway failure, keeping an existing app error as is
func storageError(key string, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}
	e := apperror.ErrStorage.WithInternal(err)
	if key != "" {
		e = e.WithKey(key)
	}
	return e
}
