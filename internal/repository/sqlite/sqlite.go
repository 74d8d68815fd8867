package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"hgdb/internal/apperror"
	"hgdb/internal/repository"

	_ "modernc.org/sqlite"
)

// DB is one SQLite database file holding any number of keyspaces
type DB struct {
	db     *sql.DB
	path   string
	logger *zap.Logger

	mu        sync.Mutex
	keyspaces map[string]*Keyspace
}

// Open opens or creates the database at path. Missing parent directories are
// created. Any failure is reported as a storage open error.
func Open(ctx context.Context, path string, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("sqlite")

	if path == "" {
		return nil, openError(path, fmt.Errorf("empty database path"))
	}

	if !isMemory(path) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, openError(path, err)
			}
		}
	}

	// Pragmas travel in the DSN so every pooled connection applies them
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, openError(path, err)
	}

	// Every connection to ":memory:" is a separate database
	if isMemory(path) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, openError(path, err)
	}

	logger.Debug("database opened", zap.String("path", path))

	return &DB{
		db:        db,
		path:      path,
		logger:    logger,
		keyspaces: make(map[string]*Keyspace),
	}, nil
}

// Keyspace returns the named keyspace, creating its table on first use
func (d *DB) Keyspace(ctx context.Context, name string) (*Keyspace, error) {
	if err := validateKeyspaceName(name); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if ks, ok := d.keyspaces[name]; ok {
		return ks, nil
	}

	table := tableName(name)
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		key BLOB PRIMARY KEY,
		value BLOB NOT NULL
	) WITHOUT ROWID`, table)

	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return nil, apperror.ErrStorage.WithMessage("failed to create keyspace " + name).WithInternal(err)
	}

	ks := &Keyspace{
		db:    d.db,
		name:  name,
		table: table,
	}
	d.keyspaces[name] = ks
	d.logger.Debug("keyspace ready", zap.String("keyspace", name))
	return ks, nil
}

// Path returns the path the database was opened with
func (d *DB) Path() string {
	return d.path
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Keyspace is an independent key-value namespace backed by one table.
// It implements repository.Gateway.
type Keyspace struct {
	db    *sql.DB
	name  string
	table string
}

var _ repository.Gateway = (*Keyspace)(nil)

// Name returns the keyspace name
func (k *Keyspace) Name() string {
	return k.name
}

// Put stores value under key, replacing any existing value
func (k *Keyspace) Put(ctx context.Context, key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, k.table)

	if _, err := k.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("put %s/%s: %w", k.name, key, err)
	}
	return nil
}

// Get returns the value under key, or nil if the key is absent
func (k *Keyspace) Get(ctx context.Context, key []byte) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, k.table)

	var value []byte
	err := k.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", k.name, key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Delete removes key. Removing an absent key is not an error.
func (k *Keyspace) Delete(ctx context.Context, key []byte) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, k.table)
	if _, err := k.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete %s/%s: %w", k.name, key, err)
	}
	return nil
}

// Scan returns every entry in key order
func (k *Keyspace) Scan(ctx context.Context) ([]repository.KV, error) {
	query := fmt.Sprintf(`SELECT key, value FROM %s ORDER BY key`, k.table)

	rows, err := k.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", k.name, err)
	}
	defer rows.Close()

	var entries []repository.KV
	for rows.Next() {
		var kv repository.KV
		if err := rows.Scan(&kv.Key, &kv.Value); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", k.name, err)
		}
		entries = append(entries, kv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", k.name, err)
	}
	return entries, nil
}

// Len returns the number of entries in the keyspace
func (k *Keyspace) Len(ctx context.Context) (int, error) {
	var n int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, k.table)
	if err := k.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", k.name, err)
	}
	return n, nil
}
