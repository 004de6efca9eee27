// Package store persists dense and sparse vectors in a SQLite items table
// through the vecsql adapter, and reads back their text form through the
// engine SQL functions.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/viant/pgvec/logging"
	"github.com/viant/pgvec/vecsql"
)

// ErrNotFound is returned when no item has the requested id.
var ErrNotFound = errors.New("store: item not found")

// Item is a row of the items table. Either vector may be NULL.
type Item struct {
	// ID is the item identifier. When empty on insert, a KSUID is assigned.
	ID        string
	Embedding vecsql.NullVector
	Sparse    vecsql.NullSparseVector
}

// Store reads and writes items.
type Store struct {
	db     *sql.DB
	logger *logging.Logger
}

// New creates a Store and ensures the items schema exists. A nil logger
// disables logging.
func New(ctx context.Context, db *sql.DB, logger *logging.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("store: db is nil")
	}
	if logger == nil {
		logger = logging.Noop()
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("store: ensure schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Add inserts items in a single transaction and returns their ids.
func (s *Store) Add(ctx context.Context, items []Item) ([]string, error) {
	if len(items) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items(id, embedding, sparse) VALUES(?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, 0, len(items))
	for _, it := range items {
		id := it.ID
		if id == "" {
			id = ksuid.New().String()
		}
		embedding, sparse, err := itemArgs(it)
		if err == nil {
			_, err = stmt.ExecContext(ctx, id, embedding, sparse)
		}
		if err != nil {
			s.errorLogger(err).ErrorContext(ctx, "add failed", "id", id, "error", err)
			return nil, fmt.Errorf("store: add %s: %w", id, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "add completed", "count", len(ids))
	return ids, nil
}

// Get loads an item by id. Decode failures are returned as
// *vecsql.ConversionError.
func (s *Store) Get(ctx context.Context, id string) (Item, error) {
	it := Item{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT embedding, sparse FROM items WHERE id = ?`, id).
		Scan(&it.Embedding, &it.Sparse)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		s.errorLogger(err).ErrorContext(ctx, "get failed", "id", id, "error", err)
		return Item{}, err
	}
	return it, nil
}

// itemArgs encodes the vector columns up front; database/sql flattens
// Valuer errors to text, which would hide the *vecsql.ConversionError.
func itemArgs(it Item) (embedding, sparse driver.Value, err error) {
	if embedding, err = it.Embedding.Value(); err != nil {
		return nil, nil, err
	}
	if sparse, err = it.Sparse.Value(); err != nil {
		return nil, nil, err
	}
	return embedding, sparse, nil
}

// errorLogger tags the log with the wire type when err is a column conversion
// failure.
func (s *Store) errorLogger(err error) *logging.Logger {
	var convErr *vecsql.ConversionError
	if errors.As(err, &convErr) {
		return s.logger.WithType(convErr.TypeName)
	}
	return s.logger
}

// Text returns the text form of both vectors as rendered by the vec_text and
// sparsevec_text SQL functions. NULL vectors yield empty strings.
// engine.RegisterVectorFunctions must have been called before the
// connection was opened.
func (s *Store) Text(ctx context.Context, id string) (dense, sparse string, err error) {
	var d, sp sql.NullString
	err = s.db.QueryRowContext(ctx, `SELECT vec_text(embedding), sparsevec_text(sparse) FROM items WHERE id = ?`, id).
		Scan(&d, &sp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return "", "", err
	}
	return d.String, sp.String, nil
}

// Remove deletes an item by id.
func (s *Store) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("store: Remove called with empty id")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.logger.DebugContext(ctx, "remove completed", "id", id)
	return nil
}
