package store

import (
	"context"
	"database/sql"
)

// Column types are declared with the wire type names so drivers reporting
// DatabaseTypeName can pick the codec (see vecsql.Accepts).
const itemsSchema = `
CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    embedding vector,
    sparse sparsevec
);
`

// EnsureSchema creates the items table in the provided database if it does
// not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, itemsSchema)
	return err
}
