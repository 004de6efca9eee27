// Package vecsql binds the vector codec to database/sql.
//
// NullVector and NullSparseVector implement sql.Scanner and driver.Valuer
// over the binary wire encoding, so they can be used as query arguments and
// scan destinations for BLOB or binary-protocol columns:
//
//	var emb vecsql.NullSparseVector
//	err := db.QueryRow(`SELECT sparse FROM items WHERE id = ?`, id).Scan(&emb)
//
// Column types are recognized by their declared database type name (see
// Accepts). Codec failures are reported as *ConversionError.
package vecsql
