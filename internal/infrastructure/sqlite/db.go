// Package sqlite adaptador del almacén sobre SQLite embebido (sin cgo).
// Sirve para demos, pruebas y despliegues de un solo nodo; mismas consultas que postgres.
package sqlite

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schemaSQL string

// MemoryPath abre una base en memoria (una sola conexión).
const MemoryPath = ":memory:"

// Open abre la base SQLite en path con llaves foráneas activas.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == MemoryPath {
		// cada conexión nueva sería una base vacía distinta
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func errCode(err error) int {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return 0
}

func isForeignKeyViolation(err error) bool {
	return errCode(err) == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
}

func isCheckViolation(err error) bool {
	return errCode(err) == sqlite3.SQLITE_CONSTRAINT_CHECK
}
