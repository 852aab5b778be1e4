package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// OpenDB creates a private in-memory database. Each call gets its own name so
// concurrent catalogs (tests, one-shot commands) never share state.
func OpenDB(ctx context.Context) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:catalog-%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// the database lives only while a connection stays open
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	return db, nil
}
