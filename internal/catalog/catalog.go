// Package catalog holds the bundled sample directory served when the remote
// API is unavailable. The data ships inside the binary as SQL migrations and
// is loaded into a private in-memory SQLite database at startup; nothing is
// written to disk.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/artisanmap/internal/client"
)

const (
	CollectionArtisans = "artisans"
	CollectionPlaces   = "places"
)

// Catalog owns the in-memory database.
type Catalog struct {
	db    *sql.DB
	Items *ItemRepo
}

// Open builds the in-memory catalog and applies the embedded migrations.
func Open(ctx context.Context) (*Catalog, error) {
	db, err := OpenDB(ctx)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return &Catalog{db: db, Items: NewItemRepo(db)}, nil
}

// Bundle reads both collections into the client's fallback set.
func (c *Catalog) Bundle(ctx context.Context) (client.Fallback, error) {
	artisans, err := c.Items.List(ctx, CollectionArtisans)
	if err != nil {
		return client.Fallback{}, fmt.Errorf("load bundled artisans: %w", err)
	}
	places, err := c.Items.List(ctx, CollectionPlaces)
	if err != nil {
		return client.Fallback{}, fmt.Errorf("load bundled places: %w", err)
	}
	if len(artisans) == 0 || len(places) == 0 {
		return client.Fallback{}, fmt.Errorf("bundled catalog is empty (artisans=%d places=%d)", len(artisans), len(places))
	}
	return client.Fallback{Artisans: artisans, Places: places}, nil
}

// LoadBundle opens a catalog, reads the bundle and releases the database.
func LoadBundle(ctx context.Context) (client.Fallback, error) {
	c, err := Open(ctx)
	if err != nil {
		return client.Fallback{}, err
	}
	defer c.Close()
	return c.Bundle(ctx)
}

func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
