package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/artisanmap/internal/directory"
)

// ItemRepo reads bundled records by collection.
type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// List returns a collection in its authored order.
func (r *ItemRepo) List(ctx context.Context, collection string) ([]directory.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, description, category, type, lat, lng, photo_url
	FROM items
	WHERE collection = ?
	ORDER BY sort_order, id`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []directory.Item
	for rows.Next() {
		var (
			it                    directory.Item
			desc, cat, typ, photo *string
		)
		if err := rows.Scan(&it.ID, &it.Name, &desc, &cat, &typ, &it.Lat, &it.Lng, &photo); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", collection, err)
		}
		it.Description, it.Category, it.Type, it.PhotoURL = deref(desc), deref(cat), deref(typ), deref(photo)
		out = append(out, it)
	}
	return out, rows.Err()
}

// Upsert writes a record; used to override the bundle from tests and tools.
func (r *ItemRepo) Upsert(ctx context.Context, collection string, it directory.Item, sortOrder int) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO items(collection, id, name, description, category, type, lat, lng, photo_url, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(collection, id) DO UPDATE SET
	 name=excluded.name,
	 description=excluded.description,
	 category=excluded.category,
	 type=excluded.type,
	 lat=excluded.lat,
	 lng=excluded.lng,
	 photo_url=excluded.photo_url,
	 sort_order=excluded.sort_order;
	`, collection, it.ID, it.Name, nullable(it.Description), nullable(it.Category), nullable(it.Type),
		it.Lat, it.Lng, nullable(it.PhotoURL), sortOrder)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
