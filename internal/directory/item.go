package directory

import (
	"strconv"
	"strings"
)

// Kind partitions merged items by the collection they came from.
type Kind string

const (
	KindArtisan Kind = "Artisan"
	KindPlace   Kind = "Place"
)

// Item represents an artisan or place record as served by the remote API.
type Item struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Type        string  `json:"type,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	PhotoURL    string  `json:"photo_url,omitempty"`
}

// TaggedItem is an Item after merging, tagged with its source collection.
type TaggedItem struct {
	Item
	Kind Kind
}

// Key returns the display key kind:id, unique within a merged sequence.
func (t TaggedItem) Key() string {
	return string(t.Kind) + ":" + strconv.Itoa(t.ID)
}

// Subtitle prefers the artisan category and falls back to the place type.
func (t TaggedItem) Subtitle() string {
	if c := strings.TrimSpace(t.Category); c != "" {
		return c
	}
	return strings.TrimSpace(t.Type)
}

// CloneItems returns a copy so callers can't mutate a shared slice.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
