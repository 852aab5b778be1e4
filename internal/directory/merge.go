package directory

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidItem reports a record that can't be displayed.
var ErrInvalidItem = errors.New("invalid item")

// Merge tags artisans and places and concatenates them, artisans first.
// Source order is kept; there is no dedup or sorting.
func Merge(artisans, places []Item) ([]TaggedItem, error) {
	out := make([]TaggedItem, 0, len(artisans)+len(places))
	for _, it := range artisans {
		t := TaggedItem{Item: it, Kind: KindArtisan}
		if err := validate(t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	for _, it := range places {
		t := TaggedItem{Item: it, Kind: KindPlace}
		if err := validate(t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func validate(t TaggedItem) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%s: %w: missing name", t.Key(), ErrInvalidItem)
	}
	if !validCoord(t.Lat, 90) || !validCoord(t.Lng, 180) {
		return fmt.Errorf("%s: %w: coordinates %v,%v out of range", t.Key(), ErrInvalidItem, t.Lat, t.Lng)
	}
	return nil
}

func validCoord(v, limit float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= -limit && v <= limit
}
