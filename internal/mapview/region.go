package mapview

import (
	"math"

	"github.com/jask/artisanmap/internal/directory"
)

const minDelta = 0.005

// Region is a map viewport: a center and half-spans in degrees.
type Region struct {
	Lat      float64
	Lng      float64
	LatDelta float64
	LngDelta float64
}

// DefaultRegion centers on Tula de Allende, Hidalgo.
func DefaultRegion() Region {
	return Region{Lat: 20.0522, Lng: -99.3419, LatDelta: 0.05, LngDelta: 0.05}
}

func (r Region) normalized() Region {
	if !(r.LatDelta > 0) {
		r.LatDelta = DefaultRegion().LatDelta
	}
	if !(r.LngDelta > 0) {
		r.LngDelta = DefaultRegion().LngDelta
	}
	return r
}

// Contains reports whether a point lies inside the region.
func (r Region) Contains(lat, lng float64) bool {
	r = r.normalized()
	return lat >= r.Lat-r.LatDelta && lat <= r.Lat+r.LatDelta &&
		lng >= r.Lng-r.LngDelta && lng <= r.Lng+r.LngDelta
}

// FitRegion widens r just enough to show every marker. A region that
// already contains all markers is returned unchanged.
func FitRegion(r Region, markers []Marker) Region {
	r = r.normalized()
	minLat, maxLat := r.Lat-r.LatDelta, r.Lat+r.LatDelta
	minLng, maxLng := r.Lng-r.LngDelta, r.Lng+r.LngDelta
	outside := false
	for _, m := range markers {
		if r.Contains(m.Lat, m.Lng) {
			continue
		}
		outside = true
		minLat, maxLat = math.Min(minLat, m.Lat), math.Max(maxLat, m.Lat)
		minLng, maxLng = math.Min(minLng, m.Lng), math.Max(maxLng, m.Lng)
	}
	if !outside {
		return r
	}
	return Region{
		Lat:      (minLat + maxLat) / 2,
		Lng:      (minLng + maxLng) / 2,
		LatDelta: math.Max((maxLat-minLat)/2*1.1, minDelta),
		LngDelta: math.Max((maxLng-minLng)/2*1.1, minDelta),
	}
}

// Marker is one item positioned on the map.
type Marker struct {
	Key       string
	Lat       float64
	Lng       float64
	Label     string
	Kind      directory.Kind
	KindLabel string
}

// MarkersFrom builds one marker per item; kindLabel localizes the kind.
func MarkersFrom(items []directory.TaggedItem, kindLabel func(directory.Kind) string) []Marker {
	out := make([]Marker, 0, len(items))
	for _, it := range items {
		label := string(it.Kind)
		if kindLabel != nil {
			label = kindLabel(it.Kind)
		}
		out = append(out, Marker{Key: it.Key(), Lat: it.Lat, Lng: it.Lng, Label: it.Name, Kind: it.Kind, KindLabel: label})
	}
	return out
}
