// Package mapview decides whether a map can be drawn and draws it. The map
// surface is optional: a Capability is resolved once at startup and handed to
// the map screen, which shows a placeholder when it is unavailable.
package mapview

import (
	"fmt"
	"sort"
	"strings"
)

// Surface draws markers inside a region.
type Surface interface {
	Name() string
	Render(region Region, markers []Marker, width, height int) string
}

// Capability is either Available(surface) or Unavailable(reason).
type Capability struct {
	surface Surface
	reason  string
}

func Available(s Surface) Capability {
	if s == nil {
		return Unavailable("nil surface")
	}
	return Capability{surface: s}
}

func Unavailable(reason string) Capability {
	return Capability{reason: reason}
}

// Surface returns the map surface when available.
func (c Capability) Surface() (Surface, bool) {
	return c.surface, c.surface != nil
}

func (c Capability) Available() bool { return c.surface != nil }

// Reason explains an unavailable capability.
func (c Capability) Reason() string { return c.reason }

// Provider builds a surface, returning an error when its backing
// dependency is missing.
type Provider func() (Surface, error)

// Resolver maps provider names to constructors.
type Resolver struct {
	providers map[string]Provider
}

// NewResolver registers the built-in providers.
func NewResolver() *Resolver {
	r := &Resolver{providers: map[string]Provider{}}
	r.Register("grid", func() (Surface, error) { return NewGridSurface(), nil })
	return r
}

func (r *Resolver) Register(name string, p Provider) {
	r.providers[normalize(name)] = p
}

// Names lists registered providers.
func (r *Resolver) Names() []string {
	out := make([]string, 0, len(r.providers))
	for n := range r.providers {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Resolve never panics; a provider that fails or panics yields Unavailable.
func (r *Resolver) Resolve(name string) (c Capability) {
	key := normalize(name)
	if key == "" || key == "none" || key == "off" {
		return Unavailable("map disabled")
	}
	p, ok := r.providers[key]
	if !ok || p == nil {
		return Unavailable(fmt.Sprintf("unknown map provider %q", name))
	}
	defer func() {
		if rec := recover(); rec != nil {
			c = Unavailable(fmt.Sprintf("map provider %q panicked: %v", key, rec))
		}
	}()
	s, err := p()
	if err != nil {
		return Unavailable(fmt.Sprintf("map provider %q: %v", key, err))
	}
	return Available(s)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
