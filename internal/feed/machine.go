// Package feed is the load state machine shared by the list and map screens.
// A screen mounts a Machine, runs Load off the UI loop, and hands the result
// back through Apply, which drops anything that arrives after an unmount or
// a newer mount.
package feed

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jask/artisanmap/internal/client"
	"github.com/jask/artisanmap/internal/directory"
	"github.com/jask/artisanmap/internal/locale"
)

// Source fetches both collections. *client.Client satisfies it.
type Source interface {
	FetchArtisans(ctx context.Context) client.Result[[]directory.Item]
	FetchPlaces(ctx context.Context) client.Result[[]directory.Item]
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is what a screen renders.
type State struct {
	Phase          Phase
	Items          []directory.TaggedItem
	FallbackBanner bool
	Err            locale.Key
}

// Ticket identifies one mount.
type Ticket struct {
	Token string
	ctx   context.Context
}

// Loaded is the joined outcome of both fetches for one ticket.
type Loaded struct {
	Token    string
	Artisans client.Result[[]directory.Item]
	Places   client.Result[[]directory.Item]
	Items    []directory.TaggedItem
	MergeErr error
}

// Fallback reports whether either collection came from bundled data.
func (l Loaded) Fallback() bool {
	return l.Artisans.IsFallback() || l.Places.IsFallback()
}

type Machine struct {
	src      Source
	state    State
	token    string
	mounted  bool
	cancel   context.CancelFunc
	revision int
}

func New(src Source) *Machine {
	return &Machine{src: src}
}

// Mount enters Loading and starts a new liveness generation. A previous mount
// is cancelled first.
func (m *Machine) Mount(parent context.Context) Ticket {
	m.Unmount()
	ctx, cancel := context.WithCancel(parent)
	m.token = uuid.NewString()
	m.mounted = true
	m.cancel = cancel
	m.set(State{Phase: PhaseLoading})
	return Ticket{Token: m.token, ctx: ctx}
}

// Unmount stops accepting results and aborts in-flight requests.
func (m *Machine) Unmount() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.mounted = false
}

// Load fetches both collections concurrently and merges them. It blocks until
// both settle and never fails as a whole; merge errors travel in Loaded.
func (m *Machine) Load(t Ticket) Loaded {
	ctx := t.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	out := Loaded{Token: t.Token}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Artisans = m.src.FetchArtisans(gctx)
		return nil
	})
	g.Go(func() error {
		out.Places = m.src.FetchPlaces(gctx)
		return nil
	})
	_ = g.Wait()

	out.Items, out.MergeErr = directory.Merge(out.Artisans.Data, out.Places.Data)
	return out
}

// Apply commits a load result. It returns false, leaving state untouched,
// when the machine is unmounted or the result belongs to an older mount.
func (m *Machine) Apply(l Loaded) bool {
	if !m.mounted || l.Token == "" || l.Token != m.token {
		return false
	}
	next := State{FallbackBanner: l.Fallback()}
	if l.MergeErr != nil {
		next.Phase = PhaseFailed
		next.Err = locale.MsgLoadFailed
	} else {
		next.Phase = PhaseReady
		next.Items = l.Items
	}
	m.set(next)
	return true
}

func (m *Machine) set(s State) {
	m.state = s
	m.revision++
}

func (m *Machine) State() State { return m.state }

// Mounted reports whether results are currently accepted.
func (m *Machine) Mounted() bool { return m.mounted }

// Revision counts state mutations.
func (m *Machine) Revision() int { return m.revision }
