package client

// Status tells whether a fetch was served live or degraded to bundled data.
type Status int

const (
	StatusLive Status = iota
	StatusDegraded
)

func (s Status) String() string {
	if s == StatusDegraded {
		return "degraded"
	}
	return "live"
}

// Result is the outcome of a single collection fetch. It always carries
// data; Reason explains why a degraded result was produced.
type Result[T any] struct {
	Data   T
	Status Status
	Reason error
}

// Ok wraps live data.
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data, Status: StatusLive}
}

// Degraded wraps bundled data substituted for a failed fetch.
func Degraded[T any](data T, reason error) Result[T] {
	return Result[T]{Data: data, Status: StatusDegraded, Reason: reason}
}

// IsFallback reports whether Data came from the bundled catalog.
func (r Result[T]) IsFallback() bool { return r.Status == StatusDegraded }
