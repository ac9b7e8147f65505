package fanout

// Status classifies the outcome of one unit of work.
type Status uint8

const (
	StatusOK Status = iota
	StatusDegraded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of one unit of work.
// Items is only meaningful for StatusOK; Err is set for the other two.
type Result[T any] struct {
	Items  []T
	Status Status
	Err    error
}

// OK returns a successful result carrying items.
func OK[T any](items []T) Result[T] {
	return Result[T]{Items: items, Status: StatusOK}
}

// Degraded returns an empty result recording why the unit was skipped.
func Degraded[T any](err error) Result[T] {
	return Result[T]{Status: StatusDegraded, Err: err}
}

// Failed returns a hard failure.
func Failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailed, Err: err}
}
