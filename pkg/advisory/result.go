package advisory

// Result carries a value that is either real (Ok) or a static substitute
// returned because the remote call failed (Degraded). Reason is nil for Ok.
type Result[T any] struct {
	Value  T
	Reason error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func Degraded[T any](v T, reason error) Result[T] {
	return Result[T]{Value: v, Reason: reason}
}

func (r Result[T]) Degraded() bool {
	return r.Reason != nil
}
