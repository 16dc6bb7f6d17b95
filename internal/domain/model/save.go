package model

// IncompleteSaveError reports that Saved was stored by the backend but a
// follow-up step of the same save failed.
type IncompleteSaveError[T any] struct {
	Saved T
	Err   error
}

func (e *IncompleteSaveError[T]) Error() string { return e.Err.Error() }

func (e *IncompleteSaveError[T]) Unwrap() error { return e.Err }
