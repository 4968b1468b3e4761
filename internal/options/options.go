// Package options implements the generic functional-option plumbing shared
// by the configurable entry points (dataset simulation, model fitting,
// artifact export). Public packages alias Option[T] to a named type and
// expose WithXxx constructors built on New and NoError.
package options

// Option configures a target of type T. Values are created with New or
// NoError; the apply method is unexported so only this package can invoke
// options, keeping validation inside Apply.
type Option[T any] interface {
	apply(T) error
}

type optionFunc[T any] func(T) error

func (f optionFunc[T]) apply(target T) error {
	return f(target)
}

// New wraps a function that may fail into an Option.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T](fn)
}

// NoError wraps an infallible function into an Option.
func NoError[T any](fn func(T)) Option[T] {
	return optionFunc[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply runs every option against target in order, stopping at the first
// error. Nil options are skipped so callers can pass conditional options
// without guarding.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
