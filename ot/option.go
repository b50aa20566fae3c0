package ot

// Option represents an optional value, e.g. the coverage index of a glyph.
type Option[T any] struct {
	value T
	ok    bool
}

// Some constructs an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None constructs an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Unwrap returns the value and a flag telling if it is present,
// following the Go "(value, ok)" convention.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// Or returns the held value or def, if the option is empty.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}
