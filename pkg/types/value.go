package types

// Value holds either a literal or a zero-argument supplier producing one.
// The zero Value is unset.
type Value[T any] struct {
	literal  T
	supplier func() T
	set      bool
}

// Literal wraps a concrete value
func Literal[T any](v T) Value[T] {
	return Value[T]{literal: v, set: true}
}

// Supplier wraps a function evaluated lazily by Resolve. A nil function
// yields an unset Value.
func Supplier[T any](fn func() T) Value[T] {
	if fn == nil {
		return Value[T]{}
	}
	return Value[T]{supplier: fn, set: true}
}

// IsSet reports whether the caller provided the value at all
func (v Value[T]) IsSet() bool {
	return v.set
}

// IsSupplier reports whether Resolve will invoke a function
func (v Value[T]) IsSupplier() bool {
	return v.supplier != nil
}

// Resolve returns the literal, or invokes the supplier once per call.
// Unset values resolve to the zero T.
func (v Value[T]) Resolve() T {
	if v.supplier != nil {
		return v.supplier()
	}
	return v.literal
}
