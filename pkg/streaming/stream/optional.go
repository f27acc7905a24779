package stream

import "fmt"

// Optional holds a value that may be absent. It is the result type of
// single-element terminal operations such as FindFirst, Min and Max.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns an Optional holding value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// OrElseGet returns the value, or the result of supplier when absent.
func (o Optional[T]) OrElseGet(supplier func() T) T {
	if o.present {
		return o.value
	}
	return supplier()
}

// OrError returns the value, or err when absent.
func (o Optional[T]) OrError(err error) (T, error) {
	if o.present {
		return o.value, nil
	}
	var zero T
	return zero, err
}

// IfPresent calls action with the value when one is held.
func (o Optional[T]) IfPresent(action func(T)) {
	if o.present {
		action(o.value)
	}
}

func (o Optional[T]) String() string {
	if !o.present {
		return "Optional.empty"
	}
	return fmt.Sprintf("Optional[%v]", o.value)
}
