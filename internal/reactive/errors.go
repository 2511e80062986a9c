package reactive

import (
	"errors"
	"fmt"
)

// Domain errors for property writes and entity construction.
var (
	// ErrInvalidValue indicates a value rejected by a property's validator.
	ErrInvalidValue = errors.New("reactive: invalid value")

	// ErrRangeViolation indicates a value outside a property's declared bounds.
	ErrRangeViolation = errors.New("reactive: value out of range")

	// ErrReadOnly indicates a write to a derived or locked property.
	ErrReadOnly = errors.New("reactive: property is read-only")

	// ErrTopology indicates a misconfigured entity or system.
	ErrTopology = errors.New("reactive: invalid topology")
)

// PropertyError wraps an error with the property that raised it.
type PropertyError struct {
	Property string
	Value    any
	Wrapped  error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("%s: %s = %v", e.Wrapped.Error(), e.Property, e.Value)
}

func (e *PropertyError) Unwrap() error {
	return e.Wrapped
}

// Fail panics with a PropertyError. Entities built on top of this package use
// it to report invariant violations the same way properties do.
func Fail(property string, value any, err error) {
	panic(&PropertyError{Property: property, Value: value, Wrapped: err})
}

// Catch runs fn and returns the PropertyError it panicked with, if any.
// Any other panic is re-raised.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		pe, ok := r.(*PropertyError)
		if !ok {
			panic(r)
		}
		err = pe
	}()
	fn()
	return nil
}
