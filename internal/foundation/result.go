// Package foundation provides small generic helpers shared by the build and
// history pipelines.
package foundation

import "fmt"

// Result holds either a value of type T or an error of type E.
//
// It is used where a batch keeps going past individual failures and each
// item has to carry its own outcome, e.g. one extracted revision.
type Result[T any, E error] struct {
	value T
	err   E
	isOk  bool
}

// Ok creates a successful Result.
func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{value: value, isOk: true}
}

// Err creates a failed Result.
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

// FromTuple converts a (value, error) pair into a Result.
func FromTuple[T any, E error](value T, err E) Result[T, E] {
	if any(err) != nil {
		return Err[T](err)
	}
	return Ok[T, E](value)
}

// IsOk reports whether the Result holds a value.
func (r Result[T, E]) IsOk() bool { return r.isOk }

// IsErr reports whether the Result holds an error.
func (r Result[T, E]) IsErr() bool { return !r.isOk }

// Unwrap returns the value and panics on an Err result.
func (r Result[T, E]) Unwrap() T {
	if !r.isOk {
		panic(fmt.Sprintf("called Unwrap on Err result: %v", r.err))
	}
	return r.value
}

// UnwrapErr returns the error and panics on an Ok result.
func (r Result[T, E]) UnwrapErr() E {
	if r.isOk {
		panic("called UnwrapErr on Ok result")
	}
	return r.err
}
