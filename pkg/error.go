package pkg

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors, innermost first.
//
// Sentinel errors are single-element chains; wrapping appends causes, and
// errors.Is matches any chain that starts with the sentinel's errors.
type Error []error

// ErrReadInput is returned when reading an input file fails.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrWriteOutput is returned when writing an output file fails.
var ErrWriteOutput = MakeErrorf("failed to write output")

// ErrYAMLDecode is returned when a YAML document cannot be decoded.
var ErrYAMLDecode = MakeErrorf("YAML decode error")

// ErrJSONDecode is returned when a JSON document cannot be decoded.
var ErrJSONDecode = MakeErrorf("JSON decode error")

// ErrJSONMarshal is returned when JSON marshaling fails.
var ErrJSONMarshal = MakeErrorf("JSON marshal error")

// ErrNoSources is returned when a command is given no readable source.
var ErrNoSources = MakeErrorf("no readable sources")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error joins the messages of the chain with ": ", innermost first.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range e {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap returns a new chain with err appended.
func (e Error) Wrap(err ...error) Error {
	return slices.Concat(e, slices.DeleteFunc(slices.Clone(err), isNil))
}

// Wrapf returns a new chain with a formatted error appended.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Unwrap returns the errors of the chain.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether target is an Error whose chain is a prefix of e.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(t) > len(e) {
		return false
	}

	for i := range t {
		if t[i] != e[i] {
			return false
		}
	}

	return true
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}

func isNil(err error) bool { return err == nil }
