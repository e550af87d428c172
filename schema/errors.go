package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownType is returned when a type id or name has no registry entry.
	ErrUnknownType = errors.New("unknown type")
	// ErrUnsupportedCast is returned when the cast graph has no edge between two types.
	ErrUnsupportedCast = errors.New("unsupported cast")
	// ErrUnsupportedParse is returned by types that refuse text input.
	ErrUnsupportedParse = errors.New("type does not accept text input")
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("invalid value")
	// ErrTypeMismatch is returned when two values of different types are compared.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrOutOfRange is returned when a cast source does not fit its destination.
	ErrOutOfRange = errors.New("value out of range")
)

// CastError reports a failed cast. Err is nil when the cast graph has no
// edge between the two types, in which case the error matches ErrUnsupportedCast.
type CastError struct {
	From string
	To   string
	Err  error
}

func (e *CastError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot cast %s to %s: %v", e.From, e.To, e.Err)
	}
	return fmt.Sprintf("unsupported cast from %s to %s", e.From, e.To)
}

func (e *CastError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupportedCast
}

// ParseError reports text that is not a valid value of a type.
type ParseError struct {
	Type string
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s: %q", e.Type, e.Text)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Type, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse for every parse error.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func unknownTypeID(id TypeID) error {
	return fmt.Errorf("%w: id %d", ErrUnknownType, int(id))
}

func unknownTypeName(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownType, name)
}

func outOfRange(v any, to string) error {
	return fmt.Errorf("%w: %v does not fit %s", ErrOutOfRange, v, to)
}
