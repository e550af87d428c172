package schema

import "fmt"

// Compare orders two values of the same type, returning -1, 0 or 1. Null
// sorts before every non-null value. Values of different types cannot be
// compared.
func (r *Registry) Compare(a, b Value) (int, error) {
	if a.typ == nil || b.typ == nil {
		return 0, fmt.Errorf("%w: untyped value", ErrUnknownType)
	}
	e, err := r.lookup(a.typ)
	if err != nil {
		return 0, err
	}
	if a.typ != b.typ {
		return 0, fmt.Errorf("%w: cannot compare %s with %s", ErrTypeMismatch, a.typ.name, b.typ.name)
	}
	switch {
	case a.p == nil && b.p == nil:
		return 0, nil
	case a.p == nil:
		return -1, nil
	case b.p == nil:
		return 1, nil
	}
	return sign(e.compare(a.p, b.p)), nil
}

// Equal reports whether a and b have the same type and compare equal.
func (r *Registry) Equal(a, b Value) bool {
	c, err := r.Compare(a, b)
	return err == nil && c == 0
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}
