package schema

import "cmp"

// handler is the per-type dispatch record: every operation the registry
// performs on a payload goes through one of these functions.
type handler struct {
	alignRight      bool
	caseInsensitive bool
	maxPrecision    int

	accepts func(Payload) bool
	// parse is nil for types that refuse text input.
	parse   func(string) (Payload, error)
	format  func(p Payload, precision int) string
	compare func(a, b Payload) int
	// natural is nil for types without a bounded precision.
	natural func(Payload) int
	// normalize checks a payload built outside the parser against the
	// type's domain and returns its canonical form. nil accepts every
	// payload of the right kind.
	normalize func(Payload) (Payload, error)
}

type caster func(Payload) (Payload, error)

type entry struct {
	handler
	typ   *Type
	casts map[TypeID]caster
}

// is reports whether p holds a T.
func is[T Payload](p Payload) bool {
	_, ok := p.(T)
	return ok
}

func compareInts(a, b Payload) int {
	return cmp.Compare(a.(Int), b.(Int))
}
