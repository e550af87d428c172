package schema

import "fmt"

// Parse converts text into a value of t. Types that refuse text input fail
// with ErrUnsupportedParse; malformed text fails with a *ParseError.
func (r *Registry) Parse(t *Type, text string) (Value, error) {
	e, err := r.lookup(t)
	if err != nil {
		return Value{}, err
	}
	if e.parse == nil {
		return Value{}, fmt.Errorf("%s: %w", t.name, ErrUnsupportedParse)
	}
	p, err := e.parse(text)
	if err != nil {
		return Value{}, &ParseError{Type: t.name, Text: text, Err: err}
	}
	return Value{typ: t, p: p}, nil
}

// Format renders v. The boolean is false when v is null. Precision is a
// width hint for precision sensitive types; Natural and Unbounded both pick
// the value's natural precision. Other types ignore it.
func (r *Registry) Format(v Value, precision int) (string, bool) {
	if v.p == nil || v.typ == nil {
		return "", false
	}
	return r.entries[v.typ.id].format(v.p, precision), true
}

// NaturalPrecision returns the shortest precision that renders v without
// loss, or Unbounded for null values and types without bounded precision.
func (r *Registry) NaturalPrecision(v Value) int {
	if v.p == nil || v.typ == nil {
		return Unbounded
	}
	e := r.entries[v.typ.id]
	if e.natural == nil {
		return Unbounded
	}
	return e.natural(v.p)
}

// MaxPrecision returns the widest precision of t, or Unbounded.
func (r *Registry) MaxPrecision(t *Type) (int, error) {
	if _, err := r.lookup(t); err != nil {
		return Unbounded, err
	}
	return t.maxPrecision, nil
}

// CanParse reports whether t accepts text input.
func (r *Registry) CanParse(t *Type) bool {
	e, err := r.lookup(t)
	return err == nil && e.parse != nil
}
