package schema

import (
	"strings"

	"golang.org/x/text/cases"
)

// textHandler handles the string family. validate returns the canonical form
// of its input, or an error explaining why it is not a valid value.
func textHandler(caseInsensitive bool, validate func(string) (string, error)) handler {
	compare := func(a, b Payload) int {
		return strings.Compare(string(a.(Text)), string(b.(Text)))
	}
	if caseInsensitive {
		compare = func(a, b Payload) int {
			return compareIgnoreCase(string(a.(Text)), string(b.(Text)))
		}
	}
	var normalize func(Payload) (Payload, error)
	if validate != nil {
		normalize = func(p Payload) (Payload, error) {
			canonical, err := validate(string(p.(Text)))
			if err != nil {
				return nil, err
			}
			return Text(canonical), nil
		}
	}
	return handler{
		caseInsensitive: caseInsensitive,
		normalize:       normalize,
		maxPrecision:    Unbounded,
		accepts:         is[Text],
		parse: func(s string) (Payload, error) {
			if validate == nil {
				return Text(s), nil
			}
			canonical, err := validate(s)
			if err != nil {
				return nil, err
			}
			return Text(canonical), nil
		},
		format: func(p Payload, _ int) string {
			return string(p.(Text))
		},
		compare: compare,
	}
}

// compareIgnoreCase orders by Unicode case folding and only falls back to a
// case-sensitive comparison to break exact ties, so "a" < "B" < "b" < "c".
func compareIgnoreCase(a, b string) int {
	if a == b {
		return 0
	}
	// Casers keep state; a fresh one per call keeps this safe for concurrent use.
	fold := cases.Fold()
	if c := strings.Compare(fold.String(a), fold.String(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
