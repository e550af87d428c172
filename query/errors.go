package query

import (
	"errors"
	"fmt"
	"strings"
)

// Stage tells where a query failed.
type Stage int

const (
	// StageParse failures happen before any row is read.
	StageParse Stage = iota
	// StageEval failures happen while evaluating rows and abort the query.
	StageEval
)

func (s Stage) String() string {
	if s == StageParse {
		return "parse"
	}
	return "eval"
}

// ErrSyntax is matched by malformed projection, order-by and query text.
var ErrSyntax = errors.New("syntax error")

// Error is a failed query. Token is the offending token, if any, and Column
// the projected or sorted column involved, if any.
type Error struct {
	Stage  Stage
	Token  string
	Column string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Stage.String())
	b.WriteString(" error")
	if e.Column != "" {
		fmt.Fprintf(&b, " in column %q", e.Column)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " at %q", e.Token)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func syntaxError(tok Token, format string, args ...any) *Error {
	value := tok.Value
	if tok.Type == TokenEOF {
		value = ""
	}
	return &Error{
		Stage: StageParse,
		Token: value,
		Err:   fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...)),
	}
}

func parseError(column string, err error) *Error {
	return &Error{Stage: StageParse, Column: column, Err: err}
}

func evalError(column string, err error) *Error {
	return &Error{Stage: StageEval, Column: column, Err: err}
}

// IsParseError reports whether err is a query error raised before any row
// was read.
func IsParseError(err error) bool {
	var qe *Error
	return errors.As(err, &qe) && qe.Stage == StageParse
}
