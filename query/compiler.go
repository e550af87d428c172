package query

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vegasq/hostdb/reader"
	"github.com/vegasq/hostdb/schema"
)

// Expression is a compiled row expression with a fixed result type.
type Expression interface {
	Type() *schema.Type
	Eval(row reader.Row) (schema.Value, error)
}

// ErrNotExpanded is returned when a wildcard reaches the compiler.
var ErrNotExpanded = errors.New("wildcard must be expanded before compiling")

// Expand replaces every wildcard item with one column reference per column
// of shape, in table order.
func Expand(items []SelectItem, shape *schema.Table) []SelectItem {
	out := make([]SelectItem, 0, len(items))
	for _, item := range items {
		if _, ok := item.Expr.(*Wildcard); !ok {
			out = append(out, item)
			continue
		}
		for _, name := range shape.ColumnNames() {
			out = append(out, SelectItem{Expr: &ColumnRef{Name: name}, Header: name})
		}
	}
	return out
}

// Compile resolves node against shape.
func Compile(reg *schema.Registry, shape *schema.Table, node Node) (Expression, error) {
	switch n := node.(type) {
	case *ColumnRef:
		col, _, err := shape.Column(n.Name)
		if err != nil {
			return nil, err
		}
		return &columnExpr{name: col.Name, typ: col.Type}, nil
	case *Literal:
		return compileLiteral(reg, n)
	case *CastExpr:
		inner, err := Compile(reg, shape, n.Expr)
		if err != nil {
			return nil, err
		}
		to, err := reg.TypeByName(n.Type)
		if err != nil {
			return nil, err
		}
		if !reg.CanCast(inner.Type(), to) {
			return nil, &schema.CastError{From: inner.Type().Name(), To: to.Name()}
		}
		return &castExpr{reg: reg, inner: inner, to: to}, nil
	case *Wildcard:
		return nil, ErrNotExpanded
	}
	return nil, fmt.Errorf("unsupported expression %T", node)
}

func compileLiteral(reg *schema.Registry, n *Literal) (Expression, error) {
	var (
		v   schema.Value
		err error
	)
	switch n.Kind {
	case TokenNull:
		v = schema.Null(reg.MustType(schema.TypeString))
	case TokenString:
		v, err = reg.NewValue(schema.TypeString, schema.Text(n.Value))
	case TokenNumber:
		if i, perr := strconv.ParseInt(n.Value, 10, 64); perr == nil {
			v, err = reg.NewValue(schema.TypeLong, schema.Int(i))
		} else {
			v, err = reg.Parse(reg.MustType(schema.TypeBigDecimal), n.Value)
		}
	default:
		err = fmt.Errorf("unsupported literal %s", n.Kind)
	}
	if err != nil {
		return nil, err
	}
	return literalExpr{v: v}, nil
}

type columnExpr struct {
	name string
	typ  *schema.Type
}

func (e *columnExpr) Type() *schema.Type { return e.typ }

func (e *columnExpr) Eval(row reader.Row) (schema.Value, error) {
	v, err := row.Get(e.name)
	if err != nil {
		return schema.Value{}, err
	}
	if v.Type() != e.typ {
		return schema.Value{}, fmt.Errorf("%w: column %s holds %v, want %s", schema.ErrTypeMismatch, e.name, v.Type(), e.typ)
	}
	return v, nil
}

type literalExpr struct {
	v schema.Value
}

func (e literalExpr) Type() *schema.Type                    { return e.v.Type() }
func (e literalExpr) Eval(reader.Row) (schema.Value, error) { return e.v, nil }

type castExpr struct {
	reg   *schema.Registry
	inner Expression
	to    *schema.Type
}

func (e *castExpr) Type() *schema.Type { return e.to }

func (e *castExpr) Eval(row reader.Row) (schema.Value, error) {
	v, err := e.inner.Eval(row)
	if err != nil {
		return schema.Value{}, err
	}
	return e.reg.Cast(v, e.to)
}
