package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vegasq/hostdb/internal/logger"
	"github.com/vegasq/hostdb/internal/metrics"
	"github.com/vegasq/hostdb/reader"
	"github.com/vegasq/hostdb/schema"
)

// ErrNoSource is returned by Engine.Query when no row store serves the
// queried table.
var ErrNoSource = errors.New("no row source for table")

// Engine runs select queries. It keeps no state between calls and is safe
// for concurrent use.
type Engine struct {
	reg     *schema.Registry
	catalog *schema.Catalog
	log     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCatalog sets the catalog Engine.Query resolves table names against.
func WithCatalog(c *schema.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// NewEngine creates an engine over reg.
func NewEngine(reg *schema.Registry, opts ...Option) *Engine {
	e := &Engine{reg: reg}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get()
	}
	return e
}

// Registry returns the engine's type registry.
func (e *Engine) Registry() *schema.Registry { return e.reg }

// column is one compiled projection.
type column struct {
	header string
	expr   Expression
}

// plan is a query compiled against a row shape.
type plan struct {
	shape   *schema.Table
	columns []column
	keys    []sortKey
}

// Run evaluates projection over the rows of src, which have the given shape,
// sorted by orderBy when it is not blank. Malformed or unresolvable
// projection and order-by text fail with a parse-stage *Error before src is
// read.
func (e *Engine) Run(ctx context.Context, projection string, shape *schema.Table, src reader.Source, orderBy string) (*Result, error) {
	start := time.Now()
	if shape == nil {
		err := &Error{Stage: StageParse, Err: fmt.Errorf("%w: no row shape", schema.ErrUnknownTable)}
		e.observe(ctx, "", start, nil, err)
		return nil, err
	}
	res, err := e.run(ctx, projection, shape, src, orderBy)
	e.observe(ctx, shape.Name(), start, res, err)
	return res, err
}

func (e *Engine) run(ctx context.Context, projection string, shape *schema.Table, src reader.Source, orderBy string) (*Result, error) {
	items, err := ParseProjection(projection)
	if err != nil {
		return nil, err
	}
	keys, err := ParseOrderBy(orderBy)
	if err != nil {
		return nil, err
	}
	p, err := e.compile(shape, items, keys)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, &Error{Stage: StageParse, Token: shape.Name(), Err: fmt.Errorf("%w %s", ErrNoSource, shape.Name())}
	}
	return e.execute(ctx, p, src)
}

// Query runs "select <projection> from <table> [order by <keys>]". The table
// is resolved through the engine's catalog and its rows are read from the
// source registered under the table's name in sources.
func (e *Engine) Query(ctx context.Context, text string, sources map[string]reader.Source) (*Result, error) {
	start := time.Now()
	table := ""
	res, err := func() (*Result, error) {
		stmt, err := Parse(text)
		if err != nil {
			return nil, err
		}
		table = stmt.Table
		if e.catalog == nil {
			return nil, &Error{Stage: StageParse, Token: stmt.Table, Err: fmt.Errorf("%w: no catalog", schema.ErrUnknownTable)}
		}
		shape, err := e.catalog.Table(stmt.Table)
		if err != nil {
			return nil, &Error{Stage: StageParse, Token: stmt.Table, Err: err}
		}
		table = shape.Name()
		src := lookupSource(sources, shape.Name())
		if src == nil {
			return nil, &Error{Stage: StageParse, Token: stmt.Table, Err: fmt.Errorf("%w %s", ErrNoSource, shape.Name())}
		}
		p, err := e.compile(shape, stmt.Items, stmt.OrderBy)
		if err != nil {
			return nil, err
		}
		return e.execute(ctx, p, src)
	}()
	e.observe(ctx, table, start, res, err)
	return res, err
}

func lookupSource(sources map[string]reader.Source, table string) reader.Source {
	if src, ok := sources[table]; ok {
		return src
	}
	for name, src := range sources {
		if strings.EqualFold(name, table) {
			return src
		}
	}
	return nil
}

// compile expands wildcards and resolves every expression against shape.
func (e *Engine) compile(shape *schema.Table, items []SelectItem, order []OrderItem) (*plan, error) {
	p := &plan{shape: shape}
	for _, item := range Expand(items, shape) {
		expr, err := Compile(e.reg, shape, item.Expr)
		if err != nil {
			return nil, parseError(item.Header, err)
		}
		p.columns = append(p.columns, column{header: item.Header, expr: expr})
	}
	for _, item := range order {
		expr, err := Compile(e.reg, shape, item.Expr)
		if err != nil {
			return nil, parseError(item.Text, err)
		}
		p.keys = append(p.keys, sortKey{expr: expr, desc: item.Desc, text: item.Text})
	}
	return p, nil
}

func (e *Engine) execute(ctx context.Context, p *plan, src reader.Source) (*Result, error) {
	rows, err := src.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", p.shape.Name(), err)
	}

	if len(p.keys) > 0 {
		if rows, err = sortRows(e.reg, rows, p.keys); err != nil {
			return nil, err
		}
	}

	types := make([]*schema.Type, len(p.columns))
	res := &Result{
		Columns:    make([]string, len(p.columns)),
		AlignRight: make([]bool, len(p.columns)),
		Rows:       make([][]sql.NullString, 0, len(rows)),
	}
	for i, c := range p.columns {
		types[i] = c.expr.Type()
		res.Columns[i] = c.header
		res.AlignRight[i] = types[i].AlignRight()
	}

	values := make([][]schema.Value, len(rows))
	for r, row := range rows {
		if r%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		values[r] = make([]schema.Value, len(p.columns))
		for i, c := range p.columns {
			v, err := c.expr.Eval(row)
			if err != nil {
				return nil, evalError(c.header, err)
			}
			values[r][i] = v
		}
	}

	precision, _ := scanPrecision(e.reg, types, values)

	for _, row := range values {
		cells := make([]sql.NullString, len(row))
		for i, v := range row {
			s, ok := e.reg.Format(v, precision[i])
			cells[i] = sql.NullString{String: s, Valid: ok}
		}
		res.Rows = append(res.Rows, cells)
	}
	return res, nil
}

func (e *Engine) observe(ctx context.Context, table string, start time.Time, res *Result, err error) {
	elapsed := time.Since(start)
	if err == nil {
		metrics.ObserveQuery(metrics.StatusOK, res.Len(), elapsed)
		e.log.DebugContext(ctx, "query finished",
			"table", table,
			"columns", len(res.Columns),
			"rows", res.Len(),
			"duration", elapsed)
		return
	}

	status := metrics.StatusEvalError
	switch {
	case IsParseError(err):
		status = metrics.StatusParseError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = metrics.StatusCanceled
	}
	metrics.ObserveQuery(status, 0, elapsed)
	e.log.WarnContext(ctx, "query failed", "table", table, "status", status, "error", err)
}
