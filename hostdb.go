// Package hostdb ties the typed-value registry, table shapes, row sources
// and the select evaluator together behind one client.
//
// Example usage:
//
//	cfg, err := config.Load(config.DefaultPrefix)
//	if err != nil {
//	    return err
//	}
//	client, err := hostdb.New(cfg)
//	if err != nil {
//	    return err
//	}
//	if err := client.RegisterParquet("server", "data/server/*.parquet"); err != nil {
//	    return err
//	}
//	res, err := client.Query(ctx, "select hostname, port from server order by hostname")
//	if err != nil {
//	    return err
//	}
//	return client.Render(os.Stdout, res)
package hostdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/vegasq/hostdb/config"
	"github.com/vegasq/hostdb/internal/logger"
	"github.com/vegasq/hostdb/output"
	"github.com/vegasq/hostdb/query"
	"github.com/vegasq/hostdb/reader"
	"github.com/vegasq/hostdb/schema"
)

// Client owns a registry and the tables registered with it. It is safe for
// concurrent use.
type Client struct {
	cfg config.Config
	reg *schema.Registry
	log *slog.Logger

	mu      sync.RWMutex
	tables  []*schema.Table
	sources map[string]reader.Source
	engine  *query.Engine
}

// New builds a client from cfg. The shared logger is configured from
// cfg.Log.
func New(cfg config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	c := &Client{
		cfg:     cfg,
		reg:     schema.NewRegistry(schema.WithLocation(loc)),
		log:     logger.Init(cfg.Log),
		sources: make(map[string]reader.Source),
	}
	c.engine = query.NewEngine(c.reg, query.WithLogger(c.log))
	return c, nil
}

// Registry returns the client's type registry.
func (c *Client) Registry() *schema.Registry { return c.reg }

// Register adds a table and the source its rows are read from. Table names
// are unique ignoring case.
func (c *Client) Register(table *schema.Table, src reader.Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tables := append(c.tables[:len(c.tables):len(c.tables)], table)
	catalog, err := schema.NewCatalog(c.reg, tables...)
	if err != nil {
		return fmt.Errorf("register %s: %w", table.Name(), err)
	}
	c.tables = tables
	c.sources[strings.ToLower(table.Name())] = src
	c.engine = query.NewEngine(c.reg, query.WithLogger(c.log), query.WithCatalog(catalog))
	c.log.Debug("table registered", "table", table.Name(), "columns", table.Len())
	return nil
}

// RegisterParquet registers the Parquet files matching path as table name.
// The shape is taken from the first matching file.
func (c *Client) RegisterParquet(name, path string) error {
	table, err := reader.ShapeFromFile(c.reg, name, path)
	if err != nil {
		return err
	}
	return c.Register(table, reader.NewParquetSource(c.reg, table, path))
}

// Table returns a registered table.
func (c *Client) Table(name string) (*schema.Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.tables {
		if strings.EqualFold(t.Name(), name) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", schema.ErrUnknownTable, name)
}

// Query runs a select statement against the registered tables.
func (c *Client) Query(ctx context.Context, text string) (*query.Result, error) {
	c.mu.RLock()
	engine := c.engine
	sources := make(map[string]reader.Source, len(c.sources))
	for name, src := range c.sources {
		sources[name] = src
	}
	c.mu.RUnlock()

	return engine.Query(ctx, text, sources)
}

// Select evaluates a projection and an optional ORDER BY clause over a
// registered table.
func (c *Client) Select(ctx context.Context, table, projection, orderBy string) (*query.Result, error) {
	shape, err := c.Table(table)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	engine, src := c.engine, c.sources[strings.ToLower(shape.Name())]
	c.mu.RUnlock()

	return engine.Run(ctx, projection, shape, src, orderBy)
}

// Render writes res to w in the configured output format.
func (c *Client) Render(w io.Writer, res *query.Result) error {
	f, err := output.New(c.cfg.Output, w, c.cfg.NullMarker)
	if err != nil {
		return err
	}
	return f.Format(res)
}
