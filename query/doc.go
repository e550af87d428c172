// Package query evaluates select queries over typed rows.
//
// The query surface is small:
//   - a projection list of column references, string and number literals,
//     NULL, CAST(expr AS type) and the wildcard *
//   - AS aliases on projected expressions
//   - double-quoted identifiers for names that clash with keywords
//   - an optional ORDER BY list; a bare ASC or DESC sets the direction of
//     the key before it
//
// Keywords are case-insensitive.
//
// # Basic Usage
//
// Run a projection against a row shape and a row store:
//
//	engine := query.NewEngine(reg)
//	res, err := engine.Run(ctx, "hostname, port", servers, src, "order by port desc, hostname")
//	if err != nil {
//	    return err
//	}
//	for _, row := range res.Strings("NULL") {
//	    fmt.Println(row)
//	}
//
// Or a whole statement, resolving the table through a catalog:
//
//	engine := query.NewEngine(reg, query.WithCatalog(catalog))
//	res, err := engine.Query(ctx, "select * from server order by hostname", map[string]reader.Source{
//	    "server": src,
//	})
//
// # Errors
//
// Query failures are reported as *Error; row store failures are returned
// wrapped as they are. Stage StageParse means the projection or
// order-by text was malformed or referenced something the row shape does not
// have; such failures happen before the row store is read. Stage StageEval
// means a value could not be computed for some row; the whole query fails
// rather than returning a partial table.
//
// # Rendering
//
// Values are formatted with the registry. Columns whose type has a display
// precision, such as time, are formatted at the widest natural precision
// found in the column so that every row lines up.
package query
