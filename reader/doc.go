// Package reader defines how the query engine obtains rows and provides two
// row stores: an in-memory one and one backed by Apache Parquet files.
//
// A Row exposes typed values by column name. A Source hands out an ordered
// snapshot of rows; the engine never observes changes made to the store
// after the snapshot was taken.
//
// # Basic Usage
//
// Building an in-memory store:
//
//	accounts := schema.MustTable("account",
//	    schema.Column{Name: "accounting", Type: reg.MustType(schema.TypeAccount)},
//	    schema.Column{Name: "created", Type: reg.MustType(schema.TypeTime)},
//	)
//	rec, err := reader.ParseRecord(reg, accounts, map[string]string{
//	    "accounting": "AOINDUSTRIES",
//	    "created":    "2024-01-02 03:04:05",
//	})
//	if err != nil {
//	    return err
//	}
//	src := reader.NewMemorySource(accounts, rec)
//
// Reading Parquet files, one or many through a glob pattern:
//
//	table, err := reader.ShapeFromFile(reg, "account", "data/account.parquet")
//	if err != nil {
//	    return err
//	}
//	src := reader.NewParquetSource(reg, table, "data/account-*.parquet")
//	rows, err := src.Snapshot(ctx)
//
// Parquet values are converted into the column types of the row shape with
// the registry's cast rules, falling back to the column type's text parser.
package reader
