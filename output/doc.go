// Package output renders query results.
//
// Supported formats:
//   - text: aligned columns with a header, a dashed rule and a row count
//   - table: a bordered table
//   - csv: comma-separated values with a header row
//   - jsonl: one JSON object per row
//
// Example usage:
//
//	formatter, err := output.New("text", os.Stdout, "NULL")
//	if err != nil {
//	    return err
//	}
//	if err := formatter.Format(res); err != nil {
//	    return err
//	}
package output
