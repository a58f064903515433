// Package dataset loads uploaded work-order spreadsheets into an in-memory
// table with a fixed logical schema. Column names are normalized before any
// lookup, and per-cell coercion failures degrade to nil values rather than
// load failures.
package dataset
