// Package sqlite implements the run audit store on SQLite via
// modernc.org/sqlite, a pure-Go driver requiring no cgo.
package sqlite
