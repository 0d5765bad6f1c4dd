// Package store looks up a rule's configuration directly in a relational
// database.
//
// The query is
//
//	SELECT * FROM <table> WHERE <name column> = <placeholder>
//
// and the first matching row is returned with its columns in table order.
// A rule with no row yields lookup.StatusNotConfigured.
//
// Supported drivers:
//
//   - "oracle" (github.com/sijms/go-ora/v2): the DSN is built from the request
//     credentials, so one Store serves many databases. Pools are kept per DSN.
//   - "sqlite" (modernc.org/sqlite, pure Go) and "sqlite3"
//     (github.com/mattn/go-sqlite3, CGO): the DSN is Config.Path and request
//     credentials are ignored.
package store
