// Package sqlite provides the SQLite-backed Document Store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory as .up.sql files embedded at compile time.
//
// # Data Location
//
// By default, the database is stored at <dataDir>/faqdex.db.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode. The usage counter is bumped with a
// single UPDATE so concurrent bumps never read stale values.
package sqlite
