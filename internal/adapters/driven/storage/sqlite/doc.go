// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - DocumentStore: Document and derived content persistence
//   - DeviceStore: Registered device persistence
//   - SchedulerStore: Scheduled task state and run history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory and applied in order at startup.
//
// # Data Location
//
// By default, the database is stored at ~/.juris/data/juris.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Completing a document's processing runs in a single
// transaction so content and the processed flag change together.
package sqlite
