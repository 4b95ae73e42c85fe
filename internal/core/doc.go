// Package core holds the asset inventory business logic, independent of any
// transport. HTTP handlers, the background worker and tests all use it
// through [Service].
//
// # Assets
//
// [Service.SearchAssets] pages through assets with a free-text term and
// tipo, status and location filters. Pages are cached in a
// [cache.QueryCache]; every mutation invalidates the cache. Creates, updates
// and deletes validate input with the asset schema, pinning unidade and
// status to the catalog, and write an audit entry.
//
// New assets are staged in the recent list under a temporary id until the
// insert returns, then confirmed or dropped (see [StagedList]).
//
// # Movements
//
// [Service.MoveAsset] inserts the movement record and updates the asset's
// location and custodian in one transaction.
//
// # Bulk import
//
// [Service.ImportAssets] inserts rows parsed by the tabular importer in
// batches using COPY. A failing batch is recorded and the import continues.
// Concurrent imports are bounded by an [ImportLimiter].
//
// # Error Handling
//
// Technical errors are mapped to Portuguese messages with support codes by
// [MapError]:
//
//   - DB: database errors (constraints, connections, timeouts)
//   - VAL: validation errors (form input, dates, numbers)
//   - FILE: file errors (size, empty upload, format)
//   - IMP: import errors (missing columns, busy importer)
//   - AUTH: authentication and permission errors
//   - AST: unknown assets and reports
//   - RATE: rate limiting
//
// Reads retry transient database failures with [WithRetry].
//
// # Audit Logging
//
// Data changes and sign-ins are recorded with a severity:
//
//   - Low: exports, sign-in, sign-out
//   - Medium: asset creation, edits and moves
//   - High: deletions, batch status changes, imports
//   - Critical: failed sign-in attempts
//
// Entries older than the retention window are purged by
// [Service.StartPurgeScheduler].
package core
