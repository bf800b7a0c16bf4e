// Package store provides the per-user variable namespace envvault manages.
//
// A Store maps names to string values. Names are matched case-insensitively
// and keep the spelling they were first written with. Three backends exist:
//
//   - FileStore: a TOML file under the user's config directory
//   - SQLiteStore: a SQLite database (bun over the sqliteshim driver)
//   - MemoryStore: process memory, used by tests
//
// Delete is best effort by contract. Callers that need to know whether a
// name is really gone must read it back.
package store
