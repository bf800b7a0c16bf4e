// Package audit records envvault operations in a per-user audit log.
//
// Each mutating operation (add, remove, encrypt-entry, bulk-encrypt,
// set-prefixes) appends one JSON object per line to:
//
//	$XDG_CONFIG_HOME/envvault/audit.jsonl
//
// Entries carry variable names and outcome counts but never values.
//
// # Failure Handling
//
// Audit logging is best-effort. If the log cannot be written the command
// continues without error.
//
// # Reading Logs
//
// ReadEntries parses the log. Malformed lines are skipped to tolerate
// partial writes.
package audit
