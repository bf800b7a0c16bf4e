// Package utils provides shared helpers for envvault.
//
// # System Utilities
//
//   - GetUsername: returns the current OS account, which protection keys are bound to
//
// # String Utilities
//
//   - FormatNames: formats variable names for human-readable output
//   - IsAffirmative: interprets confirmation prompt responses
//
// # Terminal Utilities
//
//   - ReadSecret: reads a value without echo, or a line when stdin is piped
//   - ReadLine: reads a single line from a reader
//   - IsTerminal: checks if stdin is a terminal
package utils
