// Package ui provides semantic text formatting for CLI output.
//
// Formatters render with colors when the terminal supports them. When
// NO_COLOR is set or the terminal doesn't support colors, text decorations
// (backticks, quotes, parentheses) are used instead.
//
//	ui.Code.Sprint("envvault vars list")   // Commands
//	ui.Path.Sprint("setting.config")       // File paths
//	ui.Success.Sprint("✓")                 // Success indicators
//	ui.Error.Sprint("✗")                   // Error indicators
//	ui.Highlight.Sprint("MYAPP_API_KEY")   // Variable names and prefixes
//	ui.Muted.Sprint("decrypted")           // Decode status
package ui
