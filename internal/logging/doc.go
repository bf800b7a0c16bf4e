// Package logger provides leveled logging for envvault CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is prefixed with colored tags.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()          // Shown with --verbose or --debug
//	Logger.Debugf()         // Shown only with --debug
//	Logger.Warnf()          // Shown with --verbose or --debug
//	Logger.WarnfAlways()    // Always shown
//	Logger.Errorf()         // Always shown
//	Logger.ErrorfAndReturn() // Builds an error, logged with --debug
//
// Command groups create a logger in their PersistentPreRun and pass it to
// helpers.
package logger
