package cmd

import (
	logger "github.com/PolarWolf314/envvault/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	VarsCmd = &cobra.Command{
		Use:   "vars",
		Short: "Manage encrypted variables in your personal store",
		Long: `Adds, lists and removes groups of variables that share a prefix.

Values are encrypted for the current user before they are stored and
decrypted when listed.

Examples:
  # List every variable starting with MYAPP_
  envvault vars list MYAPP

  # Add MYAPP_API_KEY, prompting for the value
  envvault vars add MYAPP API_KEY

  # Remove every variable under the session prefix
  envvault vars remove`,
		PersistentPreRun: initLogger,
	}
)

func init() {
	addVerbosityFlags(VarsCmd)

	VarsCmd.AddCommand(varsListCmd)
	VarsCmd.AddCommand(varsAddCmd)
	VarsCmd.AddCommand(varsRemoveCmd)
}

// initLogger builds the shared logger from the verbosity flags.
func initLogger(cmd *cobra.Command, args []string) {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
}

func addVerbosityFlags(c *cobra.Command) {
	c.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	c.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// Helper functions for testing

// GetVarsCmd returns the VarsCmd for testing.
func GetVarsCmd() *cobra.Command {
	return VarsCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetVarsAddCommandState()
	resetVarsRemoveCommandState()
	resetPrefixCommandState()
	resetResolveCommandState()
	resetFileEncryptCommandState()
	for _, c := range []*cobra.Command{VarsCmd, PrefixCmd, ResolveCmd, FileCmd} {
		resetCobraFlagState(c)
	}
}

// resetCobraFlagState clears Changed on every flag of c and its subcommands.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
