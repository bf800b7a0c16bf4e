package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/envvault/cmd"
	"github.com/PolarWolf314/envvault/internal/ui"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "envvault",
	Short: "envvault - per-user encrypted variables with a settings file fallback.",
	Long: `envvault keeps secrets in a personal variable store, encrypted so that
only your user account can read them, and falls back to an XML settings
file for values that are not in the store.

Usage:
  envvault <command> [flags]

Available Commands:
  prefix     Show or change the session prefixes
  vars       Add, list and remove prefixed variables
  resolve    Look a setting up in the store, then the settings file
  file       Encrypt plaintext values in the settings file

Run 'envvault help <command>' for more details on a specific command.
`,
	Run: func(c *cobra.Command, args []string) {
		fmt.Println()
		figure.NewColorFigure("envvault", "small", "green", true).Print()
		fmt.Println()
		fmt.Println("Welcome to envvault! Run " + ui.Code.Sprint("envvault --help") + " to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.PrefixCmd)
	rootCmd.AddCommand(cmd.VarsCmd)
	rootCmd.AddCommand(cmd.ResolveCmd)
	rootCmd.AddCommand(cmd.FileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
