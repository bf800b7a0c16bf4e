package cmd

import (
	"fmt"

	"github.com/PolarWolf314/envvault/internal/configs"
	"github.com/PolarWolf314/envvault/internal/ui"
	"github.com/PolarWolf314/envvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	prefixEnv  string
	prefixFile string

	PrefixCmd = &cobra.Command{
		Use:   "prefix",
		Short: "Show or change the session prefixes",
		Long: `The env prefix scopes 'envvault vars' commands. The file prefix scopes
'envvault file encrypt'. Both are stored in the session configuration and
always end with an underscore.`,
		PersistentPreRun: initLogger,
	}
)

func init() {
	addVerbosityFlags(PrefixCmd)

	prefixSetCmd.Flags().StringVar(&prefixEnv, "env", "", "prefix for store variables")
	prefixSetCmd.Flags().StringVar(&prefixFile, "file", "", "prefix for settings file keys")

	PrefixCmd.AddCommand(prefixSetCmd)
	PrefixCmd.AddCommand(prefixShowCmd)
}

func resetPrefixCommandState() {
	prefixEnv = ""
	prefixFile = ""
}

var prefixSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the env and file prefixes",
	Long: `Sets the prefixes used when no prefix is passed explicitly.
A prefix that does not end with an underscore gets one. Pass an empty
value to clear a prefix. Flags that are not given keep their current value.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting prefix set command")

		if !cmd.Flags().Changed("env") && !cmd.Flags().Changed("file") {
			fmt.Println(ui.Error.Sprint("✗") + " Nothing to set")
			fmt.Println(ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--env") + " and/or " + ui.Flag.Sprint("--file"))
			return nil
		}

		session, err := loadSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load session: %v", err)
		}

		envPrefix, filePrefix := session.Prefixes.Env, session.Prefixes.File
		if cmd.Flags().Changed("env") {
			envPrefix = prefixEnv
		}
		if cmd.Flags().Changed("file") {
			filePrefix = prefixFile
		}

		if err := workflows.SetPrefixes(session, envPrefix, filePrefix); err != nil {
			return Logger.ErrorfAndReturn("failed to save prefixes: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Prefixes updated")
		printPrefixes(session)
		return nil
	},
}

var prefixShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the session prefixes and settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting prefix show command")

		session, err := loadSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load session: %v", err)
		}

		printPrefixes(session)
		fmt.Printf("  %-14s %s\n", "settings file:", ui.Path.Sprint(session.Settings.ConfigPath))
		fmt.Printf("  %-14s %s\n", "store:", session.Store.Backend)
		fmt.Printf("  %-14s %s\n", "key source:", session.Keys.Source)
		return nil
	},
}

func printPrefixes(session *configs.Session) {
	fmt.Printf("  %-14s %s\n", "env prefix:", displayPrefix(session.Prefixes.Env))
	fmt.Printf("  %-14s %s\n", "file prefix:", displayPrefix(session.Prefixes.File))
}

func displayPrefix(p string) string {
	if p == "" {
		return ui.Muted.Sprint("not set")
	}
	return ui.Highlight.Sprint(p)
}
