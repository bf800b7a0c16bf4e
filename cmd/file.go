package cmd

import (
	"github.com/spf13/cobra"
)

var FileCmd = &cobra.Command{
	Use:   "file",
	Short: "Work with the XML settings file",
	Long: `Operates on the <appSettings> file that 'envvault resolve' falls back to.
Entries are <add key="..." value="..."/> elements; everything else in the
file is written back unchanged.`,
	PersistentPreRun: initLogger,
}

func init() {
	addVerbosityFlags(FileCmd)

	FileCmd.AddCommand(fileEncryptCmd)
}
