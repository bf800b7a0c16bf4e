package cmd

import (
	"fmt"

	"github.com/PolarWolf314/envvault/internal/ui"
	"github.com/PolarWolf314/envvault/internal/utils"
	"github.com/PolarWolf314/envvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	encryptConfig string
	encryptPrefix string
	encryptForce  bool
	encryptDryRun bool
)

func init() {
	fileEncryptCmd.Flags().StringVar(&encryptConfig, "config", "", "settings file (default from session)")
	fileEncryptCmd.Flags().StringVar(&encryptPrefix, "prefix", "", "only encrypt keys with this prefix (default session file prefix, empty for all)")
	fileEncryptCmd.Flags().BoolVar(&encryptForce, "force", false, "skip confirmation prompt")
	fileEncryptCmd.Flags().BoolVar(&encryptDryRun, "dry-run", false, "show what would be encrypted without making changes")
}

func resetFileEncryptCommandState() {
	encryptConfig = ""
	encryptPrefix = ""
	encryptForce = false
	encryptDryRun = false
}

var fileEncryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt every plaintext value in the settings file",
	Long: `Encrypts the value of every settings entry that is still plaintext and
whose key starts with the prefix. The file is saved once at the end, and
only if something changed.

Use --dry-run to preview which entries would be encrypted.
Use --force to skip the confirmation prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting file encrypt command")
		ctx := cmd.Context()

		session, err := loadSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load session: %v", err)
		}

		configPath := encryptConfig
		if configPath == "" {
			configPath = session.Settings.ConfigPath
		}
		prefix := session.Prefixes.File
		if cmd.Flags().Changed("prefix") {
			prefix = encryptPrefix
		}
		prefix = workflows.NormalizePrefix(prefix)
		Logger.Debugf("Encrypting plaintext entries in %s with prefix %q", configPath, prefix)

		b, err := openBackend(ctx, session)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open variable store: %v", err)
		}
		defer b.Close()

		manager := workflows.NewManager(b.Store, b.Codec, session)

		preview, err := manager.BulkEncryptPlainEntries(configPath, prefix, workflows.BulkEncryptOptions{DryRun: true})
		if err != nil {
			fmt.Printf("%s Could not load %s\n", ui.Error.Sprint("✗"), ui.Path.Sprint(configPath))
			return Logger.ErrorfAndReturn("%v", err)
		}

		if len(preview.Targeted) == 0 {
			if prefix != "" {
				fmt.Printf("%s No plaintext settings in %s match prefix %s\n", ui.Success.Sprint("✓"), ui.Path.Sprint(configPath), ui.Highlight.Sprint(prefix))
			} else {
				fmt.Printf("%s No plaintext settings in %s need encryption\n", ui.Success.Sprint("✓"), ui.Path.Sprint(configPath))
			}
			return nil
		}

		if encryptDryRun {
			fmt.Printf("[dry-run] Would encrypt %d setting(s):", len(preview.Targeted))
			fmt.Print(utils.FormatNames(preview.Targeted))
			fmt.Println("\nNo changes made.")
			return nil
		}

		fmt.Print("The following plaintext settings will be encrypted:")
		fmt.Print(utils.FormatNames(preview.Targeted))

		if !encryptForce {
			fmt.Println()
			if !confirmAction("Do you want to proceed?") {
				fmt.Println("Aborted. No settings were encrypted.")
				return nil
			}
		}

		spinner, cleanup := startSpinner("Encrypting settings...")
		result, err := manager.BulkEncryptPlainEntries(configPath, prefix, workflows.BulkEncryptOptions{})
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Could not save changes to " + ui.Path.Sprint(configPath)
			cleanup()
			return Logger.ErrorfAndReturn("%v", err)
		}

		msg := ""
		for _, f := range result.Failed {
			Logger.Debugf("Encrypting %s failed: %v", f.Key, f.Err)
			msg += fmt.Sprintf("%s Could not encrypt %s; it remains plaintext\n", ui.Error.Sprint("✗"), ui.Highlight.Sprint(f.Key))
		}
		if result.Saved {
			msg += fmt.Sprintf("%s %s updated. %d setting(s) encrypted.", ui.Success.Sprint("✓"), ui.Path.Sprint(configPath), result.EncryptedCount())
		} else {
			msg += ui.Warning.Sprint("⚠") + " No settings were encrypted; the file was not changed."
		}
		spinner.FinalMSG = msg
		cleanup()
		return nil
	},
}
