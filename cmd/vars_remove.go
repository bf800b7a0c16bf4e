package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/envvault/internal/errors"
	"github.com/PolarWolf314/envvault/internal/ui"
	"github.com/PolarWolf314/envvault/internal/utils"
	"github.com/PolarWolf314/envvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	removeForce  bool
	removeDryRun bool
)

func init() {
	varsRemoveCmd.Flags().BoolVar(&removeForce, "force", false, "skip confirmation prompt")
	varsRemoveCmd.Flags().BoolVar(&removeDryRun, "dry-run", false, "show what would be removed without making changes")
}

func resetVarsRemoveCommandState() {
	removeForce = false
	removeDryRun = false
}

var varsRemoveCmd = &cobra.Command{
	Use:   "remove [PREFIX]",
	Short: "Remove every variable under a prefix",
	Long: `Removes every variable whose name starts with PREFIX.

The store may keep a deleted variable visible for a while, so each removal
is checked. A variable that survives deletion is overwritten with an empty
value, and reported as failed if even that does not stick.

Use --dry-run to preview what would be removed.
Use --force to skip the confirmation prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vars remove command")
		ctx := cmd.Context()

		session, err := loadSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load session: %v", err)
		}

		prefix := workflows.NormalizePrefix(prefixArg(args, session.Prefixes.Env))
		if prefix == "" {
			printNoPrefix()
			return nil
		}

		b, err := openBackend(ctx, session)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open variable store: %v", err)
		}
		defer b.Close()

		manager := workflows.NewManager(b.Store, b.Codec, session)

		preview, err := manager.RemoveAll(ctx, prefix, workflows.RemoveOptions{DryRun: true})
		if errors.Is(err, kerrors.ErrPrefixRequired) {
			printNoPrefix()
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to find variables: %v", err)
		}

		if len(preview.Targeted) == 0 {
			fmt.Printf("%s No variables found starting with %s. Nothing to remove.\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(prefix))
			return nil
		}

		if removeDryRun {
			fmt.Printf("[dry-run] Would remove %d variable(s):", len(preview.Targeted))
			fmt.Print(utils.FormatNames(preview.Targeted))
			fmt.Println("\nNo changes made.")
			return nil
		}

		fmt.Printf("Found %d variable(s) starting with %s:", len(preview.Targeted), ui.Highlight.Sprint(prefix))
		fmt.Print(utils.FormatNames(preview.Targeted))

		if !removeForce {
			fmt.Println()
			if !confirmAction("Do you want to remove these variables?") {
				fmt.Println("Aborted. No variables were removed.")
				return nil
			}
		}

		spinner, cleanup := startSpinner("Removing variables...")
		result, err := manager.RemoveAll(ctx, prefix, workflows.RemoveOptions{})
		if err != nil {
			cleanup()
			return Logger.ErrorfAndReturn("failed to remove variables: %v", err)
		}

		for _, o := range result.Outcomes {
			if o.DeleteErr != nil {
				Logger.Warnf("Delete of %s reported: %v", o.Name, o.DeleteErr)
			}
			Logger.Debugf("%s: %s", o.Name, o.State)
		}

		spinner.FinalMSG = formatRemoveSummary(result)
		cleanup()

		if result.RemovedCount+result.BlankedCount > 0 {
			printRestartNotice()
		}
		return nil
	},
}

func formatRemoveSummary(result *workflows.RemoveResult) string {
	msg := fmt.Sprintf("%s Variables confirmed removed: %d", ui.Success.Sprint("✓"), result.RemovedCount)

	if result.BlankedCount > 0 {
		msg += fmt.Sprintf("\n%s Variables that could not be deleted and were blanked instead: %d", ui.Warning.Sprint("⚠"), result.BlankedCount)
	}

	if len(result.FailedNames) > 0 {
		msg += fmt.Sprintf("\n%s Variables that could NOT be removed or blanked: %d", ui.Error.Sprint("✗"), len(result.FailedNames))
		for _, o := range result.Outcomes {
			if o.State != workflows.PersistedFailure {
				continue
			}
			msg += "\n    - " + ui.Highlight.Sprint(o.Name)
			if o.Remaining != "" {
				msg += " (still " + ui.Highlight.Sprint(o.Remaining) + ")"
			}
			if o.Err != nil {
				Logger.Debugf("%s: %v", o.Name, o.Err)
			}
		}
	}
	return msg
}
