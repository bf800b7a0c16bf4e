package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/envvault/internal/errors"
	"github.com/PolarWolf314/envvault/internal/ui"
	"github.com/PolarWolf314/envvault/internal/workflows"

	"github.com/spf13/cobra"
)

var varsListCmd = &cobra.Command{
	Use:   "list [PREFIX]",
	Short: "List variables under a prefix with their decrypted values",
	Long: `Lists every variable whose name starts with PREFIX, decrypting values
for display. PREFIX defaults to the session's env prefix and gains a
trailing underscore when it has none.

Values that cannot be decrypted, for example because another user
encrypted them, are shown with a failure marker.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vars list command")
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
		Logger.Debugf("Listing variables with prefix %s", prefix)

		b, err := openBackend(ctx, session)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open variable store: %v", err)
		}
		defer b.Close()

		entries, err := workflows.NewManager(b.Store, b.Codec, session).List(ctx, prefix)
		if errors.Is(err, kerrors.ErrPrefixRequired) {
			printNoPrefix()
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to list variables: %v", err)
		}

		if len(entries) == 0 {
			fmt.Printf("%s No variables found starting with %s\n", ui.Info.Sprint("→"), ui.Highlight.Sprint(prefix))
			return nil
		}

		fmt.Printf("%s Found %d variable(s) starting with %s:\n", ui.Success.Sprint("✓"), len(entries), ui.Highlight.Sprint(prefix))
		for _, e := range entries {
			fmt.Println("  - " + formatVariable(e))
		}
		return nil
	},
}

func formatVariable(e workflows.VariableEntry) string {
	name := ui.Highlight.Sprint(e.Name)
	switch {
	case e.Err != nil && !e.WasEncrypted && e.Value == "":
		Logger.Debugf("Failed to read %s: %v", e.Name, e.Err)
		return fmt.Sprintf("%s %s", name, ui.Error.Sprintf("[READ FAILED: %v]", e.Err))
	case e.WasEncrypted && !e.DecryptOK:
		return fmt.Sprintf("%s = %s %s", name, ui.Error.Sprint(e.Value), ui.Muted.Sprint("encrypted, decryption failed"))
	case e.WasEncrypted:
		return fmt.Sprintf("%s = %s %s", name, e.Value, ui.Muted.Sprint("decrypted"))
	default:
		return fmt.Sprintf("%s = %s %s", name, e.Value, ui.Muted.Sprint("plaintext"))
	}
}
