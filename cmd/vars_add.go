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

var addValue string

func init() {
	varsAddCmd.Flags().StringVar(&addValue, "value", "", "value to store (prompted without echo when omitted)")
}

func resetVarsAddCommandState() {
	addValue = ""
}

var varsAddCmd = &cobra.Command{
	Use:   "add [PREFIX] NAME",
	Short: "Encrypt and store a variable under a prefix",
	Long: `Encrypts a value for the current user and stores it as PREFIX + NAME.

PREFIX defaults to the session's env prefix. When --value is omitted the
value is read from the terminal without echo, or from stdin when piped.
An existing variable with the same name is overwritten; its previous value
is shown first.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vars add command")
		ctx := cmd.Context()

		session, err := loadSession()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load session: %v", err)
		}

		prefix, base := session.Prefixes.Env, args[0]
		if len(args) == 2 {
			prefix, base = args[0], args[1]
		}
		prefix = workflows.NormalizePrefix(prefix)
		if prefix == "" {
			printNoPrefix()
			return nil
		}

		value := addValue
		if !cmd.Flags().Changed("value") {
			Logger.Debugf("Prompting for value of %s", prefix+base)
			value, err = utils.ReadSecret(fmt.Sprintf("Enter the value for %s: ", prefix+base))
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read value: %v", err)
			}
		}

		b, err := openBackend(ctx, session)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open variable store: %v", err)
		}
		defer b.Close()

		result, err := workflows.NewManager(b.Store, b.Codec, session).AddOne(ctx, prefix, base, value)
		switch {
		case errors.Is(err, kerrors.ErrInvalidName):
			fmt.Println(ui.Error.Sprint("✗") + " Variable name cannot be empty")
			return nil
		case errors.Is(err, kerrors.ErrEncryptFailed):
			fmt.Printf("%s Failed to encrypt value for %s. Variable not set.\n", ui.Error.Sprint("✗"), ui.Highlight.Sprint(prefix+base))
			return Logger.ErrorfAndReturn("%v", err)
		case err != nil:
			return Logger.ErrorfAndReturn("failed to add variable: %v", err)
		}

		if result.Existed {
			fmt.Printf("%s %s already existed with value %s; it was overwritten\n",
				ui.Warning.Sprint("⚠"), ui.Highlight.Sprint(result.Name), ui.Highlight.Sprint(result.PreviousValue))
		}
		fmt.Printf("%s Stored encrypted variable %s\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(result.Name))
		Logger.Infof("Stored as: %s", ui.Preview(result.Stored, 40))
		printRestartNotice()
		return nil
	},
}
