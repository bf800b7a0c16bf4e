package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/envvault/internal/errors"
	"github.com/PolarWolf314/envvault/internal/ui"
	"github.com/PolarWolf314/envvault/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	resolveFileKey string
	resolveConfig  string
	resolveEncrypt bool

	ResolveCmd = &cobra.Command{
		Use:   "resolve ENV_NAME",
		Short: "Look a setting up in the store, then in the settings file",
		Long: `Looks ENV_NAME up in your variable store. When the store has no such
variable, the settings file is searched for --file-key (default ENV_NAME).

A store value always wins, even one that cannot be decrypted. A value
found in plaintext in the settings file can be encrypted in place with
--encrypt.`,
		Args:             cobra.ExactArgs(1),
		PersistentPreRun: initLogger,
		RunE:             runResolve,
	}
)

func init() {
	addVerbosityFlags(ResolveCmd)

	ResolveCmd.Flags().StringVar(&resolveFileKey, "file-key", "", "key to look up in the settings file (default ENV_NAME)")
	ResolveCmd.Flags().StringVar(&resolveConfig, "config", "", "settings file (default from session)")
	ResolveCmd.Flags().BoolVar(&resolveEncrypt, "encrypt", false, "encrypt a plaintext file value in place")
}

func resetResolveCommandState() {
	resolveFileKey = ""
	resolveConfig = ""
	resolveEncrypt = false
}

func runResolve(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting resolve command")
	ctx := cmd.Context()
	envName := args[0]

	session, err := loadSession()
	if err != nil {
		return Logger.ErrorfAndReturn("failed to load session: %v", err)
	}

	fileKey := resolveFileKey
	if fileKey == "" {
		fileKey = envName
	}
	configPath := resolveConfig
	if configPath == "" {
		configPath = session.Settings.ConfigPath
	}
	Logger.Debugf("Resolving %s (file key %s, settings file %s)", envName, fileKey, configPath)

	b, err := openBackend(ctx, session)
	if err != nil {
		return Logger.ErrorfAndReturn("failed to open variable store: %v", err)
	}
	defer b.Close()

	resolver := workflows.NewResolver(b.Store, b.Codec, session)
	res, err := resolver.Resolve(ctx, envName, fileKey, configPath)
	if err != nil {
		switch {
		case errors.Is(err, kerrors.ErrConfigParse):
			fmt.Printf("%s Settings file %s could not be parsed\n", ui.Error.Sprint("✗"), ui.Path.Sprint(configPath))
		case errors.Is(err, kerrors.ErrConfigIO):
			fmt.Printf("%s Settings file %s could not be read\n", ui.Error.Sprint("✗"), ui.Path.Sprint(configPath))
		}
		return Logger.ErrorfAndReturn("failed to resolve %s: %v", envName, err)
	}

	switch res.Origin {
	case workflows.OriginStore:
		printResolvedValue(res, envName, "your variable store")
		return nil
	case workflows.OriginFile:
		printResolvedValue(res, fileKey, ui.Path.Sprint(configPath))
	default:
		printNotFound(res, envName, fileKey, configPath)
		return nil
	}

	if !res.PlaintextInFile() {
		return nil
	}

	fmt.Printf("%s %s is stored in plaintext in %s\n", ui.Warning.Sprint("⚠"), ui.Highlight.Sprint(fileKey), ui.Path.Sprint(configPath))
	if !resolveEncrypt {
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("envvault resolve "+envName+" --encrypt") + " to encrypt it in place")
		return nil
	}

	if err := resolver.EncryptAndPersist(res, res.Value); err != nil {
		fmt.Printf("%s Encryption of %s failed. File not updated.\n", ui.Error.Sprint("✗"), ui.Highlight.Sprint(fileKey))
		return Logger.ErrorfAndReturn("%v", err)
	}
	fmt.Printf("%s %s encrypted and %s updated\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(fileKey), ui.Path.Sprint(configPath))
	Logger.Infof("New raw value: %s", ui.Preview(res.Entry.Value, 40))
	return nil
}

func printResolvedValue(res *workflows.Resolution, name, source string) {
	if res.WasEncryptedInSource && !res.DecryptSucceeded {
		fmt.Printf("%s %s was found in %s but could not be decrypted: %s\n",
			ui.Error.Sprint("✗"), ui.Highlight.Sprint(name), source, ui.Error.Sprint(res.Value))
		if errors.Is(res.DecodeErr, kerrors.ErrKeyMismatch) {
			fmt.Println(ui.Info.Sprint("→") + " Values can only be decrypted by the user who encrypted them")
		}
		return
	}

	status := "plaintext"
	if res.WasEncryptedInSource {
		status = "decrypted"
	}
	fmt.Printf("%s %s found in %s %s\n", ui.Success.Sprint("✓"), ui.Highlight.Sprint(name), source, ui.Muted.Sprint(status))
	fmt.Println(res.Value)
}

func printNotFound(res *workflows.Resolution, envName, fileKey, configPath string) {
	fmt.Printf("%s %s is not set in your variable store\n", ui.Error.Sprint("✗"), ui.Highlight.Sprint(envName))
	switch {
	case !res.FileExists:
		fmt.Printf("%s Settings file %s does not exist\n", ui.Info.Sprint("→"), ui.Path.Sprint(configPath))
	case !res.ContainerExists:
		fmt.Printf("%s Settings file %s has no root <appSettings> element\n", ui.Info.Sprint("→"), ui.Path.Sprint(configPath))
	default:
		fmt.Printf("%s Settings file %s has no value for %s\n", ui.Info.Sprint("→"), ui.Path.Sprint(configPath), ui.Highlight.Sprint(fileKey))
	}
	fmt.Println(ui.Info.Sprint("→") + " Add it with " + ui.Code.Sprint("envvault vars add"))
}
