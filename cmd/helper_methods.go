package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/envvault/internal/configs"
	"github.com/PolarWolf314/envvault/internal/secrets"
	"github.com/PolarWolf314/envvault/internal/store"
	"github.com/PolarWolf314/envvault/internal/ui"
	"github.com/PolarWolf314/envvault/internal/utils"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines; the cleanup function
// adds one before printing.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// backend is the store and codec for the current session.
type backend struct {
	Store store.Store
	Codec *secrets.Codec
	close func() error
}

// Close releases the store's resources.
func (b *backend) Close() {
	if b.close == nil {
		return
	}
	if err := b.close(); err != nil {
		Logger.Warnf("Failed to close variable store: %v", err)
	}
}

// loadSession loads the session configuration; replaced in tests.
var loadSession = configs.EnsureSession

// openBackend opens the store and codec selected by the session; replaced in tests.
var openBackend = func(ctx context.Context, session *configs.Session) (*backend, error) {
	settings := configs.UserEnvvaultSettings

	codec, err := openCodec(session, settings)
	if err != nil {
		return nil, err
	}

	switch session.Store.Backend {
	case configs.StoreBackendSQLite:
		Logger.Debugf("Opening SQLite store at %s", settings.DatabasePath())
		st, err := store.OpenSQLiteStore(ctx, settings.DatabasePath())
		if err != nil {
			return nil, err
		}
		return &backend{Store: st, Codec: codec, close: st.Close}, nil
	default:
		Logger.Debugf("Using file store at %s", settings.VariablesPath())
		return &backend{Store: store.NewFileStore(settings.VariablesPath()), Codec: codec}, nil
	}
}

func openCodec(session *configs.Session, settings *configs.UserSettings) (*secrets.Codec, error) {
	var source secrets.KeySource
	switch session.Keys.Source {
	case configs.KeySourceFile:
		fileSource := secrets.FileKeySource{Path: settings.KeyFilePath()}
		if perm, ok := fileSource.Permissions(); !ok {
			Logger.WarnfAlways("Key file %s has permissions %o, expected 600", fileSource.Path, perm)
		}
		Logger.Debugf("Loading protection key from %s", fileSource.Path)
		source = fileSource
	default:
		Logger.Debugf("Loading protection key from the OS keyring for %s", settings.Username)
		source = secrets.KeyringKeySource{Service: secrets.KeyringService, Account: settings.Username}
	}

	protector, err := secrets.NewUserProtector(source, settings.Username)
	if err != nil {
		return nil, err
	}
	return secrets.NewCodec(protector), nil
}

// prefixArg returns the prefix given on the command line, falling back to
// the session prefix.
func prefixArg(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}

// confirmAction prompts the user and reports whether they answered yes.
func confirmAction(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := utils.ReadLine(os.Stdin)
	if err != nil {
		Logger.Errorf("Failed to read response: %v", err)
		return false
	}
	return utils.IsAffirmative(response)
}

// printNoPrefix explains how to configure a missing prefix.
func printNoPrefix() {
	fmt.Println(ui.Error.Sprint("✗") + " No variable prefix given and none is set for this session")
	fmt.Println(ui.Info.Sprint("→") + " Pass one as an argument or run " + ui.Code.Sprint("envvault prefix set --env MYAPP"))
}

// printRestartNotice reminds the user that running programs keep their old environment.
func printRestartNotice() {
	fmt.Println(ui.Info.Sprint("→") + " Programs and shells that are already running keep their old values; restart them to pick up the change")
}
