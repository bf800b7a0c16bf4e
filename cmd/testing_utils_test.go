package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/envvault/internal/configs"
	logger "github.com/PolarWolf314/envvault/internal/logging"
	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

// setupTestEnvironment points user settings at a temporary directory, mocks
// the OS keyring and changes into a temporary working directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalSettings := configs.UserEnvvaultSettings

	tempDir := t.TempDir()
	userDir := t.TempDir()

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	configs.UserEnvvaultSettings = &configs.UserSettings{
		UserConfigsPath: filepath.Join(userDir, "config"),
		UserDataPath:    filepath.Join(userDir, "data"),
		Username:        "testuser",
	}
	keyring.MockInit()
	ResetGlobalState()
	SetLogger(logger.Logger{})

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserEnvvaultSettings = originalSettings
		ResetGlobalState()
	})

	return tempDir
}

// createTestCLI builds a root command wired like main and set to run args.
func createTestCLI(args ...string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "envvault",
		Short: "envvault - per-user encrypted variables with a settings file fallback.",
	}
	rootCmd.AddCommand(PrefixCmd)
	rootCmd.AddCommand(VarsCmd)
	rootCmd.AddCommand(ResolveCmd)
	rootCmd.AddCommand(FileCmd)
	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes one command line with fresh flag state and returns its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ResetGlobalState()
	return captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
}

// mustRunCLI is runCLI failing the test on error.
func mustRunCLI(t *testing.T, args ...string) string {
	t.Helper()
	output, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("envvault %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

func writeSettingsFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, configs.DefaultConfigPath)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
