package cmd

import (
	"strings"
	"testing"
)

func TestResolveFromStore(t *testing.T) {
	setupTestEnvironment(t)

	mustRunCLI(t, "vars", "add", "MYAPP", "API_KEY", "--value", "secret1")

	output := mustRunCLI(t, "resolve", "MYAPP_API_KEY")
	if !strings.Contains(output, "your variable store") || !strings.Contains(output, "secret1") {
		t.Errorf("Unexpected resolve output: %s", output)
	}
}

func TestResolvePlaintextFileThenEncrypt(t *testing.T) {
	dir := setupTestEnvironment(t)
	path := writeSettingsFile(t, dir, `<?xml version="1.0" encoding="utf-8"?>
<appSettings>
  <add key="CFG_X" value="plain" />
</appSettings>
`)

	output := mustRunCLI(t, "resolve", "CFG_X")
	if !strings.Contains(output, "plain") || !strings.Contains(output, "stored in plaintext") {
		t.Errorf("Unexpected resolve output: %s", output)
	}
	if strings.Contains(readTestFile(t, path), "enc:") {
		t.Fatal("File must not change without --encrypt")
	}

	output = mustRunCLI(t, "resolve", "CFG_X", "--encrypt")
	if !strings.Contains(output, "encrypted and") {
		t.Errorf("Unexpected encrypt output: %s", output)
	}
	content := readTestFile(t, path)
	if !strings.Contains(content, `value="enc:`) || strings.Contains(content, `value="plain"`) {
		t.Errorf("Expected encrypted value in file, got:\n%s", content)
	}

	output = mustRunCLI(t, "resolve", "CFG_X")
	if !strings.Contains(output, "decrypted") || !strings.Contains(output, "plain") {
		t.Errorf("Expected decrypted file value, got: %s", output)
	}
}

func TestResolveFileKeyAndConfigFlags(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeSettingsFile(t, dir, `<appSettings><add key="db_host" value="localhost" /></appSettings>`)

	output := mustRunCLI(t, "resolve", "MYAPP_DB_HOST", "--file-key", "DB_HOST", "--config", "setting.config")
	if !strings.Contains(output, "localhost") {
		t.Errorf("Unexpected resolve output: %s", output)
	}
}

func TestResolveNotFoundDiagnostics(t *testing.T) {
	dir := setupTestEnvironment(t)

	output := mustRunCLI(t, "resolve", "MISSING")
	if !strings.Contains(output, "does not exist") {
		t.Errorf("Expected missing file diagnostic, got: %s", output)
	}

	writeSettingsFile(t, dir, `<configuration />`)
	output = mustRunCLI(t, "resolve", "MISSING")
	if !strings.Contains(output, "no root <appSettings> element") {
		t.Errorf("Expected missing container diagnostic, got: %s", output)
	}

	writeSettingsFile(t, dir, `<appSettings />`)
	output = mustRunCLI(t, "resolve", "MISSING")
	if !strings.Contains(output, "has no value for") {
		t.Errorf("Expected missing entry diagnostic, got: %s", output)
	}
}

func TestResolveUnparsableFile(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeSettingsFile(t, dir, `<appSettings><add key=`)

	output, err := runCLI(t, "resolve", "MISSING")
	if err == nil {
		t.Fatal("Expected an error for an unparsable settings file")
	}
	if !strings.Contains(output, "could not be parsed") {
		t.Errorf("Expected parse diagnostic, got: %s", output)
	}
}
