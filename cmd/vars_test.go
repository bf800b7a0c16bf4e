package cmd

import (
	"strings"
	"testing"

	"github.com/PolarWolf314/envvault/internal/audit"
	"github.com/PolarWolf314/envvault/internal/configs"
)

func TestVarsAddListRemove(t *testing.T) {
	setupTestEnvironment(t)

	mustRunCLI(t, "prefix", "set", "--env", "MYAPP")

	output := mustRunCLI(t, "vars", "add", "API_KEY", "--value", "secret1")
	if !strings.Contains(output, "Stored encrypted variable") || !strings.Contains(output, "MYAPP_API_KEY") {
		t.Errorf("Unexpected add output: %s", output)
	}

	stored := readTestFile(t, configs.UserEnvvaultSettings.VariablesPath())
	if strings.Contains(stored, "secret1") || !strings.Contains(stored, "enc:") {
		t.Errorf("Expected only ciphertext in the store file, got:\n%s", stored)
	}

	output = mustRunCLI(t, "vars", "list")
	if !strings.Contains(output, "MYAPP_API_KEY") || !strings.Contains(output, "secret1") || !strings.Contains(output, "decrypted") {
		t.Errorf("Unexpected list output: %s", output)
	}

	output = mustRunCLI(t, "vars", "remove", "--force")
	if !strings.Contains(output, "Variables confirmed removed: 1") {
		t.Errorf("Unexpected remove output: %s", output)
	}

	output = mustRunCLI(t, "vars", "list")
	if !strings.Contains(output, "No variables found") {
		t.Errorf("Expected empty list after remove, got: %s", output)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	var ops []string
	for _, e := range entries {
		ops = append(ops, e.Operation)
	}
	if strings.Join(ops, ",") != "set-prefixes,add,remove" {
		t.Errorf("Unexpected audit trail: %v", ops)
	}
}

func TestVarsAddOverwriteReportsPreviousValue(t *testing.T) {
	setupTestEnvironment(t)

	mustRunCLI(t, "vars", "add", "APP", "TOKEN", "--value", "first")
	output := mustRunCLI(t, "vars", "add", "APP", "TOKEN", "--value", "second")

	if !strings.Contains(output, "already existed") || !strings.Contains(output, "first") {
		t.Errorf("Expected previous value notice, got: %s", output)
	}

	output = mustRunCLI(t, "vars", "list", "APP")
	if !strings.Contains(output, "second") || strings.Contains(output, "first") {
		t.Errorf("Expected overwritten value, got: %s", output)
	}
}

func TestVarsRemoveDryRun(t *testing.T) {
	setupTestEnvironment(t)

	mustRunCLI(t, "vars", "add", "TEST", "A", "--value", "1")
	mustRunCLI(t, "vars", "add", "TEST", "B", "--value", "2")

	output := mustRunCLI(t, "vars", "remove", "TEST", "--dry-run")
	if !strings.Contains(output, "[dry-run] Would remove 2 variable(s)") || !strings.Contains(output, "No changes made.") {
		t.Errorf("Unexpected dry run output: %s", output)
	}

	output = mustRunCLI(t, "vars", "list", "TEST")
	if !strings.Contains(output, "Found 2 variable(s)") {
		t.Errorf("Dry run removed variables: %s", output)
	}
}

func TestVarsRemoveNothingToRemove(t *testing.T) {
	setupTestEnvironment(t)

	output := mustRunCLI(t, "vars", "remove", "EMPTY", "--force")
	if !strings.Contains(output, "Nothing to remove") {
		t.Errorf("Unexpected output: %s", output)
	}
}

func TestVarsWithoutPrefix(t *testing.T) {
	setupTestEnvironment(t)

	for _, args := range [][]string{
		{"vars", "list"},
		{"vars", "remove", "--force"},
		{"vars", "add", "NAME", "--value", "v"},
	} {
		output := mustRunCLI(t, args...)
		if !strings.Contains(output, "No variable prefix given") {
			t.Errorf("envvault %v: expected missing prefix message, got: %s", args, output)
		}
	}
}

func TestVarsWithSQLiteStore(t *testing.T) {
	setupTestEnvironment(t)

	session := configs.DefaultSession()
	session.Store.Backend = configs.StoreBackendSQLite
	session.Keys.Source = configs.KeySourceFile
	if err := configs.SaveSession(session); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	mustRunCLI(t, "vars", "add", "DB", "PASSWORD", "--value", "hunter2")

	output := mustRunCLI(t, "vars", "list", "DB")
	if !strings.Contains(output, "DB_PASSWORD") || !strings.Contains(output, "hunter2") {
		t.Errorf("Unexpected list output: %s", output)
	}

	output = mustRunCLI(t, "vars", "remove", "DB", "--force")
	if !strings.Contains(output, "Variables confirmed removed: 1") {
		t.Errorf("Unexpected remove output: %s", output)
	}
}
