package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withTempUserSettings(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	original := UserEnvvaultSettings
	UserEnvvaultSettings = &UserSettings{
		UserConfigsPath: filepath.Join(tempDir, "config"),
		UserDataPath:    filepath.Join(tempDir, "data"),
		Username:        "testuser",
	}
	t.Cleanup(func() {
		UserEnvvaultSettings = original
	})
	return tempDir
}

func TestGenerateUserUUID(t *testing.T) {
	uuid := GenerateUserUUID()
	if len(uuid) != 36 {
		t.Fatalf("Expected UUID length 36, got %d", len(uuid))
	}
}

func TestLoadSessionNonExistent(t *testing.T) {
	withTempUserSettings(t)

	session, err := LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}

	if session.Settings.ConfigPath != DefaultConfigPath {
		t.Errorf("Expected default config path %q, got %q", DefaultConfigPath, session.Settings.ConfigPath)
	}
	if session.Store.Backend != StoreBackendFile {
		t.Errorf("Expected default backend %q, got %q", StoreBackendFile, session.Store.Backend)
	}
	if session.Keys.Source != KeySourceKeyring {
		t.Errorf("Expected default key source %q, got %q", KeySourceKeyring, session.Keys.Source)
	}
	if session.Prefixes.Env != "" || session.Prefixes.File != "" {
		t.Errorf("Expected empty prefixes, got %+v", session.Prefixes)
	}
}

func TestSaveAndLoadSession(t *testing.T) {
	withTempUserSettings(t)

	session := DefaultSession()
	session.Prefixes = Prefixes{Env: "MYAPP_", File: "CFG_"}
	session.Settings.ConfigPath = "/etc/myapp/setting.config"
	session.Store.Backend = StoreBackendSQLite
	session.Keys.Source = KeySourceFile

	if err := SaveSession(session); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	loaded, err := LoadSession()
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if *loaded != *session {
		t.Errorf("Loaded session %+v, want %+v", loaded, session)
	}
}

func TestLoadSessionFillsMissingFields(t *testing.T) {
	tempDir := withTempUserSettings(t)
	path := filepath.Join(tempDir, "partial.toml")
	content := "[prefixes]\nenv = \"MYAPP_\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write session file: %v", err)
	}

	session, err := LoadSessionFrom(path)
	if err != nil {
		t.Fatalf("LoadSessionFrom failed: %v", err)
	}
	if session.Prefixes.Env != "MYAPP_" {
		t.Errorf("Expected env prefix MYAPP_, got %q", session.Prefixes.Env)
	}
	if session.Store.Backend != StoreBackendFile || session.Keys.Source != KeySourceKeyring {
		t.Errorf("Expected defaults for missing sections, got %+v", session)
	}
}

func TestLoadSessionRejectsUnknownBackend(t *testing.T) {
	tempDir := withTempUserSettings(t)
	path := filepath.Join(tempDir, "bad.toml")
	content := "[store]\nbackend = \"registry\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write session file: %v", err)
	}

	_, err := LoadSessionFrom(path)
	if err == nil || !strings.Contains(err.Error(), "registry") {
		t.Errorf("Expected unknown backend error, got %v", err)
	}
}

func TestLoadSessionMalformed(t *testing.T) {
	tempDir := withTempUserSettings(t)
	path := filepath.Join(tempDir, "broken.toml")
	if err := os.WriteFile(path, []byte("[prefixes\nenv="), 0600); err != nil {
		t.Fatalf("Failed to write session file: %v", err)
	}

	if _, err := LoadSessionFrom(path); err == nil {
		t.Error("Expected error for malformed session file")
	}
}

func TestEnsureSessionAssignsUUID(t *testing.T) {
	withTempUserSettings(t)

	first, err := EnsureSession()
	if err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	if first.User.UUID == "" {
		t.Fatal("Expected a user UUID to be generated")
	}

	second, err := EnsureSession()
	if err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	if second.User.UUID != first.User.UUID {
		t.Errorf("Expected UUID to persist, got %q then %q", first.User.UUID, second.User.UUID)
	}
}

func TestUserSettingsPaths(t *testing.T) {
	withTempUserSettings(t)
	s := UserEnvvaultSettings

	if filepath.Base(s.SessionPath()) != "config.toml" {
		t.Errorf("unexpected session path %s", s.SessionPath())
	}
	if filepath.Base(s.KeyFilePath()) != "testuser.key" {
		t.Errorf("unexpected key file path %s", s.KeyFilePath())
	}
	if filepath.Dir(s.VariablesPath()) != s.UserDataPath {
		t.Errorf("variables file should live in the data dir, got %s", s.VariablesPath())
	}
}
