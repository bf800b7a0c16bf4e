package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/envvault/internal/utils"
)

// UserSettings holds the per-user locations envvault reads and writes.
type UserSettings struct {
	UserConfigsPath string
	UserDataPath    string
	Username        string
}

var UserEnvvaultSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		log.Fatalf("error getting username: %s", err)
	}

	UserEnvvaultSettings = &UserSettings{
		UserConfigsPath: filepath.Join(configDir, "envvault"),
		UserDataPath:    filepath.Join(dataDir, "envvault"),
		Username:        username,
	}
}

// SessionPath is the session configuration file.
func (s *UserSettings) SessionPath() string {
	return filepath.Join(s.UserConfigsPath, "config.toml")
}

// AuditLogPath is the append-only audit log.
func (s *UserSettings) AuditLogPath() string {
	return filepath.Join(s.UserConfigsPath, "audit.jsonl")
}

// VariablesPath is the TOML file used by the file store backend.
func (s *UserSettings) VariablesPath() string {
	return filepath.Join(s.UserDataPath, "variables.toml")
}

// DatabasePath is the SQLite database used by the sqlite store backend.
func (s *UserSettings) DatabasePath() string {
	return filepath.Join(s.UserDataPath, "variables.db")
}

// KeyFilePath is the master key file used by the file key source.
func (s *UserSettings) KeyFilePath() string {
	return filepath.Join(s.UserDataPath, "keys", s.Username+".key")
}
