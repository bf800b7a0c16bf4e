package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
)

// Store backends.
const (
	StoreBackendFile   = "file"
	StoreBackendSQLite = "sqlite"
)

// Key sources.
const (
	KeySourceKeyring = "keyring"
	KeySourceFile    = "file"
)

// DefaultConfigPath is the settings file looked up when none is configured.
const DefaultConfigPath = "setting.config"

// Session is the user's envvault configuration. It is loaded once per
// command and passed explicitly to the operations that need it.
type Session struct {
	User     User        `toml:"user"`
	Prefixes Prefixes    `toml:"prefixes"`
	Settings Settings    `toml:"settings"`
	Store    StoreConfig `toml:"store"`
	Keys     KeysConfig  `toml:"keys"`
}

type User struct {
	UUID string `toml:"user_uuid"`
}

// Prefixes scope store variables and settings file keys.
type Prefixes struct {
	Env  string `toml:"env"`
	File string `toml:"file"`
}

type Settings struct {
	ConfigPath string `toml:"config_path"`
}

type StoreConfig struct {
	Backend string `toml:"backend"`
}

type KeysConfig struct {
	Source string `toml:"source"`
}

// DefaultSession returns a session with every field at its default.
func DefaultSession() *Session {
	return &Session{
		Settings: Settings{ConfigPath: DefaultConfigPath},
		Store:    StoreConfig{Backend: StoreBackendFile},
		Keys:     KeysConfig{Source: KeySourceKeyring},
	}
}

// applyDefaults fills empty fields left by older or hand-written files.
func (s *Session) applyDefaults() {
	defaults := DefaultSession()
	if s.Settings.ConfigPath == "" {
		s.Settings.ConfigPath = defaults.Settings.ConfigPath
	}
	if s.Store.Backend == "" {
		s.Store.Backend = defaults.Store.Backend
	}
	if s.Keys.Source == "" {
		s.Keys.Source = defaults.Keys.Source
	}
}

// Validate checks the enumerated fields.
func (s *Session) Validate() error {
	switch s.Store.Backend {
	case StoreBackendFile, StoreBackendSQLite:
	default:
		return fmt.Errorf("unknown store backend %q (expected %q or %q)", s.Store.Backend, StoreBackendFile, StoreBackendSQLite)
	}
	switch s.Keys.Source {
	case KeySourceKeyring, KeySourceFile:
	default:
		return fmt.Errorf("unknown key source %q (expected %q or %q)", s.Keys.Source, KeySourceKeyring, KeySourceFile)
	}
	return nil
}

// LoadSession loads the session from the user's config directory.
func LoadSession() (*Session, error) {
	return LoadSessionFrom(UserEnvvaultSettings.SessionPath())
}

// LoadSessionFrom loads a session file, returning defaults when it does
// not exist.
func LoadSessionFrom(path string) (*Session, error) {
	session := DefaultSession()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return session, nil
	}

	if err := LoadTOML(path, session); err != nil {
		return nil, fmt.Errorf("failed to load session config: %w", err)
	}
	session.applyDefaults()

	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config %s: %w", path, err)
	}
	return session, nil
}

// SaveSession writes the session to the user's config directory.
func SaveSession(session *Session) error {
	return SaveSessionTo(UserEnvvaultSettings.SessionPath(), session)
}

// SaveSessionTo writes the session to path.
func SaveSessionTo(path string, session *Session) error {
	if err := SaveTOML(path, session); err != nil {
		return fmt.Errorf("failed to save session config: %w", err)
	}
	return nil
}

// GenerateUserUUID generates a new UUID for the user.
func GenerateUserUUID() string {
	return uuid.New().String()
}

// EnsureSession loads the session and assigns a user UUID on first use.
func EnsureSession() (*Session, error) {
	session, err := LoadSession()
	if err != nil {
		return nil, err
	}

	if session.User.UUID == "" {
		session.User.UUID = GenerateUserUUID()
		if err := SaveSession(session); err != nil {
			return nil, err
		}
	}

	return session, nil
}
