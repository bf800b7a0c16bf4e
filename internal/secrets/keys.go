package secrets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/envvault/internal/errors"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name envvault uses in the OS keyring.
const KeyringService = "envvault"

// KeySource supplies the user's master protection key, creating it on first use.
type KeySource interface {
	Key() ([]byte, error)
}

// FileKeySource keeps the master key base64-encoded in a file readable only
// by the owning user.
type FileKeySource struct {
	Path string
}

// Key loads the key file, generating it when it does not exist yet.
func (s FileKeySource) Key() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.create()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key file at %s: %w", s.Path, err)
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("key file at %s is not valid base64: %w", s.Path, err)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("key file at %s holds %d bytes: %w", s.Path, len(key), kerrors.ErrInvalidKeyLength)
	}
	return key, nil
}

func (s FileKeySource) create() ([]byte, error) {
	key, err := GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory for key file at %s: %w", s.Path, err)
	}

	encoded := base64.StdEncoding.EncodeToString(key) + "\n"
	if err := os.WriteFile(s.Path, []byte(encoded), 0600); err != nil {
		return nil, fmt.Errorf("failed to write key file at %s: %w", s.Path, err)
	}
	return key, nil
}

// Permissions reports the key file's mode and whether it is restricted to
// the owner. A missing file reports ok.
func (s FileKeySource) Permissions() (fs.FileMode, bool) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return 0, true
	}
	perm := info.Mode().Perm()
	return perm, perm&0077 == 0
}

// KeyringKeySource keeps the master key in the OS keyring under the
// current user's account.
type KeyringKeySource struct {
	Service string
	Account string
}

// Key reads the key from the keyring, storing a new one when absent.
func (s KeyringKeySource) Key() ([]byte, error) {
	service := s.Service
	if service == "" {
		service = KeyringService
	}

	encoded, err := keyring.Get(service, s.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		key, genErr := GenerateKey()
		if genErr != nil {
			return nil, fmt.Errorf("failed to generate key: %w", genErr)
		}
		if setErr := keyring.Set(service, s.Account, base64.StdEncoding.EncodeToString(key)); setErr != nil {
			return nil, fmt.Errorf("failed to store key in keyring: %w", setErr)
		}
		return key, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key from keyring: %w: %w", kerrors.ErrKeyNotFound, err)
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("keyring entry for %s is not valid base64: %w", s.Account, err)
	}
	if len(key) != keySize {
		return nil, fmt.Errorf("keyring entry for %s holds %d bytes: %w", s.Account, len(key), kerrors.ErrInvalidKeyLength)
	}
	return key, nil
}
