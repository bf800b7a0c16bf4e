package audit

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/envvault/internal/configs"
	"github.com/google/uuid"
)

// Operation names recorded in the log.
const (
	OpAdd          = "add"
	OpRemove       = "remove"
	OpEncryptEntry = "encrypt-entry"
	OpBulkEncrypt  = "bulk-encrypt"
	OpSetPrefixes  = "set-prefixes"
)

// Entry represents a single audit log entry. Values are never recorded.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // OS account.
	UserUUID  string `json:"uuid"`
	Operation string `json:"op"`

	Prefix         string   `json:"prefix,omitempty"`
	Names          []string `json:"names,omitempty"`
	RemovedCount   int      `json:"removed_count,omitempty"`
	BlankedCount   int      `json:"blanked_count,omitempty"`
	FailedCount    int      `json:"failed_count,omitempty"`
	EncryptedCount int      `json:"encrypted_count,omitempty"`
	ConfigPath     string   `json:"config_path,omitempty"`
}

// logPath is resolved at call time so tests can swap the user settings.
var logPath = func() string {
	if configs.UserEnvvaultSettings == nil {
		return ""
	}
	return configs.UserEnvvaultSettings.AuditLogPath()
}

// Log appends an entry to the audit log.
// Failures are swallowed; an operation never fails because auditing did.
func Log(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	path := logPath()
	if path == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry with the user fields populated.
func LogWithUser(op string, session *configs.Session) Entry {
	entry := Entry{Operation: op}
	if configs.UserEnvvaultSettings != nil {
		entry.User = configs.UserEnvvaultSettings.Username
	}
	if session != nil {
		entry.UserUUID = session.User.UUID
	}
	return entry
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return logPath()
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	path := logPath()
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
