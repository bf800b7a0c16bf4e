package workflows

import (
	"fmt"

	"github.com/PolarWolf314/envvault/internal/appsettings"
	"github.com/PolarWolf314/envvault/internal/audit"
	kerrors "github.com/PolarWolf314/envvault/internal/errors"
	"github.com/PolarWolf314/envvault/internal/secrets"
)

// BulkEncryptOptions configures BulkEncryptPlainEntries.
type BulkEncryptOptions struct {
	// DryRun lists the entries that would be encrypted without changing the file.
	DryRun bool
}

// EntryFailure is a settings entry that could not be encrypted.
type EntryFailure struct {
	Key string
	Err error
}

// BulkEncryptResult contains the outcome of BulkEncryptPlainEntries.
type BulkEncryptResult struct {
	ConfigPath string

	// Targeted lists the keys of untagged entries matching the prefix, in
	// document order.
	Targeted []string

	// Encrypted lists the keys that were encrypted.
	Encrypted []string

	Failed []EntryFailure

	// Saved is true when the document was written back.
	Saved bool

	DryRun bool
}

// EncryptedCount is the number of entries encrypted.
func (r *BulkEncryptResult) EncryptedCount() int {
	return len(r.Encrypted)
}

// BulkEncryptPlainEntries encrypts every untagged settings entry whose key
// starts with prefix. An empty prefix matches every entry.
//
// Entries with an empty key or no value attribute are skipped. Each entry is
// encoded independently so one failure does not block the rest. The file is
// saved once, and only when at least one entry changed. When the save fails
// nothing is written and the in-memory edits are discarded.
func (m *Manager) BulkEncryptPlainEntries(configPath, prefix string, opts BulkEncryptOptions) (*BulkEncryptResult, error) {
	prefix = NormalizePrefix(prefix)

	doc, err := appsettings.Load(configPath)
	if err != nil {
		return nil, err
	}
	if !doc.HasContainer() {
		return nil, fmt.Errorf("%s: %w", configPath, kerrors.ErrContainerMissing)
	}

	result := &BulkEncryptResult{
		ConfigPath: configPath,
		DryRun:     opts.DryRun,
	}

	var targets []*appsettings.Entry
	for _, entry := range doc.Entries() {
		if entry.Key == "" || !entry.HasValue || secrets.IsTagged(entry.Value) {
			continue
		}
		if !MatchesPrefix(entry.Key, prefix) {
			continue
		}
		targets = append(targets, entry)
		result.Targeted = append(result.Targeted, entry.Key)
	}

	if len(targets) == 0 || opts.DryRun {
		return result, nil
	}

	for _, entry := range targets {
		encoded, err := m.codec.Encode(entry.Value)
		if err != nil {
			result.Failed = append(result.Failed, EntryFailure{Key: entry.Key, Err: err})
			continue
		}
		if err := doc.SetValue(entry, encoded); err != nil {
			result.Failed = append(result.Failed, EntryFailure{Key: entry.Key, Err: err})
			continue
		}
		result.Encrypted = append(result.Encrypted, entry.Key)
	}

	if len(result.Encrypted) == 0 {
		return result, nil
	}

	if err := saveDocument(doc); err != nil {
		result.Encrypted = nil
		return result, err
	}
	result.Saved = true

	entry := audit.LogWithUser(audit.OpBulkEncrypt, m.session)
	entry.Prefix = prefix
	entry.Names = result.Encrypted
	entry.ConfigPath = configPath
	entry.EncryptedCount = len(result.Encrypted)
	entry.FailedCount = len(result.Failed)
	recordAudit(entry)

	return result, nil
}
