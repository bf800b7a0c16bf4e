package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/envvault/internal/audit"
	kerrors "github.com/PolarWolf314/envvault/internal/errors"
)

// AddResult contains the outcome of adding a variable.
type AddResult struct {
	// Name is the full variable name, prefix included.
	Name string

	// Stored is the tagged value written to the store.
	Stored string

	// Existed is true when the variable already had a value, which was
	// overwritten.
	Existed bool

	// PreviousValue is the decoded previous value, or a failure marker.
	PreviousValue string

	PreviousDecryptOK bool
}

// AddOne encrypts plaintext and stores it as prefix+base.
//
// An existing value is decoded and reported in the result before being
// overwritten. Nothing is written when encoding fails.
// Returns ErrPrefixRequired for an empty prefix and ErrInvalidName for a
// blank base name.
func (m *Manager) AddOne(ctx context.Context, prefix, base, plaintext string) (*AddResult, error) {
	prefix = NormalizePrefix(prefix)
	if prefix == "" {
		return nil, kerrors.ErrPrefixRequired
	}
	if strings.TrimSpace(base) == "" {
		return nil, kerrors.ErrInvalidName
	}

	result := &AddResult{Name: prefix + base}

	current, found, err := m.store.Get(ctx, result.Name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w: %w", result.Name, kerrors.ErrStoreAccess, err)
	}
	if found {
		decoded := m.codec.Decode(current)
		result.Existed = true
		result.PreviousValue = decoded.Value
		result.PreviousDecryptOK = decoded.OK()
	}

	encoded, err := m.codec.Encode(plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypting %s: %w", result.Name, err)
	}

	if err := m.store.Set(ctx, result.Name, encoded); err != nil {
		return nil, fmt.Errorf("writing %s: %w: %w", result.Name, kerrors.ErrStoreAccess, err)
	}
	result.Stored = encoded

	entry := audit.LogWithUser(audit.OpAdd, m.session)
	entry.Prefix = prefix
	entry.Names = []string{result.Name}
	recordAudit(entry)

	return result, nil
}
