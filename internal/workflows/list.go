package workflows

import (
	"context"
	"fmt"

	kerrors "github.com/PolarWolf314/envvault/internal/errors"
)

// VariableEntry is one listed store variable.
type VariableEntry struct {
	Name string

	// Value is the decoded value, or a failure marker when decoding failed.
	Value string

	WasEncrypted bool
	DecryptOK    bool

	// Err is set when the variable could not be read or decoded.
	Err error
}

// List returns every store variable whose name starts with prefix, decoded
// for display and ordered by name.
//
// Decode failures are listed with a failure marker. A variable that cannot
// be read is listed with Err set. Returns ErrPrefixRequired for an empty
// prefix and ErrStoreAccess when the store cannot be enumerated.
func (m *Manager) List(ctx context.Context, prefix string) ([]VariableEntry, error) {
	prefix = NormalizePrefix(prefix)
	if prefix == "" {
		return nil, kerrors.ErrPrefixRequired
	}

	names, err := m.matchingNames(ctx, prefix)
	if err != nil {
		return nil, err
	}

	entries := make([]VariableEntry, 0, len(names))
	for _, name := range names {
		raw, found, err := m.store.Get(ctx, name)
		if err != nil {
			entries = append(entries, VariableEntry{
				Name: name,
				Err:  fmt.Errorf("reading %s: %w: %w", name, kerrors.ErrStoreAccess, err),
			})
			continue
		}
		if !found {
			// Removed between enumeration and read.
			continue
		}

		decoded := m.codec.Decode(raw)
		entries = append(entries, VariableEntry{
			Name:         name,
			Value:        decoded.Value,
			WasEncrypted: decoded.WasTagged,
			DecryptOK:    decoded.OK(),
			Err:          decoded.Err,
		})
	}

	return entries, nil
}

// matchingNames enumerates the store and keeps names under prefix.
func (m *Manager) matchingNames(ctx context.Context, prefix string) ([]string, error) {
	all, err := m.store.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing variables: %w: %w", kerrors.ErrStoreAccess, err)
	}

	var names []string
	for _, name := range all {
		if MatchesPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}
