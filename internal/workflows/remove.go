package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/envvault/internal/audit"
	kerrors "github.com/PolarWolf314/envvault/internal/errors"
)

// RemovalState is the terminal state of one variable after RemoveAll.
type RemovalState int

const (
	// Removed means the variable was gone when re-read after deletion.
	Removed RemovalState = iota

	// Blanked means the variable survived deletion and was overwritten with
	// an empty value.
	Blanked

	// PersistedFailure means the variable still holds a value after both
	// the delete and the blank attempt, or could not be checked.
	PersistedFailure
)

func (s RemovalState) String() string {
	switch s {
	case Removed:
		return "removed"
	case Blanked:
		return "blanked"
	default:
		return "failed"
	}
}

// RemovalOutcome records what happened to one variable.
type RemovalOutcome struct {
	Name  string
	State RemovalState

	// DeleteErr is the error returned by the initial delete, if any.
	DeleteErr error

	// Err explains a PersistedFailure.
	Err error

	// Remaining is the decoded value still present after a PersistedFailure.
	Remaining string
}

// RemoveOptions configures RemoveAll.
type RemoveOptions struct {
	// DryRun lists the variables that would be removed without touching them.
	DryRun bool
}

// RemoveResult contains the outcome of RemoveAll.
type RemoveResult struct {
	// Targeted lists the variables that matched the prefix.
	Targeted []string

	// Outcomes holds one entry per targeted variable, in order.
	// Empty for a dry run.
	Outcomes []RemovalOutcome

	RemovedCount int
	BlankedCount int
	FailedNames  []string

	DryRun bool
}

// RemoveAll removes every store variable starting with prefix.
//
// The store's delete is not guaranteed to be visible to the next read, so
// every variable is deleted first, then re-read. A variable still present is
// overwritten with an empty value and re-read once more: it ends Blanked if
// it is then empty or gone and PersistedFailure otherwise. There are no
// further retries. A failure on one variable never stops the others.
//
// Returns ErrPrefixRequired for an empty prefix and ErrStoreAccess when the
// store cannot be enumerated.
func (m *Manager) RemoveAll(ctx context.Context, prefix string, opts RemoveOptions) (*RemoveResult, error) {
	prefix = NormalizePrefix(prefix)
	if prefix == "" {
		return nil, kerrors.ErrPrefixRequired
	}

	names, err := m.matchingNames(ctx, prefix)
	if err != nil {
		return nil, err
	}

	result := &RemoveResult{
		Targeted: names,
		DryRun:   opts.DryRun,
	}

	if len(names) == 0 || opts.DryRun {
		return result, nil
	}

	result.Outcomes = make([]RemovalOutcome, len(names))
	for i, name := range names {
		result.Outcomes[i].Name = name
		if err := m.store.Delete(ctx, name); err != nil {
			result.Outcomes[i].DeleteErr = fmt.Errorf("deleting %s: %w: %w", name, kerrors.ErrStoreAccess, err)
		}
	}

	for i := range result.Outcomes {
		outcome := &result.Outcomes[i]
		m.verifyRemoval(ctx, outcome)

		switch outcome.State {
		case Removed:
			result.RemovedCount++
		case Blanked:
			result.BlankedCount++
		default:
			result.FailedNames = append(result.FailedNames, outcome.Name)
		}
	}

	entry := audit.LogWithUser(audit.OpRemove, m.session)
	entry.Prefix = prefix
	entry.Names = names
	entry.RemovedCount = result.RemovedCount
	entry.BlankedCount = result.BlankedCount
	entry.FailedCount = len(result.FailedNames)
	recordAudit(entry)

	return result, nil
}

// verifyRemoval re-reads a deleted variable and blanks it when it survived.
func (m *Manager) verifyRemoval(ctx context.Context, outcome *RemovalOutcome) {
	name := outcome.Name

	_, found, err := m.store.Get(ctx, name)
	if err != nil {
		outcome.State = PersistedFailure
		outcome.Err = fmt.Errorf("verifying %s: %w: %w", name, kerrors.ErrStoreAccess, err)
		return
	}
	if !found {
		outcome.State = Removed
		return
	}

	if err := m.store.Set(ctx, name, ""); err != nil {
		outcome.State = PersistedFailure
		outcome.Err = fmt.Errorf("blanking %s: %w: %w", name, kerrors.ErrStoreAccess, err)
		return
	}

	value, found, err := m.store.Get(ctx, name)
	switch {
	case err != nil:
		outcome.State = PersistedFailure
		outcome.Err = fmt.Errorf("verifying %s: %w: %w", name, kerrors.ErrStoreAccess, err)
	case !found || value == "":
		outcome.State = Blanked
	default:
		outcome.State = PersistedFailure
		outcome.Err = fmt.Errorf("%s still has a value after blanking", name)
		outcome.Remaining = m.codec.Decode(value).Value
	}
}
