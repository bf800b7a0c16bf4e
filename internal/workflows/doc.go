// Package workflows provides high-level orchestration for envvault commands.
//
// Workflows coordinate the store, the settings file and the value codec to
// implement complete user-facing features. They are independent of CLI
// concerns like flag parsing, spinners and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Builds the store and codec for the current session
//   - Calls the appropriate workflow and formats its result
//
// Workflows handle everything else:
//   - Prefix normalization and matching
//   - Encoding on write and decoding on read
//   - Verifying store deletions
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Resolver.Resolve: looks a setting up in the store, then in the settings file
//   - Resolver.EncryptAndPersist: upgrades a plaintext file entry in place
//   - Manager.List: lists prefixed store variables with decoded values
//   - Manager.AddOne: encrypts and stores one prefixed variable
//   - Manager.RemoveAll: removes every prefixed variable, blanking stragglers
//   - Manager.BulkEncryptPlainEntries: encrypts plaintext settings file entries
//   - SetPrefixes: updates the session prefixes
//
// # Error Handling
//
// Workflows return errors wrapping the sentinels in internal/errors.
// Per-item failures during list, remove and bulk encryption are recorded in
// the result instead of aborting the operation:
//
//	result, err := manager.RemoveAll(ctx, "MYAPP_", workflows.RemoveOptions{})
//	if errors.Is(err, kerrors.ErrStoreAccess) {
//	    // the variable store could not be enumerated
//	}
//	for _, name := range result.FailedNames {
//	    // still holds a value after delete and blank
//	}
//
// Codec failures never surface as errors from Resolve or List. They are
// reported through the DecryptSucceeded and DecryptOK flags, with a
// sentinel display string in place of the value.
//
// # Context Usage
//
// Store-touching workflows accept a context.Context as their first
// parameter and pass it to the store.
package workflows
