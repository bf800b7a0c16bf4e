// Package errors provides typed error values for envvault.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Store errors: the variable store is unreachable (ErrStoreAccess)
//   - Codec errors: protection failures (ErrCodecFormat, ErrKeyMismatch, ErrCodecUnknown)
//   - Config file errors: settings file issues (ErrConfigNotFound, ErrConfigParse, ErrConfigIO)
//   - Input errors: invalid prefixes or names (ErrPrefixRequired, ErrInvalidName)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading %s: %w", name, errors.ErrStoreAccess)
//
// Handle errors in the CLI layer:
//
//	res, err := manager.RemoveAll(ctx, prefix, opts)
//	if errors.Is(err, kerrors.ErrPrefixRequired) {
//	    // Show user-friendly message
//	}
package errors
