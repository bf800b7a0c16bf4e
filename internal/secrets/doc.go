// Package secrets protects individual values so that only the user who
// stored them can read them back.
//
// # Wire Format
//
// A protected value is the literal tag "enc:" followed by standard base64 of
// the sealed bytes:
//
//	enc:q2V1c2VyLXNjb3BlZC1jaXBoZXJ0ZXh0...
//
// Any value that does not start with the tag (compared case-insensitively)
// is treated as plaintext and passed through unchanged by Codec.Decode.
//
// # Protection
//
// SecretboxProtector seals bytes with NaCl secretbox and a random 24-byte
// nonce prepended to the ciphertext, so encoding the same value twice gives
// different output. The secretbox key is derived with HKDF-SHA256 from the
// user's 32-byte master key, salted with the account name. Opening a value
// sealed under another account or master key fails with ErrKeyMismatch.
//
// # Master Keys
//
// The master key comes from a KeySource:
//   - KeyringKeySource: the OS keyring (macOS Keychain, Secret Service,
//     Windows Credential Manager), one entry per account
//   - FileKeySource: a base64 file with 0600 permissions under the user's
//     data directory
//
// Both create the key on first use.
//
// # Failure Policy
//
// Decode never returns an error value directly. Failures are reported in
// Decoded.Err, with Decoded.Value set to a readable marker such as
// FormatFailure or KeyMismatchFailure so callers can always display
// something.
package secrets
