package errors

import "errors"

// Store errors indicate the persistent variable store could not be used.
var (
	// ErrStoreAccess indicates the variable store could not be read or written.
	ErrStoreAccess = errors.New("variable store is not accessible")
)

// Codec errors indicate failures while protecting or unprotecting a value.
var (
	// ErrCodecFormat indicates a tagged value is not valid base64.
	ErrCodecFormat = errors.New("protected value is not valid base64")

	// ErrKeyMismatch indicates the protected bytes were not produced for the current user.
	ErrKeyMismatch = errors.New("protected value does not belong to the current user")

	// ErrCodecUnknown indicates an unexpected failure while unprotecting a value.
	ErrCodecUnknown = errors.New("protected value could not be decoded")

	// ErrEncryptFailed indicates a plaintext value could not be protected.
	ErrEncryptFailed = errors.New("failed to encrypt value")

	// ErrInvalidKeyLength indicates the protection key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid protection key length")

	// ErrKeyNotFound indicates the user's protection key could not be located.
	ErrKeyNotFound = errors.New("protection key not found")
)

// Config file errors indicate issues with the structured settings file.
var (
	// ErrConfigNotFound indicates the settings file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigParse indicates the settings file is not well-formed.
	ErrConfigParse = errors.New("configuration file could not be parsed")

	// ErrConfigIO indicates the settings file could not be read or written.
	ErrConfigIO = errors.New("configuration file could not be read or written")

	// ErrContainerMissing indicates the settings file has no root settings container.
	ErrContainerMissing = errors.New("configuration file has no settings container")

	// ErrEntryNotFound indicates no entry matched the requested key.
	ErrEntryNotFound = errors.New("configuration entry not found")

	// ErrStaleEntry indicates an entry reference no longer points into its document.
	ErrStaleEntry = errors.New("configuration entry reference is stale")
)

// Input errors indicate invalid caller input.
var (
	// ErrPrefixRequired indicates an operation needs a non-empty prefix.
	ErrPrefixRequired = errors.New("a variable prefix is required")

	// ErrInvalidName indicates a variable name is empty or blank.
	ErrInvalidName = errors.New("variable name cannot be empty")
)
