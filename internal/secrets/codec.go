package secrets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/envvault/internal/errors"
)

// Tag marks a stored value as protected ciphertext.
const Tag = "enc:"

// Display values returned in place of plaintext when decoding fails.
const (
	FormatFailure      = "[DECRYPTION FAILED: Invalid Base64 Format]"
	KeyMismatchFailure = "[DECRYPTION FAILED: Cryptographic Error (ensure current user encrypted it)]"
)

// Decoded is the outcome of decoding a stored value.
//
// When Err is set, Value holds a human-readable failure marker instead of
// the secret.
type Decoded struct {
	Value     string
	WasTagged bool
	Err       error
}

// OK reports whether Value holds the real decoded value.
func (d Decoded) OK() bool {
	return d.Err == nil
}

// Codec converts between plaintext and tagged, user-protected values.
type Codec struct {
	protector Protector
}

// NewCodec returns a codec that protects values with p.
func NewCodec(p Protector) *Codec {
	return &Codec{protector: p}
}

// IsTagged reports whether value carries the protection tag. The comparison
// ignores case.
func IsTagged(value string) bool {
	return len(value) >= len(Tag) && strings.EqualFold(value[:len(Tag)], Tag)
}

// Encode protects plain and returns Tag followed by standard base64.
//
// On failure the plaintext is returned unchanged together with an error
// wrapping ErrEncryptFailed. Callers must not persist the returned string
// when err is non-nil.
func (c *Codec) Encode(plain string) (string, error) {
	sealed, err := c.protector.Protect([]byte(plain))
	if err != nil {
		return plain, fmt.Errorf("%w: %w", kerrors.ErrEncryptFailed, err)
	}
	return Tag + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decode returns untagged values unchanged. Tagged values are base64
// decoded and unprotected; failures are reported through Decoded.Err and
// never panic.
func (c *Codec) Decode(value string) (d Decoded) {
	if !IsTagged(value) {
		return Decoded{Value: value}
	}

	defer func() {
		if r := recover(); r != nil {
			d = Decoded{
				Value:     fmt.Sprintf("[DECRYPTION FAILED: %v]", r),
				WasTagged: true,
				Err:       fmt.Errorf("%w: %v", kerrors.ErrCodecUnknown, r),
			}
		}
	}()

	raw, err := base64.StdEncoding.DecodeString(value[len(Tag):])
	if err != nil {
		return Decoded{
			Value:     FormatFailure,
			WasTagged: true,
			Err:       fmt.Errorf("%w: %w", kerrors.ErrCodecFormat, err),
		}
	}

	plain, err := c.protector.Unprotect(raw)
	if err != nil {
		if errors.Is(err, kerrors.ErrKeyMismatch) {
			return Decoded{Value: KeyMismatchFailure, WasTagged: true, Err: err}
		}
		return Decoded{
			Value:     fmt.Sprintf("[DECRYPTION FAILED: %v]", err),
			WasTagged: true,
			Err:       fmt.Errorf("%w: %w", kerrors.ErrCodecUnknown, err),
		}
	}

	return Decoded{Value: string(plain), WasTagged: true}
}
