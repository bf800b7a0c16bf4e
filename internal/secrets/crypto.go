package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/envvault/internal/errors"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	keySize   = 32
	nonceSize = 24

	// keyInfo separates envvault's derived keys from any other use of the
	// same master key.
	keyInfo = "envvault user value protection v1"
)

// Protector protects bytes so that only the originating user can recover them.
type Protector interface {
	Protect(plaintext []byte) ([]byte, error)

	// Unprotect reverses Protect. It returns an error wrapping
	// ErrKeyMismatch when the bytes were sealed for a different user or key.
	Unprotect(sealed []byte) ([]byte, error)
}

// SecretboxProtector seals values with NaCl secretbox using a key derived
// from the user's master key and account name.
type SecretboxProtector struct {
	key [keySize]byte
}

// NewSecretboxProtector derives the per-account key from masterKey.
func NewSecretboxProtector(masterKey []byte, account string) (*SecretboxProtector, error) {
	if len(masterKey) != keySize {
		return nil, fmt.Errorf("expected %d bytes, got %d bytes: %w", keySize, len(masterKey), kerrors.ErrInvalidKeyLength)
	}

	p := &SecretboxProtector{}
	kdf := hkdf.New(sha256.New, masterKey, []byte(account), []byte(keyInfo))
	if _, err := io.ReadFull(kdf, p.key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive protection key: %w", err)
	}
	return p, nil
}

// NewUserProtector loads the master key from source and binds it to account.
func NewUserProtector(source KeySource, account string) (*SecretboxProtector, error) {
	masterKey, err := source.Key()
	if err != nil {
		return nil, fmt.Errorf("failed to load protection key: %w", err)
	}
	return NewSecretboxProtector(masterKey, account)
}

// Protect seals plaintext with a random nonce prepended to the ciphertext.
func (p *SecretboxProtector) Protect(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &p.key), nil
}

// Unprotect opens a value produced by Protect.
func (p *SecretboxProtector) Unprotect(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("sealed value is %d bytes, too short: %w", len(sealed), kerrors.ErrKeyMismatch)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	plaintext, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &p.key)
	if !ok {
		return nil, kerrors.ErrKeyMismatch
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// GenerateKey returns a new random master key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
