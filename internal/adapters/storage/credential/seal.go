package credential

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Sealer protects credential values at rest. The bearer token grants full
// backend access, so leaving it readable on disk is strictly worse than the
// browser's localStorage it replaces.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// ErrSealedTooShort indicates a stored value shorter than a nonce, which can
// only mean corruption or a key change.
var ErrSealedTooShort = errors.New("sealed value is too short")

// PlainSealer stores values unmodified.
type PlainSealer struct{}

// Seal returns the plaintext unchanged.
func (PlainSealer) Seal(plaintext []byte) ([]byte, error) { return plaintext, nil }

// Open returns the stored value unchanged.
func (PlainSealer) Open(sealed []byte) ([]byte, error) { return sealed, nil }

// AEADSealer encrypts values with ChaCha20-Poly1305, nonce prepended.
type AEADSealer struct {
	key []byte
}

// NewAEADSealer creates a sealer from a 64-hex-character key.
// PRE: keyHex decodes to exactly 32 bytes
// POST: Returns a ready-to-use sealer
func NewAEADSealer(keyHex string) (*AEADSealer, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != chacha20poly1305.KeySize {
		return nil, errors.New("seal key must be 64 hex characters (32 bytes)")
	}
	return &AEADSealer{key: key}, nil
}

// Seal encrypts the plaintext with a fresh random nonce.
// POST: Output is nonce || ciphertext
func (s *AEADSealer) Seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a value produced by Seal.
// PRE: sealed is nonce || ciphertext from the same key
func (s *AEADSealer) Open(sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, ErrSealedTooShort
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("unseal failed: %w", err)
	}
	return plaintext, nil
}
