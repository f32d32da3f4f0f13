// Package crypto implements authenticated encryption for Jira API tokens at rest.
// Ciphertexts are AES-256-GCM over a PBKDF2-derived key, base64-encoded so they
// round-trip through a text column.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// ErrDecryptFailed is returned when a ciphertext is tampered with, truncated,
// or was produced under a different key. Callers must treat it as fatal for
// the current request.
var ErrDecryptFailed = errors.New("failed to decrypt credential")

const (
	keyLen   = 32
	kdfIters = 100_000
	// kdfSalt is constant: the key material is a single process-wide secret,
	// not a per-item password, so a per-item salt buys nothing here.
	kdfSalt = "jiradash.credential.cipher.v1"
)

// Cipher encrypts and decrypts credential strings with a process-wide key.
type Cipher struct {
	aead cipher.AEAD
}

// New derives a 256-bit key from the configured secret and returns a ready Cipher.
func New(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, errors.New("encryption key is empty")
	}

	key := pbkdf2.Key([]byte(secret), []byte(kdfSalt), kdfIters, keyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals the plaintext and returns base64(nonce || ciphertext).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any integrity or key mismatch yields ErrDecryptFailed.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrDecryptFailed
	}

	ns := c.aead.NonceSize()
	if len(data) < ns {
		return "", ErrDecryptFailed
	}
	nonce, ciphertext := data[:ns], data[ns:]

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}
