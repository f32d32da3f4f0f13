package crypto

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c, err := New("test-encryption-key")
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	plaintexts := []string{
		"ATATT3xFfGF0T5JZk8vK9yQ2mN4pL7wX",
		"",
		"short",
		"token with spaces and unicode: ключ-токен",
	}

	for _, plaintext := range plaintexts {
		encrypted, err := c.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) failed: %v", plaintext, err)
		}
		if encrypted == plaintext && plaintext != "" {
			t.Errorf("Expected ciphertext to differ from plaintext %q", plaintext)
		}

		decrypted, err := c.Decrypt(encrypted)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if decrypted != plaintext {
			t.Errorf("Expected %q after round trip, got %q", plaintext, decrypted)
		}
	}
}

func TestEncrypt_UniqueCiphertexts(t *testing.T) {
	c, err := New("test-encryption-key")
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	first, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	second, err := c.Encrypt("same plaintext")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if first == second {
		t.Error("Expected distinct ciphertexts for repeated plaintext (random nonce)")
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	c, err := New("test-encryption-key")
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	encrypted, err := c.Encrypt("secret api token")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		t.Fatalf("Failed to decode ciphertext: %v", err)
	}
	raw[len(raw)-1] ^= 0x01
	tampered := base64.StdEncoding.EncodeToString(raw)

	if _, err := c.Decrypt(tampered); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed for tampered ciphertext, got %v", err)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	c1, err := New("key-one")
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}
	c2, err := New("key-two")
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	encrypted, err := c1.Encrypt("secret api token")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, err := c2.Decrypt(encrypted); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed under a different key, got %v", err)
	}
}

func TestDecrypt_Garbage(t *testing.T) {
	c, err := New("test-encryption-key")
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	inputs := []string{
		"not base64 at all!!!",
		base64.StdEncoding.EncodeToString([]byte("short")), // shorter than a nonce
		"",
	}

	for _, input := range inputs {
		if _, err := c.Decrypt(input); !errors.Is(err, ErrDecryptFailed) {
			t.Errorf("Decrypt(%q): expected ErrDecryptFailed, got %v", input, err)
		}
	}
}

func TestNew_EmptySecret(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("Expected error for empty encryption key")
	}
}
