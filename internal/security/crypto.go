package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// ErrDecrypt is returned when a sealed value fails authentication, usually
// because it was sealed with a different key or bound to a different label.
var ErrDecrypt = errors.New("failed to decrypt")

// keySalt is fixed so the same passphrase always yields the same key.
var keySalt = []byte("crop-advisory/session-token/v1")

// Encryptor seals short secrets (access tokens) with AES-GCM.
type Encryptor struct {
	aead cipher.AEAD
}

// NewEncryptor creates an encryptor from a raw key.
// Key must be 16, 24, or 32 bytes for AES-128, AES-192, or AES-256
func NewEncryptor(key []byte) (*Encryptor, error) {
	keyLen := len(key)
	if keyLen != 16 && keyLen != 24 && keyLen != 32 {
		return nil, fmt.Errorf("invalid key length: %d (must be 16, 24, or 32)", keyLen)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Encryptor{aead: gcm}, nil
}

// NewEncryptorFromSecret accepts either a base64-encoded AES key or a
// passphrase. Passphrases are stretched to 32 bytes with Argon2id.
func NewEncryptorFromSecret(secret string) (*Encryptor, error) {
	if secret == "" {
		return nil, errors.New("empty encryption secret")
	}
	if key, err := base64.StdEncoding.DecodeString(secret); err == nil {
		switch len(key) {
		case 16, 24, 32:
			return NewEncryptor(key)
		}
	}
	return NewEncryptor(argon2.IDKey([]byte(secret), keySalt, 1, 64*1024, 4, 32))
}

// GenerateKey returns a random 32-byte key, base64 encoded, suitable for
// SESSION_ENCRYPTION_KEY.
func GenerateKey() (string, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// Seal encrypts plaintext and binds it to label, returning base64 text.
// The same label must be passed to Open.
func (e *Encryptor) Seal(plaintext, label string) (string, error) {
	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := e.aead.Seal(nonce, nonce, []byte(plaintext), []byte(label))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
func (e *Encryptor) Open(sealed, label string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64: %w", err)
	}

	nonceSize := e.aead.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, []byte(label))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return string(plaintext), nil
}
