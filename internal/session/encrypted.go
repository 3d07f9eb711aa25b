package session

import (
	"context"
	"fmt"
)

// Cipher seals and opens tokens. The label binds a ciphertext to its key so
// a sealed token copied to another profile does not open.
type Cipher interface {
	Seal(plaintext, label string) (string, error)
	Open(sealed, label string) (string, error)
}

// EncryptedStore wraps another Store and keeps only ciphertext in it.
type EncryptedStore struct {
	inner  Store
	cipher Cipher
}

func NewEncryptedStore(inner Store, cipher Cipher) *EncryptedStore {
	return &EncryptedStore{inner: inner, cipher: cipher}
}

func (e *EncryptedStore) Load(ctx context.Context, key string) (string, error) {
	sealed, err := e.inner.Load(ctx, key)
	if err != nil {
		return "", err
	}
	token, err := e.cipher.Open(sealed, key)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt stored token: %w", err)
	}
	return token, nil
}

func (e *EncryptedStore) Save(ctx context.Context, key, token string) error {
	sealed, err := e.cipher.Seal(token, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}
	return e.inner.Save(ctx, key, sealed)
}

func (e *EncryptedStore) Delete(ctx context.Context, key string) error {
	return e.inner.Delete(ctx, key)
}
