package config

import (
	"fmt"
	"sync"

	"github.com/99designs/keyring"
)

const serviceName = "ezquery"

// KeyringStore keeps source secrets (HTTP bearer tokens, database
// passwords) in the system keyring, keyed by a table's token_key.
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore opens the system keyring
func NewKeyringStore() (*KeyringStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return &KeyringStore{ring: ring}, nil
}

// NewKeyringStoreFrom wraps an already opened keyring
func NewKeyringStoreFrom(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

// SetToken stores a secret under key
func (k *KeyringStore) SetToken(key, token string) error {
	return k.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(token),
		Label: "ezquery source token " + key,
	})
}

// Token retrieves the secret stored under key
func (k *KeyringStore) Token(key string) (string, error) {
	item, err := k.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("token not found for key: %s", key)
	}
	return string(item.Data), nil
}

// DeleteToken removes the secret stored under key
func (k *KeyringStore) DeleteToken(key string) error {
	return k.ring.Remove(key)
}

// Keys lists the keys that have a stored secret
func (k *KeyringStore) Keys() ([]string, error) {
	return k.ring.Keys()
}

// lazyTokens opens the keyring on first use so that configurations with
// no token_key never touch it.
type lazyTokens struct {
	once  sync.Once
	store *KeyringStore
	err   error
}

func (l *lazyTokens) Token(key string) (string, error) {
	l.once.Do(func() {
		l.store, l.err = NewKeyringStore()
	})
	if l.err != nil {
		return "", l.err
	}
	return l.store.Token(key)
}
