// Package storage provides the client-durable key-value store that backs
// cart persistence, the saved PC build and the login flag.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Well-known keys.
const (
	KeyCartItems    = "cart-items"
	KeyUserLoggedIn = "user-logged-in"
	KeySavedBuild   = "saved-pc-build"
)

// KV is a durable string-keyed byte store.
type KV interface {
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type scoped struct {
	kv     KV
	prefix string
}

// Scoped returns a view of kv whose keys are prefixed with namespace + ":".
func Scoped(kv KV, namespace string) KV {
	return &scoped{kv: kv, prefix: namespace + ":"}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.kv.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.kv.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, s.prefix+key)
}
