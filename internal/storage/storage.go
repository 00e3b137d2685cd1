package storage

import (
	"context"
	"errors"

	apperrors "github.com/FItraRizky/fro/pkg/errors"
)

// Keys under which a session's state slices are stored.
const (
	KeyCart     = "fro-cart"
	KeyWishlist = "fro-wishlist"
	KeyUser     = "fro-user"
)

// KeyValue is a byte-oriented key-value store. Get returns an error matching
// apperrors.ErrNotFound for a missing key; deleting a missing key is not an
// error.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// IsNotFound reports whether err signals a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

// NotFound returns the error a backend reports for a missing key.
func NotFound(key string) error {
	return apperrors.NotFound("key", key)
}

type scoped struct {
	kv     KeyValue
	prefix string
}

// Scoped returns a view of kv that prefixes every key with prefix.
func Scoped(kv KeyValue, prefix string) KeyValue {
	return &scoped{kv: kv, prefix: prefix}
}

// SessionPrefix is the namespace of one storefront session.
func SessionPrefix(sessionID string) string {
	return "fro:" + sessionID + ":"
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
