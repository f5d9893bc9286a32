package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("kv: key not found")

// Entry is a key/value pair returned by Scan.
type Entry struct {
	Key   string
	Value string
}

// Store is the key-value port backing sessions and the listing cache.
// All operations may fail with a connectivity error from the backing store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, prefix string) ([]Entry, error)
}
