// Package store provides the opaque key-value persistence used by the form
// foundry. Keys and values are plain strings; callers own their encoding.
//
// Memory, File and Redis implement Store. Instrumented decorates any Store
// with prometheus counters and latency histograms.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("store: key not found")

// Store is a synchronous string key-value store. Remove of a missing key is
// not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

var errEmptyKey = errors.New("store: key cannot be empty")
