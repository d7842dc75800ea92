package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
)

const fileExt = ".value"

// File stores one file per key under Dir. Keys are query-escaped so any key
// maps onto a single portable file name.
type File struct {
	Dir string
}

// NewFile creates a file store rooted at dir. An empty dir defaults to
// ".foundry/data".
func NewFile(dir string) *File {
	if dir == "" {
		dir = filepath.Join(".foundry", "data")
	}
	return &File{Dir: dir}
}

func (f *File) path(key string) string {
	return filepath.Join(f.Dir, url.QueryEscape(key)+fileExt)
}

// Get reads the value stored under key.
func (f *File) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", errEmptyKey
	}
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("store: read %q: %w", key, err)
	}
	return string(data), nil
}

// Set writes value under key. The write goes to a temp file in the same
// directory which is synced and renamed over the destination.
func (f *File) Set(_ context.Context, key, value string) error {
	if key == "" {
		return errEmptyKey
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("store: ensure data directory: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, "tmp-*"+fileExt)
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.WriteString(value); err != nil {
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("store: fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp file: %w", err)
	}

	dest := f.path(key)
	// Rename replaces dest atomically on POSIX; only Windows needs it gone first.
	if runtime.GOOS == "windows" {
		if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("store: replace %q: %w", key, err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("store: rename into %q: %w", key, err)
	}
	return nil
}

// Remove deletes the file holding key.
func (f *File) Remove(_ context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: remove %q: %w", key, err)
	}
	return nil
}
