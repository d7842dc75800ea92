// Package catalog keeps the console's projects, agents, tools and interfaces.
// Each collection is one JSON array stored under a fixed key. Projects join
// their children by name.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-foundry/pkg/documents"
	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/store"
)

// ErrNotFound is returned when a named record does not exist.
var ErrNotFound = errors.New("catalog: not found")

// DefaultUser is recorded as UpdatedBy when no user is configured.
const DefaultUser = "Admin"

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides project id generation.
func WithIDGenerator(fn func() string) Option {
	return func(c *Catalog) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithUser sets the UpdatedBy value stamped on writes.
func WithUser(user string) Option {
	return func(c *Catalog) {
		if strings.TrimSpace(user) != "" {
			c.user = user
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDocuments overrides the field document repository used for cascades.
func WithDocuments(repo *documents.Repository) Option {
	return func(c *Catalog) {
		if repo != nil {
			c.docs = repo
		}
	}
}

// Catalog reads and writes the record collections. Writes through one Catalog
// are serialized.
type Catalog struct {
	mu     sync.Mutex
	store  store.Store
	docs   *documents.Repository
	now    func() time.Time
	newID  func() string
	user   string
	logger *slog.Logger
}

// New builds a Catalog over s.
func New(s store.Store, opts ...Option) *Catalog {
	c := &Catalog{
		store:  s,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		user:   DefaultUser,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.docs == nil {
		c.docs = documents.New(s, documents.WithLogger(c.logger))
	}
	return c
}

// Documents exposes the field document repository.
func (c *Catalog) Documents() *documents.Repository {
	return c.docs
}

func load[T any](ctx context.Context, s store.Store, key string) ([]T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("catalog: load %s: %w", key, err)
	}
	if strings.TrimSpace(raw) == "" {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", key, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func save[T any](ctx context.Context, s store.Store, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("catalog: encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("catalog: save %s: %w", key, err)
	}
	return nil
}

func filter[T any](records []T, keep func(T) bool) []T {
	out := records[:0]
	for _, rec := range records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", model.ErrValidationFailed, field)
	}
	return nil
}

func duplicate(kind, name string) error {
	return fmt.Errorf("%w: %s %q already exists", model.ErrValidationFailed, kind, name)
}
