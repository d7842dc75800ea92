// Package documents persists a form interface's field list through the
// key-value store. The payload is the JSON array of fields; sections carry
// their children inline.
package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/store"
)

const keyPrefix = "foundry:interfaces:"

// Key returns the storage key of the field list for interface name in project.
// Both segments are query-escaped so a ':' inside a name cannot shift the
// boundary between them.
func Key(project, name string) string {
	return keyPrefix + url.QueryEscape(project) + ":" + url.QueryEscape(name) + ":fields"
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger attaches a logger. Malformed payloads are reported at warn.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Repository loads and saves field lists.
type Repository struct {
	store  store.Store
	logger *slog.Logger
}

// New builds a repository over s.
func New(s store.Store, opts ...Option) *Repository {
	r := &Repository{
		store:  s,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Load returns the stored field list. A missing or malformed payload yields an
// empty list; only store failures are returned as errors.
func (r *Repository) Load(ctx context.Context, project, name string) ([]model.Field, error) {
	key := Key(project, name)
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []model.Field{}, nil
		}
		return nil, fmt.Errorf("documents: load %q: %w", key, err)
	}
	if strings.TrimSpace(raw) == "" {
		return []model.Field{}, nil
	}

	var fields []model.Field
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		r.logger.Warn("discarding malformed field list", "key", key, "err", err)
		return []model.Field{}, nil
	}
	if err := check(fields); err != nil {
		r.logger.Warn("discarding malformed field list", "key", key, "err", err)
		return []model.Field{}, nil
	}
	if fields == nil {
		fields = []model.Field{}
	}
	linkParents(fields)
	return fields, nil
}

// Save writes fields under the interface's key.
func (r *Repository) Save(ctx context.Context, project, name string, fields []model.Field) error {
	if fields == nil {
		fields = []model.Field{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("documents: encode fields: %w", err)
	}
	key := Key(project, name)
	if err := r.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("documents: save %q: %w", key, err)
	}
	r.logger.Debug("field list saved", "key", key, "fields", model.Count(fields))
	return nil
}

// Delete removes the interface's field list.
func (r *Repository) Delete(ctx context.Context, project, name string) error {
	key := Key(project, name)
	if err := r.store.Remove(ctx, key); err != nil {
		return fmt.Errorf("documents: delete %q: %w", key, err)
	}
	return nil
}

// Move re-keys a field list, used when an interface or project is renamed.
func (r *Repository) Move(ctx context.Context, fromProject, fromName, toProject, toName string) error {
	if fromProject == toProject && fromName == toName {
		return nil
	}
	fields, err := r.Load(ctx, fromProject, fromName)
	if err != nil {
		return err
	}
	if err := r.Save(ctx, toProject, toName, fields); err != nil {
		return err
	}
	return r.Delete(ctx, fromProject, fromName)
}

func check(fields []model.Field) error {
	seen := make(map[string]struct{})
	for _, field := range fields {
		if err := checkField(field, seen, false); err != nil {
			return err
		}
	}
	return nil
}

func checkField(field model.Field, seen map[string]struct{}, nested bool) error {
	if field.ID == "" {
		return errors.New("field without id")
	}
	if _, dup := seen[field.ID]; dup {
		return fmt.Errorf("duplicate field id %q", field.ID)
	}
	seen[field.ID] = struct{}{}
	if !field.Kind.IsSection() && len(field.Fields) > 0 {
		return fmt.Errorf("field %q of kind %s cannot contain fields", field.ID, field.Kind)
	}
	if field.Kind.IsSection() && nested {
		return fmt.Errorf("section %q nested inside another section", field.ID)
	}
	for _, child := range field.Fields {
		if err := checkField(child, seen, true); err != nil {
			return err
		}
	}
	return nil
}

func linkParents(fields []model.Field) {
	for i := range fields {
		for j := range fields[i].Fields {
			fields[i].Fields[j].Parent = fields[i].ID
		}
	}
}
