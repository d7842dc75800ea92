package foundry

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-foundry/pkg/builder"
)

// SessionOption configures a page session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	builderOpts []builder.Option
	logger      *slog.Logger
}

func newSessionConfig(opts []SessionOption) sessionConfig {
	cfg := sessionConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.builderOpts = append(cfg.builderOpts, builder.WithLogger(cfg.logger))
	return cfg
}

// WithBuilderOptions forwards options to the form builder engine.
func WithBuilderOptions(opts ...builder.Option) SessionOption {
	return func(cfg *sessionConfig) {
		cfg.builderOpts = append(cfg.builderOpts, opts...)
	}
}

// WithConfirmer sets the delete confirmation collaborator.
func WithConfirmer(c builder.Confirmer) SessionOption {
	return WithBuilderOptions(builder.WithConfirmer(c))
}

// WithNotifier sets the collaborator receiving builder notices.
func WithNotifier(n builder.Notifier) SessionOption {
	return WithBuilderOptions(builder.WithNotifier(n))
}

// WithRenderer enables live preview markup.
func WithRenderer(r builder.Renderer) SessionOption {
	return WithBuilderOptions(builder.WithRenderer(r))
}

// WithLogger sets the session logger, shared with the builder.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(cfg *sessionConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
