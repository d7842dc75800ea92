package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	foundry "github.com/goliatone/go-foundry"
	"github.com/goliatone/go-foundry/internal/config"
	"github.com/goliatone/go-foundry/internal/logging"
	"github.com/goliatone/go-foundry/pkg/builder"
	"github.com/goliatone/go-foundry/pkg/catalog"
	"github.com/goliatone/go-foundry/pkg/prompt"
	"github.com/goliatone/go-foundry/pkg/store"
)

// app carries the dependencies shared by every command. It is populated by
// the root command's pre-run hook.
type app struct {
	configPath string
	project    string
	backend    string
	dataDir    string
	logLevel   string
	metrics    bool
	assumeYes  bool

	cfg      config.Config
	logger   *slog.Logger
	store    store.Store
	catalog  *catalog.Catalog
	registry *prometheus.Registry
	driver   prompt.Driver
	out      io.Writer
	closers  []io.Closer

	// newStore replaces backend selection, used by tests.
	newStore func(config.Config) (store.Store, error)
}

func newApp() *app {
	return &app{out: os.Stdout}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Store.Backend = config.Backend(a.backend)
	}
	if a.dataDir != "" {
		cfg.Store.DataDir = a.dataDir
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.metrics {
		cfg.Store.Metrics = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}
	a.logger = logging.New(level, format)

	open := a.newStore
	if open == nil {
		open = a.openStore
	}
	s, err := open(cfg)
	if err != nil {
		return err
	}
	if cfg.Store.Metrics {
		a.registry = prometheus.NewRegistry()
		metrics := store.NewMetrics("foundry")
		if err := metrics.Register(a.registry); err != nil {
			return err
		}
		s = store.Instrument(s, metrics)
	}
	a.store = s

	a.catalog = foundry.NewCatalog(s,
		catalog.WithUser(cfg.User),
		catalog.WithLogger(a.logger),
	)
	if a.driver == nil {
		// Prompts draw on stderr so export and preview output can be piped.
		a.driver = prompt.NewSurveyDriver(
			prompt.WithOutput(cmd.ErrOrStderr()),
			prompt.WithAskOptions(survey.WithStdio(os.Stdin, os.Stderr, os.Stderr)),
		)
	}
	if a.out == nil {
		a.out = cmd.OutOrStdout()
	}
	a.logger.Debug("foundry ready", "backend", string(cfg.Store.Backend), "user", cfg.User)
	return nil
}

func (a *app) openStore(cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendFile:
		return store.NewFile(cfg.Store.DataDir), nil
	case config.BackendRedis:
		r := store.NewRedis(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB,
			store.WithPrefix(cfg.Store.Redis.Prefix))
		a.closers = append(a.closers, r)
		return r, nil
	}
	return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
}

func (a *app) teardown(cmd *cobra.Command) error {
	if a.registry != nil {
		if err := a.writeMetrics(cmd.ErrOrStderr()); err != nil {
			a.logger.Warn("metrics dump failed", "err", err)
		}
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close failed", "err", err)
		}
	}
	return nil
}

func (a *app) writeMetrics(w io.Writer) error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) projectName() string {
	if a.project == "" {
		return foundry.DefaultProject
	}
	return a.project
}

// sessionOptions wires terminal collaborators into the builder.
func (a *app) sessionOptions(ctx context.Context) []foundry.SessionOption {
	confirmer := prompt.Confirmer(a.driver)
	if a.assumeYes {
		confirmer = builder.AlwaysConfirm
	}
	return []foundry.SessionOption{
		foundry.WithConfirmer(confirmer),
		foundry.WithNotifier(prompt.Notifier(ctx, a.driver)),
		foundry.WithLogger(a.logger),
	}
}

// confirm asks before destructive catalog operations.
func (a *app) confirm(ctx context.Context, message string) (bool, error) {
	if a.assumeYes {
		return true, nil
	}
	return prompt.Confirmer(a.driver).Confirm(ctx, message)
}

func (a *app) agentNames(ctx context.Context) ([]string, error) {
	agents, err := a.catalog.Agents(ctx, a.projectName())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(agents))
	for _, agent := range agents {
		names = append(names, agent.Name)
	}
	return names, nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
