// Package config holds the state shared by every pnl subcommand: the
// persistent flags, the loaded configuration and the opened journal.
package config

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	appconfig "github.com/rustyeddy/pnlreport/config"
	"github.com/rustyeddy/pnlreport/internal/app"
	"github.com/rustyeddy/pnlreport/internal/logger"
	"github.com/rustyeddy/pnlreport/journal"
	"github.com/rustyeddy/pnlreport/remote"
)

// RootConfig is filled from the persistent flags and then from the config
// file in Load.
type RootConfig struct {
	ConfigPath string
	EnvFile    string
	DBPath     string
	LogLevel   string
	NoColor    bool

	// Now is the clock handed to the app; nil means time.Now.
	Now func() time.Time

	Config *appconfig.Config
	Log    *zap.Logger
}

// Load reads the config file and the environment, then lets explicit
// flags win. It builds the logger.
func (rc *RootConfig) Load() error {
	cfg, err := appconfig.Load(rc.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(rc.EnvFile); err != nil {
		return err
	}
	if rc.DBPath != "" {
		cfg.Journal.DBPath = rc.DBPath
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	rc.Config = cfg
	rc.Log = log
	return nil
}

// Session is one opened journal plus its sync bridge.
type Session struct {
	App      *app.App
	Client   *remote.Client
	Exporter *remote.Exporter

	db  *journal.SQLite
	log *zap.Logger
}

// Open opens the journal named by the config and loads the app state.
func (rc *RootConfig) Open(ctx context.Context) (*Session, error) {
	if rc.Config == nil {
		if err := rc.Load(); err != nil {
			return nil, err
		}
	}
	cfg := rc.Config
	if rc.Log == nil {
		rc.Log = zap.NewNop()
	}

	db, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	timeout, _ := cfg.Sync.TimeoutDuration()
	debounce, _ := cfg.Sync.DebounceDuration()
	client := remote.NewClient(cfg.Sync.URL, timeout)
	exporter := remote.NewExporter(client, debounce, rc.Log)

	opts := app.Options{
		Now:                 rc.Now,
		Log:                 rc.Log,
		AutoSync:            cfg.Sync.AutoSync && client.URL != "",
		MinimizePastMonths:  cfg.View.MinimizePastMonths,
		ExcludeCurrentMonth: cfg.View.ExcludeCurrentMonth,
	}
	if client.URL != "" {
		opts.Sink = exporter
		opts.Source = client
	}

	a, err := app.Open(ctx, db, opts)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Session{App: a, Client: client, Exporter: exporter, db: db, log: rc.Log}, nil
}

// StoredEntry reads one row back from the journal database by id.
func (s *Session) StoredEntry(ctx context.Context, entryID string) (journal.Entry, error) {
	return s.db.GetEntry(ctx, entryID)
}

// ExitedBetween reads the stored rows whose exit date falls in [start, end).
func (s *Session) ExitedBetween(ctx context.Context, start, end time.Time) ([]journal.Entry, error) {
	return s.db.ListExitedBetween(ctx, start, end)
}

// Close sends any export still waiting out its debounce window, since the
// process is about to exit, and closes the journal.
func (s *Session) Close(ctx context.Context) error {
	if err := s.Exporter.Flush(ctx); err != nil {
		s.log.Warn("final sync failed", zap.Error(err))
	}
	s.Exporter.Wait()
	_ = s.log.Sync()
	return s.db.Close()
}
