package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/invoisio/paymentledger/internal/config"
	"github.com/invoisio/paymentledger/internal/event"
	"github.com/invoisio/paymentledger/internal/ledger"
	"github.com/invoisio/paymentledger/internal/record"
	"github.com/invoisio/paymentledger/internal/store"
)

// session bundles everything a command needs to run one ledger operation.
type session struct {
	store  *store.Store
	ledger *ledger.Ledger
	ctx    context.Context
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession resolves flags and config into a ready-to-use ledger session.
//
// Precedence: flags override config. The database path must come from one of
// them. Callers from --caller are appended to the config caller, so a config
// file pinning the service identity still allows a co-signer on the command
// line.
func openSession(opts *RootOptions) (*session, error) {
	var cfg *config.Config
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load config", err)
		}
		cfg = loaded
	}

	setupLogging(opts, cfg)

	dbPath := opts.Database
	if dbPath == "" && cfg != nil {
		dbPath = cfg.Database
	}
	if dbPath == "" {
		return nil, NewExitError(ExitCommandError, "no database path: pass --db or set database in --config")
	}

	var callers []record.Identity
	if cfg != nil && cfg.Caller != "" {
		callers = append(callers, record.Identity(cfg.Caller))
	}
	for _, c := range opts.Callers {
		callers = append(callers, record.Identity(c))
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open ledger database", err)
	}

	return &session{
		store:  st,
		ledger: ledger.New(st, ledger.ContextAuthorizer{}, event.NewLogEmitter(nil)),
		ctx:    ledger.WithCallers(context.Background(), callers...),
	}, nil
}

// setupLogging configures the default slog logger.
// --verbose wins over the configured log level.
func setupLogging(opts *RootOptions, cfg *config.Config) {
	level := slog.LevelInfo
	if cfg != nil {
		level = cfg.SlogLevel()
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
