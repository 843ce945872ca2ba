// Package cli is the terminal frontend of the admin client. It owns no
// state of its own: every command goes through the form controllers, the
// session store, or the caches.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/flogin/prodadmin/internal/client/api"
	"github.com/flogin/prodadmin/internal/client/config"
	"github.com/flogin/prodadmin/internal/client/session"
	"github.com/flogin/prodadmin/internal/client/store"
	"github.com/flogin/prodadmin/pkg/bootstrap"

	_ "modernc.org/sqlite"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	sessions   *session.Store
	products   *store.ProductCache
	categories *store.CategoryCache
	db         *sql.DB
	reader     *bufio.Reader
	out        io.Writer
}

// NewApp wires the client: credential database, session store, backend
// client, and the two caches. The backend client reads the session token
// through a callback so it always attaches the current one.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := bootstrap.NewCredentialDB(ctx, cfg.Credentials.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	var sessions *session.Store
	client := api.NewHTTPClient(cfg.API.BaseURL, cfg.API.Timeout, func() string {
		return sessions.Token()
	}, logger)
	sessions = session.NewStore(client, session.NewSQLiteCredentialStore(db), cfg.Credentials.TTL, logger)

	return &App{
		cfg:        cfg,
		logger:     logger,
		sessions:   sessions,
		products:   store.NewProductCache(client, logger),
		categories: store.NewCategoryCache(client, logger),
		db:         db,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}, nil
}

// Run restores any persisted session and enters the command loop.
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.db.Close() }()

	if err := a.sessions.Init(ctx); err != nil {
		// The session still counts as initialized; start logged out.
		a.logger.Warn("Session restore failed", "error", err)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.sessions.LoggedIn()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return "logged in"
	}
	return "guest"
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}
