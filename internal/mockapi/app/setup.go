// Package app contains the application setup for the mock backend.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/flogin/prodadmin/internal/mockapi/auth"
	"github.com/flogin/prodadmin/internal/mockapi/config"
	"github.com/flogin/prodadmin/internal/mockapi/service"
	"github.com/flogin/prodadmin/internal/mockapi/store"
	"github.com/flogin/prodadmin/internal/mockapi/transport/rest"
	"github.com/flogin/prodadmin/pkg/server"
	"github.com/go-chi/chi/v5"
)

// The mock backend always knows this user. The client's manual test
// flows log in with it.
const (
	seedUsername = "admin123"
	seedPassword = "admin123"
	seedFullName = "Store Administrator"
)

var seedCategories = []string{"Electronics", "Books", "Clothing", "Home & Garden"}

type Dependencies struct {
	Service     *service.Service
	AuthService *auth.Service
	Tokens      *auth.TokenManager
	Logger      *slog.Logger
}

// SetupDependencies builds the stores, seeds them with the well-known
// user and categories, and wires the services.
func SetupDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	users := store.NewUserStore()
	categories := store.NewCategoryStore()
	products := store.NewProductStore()

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}
	users.Seed(seedUsername, seedFullName, hash)
	for _, name := range seedCategories {
		categories.Seed(name)
	}

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	return &Dependencies{
		Service:     service.NewService(products, categories),
		AuthService: auth.NewService(users, tokens),
		Tokens:      tokens,
		Logger:      logger,
	}, nil
}

// SetupHttpHandler initializes the HTTP routes for the mock backend.
// Used by E2E tests to set up the handler without a listener.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the mock backend.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	authHandler := rest.NewAuthHandler(deps.AuthService, deps.Tokens, deps.Logger)
	authHandler.RegisterRoutes(mux)

	handler := rest.NewHandler(deps.Service, deps.Tokens, deps.Logger)
	handler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the mock backend.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
