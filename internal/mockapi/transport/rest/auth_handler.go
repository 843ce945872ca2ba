// Package rest provides the HTTP handlers of the mock backend.
package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/flogin/prodadmin/internal/mockapi/auth"
	mkerrors "github.com/flogin/prodadmin/internal/mockapi/errors"
	"github.com/flogin/prodadmin/pkg/web"
	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

type profileResponse struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

// AuthHandler serves login and profile requests.
type AuthHandler struct {
	service *auth.Service
	tokens  *auth.TokenManager
	logger  *slog.Logger
}

func NewAuthHandler(service *auth.Service, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the authentication routes. Login is public;
// profile requires a valid bearer token.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.With(auth.Middleware(h.tokens)).Get("/profile", h.Profile)
	})
}

// Login exchanges a username/password pair for an access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, mkerrors.ErrBadCredentials) {
			mLogger.WarnContext(r.Context(), "Login rejected", "username", req.Username)
			web.RespondError(w, mLogger, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		mLogger.ErrorContext(r.Context(), "Error during login", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to log in")
		return
	}
	mLogger.InfoContext(r.Context(), "User logged in", "username", req.Username)
	web.RespondJSON(w, mLogger, http.StatusOK, loginResponse{AccessToken: token})
}

// Profile returns the profile of the authenticated user.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	username := auth.ContextUsername(r.Context())
	user, err := h.service.ProfileFor(username)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving profile", "username", username, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, profileResponse{
		FullName: user.FullName,
		Username: user.Username,
	})
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *AuthHandler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, _ := web.GetRequestID(r.Context())
	return h.logger.With("request_id", reqID)
}
