package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lifelog/lifelog/internal/auth"
	"github.com/lifelog/lifelog/internal/cache"
	"github.com/lifelog/lifelog/internal/model"
	"github.com/lifelog/lifelog/internal/resource"
	"github.com/lifelog/lifelog/internal/store"
)

const minPasswordLength = 8

// AuthHandler serves registration, login, logout, and profile endpoints.
type AuthHandler struct {
	db     *store.DB
	cache  *cache.Cache
	tokens *auth.TokenIssuer
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(db *store.DB, cache *cache.Cache, tokens *auth.TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{db: db, cache: cache, tokens: tokens, logger: logger}
}

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Timezone    string `json:"timezone"`
}

// SessionResponse carries a freshly issued token and its user.
type SessionResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusUnprocessableEntity, "a valid email is required")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusUnprocessableEntity, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           resource.NewID(),
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Timezone:     req.Timezone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.Timezone == "" {
		user.Timezone = "UTC"
	}

	if err := h.db.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		writeEngineError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)

	token, _, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusCreated, SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/auth/login. Unknown email and wrong password
// are indistinguishable to the caller.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeEngineError(w, r, h.logger, err)
		return
	}

	match, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, _, expiresAt, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)

	writeData(w, http.StatusOK, SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// Logout handles POST /api/v1/auth/logout. The token is revoked for its
// maximum remaining lifetime; the exact expiry is not tracked per token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ac := auth.MustFromContext(r.Context())

	if err := h.cache.RevokeToken(r.Context(), ac.TokenID, h.tokens.TTL()); err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user_logged_out", "user_id", ac.UserID)
	writeMessage(w, http.StatusOK, "logged out")
}

// Me handles GET /api/v1/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ac := auth.MustFromContext(r.Context())

	user, err := h.db.GetUserByID(r.Context(), ac.UserID)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, user)
}

// UpdateProfileRequest is the request body for profile updates. Email is
// immutable.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Timezone    *string `json:"timezone"`
}

// UpdateMe handles PATCH /api/v1/me.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	ac := auth.MustFromContext(r.Context())
	user, err := h.db.GetUserByID(r.Context(), ac.UserID)
	if err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	if req.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.Timezone != nil {
		user.Timezone = *req.Timezone
	}

	if err := h.db.UpdateUserProfile(r.Context(), user); err != nil {
		writeEngineError(w, r, h.logger, err)
		return
	}

	writeData(w, http.StatusOK, user)
}
