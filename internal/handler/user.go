package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rameshaqua/storefront/internal/auth"
	"github.com/rameshaqua/storefront/internal/user"
)

// UserHandler exposes registration, login and the profile endpoint.
type UserHandler struct {
	svc    user.Service
	tokens *auth.Manager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc user.Service, tokens *auth.Manager) *UserHandler {
	return &UserHandler{svc: svc, tokens: tokens}
}

// RegisterRoutes mounts the public auth endpoints on router.
func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Post("/auth/register", h.handleRegister)
	router.Post("/auth/login", h.handleLogin)
}

// RegisterProtectedRoutes mounts endpoints that require a valid token.
func (h *UserHandler) RegisterProtectedRoutes(router chi.Router) {
	router.Get("/profile", h.handleProfile)
}

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func (h *UserHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		code := mapErrorToStatusCode(err)
		if code == http.StatusInternalServerError {
			log.Error().Err(err).Msg("Failed to register user")
			respondWithError(w, code, "failed to register")
			return
		}
		respondWithError(w, code, "email already registered")
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		respondWithError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondWithJSON(w, http.StatusCreated, authResponse{Token: token, User: u})
}

func (h *UserHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		code := mapErrorToStatusCode(err)
		if code == http.StatusInternalServerError {
			log.Error().Err(err).Msg("Failed to log user in")
			respondWithError(w, code, "failed to log in")
			return
		}
		respondWithError(w, code, "invalid email or password")
		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		respondWithError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	respondWithJSON(w, http.StatusOK, authResponse{Token: token, User: u})
}

func (h *UserHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	u, err := h.svc.GetByID(r.Context(), userID)
	if err != nil {
		code := mapErrorToStatusCode(err)
		if code == http.StatusInternalServerError {
			log.Error().Err(err).Msg("Failed to fetch profile")
			respondWithError(w, code, "failed to fetch profile")
			return
		}
		respondWithError(w, code, "user not found")
		return
	}

	respondWithJSON(w, http.StatusOK, u)
}
