// Package api contains the JSON handlers for the customer-facing
// storefront endpoints.
package api

import (
	"net/http"
	"time"

	"github.com/purelife/storefront/internal/auth"
	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/handler"
	"github.com/purelife/storefront/internal/middleware"
	"github.com/purelife/storefront/internal/service"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	users        service.UserService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie should be
// true whenever the site is served over HTTPS.
func NewAuthHandler(users service.UserService, secureCookie bool) *AuthHandler {
	return &AuthHandler{users: users, secureCookie: secureCookie}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, token, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.setSessionCookie(w, token)
	handler.RespondJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.setSessionCookie(w, token)
	handler.RespondJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// Logout handles POST /api/auth/logout. Sessions are stateless tokens,
// so logout just clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	handler.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /api/auth/me, returning the profile for the current
// session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetProfile(r.Context(), domain.RequireUserID(r.Context()))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.TokenTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
