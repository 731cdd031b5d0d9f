package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/velora/storefront/internal/domain"
	"github.com/velora/storefront/internal/service"
	"github.com/velora/storefront/pkg/httputil"
	"github.com/velora/storefront/pkg/validator"
)

// AuthHandler handles HTTP requests for the mocked authentication endpoints.
type AuthHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// RegisterRequest is the JSON request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
}

// LoginRequest is the JSON request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// userView is the user response shape. It never carries the password hash.
type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionView struct {
	User        userView `json:"user"`
	AccessToken string   `json:"access_token"`
}

func newUserView(user *domain.User) userView {
	return userView{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}

func newSessionView(session *service.Session) sessionView {
	return sessionView{
		User:        newUserView(session.User),
		AccessToken: session.AccessToken,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: newSessionView(session)})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newSessionView(session)})
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so this only
// acknowledges; the client discards its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())
	h.service.Logout(r.Context(), userID)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "logged_out"}})
}

// Me handles GET /api/v1/auth/me, returning the identity baked into the token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{
		"id":    claims.UserID,
		"email": claims.Email,
		"name":  claims.Name,
	}})
}
