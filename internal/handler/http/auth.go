package http

import (
	"net/http"

	"github.com/q-lng/Christmas-Community/internal/service"
	apperrors "github.com/q-lng/Christmas-Community/pkg/errors"
	"github.com/q-lng/Christmas-Community/pkg/validator"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	users *service.UserService
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type loginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		if _, ok := err.(*validator.ValidationError); !ok {
			writeError(w, r, apperrors.InvalidInput("invalid request body"))
			return
		}
		writeError(w, r, err)
		return
	}

	result, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
