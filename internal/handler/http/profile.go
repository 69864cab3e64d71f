package http

import (
	"net/http"

	"github.com/q-lng/Christmas-Community/internal/service"
	apperrors "github.com/q-lng/Christmas-Community/pkg/errors"
	"github.com/q-lng/Christmas-Community/pkg/middleware"
	"github.com/q-lng/Christmas-Community/pkg/validator"
)

// ProfileHandler serves the authenticated user's profile endpoints.
type ProfileHandler struct {
	users *service.UserService
}

// NewProfileHandler creates the profile handler.
func NewProfileHandler(users *service.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Get handles GET /api/v1/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateInfoRequest struct {
	Info map[string]string `json:"info" validate:"required"`
}

// UpdateInfo handles PUT /api/v1/profile/info.
func (h *ProfileHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req updateInfoRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeError(w, r, apperrors.InvalidInput("invalid request body"))
		return
	}

	user, err := h.users.UpdateInfo(r.Context(), userID, req.Info)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ChangePassword handles POST /api/v1/profile/password.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req changePasswordRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		if _, ok := err.(*validator.ValidationError); !ok {
			writeError(w, r, apperrors.InvalidInput("invalid request body"))
			return
		}
		writeError(w, r, err)
		return
	}

	if err := h.users.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadPicture handles POST /api/v1/profile/picture as a multipart upload
// with a single "picture" part.
func (h *ProfileHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	file, header, err := r.FormFile("picture")
	if err != nil {
		writeError(w, r, apperrors.InvalidInput("missing picture upload"))
		return
	}
	defer file.Close()

	user, err := h.users.UploadProfilePicture(r.Context(), userID, header.Filename, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
