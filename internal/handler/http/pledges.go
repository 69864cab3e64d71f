package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/q-lng/Christmas-Community/internal/service"
	"github.com/q-lng/Christmas-Community/pkg/middleware"
)

// PledgeHandler serves the acting user's pledge endpoints.
type PledgeHandler struct {
	pledges *service.PledgeService
}

// NewPledgeHandler creates the pledge handler.
func NewPledgeHandler(pledges *service.PledgeService) *PledgeHandler {
	return &PledgeHandler{pledges: pledges}
}

// List handles GET /api/v1/profile/pledges.
func (h *PledgeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	groups, err := h.pledges.ListPledges(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"pledges": groups})
}

// TogglePurchased handles
// POST /api/v1/profile/pledges/{owner}/{itemID}/purchased.
func (h *PledgeHandler) TogglePurchased(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	owner := chi.URLParam(r, "owner")
	itemID := chi.URLParam(r, "itemID")

	purchased, err := h.pledges.TogglePurchased(r.Context(), userID, owner, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"purchased": purchased})
}
