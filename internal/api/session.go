package api

import (
	"net/http"
	"strings"

	"stocktake/internal/auth"
)

// SessionHandler opens sessions. There are no credentials: a session is
// just a signed display name.
type SessionHandler struct {
	Secret string
}

type createSessionRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	token, err := auth.GenerateToken(h.Secret, name)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"token": token})
}
