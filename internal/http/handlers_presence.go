package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/codekids/academy-api/internal/domain/presence"
)

// PresenceHandlers serves the visitor heartbeat endpoints backing the
// "who is online" view.
type PresenceHandlers struct {
	store *presence.Store
}

// NewPresenceHandlers constructs PresenceHandlers.
func NewPresenceHandlers(store *presence.Store) *PresenceHandlers {
	return &PresenceHandlers{store: store}
}

type heartbeatRequest struct {
	VisitorID string `json:"visitor_id"`
	Page      string `json:"page"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Heartbeat records a visitor ping. Anonymous visitors are tracked by their
// client-generated visitor ID; for logged-in callers the session name and
// email are attached so staff can see who is browsing.
func (h *PresenceHandlers) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req heartbeatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.VisitorID = strings.TrimSpace(req.VisitorID)
	if req.VisitorID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_visitor_id", Err: errors.New("visitor_id is required")})
		return
	}

	hb := presence.Heartbeat{
		VisitorID: req.VisitorID,
		Page:      req.Page,
		UserAgent: req.UserAgent,
	}
	if hb.UserAgent == "" {
		hb.UserAgent = r.UserAgent()
	}
	if session, ok := GetUserSessionFromContext(r.Context()); ok {
		hb.Name = strings.TrimSpace(session.FirstName + " " + session.LastName)
		hb.Email = session.Email
	}

	h.store.Heartbeat(hb)
	w.WriteHeader(http.StatusAccepted)
}

type leaveRequest struct {
	VisitorID string `json:"visitor_id"`
}

// Leave removes a visitor immediately instead of waiting for TTL expiry.
func (h *PresenceHandlers) Leave(w http.ResponseWriter, r *http.Request) {
	var req leaveRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	h.store.Remove(strings.TrimSpace(req.VisitorID))
	w.WriteHeader(http.StatusNoContent)
}

// Active lists visitors seen within the TTL, newest first. Staff only;
// routing enforces the role check.
func (h *PresenceHandlers) Active(w http.ResponseWriter, r *http.Request) {
	visitors := h.store.ListActive()
	WriteJSON(w, http.StatusOK, map[string]any{
		"count":    len(visitors),
		"visitors": visitors,
	})
}
