package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/codekids/academy-api/internal/domain/auth"
	"github.com/codekids/academy-api/internal/domain/presence"
)

func TestPresenceHandlers_Heartbeat(t *testing.T) {
	t.Parallel()
	store := presence.NewStore()
	h := NewPresenceHandlers(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/presence/heartbeat",
		strings.NewReader(`{"visitor_id":"v1","page":"/courses"}`))
	req.Header.Set("User-Agent", "test-agent/1.0")
	h.Heartbeat(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	visitors := store.ListActive()
	require.Len(t, visitors, 1)
	assert.Equal(t, "v1", visitors[0].VisitorID)
	assert.Equal(t, "/courses", visitors[0].Page)
	assert.Equal(t, "test-agent/1.0", visitors[0].UserAgent, "falls back to the request header")
}

func TestPresenceHandlers_Heartbeat_MissingVisitorID(t *testing.T) {
	t.Parallel()
	h := NewPresenceHandlers(presence.NewStore())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/presence/heartbeat",
		strings.NewReader(`{"page":"/courses"}`))
	h.Heartbeat(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_visitor_id")
}

func TestPresenceHandlers_Heartbeat_AttachesSessionIdentity(t *testing.T) {
	t.Parallel()
	store := presence.NewStore()
	h := NewPresenceHandlers(store)

	session := &domainauth.Session{
		ID:        "s1",
		UserID:    "user-1",
		FirstName: "Pat",
		LastName:  "Jones",
		Email:     "pat@example.com",
		Role:      domainauth.RoleParent,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/presence/heartbeat",
		strings.NewReader(`{"visitor_id":"v1","page":"/courses"}`))
	req = req.WithContext(SetSessionInContext(req.Context(), session))
	h.Heartbeat(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	visitors := store.ListActive()
	require.Len(t, visitors, 1)
	assert.Equal(t, "Pat Jones", visitors[0].Name)
	assert.Equal(t, "pat@example.com", visitors[0].Email)
}

func TestPresenceHandlers_LeaveAndActive(t *testing.T) {
	t.Parallel()
	store := presence.NewStore()
	store.Heartbeat(presence.Heartbeat{VisitorID: "v1", Page: "/"})
	store.Heartbeat(presence.Heartbeat{VisitorID: "v2", Page: "/courses"})
	h := NewPresenceHandlers(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/presence/leave",
		strings.NewReader(`{"visitor_id":"v1"}`))
	h.Leave(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.Active(rec, httptest.NewRequest(http.MethodGet, "/api/presence/active", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int               `json:"count"`
		Visitors []presence.Record `json:"visitors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Visitors, 1)
	assert.Equal(t, "v2", body.Visitors[0].VisitorID)
}
