package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/codekids/academy-api/internal/domain/auth"
	"github.com/codekids/academy-api/internal/service"
)

// AuthServiceInterface defines what the HTTP layer needs from the auth service.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers serves the login, callback, logout, and status endpoints.
type AuthHandlers struct {
	auth   AuthServiceInterface
	logger *slog.Logger
	// callbackURL is the absolute redirect URI registered with the provider.
	callbackURL string
	// secureCookies should be true behind TLS. Dev mode runs plain HTTP.
	secureCookies bool
}

// AuthHandlersOptions groups constructor parameters for AuthHandlers.
type AuthHandlersOptions struct {
	Auth          AuthServiceInterface
	Logger        *slog.Logger
	CallbackURL   string
	SecureCookies bool
}

// NewAuthHandlers constructs AuthHandlers.
func NewAuthHandlers(opts AuthHandlersOptions) *AuthHandlers {
	return &AuthHandlers{
		auth:          opts.Auth,
		logger:        opts.Logger,
		callbackURL:   opts.CallbackURL,
		secureCookies: opts.SecureCookies,
	}
}

// Login begins the authentication flow and redirects to the provider.
// An optional redirect_uri query parameter records where to land after
// the callback; only same-site paths are accepted.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	res, err := h.auth.BeginLogin(r.Context(), h.callbackURL)
	if err != nil {
		h.logger.Error("begin login", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: errors.New("could not start login")})
		return
	}

	h.setOAuthCookies(w, res.State, res.Nonce, safeRedirectPath(r.URL.Query().Get("redirect_uri")))
	http.Redirect(w, r, res.AuthURL, http.StatusFound)
}

// Callback completes the authentication flow: it checks the state echo
// against the cookie, exchanges the code, and sets the session cookie.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_state", Err: errors.New("state mismatch")})
		return
	}

	nonceCookie, err := r.Cookie("oauth_nonce")
	if err != nil || nonceCookie.Value == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_nonce", Err: errors.New("missing nonce")})
		return
	}

	res, err := h.auth.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		h.clearOAuthCookies(w)
		if errors.Is(err, service.ErrNoRoleMapping) {
			WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "no_role", Err: errors.New("account has no access to this application")})
			return
		}
		h.logger.Error("complete login", slog.Any("error", err))
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "login_failed", Err: errors.New("could not complete login")})
		return
	}

	redirectTo := getPostLoginRedirect(r)
	h.clearOAuthCookies(w)
	h.setSessionCookie(w, res.Session.ID, res.Session.ExpiresAt)
	http.Redirect(w, r, redirectTo, http.StatusFound)
}

// Logout deletes the session and clears the cookie.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		if logoutErr := h.auth.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger.Error("logout", slog.Any("error", logoutErr))
		}
	}

	h.clearCookie(w, "session_id")
	WriteJSON(w, http.StatusOK, map[string]bool{"logged_out": true})
}

// Status reports whether the caller is authenticated, and if so, who.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromRequest(r, h.auth)
	if session == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]string{
			"id":         session.UserID,
			"first_name": session.FirstName,
			"last_name":  session.LastName,
			"email":      session.Email,
			"role":       string(session.Role),
		},
	})
}

const oauthCookieMaxAge = 600 // seconds; the round trip to the provider is short

func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, state, nonce, redirectTo string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   oauthCookieMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_nonce",
		Value:    nonce,
		Path:     "/",
		MaxAge:   oauthCookieMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	if redirectTo != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     "post_login_redirect",
			Value:    redirectTo,
			Path:     "/",
			MaxAge:   oauthCookieMaxAge,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (h *AuthHandlers) clearOAuthCookies(w http.ResponseWriter) {
	h.clearCookie(w, "oauth_state")
	h.clearCookie(w, "oauth_nonce")
	h.clearCookie(w, "post_login_redirect")
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, sessionID string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// getPostLoginRedirect returns the stored post-login destination, or "/".
func getPostLoginRedirect(r *http.Request) string {
	cookie, err := r.Cookie("post_login_redirect")
	if err != nil {
		return "/"
	}
	if path := safeRedirectPath(cookie.Value); path != "" {
		return path
	}
	return "/"
}

// safeRedirectPath accepts only same-site absolute paths. Anything with a
// scheme, host, or protocol-relative prefix is rejected to prevent open
// redirects.
func safeRedirectPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	if strings.ContainsAny(raw, "\r\n") {
		return ""
	}
	return raw
}
