package auth

import "net/http"

// DenyReason classifies why an authorization check failed.
type DenyReason string

const (
	// DenyNoSession means no identity could be resolved for the request.
	DenyNoSession DenyReason = "no_session"
	// DenyInvalidRole means an identity was resolved but its role claim is
	// missing or not one of the enumerated roles.
	DenyInvalidRole DenyReason = "invalid_role"
	// DenyInsufficientRole means the identity's role is recognized but not
	// permitted for the requested action.
	DenyInsufficientRole DenyReason = "insufficient_role"
)

// Decision is the outcome of an authorization check. It is a value, not an
// error: callers inspect it and translate denials into transport responses.
type Decision struct {
	Session *Session
	Reason  DenyReason
	Status  int
}

// Authorized reports whether the check passed.
func (d Decision) Authorized() bool { return d.Session != nil }

// Authorize decides whether the given session may perform an action gated to
// the allowed roles. A nil session is denied with NoSession (401); a session
// carrying an unrecognized role is denied with InvalidRole (401); a valid
// role outside the allowed set is denied with InsufficientRole (403).
//
// An empty allowed set means any authenticated identity is sufficient.
// Admin satisfies every allowed set; that superuser escalation is declared
// here, once, and must not be re-derived at call sites.
func Authorize(sess *Session, allowed ...Role) Decision {
	if sess == nil {
		return Decision{Reason: DenyNoSession, Status: http.StatusUnauthorized}
	}

	role, ok := ParseRole(string(sess.Role))
	if !ok {
		return Decision{Reason: DenyInvalidRole, Status: http.StatusUnauthorized}
	}

	if len(allowed) == 0 || role == RoleAdmin {
		return Decision{Session: sess}
	}
	for _, a := range allowed {
		if role == a {
			return Decision{Session: sess}
		}
	}
	return Decision{Reason: DenyInsufficientRole, Status: http.StatusForbidden}
}

// AuthorizeAdmin allows admins only.
func AuthorizeAdmin(sess *Session) Decision { return Authorize(sess, RoleAdmin) }

// AuthorizeStaff allows admins and support staff.
func AuthorizeStaff(sess *Session) Decision { return Authorize(sess, RoleAdmin, RoleSupport) }

// AuthorizeInstructor allows instructors (and admins via escalation).
func AuthorizeInstructor(sess *Session) Decision { return Authorize(sess, RoleInstructor) }

// AuthorizeParent allows parents (and admins via escalation).
func AuthorizeParent(sess *Session) Decision { return Authorize(sess, RoleParent) }
