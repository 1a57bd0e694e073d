package auth

import (
	"net/http"
	"strings"
)

// TokenFromRequest looks for a bearer token in the Authorization header, the
// access_token cookie and, for WebSocket upgrades, the token query parameter.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if c, err := r.Cookie("access_token"); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}

// IdentityKey is the gin context key holding the caller's domain.Identity.
const IdentityKey = "identity"
