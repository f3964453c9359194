package web

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const adminCookie = "badminqueue_admin_token"

// requireAdmin accepts the token as a bearer header, a ?token= query
// parameter (which also sets the cookie) or the cookie itself.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.adminToken == "" {
			writeError(w, http.StatusForbidden, "admin disabled (no admin token)", "forbidden")
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if ok && tokensEqual(strings.TrimSpace(token), h.adminToken) {
				next(w, r)
				return
			}
			writeError(w, http.StatusUnauthorized, "invalid admin token", "unauthorized")
			return
		}
		if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
			if tokensEqual(token, h.adminToken) {
				h.setAdminCookie(w)
				next(w, r)
				return
			}
			writeError(w, http.StatusUnauthorized, "invalid admin token", "unauthorized")
			return
		}
		cookie, err := r.Cookie(adminCookie)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "missing admin token", "unauthorized")
			return
		}
		if !tokensEqual(cookie.Value, h.adminToken) {
			writeError(w, http.StatusUnauthorized, "invalid admin token", "unauthorized")
			return
		}
		next(w, r)
	}
}

func (h *Handler) setAdminCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookie,
		Value:    h.adminToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func tokensEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
