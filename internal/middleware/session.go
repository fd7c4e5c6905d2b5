package middleware

import (
	"context"
	"net/http"
	"time"

	"atelier/internal/store"
)

const (
	SessionCookieName = "atelier_session"
	SessionTTL        = 30 * 24 * time.Hour

	SessionKey contextKey = "session"
)

// SessionStore hands out shopper sessions by id
type SessionStore interface {
	Session(id string) (string, *store.Session)
	LookupSession(id string) (*store.Session, bool)
}

// SessionMiddleware attaches the shopper session named by the atelier_session cookie.
// Reads without a known session get an untracked guest session and no cookie; the first write
// registers a session under a server-issued id and sets the cookie.
func SessionMiddleware(sessions SessionStore, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var requested string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				requested = cookie.Value
			}

			sess, known := sessions.LookupSession(requested)
			switch {
			case known:
			case r.Method == http.MethodGet || r.Method == http.MethodHead:
				sess = store.GuestSession()
			default:
				var id string
				id, sess = sessions.Session(requested)
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(SessionTTL.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession extracts the shopper session from request context
func GetSession(ctx context.Context) (*store.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*store.Session)
	return sess, ok && sess != nil
}
