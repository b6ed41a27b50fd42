package api

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

// newSessionManager configures the admin session store. Cookies are
// session-scoped by default; login with "remember me" flips them to
// persistent via scs.RememberMe.
func newSessionManager(isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = 30 * 24 * time.Hour
	sm.IdleTimeout = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	sm.Cookie.Persist = false
	return sm
}
