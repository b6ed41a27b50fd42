package api

import (
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/calebdws/inkwell/errs"
)

// sessionAdminKey holds the authenticated admin's id in the session.
const sessionAdminKey = "adminID"

// isAdminSession reports whether the request carries an authenticated admin
// session. Public handlers use it to decide viewer identity.
func isAdminSession(sessions *scs.SessionManager, r *http.Request) bool {
	return sessions.GetInt(r.Context(), sessionAdminKey) != 0
}

// uintParam parses a numeric chi URL parameter.
func uintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errs.NewBadRequestError("missing " + name)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid " + name)
	}
	return uint(id), nil
}

// queryPage reads ?page=, defaulting to the first page.
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
