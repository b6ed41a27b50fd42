package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/errs"
)

// authHandler is the admin session gate: login verifies credentials against
// the singleton admin row, logout destroys the session.
type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	sessions  *scs.SessionManager
	adminRepo *database.AdminRepo
}

func newAuthHandler(sessions *scs.SessionManager, adminRepo *database.AdminRepo) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		sessions:  sessions,
		adminRepo: adminRepo,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Username == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewValidationError("username", "username and password are required"))
			return
		}

		admin, err := h.adminRepo.First()
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No account has been initialized yet
				h.responder.WriteError(w, errs.Unauthorized)
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "admin", err))
			return
		}

		if req.Username != admin.Username ||
			bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
			h.logger.Warn().Str("username", req.Username).Msg("failed login attempt")
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		ctx := r.Context()
		// Renew the token on privilege change to prevent session fixation
		if err := h.sessions.RenewToken(ctx); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not establish session"))
			return
		}
		h.sessions.Put(ctx, sessionAdminKey, int(admin.ID))
		h.sessions.RememberMe(ctx, req.Remember)

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "welcome back",
		})
	}
}

func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.sessions.Destroy(r.Context()); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not destroy session"))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "logged out",
		})
	}
}
