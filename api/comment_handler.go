package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/calebdws/inkwell/config"
	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/errs"
	"github.com/calebdws/inkwell/services"
)

// commentHandler serves public comment submission and the admin moderation
// surface.
type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	cfg       *config.Config
	sessions  *scs.SessionManager
	comments  *services.CommentService
	adminRepo *database.AdminRepo
}

func newCommentHandler(cfg *config.Config, sessions *scs.SessionManager, comments *services.CommentService, adminRepo *database.AdminRepo) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		cfg:       cfg,
		sessions:  sessions,
		comments:  comments,
		adminRepo: adminRepo,
	}
}

type submitCommentRequest struct {
	Author string `json:"author"`
	Email  string `json:"email"`
	Site   string `json:"site"`
	Body   string `json:"body"`
}

// submitComment creates a comment on a post. An optional ?reply= query
// parameter threads it under an existing comment. When the caller is the
// authenticated admin, the identity fields come from the admin profile and
// the comment publishes immediately.
func (h commentHandler) submitComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req submitCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode comment request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		in := services.SubmitCommentInput{
			PostID:  postID,
			Author:  req.Author,
			Email:   req.Email,
			Site:    req.Site,
			Body:    req.Body,
			AsAdmin: isAdminSession(h.sessions, r),
		}

		if in.AsAdmin {
			admin, err := h.adminRepo.First()
			if err != nil {
				h.responder.WriteError(w, errs.NewDatabaseError("find", "admin", err))
				return
			}
			in.Author = admin.Name
			in.Email = h.cfg.ContactEmail
			in.Site = h.cfg.BaseURL
		}

		if raw := r.URL.Query().Get("reply"); raw != "" {
			replyTo, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid reply comment id"))
				return
			}
			id := uint(replyTo)
			in.ReplyTo = &id
		}

		comment, err := h.comments.Submit(in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, comment)
	}
}

// manageComments returns one page of comments for the admin view, filtered
// by ?filter=all|unread|admin, newest first, plus the unread badge count.
func (h commentHandler) manageComments() http.HandlerFunc {
	type response struct {
		CommentPage
		Unread int64 `json:"unread"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.CommentFilter(r.URL.Query().Get("filter"))
		page := queryPage(r)

		comments, total, err := h.comments.List(filter, page, h.cfg.CommentsPerPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		unread, err := h.comments.CountUnread()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, response{
			CommentPage: CommentPage{
				Comments: comments,
				Total:    total,
				Page:     page,
				PerPage:  h.cfg.CommentsPerPage,
			},
			Unread: unread,
		})
	}
}

// approveComment marks a comment as reviewed.
func (h commentHandler) approveComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := uintParam(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.comments.Moderate(commentID, services.ModerationApprove); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment approved",
		})
	}
}

// deleteComment removes a comment. Replies pointing at it are kept.
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := uintParam(r, "commentID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.comments.Moderate(commentID, services.ModerationDelete); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment deleted",
		})
	}
}
