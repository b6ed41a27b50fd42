package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/calebdws/inkwell/config"
	"github.com/calebdws/inkwell/errs"
	"github.com/calebdws/inkwell/services"
)

// adminHandler serves the session-gated management surface for posts,
// categories, links, settings, and the timestamp-rewriting tool.
type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	cfg       *config.Config
	content   *services.ContentService
}

func newAdminHandler(cfg *config.Config, content *services.ContentService) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		cfg:       cfg,
		content:   content,
	}
}

type postRequest struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	Private     bool   `json:"private"`
	CategoryIDs []uint `json:"categoryIds"`
}

// managePosts returns one page of all posts for the management view.
func (h adminHandler) managePosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryPage(r)
		posts, total, err := h.content.ListPosts(page, h.cfg.ManagePostsPerPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, PostPage{
			Posts:   posts,
			Total:   total,
			Page:    page,
			PerPage: h.cfg.ManagePostsPerPage,
		})
	}
}

func (h adminHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		post, err := h.content.CreatePost(services.PostInput{
			Title:       req.Title,
			Body:        req.Body,
			Private:     req.Private,
			CategoryIDs: req.CategoryIDs,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, post)
	}
}

func (h adminHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		post, err := h.content.UpdatePost(postID, services.PostInput{
			Title:       req.Title,
			Body:        req.Body,
			Private:     req.Private,
			CategoryIDs: req.CategoryIDs,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

func (h adminHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.content.DeletePost(postID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "post deleted successfully",
		})
	}
}

// toggleComments flips whether a post accepts new comments.
func (h adminHandler) toggleComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		canComment, err := h.content.ToggleComments(postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"status":     "success",
			"canComment": canComment,
		})
	}
}

type timestampRequest struct {
	// Wall-clock time in 2006-01-02T15:04 format
	Timestamp string `json:"timestamp"`
	// Hours east of UTC the wall-clock time is expressed in
	OffsetHours int `json:"offsetHours"`
}

// rewriteTimestamp re-dates a post; backdating and future-dating are both
// supported.
func (h adminHandler) rewriteTimestamp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req timestampRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		stored, err := h.content.RewriteTimestamp(postID, req.Timestamp, req.OffsetHours)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"status":    "success",
			"timestamp": stored,
		})
	}
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h adminHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		category, err := h.content.CreateCategory(req.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, category)
	}
}

func (h adminHandler) renameCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uintParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.content.RenameCategory(categoryID, req.Name); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "category renamed",
		})
	}
}

func (h adminHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uintParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.content.DeleteCategory(categoryID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "category deleted, posts reassigned to Default",
		})
	}
}

type linkRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (h adminHandler) createLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req linkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		link, err := h.content.CreateLink(services.LinkInput{Name: req.Name, URL: req.URL})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, link)
	}
}

func (h adminHandler) updateLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		linkID, err := uintParam(r, "linkID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req linkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		link, err := h.content.UpdateLink(linkID, services.LinkInput{Name: req.Name, URL: req.URL})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, link)
	}
}

func (h adminHandler) deleteLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		linkID, err := uintParam(r, "linkID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.content.DeleteLink(linkID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "link deleted",
		})
	}
}

type settingsRequest struct {
	Name         string `json:"name"`
	BlogTitle    string `json:"blogTitle"`
	BlogSubTitle string `json:"blogSubTitle"`
	About        string `json:"about"`
}

func (h adminHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := h.content.GetSettings()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, admin)
	}
}

func (h adminHandler) updateSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req settingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		admin, err := h.content.UpdateSettings(services.SettingsInput{
			Name:         req.Name,
			BlogTitle:    req.BlogTitle,
			BlogSubTitle: req.BlogSubTitle,
			About:        req.About,
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, admin)
	}
}
