package api

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/calebdws/inkwell/config"
	"github.com/calebdws/inkwell/services"
)

// blogHandler serves the public read path: post listings, post detail,
// category filtering, navigation data, and the about page.
type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	cfg       *config.Config
	sessions  *scs.SessionManager
	content   *services.ContentService
	comments  *services.CommentService
}

func newBlogHandler(cfg *config.Config, sessions *scs.SessionManager, content *services.ContentService, comments *services.CommentService) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		cfg:       cfg,
		sessions:  sessions,
		content:   content,
		comments:  comments,
	}
}

// listPosts returns one page of all posts, newest first. Listings include
// private posts; the detail view enforces visibility.
func (h blogHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryPage(r)
		posts, total, err := h.content.ListPosts(page, h.cfg.PostsPerPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, PostPage{
			Posts:   posts,
			Total:   total,
			Page:    page,
			PerPage: h.cfg.PostsPerPage,
		})
	}
}

// getPost returns a single post. Private posts are only served to the
// authenticated admin.
func (h blogHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.content.GetPost(postID, isAdminSession(h.sessions, r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// listCategoryPosts returns one page of posts in a category.
func (h blogHandler) listCategoryPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uintParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page := queryPage(r)
		posts, total, err := h.content.ListCategoryPosts(categoryID, page, h.cfg.PostsPerPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, PostPage{
			Posts:   posts,
			Total:   total,
			Page:    page,
			PerPage: h.cfg.PostsPerPage,
		})
	}
}

// listPostComments returns one page of a post's reviewed comments, oldest
// first.
func (h blogHandler) listPostComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uintParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page := queryPage(r)
		comments, total, err := h.comments.ListVisible(postID, page, h.cfg.CommentsPerPage)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, CommentPage{
			Comments: comments,
			Total:    total,
			Page:     page,
			PerPage:  h.cfg.CommentsPerPage,
		})
	}
}

// listCategories returns every category for navigation.
func (h blogHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.content.ListCategories()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// listLinks returns every navigation link.
func (h blogHandler) listLinks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links, err := h.content.ListLinks()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, links)
	}
}

// about returns the admin profile with the category and link lists.
func (h blogHandler) about() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		about, err := h.content.GetAbout()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, about)
	}
}
