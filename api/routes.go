package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the public read path, the auth pair, and the
// session-gated admin surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/posts", handlers.blogHandler.listPosts())
		r.Get("/posts/{postID}", handlers.blogHandler.getPost())
		r.Get("/posts/{postID}/comments", handlers.blogHandler.listPostComments())
		r.Post("/posts/{postID}/comments", handlers.commentHandler.submitComment())
		r.Get("/categories", handlers.blogHandler.listCategories())
		r.Get("/categories/{categoryID}/posts", handlers.blogHandler.listCategoryPosts())
		r.Get("/links", handlers.blogHandler.listLinks())
		r.Get("/about", handlers.blogHandler.about())

		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/logout", handlers.authHandler.logout())
	})

	// Admin routes, session-gated
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.requireAdmin)

		r.Get("/posts", handlers.adminHandler.managePosts())
		r.Post("/posts", handlers.adminHandler.createPost())
		r.Put("/posts/{postID}", handlers.adminHandler.updatePost())
		r.Delete("/posts/{postID}", handlers.adminHandler.deletePost())
		r.Post("/posts/{postID}/toggle-comments", handlers.adminHandler.toggleComments())
		r.Post("/posts/{postID}/timestamp", handlers.adminHandler.rewriteTimestamp())

		r.Post("/categories", handlers.adminHandler.createCategory())
		r.Put("/categories/{categoryID}", handlers.adminHandler.renameCategory())
		r.Delete("/categories/{categoryID}", handlers.adminHandler.deleteCategory())

		r.Post("/links", handlers.adminHandler.createLink())
		r.Put("/links/{linkID}", handlers.adminHandler.updateLink())
		r.Delete("/links/{linkID}", handlers.adminHandler.deleteLink())

		r.Get("/comments", handlers.commentHandler.manageComments())
		r.Post("/comments/{commentID}/approve", handlers.commentHandler.approveComment())
		r.Delete("/comments/{commentID}", handlers.commentHandler.deleteComment())

		r.Get("/settings", handlers.adminHandler.getSettings())
		r.Put("/settings", handlers.adminHandler.updateSettings())
	})
}
