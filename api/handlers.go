package api

import (
	"github.com/alexedwards/scs/v2"

	"github.com/calebdws/inkwell/config"
	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/services"
)

// initializeHandlers wires the workflow services and returns all handlers
// organized in a routeHandlers struct
func initializeHandlers(cfg *config.Config, db database.Database, sessions *scs.SessionManager, notifier services.Notifier) *routeHandlers {
	content := services.NewContentService(db.PostRepo(), db.CategoryRepo(), db.LinkRepo(), db.AdminRepo())
	comments := services.NewCommentService(db.PostRepo(), db.CommentRepo(), notifier, cfg.ContactEmail)

	return &routeHandlers{
		blogHandler:    newBlogHandler(cfg, sessions, content, comments),
		commentHandler: newCommentHandler(cfg, sessions, comments, db.AdminRepo()),
		adminHandler:   newAdminHandler(cfg, content),
		authHandler:    newAuthHandler(sessions, db.AdminRepo()),
	}
}
