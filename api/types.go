package api

import "github.com/calebdws/inkwell/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogHandler    blogHandler
	commentHandler commentHandler
	adminHandler   adminHandler
	authHandler    authHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// PostPage is one page of posts with the total count for pagination.
type PostPage struct {
	Posts   []*models.Post `json:"posts"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
}

// CommentPage is one page of comments with the total count for pagination.
type CommentPage struct {
	Comments []*models.Comment `json:"comments"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"perPage"`
}
