package services

import (
	"net/mail"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/errs"
	"github.com/calebdws/inkwell/models"
)

// ModerationAction is what the admin can do to a submitted comment.
type ModerationAction string

const (
	ModerationApprove ModerationAction = "approve"
	ModerationDelete  ModerationAction = "delete"
)

// CommentService validates, moderates, and threads comments, and fires the
// notification side effects.
type CommentService struct {
	logger       zerolog.Logger
	posts        *database.PostRepo
	comments     *database.CommentRepo
	notifier     Notifier
	contactEmail string
}

func NewCommentService(posts *database.PostRepo, comments *database.CommentRepo, notifier Notifier, contactEmail string) *CommentService {
	return &CommentService{
		logger:       log.With().Str("serviceName", "commentService").Logger(),
		posts:        posts,
		comments:     comments,
		notifier:     notifier,
		contactEmail: contactEmail,
	}
}

// SubmitCommentInput carries a new comment submission. ReplyTo, when set,
// threads the comment under an existing one. AsAdmin marks submissions made
// through an authenticated admin session.
type SubmitCommentInput struct {
	PostID  uint
	Author  string
	Email   string
	Site    string
	Body    string
	ReplyTo *uint
	AsAdmin bool
}

// Submit creates a comment on a post. Visitor comments are held for
// moderation and trigger a new-comment notification to the blog's contact
// address; admin comments are published immediately and do not. A reply
// additionally notifies the reply target at its stored email. Notification
// delivery is fire-and-forget and never fails the submission.
func (s *CommentService) Submit(in SubmitCommentInput) (*models.Comment, error) {
	if in.Author == "" {
		return nil, errs.NewValidationError("author", "author is required")
	}
	if in.Body == "" {
		return nil, errs.NewValidationError("body", "body is required")
	}
	if in.Email == "" {
		return nil, errs.NewValidationError("email", "email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, errs.NewValidationError("email", "not a valid email address")
	}
	if in.Site != "" && !validURL(in.Site) {
		return nil, errs.NewValidationError("site", "not a valid URL")
	}

	post, err := s.posts.FindByID(in.PostID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	if !post.CanComment {
		return nil, errs.NewNotAllowedError("commenting is disabled on this post")
	}

	comment := &models.Comment{
		Author:    in.Author,
		Email:     in.Email,
		Site:      in.Site,
		Body:      in.Body,
		FromAdmin: in.AsAdmin,
		Reviewed:  in.AsAdmin,
		Timestamp: time.Now().UTC(),
		PostID:    post.ID,
	}

	var replyTarget *models.Comment
	if in.ReplyTo != nil {
		replyTarget, err = s.comments.FindByID(*in.ReplyTo)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "comment", err)
		}
		comment.RepliedID = &replyTarget.ID
	}

	if err := s.comments.Add(comment); err != nil {
		return nil, errs.NewDatabaseError("create", "comment", err)
	}

	if replyTarget != nil {
		s.notifier.Notify(NotifyNewReply, *post, replyTarget.Email)
	}
	if !in.AsAdmin {
		s.notifier.Notify(NotifyNewComment, *post, s.contactEmail)
	}

	return comment, nil
}

// Moderate approves or deletes a comment. Approval is idempotent. Deleting
// a comment does not touch replies that point at it.
func (s *CommentService) Moderate(commentID uint, action ModerationAction) error {
	if _, err := s.comments.FindByID(commentID); err != nil {
		return errs.NewDatabaseError("find", "comment", err)
	}

	switch action {
	case ModerationApprove:
		if err := s.comments.Approve(commentID); err != nil {
			return errs.NewDatabaseError("approve", "comment", err)
		}
	case ModerationDelete:
		if err := s.comments.Delete(commentID); err != nil {
			return errs.NewDatabaseError("delete", "comment", err)
		}
	default:
		return errs.NewValidationError("action", "unknown moderation action")
	}
	return nil
}

// List returns one page of comments for the admin management view, newest
// first. Unknown filters fall back to listing everything.
func (s *CommentService) List(filter database.CommentFilter, page, perPage int) ([]*models.Comment, int64, error) {
	switch filter {
	case database.FilterAll, database.FilterUnread, database.FilterAdmin:
	default:
		filter = database.FilterAll
	}
	comments, total, err := s.comments.FindPage(filter, page, perPage)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("list", "comments", err)
	}
	return comments, total, nil
}

// ListVisible returns one page of a post's reviewed comments in
// chronological order for public display.
func (s *CommentService) ListVisible(postID uint, page, perPage int) ([]*models.Comment, int64, error) {
	if _, err := s.posts.FindByID(postID); err != nil {
		return nil, 0, errs.NewDatabaseError("find", "post", err)
	}
	comments, total, err := s.comments.FindVisibleByPost(postID, page, perPage)
	if err != nil {
		return nil, 0, errs.NewDatabaseError("list", "comments", err)
	}
	return comments, total, nil
}

// CountUnread reports how many comments await moderation.
func (s *CommentService) CountUnread() (int64, error) {
	count, err := s.comments.CountUnread()
	if err != nil {
		return 0, errs.NewDatabaseError("count", "comments", err)
	}
	return count, nil
}
