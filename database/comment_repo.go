package database

import (
	"gorm.io/gorm"

	"github.com/calebdws/inkwell/models"
)

// CommentFilter selects which comments the admin management view lists.
type CommentFilter string

const (
	FilterAll    CommentFilter = "all"
	FilterUnread CommentFilter = "unread"
	FilterAdmin  CommentFilter = "admin"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByID returns a comment by its ID.
func (r *CommentRepo) FindByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Add inserts a new comment.
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Approve marks a comment as reviewed. Approving an already reviewed
// comment is a no-op, not an error.
func (r *CommentRepo) Approve(id uint) error {
	return r.db.Model(&models.Comment{ID: id}).Update("reviewed", true).Error
}

// Delete removes a comment. Replies pointing at it keep their now-dangling
// replied_id; they are not deleted alongside their parent.
func (r *CommentRepo) Delete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// FindPage returns one page of comments for the admin management view,
// newest first, narrowed by filter.
func (r *CommentRepo) FindPage(filter CommentFilter, page, perPage int) ([]*models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{})
	switch filter {
	case FilterUnread:
		query = query.Where("reviewed = ?", false)
	case FilterAdmin:
		query = query.Where("from_admin = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	err := query.
		Order("timestamp DESC").
		Offset(pageOffset(page, perPage)).
		Limit(perPage).
		Find(&comments).Error
	return comments, total, err
}

// FindVisibleByPost returns one page of a post's reviewed comments in
// chronological order, for public display.
func (r *CommentRepo) FindVisibleByPost(postID uint, page, perPage int) ([]*models.Comment, int64, error) {
	var total int64
	err := r.db.Model(&models.Comment{}).
		Where("post_id = ? AND reviewed = ?", postID, true).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	err = r.db.
		Where("post_id = ? AND reviewed = ?", postID, true).
		Order("timestamp ASC").
		Offset(pageOffset(page, perPage)).
		Limit(perPage).
		Find(&comments).Error
	return comments, total, err
}

// CountByPost returns the number of comments on a post.
func (r *CommentRepo) CountByPost(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CountUnread returns the number of comments awaiting moderation.
func (r *CommentRepo) CountUnread() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("reviewed = ?", false).Count(&count).Error
	return count, err
}
