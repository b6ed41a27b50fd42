package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/calebdws/inkwell/models"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// FindPage returns one page of posts ordered by timestamp descending,
// together with the total post count. Private posts are included; the
// detail view is where visibility is enforced.
func (r *PostRepo) FindPage(page, perPage int) ([]*models.Post, int64, error) {
	var total int64
	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.db.Preload("Categories").
		Order("timestamp DESC").
		Offset(pageOffset(page, perPage)).
		Limit(perPage).
		Find(&posts).Error
	return posts, total, err
}

// FindPageByCategory returns one page of the posts linked to a category,
// ordered by timestamp descending, with the total count for that category.
func (r *PostRepo) FindPageByCategory(categoryID uint, page, perPage int) ([]*models.Post, int64, error) {
	var total int64
	err := r.db.Model(&models.Post{}).
		Joins("JOIN category_post ON category_post.post_id = post.id").
		Where("category_post.category_id = ?", categoryID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err = r.db.Preload("Categories").
		Joins("JOIN category_post ON category_post.post_id = post.id").
		Where("category_post.category_id = ?", categoryID).
		Order("timestamp DESC").
		Offset(pageOffset(page, perPage)).
		Limit(perPage).
		Find(&posts).Error
	return posts, total, err
}

// FindAll returns every post ordered by timestamp descending, without
// pagination. Used by the timestamp-rewriting admin view.
func (r *PostRepo) FindAll() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Preload("Categories").Order("timestamp DESC").Find(&posts).Error
	return posts, err
}

// FindByID returns a post with its categories loaded.
func (r *PostRepo) FindByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Categories").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new post and its category associations.
func (r *PostRepo) Add(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update fully replaces a post's scalar fields and category set in one
// transaction.
func (r *PostRepo) Update(post *models.Post) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{ID: post.ID}).Updates(map[string]any{
			"title":   post.Title,
			"body":    post.Body,
			"private": post.Private,
		}).Error
		if err != nil {
			return err
		}
		return tx.Model(post).Association("Categories").Replace(post.Categories)
	})
}

// Delete removes a post, its comments, and its category associations
// atomically.
func (r *PostRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM category_post WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// SetCanComment sets the commenting flag on a post.
func (r *PostRepo) SetCanComment(id uint, canComment bool) error {
	return r.db.Model(&models.Post{ID: id}).Update("can_comment", canComment).Error
}

// SetTimestamp rewrites a post's publication time. No bounds are imposed:
// arbitrary past and future timestamps are a supported admin tool.
func (r *PostRepo) SetTimestamp(id uint, ts time.Time) error {
	return r.db.Model(&models.Post{ID: id}).Update("timestamp", ts).Error
}

func pageOffset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
