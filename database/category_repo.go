package database

import (
	"gorm.io/gorm"

	"github.com/calebdws/inkwell/errs"
	"github.com/calebdws/inkwell/models"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns every category ordered by name.
func (r *CategoryRepo) FindAll() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by its ID.
func (r *CategoryRepo) FindByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByIDs returns the categories matching the given ids. Callers compare
// lengths to detect ids that did not resolve.
func (r *CategoryRepo) FindByIDs(ids []uint) ([]*models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []*models.Category
	err := r.db.Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

// FindByName returns a category by its unique name.
func (r *CategoryRepo) FindByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Add inserts a new category. The unique index on name surfaces duplicates
// as a driver error the caller translates.
func (r *CategoryRepo) Add(category *models.Category) error {
	return r.db.Create(category).Error
}

// Rename changes a category's name. The Default category is immutable.
func (r *CategoryRepo) Rename(id uint, name string) error {
	if id == models.DefaultCategoryID {
		return errs.NewProtectedEntityError("the default category cannot be renamed")
	}
	result := r.db.Model(&models.Category{ID: id}).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a category. Posts that would be left without any category
// are linked to the Default category inside the same transaction, so a
// deletion never strands a post. Deleting the Default category is rejected.
func (r *CategoryRepo) Delete(id uint) error {
	if id == models.DefaultCategoryID {
		return errs.NewProtectedEntityError("the default category cannot be deleted")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}

		var postIDs []uint
		if err := tx.Table("category_post").Where("category_id = ?", id).Pluck("post_id", &postIDs).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM category_post WHERE category_id = ?", id).Error; err != nil {
			return err
		}

		for _, postID := range postIDs {
			var remaining int64
			if err := tx.Table("category_post").Where("post_id = ?", postID).Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				err := tx.Exec("INSERT INTO category_post (category_id, post_id) VALUES (?, ?)",
					models.DefaultCategoryID, postID).Error
				if err != nil {
					return err
				}
			}
		}

		return tx.Delete(&models.Category{}, id).Error
	})
}
