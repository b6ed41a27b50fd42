package database

import (
	"gorm.io/gorm"

	"github.com/calebdws/inkwell/models"
)

type LinkRepo struct {
	db *gorm.DB
}

func NewLinkRepo(db *gorm.DB) *LinkRepo {
	return &LinkRepo{db}
}

// FindAll returns every navigation link ordered by name.
func (r *LinkRepo) FindAll() ([]*models.Link, error) {
	var links []*models.Link
	err := r.db.Order("name ASC").Find(&links).Error
	return links, err
}

// FindByID returns a link by its ID.
func (r *LinkRepo) FindByID(id uint) (*models.Link, error) {
	var link models.Link
	err := r.db.First(&link, id).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Add inserts a new link.
func (r *LinkRepo) Add(link *models.Link) error {
	return r.db.Create(link).Error
}

// Update persists changes to a link.
func (r *LinkRepo) Update(link *models.Link) error {
	return r.db.Save(link).Error
}

// Delete removes a link.
func (r *LinkRepo) Delete(id uint) error {
	return r.db.Delete(&models.Link{}, id).Error
}
