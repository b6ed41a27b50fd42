package database

import (
	"gorm.io/gorm"

	"github.com/calebdws/inkwell/models"
)

type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db}
}

// First returns the administrator account. There is one row by convention.
func (r *AdminRepo) First() (*models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Add inserts the administrator account.
func (r *AdminRepo) Add(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// Save persists changes to the administrator account.
func (r *AdminRepo) Save(admin *models.Admin) error {
	return r.db.Save(admin).Error
}
