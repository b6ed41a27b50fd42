package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/calebdws/inkwell/models"
)

type Database struct {
	adminRepo    *AdminRepo
	postRepo     *PostRepo
	categoryRepo *CategoryRepo
	commentRepo  *CommentRepo
	linkRepo     *LinkRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		adminRepo:    NewAdminRepo(db),
		postRepo:     NewPostRepo(db),
		categoryRepo: NewCategoryRepo(db),
		commentRepo:  NewCommentRepo(db),
		linkRepo:     NewLinkRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) LinkRepo() *LinkRepo {
	return d.linkRepo
}

// Migrate creates or updates the schema for all entities and guarantees the
// Default category row afterwards.
func (d Database) Migrate() error {
	db := d.postRepo.db
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Link{},
	); err != nil {
		return err
	}
	return d.EnsureDefaultCategory()
}

// EnsureDefaultCategory creates the protected fallback category if it is
// missing. Safe to call repeatedly.
func (d Database) EnsureDefaultCategory() error {
	db := d.categoryRepo.db
	var category models.Category
	err := db.First(&category, models.DefaultCategoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.Category{ID: models.DefaultCategoryID, Name: models.DefaultCategoryName}
		return db.Create(&category).Error
	}
	return err
}
