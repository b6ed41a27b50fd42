package models

// DefaultCategoryID is the permanent fallback category. It always exists,
// absorbs posts from deleted categories, and can itself be neither renamed
// nor deleted.
const DefaultCategoryID uint = 1

// DefaultCategoryName is the display name of the fallback category.
const DefaultCategoryName = "Default"

type Category struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Name  string  `json:"name" gorm:"size:30;uniqueIndex;not null"`
	Posts []*Post `json:"-" gorm:"many2many:category_post"`
}

func (Category) TableName() string { return "category" }
