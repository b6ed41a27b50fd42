package models

// Link is a plain navigation entry shown in the blog sidebar.
type Link struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:30;not null"`
	URL  string `json:"url" gorm:"size:255;not null"`
}

func (Link) TableName() string { return "link" }
