package models

import "time"

// Post is a blog entry. Timestamp is the publication time and may be
// rewritten by the admin to backdate or future-date a post. A post can
// belong to any number of categories, including zero.
type Post struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Title      string      `json:"title" gorm:"size:60;not null"`
	Body       string      `json:"body" gorm:"type:text;not null"`
	Private    bool        `json:"private" gorm:"not null;default:false"`
	CanComment bool        `json:"canComment" gorm:"not null;default:true"`
	Timestamp  time.Time   `json:"timestamp" gorm:"index;not null"`
	Categories []*Category `json:"categories,omitempty" gorm:"many2many:category_post"`
	Comments   []Comment   `json:"-" gorm:"foreignKey:PostID"`
}

func (Post) TableName() string { return "post" }
