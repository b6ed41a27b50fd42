package models

import "time"

// Comment belongs to exactly one post. RepliedID is a non-owning reply
// pointer to another comment, kept as a bare column and resolved by lookup
// at read time: deleting the target leaves the reference dangling.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Author    string    `json:"author" gorm:"size:30;not null"`
	Email     string    `json:"email" gorm:"size:254;not null"`
	Site      string    `json:"site,omitempty" gorm:"size:255"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	FromAdmin bool      `json:"fromAdmin" gorm:"not null;default:false"`
	Reviewed  bool      `json:"reviewed" gorm:"not null;default:false"`
	Timestamp time.Time `json:"timestamp" gorm:"index;not null"`
	PostID    uint      `json:"postId" gorm:"index;not null"`
	RepliedID *uint     `json:"repliedId,omitempty" gorm:"index"`
}

func (Comment) TableName() string { return "comment" }
