package models

// Admin is the single administrator account. One row exists by convention;
// it also carries the blog-wide presentation settings.
type Admin struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"size:20;not null"`
	PasswordHash string `json:"-" gorm:"size:128;not null"`
	Name         string `json:"name" gorm:"size:30"`
	BlogTitle    string `json:"blogTitle" gorm:"size:60"`
	BlogSubTitle string `json:"blogSubTitle" gorm:"size:100"`
	About        string `json:"about" gorm:"type:text"`
}

func (Admin) TableName() string { return "admin" }
