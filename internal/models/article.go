package models

import "time"

type Article struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	Title      string    `gorm:"type:varchar(200);not null" json:"title"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Author     string    `gorm:"type:varchar(40);not null;default:'Unknown'" json:"author"`
	CategoryID *uint64   `gorm:"index" json:"category_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Tags     []Tag     `gorm:"many2many:article_tags" json:"tags"`
	Comments []Comment `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
}
