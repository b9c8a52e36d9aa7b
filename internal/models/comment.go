package models

import "time"

type Comment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Author    string    `gorm:"type:varchar(40);not null;default:'Anonymous'" json:"author"`
	Text      string    `gorm:"type:varchar(400);not null" json:"text"`
	ArticleID uint64    `gorm:"not null;index" json:"article_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
