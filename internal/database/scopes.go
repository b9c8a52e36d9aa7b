package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/blog-api/internal/utils"
)

// Paginate applies the bounds of a page to a GORM query
func Paginate(page utils.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset).Limit(page.Limit)
	}
}

// NewestFirst orders rows by creation time, newest first, with the primary key
// as a tie breaker so that pages are stable.
func NewestFirst(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".created_at DESC").Order(table + ".id DESC")
	}
}
