// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/blog-api/internal/database"
	"github.com/yukikurage/blog-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that is closed when the
// test ends. The pool is limited to one connection because every connection
// to ":memory:" sees its own database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// CreateUser stores a user with a placeholder password hash.
func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hashedpassword"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateCategory stores a category.
func CreateCategory(t testing.TB, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

// CreateArticle stores an article without tags.
func CreateArticle(t testing.TB, db *gorm.DB, title, author string) *models.Article {
	t.Helper()
	article := &models.Article{Title: title, Text: "Body of " + title, Author: author}
	require.NoError(t, db.Omit("Tags", "Category", "Comments").Create(article).Error)
	return article
}

// CreateComment stores a comment on an article.
func CreateComment(t testing.TB, db *gorm.DB, articleID uint64, author, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{ArticleID: articleID, Author: author, Text: text}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
