package repository

import (
	"context"

	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/search"
	"github.com/yukikurage/blog-api/internal/utils"
)

// PageRequest selects one page of a listing.
type PageRequest struct {
	// Page is the raw page parameter; invalid or out-of-range values are clamped.
	Page    string
	PerPage int
	Orphans int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user. A unique index violation is returned as
	// gorm.ErrDuplicatedKey.
	Create(ctx context.Context, user *models.User) error

	// Update saves profile fields and the password hash
	Update(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// UsernameExists reports whether the username is taken
	UsernameExists(ctx context.Context, username string) (bool, error)

	// EmailExists reports whether a user other than excludeID has the email
	EmailExists(ctx context.Context, email string, excludeID uint64) (bool, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context) ([]models.Category, error)
	CategoryExists(ctx context.Context, id uint64) (bool, error)
	CategoryNameExists(ctx context.Context, name string) (bool, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	// GetOrCreate returns the tags with the given names, creating missing ones.
	// Concurrent callers never create two tags with the same name.
	GetOrCreate(ctx context.Context, names []string) ([]models.Tag, error)

	// List returns all tags ordered by name
	List(ctx context.Context) ([]models.Tag, error)
}

// ArticleRepository defines the interface for article data access
type ArticleRepository interface {
	// Create inserts the article and attaches the named tags in one transaction
	Create(ctx context.Context, article *models.Article, tagNames []string) error

	// Update saves the article fields and replaces its tag set with the named
	// tags in one transaction
	Update(ctx context.Context, article *models.Article, tagNames []string) error

	// FindByID finds an article with its category and tags
	FindByID(ctx context.Context, id uint64) (*models.Article, error)

	// ArticleExists reports whether an article exists
	ArticleExists(ctx context.Context, id uint64) (bool, error)

	// List returns one page of the articles matching q, newest first
	List(ctx context.Context, q search.Query, req PageRequest) ([]models.Article, utils.Page, error)

	// Search returns every article matching q, newest first
	Search(ctx context.Context, q search.Query) ([]models.Article, error)

	// Delete removes an article and its comments. Tags stay.
	Delete(ctx context.Context, id uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByID(ctx context.Context, id uint64) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint64) error

	// ListByArticle returns one page of an article's comments, newest first
	ListByArticle(ctx context.Context, articleID uint64, req PageRequest) ([]models.Comment, utils.Page, error)

	// List returns one page of all comments, newest first
	List(ctx context.Context, req PageRequest) ([]models.Comment, utils.Page, error)
}
