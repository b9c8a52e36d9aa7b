package repository

import (
	"context"

	"github.com/yukikurage/blog-api/internal/database"
	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/utils"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uint64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update saves the author, text and article of a comment
func (r *GormCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).
		Model(comment).
		Select("Author", "Text", "ArticleID").
		Updates(comment).Error
}

// Delete deletes a comment
func (r *GormCommentRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByArticle returns one page of an article's comments
func (r *GormCommentRepository) ListByArticle(ctx context.Context, articleID uint64, req PageRequest) ([]models.Comment, utils.Page, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("comments.article_id = ?", articleID).
		Session(&gorm.Session{})
	return r.page(query, req)
}

// List returns one page of all comments
func (r *GormCommentRepository) List(ctx context.Context, req PageRequest) ([]models.Comment, utils.Page, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Session(&gorm.Session{})
	return r.page(query, req)
}

func (r *GormCommentRepository) page(query *gorm.DB, req PageRequest) ([]models.Comment, utils.Page, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.Page{}, err
	}

	page := utils.NewPaginator(total, req.PerPage, req.Orphans).GetPage(req.Page)
	if page.Limit == 0 {
		return []models.Comment{}, page, nil
	}

	var comments []models.Comment
	err := query.
		Scopes(database.NewestFirst("comments"), database.Paginate(page)).
		Find(&comments).Error
	if err != nil {
		return nil, utils.Page{}, err
	}
	return comments, page, nil
}
