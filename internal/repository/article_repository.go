package repository

import (
	"context"

	"github.com/yukikurage/blog-api/internal/database"
	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/search"
	"github.com/yukikurage/blog-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormArticleRepository is a GORM implementation of ArticleRepository
type GormArticleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &GormArticleRepository{db: db}
}

// Create inserts the article and attaches the named tags
func (r *GormArticleRepository) Create(ctx context.Context, article *models.Article, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(article).Error; err != nil {
			return err
		}
		return replaceTags(ctx, tx, article, tagNames)
	})
}

// Update saves the editable fields and replaces the tag set
func (r *GormArticleRepository) Update(ctx context.Context, article *models.Article, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(article).
			Omit(clause.Associations).
			Select("Title", "Text", "Author", "CategoryID").
			Updates(article)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Article{}).Where("id = ?", article.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return replaceTags(ctx, tx, article, tagNames)
	})
}

// replaceTags makes the article's tag set exactly the named tags. Tags that
// drop out of the set are left in place.
func replaceTags(ctx context.Context, tx *gorm.DB, article *models.Article, tagNames []string) error {
	tags, err := NewTagRepository(tx).GetOrCreate(ctx, tagNames)
	if err != nil {
		return err
	}

	assoc := tx.Model(article).Omit("Tags.*").Association("Tags")
	if err := assoc.Clear(); err != nil {
		return err
	}
	if len(tags) > 0 {
		if err := assoc.Append(&tags); err != nil {
			return err
		}
	}
	article.Tags = tags
	return nil
}

// FindByID finds an article with its category and tags
func (r *GormArticleRepository) FindByID(ctx context.Context, id uint64) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// ArticleExists reports whether an article exists
func (r *GormArticleRepository) ArticleExists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List returns one page of the articles matching q
func (r *GormArticleRepository) List(ctx context.Context, q search.Query, req PageRequest) ([]models.Article, utils.Page, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Scopes(q.Scope()).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, utils.Page{}, err
	}

	page := utils.NewPaginator(total, req.PerPage, req.Orphans).GetPage(req.Page)
	if page.Limit == 0 {
		return []models.Article{}, page, nil
	}

	var articles []models.Article
	err := query.
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Scopes(database.NewestFirst("articles"), database.Paginate(page)).
		Find(&articles).Error
	if err != nil {
		return nil, utils.Page{}, err
	}

	return articles, page, nil
}

// Search returns every article matching q
func (r *GormArticleRepository) Search(ctx context.Context, q search.Query) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Scopes(q.Scope(), database.NewestFirst("articles")).
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") }).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// Delete removes an article, its comments and its tag links
func (r *GormArticleRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM article_tags WHERE article_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Article{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
