package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/blog-api/internal/constants"
	"github.com/yukikurage/blog-api/internal/logger"
	"github.com/yukikurage/blog-api/internal/metrics"
	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/repository"
	"github.com/yukikurage/blog-api/internal/search"
	"github.com/yukikurage/blog-api/internal/utils"
	"github.com/yukikurage/blog-api/internal/validator"
	"gorm.io/gorm"
)

var (
	ErrArticleNotFound = errors.New("article not found")
)

// ArticleService handles article related business logic.
type ArticleService struct {
	articleRepo  repository.ArticleRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
}

// NewArticleService creates a new ArticleService.
func NewArticleService(
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
	}
}

// ArticlePage is one page of the article index.
type ArticlePage struct {
	Articles []models.Article
	Page     utils.Page
	Filter   validator.SimpleSearchInput
}

// List returns one page of articles, optionally narrowed by the simple search
// string and a tag name.
func (s *ArticleService) List(ctx context.Context, input validator.SimpleSearchInput) (*ArticlePage, error) {
	input, err := validator.ValidateSimpleSearch(input)
	if err != nil {
		return nil, err
	}

	q := search.FromSimple(input.Search).And(search.ForTag(input.Tag))
	if input.Search != "" {
		metrics.ObserveSearch(metrics.SearchModeSimple)
	}
	if input.Tag != "" {
		metrics.ObserveSearch(metrics.SearchModeTag)
	}

	articles, page, err := s.articleRepo.List(ctx, q, repository.PageRequest{
		Page:    input.Page,
		PerPage: constants.ArticlesPerPage,
		Orphans: constants.ArticlesOrphans,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return &ArticlePage{Articles: articles, Page: page, Filter: input}, nil
}

// Search runs the advanced search form. A form with neither text nor author
// matches every article.
func (s *ArticleService) Search(ctx context.Context, input validator.FullSearchInput) ([]models.Article, validator.FullSearchInput, error) {
	input, err := validator.ValidateFullSearch(input)
	if err != nil {
		return nil, input, err
	}

	metrics.ObserveSearch(metrics.SearchModeFull)

	articles, err := s.articleRepo.Search(ctx, search.FromFull(input))
	if err != nil {
		return nil, input, fmt.Errorf("failed to search articles: %w", err)
	}

	return articles, input, nil
}

// ArticleDetail is an article with one page of its comments.
type ArticleDetail struct {
	Article  *models.Article
	Comments []models.Comment
	Page     utils.Page
}

// Get returns an article with the requested page of its comments.
func (s *ArticleService) Get(ctx context.Context, id uint64, commentPage string) (*ArticleDetail, error) {
	article, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, page, err := s.commentRepo.ListByArticle(ctx, id, repository.PageRequest{
		Page:    commentPage,
		PerPage: constants.ArticleCommentsPerPage,
		Orphans: constants.ArticleCommentsOrphans,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return &ArticleDetail{Article: article, Comments: comments, Page: page}, nil
}

// Find returns an article with its category and tags.
func (s *ArticleService) Find(ctx context.Context, id uint64) (*models.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	return article, nil
}

// Create validates the form and stores a new article with its tags.
func (s *ArticleService) Create(ctx context.Context, input validator.ArticleInput) (*models.Article, error) {
	fields, err := validator.ValidateArticle(ctx, input, s.categoryRepo)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:      fields.Title,
		Text:       fields.Text,
		Author:     fields.Author,
		CategoryID: fields.CategoryID,
	}

	if err := s.articleRepo.Create(ctx, article, fields.Tags); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	metrics.ArticlesCreated.Inc()
	logger.Info("article created", "article_id", article.ID, "tags", len(article.Tags))
	return article, nil
}

// Update validates the form and replaces the article's fields and tag set.
func (s *ArticleService) Update(ctx context.Context, id uint64, input validator.ArticleInput) (*models.Article, error) {
	article, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := validator.ValidateArticle(ctx, input, s.categoryRepo)
	if err != nil {
		return nil, err
	}

	article.Title = fields.Title
	article.Text = fields.Text
	article.Author = fields.Author
	article.CategoryID = fields.CategoryID
	article.Category = nil

	if err := s.articleRepo.Update(ctx, article, fields.Tags); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	return article, nil
}

// Delete removes an article together with its comments.
func (s *ArticleService) Delete(ctx context.Context, id uint64) error {
	if err := s.articleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("failed to delete article: %w", err)
	}

	logger.Info("article deleted", "article_id", id)
	return nil
}
