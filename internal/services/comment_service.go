package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yukikurage/blog-api/internal/constants"
	"github.com/yukikurage/blog-api/internal/metrics"
	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/repository"
	"github.com/yukikurage/blog-api/internal/utils"
	"github.com/yukikurage/blog-api/internal/validator"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
)

// CommentService handles comment related business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
	}
}

// CreateForArticle adds a comment to an existing article.
func (s *CommentService) CreateForArticle(ctx context.Context, articleID uint64, input validator.CommentInput) (*models.Comment, error) {
	exists, err := s.articleRepo.ArticleExists(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check article: %w", err)
	}
	if !exists {
		return nil, ErrArticleNotFound
	}

	fields, err := validator.ValidateComment(input)
	if err != nil {
		return nil, err
	}
	fields.ArticleID = articleID

	return s.create(ctx, fields)
}

// Create adds a comment to the article named in the form.
func (s *CommentService) Create(ctx context.Context, input validator.CommentInput) (*models.Comment, error) {
	fields, err := validator.ValidateStandaloneComment(ctx, input, s.articleRepo)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, fields)
}

func (s *CommentService) create(ctx context.Context, fields validator.CommentFields) (*models.Comment, error) {
	comment := &models.Comment{
		ArticleID: fields.ArticleID,
		Author:    fields.Author,
		Text:      fields.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	metrics.CommentsCreated.Inc()
	return comment, nil
}

// Get retrieves a comment by ID.
func (s *CommentService) Get(ctx context.Context, id uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}

// Update replaces a comment's author and text, and its article when the form
// names one.
func (s *CommentService) Update(ctx context.Context, id uint64, input validator.CommentInput) (*models.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.ArticleID) == "" {
		input.ArticleID = strconv.FormatUint(comment.ArticleID, 10)
	}

	fields, err := validator.ValidateStandaloneComment(ctx, input, s.articleRepo)
	if err != nil {
		return nil, err
	}

	comment.Author = fields.Author
	comment.Text = fields.Text
	comment.ArticleID = fields.ArticleID

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// Delete removes a comment and returns it so callers can redirect to its
// article.
func (s *CommentService) Delete(ctx context.Context, id uint64) (*models.Comment, error) {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	return comment, nil
}

// List returns one page of all comments.
func (s *CommentService) List(ctx context.Context, page string) ([]models.Comment, utils.Page, error) {
	comments, p, err := s.commentRepo.List(ctx, repository.PageRequest{
		Page:    page,
		PerPage: constants.CommentsPerPage,
		Orphans: constants.CommentsOrphans,
	})
	if err != nil {
		return nil, utils.Page{}, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, p, nil
}
