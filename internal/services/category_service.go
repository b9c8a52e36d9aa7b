package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/repository"
	"github.com/yukikurage/blog-api/internal/validator"
	"gorm.io/gorm"
)

// CategoryService handles category related business logic.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create validates the form and stores a new category.
func (s *CategoryService) Create(ctx context.Context, input validator.CategoryInput) (*models.Category, error) {
	input, err := validator.ValidateCategory(ctx, input, s.categoryRepo)
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: input.Name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verr := &validator.ValidationError{Form: "category"}
			verr.Add("name", validator.CodeDuplicateName, "Category with this name already exists.")
			return nil, verr
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}
