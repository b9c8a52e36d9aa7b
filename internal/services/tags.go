package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/repository"
)

// TagService exposes the tag vocabulary.
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// Names returns every known tag name in alphabetical order.
func (s *TagService) Names(ctx context.Context) ([]string, error) {
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names, nil
}

// JoinTagNames renders a tag set the way the article form accepts it.
func JoinTagNames(tags []models.Tag) string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return strings.Join(names, ",")
}
