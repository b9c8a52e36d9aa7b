package dto

import (
	"time"

	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/utils"
	"github.com/yukikurage/blog-api/internal/validator"
)

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ArticleDTO represents an article in API responses
type ArticleDTO struct {
	ID        uint64       `json:"id"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	TextHTML  string       `json:"text_html"`
	Author    string       `json:"author"`
	Category  *CategoryDTO `json:"category"`
	Tags      []string     `json:"tags"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ArticleListItemDTO represents an article in list responses (minimal data)
type ArticleListItemDTO struct {
	ID        uint64       `json:"id"`
	Title     string       `json:"title"`
	Author    string       `json:"author"`
	Category  *CategoryDTO `json:"category"`
	Tags      []string     `json:"tags"`
	CreatedAt time.Time    `json:"created_at"`
}

// ArticleListResponse is the view context of the article index
type ArticleListResponse struct {
	Articles []ArticleListItemDTO `json:"articles"`
	Page     utils.Page           `json:"page"`
	Search   string               `json:"search"`
	Tag      string               `json:"tag"`
}

// ArticleDetailResponse is the view context of a single article
type ArticleDetailResponse struct {
	Article     ArticleDTO             `json:"article"`
	Comments    []CommentDTO           `json:"comments"`
	Page        utils.Page             `json:"page"`
	CommentForm validator.CommentInput `json:"comment_form"`
}

// SearchResponse is the view context of the advanced search page
type SearchResponse struct {
	Articles []ArticleListItemDTO      `json:"articles"`
	Count    int                       `json:"count"`
	Form     validator.FullSearchInput `json:"form"`
}

// ArticleFormResponse is the view context of the create and update forms
type ArticleFormResponse struct {
	Article    *ArticleDTO            `json:"article,omitempty"`
	Form       validator.ArticleInput `json:"form"`
	Categories []CategoryDTO          `json:"categories"`
	Tags       []string               `json:"tags"`
}

// Conversion functions

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:   category.ID,
		Name: category.Name,
	}
}

// ToCategoryDTOs converts a slice of categories
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	items := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		items[i] = ToCategoryDTO(category)
	}
	return items
}

// TagNames returns the names of tags in order
func TagNames(tags []models.Tag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}

// ToArticleDTO converts an Article model to ArticleDTO
func ToArticleDTO(article models.Article) ArticleDTO {
	dto := ArticleDTO{
		ID:        article.ID,
		Title:     article.Title,
		Text:      article.Text,
		TextHTML:  RenderHTML(article.Text),
		Author:    article.Author,
		Tags:      TagNames(article.Tags),
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}

	// Include category if preloaded
	if article.Category != nil {
		category := ToCategoryDTO(*article.Category)
		dto.Category = &category
	}

	return dto
}

// ToArticleListItemDTO converts an Article model to ArticleListItemDTO
func ToArticleListItemDTO(article models.Article) ArticleListItemDTO {
	dto := ArticleListItemDTO{
		ID:        article.ID,
		Title:     article.Title,
		Author:    article.Author,
		Tags:      TagNames(article.Tags),
		CreatedAt: article.CreatedAt,
	}

	if article.Category != nil {
		category := ToCategoryDTO(*article.Category)
		dto.Category = &category
	}

	return dto
}

// ToArticleListItems converts a slice of articles
func ToArticleListItems(articles []models.Article) []ArticleListItemDTO {
	items := make([]ArticleListItemDTO, len(articles))
	for i, article := range articles {
		items[i] = ToArticleListItemDTO(article)
	}
	return items
}
