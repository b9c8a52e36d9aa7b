package dto

import (
	"time"

	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/utils"
)

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	ArticleID uint64    `json:"article_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	TextHTML  string    `json:"text_html"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentListResponse is the view context of the comment index
type CommentListResponse struct {
	Comments []CommentDTO `json:"comments"`
	Page     utils.Page   `json:"page"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		ArticleID: comment.ArticleID,
		Author:    comment.Author,
		Text:      comment.Text,
		TextHTML:  RenderHTML(comment.Text),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	items := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = ToCommentDTO(comment)
	}
	return items
}
