package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/blog-api/internal/dto"
	apierrors "github.com/yukikurage/blog-api/internal/errors"
	"github.com/yukikurage/blog-api/internal/services"
	"github.com/yukikurage/blog-api/internal/validator"
)

// CommentHandler serves the comment pages.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateForArticle posts a comment under the article in the path.
func (h *CommentHandler) CreateForArticle(c *gin.Context) {
	articleID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validator.CommentInput
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.commentService.CreateForArticle(c.Request.Context(), articleID, req); err != nil {
		respondCommentError(c, err, req)
		return
	}

	redirect(c, articleURL(articleID))
}

// List returns one page of all comments.
func (h *CommentHandler) List(c *gin.Context) {
	resp, err := h.listPage(c)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// NewForm renders an empty comment form, optionally bound to ?article_id=.
func (h *CommentHandler) NewForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": validator.CommentInput{ArticleID: c.Query("article_id")}})
}

// Create posts a comment under the article named in the form.
func (h *CommentHandler) Create(c *gin.Context) {
	var req validator.CommentInput
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), req)
	if err != nil {
		respondCommentError(c, err, req)
		return
	}

	redirect(c, articleURL(comment.ArticleID))
}

// EditForm renders the comment form prefilled with the stored values.
func (h *CommentHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), id)
	if err != nil {
		respondCommentError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comment": dto.ToCommentDTO(*comment),
		"form": validator.CommentInput{
			Author:    comment.Author,
			Text:      comment.Text,
			ArticleID: strconv.FormatUint(comment.ArticleID, 10),
		},
	})
}

// Update saves an edited comment.
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validator.CommentInput
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondCommentError(c, err, req)
		return
	}

	redirect(c, articleURL(comment.ArticleID))
}

// DeleteConfirm returns the comment about to be deleted.
func (h *CommentHandler) DeleteConfirm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), id)
	if err != nil {
		respondCommentError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": dto.ToCommentDTO(*comment)})
}

// Delete removes a comment. A comment that is already gone falls back to the
// comment index with 404; any other failure is a server error.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCommentNotFound) {
			resp, listErr := h.listPage(c)
			if listErr != nil {
				respondInternal(c, listErr)
				return
			}
			c.JSON(http.StatusNotFound, gin.H{
				"code":     apierrors.ErrCodeNotFound,
				"message":  err.Error(),
				"comments": resp.Comments,
				"page":     resp.Page,
			})
			return
		}
		respondInternal(c, err)
		return
	}

	redirect(c, articleURL(comment.ArticleID))
}

func (h *CommentHandler) listPage(c *gin.Context) (dto.CommentListResponse, error) {
	comments, page, err := h.commentService.List(c.Request.Context(), c.Query("page"))
	if err != nil {
		return dto.CommentListResponse{}, err
	}
	return dto.CommentListResponse{
		Comments: dto.ToCommentDTOs(comments),
		Page:     page,
	}, nil
}

func respondCommentError(c *gin.Context, err error, values interface{}) {
	if respondValidation(c, err, values) {
		return
	}
	switch {
	case errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrArticleNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondInternal(c, err)
	}
}
