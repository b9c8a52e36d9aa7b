package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/blog-api/internal/constants"
	"github.com/yukikurage/blog-api/internal/dto"
	apierrors "github.com/yukikurage/blog-api/internal/errors"
	"github.com/yukikurage/blog-api/internal/middleware"
	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/services"
	"github.com/yukikurage/blog-api/internal/validator"
)

// ArticleHandler serves the article pages.
type ArticleHandler struct {
	articleService  *services.ArticleService
	categoryService *services.CategoryService
	tagService      *services.TagService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(
	articleService *services.ArticleService,
	categoryService *services.CategoryService,
	tagService *services.TagService,
) *ArticleHandler {
	return &ArticleHandler{
		articleService:  articleService,
		categoryService: categoryService,
		tagService:      tagService,
	}
}

// List returns one page of the article index, filtered by ?search= and ?tag=.
func (h *ArticleHandler) List(c *gin.Context) {
	var req validator.SimpleSearchInput
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.articleService.List(c.Request.Context(), req)
	if err != nil {
		respondArticleError(c, err, req)
		return
	}

	c.JSON(http.StatusOK, dto.ArticleListResponse{
		Articles: dto.ToArticleListItems(result.Articles),
		Page:     result.Page,
		Search:   result.Filter.Search,
		Tag:      result.Filter.Tag,
	})
}

// Search runs the advanced search form.
func (h *ArticleHandler) Search(c *gin.Context) {
	var req validator.FullSearchInput
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BadRequest(c, "Invalid query parameters")
		return
	}

	articles, form, err := h.articleService.Search(c.Request.Context(), req)
	if err != nil {
		respondArticleError(c, err, req)
		return
	}

	c.JSON(http.StatusOK, dto.SearchResponse{
		Articles: dto.ToArticleListItems(articles),
		Count:    len(articles),
		Form:     form,
	})
}

// Show returns an article, one page of its comments and an empty comment form.
func (h *ArticleHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	detail, err := h.articleService.Get(c.Request.Context(), id, c.Query("page"))
	if err != nil {
		respondArticleError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ArticleDetailResponse{
		Article:  dto.ToArticleDTO(*detail.Article),
		Comments: dto.ToCommentDTOs(detail.Comments),
		Page:     detail.Page,
		CommentForm: validator.CommentInput{
			ArticleID: strconv.FormatUint(id, 10),
		},
	})
}

// NewForm renders an empty article form with the author preset to the
// current user.
func (h *ArticleHandler) NewForm(c *gin.Context) {
	h.renderForm(c, nil, validator.ArticleInput{Author: middleware.GetUsername(c)})
}

// Create stores a new article.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req validator.ArticleInput
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	h.defaultAuthor(c, &req)

	article, err := h.articleService.Create(c.Request.Context(), req)
	if err != nil {
		respondArticleError(c, err, req)
		return
	}

	redirect(c, articleURL(article.ID))
}

// EditForm renders the article form prefilled with the stored values.
func (h *ArticleHandler) EditForm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	article, err := h.articleService.Find(c.Request.Context(), id)
	if err != nil {
		respondArticleError(c, err, nil)
		return
	}

	form := validator.ArticleInput{
		Title:  article.Title,
		Text:   article.Text,
		Author: article.Author,
		Tags:   services.JoinTagNames(article.Tags),
	}
	if article.CategoryID != nil {
		form.CategoryID = strconv.FormatUint(*article.CategoryID, 10)
	}

	h.renderForm(c, article, form)
}

// Update saves an edited article.
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req validator.ArticleInput
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	h.defaultAuthor(c, &req)

	article, err := h.articleService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondArticleError(c, err, req)
		return
	}

	redirect(c, articleURL(article.ID))
}

// DeleteConfirm returns the article about to be deleted.
func (h *ArticleHandler) DeleteConfirm(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	article, err := h.articleService.Find(c.Request.Context(), id)
	if err != nil {
		respondArticleError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": dto.ToArticleDTO(*article)})
}

// Delete removes an article and its comments.
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		respondArticleError(c, err, nil)
		return
	}

	redirect(c, constants.RouteIndex)
}

func (h *ArticleHandler) renderForm(c *gin.Context, article *models.Article, form validator.ArticleInput) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err)
		return
	}
	tags, err := h.tagService.Names(c.Request.Context())
	if err != nil {
		respondInternal(c, err)
		return
	}

	resp := dto.ArticleFormResponse{
		Form:       form,
		Categories: dto.ToCategoryDTOs(categories),
		Tags:       tags,
	}
	if article != nil {
		a := dto.ToArticleDTO(*article)
		resp.Article = &a
	}
	c.JSON(http.StatusOK, resp)
}

// defaultAuthor credits a blank author field to the logged-in user.
func (h *ArticleHandler) defaultAuthor(c *gin.Context, req *validator.ArticleInput) {
	if req.Author == "" {
		req.Author = middleware.GetUsername(c)
	}
}

func respondArticleError(c *gin.Context, err error, values interface{}) {
	if respondValidation(c, err, values) {
		return
	}
	switch {
	case errors.Is(err, services.ErrArticleNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondInternal(c, err)
	}
}
