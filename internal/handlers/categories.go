package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/blog-api/internal/constants"
	"github.com/yukikurage/blog-api/internal/dto"
	apierrors "github.com/yukikurage/blog-api/internal/errors"
	"github.com/yukikurage/blog-api/internal/services"
	"github.com/yukikurage/blog-api/internal/validator"
)

// CategoryHandler serves the category pages.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List returns every category.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": dto.ToCategoryDTOs(categories)})
}

// Create adds a category.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req validator.CategoryInput
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.categoryService.Create(c.Request.Context(), req); err != nil {
		if respondValidation(c, err, req) {
			return
		}
		respondInternal(c, err)
		return
	}

	redirect(c, constants.RouteCategory)
}
