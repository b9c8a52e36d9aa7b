package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/blog-api/internal/errors"
	"github.com/yukikurage/blog-api/internal/logger"
	"github.com/yukikurage/blog-api/internal/metrics"
	"github.com/yukikurage/blog-api/internal/middleware"
	"github.com/yukikurage/blog-api/internal/validator"
)

// parseID reads a numeric path parameter. Non-numeric IDs cannot name a
// stored row, so they are answered with 404.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "")
		return 0, false
	}
	return id, true
}

// respondValidation answers a ValidationError with the form's field errors and
// reports whether err was one.
func respondValidation(c *gin.Context, err error, values interface{}) bool {
	verr, ok := validator.AsValidationError(err)
	if !ok {
		return false
	}
	metrics.ObserveValidationFailure(verr.Form)
	apierrors.ValidationFailed(c, verr, values)
	return true
}

// respondInternal logs an unexpected failure with the request id and answers 500.
func respondInternal(c *gin.Context, err error) {
	_ = c.Error(err)
	logger.WithRequestID(middleware.GetRequestID(c)).Error("request failed",
		"path", c.Request.URL.Path,
		"error", err,
	)
	apierrors.InternalError(c, "")
}

// redirect answers a successful form post.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func articleURL(id uint64) string {
	return "/articles/" + strconv.FormatUint(id, 10)
}

// safeNext returns next when it is a path on this site, and "" otherwise.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}
