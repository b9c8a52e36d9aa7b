package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/blog-api/internal/constants"
	"github.com/yukikurage/blog-api/internal/repository"
	"github.com/yukikurage/blog-api/internal/services"
	"github.com/yukikurage/blog-api/internal/testutil"
	"github.com/yukikurage/blog-api/internal/validator"
	"gorm.io/gorm"
)

type handlerTestEnv struct {
	db             *gorm.DB
	router         *gin.Engine
	authService    *services.AuthService
	articleService *services.ArticleService
	commentService *services.CommentService
}

// asUser stands in for the session middleware on protected routes.
func asUser(id uint64, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, id)
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)

	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	authService := services.NewAuthService(repository.NewUserRepository(db))
	articleService := services.NewArticleService(articleRepo, commentRepo, categoryRepo)
	commentService := services.NewCommentService(commentRepo, articleRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	tagService := services.NewTagService(repository.NewTagRepository(db))

	authHandler := NewAuthHandler(authService)
	articleHandler := NewArticleHandler(articleService, categoryService, tagService)
	commentHandler := NewCommentHandler(commentService)
	categoryHandler := NewCategoryHandler(categoryService)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	r.POST("/accounts/register", authHandler.Register)
	r.POST("/accounts/login", authHandler.Login)
	r.POST("/accounts/logout", authHandler.Logout)
	r.GET("/accounts/profile/:id", authHandler.UserDetail)

	r.GET("/", articleHandler.List)
	r.GET("/articles/search", articleHandler.Search)
	r.GET("/articles/:id", articleHandler.Show)
	r.POST("/articles/:id/comments", commentHandler.CreateForArticle)
	r.GET("/comments", commentHandler.List)
	r.POST("/comments", commentHandler.Create)
	r.GET("/categories", categoryHandler.List)

	authed := r.Group("", asUser(1, "alice"))
	{
		authed.GET("/accounts/profile", authHandler.Profile)
		authed.POST("/accounts/profile", authHandler.UpdateProfile)
		authed.POST("/accounts/password", authHandler.ChangePassword)
		authed.GET("/articles/new", articleHandler.NewForm)
		authed.POST("/articles", articleHandler.Create)
		authed.GET("/articles/:id/update", articleHandler.EditForm)
		authed.POST("/articles/:id/update", articleHandler.Update)
		authed.GET("/articles/:id/delete", articleHandler.DeleteConfirm)
		authed.POST("/articles/:id/delete", articleHandler.Delete)
		authed.GET("/comments/:id/update", commentHandler.EditForm)
		authed.POST("/comments/:id/update", commentHandler.Update)
		authed.POST("/comments/:id/delete", commentHandler.Delete)
		authed.POST("/categories", categoryHandler.Create)
	}

	return handlerTestEnv{
		db:             db,
		router:         r,
		authService:    authService,
		articleService: articleService,
		commentService: commentService,
	}
}

func (env handlerTestEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env handlerTestEnv) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

type validationBody struct {
	Code    string `json:"code"`
	Details struct {
		Form   string                 `json:"form"`
		Errors []validator.FieldError `json:"errors"`
	} `json:"details"`
}

func decodeValidation(t *testing.T, w *httptest.ResponseRecorder) validationBody {
	t.Helper()
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var body validationBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "VALIDATION_FAILED", body.Code)
	return body
}

func (b validationBody) hasCode(field, code string) bool {
	for _, fe := range b.Details.Errors {
		if fe.Field == field && fe.Code == code {
			return true
		}
	}
	return false
}
