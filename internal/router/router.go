// Package router assembles the gin engine: middleware, sessions and routes.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/blog-api/internal/constants"
	"github.com/yukikurage/blog-api/internal/handlers"
	"github.com/yukikurage/blog-api/internal/middleware"
	"github.com/yukikurage/blog-api/internal/repository"
	"github.com/yukikurage/blog-api/internal/services"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers on top of db and returns the
// engine serving every route.
func New(db *gorm.DB, store sessions.Store) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)

	authService := services.NewAuthService(userRepo)
	articleService := services.NewArticleService(articleRepo, commentRepo, categoryRepo)
	commentService := services.NewCommentService(commentRepo, articleRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	tagService := services.NewTagService(tagRepo)

	authHandler := handlers.NewAuthHandler(authService)
	articleHandler := handlers.NewArticleHandler(articleService, categoryService, tagService)
	commentHandler := handlers.NewCommentHandler(commentService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		sessions.Sessions(constants.SessionCookieName, store),
		middleware.LoadSession(),
	)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"message": "Blog API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth()

	// Account routes
	accounts := r.Group("/accounts")
	{
		accounts.GET("/register", authHandler.RegisterForm)
		accounts.POST("/register", authHandler.Register)
		accounts.GET("/login", authHandler.LoginForm)
		accounts.POST("/login", authHandler.Login)
		accounts.GET("/logout", requireAuth, authHandler.Logout)
		accounts.POST("/logout", requireAuth, authHandler.Logout)
		accounts.GET("/password", requireAuth, authHandler.PasswordForm)
		accounts.POST("/password", requireAuth, authHandler.ChangePassword)
		accounts.GET("/profile", requireAuth, authHandler.Profile)
		accounts.POST("/profile", requireAuth, authHandler.UpdateProfile)
		accounts.GET("/profile/:id", authHandler.UserDetail)
	}

	// Article routes
	r.GET("/", articleHandler.List)
	articles := r.Group("/articles")
	{
		articles.GET("/search", articleHandler.Search)
		articles.GET("/new", requireAuth, articleHandler.NewForm)
		articles.POST("", requireAuth, articleHandler.Create)
		articles.GET("/:id", articleHandler.Show)
		articles.GET("/:id/update", requireAuth, articleHandler.EditForm)
		articles.POST("/:id/update", requireAuth, articleHandler.Update)
		articles.GET("/:id/delete", requireAuth, articleHandler.DeleteConfirm)
		articles.POST("/:id/delete", requireAuth, articleHandler.Delete)
		articles.POST("/:id/comments", commentHandler.CreateForArticle)
	}

	// Comment routes
	comments := r.Group("/comments")
	{
		comments.GET("", commentHandler.List)
		comments.GET("/new", commentHandler.NewForm)
		comments.POST("", commentHandler.Create)
		comments.GET("/:id/update", requireAuth, commentHandler.EditForm)
		comments.POST("/:id/update", requireAuth, commentHandler.Update)
		comments.GET("/:id/delete", requireAuth, commentHandler.DeleteConfirm)
		comments.POST("/:id/delete", requireAuth, commentHandler.Delete)
	}

	// Category routes
	r.GET("/categories", categoryHandler.List)
	r.POST("/categories", requireAuth, categoryHandler.Create)

	return r
}
