package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/blog-api/internal/constants"
	"github.com/yukikurage/blog-api/internal/dto"
	apierrors "github.com/yukikurage/blog-api/internal/errors"
	"github.com/yukikurage/blog-api/internal/middleware"
	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/services"
	"github.com/yukikurage/blog-api/internal/validator"
)

// AuthHandler coordinates account-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterForm renders an empty sign-up form.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": validator.RegistrationInput{}})
}

// Register creates a user and logs them in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req validator.RegistrationInput
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		req.Password, req.PasswordConfirm = "", ""
		respondAuthError(c, err, req)
		return
	}

	if err := startSession(c, user); err != nil {
		respondInternal(c, err)
		return
	}

	redirect(c, constants.RouteIndex)
}

// LoginForm renders the login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"next": safeNext(c.Query("next"))})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `form:"username" json:"username"`
		Password string `form:"password" json:"password"`
		Next     string `form:"next" json:"next"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	next := safeNext(req.Next)
	if next == "" {
		next = safeNext(c.Query("next"))
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":      apierrors.ErrCodeInvalidCredentials,
				"has_error": true,
				"next":      next,
			})
			return
		}
		respondInternal(c, err)
		return
	}

	if err := startSession(c, user); err != nil {
		respondInternal(c, err)
		return
	}

	if next == "" {
		next = constants.RouteIndex
	}
	redirect(c, next)
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		respondInternal(c, err)
		return
	}

	redirect(c, constants.RouteIndex)
}

// PasswordForm renders an empty password change form.
func (h *AuthHandler) PasswordForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": validator.PasswordChangeInput{}})
}

// ChangePassword replaces the current user's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req validator.PasswordChangeInput
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondAuthError(c, err, validator.PasswordChangeInput{})
		return
	}

	redirect(c, constants.RouteIndex)
}

// Profile returns the current user.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondAuthError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)})
}

// UserDetail returns the public profile of any user.
func (h *AuthHandler) UserDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondAuthError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.ToPublicUserDTO(*user)})
}

// UpdateProfile saves the current user's email and names.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req validator.ProfileInput
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.authService.UpdateProfile(c.Request.Context(), userID, req); err != nil {
		respondAuthError(c, err, req)
		return
	}

	redirect(c, constants.RouteProfile)
}

func startSession(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, user.ID)
	session.Set(constants.ContextKeyUsername, user.Username)
	return session.Save()
}

func respondAuthError(c *gin.Context, err error, values interface{}) {
	if respondValidation(c, err, values) {
		return
	}
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondInternal(c, err)
	}
}
