package constants

// Session and context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	SessionCookieName  = "blog_session"
)

// Pagination policies
const (
	MinPage = 1

	ArticlesPerPage = 3
	ArticlesOrphans = 1

	ArticleCommentsPerPage = 3
	ArticleCommentsOrphans = 0

	CommentsPerPage = 10
	CommentsOrphans = 3
)

// Field limits
const (
	MaxUsernameLength     = 150
	MaxPasswordLength     = 100
	MinTitleLength        = 10
	MaxTitleLength        = 200
	MaxTextLength         = 3000
	MaxAuthorLength       = 40
	MaxCommentTextLength  = 400
	MaxCategoryNameLength = 20
	MaxTagNameLength      = 31
	MaxTagsFieldLength    = 255
	MaxSearchLength       = 100
	MaxNameLength         = 150
)

// Routes used as redirect targets
const (
	RouteIndex    = "/"
	RouteLogin    = "/accounts/login"
	RouteProfile  = "/accounts/profile"
	RouteCategory = "/categories"
	RouteComments = "/comments"
)
