package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/blog-api/internal/testutil"
)

type client struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	return &client{t: t, router: New(db, cookie.NewStore([]byte("secret")))}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func TestRouter_AnonymousIsRedirectedToLogin(t *testing.T) {
	c := newClient(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/articles/new"},
		{http.MethodPost, "/articles"},
		{http.MethodGet, "/articles/1/update"},
		{http.MethodPost, "/articles/1/delete"},
		{http.MethodPost, "/comments/1/update"},
		{http.MethodPost, "/comments/1/delete"},
		{http.MethodPost, "/categories"},
		{http.MethodGet, "/accounts/profile"},
	}

	for _, p := range protected {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := c.do(httptest.NewRequest(p.method, p.path, nil))
			require.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/accounts/login?next="+url.QueryEscape(p.path), w.Header().Get("Location"))
		})
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	c := newClient(t)

	for _, path := range []string{"/", "/articles/search", "/comments", "/comments/new", "/categories", "/accounts/login", "/accounts/register", "/health"} {
		assert.Equal(t, http.StatusOK, c.get(path).Code, path)
	}

	w := c.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "blog_http_requests_total")
}

func TestRouter_RegisterThenWrite(t *testing.T) {
	c := newClient(t)

	w := c.post("/accounts/register", url.Values{
		"username":         {"alice"},
		"password":         {"supersecret"},
		"password_confirm": {"supersecret"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	w = c.get("/articles/new")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"author":"alice"`)

	w = c.post("/articles", url.Values{
		"title": {"Routing in gin"},
		"text":  {"Groups and params"},
		"tags":  {"go"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/articles/1", w.Header().Get("Location"))

	w = c.post("/articles/1/comments", url.Values{"author": {"bob"}, "text": {"Thanks"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = c.get("/?tag=go")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Routing in gin")

	w = c.post("/accounts/logout", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = c.get("/articles/new")
	assert.Equal(t, http.StatusFound, w.Code)

	w = c.get("/accounts/profile/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestRouter_LoginReturnsToNext(t *testing.T) {
	c := newClient(t)
	require.Equal(t, http.StatusSeeOther, c.post("/accounts/register", url.Values{
		"username":         {"alice"},
		"password":         {"supersecret"},
		"password_confirm": {"supersecret"},
	}).Code)
	require.Equal(t, http.StatusSeeOther, c.post("/accounts/logout", url.Values{}).Code)

	w := c.get("/articles/new")
	require.Equal(t, http.StatusFound, w.Code)
	loginURL := w.Header().Get("Location")

	w = c.post(loginURL, url.Values{"username": {"alice"}, "password": {"supersecret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/articles/new", w.Header().Get("Location"))
}

func TestRouter_RequestIDHeader(t *testing.T) {
	c := newClient(t)
	w := c.get("/health")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `{"status":"ok","message":"Blog API is running"}`, w.Body.String())
}
