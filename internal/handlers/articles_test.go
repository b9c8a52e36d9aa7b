package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/blog-api/internal/dto"
	"github.com/yukikurage/blog-api/internal/metrics"
	"github.com/yukikurage/blog-api/internal/models"
	"github.com/yukikurage/blog-api/internal/validator"
)

func (env handlerTestEnv) createArticle(t *testing.T, title, tags string) *models.Article {
	t.Helper()
	article, err := env.articleService.Create(context.Background(), validator.ArticleInput{
		Title:  title,
		Text:   "Body of " + title,
		Author: "alice",
		Tags:   tags,
	})
	require.NoError(t, err)
	return article
}

func TestArticleHandler_Create(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.postForm("/articles", url.Values{
		"title": {"my first blog post"},
		"text":  {"Hello there"},
		"tags":  {"go, web"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/articles/1", w.Header().Get("Location"))

	article, err := env.articleService.Find(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "My first blog post", article.Title)
	assert.Equal(t, "alice", article.Author)
	assert.Len(t, article.Tags, 2)
}

func TestArticleHandler_CreateInvalid(t *testing.T) {
	env := setupHandlerTestEnv(t)
	before := testutil.ToFloat64(metrics.ValidationFailures.WithLabelValues("article"))

	w := env.postForm("/articles", url.Values{
		"title": {"too short"},
		"text":  {"Body"},
	})

	body := decodeValidation(t, w)
	assert.Equal(t, "article", body.Details.Form)
	assert.True(t, body.hasCode("title", validator.CodeTitleTooShort))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ValidationFailures.WithLabelValues("article")))

	var count int64
	require.NoError(t, env.db.Model(&models.Article{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestArticleHandler_Show(t *testing.T) {
	env := setupHandlerTestEnv(t)
	article := env.createArticle(t, "A long enough title", "go")
	for i := 0; i < 4; i++ {
		_, err := env.commentService.CreateForArticle(context.Background(), article.ID, validator.CommentInput{
			Author: "bob", Text: "comment " + strconv.Itoa(i),
		})
		require.NoError(t, err)
	}

	w := env.get("/articles/1?page=2")
	require.Equal(t, http.StatusOK, w.Code)

	var body dto.ArticleDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "A long enough title", body.Article.Title)
	assert.Equal(t, []string{"go"}, body.Article.Tags)
	assert.Len(t, body.Comments, 1)
	assert.Equal(t, 2, body.Page.Number)
	assert.Equal(t, "1", body.CommentForm.ArticleID)
	assert.Empty(t, body.CommentForm.Text)

	assert.Equal(t, http.StatusNotFound, env.get("/articles/99").Code)
	assert.Equal(t, http.StatusNotFound, env.get("/articles/abc").Code)
}

func TestArticleHandler_List(t *testing.T) {
	env := setupHandlerTestEnv(t)
	for i := 0; i < 4; i++ {
		env.createArticle(t, "Tagged article "+strconv.Itoa(i), "go")
	}
	env.createArticle(t, "Untagged article", "")

	w := env.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	var body dto.ArticleListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Articles, 3)
	assert.Equal(t, 2, body.Page.NumPages)
	assert.True(t, body.Page.HasNext)
	assert.True(t, body.Page.HasOtherPages)
	assert.Contains(t, w.Body.String(), `"has_other_pages":true`)

	// 4 tagged articles with one orphan fit on a single page
	w = env.get("/?tag=go")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Articles, 4)
	assert.Equal(t, "go", body.Tag)
	assert.False(t, body.Page.HasOtherPages)
	assert.Contains(t, w.Body.String(), `"has_other_pages":false`)

	w = env.get("/?page=xyz&search=untagged")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Articles, 1)
}

func TestArticleHandler_Search(t *testing.T) {
	env := setupHandlerTestEnv(t)
	tagged := env.createArticle(t, "A long enough title", "Go")
	env.createArticle(t, "Another long title", "rust")

	w := env.get("/articles/search?text=go&in_tags=true")
	require.Equal(t, http.StatusOK, w.Code)
	var body dto.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, tagged.ID, body.Articles[0].ID)

	w = env.get("/articles/search?text=go&author=bob")
	result := decodeValidation(t, w)
	assert.True(t, result.hasCode("text", validator.CodeNoSearchTarget))
	assert.True(t, result.hasCode("author", validator.CodeNoSearchTarget))
}

func TestArticleHandler_UpdateFlow(t *testing.T) {
	env := setupHandlerTestEnv(t)
	article := env.createArticle(t, "A long enough title", "a,b")

	w := env.get("/articles/1/update")
	require.Equal(t, http.StatusOK, w.Code)
	var form dto.ArticleFormResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	assert.Equal(t, "a,b", form.Form.Tags)
	require.NotNil(t, form.Article)
	assert.Equal(t, []string{"a", "b"}, form.Tags)

	w = env.postForm("/articles/1/update", url.Values{
		"title":  {"A long enough title"},
		"text":   {"Edited body"},
		"author": {"bob"},
		"tags":   {"b,c"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/articles/1", w.Header().Get("Location"))

	stored, err := env.articleService.Find(context.Background(), article.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", stored.Author)
	assert.Equal(t, []string{"b", "c"}, dto.TagNames(stored.Tags))

	assert.Equal(t, http.StatusNotFound, env.postForm("/articles/42/update", url.Values{}).Code)
}

func TestArticleHandler_NewForm(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.createArticle(t, "A long enough title", "go")

	w := env.get("/articles/new")
	require.Equal(t, http.StatusOK, w.Code)

	var form dto.ArticleFormResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	assert.Equal(t, "alice", form.Form.Author)
	assert.Equal(t, []string{"go"}, form.Tags)
	assert.Nil(t, form.Article)
	assert.NotNil(t, form.Categories)
}

func TestArticleHandler_Delete(t *testing.T) {
	env := setupHandlerTestEnv(t)
	article := env.createArticle(t, "A long enough title", "")
	_, err := env.commentService.CreateForArticle(context.Background(), article.ID, validator.CommentInput{Author: "bob", Text: "hi"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, env.get("/articles/1/delete").Code)

	w := env.postForm("/articles/1/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.Equal(t, http.StatusNotFound, env.postForm("/articles/1/delete", url.Values{}).Code)
}
