package validator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeLookup struct {
	usernames  map[string]bool
	emails     map[string]uint64
	categories map[uint64]string
	articles   map[uint64]bool
	err        error
}

func (f *fakeLookup) UsernameExists(_ context.Context, username string) (bool, error) {
	return f.usernames[username], f.err
}

func (f *fakeLookup) EmailExists(_ context.Context, email string, excludeID uint64) (bool, error) {
	owner, ok := f.emails[email]
	return ok && owner != excludeID, f.err
}

func (f *fakeLookup) CategoryExists(_ context.Context, id uint64) (bool, error) {
	_, ok := f.categories[id]
	return ok, f.err
}

func (f *fakeLookup) CategoryNameExists(_ context.Context, name string) (bool, error) {
	for _, n := range f.categories {
		if n == name {
			return true, f.err
		}
	}
	return false, f.err
}

func (f *fakeLookup) ArticleExists(_ context.Context, id uint64) (bool, error) {
	return f.articles[id], f.err
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		usernames:  map[string]bool{"taken": true},
		emails:     map[string]uint64{"taken@example.com": 7},
		categories: map[uint64]string{1: "News"},
		articles:   map[uint64]bool{1: true},
	}
}

func requireCodes(t *testing.T, err error, codes ...string) *ValidationError {
	t.Helper()
	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected *ValidationError, got %v", err)
	for _, code := range codes {
		assert.True(t, ve.Has(code), "expected code %s in %v", code, ve.Errors)
	}
	return ve
}

func TestValidateRegistration(t *testing.T) {
	ctx := context.Background()
	lookup := newFakeLookup()

	t.Run("valid", func(t *testing.T) {
		out, err := ValidateRegistration(ctx, RegistrationInput{
			Username:        "  alice ",
			Email:           " Alice@Example.com ",
			Password:        "secret",
			PasswordConfirm: "secret",
		}, lookup)
		require.NoError(t, err)
		assert.Equal(t, "alice", out.Username)
		assert.Equal(t, "alice@example.com", out.Email)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := ValidateRegistration(ctx, RegistrationInput{
			Username: "taken", Password: "secret", PasswordConfirm: "secret",
		}, lookup)
		ve := requireCodes(t, err, CodeDuplicateUsername)
		assert.True(t, ve.HasField("username"))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := ValidateRegistration(ctx, RegistrationInput{
			Username: "bob", Email: "TAKEN@example.com", Password: "secret", PasswordConfirm: "secret",
		}, lookup)
		requireCodes(t, err, CodeDuplicateEmail)
	})

	t.Run("password mismatch", func(t *testing.T) {
		_, err := ValidateRegistration(ctx, RegistrationInput{
			Username: "bob", Password: "secret", PasswordConfirm: "other",
		}, lookup)
		ve := requireCodes(t, err, CodePasswordMismatch)
		assert.True(t, ve.HasField("password_confirm"))
	})

	t.Run("all failures reported together", func(t *testing.T) {
		_, err := ValidateRegistration(ctx, RegistrationInput{
			Username: "taken", Email: "taken@example.com", Password: "a", PasswordConfirm: "b",
		}, lookup)
		requireCodes(t, err, CodeDuplicateUsername, CodeDuplicateEmail, CodePasswordMismatch)
	})

	t.Run("required fields", func(t *testing.T) {
		_, err := ValidateRegistration(ctx, RegistrationInput{}, lookup)
		ve := requireCodes(t, err, CodeRequired)
		assert.True(t, ve.HasField("username"))
		assert.True(t, ve.HasField("password"))
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := ValidateRegistration(ctx, RegistrationInput{
			Username: "bob", Email: "not-an-email", Password: "secret", PasswordConfirm: "secret",
		}, lookup)
		ve := requireCodes(t, err, CodeInvalid)
		assert.True(t, ve.HasField("email"))
	})

	t.Run("lookup failure is not a validation error", func(t *testing.T) {
		failing := newFakeLookup()
		failing.err = errors.New("db down")
		_, err := ValidateRegistration(ctx, RegistrationInput{
			Username: "bob", Password: "secret", PasswordConfirm: "secret",
		}, failing)
		require.Error(t, err)
		_, ok := AsValidationError(err)
		assert.False(t, ok)
	})
}

func TestValidatePasswordChange(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		_, err := ValidatePasswordChange(PasswordChangeInput{
			OldPassword: "old-secret", Password: "new-secret", PasswordConfirm: "new-secret",
		}, string(hash))
		assert.NoError(t, err)
	})

	t.Run("wrong old password", func(t *testing.T) {
		_, err := ValidatePasswordChange(PasswordChangeInput{
			OldPassword: "wrong", Password: "new-secret", PasswordConfirm: "new-secret",
		}, string(hash))
		requireCodes(t, err, CodeInvalidOldPassword)
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := ValidatePasswordChange(PasswordChangeInput{
			OldPassword: "old-secret", Password: "new-secret", PasswordConfirm: "typo",
		}, string(hash))
		ve := requireCodes(t, err, CodePasswordMismatch)
		assert.False(t, ve.Has(CodeInvalidOldPassword))
	})
}

func TestValidateProfile(t *testing.T) {
	ctx := context.Background()
	lookup := newFakeLookup()

	_, err := ValidateProfile(ctx, 7, ProfileInput{Email: "taken@example.com"}, lookup)
	assert.NoError(t, err, "a user keeps their own email")

	_, err = ValidateProfile(ctx, 8, ProfileInput{Email: "taken@example.com"}, lookup)
	requireCodes(t, err, CodeDuplicateEmail)

	out, err := ValidateProfile(ctx, 8, ProfileInput{FirstName: " Ada ", LastName: "Lovelace"}, lookup)
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.FirstName)
}

func validArticle() ArticleInput {
	return ArticleInput{
		Title:  "a long enough title",
		Text:   "Body of the article",
		Author: "alice",
		Tags:   "go, rust,web ",
	}
}

func TestValidateArticle(t *testing.T) {
	ctx := context.Background()
	lookup := newFakeLookup()

	t.Run("valid", func(t *testing.T) {
		in := validArticle()
		in.CategoryID = "1"
		out, err := ValidateArticle(ctx, in, lookup)
		require.NoError(t, err)
		assert.Equal(t, "A long enough title", out.Title)
		assert.Equal(t, []string{"go", "rust", "web"}, out.Tags)
		require.NotNil(t, out.CategoryID)
		assert.Equal(t, uint64(1), *out.CategoryID)
	})

	t.Run("title of exactly ten characters is too short", func(t *testing.T) {
		in := validArticle()
		in.Title = "0123456789"
		_, err := ValidateArticle(ctx, in, lookup)
		requireCodes(t, err, CodeTitleTooShort)
	})

	t.Run("title of eleven characters passes", func(t *testing.T) {
		in := validArticle()
		in.Title = "01234567890"
		_, err := ValidateArticle(ctx, in, lookup)
		assert.NoError(t, err)
	})

	t.Run("title equals text", func(t *testing.T) {
		in := validArticle()
		in.Text = "  A LONG ENOUGH TITLE "
		_, err := ValidateArticle(ctx, in, lookup)
		requireCodes(t, err, CodeDuplicateTitleText)
	})

	t.Run("unknown category", func(t *testing.T) {
		in := validArticle()
		in.CategoryID = "42"
		_, err := ValidateArticle(ctx, in, lookup)
		requireCodes(t, err, CodeInvalidChoice)
	})

	t.Run("non numeric category", func(t *testing.T) {
		in := validArticle()
		in.CategoryID = "news"
		_, err := ValidateArticle(ctx, in, lookup)
		requireCodes(t, err, CodeInvalidChoice)
	})

	t.Run("tag too long", func(t *testing.T) {
		in := validArticle()
		in.Tags = strings.Repeat("x", 32)
		_, err := ValidateArticle(ctx, in, lookup)
		ve := requireCodes(t, err, CodeTooLong)
		assert.True(t, ve.HasField("tags"))
	})

	t.Run("text is kept as submitted", func(t *testing.T) {
		in := validArticle()
		in.Text = `Tom's notes: a < b & c <b>"bold"</b>`
		out, err := ValidateArticle(ctx, in, lookup)
		require.NoError(t, err)
		assert.Equal(t, in.Text, out.Text)
	})

	t.Run("capitalization is idempotent", func(t *testing.T) {
		in := validArticle()
		first, err := ValidateArticle(ctx, in, lookup)
		require.NoError(t, err)
		in.Title = first.Title
		second, err := ValidateArticle(ctx, in, lookup)
		require.NoError(t, err)
		assert.Equal(t, first.Title, second.Title)
	})
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"go", "rust", "web"}, ParseTags("go, rust,web "))
	assert.Equal(t, []string{"b", "c"}, ParseTags("b,c,,b, "))
	assert.Empty(t, ParseTags(""))
	assert.Equal(t, []string{"Go", "go"}, ParseTags("Go,go"))
}

func TestValidateComment(t *testing.T) {
	out, err := ValidateComment(CommentInput{Author: " bob ", Text: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "bob", out.Author)

	_, err = ValidateComment(CommentInput{Author: "bob"})
	requireCodes(t, err, CodeRequired)

	_, err = ValidateComment(CommentInput{Author: "bob", Text: strings.Repeat("x", 401)})
	requireCodes(t, err, CodeTooLong)

	full := strings.Repeat("&", 400)
	out, err = ValidateComment(CommentInput{Author: "bob", Text: full})
	require.NoError(t, err)
	assert.Equal(t, full, out.Text)
}

func TestValidateStandaloneComment(t *testing.T) {
	ctx := context.Background()
	lookup := newFakeLookup()

	out, err := ValidateStandaloneComment(ctx, CommentInput{Author: "bob", Text: "hi", ArticleID: "1"}, lookup)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), out.ArticleID)

	_, err = ValidateStandaloneComment(ctx, CommentInput{Author: "bob", Text: "hi", ArticleID: "2"}, lookup)
	requireCodes(t, err, CodeInvalidChoice)

	_, err = ValidateStandaloneComment(ctx, CommentInput{Author: "bob", Text: "hi"}, lookup)
	requireCodes(t, err, CodeRequired)
}

func TestValidateCategory(t *testing.T) {
	ctx := context.Background()
	lookup := newFakeLookup()

	out, err := ValidateCategory(ctx, CategoryInput{Name: " Tech "}, lookup)
	require.NoError(t, err)
	assert.Equal(t, "Tech", out.Name)

	_, err = ValidateCategory(ctx, CategoryInput{Name: "News"}, lookup)
	requireCodes(t, err, CodeDuplicateName)

	_, err = ValidateCategory(ctx, CategoryInput{Name: strings.Repeat("n", 21)}, lookup)
	requireCodes(t, err, CodeTooLong)
}

func TestValidateFullSearch(t *testing.T) {
	tests := []struct {
		name   string
		in     FullSearchInput
		codes  int
		fields []string
	}{
		{name: "empty form", in: FullSearchInput{}},
		{name: "text with toggle", in: FullSearchInput{Text: "go", InTags: true}},
		{name: "text without toggle", in: FullSearchInput{Text: "go"}, codes: 1, fields: []string{"text"}},
		{name: "toggles without text", in: FullSearchInput{InTitle: true, InArticles: true}},
		{name: "author without target", in: FullSearchInput{Author: "bob"}, codes: 1, fields: []string{"author"}},
		{name: "author with target", in: FullSearchInput{Author: "bob", InComments: true}},
		{
			name:   "both missing targets",
			in:     FullSearchInput{Text: "go", Author: "bob"},
			codes:  2,
			fields: []string{"text", "author"},
		},
		{
			name:   "text check independent of author check",
			in:     FullSearchInput{Text: "go", Author: "bob", InArticles: true},
			codes:  1,
			fields: []string{"text"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateFullSearch(tt.in)
			if tt.codes == 0 {
				assert.NoError(t, err)
				return
			}
			ve := requireCodes(t, err, CodeNoSearchTarget)
			assert.Len(t, ve.Errors, tt.codes)
			for _, field := range tt.fields {
				assert.True(t, ve.HasField(field))
			}
		})
	}
}

func TestValidateSimpleSearch(t *testing.T) {
	out, err := ValidateSimpleSearch(SimpleSearchInput{Search: "  go "})
	require.NoError(t, err)
	assert.Equal(t, "go", out.Search)

	_, err = ValidateSimpleSearch(SimpleSearchInput{Search: strings.Repeat("s", 101)})
	requireCodes(t, err, CodeTooLong)
}

func TestValidationError_Error(t *testing.T) {
	ve := newValidationError("article")
	ve.Add("title", CodeTitleTooShort, "too short")
	assert.Equal(t, "article form is invalid: title: too short", ve.Error())
	assert.Nil(t, newValidationError("x").orNil())
}
