package validator

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/yukikurage/blog-api/internal/constants"
)

// FullSearchInput is the advanced search form. Text is matched against the
// enabled content fields, Author against the enabled author targets.
type FullSearchInput struct {
	Text          string `form:"text" json:"text"`
	InTitle       bool   `form:"in_title" json:"in_title"`
	InText        bool   `form:"in_text" json:"in_text"`
	InTags        bool   `form:"in_tags" json:"in_tags"`
	InCommentText bool   `form:"in_comment_text" json:"in_comment_text"`
	Author        string `form:"author" json:"author"`
	InArticles    bool   `form:"in_articles" json:"in_articles"`
	InComments    bool   `form:"in_comments" json:"in_comments"`
}

// IsEmpty reports whether neither text nor author was given.
func (in FullSearchInput) IsEmpty() bool {
	return strings.TrimSpace(in.Text) == "" && strings.TrimSpace(in.Author) == ""
}

// ValidateFullSearch requires at least one content toggle when text is given
// and at least one target toggle when author is given. Both checks apply
// independently.
func ValidateFullSearch(in FullSearchInput) (FullSearchInput, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Author = strings.TrimSpace(in.Author)

	verr := newValidationError("search")
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Text, maxLength(constants.MaxSearchLength)),
		validation.Field(&in.Author, maxLength(constants.MaxAuthorLength)),
	)
	if err := verr.merge(err); err != nil {
		return in, err
	}

	if in.Text != "" && !(in.InTitle || in.InText || in.InTags || in.InCommentText) {
		verr.Add("text", CodeNoSearchTarget, "Select at least one field to search the text in.")
	}
	if in.Author != "" && !(in.InArticles || in.InComments) {
		verr.Add("author", CodeNoSearchTarget, "Select articles, comments or both to search the author in.")
	}

	return in, verr.orNil()
}

type SimpleSearchInput struct {
	Search string `form:"search" json:"search"`
	Tag    string `form:"tag" json:"tag"`
	Page   string `form:"page" json:"page"`
}

// ValidateSimpleSearch checks the list page filter.
func ValidateSimpleSearch(in SimpleSearchInput) (SimpleSearchInput, error) {
	in.Search = strings.TrimSpace(in.Search)
	in.Tag = strings.TrimSpace(in.Tag)

	verr := newValidationError("search")
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Search, maxLength(constants.MaxSearchLength)),
		validation.Field(&in.Tag, maxLength(constants.MaxTagNameLength)),
	)
	if err := verr.merge(err); err != nil {
		return in, err
	}

	return in, verr.orNil()
}
