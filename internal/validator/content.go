package validator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/yukikurage/blog-api/internal/constants"
	"github.com/yukikurage/blog-api/internal/utils"
)

// CategoryLookup answers the existence checks needed by content forms.
type CategoryLookup interface {
	CategoryExists(ctx context.Context, id uint64) (bool, error)
	CategoryNameExists(ctx context.Context, name string) (bool, error)
}

// ArticleLookup answers whether an article exists.
type ArticleLookup interface {
	ArticleExists(ctx context.Context, id uint64) (bool, error)
}

type ArticleInput struct {
	Title      string `form:"title" json:"title"`
	Text       string `form:"text" json:"text"`
	Author     string `form:"author" json:"author"`
	CategoryID string `form:"category_id" json:"category_id"`
	Tags       string `form:"tags" json:"tags"`
}

// ArticleFields are the normalized values of a valid article form.
type ArticleFields struct {
	Title      string
	Text       string
	Author     string
	CategoryID *uint64
	Tags       []string
}

// ValidateArticle checks an article form. The title must be longer than
// constants.MinTitleLength characters and differ from the text ignoring case
// and surrounding whitespace. The returned title is capitalized; the text is
// kept as submitted.
func ValidateArticle(ctx context.Context, in ArticleInput, categories CategoryLookup) (ArticleFields, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.CategoryID = strings.TrimSpace(in.CategoryID)

	verr := newValidationError("article")
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, required, maxLength(constants.MaxTitleLength)),
		validation.Field(&in.Text, required, maxLength(constants.MaxTextLength)),
		validation.Field(&in.Author, required, maxLength(constants.MaxAuthorLength)),
		validation.Field(&in.Tags, maxLength(constants.MaxTagsFieldLength)),
	)
	if err := verr.merge(err); err != nil {
		return ArticleFields{}, err
	}

	if !verr.HasField("title") && utils.RuneLen(in.Title) <= constants.MinTitleLength {
		verr.Add("title", CodeTitleTooShort,
			fmt.Sprintf("Title must be longer than %d characters.", constants.MinTitleLength))
	}

	if in.Title != "" && utils.Normalize(in.Title) == utils.Normalize(in.Text) {
		verr.Add("text", CodeDuplicateTitleText, "Title and text must differ.")
	}

	tags := ParseTags(in.Tags)
	for _, tag := range tags {
		if utils.RuneLen(tag) > constants.MaxTagNameLength {
			verr.Add("tags", CodeTooLong,
				fmt.Sprintf("Each tag must have at most %d characters.", constants.MaxTagNameLength))
			break
		}
	}

	categoryID, err := validateCategoryRef(ctx, in.CategoryID, categories, verr)
	if err != nil {
		return ArticleFields{}, err
	}

	if err := verr.orNil(); err != nil {
		return ArticleFields{}, err
	}

	return ArticleFields{
		Title:      utils.Capitalize(in.Title),
		Text:       in.Text,
		Author:     in.Author,
		CategoryID: categoryID,
		Tags:       tags,
	}, nil
}

func validateCategoryRef(ctx context.Context, raw string, categories CategoryLookup, verr *ValidationError) (*uint64, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		verr.Add("category_id", CodeInvalidChoice, "Select a valid category.")
		return nil, nil
	}

	exists, err := categories.CategoryExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		verr.Add("category_id", CodeInvalidChoice, "Select a valid category.")
		return nil, nil
	}

	return &id, nil
}

// ParseTags splits a comma-separated tag string. Names are trimmed, empty
// names dropped and duplicates removed keeping the first occurrence.
func ParseTags(raw string) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, token := range strings.Split(raw, ",") {
		name := strings.TrimSpace(token)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}
	return tags
}

type CommentInput struct {
	Author    string `form:"author" json:"author"`
	Text      string `form:"text" json:"text"`
	ArticleID string `form:"article_id" json:"article_id"`
}

// CommentFields are the normalized values of a valid comment form.
type CommentFields struct {
	Author    string
	Text      string
	ArticleID uint64
}

// ValidateComment checks a comment posted against a known article.
func ValidateComment(in CommentInput) (CommentFields, error) {
	verr := newValidationError("comment")
	fields, err := validateCommentBody(in, verr)
	if err != nil {
		return CommentFields{}, err
	}
	if err := verr.orNil(); err != nil {
		return CommentFields{}, err
	}
	return fields, nil
}

// ValidateStandaloneComment checks a comment form that names its article.
func ValidateStandaloneComment(ctx context.Context, in CommentInput, articles ArticleLookup) (CommentFields, error) {
	verr := newValidationError("comment")
	fields, err := validateCommentBody(in, verr)
	if err != nil {
		return CommentFields{}, err
	}

	raw := strings.TrimSpace(in.ArticleID)
	if raw == "" {
		verr.Add("article_id", CodeRequired, "This field is required.")
	} else if id, perr := strconv.ParseUint(raw, 10, 64); perr != nil {
		verr.Add("article_id", CodeInvalidChoice, "Select a valid article.")
	} else {
		exists, err := articles.ArticleExists(ctx, id)
		if err != nil {
			return CommentFields{}, fmt.Errorf("failed to check article: %w", err)
		}
		if !exists {
			verr.Add("article_id", CodeInvalidChoice, "Select a valid article.")
		}
		fields.ArticleID = id
	}

	if err := verr.orNil(); err != nil {
		return CommentFields{}, err
	}
	return fields, nil
}

func validateCommentBody(in CommentInput, verr *ValidationError) (CommentFields, error) {
	in.Author = strings.TrimSpace(in.Author)
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Author, required, maxLength(constants.MaxAuthorLength)),
		validation.Field(&in.Text, required, maxLength(constants.MaxCommentTextLength)),
	)
	if err := verr.merge(err); err != nil {
		return CommentFields{}, err
	}
	return CommentFields{
		Author: in.Author,
		Text:   in.Text,
	}, nil
}

type CategoryInput struct {
	Name string `form:"name" json:"name"`
}

// ValidateCategory checks a new category name.
func ValidateCategory(ctx context.Context, in CategoryInput, categories CategoryLookup) (CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)

	verr := newValidationError("category")
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, required, maxLength(constants.MaxCategoryNameLength)),
	)
	if err := verr.merge(err); err != nil {
		return in, err
	}

	if !verr.HasField("name") {
		taken, err := categories.CategoryNameExists(ctx, in.Name)
		if err != nil {
			return in, fmt.Errorf("failed to check category name: %w", err)
		}
		if taken {
			verr.Add("name", CodeDuplicateName, "Category with this name already exists.")
		}
	}

	return in, verr.orNil()
}
