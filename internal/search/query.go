// Package search turns search forms into article filters.
//
// A Query is a plain value: an AND of groups, each group an OR of clauses.
// An empty group, and therefore an empty Query, matches every article.
// Scope renders the Query for GORM; matches on tags and comments use EXISTS
// sub-queries so that every article appears at most once.
package search

import (
	"strings"

	"github.com/yukikurage/blog-api/internal/validator"
	"gorm.io/gorm"
)

// Field is an attribute of an article, or of its tags or comments, that a
// clause tests.
type Field string

const (
	FieldTitle         Field = "title"
	FieldText          Field = "text"
	FieldAuthor        Field = "author"
	FieldTagName       Field = "tag_name"
	FieldCommentText   Field = "comment_text"
	FieldCommentAuthor Field = "comment_author"
)

// Match selects how a clause compares its value.
type Match string

const (
	// Contains is a case-insensitive substring test.
	Contains Match = "contains"
	// IExact is a case-insensitive equality test.
	IExact Match = "iexact"
	// Exact is a case-sensitive equality test.
	Exact Match = "exact"
)

// Clause is a single predicate.
type Clause struct {
	Field Field
	Match Match
	Value string
}

// Group is a disjunction of clauses.
type Group []Clause

// Query is a conjunction of groups.
type Query struct {
	Groups []Group
}

// IsEmpty reports whether the query matches everything.
func (q Query) IsEmpty() bool {
	for _, g := range q.Groups {
		if len(g) > 0 {
			return false
		}
	}
	return true
}

// And returns a query matching both q and other.
func (q Query) And(other Query) Query {
	groups := make([]Group, 0, len(q.Groups)+len(other.Groups))
	groups = append(groups, q.Groups...)
	groups = append(groups, other.Groups...)
	return Query{Groups: groups}
}

// FromFull builds the query for a validated advanced search form. The text
// group holds one clause per enabled content toggle, the author group one per
// enabled target toggle. An article's author must equal the searched name;
// comment authors only need to contain it. A blank text or author contributes
// no group.
func FromFull(in validator.FullSearchInput) Query {
	var q Query

	if text := strings.TrimSpace(in.Text); text != "" {
		var g Group
		if in.InTitle {
			g = append(g, Clause{Field: FieldTitle, Match: Contains, Value: text})
		}
		if in.InText {
			g = append(g, Clause{Field: FieldText, Match: Contains, Value: text})
		}
		if in.InTags {
			g = append(g, Clause{Field: FieldTagName, Match: IExact, Value: text})
		}
		if in.InCommentText {
			g = append(g, Clause{Field: FieldCommentText, Match: Contains, Value: text})
		}
		q.Groups = append(q.Groups, g)
	}

	if author := strings.TrimSpace(in.Author); author != "" {
		var g Group
		if in.InArticles {
			g = append(g, Clause{Field: FieldAuthor, Match: Exact, Value: author})
		}
		if in.InComments {
			g = append(g, Clause{Field: FieldCommentAuthor, Match: Contains, Value: author})
		}
		q.Groups = append(q.Groups, g)
	}

	return q
}

// FromSimple builds the list page query: title or author containing s, or a
// tag named s.
func FromSimple(s string) Query {
	s = strings.TrimSpace(s)
	if s == "" {
		return Query{}
	}
	return Query{Groups: []Group{{
		{Field: FieldTitle, Match: Contains, Value: s},
		{Field: FieldAuthor, Match: Contains, Value: s},
		{Field: FieldTagName, Match: IExact, Value: s},
	}}}
}

// ForTag matches articles carrying the tag named name.
func ForTag(name string) Query {
	name = strings.TrimSpace(name)
	if name == "" {
		return Query{}
	}
	return Query{Groups: []Group{{
		{Field: FieldTagName, Match: Exact, Value: name},
	}}}
}

// Scope applies q to a query over the articles table.
func (q Query) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, g := range q.Groups {
			if len(g) == 0 {
				continue
			}
			sqls := make([]string, 0, len(g))
			args := make([]interface{}, 0, len(g))
			for _, c := range g {
				sql, arg := c.sql()
				sqls = append(sqls, sql)
				args = append(args, arg)
			}
			db = db.Where("("+strings.Join(sqls, " OR ")+")", args...)
		}
		return db
	}
}

const (
	tagExists = "EXISTS (SELECT 1 FROM article_tags JOIN tags ON tags.id = article_tags.tag_id " +
		"WHERE article_tags.article_id = articles.id AND %s)"
	commentExists = "EXISTS (SELECT 1 FROM comments " +
		"WHERE comments.article_id = articles.id AND %s)"
)

func (c Clause) sql() (string, interface{}) {
	var column, wrapper string
	switch c.Field {
	case FieldTitle:
		column = "articles.title"
	case FieldText:
		column = "articles.text"
	case FieldAuthor:
		column = "articles.author"
	case FieldTagName:
		column, wrapper = "tags.name", tagExists
	case FieldCommentText:
		column, wrapper = "comments.text", commentExists
	case FieldCommentAuthor:
		column, wrapper = "comments.author", commentExists
	}

	var cond string
	var arg interface{}
	switch c.Match {
	case Contains:
		cond = "LOWER(" + column + ") LIKE ? ESCAPE '!'"
		arg = "%" + escapeLike(strings.ToLower(c.Value)) + "%"
	case IExact:
		cond = "LOWER(" + column + ") = ?"
		arg = strings.ToLower(c.Value)
	default:
		cond = column + " = ?"
		arg = c.Value
	}

	if wrapper != "" {
		cond = strings.Replace(wrapper, "%s", cond, 1)
	}
	return cond, arg
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
