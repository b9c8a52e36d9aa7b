package dto

import "github.com/microcosm-cc/bluemonday"

var ugcPolicy = bluemonday.UGCPolicy()

// RenderHTML returns text as an HTML fragment safe to embed in a page.
// Stored text is never altered; only the rendered copy is sanitized.
func RenderHTML(text string) string {
	return ugcPolicy.Sanitize(text)
}
