package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text strips all markup from s, decodes entities and collapses whitespace.
func Text(s string) string {
	cleaned := html.UnescapeString(policy.Sanitize(s))
	return strings.Join(strings.Fields(cleaned), " ")
}
