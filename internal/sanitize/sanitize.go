// Package sanitize makes fetched murli markup safe to render.
package sanitize

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips everything outside an allow-list of formatting tags and
// attributes from untrusted HTML.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func New() *Sanitizer {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\- ]+$`)).Globally()
	p.AllowAttrs("align").Matching(regexp.MustCompile(`^(left|right|center|justify)$`)).OnElements("p", "div", "td", "th", "h1", "h2", "h3", "h4")
	p.AllowElements("center", "font")
	p.AllowAttrs("color").Matching(regexp.MustCompile(`^#?[\w]+$`)).OnElements("font")

	p.AllowURLSchemes("http", "https")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{policy: p}
}

func (s *Sanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
