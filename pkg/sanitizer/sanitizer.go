// Package sanitizer scrubs translation values before they enter the
// catalog. Translations come from UI forms and bulk imports, both of
// which may carry pasted markup; policies here either strip it entirely
// or reduce it to harmless inline formatting.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	plainPolicy  *bluemonday.Policy
	inlinePolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()

		// Translations legitimately carry light inline markup (a bolded
		// word, a help link); block elements and scripts never belong in
		// a translation value.
		inlinePolicy = bluemonday.NewPolicy()
		inlinePolicy.AllowStandardURLs()
		inlinePolicy.AllowElements("b", "strong", "i", "em", "u", "span", "br", "code")
		inlinePolicy.AllowAttrs("href").OnElements("a")
		inlinePolicy.RequireNoFollowOnLinks(true)
	})
}

// Plain strips all markup, leaving text content only.
func Plain(s string) string {
	initPolicies()
	return plainPolicy.Sanitize(s)
}

// Inline keeps harmless inline formatting and links, stripping scripts,
// event handlers, block elements and javascript: URLs.
func Inline(s string) string {
	initPolicies()
	return inlinePolicy.Sanitize(s)
}
