// Package sanitize provides HTML sanitization for upstream-provided content.
// The morning report's summary sections arrive as HTML from the data
// provider; bluemonday strips script tags, event handlers, and javascript:
// URLs before any of it reaches a rendered page.
package sanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for third-party HTML.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first
// call. The policy is intentionally tighter than a UGC policy: the provider
// only legitimately sends paragraph-level markup, so that is all we keep.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.NewPolicy()

		// Paragraphs, emphasis, and lists cover everything the morning
		// report's summary sections use.
		policy.AllowElements("p", "br", "strong", "em", "b", "i", "ul", "ol", "li", "blockquote")

		// Links to source releases, forced to safe schemes with rel hardening.
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("http", "https")
		policy.RequireNoFollowOnLinks(true)
	})
	return policy
}

// HTML sanitizes an upstream HTML fragment for safe embedding in a page.
func HTML(fragment string) string {
	return getPolicy().Sanitize(fragment)
}
