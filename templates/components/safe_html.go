package components

import (
	"context"
	"io"
	"sync"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicy     *bluemonday.Policy
	richTextPolicyOnce sync.Once
)

// policy allows the inline formatting used in content copy (strong, em,
// links) and strips everything else.
func policy() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowElements("strong", "em", "b", "i", "br", "span")
		p.AllowAttrs("href").OnElements("a")
		p.AllowStandardURLs()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		richTextPolicy = p
	})
	return richTextPolicy
}

// Sanitize strips markup outside the rich text policy.
func Sanitize(s string) string {
	return policy().Sanitize(s)
}

// SafeHTML renders content-provided rich text after sanitizing it.
func SafeHTML(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Sanitize(s))
		return err
	})
}
