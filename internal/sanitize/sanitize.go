// internal/sanitize/sanitize.go
//
// Input sanitizer for user-submitted text.
//
// Context
// -------
// Record bodies are rich text: they keep safe markup (paragraphs, links,
// emphasis) and lose scripts, event handlers, and javascript: URLs.  Every
// other field is plain text and loses all markup.  Sanitizing never fails;
// hostile input shrinks instead of being rejected.
//
// Notes
// -----
//   - bluemonday policies are safe for concurrent use once built, so one
//     Sanitizer is shared by all requests.
//   - The strict policy HTML-escapes its output.  Plain fields are stored
//     unescaped because html/template escapes them again at render time,
//     which is why Text repeats the strip after decoding.
package sanitize

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/yanizio/folio/internal/record"
)

// Sanitizer holds the two policies.
type Sanitizer struct {
	rich   *bluemonday.Policy
	strict *bluemonday.Policy
}

// New builds a Sanitizer.
func New() *Sanitizer {
	rich := bluemonday.UGCPolicy()
	rich.RequireNoFollowOnLinks(true)
	return &Sanitizer{rich: rich, strict: bluemonday.StrictPolicy()}
}

// Body cleans rich text.
func (s *Sanitizer) Body(in string) string {
	return s.rich.Sanitize(in)
}

// maxTextPasses bounds how many layers of entity encoding Text peels.
const maxTextPasses = 4

// Text strips every tag and returns plain text.  Entities are decoded
// after stripping, so the result is stripped again until it stops
// changing; encoded markup such as &lt;script&gt; cannot come back as a
// live tag.  Input still changing after maxTextPasses is returned in its
// escaped form.
func (s *Sanitizer) Text(in string) string {
	cur := in
	for i := 0; i < maxTextPasses; i++ {
		next := html.UnescapeString(s.strict.Sanitize(cur))
		if next == cur {
			return strings.TrimSpace(next)
		}
		cur = next
	}
	return strings.TrimSpace(s.strict.Sanitize(cur))
}

// Patch returns a cleaned copy of p.  The body key gets the rich policy,
// everything else the strict one.
func (s *Sanitizer) Patch(p record.Patch) record.Patch {
	out := make(record.Patch, len(p))
	for k, v := range p {
		if k == record.FieldBody {
			out[k] = s.Body(v)
			continue
		}
		out[k] = s.Text(v)
	}
	return out
}

// Excerpt returns the first n runes of the body's plain text.
func (s *Sanitizer) Excerpt(body string, n int) string {
	txt := s.Text(body)
	if utf8.RuneCountInString(txt) <= n {
		return txt
	}
	r := []rune(txt)
	return string(r[:n]) + "..."
}
