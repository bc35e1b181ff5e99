package export

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/tsawler/quizdoc/quiz"
)

// dataImagePrefix matches the media type of a base64 image data URI. The
// renderer embeds every image part under its own type, including BMP, TIFF
// and the EMF/WMF previews of embedded objects.
var dataImagePrefix = regexp.MustCompile(`^image/[a-z0-9][a-z0-9.+-]*;base64,`)

// isDataImage reports whether u is a well-formed base64 image data URI.
func isDataImage(u *url.URL) bool {
	if u.RawQuery != "" || u.Fragment != "" {
		return false
	}
	prefix := dataImagePrefix.FindString(strings.ToLower(u.Opaque))
	if prefix == "" {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(u.Opaque[len(prefix):])
	return err == nil
}

// Sanitizer strips unsafe markup from rendered document HTML while keeping
// the inline formatting, images, links and tables the renderer emits.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a Sanitizer for renderer output.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowURLSchemeWithCustomPolicy("data", isDataImage)
	p.AllowAttrs("style").Matching(regexp.MustCompile(`^[a-zA-Z0-9:;#%.,\-\s]*$`)).OnElements("span", "img", "p", "li", "h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^(page-break|note-ref|drawing-textbox|textbox-paragraph)$`)).OnElements("hr", "sup", "div")
	p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("td")
	p.AllowElements("div", "span", "hr", "sup", "sub", "figcaption")
	return &Sanitizer{policy: p}
}

// HTML sanitizes a markup string.
func (s *Sanitizer) HTML(markup string) string {
	return s.policy.Sanitize(markup)
}

// Question returns a copy of q with every markup field sanitized. Image
// references are kept only when they survive as an img src.
func (s *Sanitizer) Question(q quiz.Question) quiz.Question {
	imageOnly := q.Content != "" && q.Content == q.ContentImage

	q.ContentImage = s.image(q.ContentImage)
	if imageOnly {
		q.Content = q.ContentImage
	} else {
		q.Content = s.HTML(q.Content)
	}
	if strings.TrimSpace(q.Content) == "" {
		q.Content = q.ContentImage
	}

	q.OptionA, q.OptionAImage = s.HTML(q.OptionA), s.image(q.OptionAImage)
	q.OptionB, q.OptionBImage = s.HTML(q.OptionB), s.image(q.OptionBImage)
	q.OptionC, q.OptionCImage = s.HTML(q.OptionC), s.image(q.OptionCImage)
	q.OptionD, q.OptionDImage = s.HTML(q.OptionD), s.image(q.OptionDImage)
	q.Explanation, q.ExplanationImage = s.HTML(q.Explanation), s.image(q.ExplanationImage)

	return q
}

// Questions sanitizes every question. A question whose content text and
// image are both removed is dropped; the returned indexes identify the
// dropped input questions.
func (s *Sanitizer) Questions(questions []quiz.Question) (kept []quiz.Question, dropped []int) {
	kept = make([]quiz.Question, 0, len(questions))
	for i, q := range questions {
		q = s.Question(q)
		if strings.TrimSpace(q.Content) == "" && q.ContentImage == "" {
			dropped = append(dropped, i)
			continue
		}
		kept = append(kept, q)
	}
	return kept, dropped
}

// image returns src when it is a base64 image data URI or a reference the
// policy accepts as an image source.
func (s *Sanitizer) image(src string) string {
	if src == "" {
		return ""
	}
	if strings.HasPrefix(src, "data:") {
		if u, err := url.Parse(src); err == nil && isDataImage(u) {
			return src
		}
		return ""
	}
	tag := `<img src="` + html.EscapeString(src) + `">`
	if s.policy.Sanitize(tag) == tag {
		return src
	}
	return ""
}
