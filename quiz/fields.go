package quiz

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// markerTags are the inline tags a delimiter may be wrapped in.
var markerTags = map[string]bool{
	"span": true, "b": true, "strong": true, "i": true, "em": true, "u": true,
	"s": true, "strike": true, "font": true, "mark": true, "sup": true, "sub": true,
}

// asciiSpace is the whitespace allowed around a marker. Decoded entities
// such as &nbsp; or &emsp; are content, not padding.
const asciiSpace = " \t\r\n\f\v"

// isMarker reports whether fragment consists of token alone, optionally
// wrapped in one inline tag. Matching ignores case and surrounding ASCII
// space.
func isMarker(fragment, token string) bool {
	z := html.NewTokenizer(strings.NewReader(strings.Trim(fragment, asciiSpace)))

	var open, text string
	seenText, closed := false, false

	for {
		switch z.Next() {
		case html.ErrorToken:
			return seenText && strings.EqualFold(strings.Trim(text, asciiSpace), token)

		case html.StartTagToken:
			name, _ := z.TagName()
			if seenText || open != "" || !markerTags[string(name)] {
				return false
			}
			open = string(name)

		case html.EndTagToken:
			name, _ := z.TagName()
			if closed || !markerTags[string(name)] || (open != "" && string(name) != open) {
				return false
			}
			closed = true

		case html.TextToken:
			if closed {
				if strings.Trim(string(z.Text()), asciiSpace) != "" {
					return false
				}
				continue
			}
			text += string(z.Text())
			seenText = true

		default:
			return false
		}
	}
}

// splitTextAndImage separates a block into its text and the src of its first
// image. Blank lines are dropped and the remaining lines are trimmed. With
// keepExtra set, images after the first stay in the text.
func splitTextAndImage(block string, keepExtra bool) (text, image string) {
	var lines []string
	found := false

	for line := range strings.Lines(block) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var sb strings.Builder
		z := html.NewTokenizer(strings.NewReader(line))
		for {
			tt := z.Next()
			if tt == html.ErrorToken {
				break
			}
			raw := string(z.Raw())

			if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
				name, hasAttr := z.TagName()
				if string(name) == "img" {
					if !found {
						found = true
						image = imageSource(z, hasAttr)
						continue
					}
					if !keepExtra {
						continue
					}
				}
			}
			sb.WriteString(raw)
		}

		if s := strings.TrimSpace(sb.String()); s != "" {
			lines = append(lines, s)
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), image
}

// imageSource returns the src attribute of the current img tag.
func imageSource(z *html.Tokenizer, hasAttr bool) string {
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "src" {
			return string(val)
		}
	}
	return ""
}

// plainText returns the text content of a markup block with tags removed
// and entities decoded. <br> tags become newlines.
func plainText(block string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(block))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				sb.WriteByte('\n')
			}
		}
	}
}

// parseAnswers splits an answer block into upper-case tokens. Fullwidth
// letters are folded to their ASCII forms.
func parseAnswers(block string) []string {
	s := width.Fold.String(norm.NFKC.String(plainText(block)))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '，' || r == '、'
	})

	upper := cases.Upper(language.Und)
	answers := make([]string, 0, len(fields))
	for _, f := range fields {
		answers = append(answers, upper.String(f))
	}
	return answers
}

// parseTags splits a tag block on newlines and commas.
func parseTags(block string) []string {
	s := norm.NFC.String(plainText(block))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == '，' || r == '、'
	})

	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tags = append(tags, f)
		}
	}
	return tags
}
