package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"

	"github.com/tsawler/quizdoc/quiz"
)

// newMarkdownConverter returns a converter with table support. Converters
// are not shared between calls.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
}

// WriteMarkdown writes questions as a Markdown quiz sheet. Each question
// becomes a section with its choices, answer key, explanation and tags.
func WriteMarkdown(w io.Writer, questions []quiz.Question) error {
	md, err := MarkdownString(questions)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, md); err != nil {
		return fmt.Errorf("export: writing markdown: %w", err)
	}
	return nil
}

// MarkdownString renders questions as a Markdown quiz sheet.
func MarkdownString(questions []quiz.Question) (string, error) {
	conv := newMarkdownConverter()

	var sb strings.Builder
	for i, q := range questions {
		md, err := conv.ConvertString(QuestionHTML(i+1, q))
		if err != nil {
			return "", fmt.Errorf("export: converting question %d: %w", i+1, err)
		}
		if i > 0 {
			sb.WriteString("\n\n---\n\n")
		}
		sb.WriteString(strings.TrimSpace(md))
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// QuestionHTML renders one question as an HTML section. Field markup is
// inserted as is; tags and the answer key are escaped.
func QuestionHTML(n int, q quiz.Question) string {
	var sb strings.Builder

	sb.WriteString("<section><h2>Question " + strconv.Itoa(n) + "</h2>")
	field(&sb, q.Content, q.ContentImage, q.Content == q.ContentImage)

	if q.HasOptions() {
		sb.WriteString("<ul>")
		for _, o := range q.Options() {
			sb.WriteString("<li><strong>" + o.Label + ".</strong> ")
			sb.WriteString(o.Text)
			if o.Image != "" {
				sb.WriteString(` <img src="` + html.EscapeString(o.Image) + `" alt="Option ` + o.Label + `"/>`)
			}
			sb.WriteString("</li>")
		}
		sb.WriteString("</ul>")
	}

	if len(q.Answers) > 0 {
		sb.WriteString("<p><strong>Answer:</strong> " + html.EscapeString(strings.Join(q.Answers, ", ")) + "</p>")
	}

	if q.Explanation != "" || q.ExplanationImage != "" {
		sb.WriteString("<p><strong>Explanation:</strong></p>")
		field(&sb, q.Explanation, q.ExplanationImage, false)
	}

	if len(q.Tags) > 0 {
		escaped := make([]string, len(q.Tags))
		for i, tag := range q.Tags {
			escaped[i] = "<code>" + html.EscapeString(tag) + "</code>"
		}
		sb.WriteString("<p><em>Tags:</em> " + strings.Join(escaped, " ") + "</p>")
	}

	sb.WriteString("</section>")
	return sb.String()
}

// field writes a text block and its image. Text lines become paragraphs.
func field(sb *strings.Builder, text, image string, imageOnly bool) {
	if !imageOnly {
		for line := range strings.Lines(text) {
			if line = strings.TrimSpace(line); line != "" {
				sb.WriteString("<p>" + line + "</p>")
			}
		}
	}
	if image != "" {
		sb.WriteString(`<p><img src="` + html.EscapeString(image) + `" alt="image"/></p>`)
	}
}
