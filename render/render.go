// Package render turns a parsed DOCX document into HTML with inline LaTeX.
//
// Every paragraph is rendered into two parallel outputs: markup (styled
// inline HTML, images, links and $latex$ equations) and plain text (used to
// match question delimiters). Tables are rendered cell by cell into an HTML
// table. Fragments flattens the document into one markup string per
// non-empty block; HTML renders the whole document with headings and
// lists.
//
// Basic usage:
//
//	r, err := render.New(doc, render.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fragments, warnings := r.Fragments()
//
// A Renderer is not safe for concurrent use. Distinct renderers may run in
// parallel as long as they write images to distinct directories.
package render

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/quizdoc/docx"
	"github.com/tsawler/quizdoc/internal/diag"
	"github.com/tsawler/quizdoc/omml"
)

// Output is the rendered form of a paragraph, run or table.
type Output struct {
	HTML string
	Text string
}

func (o Output) empty() bool {
	return strings.TrimSpace(o.HTML) == "" && strings.TrimSpace(o.Text) == ""
}

// Position locates the run being rendered. Images counts the images
// extracted so far in that run and drives file naming.
//
// When Images is nil every run gets its own counter and Run advances after
// each run. Text box content is rendered with the enclosing run's Position
// (Images set), so it shares the enclosing paragraph, run and counter and
// image names never collide.
type Position struct {
	Para   int
	Run    int
	Images *int
}

// forRun returns the position used to render the current run.
func (p Position) forRun() Position {
	if p.Images != nil {
		return p
	}
	n := 0
	p.Images = &n
	return p
}

// advance moves to the next run.
func (p *Position) advance() {
	if p.Images == nil {
		p.Run++
	}
}

// Renderer renders the blocks of one document.
type Renderer struct {
	doc  *docx.Document
	opts Options
	log  *slog.Logger
	warn *diag.Collector
}

// New creates a Renderer for doc.
func New(doc *docx.Document, opts Options) (*Renderer, error) {
	if err := opts.Images.Validate(); err != nil {
		return nil, err
	}
	opts.defaults()

	return &Renderer{
		doc:  doc,
		opts: opts,
		log:  opts.Logger,
		warn: &diag.Collector{},
	}, nil
}

// Warnings returns every warning recorded since the renderer was created.
func (r *Renderer) Warnings() []diag.Warning {
	return r.warn.Warnings()
}

// Paragraph renders a paragraph. para is its position in document order
// and is used for image naming.
func (r *Renderer) Paragraph(p *docx.Paragraph, para int) Output {
	pos := Position{Para: para}
	return r.inlines(p.Inlines, &pos)
}

// inlines renders paragraph content, advancing pos past every run.
func (r *Renderer) inlines(items []docx.Inline, pos *Position) Output {
	var markup, text strings.Builder

	for _, item := range items {
		var out Output
		switch v := item.(type) {
		case *docx.Run:
			out = r.run(v, pos.forRun())
			pos.advance()
		case *docx.Hyperlink:
			out = r.hyperlink(v, pos)
		case *docx.Math:
			out = inlineMath(v)
		case *docx.MathPara:
			out = displayMath(v)
		}
		markup.WriteString(out.HTML)
		text.WriteString(out.Text)
	}

	return Output{HTML: markup.String(), Text: text.String()}
}

// run renders one run and wraps it in its formatting.
func (r *Renderer) run(run *docx.Run, pos Position) Output {
	var markup, text strings.Builder

	for _, c := range run.Content {
		switch v := c.(type) {
		case docx.Text:
			markup.WriteString(html.EscapeString(v.Value))
			text.WriteString(v.Value)
		case docx.Tab:
			markup.WriteString("&emsp;")
			text.WriteString("\t")
		case docx.Break:
			if v.Page {
				markup.WriteString(`<hr class="page-break" />`)
			} else {
				markup.WriteString("<br/>")
			}
			text.WriteString("\n")
		case docx.Symbol:
			if v.Char == "" {
				continue
			}
			sym := symbol(v.Char)
			markup.WriteString(html.EscapeString(sym))
			text.WriteString(sym)
		case *docx.Drawing:
			out := r.drawing(v, pos)
			markup.WriteString(out.HTML)
			text.WriteString(out.Text)
		case docx.NoteRef:
			fmt.Fprintf(&markup, `<sup class="note-ref">[%s]</sup>`, html.EscapeString(v.ID))
			fmt.Fprintf(&text, "[%s]", v.ID)
		case docx.InstrText:
			markup.WriteString(html.EscapeString(v.Value))
			text.WriteString(v.Value)
		case *docx.Math:
			out := inlineMath(v)
			markup.WriteString(out.HTML)
			text.WriteString(out.Text)
		}
	}

	return formatRun(run.Format, Output{HTML: markup.String(), Text: text.String()})
}

// formatRun applies run formatting to rendered run content. The style span
// is added only around non-empty markup; superscript and subscript wrap
// everything the run produced.
func formatRun(f docx.RunFormat, out Output) Output {
	if out.HTML == "" {
		return out
	}

	var styles []string
	if f.Bold {
		styles = append(styles, "font-weight:bold")
	}
	if f.Italic {
		styles = append(styles, "font-style:italic")
	}
	switch {
	case f.Underline && f.Strike:
		styles = append(styles, "text-decoration:underline line-through")
	case f.Underline:
		styles = append(styles, "text-decoration:underline")
	case f.Strike:
		styles = append(styles, "text-decoration:line-through")
	}
	if f.Color != "" {
		color := f.Color
		if !strings.HasPrefix(color, "#") {
			color = "#" + color
		}
		styles = append(styles, "color:"+color)
	}
	if f.Highlight != "" {
		styles = append(styles, "background-color:"+highlightColor(f.Highlight))
	}

	if len(styles) > 0 {
		out.HTML = `<span style="` + html.EscapeString(strings.Join(styles, ";")) + `">` + out.HTML + `</span>`
	}

	switch f.VertAlign {
	case docx.VertSuperscript:
		out.HTML = "<sup>" + out.HTML + "</sup>"
		out.Text = "^" + out.Text
	case docx.VertSubscript:
		out.HTML = "<sub>" + out.HTML + "</sub>"
		out.Text = "_" + out.Text
	}

	return out
}

// hyperlink renders a hyperlink. The link markup is added only when a
// target exists; otherwise the content is returned as is.
func (r *Renderer) hyperlink(h *docx.Hyperlink, pos *Position) Output {
	var href string
	if h.RelID != "" {
		if rel, ok := r.doc.Relationship(h.RelID); ok {
			href = rel.Target
		}
	}

	out := r.inlines(h.Inlines, pos)

	if h.Anchor != "" {
		switch {
		case href == "":
			href = "#" + h.Anchor
		case !strings.HasSuffix(href, "#"+h.Anchor):
			href += "#" + h.Anchor
		}
	}

	if href != "" {
		var title string
		if h.Tooltip != "" {
			title = ` title="` + html.EscapeString(h.Tooltip) + `"`
		}
		out.HTML = `<a href="` + html.EscapeString(href) + `"` + title + `>` + out.HTML + `</a>`
	}

	return out
}

// inlineMath renders an inline equation as $latex$ in both outputs.
func inlineMath(m *docx.Math) Output {
	s := "$" + omml.ToLaTeX(m.Root) + "$"
	return Output{HTML: s, Text: s}
}

// displayMath renders each equation of a display block as $$ latex $$.
func displayMath(mp *docx.MathPara) Output {
	parts := make([]string, 0, len(mp.Maths))
	for _, m := range mp.Maths {
		parts = append(parts, "$$ "+omml.ToLaTeX(m.Root)+" $$")
	}
	return Output{HTML: strings.Join(parts, ""), Text: strings.Join(parts, " ")}
}

// symbol resolves a w:sym hexadecimal code point. Unparseable codes are
// returned unchanged.
func symbol(char string) string {
	cp, err := strconv.ParseUint(char, 16, 32)
	if err != nil || cp > 0x10FFFF {
		return char
	}
	return string(rune(cp))
}

var highlightColors = map[string]string{
	"black":       "#000000",
	"blue":        "#0000ff",
	"cyan":        "#00ffff",
	"darkblue":    "#00008b",
	"darkcyan":    "#008b8b",
	"darkgray":    "#a9a9a9",
	"darkgreen":   "#006400",
	"darkmagenta": "#8b008b",
	"darkred":     "#8b0000",
	"darkyellow":  "#b5a642",
	"green":       "#008000",
	"lightgray":   "#d3d3d3",
	"magenta":     "#ff00ff",
	"red":         "#ff0000",
	"white":       "#ffffff",
	"yellow":      "#ffff00",
}

// highlightColor resolves a highlight name to a CSS color. Bare hex values
// get a leading '#'; anything else is passed through.
func highlightColor(name string) string {
	if c, ok := highlightColors[strings.ToLower(name)]; ok {
		return c
	}
	if strings.HasPrefix(name, "#") {
		return name
	}
	if (len(name) == 3 || len(name) == 6) && isHex(name) {
		return "#" + name
	}
	return name
}

func isHex(s string) bool {
	for _, c := range s {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
