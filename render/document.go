package render

import (
	"strings"

	"github.com/tsawler/quizdoc/docx"
	"github.com/tsawler/quizdoc/internal/diag"
)

// Fragments flattens the document into one markup string per non-empty
// block, in document order. A paragraph contributes its trimmed markup, or
// its trimmed plain text when the markup is empty. Blocks with neither are
// skipped. The returned warnings are those recorded during this call.
func (r *Renderer) Fragments() ([]string, []diag.Warning) {
	mark := len(r.warn.Warnings())

	var fragments []string
	para := 0

	for block := range r.doc.Blocks() {
		switch b := block.(type) {
		case *docx.Paragraph:
			out := r.Paragraph(b, para)
			para++
			merged := strings.TrimSpace(out.HTML)
			if merged == "" {
				merged = strings.TrimSpace(out.Text)
			}
			if merged != "" {
				fragments = append(fragments, merged)
			}
		case *docx.Table:
			markup, n := r.Table(b, para)
			para += n
			if markup = strings.TrimSpace(markup); markup != "" {
				fragments = append(fragments, markup)
			}
		}
	}

	return fragments, r.since(mark)
}

// HTML renders the whole document. Paragraphs are wrapped in their
// classified tag, consecutive list items of the same list are grouped into
// one <ul> or <ol>, and blocks are joined by newlines.
func (r *Renderer) HTML() (string, []diag.Warning) {
	mark := len(r.warn.Warnings())

	var (
		parts []string
		lists []*ListInfo
		para  int
	)

	closeLists := func() {
		for len(lists) > 0 {
			parts = append(parts, "</"+lists[len(lists)-1].Type+">")
			lists = lists[:len(lists)-1]
		}
	}

	for block := range r.doc.Blocks() {
		switch b := block.(type) {
		case *docx.Paragraph:
			out := r.Paragraph(b, para)
			para++
			if out.empty() {
				continue
			}

			c := Classify(r.doc, b)
			if c.List == nil {
				closeLists()
				parts = append(parts, "<"+c.Tag+alignAttr(c.Alignment)+">"+out.HTML+"</"+c.Tag+">")
				continue
			}

			if n := len(lists); n == 0 || lists[n-1].Type != c.List.Type || lists[n-1].NumID != c.List.NumID {
				closeLists()
				parts = append(parts, "<"+c.List.Type+">")
				lists = append(lists, c.List)
			}
			parts = append(parts, "<li"+alignAttr(c.Alignment)+">"+out.HTML+"</li>")

		case *docx.Table:
			closeLists()
			markup, n := r.Table(b, para)
			para += n
			if markup != "" {
				parts = append(parts, markup)
			}
		}
	}
	closeLists()

	return strings.Join(parts, "\n"), r.since(mark)
}

// since returns the warnings recorded after the first mark warnings.
func (r *Renderer) since(mark int) []diag.Warning {
	all := r.warn.Warnings()
	if len(all) <= mark {
		return nil
	}
	return append([]diag.Warning(nil), all[mark:]...)
}
