package render

import (
	"strconv"
	"strings"

	"github.com/tsawler/quizdoc/docx"
)

// Table renders a table starting at document paragraph index startPara and
// returns its markup and the number of paragraphs it contains. A table
// without content in any cell renders as "".
//
// Horizontally merged cells become colspan and vertical merges become
// rowspan on the origin cell. Continuation cells are not emitted, but their
// paragraphs still count toward the paragraph index.
func (r *Renderer) Table(t *docx.Table, startPara int) (string, int) {
	var sb strings.Builder
	consumed := 0
	content := false

	sb.WriteString("<table>")
	for _, row := range t.Layout() {
		sb.WriteString("<tr>")
		for _, cl := range row {
			if cl.Continuation {
				consumed += countParagraphs(cl.Cell.Content)
				continue
			}

			var cell strings.Builder
			for _, block := range cl.Cell.Content {
				switch b := block.(type) {
				case *docx.Paragraph:
					out := r.Paragraph(b, startPara+consumed)
					consumed++
					if out.empty() {
						continue
					}
					cell.WriteString(r.cellParagraph(b, out.HTML))
				case *docx.Table:
					nested, n := r.Table(b, startPara+consumed)
					consumed += n
					cell.WriteString(nested)
				}
			}
			if cell.Len() > 0 {
				content = true
			}

			sb.WriteString("<td")
			if cl.ColSpan > 1 {
				sb.WriteString(` colspan="` + strconv.Itoa(cl.ColSpan) + `"`)
			}
			if cl.RowSpan > 1 {
				sb.WriteString(` rowspan="` + strconv.Itoa(cl.RowSpan) + `"`)
			}
			sb.WriteString(">")
			sb.WriteString(cell.String())
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table>")

	if !content {
		return "", consumed
	}
	return sb.String(), consumed
}

// cellParagraph wraps a rendered cell paragraph in its list or block tag.
func (r *Renderer) cellParagraph(p *docx.Paragraph, markup string) string {
	c := Classify(r.doc, p)
	attrs := alignAttr(c.Alignment)
	if c.List != nil {
		return "<" + c.List.Type + "><li" + attrs + ">" + markup + "</li></" + c.List.Type + ">"
	}
	return "<" + c.Tag + attrs + ">" + markup + "</" + c.Tag + ">"
}

// countParagraphs counts paragraphs in blocks, including nested tables.
func countParagraphs(blocks []docx.Block) int {
	n := 0
	for _, block := range blocks {
		switch b := block.(type) {
		case *docx.Paragraph:
			n++
		case *docx.Table:
			for _, row := range b.Rows {
				for _, cell := range row.Cells {
					n += countParagraphs(cell.Content)
				}
			}
		}
	}
	return n
}

func alignAttr(alignment string) string {
	if alignment == "" {
		return ""
	}
	return ` style="text-align:` + alignment + `;"`
}
