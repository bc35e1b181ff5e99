package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/quizdoc/omml"
)

// parser builds the document tree from word/document.xml. It reads the
// token stream directly because struct-tag unmarshaling loses the
// interleaving of runs, hyperlinks and equations.
type parser struct {
	d *xml.Decoder
}

// parseBody parses document.xml and returns the body blocks.
func parseBody(data []byte) ([]Block, error) {
	p := &parser{d: xml.NewDecoder(bytes.NewReader(data))}

	for {
		tok, err := p.d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("document has no body")
			}
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "body" {
			return p.blocks(start, nil)
		}
	}
}

// token returns the next token, turning a premature end of input into an
// error.
func (p *parser) token() (xml.Token, error) {
	tok, err := p.d.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

// blocks reads block-level content until the end of start. When cell is
// not nil the cell properties are read into it.
func (p *parser) blocks(start xml.StartElement, cell *Cell) ([]Block, error) {
	var out []Block

	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				para, err := p.paragraph(t)
				if err != nil {
					return nil, err
				}
				out = append(out, para)
			case "tbl":
				tbl, err := p.table(t)
				if err != nil {
					return nil, err
				}
				out = append(out, tbl)
			case "tcPr":
				if cell == nil {
					if err := p.d.Skip(); err != nil {
						return nil, err
					}
					continue
				}
				var props cellPropsXML
				if err := p.d.DecodeElement(&props, &t); err != nil {
					return nil, err
				}
				applyCellProps(cell, props)
			case "sdt", "sdtContent", "customXml", "ins", "moveTo":
				nested, err := p.blocks(t, nil)
				if err != nil {
					return nil, err
				}
				out = append(out, nested...)
			case "AlternateContent":
				nested, err := alternate(p, t, func(b xml.StartElement) ([]Block, error) {
					return p.blocks(b, nil)
				})
				if err != nil {
					return nil, err
				}
				out = append(out, nested...)
			default:
				if err := p.d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return out, nil
		}
	}
}

// paragraph reads a w:p element.
func (p *parser) paragraph(start xml.StartElement) (*Paragraph, error) {
	para := &Paragraph{NumLevel: -1}
	inlines, err := p.inlines(start, para)
	if err != nil {
		return nil, err
	}
	para.Inlines = inlines
	return para, nil
}

// inlines reads paragraph-level content until the end of start. Wrapper
// elements are flattened into the result in document order. When para is
// not nil paragraph properties are read into it.
func (p *parser) inlines(start xml.StartElement, para *Paragraph) ([]Inline, error) {
	var out []Inline

	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if para == nil {
					if err := p.d.Skip(); err != nil {
						return nil, err
					}
					continue
				}
				var props paragraphPropsXML
				if err := p.d.DecodeElement(&props, &t); err != nil {
					return nil, err
				}
				para.StyleID = props.Style.Val
				para.Justification = props.Justification.Val
				if props.NumPr != nil {
					para.NumID, para.NumLevel = numbering(props.NumPr)
				}
			case "r":
				run, err := p.run(t)
				if err != nil {
					return nil, err
				}
				out = append(out, run)
			case "hyperlink":
				link := &Hyperlink{
					RelID:   attr(t, "id"),
					Anchor:  attr(t, "anchor"),
					Tooltip: attr(t, "tooltip"),
				}
				link.Inlines, err = p.inlines(t, nil)
				if err != nil {
					return nil, err
				}
				out = append(out, link)
			case "oMath":
				m, err := p.math(t)
				if err != nil {
					return nil, err
				}
				out = append(out, m)
			case "oMathPara":
				mp, err := p.mathPara(t)
				if err != nil {
					return nil, err
				}
				out = append(out, mp)
			case "ins", "moveTo", "smartTag", "sdt", "sdtContent", "fldSimple", "customXml", "dir", "bdo":
				nested, err := p.inlines(t, nil)
				if err != nil {
					return nil, err
				}
				out = append(out, nested...)
			case "AlternateContent":
				nested, err := alternate(p, t, func(b xml.StartElement) ([]Inline, error) {
					return p.inlines(b, nil)
				})
				if err != nil {
					return nil, err
				}
				out = append(out, nested...)
			default:
				// del, moveFrom, bookmarks, proofing marks and properties
				// of wrappers carry nothing to render.
				if err := p.d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return out, nil
		}
	}
}

// run reads a w:r element.
func (p *parser) run(start xml.StartElement) (*Run, error) {
	r := &Run{}
	content, err := p.runContent(start, r)
	if err != nil {
		return nil, err
	}
	r.Content = content
	return r, nil
}

// runContent reads run content until the end of start. When r is not nil
// run properties are read into it.
func (p *parser) runContent(start xml.StartElement, r *Run) ([]RunContent, error) {
	var out []RunContent

	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if r == nil {
					if err := p.d.Skip(); err != nil {
						return nil, err
					}
					continue
				}
				var props runPropsXML
				if err := p.d.DecodeElement(&props, &t); err != nil {
					return nil, err
				}
				r.Format = runFormat(props)
			case "t":
				value, err := p.text()
				if err != nil {
					return nil, err
				}
				out = append(out, Text{Value: value, Preserve: attrNS(t, nsXML, "space") == "preserve"})
			case "tab":
				out = append(out, Tab{})
				if err := p.d.Skip(); err != nil {
					return nil, err
				}
			case "br":
				out = append(out, Break{Page: attr(t, "type") == "page"})
				if err := p.d.Skip(); err != nil {
					return nil, err
				}
			case "cr":
				out = append(out, Break{})
				if err := p.d.Skip(); err != nil {
					return nil, err
				}
			case "sym":
				out = append(out, Symbol{Font: attr(t, "font"), Char: attr(t, "char")})
				if err := p.d.Skip(); err != nil {
					return nil, err
				}
			case "footnoteReference", "endnoteReference":
				out = append(out, NoteRef{ID: attr(t, "id"), Endnote: t.Name.Local == "endnoteReference"})
				if err := p.d.Skip(); err != nil {
					return nil, err
				}
			case "instrText":
				value, err := p.text()
				if err != nil {
					return nil, err
				}
				out = append(out, InstrText{Value: value})
			case "drawing", "pict", "object":
				dr := &Drawing{}
				if err := p.drawing(t, dr); err != nil {
					return nil, err
				}
				out = append(out, dr)
			case "oMath":
				m, err := p.math(t)
				if err != nil {
					return nil, err
				}
				out = append(out, m)
			case "AlternateContent":
				nested, err := alternate(p, t, func(b xml.StartElement) ([]RunContent, error) {
					return p.runContent(b, nil)
				})
				if err != nil {
					return nil, err
				}
				out = append(out, nested...)
			default:
				if err := p.d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return out, nil
		}
	}
}

// drawing collects image references, accessibility text and text boxes
// from a DrawingML or VML picture until the end of start.
func (p *parser) drawing(start xml.StartElement, dr *Drawing) error {
	parents := []string{start.Name.Local}
	seenDocPr := false

	for len(parents) > 0 {
		tok, err := p.token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "txbxContent":
				box, err := p.blocks(t, nil)
				if err != nil {
					return err
				}
				dr.TextBoxes = append(dr.TextBoxes, box)
				continue
			case "AlternateContent":
				parts, err := alternate(p, t, func(b xml.StartElement) ([]*Drawing, error) {
					sub := &Drawing{}
					if err := p.drawing(b, sub); err != nil {
						return nil, err
					}
					if sub.empty() {
						return nil, nil
					}
					return []*Drawing{sub}, nil
				})
				if err != nil {
					return err
				}
				for _, sub := range parts {
					dr.merge(sub)
				}
				continue
			case "blip":
				if parents[len(parents)-1] == "blipFill" {
					if id := attrNS(t, nsR, "embed"); id != "" {
						dr.Blips = append(dr.Blips, id)
					}
				}
			case "imagedata":
				if id := attrNS(t, nsR, "id"); id != "" {
					dr.Blips = append(dr.Blips, id)
				}
			case "docPr":
				if !seenDocPr {
					seenDocPr = true
					dr.Description = attr(t, "descr")
					dr.Title = attr(t, "title")
				}
			}
			parents = append(parents, t.Name.Local)
		case xml.EndElement:
			parents = parents[:len(parents)-1]
		}
	}

	return nil
}

// math decodes an m:oMath element.
func (p *parser) math(start xml.StartElement) (*Math, error) {
	root, err := omml.Decode(p.d, start)
	if err != nil {
		return nil, fmt.Errorf("decoding equation: %w", err)
	}
	return &Math{Root: root}, nil
}

// mathPara decodes an m:oMathPara element into its equations.
func (p *parser) mathPara(start xml.StartElement) (*MathPara, error) {
	root, err := omml.Decode(p.d, start)
	if err != nil {
		return nil, fmt.Errorf("decoding equation block: %w", err)
	}

	mp := &MathPara{}
	omml.Walk(root, func(n omml.Node) bool {
		if g, ok := n.(*omml.Group); ok && g.Name == "oMath" {
			mp.Maths = append(mp.Maths, &Math{Root: g})
			return false
		}
		return true
	})
	return mp, nil
}

// text reads the character data of a leaf element such as w:t.
func (p *parser) text() (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := p.token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	return sb.String(), nil
}

// table reads a w:tbl element.
func (p *parser) table(start xml.StartElement) (*Table, error) {
	tbl := &Table{}
	if err := p.rows(start, tbl); err != nil {
		return nil, err
	}
	return tbl, nil
}

// rows reads table rows until the end of start.
func (p *parser) rows(start xml.StartElement, tbl *Table) error {
	for {
		tok, err := p.token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tr":
				row := &Row{}
				if err := p.cells(t, row); err != nil {
					return err
				}
				tbl.Rows = append(tbl.Rows, row)
			case "sdt", "sdtContent", "customXml", "ins", "moveTo":
				if err := p.rows(t, tbl); err != nil {
					return err
				}
			default:
				if err := p.d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// cells reads the cells of a row until the end of start.
func (p *parser) cells(start xml.StartElement, row *Row) error {
	for {
		tok, err := p.token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "trPr":
				var props rowPropsXML
				if err := p.d.DecodeElement(&props, &t); err != nil {
					return err
				}
				row.Header = props.Header.on()
			case "tc":
				cell := &Cell{GridSpan: 1}
				content, err := p.blocks(t, cell)
				if err != nil {
					return err
				}
				cell.Content = content
				row.Cells = append(row.Cells, cell)
			case "sdt", "sdtContent", "customXml", "ins", "moveTo":
				if err := p.cells(t, row); err != nil {
					return err
				}
			default:
				if err := p.d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// alternate reads an mc:AlternateContent element. The first mc:Choice that
// yields content is used; mc:Fallback is read only when no choice did.
func alternate[T any](p *parser, start xml.StartElement, branch func(xml.StartElement) ([]T, error)) ([]T, error) {
	var out []T
	chosen := false

	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if chosen || (t.Name.Local != "Choice" && t.Name.Local != "Fallback") {
				if err := p.d.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			items, err := branch(t)
			if err != nil {
				return nil, err
			}
			if len(items) > 0 {
				out = items
				chosen = true
			}
		case xml.EndElement:
			return out, nil
		}
	}
}

func runFormat(props runPropsXML) RunFormat {
	f := RunFormat{
		Bold:      props.Bold.on(),
		Italic:    props.Italic.on(),
		Underline: props.Underline.on() && props.Underline.Val != "none",
		Strike:    props.Strike.on(),
	}
	if c := props.Color.Val; c != "" && !strings.EqualFold(c, "auto") {
		f.Color = c
	}
	if h := props.Highlight.Val; h != "" && !strings.EqualFold(h, "none") {
		f.Highlight = h
	}
	switch props.VertAlign.Val {
	case VertSuperscript, VertSubscript:
		f.VertAlign = props.VertAlign.Val
	}
	return f
}

func applyCellProps(cell *Cell, props cellPropsXML) {
	if span, err := strconv.Atoi(props.GridSpan.Val); err == nil && span > 0 {
		cell.GridSpan = span
	}
	if props.VMerge != nil {
		if props.VMerge.Val == MergeRestart {
			cell.VMerge = MergeRestart
		} else {
			cell.VMerge = MergeContinue
		}
	}
}

// attr returns the value of the attribute with the given local name.
func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// attrNS returns the value of a namespaced attribute, falling back to any
// attribute with the same local name.
func attrNS(se xml.StartElement, space, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return attr(se, local)
}
