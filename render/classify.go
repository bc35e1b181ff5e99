package render

import (
	"strconv"
	"strings"

	"github.com/tsawler/quizdoc/docx"
)

// List types.
const (
	Unordered = "ul"
	Ordered   = "ol"
)

// ListInfo describes a paragraph's list membership.
type ListInfo struct {
	Type  string // Unordered or Ordered
	Level int
	NumID string
}

// Classification is the structural role of a paragraph in the full
// document export.
type Classification struct {
	Tag       string // p, h1-h6 or figcaption
	List      *ListInfo
	Alignment string // left, center, right, justify or empty
}

// Classify determines a paragraph's tag, list membership and alignment.
// Properties not set on the paragraph are taken from its style chain.
func Classify(doc *docx.Document, p *docx.Paragraph) Classification {
	style := doc.ResolveStyle(p.StyleID)
	name := strings.ToLower(style.Name)

	c := Classification{Tag: styleTag(name)}

	numID, level, numbered := p.NumID, p.NumLevel, p.HasNumbering()
	if !numbered && style.HasNumbering() {
		numID, level, numbered = style.NumID, style.NumLevel, true
	}
	c.List = listInfo(doc, name, numID, level, numbered)

	jc := p.Justification
	if jc == "" {
		jc = style.Alignment
	}
	c.Alignment = alignment(jc)

	return c
}

// styleTag maps a lower-cased style name to an HTML tag.
func styleTag(name string) string {
	switch {
	case strings.HasPrefix(name, "heading"):
		level := 1
		for _, part := range strings.Fields(strings.ReplaceAll(name, "-", " ")) {
			if n, err := strconv.Atoi(part); err == nil {
				level = n
				break
			}
		}
		return "h" + strconv.Itoa(min(max(level, 1), 6))
	case name == "title" || name == "subtitle":
		return "h1"
	case strings.Contains(name, "caption"):
		return "figcaption"
	}
	return "p"
}

// listInfo resolves list membership from numbering, falling back to the
// style name.
func listInfo(doc *docx.Document, name, numID string, level int, numbered bool) *ListInfo {
	byName := func(level int, numID string) *ListInfo {
		switch {
		case strings.Contains(name, "bullet"):
			return &ListInfo{Type: Unordered, Level: level, NumID: numID}
		case strings.Contains(name, "number"):
			return &ListInfo{Type: Ordered, Level: level, NumID: numID}
		}
		return nil
	}

	if !numbered {
		return byName(0, "")
	}

	if numID != "" {
		if format, ok := doc.NumberingFormat(numID, level); ok {
			typ := Ordered
			if docx.IsBulletFormat(format) {
				typ = Unordered
			}
			return &ListInfo{Type: typ, Level: level, NumID: numID}
		}
	}
	return byName(level, numID)
}

func alignment(jc string) string {
	switch jc {
	case "left", "start":
		return "left"
	case "center":
		return "center"
	case "right", "end":
		return "right"
	case "both", "justify", "distribute":
		return "justify"
	}
	return ""
}
