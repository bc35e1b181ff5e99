package render

import (
	"testing"

	"github.com/tsawler/quizdoc/internal/docxtest"
)

const classifyStyles = `
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:basedOn w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Deep"><w:name w:val="Heading 12"/></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>
<w:style w:type="paragraph" w:styleId="Caption"><w:name w:val="caption"/></w:style>
<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/></w:style>
<w:style w:type="paragraph" w:styleId="ListNumber"><w:name w:val="List Number"/></w:style>
<w:style w:type="paragraph" w:styleId="QuizList"><w:name w:val="Quiz List"/>
  <w:pPr><w:numPr><w:ilvl w:val="1"/><w:numId w:val="2"/></w:numPr><w:jc w:val="right"/></w:pPr></w:style>`

const classifyNumbering = `
<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl></w:abstractNum>
<w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/></w:lvl><w:lvl w:ilvl="1"><w:numFmt w:val="lowerLetter"/></w:lvl></w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>`

// styled returns a paragraph with the given pPr content.
func styled(ppr string) string {
	return `<w:p><w:pPr>` + ppr + `</w:pPr>` + docxtest.Run("x") + `</w:p>`
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		ppr       string
		tag       string
		list      *ListInfo
		alignment string
	}{
		{"default style", ``, "p", nil, ""},
		{"heading", `<w:pStyle w:val="Heading2"/>`, "h2", nil, ""},
		{"undefined built-in heading", `<w:pStyle w:val="Heading3"/>`, "h3", nil, ""},
		{"heading level clamped", `<w:pStyle w:val="Deep"/>`, "h6", nil, ""},
		{"title", `<w:pStyle w:val="Title"/>`, "h1", nil, ""},
		{"caption", `<w:pStyle w:val="Caption"/>`, "figcaption", nil, ""},
		{"bullet numbering", `<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>`, "p", &ListInfo{Type: Unordered, Level: 0, NumID: "1"}, ""},
		{"decimal numbering", `<w:numPr><w:ilvl w:val="0"/><w:numId w:val="2"/></w:numPr>`, "p", &ListInfo{Type: Ordered, Level: 0, NumID: "2"}, ""},
		{"bullet style name", `<w:pStyle w:val="ListBullet"/>`, "p", &ListInfo{Type: Unordered}, ""},
		{"unknown numbering falls back to style", `<w:pStyle w:val="ListNumber"/><w:numPr><w:ilvl w:val="2"/><w:numId w:val="42"/></w:numPr>`, "p", &ListInfo{Type: Ordered, Level: 2, NumID: "42"}, ""},
		{"unknown numbering without list style", `<w:numPr><w:numId w:val="42"/></w:numPr>`, "p", nil, ""},
		{"style numbering and alignment", `<w:pStyle w:val="QuizList"/>`, "p", &ListInfo{Type: Ordered, Level: 1, NumID: "2"}, "right"},
		{"direct alignment wins", `<w:pStyle w:val="QuizList"/><w:jc w:val="center"/>`, "p", &ListInfo{Type: Ordered, Level: 1, NumID: "2"}, "center"},
		{"both", `<w:jc w:val="both"/>`, "p", nil, "justify"},
		{"distribute", `<w:jc w:val="distribute"/>`, "p", nil, "justify"},
		{"end", `<w:jc w:val="end"/>`, "p", nil, "right"},
		{"start", `<w:jc w:val="start"/>`, "p", nil, "left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, doc := newRenderer(t, docxtest.Package{
				Body:      styled(tt.ppr),
				Styles:    classifyStyles,
				Numbering: classifyNumbering,
			})

			c := Classify(doc, paragraphs(doc)[0])
			if c.Tag != tt.tag {
				t.Errorf("Tag = %q, want %q", c.Tag, tt.tag)
			}
			if c.Alignment != tt.alignment {
				t.Errorf("Alignment = %q, want %q", c.Alignment, tt.alignment)
			}
			switch {
			case tt.list == nil && c.List != nil:
				t.Errorf("List = %+v, want nil", c.List)
			case tt.list != nil && c.List == nil:
				t.Errorf("List = nil, want %+v", tt.list)
			case tt.list != nil && *c.List != *tt.list:
				t.Errorf("List = %+v, want %+v", c.List, tt.list)
			}
		})
	}
}

func TestStyleTag(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"heading", "h1"},
		{"heading-4", "h4"},
		{"heading 0", "h1"},
		{"subtitle", "h1"},
		{"table caption", "figcaption"},
		{"body text", "p"},
	}
	for _, tt := range tests {
		if got := styleTag(tt.name); got != tt.want {
			t.Errorf("styleTag(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
