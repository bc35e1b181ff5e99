package docx

import (
	"iter"

	"github.com/tsawler/quizdoc/omml"
)

// XML namespaces used in DOCX files
const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsMC  = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	nsXML = "http://www.w3.org/XML/1998/namespace"
)

// Block is a body-level item: *Paragraph or *Table.
type Block interface {
	isBlock()
}

// Inline is a paragraph child: *Run, *Hyperlink, *Math or *MathPara.
type Inline interface {
	isInline()
}

// RunContent is one item inside a run: Text, Tab, Break, Symbol, *Drawing,
// NoteRef, InstrText or *Math.
type RunContent interface {
	isRunContent()
}

// Paragraph is a w:p element.
type Paragraph struct {
	StyleID       string
	NumID         string
	NumLevel      int // -1 when the paragraph has no numPr
	Justification string
	Inlines       []Inline
}

// HasNumbering reports whether the paragraph carries direct numbering
// properties.
func (p *Paragraph) HasNumbering() bool {
	return p.NumLevel >= 0
}

// Table is a w:tbl element.
type Table struct {
	Rows []*Row
}

// Row is a table row. Header is set for repeating header rows.
type Row struct {
	Cells  []*Cell
	Header bool
}

// Vertical merge states of a cell.
const (
	MergeNone     = ""
	MergeRestart  = "restart"
	MergeContinue = "continue"
)

// Cell is a table cell. GridSpan is at least 1.
type Cell struct {
	Content  []Block
	GridSpan int
	VMerge   string
}

// Blocks yields the cell's blocks in document order.
func (c *Cell) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, b := range c.Content {
			if !yield(b) {
				return
			}
		}
	}
}

// Run is a w:r element.
type Run struct {
	Format  RunFormat
	Content []RunContent
}

// Vertical alignment values.
const (
	VertBaseline    = ""
	VertSuperscript = "superscript"
	VertSubscript   = "subscript"
)

// RunFormat holds the direct formatting of a run. Style inheritance is not
// applied.
type RunFormat struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Color     string // hex without '#', empty when unset or auto
	Highlight string // highlight name or hex, empty when unset or none
	VertAlign string
}

// Hyperlink is a w:hyperlink element. RelID points at an external
// relationship; Anchor names a bookmark in the document.
type Hyperlink struct {
	RelID   string
	Anchor  string
	Tooltip string
	Inlines []Inline
}

// Math is an inline equation (m:oMath).
type Math struct {
	Root omml.Node
}

// MathPara is a display equation block (m:oMathPara).
type MathPara struct {
	Maths []*Math
}

// Text is w:t character data.
type Text struct {
	Value    string
	Preserve bool // xml:space="preserve"
}

// Tab is w:tab.
type Tab struct{}

// Break is w:br or w:cr.
type Break struct {
	Page bool
}

// Symbol is w:sym. Char is the hexadecimal code point.
type Symbol struct {
	Font string
	Char string
}

// Drawing is a DrawingML picture (w:drawing) or a VML picture (w:pict,
// w:object). Blips holds image relationship IDs in document order.
type Drawing struct {
	Blips       []string
	Description string
	Title       string
	TextBoxes   [][]Block
}

// Blip returns the first image relationship ID, or "".
func (d *Drawing) Blip() string {
	if len(d.Blips) == 0 {
		return ""
	}
	return d.Blips[0]
}

func (d *Drawing) empty() bool {
	return len(d.Blips) == 0 && len(d.TextBoxes) == 0 && d.Description == "" && d.Title == ""
}

func (d *Drawing) merge(o *Drawing) {
	d.Blips = append(d.Blips, o.Blips...)
	d.TextBoxes = append(d.TextBoxes, o.TextBoxes...)
	if d.Description == "" {
		d.Description = o.Description
	}
	if d.Title == "" {
		d.Title = o.Title
	}
}

// NoteRef is a footnote or endnote reference mark.
type NoteRef struct {
	ID      string
	Endnote bool
}

// InstrText is field instruction text (w:instrText).
type InstrText struct {
	Value string
}

func (*Paragraph) isBlock() {}
func (*Table) isBlock()     {}

func (*Run) isInline()       {}
func (*Hyperlink) isInline() {}
func (*Math) isInline()      {}
func (*MathPara) isInline()  {}

func (Text) isRunContent()      {}
func (Tab) isRunContent()       {}
func (Break) isRunContent()     {}
func (Symbol) isRunContent()    {}
func (*Drawing) isRunContent()  {}
func (NoteRef) isRunContent()   {}
func (InstrText) isRunContent() {}
func (*Math) isRunContent()     {}
