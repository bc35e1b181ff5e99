// Package omml converts Office Math Markup Language (the m: namespace
// embedded in DOCX paragraphs) into LaTeX source.
//
// An equation is decoded once into a tree of typed nodes, one Go type per
// OMML construct. ToLaTeX then translates the tree with an exhaustive type
// switch. Constructs without a dedicated rule are kept as Unknown nodes and
// translate to the concatenation of their children, so translation never
// fails.
//
// Basic usage:
//
//	root, err := omml.ParseString(`<m:oMath xmlns:m="...">...</m:oMath>`)
//	if err != nil {
//	    // handle error
//	}
//	latex := omml.ToLaTeX(root)
package omml

// Namespace is the OMML XML namespace.
const Namespace = "http://schemas.openxmlformats.org/officeDocument/2006/math"

// Node is an equation construct. The set of implementations is closed.
type Node interface {
	isNode()
}

// Char is a construct property character (m:chr, m:begChr, ...). Present
// distinguishes an explicitly empty value from an absent element.
type Char struct {
	Value   string
	Present bool
}

// Or returns the value, or def when the property is absent.
func (c Char) Or(def string) string {
	if !c.Present {
		return def
	}
	return c.Value
}

// Group is an ordered container with no construct semantics of its own
// (m:oMath, m:e, m:num, m:den, m:sub, m:sup, m:deg, m:lim, m:fName, ...).
type Group struct {
	Name     string
	Children []Node
	Text     string // character data when the element has no children
}

// Run is a math run (m:r). Text holds all character data in the run and is
// used when no child produced output.
type Run struct {
	Children []Node
	Text     string
}

// Text is a literal text leaf (m:t).
type Text struct {
	Value string
}

// Fraction is m:f.
type Fraction struct {
	Num, Den Node
}

// Sup is m:sSup.
type Sup struct {
	Base, Sup Node
}

// Sub is m:sSub.
type Sub struct {
	Base, Sub Node
}

// SubSup is m:sSubSup.
type SubSup struct {
	Base, Sub, Sup Node
}

// PreSubSup is m:sPre (scripts to the left of the base).
type PreSubSup struct {
	Base, Sub, Sup Node
}

// Radical is m:rad. Degree may be nil or empty for a square root.
type Radical struct {
	Degree, Base Node
}

// Delimiter is m:d. Elements are separated by Sep (default "|").
type Delimiter struct {
	Begin, End, Sep Char
	Elements        []Node
}

// Matrix is m:m; each row holds its cells in order.
type Matrix struct {
	Rows [][]Node
}

// EqArray is m:eqArr; each row is one m:e.
type EqArray struct {
	Rows []Node
}

// Nary is an n-ary operator (m:nary): sums, products, integrals, ...
type Nary struct {
	Op             Char
	Sub, Sup, Base Node
}

// Accent is m:acc.
type Accent struct {
	Char Char
	Base Node
}

// GroupChar is m:groupChr.
type GroupChar struct {
	Char Char
	Base Node
}

// Bar is m:bar. Pos is "top" or "bot".
type Bar struct {
	Pos  string
	Base Node
}

// Box is m:box or m:borderBox.
type Box struct {
	Elements []Node
}

// Limit is m:limLow or m:limUpp. Sub and Sup are set only by documents
// that nest scripts directly in the limit element.
type Limit struct {
	Upper              bool
	Base, Lim, Sub, Sup Node
}

// Func is a function application (m:func).
type Func struct {
	Name, Arg Node
}

// Table is a tabular equation block (rows of cells).
type Table struct {
	Rows [][]Node
}

// Break is a line break (m:brk).
type Break struct{}

// Phantom is m:phant.
type Phantom struct {
	Base Node
}

// Unknown is any element without a dedicated rule.
type Unknown struct {
	Name     string
	Children []Node
	Text     string
}

func (*Group) isNode()     {}
func (*Run) isNode()       {}
func (*Text) isNode()      {}
func (*Fraction) isNode()  {}
func (*Sup) isNode()       {}
func (*Sub) isNode()       {}
func (*SubSup) isNode()    {}
func (*PreSubSup) isNode() {}
func (*Radical) isNode()   {}
func (*Delimiter) isNode() {}
func (*Matrix) isNode()    {}
func (*EqArray) isNode()   {}
func (*Nary) isNode()      {}
func (*Accent) isNode()    {}
func (*GroupChar) isNode() {}
func (*Bar) isNode()       {}
func (*Box) isNode()       {}
func (*Limit) isNode()     {}
func (*Func) isNode()      {}
func (*Table) isNode()     {}
func (*Break) isNode()     {}
func (*Phantom) isNode()   {}
func (*Unknown) isNode()   {}

// Children returns the direct child nodes of n in document order. Nil
// slots are skipped.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	switch v := n.(type) {
	case *Group:
		add(v.Children...)
	case *Run:
		add(v.Children...)
	case *Fraction:
		add(v.Num, v.Den)
	case *Sup:
		add(v.Base, v.Sup)
	case *Sub:
		add(v.Base, v.Sub)
	case *SubSup:
		add(v.Base, v.Sub, v.Sup)
	case *PreSubSup:
		add(v.Sub, v.Sup, v.Base)
	case *Radical:
		add(v.Degree, v.Base)
	case *Delimiter:
		add(v.Elements...)
	case *Matrix:
		for _, row := range v.Rows {
			add(row...)
		}
	case *EqArray:
		add(v.Rows...)
	case *Nary:
		add(v.Sub, v.Sup, v.Base)
	case *Accent:
		add(v.Base)
	case *GroupChar:
		add(v.Base)
	case *Bar:
		add(v.Base)
	case *Box:
		add(v.Elements...)
	case *Limit:
		add(v.Base, v.Lim, v.Sub, v.Sup)
	case *Func:
		add(v.Name, v.Arg)
	case *Table:
		for _, row := range v.Rows {
			add(row...)
		}
	case *Phantom:
		add(v.Base)
	case *Unknown:
		add(v.Children...)
	}
	return out
}

// Walk calls fn for n and every descendant in depth-first order. If fn
// returns false the node's children are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Fallbacks returns the element names of every Unknown node under n, in
// document order. An empty result means every construct had a rule.
func Fallbacks(n Node) []string {
	var names []string
	Walk(n, func(c Node) bool {
		if u, ok := c.(*Unknown); ok {
			names = append(names, u.Name)
		}
		return true
	})
	return names
}
