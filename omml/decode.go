package omml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// element is a raw XML element captured from the token stream before it is
// turned into a typed node.
type element struct {
	name     string
	attrs    []xml.Attr
	children []*element
	text     string
}

// child returns the first child with the given local name.
func (e *element) child(name string) *element {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// all returns every child with the given local name.
func (e *element) all(name string) []*element {
	var out []*element
	for _, c := range e.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// attr returns the value of the attribute with the given local name.
func (e *element) attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// isProperties reports whether a local name is a property container
// (m:rPr, m:fPr, m:ctrlPr, w:rPr, ...). Properties never render.
func isProperties(name string) bool {
	return strings.HasSuffix(name, "Pr")
}

// leafText concatenates the character data of every leaf element under e,
// skipping property containers. Whitespace between elements is ignored.
func leafText(e *element) string {
	if len(e.children) == 0 {
		return e.text
	}
	var sb strings.Builder
	for _, c := range e.children {
		if isProperties(c.name) {
			continue
		}
		sb.WriteString(leafText(c))
	}
	return sb.String()
}

// Decode reads the element started by start from d and returns its typed
// node. The decoder is left positioned after the matching end element.
func Decode(d *xml.Decoder, start xml.StartElement) (Node, error) {
	el, err := capture(d, start)
	if err != nil {
		return nil, err
	}
	return build(el), nil
}

// ParseString parses the first element in s as an equation.
func ParseString(s string) (Node, error) {
	d := xml.NewDecoder(strings.NewReader(s))
	for {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("no equation element found")
			}
			return nil, fmt.Errorf("reading equation: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return Decode(d, start)
		}
	}
}

// capture reads tokens until the end of start and returns them as a tree.
func capture(d *xml.Decoder, start xml.StartElement) (*element, error) {
	root := &element{name: start.Name.Local, attrs: start.Attr}
	stack := []*element{root}

	for len(stack) > 0 {
		tok, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("unexpected end of equation <%s>", root.name)
			}
			return nil, err
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, attrs: t.Attr}
			top.children = append(top.children, el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			top.text += string(t)
		}
	}

	return root, nil
}

// prop reads a construct property such as dPr/begChr@val.
func prop(e *element, container, name string) Char {
	p := e.child(container).child(name)
	if p == nil {
		return Char{}
	}
	v, _ := p.attr("val")
	return Char{Value: v, Present: true}
}

// slot builds the first child with the given name, or nil when absent.
func slot(e *element, name string) Node {
	c := e.child(name)
	if c == nil {
		return nil
	}
	return build(c)
}

// slots builds every child with the given name.
func slots(e *element, name string) []Node {
	var out []Node
	for _, c := range e.all(name) {
		out = append(out, build(c))
	}
	return out
}

// contents builds every non-property child.
func contents(e *element) []Node {
	var out []Node
	for _, c := range e.children {
		if isProperties(c.name) {
			continue
		}
		out = append(out, build(c))
	}
	return out
}

var groupNames = map[string]bool{
	"oMath": true, "oMathPara": true, "e": true, "num": true, "den": true,
	"sub": true, "sup": true, "deg": true, "lim": true, "fName": true,
}

func build(e *element) Node {
	switch e.name {
	case "t":
		return &Text{Value: e.text}
	case "r":
		return &Run{Children: contents(e), Text: leafText(e)}
	case "f", "frac":
		return &Fraction{Num: slot(e, "num"), Den: slot(e, "den")}
	case "sSup":
		return &Sup{Base: slot(e, "e"), Sup: slot(e, "sup")}
	case "sSub":
		return &Sub{Base: slot(e, "e"), Sub: slot(e, "sub")}
	case "sSubSup":
		return &SubSup{Base: slot(e, "e"), Sub: slot(e, "sub"), Sup: slot(e, "sup")}
	case "sPre":
		return &PreSubSup{Base: slot(e, "e"), Sub: slot(e, "sub"), Sup: slot(e, "sup")}
	case "rad":
		return &Radical{Degree: slot(e, "deg"), Base: slot(e, "e")}
	case "d", "delim":
		return &Delimiter{
			Begin:    prop(e, "dPr", "begChr"),
			End:      prop(e, "dPr", "endChr"),
			Sep:      prop(e, "dPr", "sepChr"),
			Elements: slots(e, "e"),
		}
	case "m", "matrix":
		m := &Matrix{}
		for _, row := range e.all("mr") {
			m.Rows = append(m.Rows, slots(row, "e"))
		}
		return m
	case "eqArr":
		return &EqArray{Rows: slots(e, "e")}
	case "nary":
		return &Nary{
			Op:   prop(e, "naryPr", "chr"),
			Sub:  slot(e, "sub"),
			Sup:  slot(e, "sup"),
			Base: slot(e, "e"),
		}
	case "acc":
		return &Accent{Char: prop(e, "accPr", "chr"), Base: slot(e, "e")}
	case "groupChr":
		return &GroupChar{Char: prop(e, "groupChrPr", "chr"), Base: slot(e, "e")}
	case "bar":
		return &Bar{Pos: prop(e, "barPr", "pos").Or("top"), Base: slot(e, "e")}
	case "box", "borderBox":
		return &Box{Elements: slots(e, "e")}
	case "limLow", "limUpp":
		return &Limit{
			Upper: e.name == "limUpp",
			Base:  slot(e, "e"),
			Lim:   slot(e, "lim"),
			Sub:   slot(e, "sub"),
			Sup:   slot(e, "sup"),
		}
	case "func":
		return &Func{Name: slot(e, "fName"), Arg: slot(e, "e")}
	case "tbl":
		t := &Table{}
		for _, row := range e.all("tr") {
			var cells []Node
			for _, tc := range row.all("tc") {
				cells = append(cells, &Group{Name: tc.name, Children: contents(tc), Text: leafText(tc)})
			}
			t.Rows = append(t.Rows, cells)
		}
		return t
	case "brk":
		return &Break{}
	case "phant":
		return &Phantom{Base: slot(e, "e")}
	}

	if groupNames[e.name] {
		return &Group{Name: e.name, Children: contents(e), Text: leafText(e)}
	}
	return &Unknown{Name: e.name, Children: contents(e), Text: leafText(e)}
}
