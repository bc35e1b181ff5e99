package omml

import "strings"

// ToLaTeX translates an equation tree to LaTeX source. It never fails: nil
// slots translate to the empty string and constructs without a rule
// translate to the concatenation of their children (or their text).
func ToLaTeX(n Node) string {
	switch v := n.(type) {
	case nil:
		return ""

	case *Text:
		return Escape(v.Value)

	case *Run:
		if s := concat(v.Children); s != "" {
			return s
		}
		return Escape(v.Text)

	case *Group:
		return concatOrText(v.Children, v.Text)

	case *Fraction:
		return `\frac{` + ToLaTeX(v.Num) + `}{` + ToLaTeX(v.Den) + `}`

	case *Sup:
		return `{` + ToLaTeX(v.Base) + `}^{` + ToLaTeX(v.Sup) + `}`

	case *Sub:
		return `{` + ToLaTeX(v.Base) + `}_{` + ToLaTeX(v.Sub) + `}`

	case *SubSup:
		return `{` + ToLaTeX(v.Base) + `}_{` + ToLaTeX(v.Sub) + `}^{` + ToLaTeX(v.Sup) + `}`

	case *PreSubSup:
		return `{}_{` + ToLaTeX(v.Sub) + `}^{` + ToLaTeX(v.Sup) + `}{` + ToLaTeX(v.Base) + `}`

	case *Radical:
		deg := ToLaTeX(v.Degree)
		base := ToLaTeX(v.Base)
		if strings.TrimSpace(deg) != "" {
			return `\sqrt[` + deg + `]{` + base + `}`
		}
		return `\sqrt{` + base + `}`

	case *Delimiter:
		return delimited(v)

	case *Matrix:
		rows := make([]string, 0, len(v.Rows))
		for _, row := range v.Rows {
			rows = append(rows, joinNodes(row, " & "))
		}
		return `\begin{bmatrix}` + strings.Join(rows, ` \\ `) + `\end{bmatrix}`

	case *EqArray:
		return `\begin{aligned}` + joinNodes(v.Rows, ` \\ `) + `\end{aligned}`

	case *Nary:
		glyph := v.Op.Or("∑")
		op, ok := naryOperators[glyph]
		if !ok {
			op = `\operatorname{` + Escape(glyph) + `}`
		}
		if sub := ToLaTeX(v.Sub); strings.TrimSpace(sub) != "" {
			op += `_{` + sub + `}`
		}
		if sup := ToLaTeX(v.Sup); strings.TrimSpace(sup) != "" {
			op += `^{` + sup + `}`
		}
		return strings.TrimSpace(op + " " + ToLaTeX(v.Base))

	case *Accent:
		cmd, ok := accents[v.Char.Or("^")]
		if !ok {
			cmd = `\widehat`
		}
		return cmd + `{` + ToLaTeX(v.Base) + `}`

	case *GroupChar:
		c := v.Char.Or("|")
		switch c {
		case "⏟":
			return `\underbrace{` + ToLaTeX(v.Base) + `}`
		case "⏞":
			return `\overbrace{` + ToLaTeX(v.Base) + `}`
		}
		return `\left` + formatDelimiter(c) + ToLaTeX(v.Base) + `\right` + formatDelimiter(closing(c))

	case *Bar:
		if v.Pos == "top" {
			return `\overline{` + ToLaTeX(v.Base) + `}`
		}
		return `\underline{` + ToLaTeX(v.Base) + `}`

	case *Box:
		return `\boxed{` + concat(v.Elements) + `}`

	case *Limit:
		out := ToLaTeX(v.Base)
		if sub := ToLaTeX(v.Sub); strings.TrimSpace(sub) != "" {
			out += `_{` + sub + `}`
		}
		if lim := ToLaTeX(v.Lim); strings.TrimSpace(lim) != "" {
			out += `_{` + lim + `}`
		}
		if sup := ToLaTeX(v.Sup); strings.TrimSpace(sup) != "" {
			out += `^{` + sup + `}`
		}
		return out

	case *Func:
		name := strings.TrimSpace(ToLaTeX(v.Name))
		arg := ToLaTeX(v.Arg)
		if cmd, ok := functions[name]; ok {
			return cmd + `{` + arg + `}`
		}
		return `\operatorname{` + name + `}\left(` + arg + `\right)`

	case *Table:
		return table(v)

	case *Break:
		return `\\`

	case *Phantom:
		return `\phantom{` + ToLaTeX(v.Base) + `}`

	case *Unknown:
		return concatOrText(v.Children, v.Text)

	default:
		return concat(Children(n))
	}
}

func concat(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(ToLaTeX(n))
	}
	return sb.String()
}

func concatOrText(nodes []Node, text string) string {
	if len(nodes) > 0 {
		return concat(nodes)
	}
	return Escape(text)
}

func joinNodes(nodes []Node, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, ToLaTeX(n))
	}
	return strings.Join(parts, sep)
}

func delimited(d *Delimiter) string {
	begin := d.Begin.Or("(")

	var end string
	if d.End.Present {
		end = closing(d.End.Value)
	} else if cl, ok := closers[begin]; ok {
		end = cl
	} else {
		end = ")"
	}

	sep := formatDelimiter(d.Sep.Or("|"))
	if d.Sep.Present && d.Sep.Value == "" {
		sep = ""
	}

	parts := make([]string, 0, len(d.Elements))
	for _, e := range d.Elements {
		parts = append(parts, ToLaTeX(e))
	}
	content := strings.Join(parts, sep)

	return `\left` + formatDelimiter(begin) + content + `\right` + formatDelimiter(end)
}

func table(t *Table) string {
	maxCols := 0
	cases := len(t.Rows) > 0
	rows := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
		if len(row) != 2 {
			cases = false
		}
		rows = append(rows, joinNodes(row, " & "))
	}

	body := strings.Join(rows, ` \\ `)
	if cases {
		return `\begin{cases}` + body + `\end{cases}`
	}

	cols := strings.Repeat("c", maxCols)
	if cols == "" {
		cols = "c"
	}
	return `\begin{array}{` + cols + `}` + body + `\end{array}`
}
