package render

import (
	"io"
	"log/slog"
	"testing"

	"github.com/tsawler/quizdoc/docx"
	"github.com/tsawler/quizdoc/internal/docxtest"
)

// quietLogger discards log output.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRenderer opens pkg and returns a renderer with embedded images.
func newRenderer(t *testing.T, pkg docxtest.Package) (*Renderer, *docx.Document) {
	t.Helper()

	doc, err := docx.OpenBytes(pkg.Bytes(t))
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	opts := DefaultOptions()
	opts.Logger = quietLogger()
	r, err := New(doc, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r, doc
}

// paragraphs returns the top-level paragraphs of doc.
func paragraphs(doc *docx.Document) []*docx.Paragraph {
	var paras []*docx.Paragraph
	for b := range doc.Blocks() {
		if p, ok := b.(*docx.Paragraph); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

func TestNew_RequiresImageDir(t *testing.T) {
	doc, err := docx.OpenBytes(docxtest.Package{Body: docxtest.Paras("x")}.Bytes(t))
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}

	if _, err := New(doc, Options{Images: ImageConfig{Embed: false}}); err != ErrNoImageDir {
		t.Errorf("New() error = %v, want ErrNoImageDir", err)
	}
	if _, err := New(doc, Options{Images: ImageConfig{Dir: t.TempDir()}}); err != nil {
		t.Errorf("New() with directory error = %v", err)
	}
}

func TestRenderer_Paragraph(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantHTML string
		wantText string
	}{
		{
			name:     "escaped text",
			body:     docxtest.Para(docxtest.Run("a < b & c")),
			wantHTML: "a &lt; b &amp; c",
			wantText: "a < b & c",
		},
		{
			name:     "bold italic",
			body:     `<w:p><w:r><w:rPr><w:b/><w:i/></w:rPr><w:t>x</w:t></w:r></w:p>`,
			wantHTML: `<span style="font-weight:bold;font-style:italic">x</span>`,
			wantText: "x",
		},
		{
			name:     "bold off",
			body:     `<w:p><w:r><w:rPr><w:b w:val="0"/></w:rPr><w:t>x</w:t></w:r></w:p>`,
			wantHTML: "x",
			wantText: "x",
		},
		{
			name:     "style order",
			body:     `<w:p><w:r><w:rPr><w:highlight w:val="yellow"/><w:color w:val="FF0000"/><w:strike/><w:u w:val="single"/></w:rPr><w:t>x</w:t></w:r></w:p>`,
			wantHTML: `<span style="text-decoration:underline line-through;color:#FF0000;background-color:#ffff00">x</span>`,
			wantText: "x",
		},
		{
			name:     "superscript",
			body:     `<w:p><w:r><w:rPr><w:b/><w:vertAlign w:val="superscript"/></w:rPr><w:t>2</w:t></w:r></w:p>`,
			wantHTML: `<sup><span style="font-weight:bold">2</span></sup>`,
			wantText: "^2",
		},
		{
			name:     "subscript",
			body:     `<w:p><w:r><w:rPr><w:vertAlign w:val="subscript"/></w:rPr><w:t>i</w:t></w:r></w:p>`,
			wantHTML: `<sub>i</sub>`,
			wantText: "_i",
		},
		{
			name:     "empty formatted run",
			body:     `<w:p><w:r><w:rPr><w:b/><w:vertAlign w:val="superscript"/></w:rPr></w:r></w:p>`,
			wantHTML: "",
			wantText: "",
		},
		{
			name:     "breaks and tabs",
			body:     `<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t><w:br w:type="page"/></w:r></w:p>`,
			wantHTML: `a&emsp;b<br/>c<hr class="page-break" />`,
			wantText: "a\tb\nc\n",
		},
		{
			name:     "symbol",
			body:     `<w:p><w:r><w:sym w:font="Symbol" w:char="03B1"/><w:sym w:font="Symbol" w:char="zz"/></w:r></w:p>`,
			wantHTML: "αzz",
			wantText: "αzz",
		},
		{
			name:     "note reference",
			body:     `<w:p><w:r><w:t>fact</w:t><w:footnoteReference w:id="4"/></w:r></w:p>`,
			wantHTML: `fact<sup class="note-ref">[4]</sup>`,
			wantText: "fact[4]",
		},
		{
			name:     "inline math",
			body:     `<w:p>` + docxtest.Run("x = ") + `<m:oMath><m:f><m:num><m:r><m:t>1</m:t></m:r></m:num><m:den><m:r><m:t>2</m:t></m:r></m:den></m:f></m:oMath></w:p>`,
			wantHTML: `x = $\frac{1}{2}$`,
			wantText: `x = $\frac{1}{2}$`,
		},
		{
			name: "display math",
			body: `<w:p><m:oMathPara><m:oMath><m:r><m:t>a</m:t></m:r></m:oMath><m:oMath><m:r><m:t>b</m:t></m:r></m:oMath></m:oMathPara></w:p>`,
			wantHTML: `$$ a $$$$ b $$`,
			wantText: `$$ a $$ $$ b $$`,
		},
		{
			name:     "anchor only hyperlink",
			body:     `<w:p><w:hyperlink w:anchor="intro">` + docxtest.Run("top") + `</w:hyperlink></w:p>`,
			wantHTML: `<a href="#intro">top</a>`,
			wantText: "top",
		},
		{
			name:     "hyperlink without target",
			body:     `<w:p><w:hyperlink>` + docxtest.Run("plain") + `</w:hyperlink></w:p>`,
			wantHTML: "plain",
			wantText: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, doc := newRenderer(t, docxtest.Package{Body: tt.body})
			out := r.Paragraph(paragraphs(doc)[0], 0)
			if out.HTML != tt.wantHTML {
				t.Errorf("HTML = %q, want %q", out.HTML, tt.wantHTML)
			}
			if out.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", out.Text, tt.wantText)
			}
		})
	}
}

func TestRenderer_ExternalHyperlink(t *testing.T) {
	pkg := docxtest.Package{
		Body: `<w:p><w:hyperlink r:id="rId3" w:anchor="part" w:tooltip="Go &amp; see">` + docxtest.Run("docs") + `</w:hyperlink>` +
			`<w:hyperlink r:id="rId4" w:anchor="x">` + docxtest.Run("again") + `</w:hyperlink></w:p>`,
		Rels: []docxtest.Rel{
			{ID: "rId3", Type: docxtest.HyperlinkRel, Target: "https://example.com/a", External: true},
			{ID: "rId4", Type: docxtest.HyperlinkRel, Target: "https://example.com/b#x", External: true},
		},
	}
	r, doc := newRenderer(t, pkg)

	out := r.Paragraph(paragraphs(doc)[0], 0)
	want := `<a href="https://example.com/a#part" title="Go &amp; see">docs</a><a href="https://example.com/b#x">again</a>`
	if out.HTML != want {
		t.Errorf("HTML = %q, want %q", out.HTML, want)
	}
	if out.Text != "docsagain" {
		t.Errorf("Text = %q", out.Text)
	}
}

func TestHighlightColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"yellow", "#ffff00"},
		{"DarkBlue", "#00008b"},
		{"abc", "#abc"},
		{"00FF00", "#00FF00"},
		{"#123456", "#123456"},
		{"none-such", "none-such"},
	}
	for _, tt := range tests {
		if got := highlightColor(tt.in); got != tt.want {
			t.Errorf("highlightColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSymbol(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0041", "A"},
		{"F0B7", "\uf0b7"},
		{"XYZ", "XYZ"},
		{"FFFFFFFF", "FFFFFFFF"},
	}
	for _, tt := range tests {
		if got := symbol(tt.in); got != tt.want {
			t.Errorf("symbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
