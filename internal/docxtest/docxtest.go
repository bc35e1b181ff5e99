// Package docxtest builds synthetic DOCX packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Namespace declarations placed on the document root.
const namespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
	` xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"` +
	` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
	` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"` +
	` xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"` +
	` xmlns:wps="http://schemas.microsoft.com/office/word/2010/wordprocessingShape"` +
	` xmlns:v="urn:schemas-microsoft-com:vml"` +
	` xmlns:o="urn:schemas-microsoft-com:office:office"`

// Relationship types used by tests.
const (
	ImageRel     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	HyperlinkRel = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

// Rel is one document relationship.
type Rel struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Package describes a DOCX package. Body is the inner XML of w:body;
// Styles and Numbering are the inner XML of their root elements and are
// omitted when empty.
type Package struct {
	Body      string
	Styles    string
	Numbering string
	Core      string
	Rels      []Rel
	Media     map[string][]byte // part name -> data
	// Types maps extra file extensions to content types.
	Types map[string]string
}

// Bytes returns the package as a ZIP archive.
func (p Package) Bytes(t testing.TB) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	add := func(name, content string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	var types strings.Builder
	types.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>`)
	exts := make([]string, 0, len(p.Types))
	for ext := range p.Types {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		types.WriteString(`
  <Default Extension="` + ext + `" ContentType="` + p.Types[ext] + `"/>`)
	}
	types.WriteString(`
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)
	add("[Content_Types].xml", types.String())

	add("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	add("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document `+namespaces+`>
  <w:body>`+p.Body+`</w:body>
</w:document>`)

	if len(p.Rels) > 0 {
		var rels strings.Builder
		rels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
		for _, r := range p.Rels {
			mode := ""
			if r.External {
				mode = ` TargetMode="External"`
			}
			rels.WriteString(`
  <Relationship Id="` + r.ID + `" Type="` + r.Type + `" Target="` + r.Target + `"` + mode + `/>`)
		}
		rels.WriteString(`
</Relationships>`)
		add("word/_rels/document.xml.rels", rels.String())
	}

	if p.Styles != "" {
		add("word/styles.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+p.Styles+`</w:styles>`)
	}

	if p.Numbering != "" {
		add("word/numbering.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+p.Numbering+`</w:numbering>`)
	}

	if p.Core != "" {
		add("docProps/core.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">`+p.Core+`</cp:coreProperties>`)
	}

	names := make([]string, 0, len(p.Media))
	for name := range p.Media {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		add(name, string(p.Media[name]))
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

// Write stores the package in a temporary directory and returns its path.
func (p Package) Write(t testing.TB) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.docx")
	if err := os.WriteFile(path, p.Bytes(t), 0o644); err != nil {
		t.Fatalf("failed to write test docx: %v", err)
	}
	return path
}

// Para wraps runs in a paragraph.
func Para(inner ...string) string {
	return "<w:p>" + strings.Join(inner, "") + "</w:p>"
}

// Run returns a plain text run. The text is XML-escaped.
func Run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + escape(text) + `</w:t></w:r>`
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// Paras returns one plain paragraph per text.
func Paras(texts ...string) string {
	var sb strings.Builder
	for _, text := range texts {
		sb.WriteString(Para(Run(text)))
	}
	return sb.String()
}

// Picture returns a run holding an inline DrawingML picture.
func Picture(relID, descr string) string {
	return `<w:r><w:drawing><wp:inline><wp:docPr id="1" name="Picture 1" descr="` + escape(descr) + `"/>` +
		`<a:graphic><a:graphicData><pic:pic><pic:blipFill><a:blip r:embed="` + relID + `"/></pic:blipFill></pic:pic>` +
		`</a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`
}

// PNG returns a small valid PNG image.
func PNG(t testing.TB) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}
