package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/quizdoc/internal/docxtest"
)

func TestOpen(t *testing.T) {
	path := docxtest.Package{Body: docxtest.Paras("Hello World")}.Write(t)

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	if doc.Path() != path {
		t.Errorf("Path() = %q, want %q", doc.Path(), path)
	}

	var blocks []Block
	for b := range doc.Blocks() {
		blocks = append(blocks, b)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	para, ok := blocks[0].(*Paragraph)
	if !ok {
		t.Fatalf("block is %T, want *Paragraph", blocks[0])
	}
	run := para.Inlines[0].(*Run)
	if got := run.Content[0].(Text).Value; got != "Hello World" {
		t.Errorf("text = %q, want %q", got, "Hello World")
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.docx")
	var re *DocumentReadError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *DocumentReadError", err)
	}
	if re.Op != "open" || re.Path != "/nonexistent/file.docx" {
		t.Errorf("Op = %q, Path = %q", re.Op, re.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("error should unwrap to os.ErrNotExist")
	}
}

func TestOpen_InvalidZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.docx")
	if err := os.WriteFile(path, []byte("not a zip file"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	var re *DocumentReadError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *DocumentReadError", err)
	}
	if re.Path != path {
		t.Errorf("Path = %q, want %q", re.Path, path)
	}
}

func TestOpenBytes_MissingParts(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{"no document", []string{"[Content_Types].xml"}},
		{"no content types", []string{"word/document.xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			for _, name := range tt.files {
				w, _ := zw.Create(name)
				w.Write([]byte("<x/>"))
			}
			zw.Close()

			_, err := OpenBytes(buf.Bytes())
			var re *DocumentReadError
			if !errors.As(err, &re) {
				t.Fatalf("error = %v, want *DocumentReadError", err)
			}
			if re.Op != "validate" {
				t.Errorf("Op = %q, want validate", re.Op)
			}
		})
	}
}

func TestOpenBytes_MalformedDocument(t *testing.T) {
	data := docxtest.Package{Body: `<w:p><w:r><w:t>unterminated`}.Bytes(t)

	_, err := OpenBytes(data)
	var re *DocumentReadError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *DocumentReadError", err)
	}
	if re.Op != "parse" {
		t.Errorf("Op = %q, want parse", re.Op)
	}
}

func TestOpenBytes_BrokenOptionalParts(t *testing.T) {
	data := docxtest.Package{
		Body:      docxtest.Paras("still readable"),
		Styles:    `<w:style w:styleId="Broken"`,
		Numbering: `<w:num`,
	}.Bytes(t)

	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	if got := doc.StyleName("Broken"); got != "" {
		t.Errorf("StyleName = %q, want empty", got)
	}
	if _, ok := doc.NumberingFormat("1", 0); ok {
		t.Error("NumberingFormat should report missing numbering")
	}
}

func TestNewReader(t *testing.T) {
	data := docxtest.Package{Body: docxtest.Paras("one", "two")}.Bytes(t)

	doc, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	count := 0
	for range doc.Blocks() {
		count++
	}
	if count != 2 {
		t.Errorf("got %d blocks, want 2", count)
	}
}

func TestDocument_BlocksStopsEarly(t *testing.T) {
	data := docxtest.Package{Body: docxtest.Paras("a", "b", "c")}.Bytes(t)
	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for range doc.Blocks() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("iterated %d blocks after break, want 1", count)
	}
}

func TestDocument_Media(t *testing.T) {
	img := docxtest.PNG(t)
	data := docxtest.Package{
		Body: docxtest.Para(docxtest.Picture("rId5", "")),
		Rels: []docxtest.Rel{
			{ID: "rId5", Type: docxtest.ImageRel, Target: "media/image1.png"},
			{ID: "rId6", Type: docxtest.ImageRel, Target: "/word/media/image1.png"},
			{ID: "rId7", Type: docxtest.HyperlinkRel, Target: "https://example.com", External: true},
			{ID: "rId8", Type: docxtest.ImageRel, Target: "media/missing.png"},
		},
		Media: map[string][]byte{"word/media/image1.png": img},
		Types: map[string]string{"png": "image/png"},
	}.Bytes(t)

	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		relID  string
		wantOK bool
	}{
		{"rId5", true},
		{"rId6", true},
		{"rId7", false},
		{"rId8", false},
		{"rId99", false},
	}

	for _, tt := range tests {
		t.Run(tt.relID, func(t *testing.T) {
			part, ok := doc.Media(tt.relID)
			if ok != tt.wantOK {
				t.Fatalf("Media(%q) ok = %v, want %v", tt.relID, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if part.Name != "word/media/image1.png" {
				t.Errorf("Name = %q", part.Name)
			}
			if part.ContentType != "image/png" {
				t.Errorf("ContentType = %q, want image/png", part.ContentType)
			}
			if !bytes.Equal(part.Data, img) {
				t.Error("Data does not match the stored image")
			}
		})
	}

	rel, ok := doc.Relationship("rId7")
	if !ok || !rel.External || rel.Target != "https://example.com" {
		t.Errorf("Relationship(rId7) = %+v, %v", rel, ok)
	}
}

func TestDocument_ContentType(t *testing.T) {
	data := docxtest.Package{
		Body:  docxtest.Paras("x"),
		Types: map[string]string{"PNG": "image/png"},
	}.Bytes(t)
	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
		{"word/media/a.png", "image/png"},
		{"word/styles.xml", "application/xml"},
		{"word/media/a.emf", ""},
	}
	for _, tt := range tests {
		if got := doc.ContentType(tt.name); got != tt.want {
			t.Errorf("ContentType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDocument_Properties(t *testing.T) {
	data := docxtest.Package{
		Body: docxtest.Paras("x"),
		Core: `<dc:title>Unit 3 Quiz</dc:title><dc:creator>Physics Dept</dc:creator>` +
			`<cp:keywords>motion, forces,,energy</cp:keywords>`,
	}.Bytes(t)
	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatal(err)
	}

	props := doc.Properties()
	if props.Title != "Unit 3 Quiz" {
		t.Errorf("Title = %q", props.Title)
	}
	if props.Creator != "Physics Dept" {
		t.Errorf("Creator = %q", props.Creator)
	}
	want := []string{"motion", "forces", "energy"}
	if len(props.Keywords) != len(want) {
		t.Fatalf("Keywords = %v, want %v", props.Keywords, want)
	}
	for i := range want {
		if props.Keywords[i] != want[i] {
			t.Errorf("Keywords[%d] = %q, want %q", i, props.Keywords[i], want[i])
		}
	}
}

func TestDocument_Close(t *testing.T) {
	data := docxtest.Package{
		Body:  docxtest.Para(docxtest.Picture("rId1", "")),
		Rels:  []docxtest.Rel{{ID: "rId1", Type: docxtest.ImageRel, Target: "media/a.png"}},
		Media: map[string][]byte{"word/media/a.png": docxtest.PNG(t)},
	}.Bytes(t)
	doc, err := OpenBytes(data)
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := doc.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := doc.Media("rId1"); ok {
		t.Error("Media should fail after Close")
	}
}

func TestDocumentReadError_Error(t *testing.T) {
	inner := errors.New("boom")
	tests := []struct {
		err  *DocumentReadError
		want string
	}{
		{&DocumentReadError{Path: "a.docx", Op: "open", Err: inner}, "docx: open a.docx: boom"},
		{&DocumentReadError{Op: "parse", Err: inner}, "docx: parse: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if !errors.Is(tt.err, inner) {
			t.Error("Unwrap should expose the cause")
		}
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"media/image1.png", "word/media/image1.png"},
		{"../media/image1.png", "media/image1.png"},
		{"/word/media/image1.png", "word/media/image1.png"},
	}
	for _, tt := range tests {
		if got := resolveTarget(tt.target); got != tt.want {
			t.Errorf("resolveTarget(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}
