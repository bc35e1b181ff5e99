// Package docx reads Word (Office Open XML) packages into an ordered,
// typed document tree.
//
// The package is read into memory once. Paragraphs keep their runs,
// hyperlinks and equations in document order, tables keep their cells as
// nested block lists, and equations are decoded into omml nodes.
//
// Basic usage:
//
//	doc, err := docx.Open("quiz.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for block := range doc.Blocks() {
//	    switch b := block.(type) {
//	    case *docx.Paragraph:
//	        // ...
//	    case *docx.Table:
//	        // ...
//	    }
//	}
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"os"
	"path"
	"strings"
)

// Required package parts.
const (
	partContentTypes = "[Content_Types].xml"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partNumbering    = "word/numbering.xml"
	partCoreProps    = "docProps/core.xml"
)

// DocumentReadError reports a package that cannot be opened or parsed.
type DocumentReadError struct {
	Path string // file path, empty for in-memory input
	Op   string // open, validate, parse
	Err  error
}

func (e *DocumentReadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("docx: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("docx: %s: %v", e.Op, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// Relationship is an entry of word/_rels/document.xml.rels.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Part is a binary package part with its content type.
type Part struct {
	Name        string
	ContentType string
	Data        []byte
}

// Properties holds Dublin Core document metadata.
type Properties struct {
	Title       string
	Subject     string
	Creator     string
	Keywords    []string
	Description string
}

// Document is a parsed DOCX package. It is immutable after Open and safe
// for concurrent readers.
type Document struct {
	path      string
	files     map[string]*zip.File
	body      []Block
	types     *contentTypesXML
	rels      map[string]Relationship
	styles    *StyleResolver
	numbering *NumberingResolver
	props     Properties
}

// Open reads a DOCX file.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &DocumentReadError{Path: filename, Op: "open", Err: err}
	}
	doc, err := load(data)
	if err != nil {
		if re, ok := err.(*DocumentReadError); ok {
			re.Path = filename
		}
		return nil, err
	}
	doc.path = filename
	return doc, nil
}

// OpenBytes reads a DOCX package held in memory.
func OpenBytes(data []byte) (*Document, error) {
	return load(data)
}

// NewReader reads a DOCX package of the given size from r. The content is
// copied, so r may be closed once NewReader returns.
func NewReader(r io.ReaderAt, size int64) (*Document, error) {
	data, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, &DocumentReadError{Op: "open", Err: err}
	}
	return load(data)
}

func load(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &DocumentReadError{Op: "open", Err: fmt.Errorf("opening ZIP archive: %w", err)}
	}

	doc := &Document{
		files: make(map[string]*zip.File, len(zr.File)),
		rels:  make(map[string]Relationship),
	}
	for _, f := range zr.File {
		doc.files[f.Name] = f
	}

	if err := doc.validate(); err != nil {
		return nil, &DocumentReadError{Op: "validate", Err: err}
	}

	if err := doc.parseContentTypes(); err != nil {
		return nil, &DocumentReadError{Op: "parse", Err: fmt.Errorf("parsing content types: %w", err)}
	}

	// Optional parts: a broken one is treated as absent.
	doc.parseRelationships()
	doc.parseStyles()
	doc.parseNumbering()
	doc.parseCoreProperties()

	if err := doc.parseDocument(); err != nil {
		return nil, &DocumentReadError{Op: "parse", Err: fmt.Errorf("parsing document: %w", err)}
	}

	return doc, nil
}

// Close releases the package contents. It is safe to call more than once.
func (d *Document) Close() error {
	d.files = nil
	return nil
}

// Path returns the file the document was opened from, if any.
func (d *Document) Path() string {
	return d.path
}

// Blocks yields the top-level blocks of the body in document order. Table
// cells are not descended into; use Cell.Blocks for that.
func (d *Document) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, b := range d.body {
			if !yield(b) {
				return
			}
		}
	}
}

// Relationship returns the document relationship with the given ID.
func (d *Document) Relationship(id string) (Relationship, bool) {
	rel, ok := d.rels[id]
	return rel, ok
}

// Media resolves an internal relationship to the part it targets.
func (d *Document) Media(relID string) (Part, bool) {
	rel, ok := d.rels[relID]
	if !ok || rel.External {
		return Part{}, false
	}

	name := resolveTarget(rel.Target)
	data, err := d.getFileContent(name)
	if err != nil {
		return Part{}, false
	}

	return Part{Name: name, ContentType: d.ContentType(name), Data: data}, true
}

// ContentType returns the content type registered for a part name, by
// override first and then by extension.
func (d *Document) ContentType(name string) string {
	if d.types == nil {
		return ""
	}
	partName := "/" + strings.TrimPrefix(name, "/")
	for _, o := range d.types.Overrides {
		if strings.EqualFold(o.PartName, partName) {
			return o.ContentType
		}
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	for _, def := range d.types.Defaults {
		if strings.EqualFold(def.Extension, ext) {
			return def.ContentType
		}
	}
	return ""
}

// ResolveStyle returns the effective properties of a paragraph style.
func (d *Document) ResolveStyle(styleID string) *ResolvedStyle {
	return d.styles.Resolve(styleID)
}

// StyleName returns the display name of a paragraph style.
func (d *Document) StyleName(styleID string) string {
	return d.styles.Name(styleID)
}

// NumberingFormat returns the numFmt of a numbering instance level.
func (d *Document) NumberingFormat(numID string, level int) (string, bool) {
	return d.numbering.Format(numID, level)
}

// Properties returns the document metadata.
func (d *Document) Properties() Properties {
	return d.props
}

// validate checks that required DOCX files exist.
func (d *Document) validate() error {
	for _, name := range []string{partContentTypes, partDocument} {
		if _, ok := d.files[name]; !ok {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (d *Document) getFileContent(name string) ([]byte, error) {
	f, ok := d.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (d *Document) parseContentTypes() error {
	data, err := d.getFileContent(partContentTypes)
	if err != nil {
		return err
	}
	d.types = &contentTypesXML{}
	return xml.Unmarshal(data, d.types)
}

// parseRelationships parses the document relationships file.
func (d *Document) parseRelationships() {
	data, err := d.getFileContent(partDocumentRels)
	if err != nil {
		return
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return
	}
	for _, r := range rels.Relationships {
		d.rels[r.ID] = Relationship{
			ID:       r.ID,
			Type:     r.Type,
			Target:   r.Target,
			External: strings.EqualFold(r.TargetMode, "External"),
		}
	}
}

// parseStyles parses the styles definition file.
func (d *Document) parseStyles() {
	var styles *stylesXML
	if data, err := d.getFileContent(partStyles); err == nil {
		styles = &stylesXML{}
		if xml.Unmarshal(data, styles) != nil {
			styles = nil
		}
	}
	d.styles = NewStyleResolver(styles)
}

// parseNumbering parses the numbering definitions file.
func (d *Document) parseNumbering() {
	var numbering *numberingXML
	if data, err := d.getFileContent(partNumbering); err == nil {
		numbering = &numberingXML{}
		if xml.Unmarshal(data, numbering) != nil {
			numbering = nil
		}
	}
	d.numbering = NewNumberingResolver(numbering)
}

// parseCoreProperties parses Dublin Core metadata.
func (d *Document) parseCoreProperties() {
	data, err := d.getFileContent(partCoreProps)
	if err != nil {
		return
	}

	var core corePropertiesXML
	if xml.Unmarshal(data, &core) != nil {
		return
	}
	d.props = Properties{
		Title:       core.Title,
		Subject:     core.Subject,
		Creator:     core.Creator,
		Description: core.Description,
	}
	if core.Keywords != "" {
		for _, kw := range strings.Split(core.Keywords, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				d.props.Keywords = append(d.props.Keywords, kw)
			}
		}
	}
}

// parseDocument parses the main document content.
func (d *Document) parseDocument() error {
	data, err := d.getFileContent(partDocument)
	if err != nil {
		return err
	}
	d.body, err = parseBody(data)
	return err
}

// resolveTarget turns a relationship target into a package part name.
// Relative targets are resolved against word/.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Join("word", target)
}
