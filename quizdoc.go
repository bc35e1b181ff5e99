// Package quizdoc provides a fluent API for turning Word (DOCX) quiz
// documents into HTML fragments with inline LaTeX and into structured
// multiple-choice and written questions.
//
// Basic usage:
//
//	questions, warnings, err := quizdoc.Open("quiz.docx").Questions()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", quizdoc.FormatWarnings(warnings))
//	}
//
// With options:
//
//	questions, _, err := quizdoc.Open("quiz.docx").
//	    ImageDir("out/images").
//	    SingleAnswer().
//	    Sanitize().
//	    Questions()
//
// For lower-level access the docx, render and quiz packages are also
// available.
package quizdoc

import (
	"bytes"
	"io"

	"github.com/tsawler/quizdoc/docx"
	"github.com/tsawler/quizdoc/internal/diag"
)

// Warning is a non-fatal anomaly found while processing a document, such
// as an image that could not be resolved or a question that was dropped.
type Warning = diag.Warning

// FormatWarnings joins warnings into a single multi-line string.
func FormatWarnings(warnings []Warning) string {
	return diag.Format(warnings)
}

// Open returns an Extractor for the DOCX file at filename. The file is
// read by the first terminal operation.
//
// Example:
//
//	questions, warnings, err := quizdoc.Open("quiz.docx").Questions()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns an Extractor for a DOCX package held in memory.
func FromBytes(data []byte) *Extractor {
	if data == nil {
		data = []byte{}
	}
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// FromReader returns an Extractor for a DOCX package of the given size
// read from r. The content is read immediately.
func FromReader(r io.ReaderAt, size int64) *Extractor {
	var buf bytes.Buffer
	_, err := io.Copy(&buf, io.NewSectionReader(r, 0, size))
	ext := FromBytes(buf.Bytes())
	if err != nil {
		ext.err = &docx.DocumentReadError{Op: "open", Err: err}
	}
	return ext
}

// FromDocument creates an Extractor from an already parsed document.
// The caller is responsible for closing the document.
//
// Example:
//
//	doc, err := docx.Open("quiz.docx")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	html, _, err := quizdoc.FromDocument(doc).HTML()
func FromDocument(doc *docx.Document) *Extractor {
	return &Extractor{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	cfg := quizdoc.Must(quizdoc.LoadConfig("quizdoc.yaml"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustValue is a helper that wraps a call to a terminal operation such as
// Questions() and panics if the error is non-nil. It discards warnings.
//
// Example:
//
//	questions := quizdoc.MustValue(quizdoc.Open("quiz.docx").Questions())
func MustValue[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
