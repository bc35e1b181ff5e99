// Package format identifies word-processing document formats so inputs
// that are not Office Open XML documents can be rejected with a precise
// error before parsing.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Word document (.docx).
	DOCX
	// DOCM indicates a macro-enabled Word document (.docm).
	DOCM
	// DOC indicates a legacy binary Word document (.doc).
	DOC
	// ODT indicates an OpenDocument Text document (.odt).
	ODT
	// RTF indicates a Rich Text Format document (.rtf).
	RTF
	// PDF indicates a PDF document.
	PDF
	// ZIP indicates a ZIP archive that is not a word-processing document.
	ZIP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOCM:
		return "DOCM"
	case DOC:
		return "DOC"
	case ODT:
		return "ODT"
	case RTF:
		return "RTF"
	case PDF:
		return "PDF"
	case ZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case DOCM:
		return ".docm"
	case DOC:
		return ".doc"
	case ODT:
		return ".odt"
	case RTF:
		return ".rtf"
	case PDF:
		return ".pdf"
	case ZIP:
		return ".zip"
	default:
		return ""
	}
}

// Supported reports whether documents of this format can be parsed.
func (f Format) Supported() bool {
	return f == DOCX || f == DOCM
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx", ".dotx":
		return DOCX
	case ".docm", ".dotm":
		return DOCM
	case ".doc", ".dot":
		return DOC
	case ".odt":
		return ODT
	case ".rtf":
		return RTF
	case ".pdf":
		return PDF
	case ".zip":
		return ZIP
	default:
		return Unknown
	}
}

var (
	magicZIP = []byte("PK\x03\x04")
	magicCFB = []byte("\xD0\xCF\x11\xE0\xA1\xB1\x1A\xE1")
	magicPDF = []byte("%PDF")
	magicRTF = []byte(`{\rtf`)
)

// DetectBytes determines the format of an in-memory document.
func DetectBytes(data []byte) Format {
	f, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}
	return f
}

// DetectFromReader inspects content to determine the format. ZIP archives
// are opened to tell OOXML and OpenDocument packages apart.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 8)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	switch {
	case bytes.HasPrefix(magic, magicZIP):
		return detectZIPFormat(r, size)
	case bytes.HasPrefix(magic, magicCFB):
		return DOC, nil
	case bytes.HasPrefix(magic, magicPDF):
		return PDF, nil
	case bytes.HasPrefix(magic, magicRTF):
		return RTF, nil
	}
	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive for a word-processing main part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	var hasDocument bool
	var contentTypes *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case "mimetype":
			if strings.Contains(readSmall(f), "application/vnd.oasis.opendocument.text") {
				return ODT, nil
			}
		case "[Content_Types].xml":
			contentTypes = f
		case "word/document.xml":
			hasDocument = true
		}
	}

	if !hasDocument || contentTypes == nil {
		return ZIP, nil
	}
	if strings.Contains(readSmall(contentTypes), "macroEnabled.main+xml") {
		return DOCM, nil
	}
	return DOCX, nil
}

// readSmall returns up to 64 KiB of a ZIP entry.
func readSmall(f *zip.File) string {
	rc, err := f.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()

	data, _ := io.ReadAll(io.LimitReader(rc, 64<<10))
	return string(data)
}
