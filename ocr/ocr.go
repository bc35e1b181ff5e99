// Package ocr recognizes text in document images. A Client supplies alt
// text for images that carry no description.
//
// Recognition uses the Tesseract engine via gosseract and is compiled in
// only with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Without the tag, New returns ErrOCRNotEnabled.
package ocr

import (
	"errors"
	"strings"
)

// ErrOCRNotEnabled is returned when OCR support was not compiled in.
var ErrOCRNotEnabled = errors.New("ocr: support not enabled; rebuild with -tags ocr")

// PageSegMode is a Tesseract page segmentation mode. The zero value keeps
// the engine default.
type PageSegMode int

// Page segmentation modes suited to document images.
const (
	PSMAuto        PageSegMode = 3  // fully automatic
	PSMSingleBlock PageSegMode = 6  // one uniform block of text
	PSMSingleLine  PageSegMode = 7  // one text line
	PSMSparseText  PageSegMode = 11 // as much text as possible, in no order
)

// Config configures a Client.
type Config struct {
	// Language is one or more Tesseract language codes separated by "+"
	// or ",", for example "eng+fra". Defaults to "eng".
	Language string

	// PageSegMode selects page segmentation. Equation and label images
	// usually work best with PSMSingleBlock.
	PageSegMode PageSegMode
}

// DefaultConfig returns English recognition of single text blocks.
func DefaultConfig() Config {
	return Config{Language: "eng", PageSegMode: PSMSingleBlock}
}

// languages splits a language list into codes.
func languages(lang string) []string {
	var codes []string
	for _, code := range strings.FieldsFunc(lang, func(r rune) bool { return r == '+' || r == ',' }) {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return []string{"eng"}
	}
	return codes
}
