// Package export writes parsed questions in interchange formats: JSON,
// YAML, a Markdown quiz sheet and an XLSX question bank.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/quizdoc/quiz"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
	XLSX     Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, Markdown, XLSX}

// ParseFormat parses a format name. "yml" and "md" are accepted as
// aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "markdown", "md":
		return Markdown, nil
	case "xlsx":
		return XLSX, nil
	}
	return "", fmt.Errorf("export: unknown format %q", name)
}

// Write encodes questions to w in the given format.
func Write(w io.Writer, format Format, questions []quiz.Question) error {
	switch format {
	case JSON:
		return WriteJSON(w, questions)
	case YAML:
		return WriteYAML(w, questions)
	case Markdown:
		return WriteMarkdown(w, questions)
	case XLSX:
		return WriteXLSX(w, questions)
	}
	return fmt.Errorf("export: unknown format %q", format)
}

// WriteJSON writes questions as an indented JSON array. Markup in fields is
// not escaped.
func WriteJSON(w io.Writer, questions []quiz.Question) error {
	if questions == nil {
		questions = []quiz.Question{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(questions); err != nil {
		return fmt.Errorf("export: encoding json: %w", err)
	}
	return nil
}

// WriteYAML writes questions as a YAML sequence.
func WriteYAML(w io.Writer, questions []quiz.Question) error {
	if questions == nil {
		questions = []quiz.Question{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(questions); err != nil {
		return fmt.Errorf("export: encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("export: encoding yaml: %w", err)
	}
	return nil
}
