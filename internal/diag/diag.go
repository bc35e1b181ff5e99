// Package diag holds the non-fatal warning model shared by the rendering
// and question segmentation stages.
//
// Only an unreadable document is fatal. Everything else (an image that
// cannot be resolved, a question with no usable content) is recorded as a
// Warning and processing continues with a degraded result.
package diag

import (
	"fmt"
	"strings"
)

// Kind classifies a warning.
type Kind int

const (
	// ImageResolution means a drawing reference could not be resolved to a
	// binary part. The drawing produced no output.
	ImageResolution Kind = iota + 1
	// MalformedSegment means a question group had no text and no image in
	// its content segment and was dropped.
	MalformedSegment
	// ImageWrite means an extracted image could not be written to the
	// configured output directory.
	ImageWrite
	// Recognition means OCR of an image failed. The image is still emitted.
	Recognition
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case ImageResolution:
		return "image-resolution"
	case MalformedSegment:
		return "malformed-segment"
	case ImageWrite:
		return "image-write"
	case Recognition:
		return "recognition"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal anomaly found while processing a document.
type Warning struct {
	Kind    Kind
	Message string

	// Position of the anomaly. Para is -1 when it does not apply.
	Para int
	Run  int
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Para < 0 {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s [paragraph %d, run %d]: %s", w.Kind, w.Para, w.Run, w.Message)
}

// Collector accumulates warnings. The zero value is ready to use.
type Collector struct {
	warnings []Warning
}

// Add records a warning.
func (c *Collector) Add(w Warning) {
	c.warnings = append(c.warnings, w)
}

// Addf records a warning with a formatted message.
func (c *Collector) Addf(kind Kind, para, run int, format string, args ...any) {
	c.Add(Warning{Kind: kind, Message: fmt.Sprintf(format, args...), Para: para, Run: run})
}

// Warnings returns the recorded warnings in the order they were added.
func (c *Collector) Warnings() []Warning {
	if c == nil {
		return nil
	}
	return c.warnings
}

// Format joins warnings into a single multi-line string.
func Format(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, w := range warnings {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(w.String())
	}
	return sb.String()
}
