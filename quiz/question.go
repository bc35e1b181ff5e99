// Package quiz segments rendered document fragments into quiz questions.
//
// A document lists questions one after another. Within a question, blocks
// are separated by the section delimiter ("--") and questions are separated
// by the question delimiter ("=="). Blocks map to fields by position:
//
//	0  content
//	1  option A
//	2  option B
//	3  option C
//	4  option D
//	5  answer key
//	6  explanation
//	7  tags
//
// Missing trailing blocks are empty. A question whose content has neither
// text nor an image is dropped with a warning.
package quiz

import (
	"strconv"

	"github.com/google/uuid"
)

// Question types.
const (
	TypeMCQ     = "MCQ"
	TypeWritten = "WRITTEN"
)

// questionNamespace seeds deterministic question IDs.
var questionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/tsawler/quizdoc/question"))

// Question is one parsed quiz question. Image fields hold the src of the
// first image of the corresponding block.
type Question struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`

	Content      string `json:"content" yaml:"content"`
	ContentImage string `json:"content_image,omitempty" yaml:"content_image,omitempty"`

	OptionA      string `json:"option_a,omitempty" yaml:"option_a,omitempty"`
	OptionAImage string `json:"option_a_image,omitempty" yaml:"option_a_image,omitempty"`
	OptionB      string `json:"option_b,omitempty" yaml:"option_b,omitempty"`
	OptionBImage string `json:"option_b_image,omitempty" yaml:"option_b_image,omitempty"`
	OptionC      string `json:"option_c,omitempty" yaml:"option_c,omitempty"`
	OptionCImage string `json:"option_c_image,omitempty" yaml:"option_c_image,omitempty"`
	OptionD      string `json:"option_d,omitempty" yaml:"option_d,omitempty"`
	OptionDImage string `json:"option_d_image,omitempty" yaml:"option_d_image,omitempty"`

	// Answer is the first answer token. Answers holds every token, or only
	// the first one in single-answer mode.
	Answer        string   `json:"answer" yaml:"answer"`
	Answers       []string `json:"answers" yaml:"answers"`
	AllowMultiple bool     `json:"allow_multiple" yaml:"allow_multiple"`

	Explanation      string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	ExplanationImage string `json:"explanation_image,omitempty" yaml:"explanation_image,omitempty"`

	Tags []string `json:"tags" yaml:"tags"`
}

// Option is one answer choice.
type Option struct {
	Label string // A-D
	Text  string
	Image string
}

// Options returns the four answer choices in order.
func (q *Question) Options() [4]Option {
	return [4]Option{
		{Label: "A", Text: q.OptionA, Image: q.OptionAImage},
		{Label: "B", Text: q.OptionB, Image: q.OptionBImage},
		{Label: "C", Text: q.OptionC, Image: q.OptionCImage},
		{Label: "D", Text: q.OptionD, Image: q.OptionDImage},
	}
}

// setOption stores the choice at index i (0 for A).
func (q *Question) setOption(i int, text, image string) {
	switch i {
	case 0:
		q.OptionA, q.OptionAImage = text, image
	case 1:
		q.OptionB, q.OptionBImage = text, image
	case 2:
		q.OptionC, q.OptionCImage = text, image
	case 3:
		q.OptionD, q.OptionDImage = text, image
	}
}

// HasOptions reports whether any choice has text or an image.
func (q *Question) HasOptions() bool {
	for _, o := range q.Options() {
		if o.Text != "" || o.Image != "" {
			return true
		}
	}
	return false
}

// questionID derives a stable ID from the question's position and content.
func questionID(ordinal int, content string) string {
	return uuid.NewSHA1(questionNamespace, []byte(strconv.Itoa(ordinal)+"\x00"+content)).String()
}
