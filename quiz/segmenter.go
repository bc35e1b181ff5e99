package quiz

import (
	"log/slog"
	"strings"

	"github.com/tsawler/quizdoc/internal/diag"
)

// Default delimiters.
const (
	DefaultQuestionDelimiter = "=="
	DefaultSectionDelimiter  = "--"
)

// AnswerMode selects how the answer block is interpreted.
type AnswerMode int

const (
	// MultiAnswer keeps every answer token.
	MultiAnswer AnswerMode = iota
	// SingleAnswer keeps only the first answer token.
	SingleAnswer
)

// ImagePolicy selects what happens to images beyond the first in a block.
type ImagePolicy int

const (
	// FirstImageOnly uses the first image as the field image and strips
	// every image from the text.
	FirstImageOnly ImagePolicy = iota
	// KeepExtraImages uses the first image as the field image and leaves
	// later images in the text.
	KeepExtraImages
)

// Field positions within a question group.
const (
	segContent     = 0
	segOptionA     = 1 // options A to D occupy 1-4
	segAnswers     = 5
	segExplanation = 6
	segTags        = 7
)

// Segmenter turns a fragment stream into questions. The zero value uses
// the default delimiters, multi-answer mode and the first-image policy.
type Segmenter struct {
	QuestionDelimiter string
	SectionDelimiter  string
	Answers           AnswerMode
	Images            ImagePolicy

	// Logger receives a warning for every dropped question. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// NewSegmenter returns a Segmenter with the default delimiters.
func NewSegmenter() *Segmenter {
	return &Segmenter{
		QuestionDelimiter: DefaultQuestionDelimiter,
		SectionDelimiter:  DefaultSectionDelimiter,
	}
}

// segmentState accumulates the blocks of the question being read.
type segmentState struct {
	segments []string
	lines    []string
}

// flush closes the current block. An empty block is recorded only when
// force is set.
func (st *segmentState) flush(force bool) {
	if len(st.lines) == 0 && !force {
		return
	}
	st.segments = append(st.segments, strings.TrimSpace(strings.Join(st.lines, "\n")))
	st.lines = st.lines[:0]
}

// Parse segments fragments into questions. Questions without content text
// or image are dropped and reported as warnings.
func (s *Segmenter) Parse(fragments []string) ([]Question, []diag.Warning) {
	qdelim, sdelim := s.QuestionDelimiter, s.SectionDelimiter
	if qdelim == "" {
		qdelim = DefaultQuestionDelimiter
	}
	if sdelim == "" {
		sdelim = DefaultSectionDelimiter
	}
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}

	var (
		questions []Question
		warn      diag.Collector
		st        segmentState
		group     int
	)

	finish := func() {
		if len(st.segments) == 0 {
			return
		}
		group++
		q, ok := s.build(st.segments, len(questions)+1)
		if ok {
			questions = append(questions, q)
		} else {
			warn.Addf(diag.MalformedSegment, -1, 0, "question %d has no content text or image; dropped", group)
			log.Warn("question dropped", "question", group, "segments", len(st.segments))
		}
		st.segments = nil
		st.lines = st.lines[:0]
	}

	for _, fragment := range fragments {
		switch {
		case isMarker(fragment, sdelim):
			st.flush(true)
		case isMarker(fragment, qdelim):
			st.flush(false)
			finish()
		default:
			st.lines = append(st.lines, fragment)
		}
	}
	st.flush(false)
	finish()

	return questions, warn.Warnings()
}

// build maps question blocks to fields by position.
func (s *Segmenter) build(segments []string, ordinal int) (Question, bool) {
	block := func(i int) string {
		if i < len(segments) {
			return segments[i]
		}
		return ""
	}
	keep := s.Images == KeepExtraImages

	content, contentImage := splitTextAndImage(block(segContent), keep)
	if content == "" && contentImage == "" {
		return Question{}, false
	}

	q := Question{
		Content:      content,
		ContentImage: contentImage,
		Tags:         parseTags(block(segTags)),
	}
	if q.Content == "" {
		q.Content = contentImage
	}

	for i := range 4 {
		text, image := splitTextAndImage(block(segOptionA+i), keep)
		q.setOption(i, text, image)
	}

	q.Answers = parseAnswers(block(segAnswers))
	if s.Answers == SingleAnswer && len(q.Answers) > 1 {
		q.Answers = q.Answers[:1]
	}
	if len(q.Answers) > 0 {
		q.Answer = q.Answers[0]
	}
	q.AllowMultiple = len(q.Answers) > 1

	q.Explanation, q.ExplanationImage = splitTextAndImage(block(segExplanation), keep)

	q.Type = TypeWritten
	if q.HasOptions() {
		q.Type = TypeMCQ
	}
	q.ID = questionID(ordinal, q.Content)

	return q, true
}
