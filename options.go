package quizdoc

import (
	"log/slog"

	"github.com/tsawler/quizdoc/ocr"
	"github.com/tsawler/quizdoc/quiz"
	"github.com/tsawler/quizdoc/render"
)

// extractOptions holds configuration for extraction.
type extractOptions struct {
	images render.ImageConfig

	// Segmentation
	answers           quiz.AnswerMode
	imagePolicy       quiz.ImagePolicy
	questionDelimiter string
	sectionDelimiter  string

	// Output
	sanitize bool

	logger     *slog.Logger
	recognizer render.TextRecognizer

	// ocr, when non-nil, makes the extractor start its own OCR client
	// unless a recognizer was supplied.
	ocr *ocr.Config
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		images:            render.ImageConfig{Embed: true},
		answers:           quiz.MultiAnswer,
		imagePolicy:       quiz.FirstImageOnly,
		questionDelimiter: quiz.DefaultQuestionDelimiter,
		sectionDelimiter:  quiz.DefaultSectionDelimiter,
	}
}

// clone creates a copy of extractOptions.
func (o extractOptions) clone() extractOptions {
	newOpts := o
	if o.ocr != nil {
		cfg := *o.ocr
		newOpts.ocr = &cfg
	}
	return newOpts
}

func (o extractOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

func (o extractOptions) renderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.Images = o.images
	opts.Logger = o.log()
	opts.Recognizer = o.recognizer
	return opts
}

func (o extractOptions) segmenter() *quiz.Segmenter {
	return &quiz.Segmenter{
		QuestionDelimiter: o.questionDelimiter,
		SectionDelimiter:  o.sectionDelimiter,
		Answers:           o.answers,
		Images:            o.imagePolicy,
		Logger:            o.log(),
	}
}
