package quizdoc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/quizdoc/docx"
	"github.com/tsawler/quizdoc/export"
	"github.com/tsawler/quizdoc/format"
	"github.com/tsawler/quizdoc/internal/diag"
	"github.com/tsawler/quizdoc/ocr"
	"github.com/tsawler/quizdoc/quiz"
	"github.com/tsawler/quizdoc/render"
)

// ErrUnsupportedFormat is returned when the input is a known document
// format other than DOCX, such as a legacy .doc file.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extractor provides a fluent interface for turning a DOCX document into
// fragments, questions or HTML. Each configuration method returns a new
// Extractor instance, so a configured Extractor can be shared as a
// template. Terminal operations never modify the Extractor and may run
// concurrently.
type Extractor struct {
	// Source (only one is set)
	filename string
	data     []byte
	doc      *docx.Document // supplied by the caller, never closed here

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		doc:      e.doc,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// session holds what one terminal operation opened. Only the resources
// owned by the session are released by close.
type session struct {
	doc      *docx.Document
	ownsDoc  bool
	ocr      *ocr.Client
	renderer *render.Renderer
}

func (s *session) close() error {
	var err error
	if s.ocr != nil {
		err = s.ocr.Close()
	}
	if s.ownsDoc {
		err = errors.Join(err, s.doc.Close())
	}
	return err
}

// openDocument reads and parses the source document.
func (e *Extractor) openDocument() (*docx.Document, error) {
	data := e.data
	if data == nil {
		if e.filename == "" {
			return nil, fmt.Errorf("no filename specified")
		}
		var err error
		data, err = os.ReadFile(e.filename)
		if err != nil {
			return nil, &docx.DocumentReadError{Path: e.filename, Op: "open", Err: err}
		}
	}

	// Anything that is not another known format goes to the DOCX reader,
	// which reports broken packages precisely.
	switch f := format.DetectBytes(data); f {
	case format.DOC, format.ODT, format.RTF, format.PDF:
		return nil, fmt.Errorf("%w: %s (convert the document to DOCX)", ErrUnsupportedFormat, f)
	}

	doc, err := docx.OpenBytes(data)
	if err != nil {
		var re *docx.DocumentReadError
		if errors.As(err, &re) && re.Path == "" {
			re.Path = e.filename
		}
		return nil, err
	}
	return doc, nil
}

// Close is provided so an Extractor can be used as an io.Closer. Terminal
// operations release everything they open, so there is nothing left to
// release and Close always returns nil.
func (e *Extractor) Close() error {
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// EmbedImages writes images inline as base64 data URIs. This is the
// default.
func (e *Extractor) EmbedImages() *Extractor {
	newExt := e.clone()
	newExt.options.images.Embed = true
	return newExt
}

// ImageDir writes images as files under dir instead of embedding them.
//
// Example:
//
//	questions, _, err := quizdoc.Open("quiz.docx").ImageDir("out/images").Questions()
func (e *Extractor) ImageDir(dir string) *Extractor {
	newExt := e.clone()
	newExt.options.images.Embed = false
	newExt.options.images.Dir = dir
	return newExt
}

// ImageNamer sets the file name template for images written by ImageDir.
// The placeholders {para}, {run}, {index} and {ext} are substituted.
//
// Example:
//
//	quizdoc.Open("quiz.docx").ImageDir("img").ImageNamer("q_{para}_{index}.{ext}")
func (e *Extractor) ImageNamer(tmpl string) *Extractor {
	newExt := e.clone()
	newExt.options.images.Namer = tmpl
	return newExt
}

// SingleAnswer keeps only the first answer token of each question.
func (e *Extractor) SingleAnswer() *Extractor {
	newExt := e.clone()
	newExt.options.answers = quiz.SingleAnswer
	return newExt
}

// MultiAnswer keeps every answer token. This is the default.
func (e *Extractor) MultiAnswer() *Extractor {
	newExt := e.clone()
	newExt.options.answers = quiz.MultiAnswer
	return newExt
}

// KeepExtraImages leaves images after the first in a field's text instead
// of stripping them.
func (e *Extractor) KeepExtraImages() *Extractor {
	newExt := e.clone()
	newExt.options.imagePolicy = quiz.KeepExtraImages
	return newExt
}

// Delimiters sets the question and section marker tokens. An empty value
// keeps the current one.
func (e *Extractor) Delimiters(question, section string) *Extractor {
	newExt := e.clone()
	if question != "" {
		newExt.options.questionDelimiter = question
	}
	if section != "" {
		newExt.options.sectionDelimiter = section
	}
	if newExt.options.questionDelimiter == newExt.options.sectionDelimiter && newExt.err == nil {
		newExt.err = fmt.Errorf("question and section delimiters must differ: %q", newExt.options.questionDelimiter)
	}
	return newExt
}

// Sanitize strips unsafe markup from question fields and HTML output.
func (e *Extractor) Sanitize() *Extractor {
	newExt := e.clone()
	newExt.options.sanitize = true
	return newExt
}

// Logger sets the logger that receives debug and warning records.
func (e *Extractor) Logger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// Recognizer sets the text recognizer used to fill the alt text of images
// without a description. The caller keeps ownership of rec.
func (e *Extractor) Recognizer(rec render.TextRecognizer) *Extractor {
	newExt := e.clone()
	newExt.options.recognizer = rec
	return newExt
}

// WithConfig applies every setting of cfg. An invalid configuration is
// reported by the terminal operation.
//
// Example:
//
//	cfg, err := quizdoc.LoadConfig("quizdoc.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	questions, warnings, err := quizdoc.Open("quiz.docx").WithConfig(*cfg).Questions()
func (e *Extractor) WithConfig(cfg Config) *Extractor {
	newExt := e.clone()
	if err := cfg.Validate(); err != nil {
		if newExt.err == nil {
			newExt.err = fmt.Errorf("invalid config: %w", err)
		}
		return newExt
	}

	o := &newExt.options
	o.images = render.ImageConfig{Embed: cfg.Images.Embed, Dir: cfg.Images.Dir, Namer: cfg.Images.Namer}
	o.answers, _ = cfg.answerMode()
	o.imagePolicy, _ = cfg.imagePolicy()
	if cfg.Delimiters.Question != "" {
		o.questionDelimiter = cfg.Delimiters.Question
	}
	if cfg.Delimiters.Section != "" {
		o.sectionDelimiter = cfg.Delimiters.Section
	}
	o.sanitize = cfg.Sanitize
	o.ocr = nil
	if cfg.OCR.Enabled {
		ocrCfg := ocr.DefaultConfig()
		if cfg.OCR.Language != "" {
			ocrCfg.Language = cfg.OCR.Language
		}
		o.ocr = &ocrCfg
	}
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// prepare opens the document and any OCR client for one terminal
// operation and builds its renderer. The caller must close the session.
func (e *Extractor) prepare() (*session, error) {
	if e.err != nil {
		return nil, e.err
	}

	s := &session{doc: e.doc}
	if s.doc == nil {
		doc, err := e.openDocument()
		if err != nil {
			return nil, err
		}
		s.doc, s.ownsDoc = doc, true
	}

	opts := e.options.renderOptions()
	if opts.Recognizer == nil && e.options.ocr != nil {
		client, err := ocr.New(*e.options.ocr)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("starting OCR: %w", err)
		}
		s.ocr = client
		opts.Recognizer = client
	}

	r, err := render.New(s.doc, opts)
	if err != nil {
		s.close()
		return nil, err
	}
	s.renderer = r
	return s, nil
}

// Fragments renders the document into one markup string per non-empty
// paragraph or table, in document order. Question delimiters appear as
// their own fragments.
//
// Example:
//
//	fragments, warnings, err := quizdoc.Open("quiz.docx").Fragments()
func (e *Extractor) Fragments() ([]string, []Warning, error) {
	s, err := e.prepare()
	if err != nil {
		return nil, nil, err
	}
	defer s.close()

	fragments, warnings := s.renderer.Fragments()
	return fragments, warnings, nil
}

// Questions renders the document and segments it into questions.
// Rendering and segmentation warnings are returned together.
//
// Example:
//
//	questions, warnings, err := quizdoc.Open("quiz.docx").SingleAnswer().Questions()
//	if len(warnings) > 0 {
//	    log.Println(quizdoc.FormatWarnings(warnings))
//	}
func (e *Extractor) Questions() ([]quiz.Question, []Warning, error) {
	s, err := e.prepare()
	if err != nil {
		return nil, nil, err
	}
	defer s.close()

	fragments, warnings := s.renderer.Fragments()
	questions, segWarnings := e.options.segmenter().Parse(fragments)
	warnings = append(warnings, segWarnings...)

	if e.options.sanitize {
		var dropped []int
		questions, dropped = export.NewSanitizer().Questions(questions)
		for _, i := range dropped {
			warnings = append(warnings, Warning{
				Kind:    diag.MalformedSegment,
				Message: fmt.Sprintf("question %d has no content left after sanitizing; dropped", i+1),
				Para:    -1,
			})
			e.options.log().Warn("question dropped after sanitizing", "question", i+1)
		}
	}
	return questions, warnings, nil
}

// HTML renders the whole document as HTML with headings, lists and
// tables.
//
// Example:
//
//	html, _, err := quizdoc.Open("quiz.docx").ImageDir("images").HTML()
func (e *Extractor) HTML() (string, []Warning, error) {
	s, err := e.prepare()
	if err != nil {
		return "", nil, err
	}
	defer s.close()

	markup, warnings := s.renderer.HTML()
	if e.options.sanitize {
		markup = export.NewSanitizer().HTML(markup)
	}
	return markup, warnings, nil
}

// Export writes the questions of the document to w in the given format.
//
// Example:
//
//	warnings, err := quizdoc.Open("quiz.docx").Export(os.Stdout, export.JSON)
func (e *Extractor) Export(w io.Writer, f export.Format) ([]Warning, error) {
	questions, warnings, err := e.Questions()
	if err != nil {
		return nil, err
	}
	return warnings, export.Write(w, f, questions)
}
