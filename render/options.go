package render

import (
	"errors"
	"log/slog"
)

// DefaultImageStyle limits the display size of extracted images.
const DefaultImageStyle = "max-width: 60px; vertical-align:middle; display: inline-block;"

// ErrNoImageDir is returned when file output is selected without a
// directory.
var ErrNoImageDir = errors.New("render: image directory required when images are not embedded")

// ImageConfig selects how extracted images are emitted.
type ImageConfig struct {
	// Embed writes images inline as base64 data URIs. When false, images
	// are written to Dir.
	Embed bool

	// Dir is the output directory for file mode. It is created if needed.
	Dir string

	// Namer is an optional file name template. The placeholders {para},
	// {run}, {index} and {ext} (without the dot) are substituted. The
	// default name is image_{para}_{run}_{index}.{ext}.
	Namer string
}

// Validate checks that the configuration is usable.
func (c ImageConfig) Validate() error {
	if !c.Embed && c.Dir == "" {
		return ErrNoImageDir
	}
	return nil
}

// TextRecognizer extracts text from an encoded image. It is used to fill
// the alt text of images that carry no description.
type TextRecognizer interface {
	RecognizeImage(data []byte) (string, error)
}

// Options configures a Renderer.
type Options struct {
	Images ImageConfig

	// Logger receives debug records for drawings and images found and
	// warnings for images that cannot be resolved. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// Recognizer, when set, supplies alt text for images without a
	// description or title.
	Recognizer TextRecognizer

	// ImageStyle is the style attribute of emitted images. Defaults to
	// DefaultImageStyle.
	ImageStyle string
}

// DefaultOptions returns options that embed images.
func DefaultOptions() Options {
	return Options{
		Images:     ImageConfig{Embed: true},
		ImageStyle: DefaultImageStyle,
	}
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.ImageStyle == "" {
		o.ImageStyle = DefaultImageStyle
	}
}
