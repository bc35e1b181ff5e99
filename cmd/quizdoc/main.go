// quizdoc converts a Word quiz document into structured questions or HTML.
//
// Usage:
//
//	quizdoc [options] quiz.docx
//
// Output options:
//
//	-format string    json, yaml, markdown, xlsx, html or fragments (default json)
//	-output string    Output file (default stdout, required for xlsx)
//
// Extraction options:
//
//	-config string    YAML configuration file; flags override its values
//	-embed            Embed images as data URIs (default)
//	-image-dir string Write images to this directory instead of embedding them
//	-namer string     Image file name template ({para}, {run}, {index}, {ext})
//	-answers string   multi or single
//	-keep-images      Keep images after the first in field text
//	-sanitize         Strip unsafe markup from the output
//	-ocr              Recognize text in undescribed images (requires the ocr build tag)
//	-ocr-lang string  Tesseract languages, e.g. eng+vie
//	-v                Debug logging
//
// Examples:
//
//	quizdoc -format yaml quiz.docx
//	quizdoc -image-dir ./images -format markdown -output quiz.md quiz.docx
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tsawler/quizdoc"
	"github.com/tsawler/quizdoc/export"
	"github.com/tsawler/quizdoc/format"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	outFormat := flag.String("format", "json", "Output format: json, yaml, markdown, xlsx, html or fragments")
	output := flag.String("output", "", "Output file (default stdout)")
	embed := flag.Bool("embed", true, "Embed images as base64 data URIs")
	imageDir := flag.String("image-dir", "", "Write images to this directory")
	namer := flag.String("namer", "", "Image file name template")
	answers := flag.String("answers", "multi", "Answer mode: multi or single")
	keepImages := flag.Bool("keep-images", false, "Keep images after the first in field text")
	sanitize := flag.Bool("sanitize", false, "Strip unsafe markup")
	useOCR := flag.Bool("ocr", false, "Recognize text in undescribed images")
	ocrLang := flag.String("ocr-lang", "", "Tesseract languages")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: quizdoc [options] quiz.docx")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	if f := format.Detect(input); f != format.Unknown && f != format.ZIP && !f.Supported() {
		fatalf("%s is a %s file; convert it to DOCX first", input, f)
	}

	cfg := quizdoc.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = quizdoc.LoadConfig(*configPath); err != nil {
			fatalf("config: %v", err)
		}
	}

	// Flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "embed":
			cfg.Images.Embed = *embed
		case "image-dir":
			cfg.Images.Dir = *imageDir
			cfg.Images.Embed = false
		case "namer":
			cfg.Images.Namer = *namer
		case "answers":
			cfg.Answers = *answers
		case "keep-images":
			if *keepImages {
				cfg.ImagesPolicy = "keep"
			} else {
				cfg.ImagesPolicy = "first"
			}
		case "sanitize":
			cfg.Sanitize = *sanitize
		case "ocr":
			cfg.OCR.Enabled = *useOCR
		case "ocr-lang":
			cfg.OCR.Language = *ocrLang
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		fatalf("config: %v", err)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ext := quizdoc.Open(input).WithConfig(*cfg).Logger(logger)

	warnings, err := extract(ext, *outFormat, *output)
	for _, warning := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", warning)
	}
	if err != nil {
		fatalf("%v", err)
	}
}

// extract runs the extraction and writes the result to output, or to
// stdout when output is empty. The output file is created only after the
// extraction succeeded.
func extract(ext *quizdoc.Extractor, outFormat, output string) ([]quizdoc.Warning, error) {
	if output == "" {
		return run(ext, outFormat, output, os.Stdout)
	}

	var buf bytes.Buffer
	warnings, err := run(ext, outFormat, output, &buf)
	if err != nil {
		return warnings, err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return warnings, fmt.Errorf("write output: %w", err)
	}
	return warnings, nil
}

// run performs the extraction selected by outFormat and writes the result.
func run(ext *quizdoc.Extractor, outFormat, output string, w io.Writer) ([]quizdoc.Warning, error) {
	switch outFormat {
	case "html":
		html, warnings, err := ext.HTML()
		if err != nil {
			return nil, err
		}
		_, err = fmt.Fprintln(w, html)
		return warnings, err

	case "fragments":
		fragments, warnings, err := ext.Fragments()
		if err != nil {
			return nil, err
		}
		for _, f := range fragments {
			if _, err := fmt.Fprintln(w, f); err != nil {
				return warnings, err
			}
		}
		return warnings, nil
	}

	f, err := export.ParseFormat(outFormat)
	if err != nil {
		return nil, err
	}
	if f == export.XLSX && output == "" {
		return nil, fmt.Errorf("-output is required for xlsx")
	}
	return ext.Export(w, f)
}

func fatalf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
