package quizdoc

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/quizdoc/quiz"
)

// Config holds the full extraction configuration, loadable from YAML.
type Config struct {
	Images       ImagesConfig    `yaml:"images"`
	Answers      string          `yaml:"answers"`       // multi | single
	ImagesPolicy string          `yaml:"images_policy"` // first | keep
	Delimiters   DelimiterConfig `yaml:"delimiters"`
	Sanitize     bool            `yaml:"sanitize"`
	OCR          OCRConfig       `yaml:"ocr"`
	LogLevel     string          `yaml:"log_level"`
}

// ImagesConfig selects how extracted images are emitted.
type ImagesConfig struct {
	Embed bool   `yaml:"embed"`
	Dir   string `yaml:"dir"`
	Namer string `yaml:"namer"`
}

// DelimiterConfig sets the marker tokens that split the document.
type DelimiterConfig struct {
	Question string `yaml:"question"`
	Section  string `yaml:"section"`
}

// OCRConfig enables alt text recognition for undescribed images.
type OCRConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
}

// DefaultConfig returns the defaults: embedded images, multi-answer mode,
// first-image policy and the == / -- delimiters.
func DefaultConfig() *Config {
	return &Config{
		Images:       ImagesConfig{Embed: true},
		Answers:      "multi",
		ImagesPolicy: "first",
		Delimiters: DelimiterConfig{
			Question: quiz.DefaultQuestionDelimiter,
			Section:  quiz.DefaultSectionDelimiter,
		},
		OCR:      OCRConfig{Language: "eng"},
		LogLevel: "info",
	}
}

// LoadConfig reads and parses a YAML config file. Fields absent from the
// file keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the values are usable.
func (c *Config) Validate() error {
	if !c.Images.Embed && c.Images.Dir == "" {
		return fmt.Errorf("images.dir is required when images.embed is false")
	}
	if _, err := c.answerMode(); err != nil {
		return err
	}
	if _, err := c.imagePolicy(); err != nil {
		return err
	}
	if c.Delimiters.Question != "" && c.Delimiters.Question == c.Delimiters.Section {
		return fmt.Errorf("delimiters.question and delimiters.section must differ")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unsupported log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c *Config) answerMode() (quiz.AnswerMode, error) {
	switch c.Answers {
	case "", "multi":
		return quiz.MultiAnswer, nil
	case "single":
		return quiz.SingleAnswer, nil
	default:
		return 0, fmt.Errorf("unsupported answers %q (use single or multi)", c.Answers)
	}
}

func (c *Config) imagePolicy() (quiz.ImagePolicy, error) {
	switch c.ImagesPolicy {
	case "", "first":
		return quiz.FirstImageOnly, nil
	case "keep":
		return quiz.KeepExtraImages, nil
	default:
		return 0, fmt.Errorf("unsupported images_policy %q (use first or keep)", c.ImagesPolicy)
	}
}
