package quizdoc

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/quizdoc/quiz"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quizdoc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if !cfg.Images.Embed || cfg.Delimiters.Question != "==" || cfg.Delimiters.Section != "--" {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
images:
  embed: false
  dir: out/images
  namer: "q_{para}_{index}.{ext}"
answers: single
images_policy: keep
delimiters:
  question: "##"
sanitize: true
ocr:
  enabled: true
  language: eng+vie
log_level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Images.Embed || cfg.Images.Dir != "out/images" || cfg.Images.Namer != "q_{para}_{index}.{ext}" {
		t.Errorf("Images = %+v", cfg.Images)
	}
	if mode, _ := cfg.answerMode(); mode != quiz.SingleAnswer {
		t.Errorf("answer mode = %v", mode)
	}
	if policy, _ := cfg.imagePolicy(); policy != quiz.KeepExtraImages {
		t.Errorf("image policy = %v", policy)
	}
	// Unset keys keep their defaults.
	if cfg.Delimiters.Question != "##" || cfg.Delimiters.Section != "--" {
		t.Errorf("Delimiters = %+v", cfg.Delimiters)
	}
	if !cfg.Sanitize || !cfg.OCR.Enabled || cfg.OCR.Language != "eng+vie" {
		t.Errorf("Sanitize = %v, OCR = %+v", cfg.Sanitize, cfg.OCR)
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Errorf("Level = %v", level)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadConfig(writeConfig(t, "images: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
	if _, err := LoadConfig(writeConfig(t, "answers: all\n")); err == nil {
		t.Error("expected validation error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"file mode without dir", func(c *Config) { c.Images.Embed = false }, true},
		{"file mode with dir", func(c *Config) { c.Images.Embed = false; c.Images.Dir = "img" }, false},
		{"empty answers", func(c *Config) { c.Answers = "" }, false},
		{"bad answers", func(c *Config) { c.Answers = "many" }, true},
		{"bad images policy", func(c *Config) { c.ImagesPolicy = "all" }, true},
		{"same delimiters", func(c *Config) { c.Delimiters.Section = "==" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"warn level", func(c *Config) { c.LogLevel = "warn" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
