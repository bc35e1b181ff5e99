package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/quizdoc"
	"github.com/tsawler/quizdoc/internal/docxtest"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtract_WritesOutput(t *testing.T) {
	input := docxtest.Package{Body: docxtest.Paras("What is 2+2?", "--", "4", "--", "5", "==")}.Write(t)
	output := filepath.Join(t.TempDir(), "out.json")

	if _, err := extract(quizdoc.Open(input).Logger(quietLogger()), "json", output); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 1 {
		t.Errorf("got %d questions, want 1", len(decoded))
	}
}

func TestExtract_NoOutputOnFailure(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		outFormat string
	}{
		{"missing input", "missing.docx", "json"},
		{"unknown format", "", "csv"},
		{"broken package", "broken", "markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, tt.input)
			switch tt.input {
			case "":
				input = docxtest.Package{Body: docxtest.Paras("Q", "==")}.Write(t)
			case "broken":
				if err := os.WriteFile(input, []byte("PK\x03\x04 truncated"), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			output := filepath.Join(dir, "out")

			if _, err := extract(quizdoc.Open(input).Logger(quietLogger()), tt.outFormat, output); err == nil {
				t.Fatal("expected error")
			}
			if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("output file exists after failed extraction (stat error %v)", err)
			}
		})
	}
}
