package ocr

import (
	"reflect"
	"testing"
)

func TestLanguages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"eng"}},
		{"eng", []string{"eng"}},
		{"eng+fra", []string{"eng", "fra"}},
		{" eng , vie ", []string{"eng", "vie"}},
		{"++", []string{"eng"}},
	}
	for _, tt := range tests {
		if got := languages(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("languages(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Language != "eng" || cfg.PageSegMode != PSMSingleBlock {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}
