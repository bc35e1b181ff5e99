//go:build ocr

package ocr

import (
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Enabled reports whether OCR support is compiled in.
const Enabled = true

// Client wraps Tesseract. It is safe for concurrent use; recognitions are
// serialized.
type Client struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates a client. It should be closed when no longer needed.
func New(cfg Config) (*Client, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage(languages(cfg.Language)...); err != nil {
		client.Close()
		return nil, fmt.Errorf("ocr: setting language %q: %w", cfg.Language, err)
	}
	if cfg.PageSegMode != 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
			client.Close()
			return nil, fmt.Errorf("ocr: setting page segmentation mode: %w", err)
		}
	}

	return &Client{client: client}, nil
}

// Close releases the engine.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// RecognizeImage returns the text in an encoded image (PNG, JPEG, TIFF and
// the other formats Leptonica reads), trimmed of surrounding space.
func (c *Client) RecognizeImage(data []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return "", fmt.Errorf("ocr: client closed")
	}
	if err := c.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("ocr: setting image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: recognizing: %w", err)
	}
	return strings.TrimSpace(text), nil
}
