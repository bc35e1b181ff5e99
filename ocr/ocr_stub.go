//go:build !ocr

package ocr

// Enabled reports whether OCR support is compiled in.
const Enabled = false

// Client is a stub used when OCR support is not compiled in.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New(Config) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op. It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage([]byte) (string, error) {
	return "", ErrOCRNotEnabled
}
