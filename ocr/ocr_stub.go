//go:build !ocr

package ocr

import (
	"context"
	"image"
)

// Client is a stub in builds without the ocr tag.
type Client struct{}

// New always returns ErrOCRNotEnabled; rebuild with -tags ocr to
// enable recognition.
func New(cfg Config) (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Name identifies the engine.
func (c *Client) Name() string {
	return "disabled"
}

// Recognize always returns ErrOCRNotEnabled in this build.
func (c *Client) Recognize(ctx context.Context, img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}

// Close is a no-op. Safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}
