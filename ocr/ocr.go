//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client recognizes page text with Tesseract. It is not safe for
// concurrent use; give each worker its own client.
type Client struct {
	client *gosseract.Client
}

// New creates a recognition client. Close it to release the Tesseract
// handle.
func New(cfg Config) (*Client, error) {
	client := gosseract.NewClient()

	lang := cfg.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("set language %q: %w", lang, err)
	}

	return &Client{client: client}, nil
}

// Name identifies the engine.
func (c *Client) Name() string {
	return "tesseract"
}

// Recognize runs OCR over a rendered page and returns the recognized
// text with surrounding whitespace trimmed. The image crosses the cgo
// boundary as PNG, which Tesseract decodes natively. The context is
// checked before the engine starts; Tesseract cannot be interrupted
// midway.
func (c *Client) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode page image: %w", err)
	}
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Close releases the Tesseract handle. Safe to call on a nil client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
