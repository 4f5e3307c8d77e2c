// Package ocr turns captured screen regions into text lines.
package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Languages recognized in one pass. Tesseract skips packs that are not
// installed, so a partial install degrades accuracy rather than failing.
var Languages = []string{"jpn", "eng", "chi_sim", "chi_tra", "kor"}

// Extractor yields text lines from an image. Satisfied by Engine and by
// test fakes; a nil Extractor in the pipeline means OCR is unavailable.
type Extractor interface {
	Lines(img image.Image) ([]string, error)
}

// Engine performs OCR using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine configured for mixed chat text.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage(Languages...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR languages: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Lines recognizes img and returns its non-empty text lines in the
// engine's top-to-bottom reading order.
func (e *Engine) Lines(img image.Image) ([]string, error) {
	buf, err := preprocess(img)
	if err != nil {
		return nil, err
	}

	if err := e.client.SetImageFromBytes(buf); err != nil {
		return nil, fmt.Errorf("failed to set OCR image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	return SplitLines(text), nil
}

// SplitLines breaks recognized text on newlines, trims whitespace, and
// drops empty lines. Order mirrors the input.
func SplitLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}
