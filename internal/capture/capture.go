// Package capture grabs pixels from the live screen.
package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"

	"live-translate/pkg/geometry"
)

// Grabber captures screen regions. Satisfied by Screen and by test fakes.
type Grabber interface {
	Grab(region geometry.RectInt) (image.Image, error)
}

// Screen captures from the live display via the platform screenshot API.
type Screen struct{}

// NewScreen returns a live-screen grabber.
func NewScreen() *Screen {
	return &Screen{}
}

// Grab returns a pixel buffer sized exactly region.Width() x region.Height(),
// sourced from the screen at call time. No retry; a transient failure is the
// caller's problem.
func (s *Screen) Grab(region geometry.RectInt) (image.Image, error) {
	if !region.Valid() {
		return nil, fmt.Errorf("capture region %+v has no area", region)
	}
	img, err := screenshot.CaptureRect(region.ToImageRect())
	if err != nil {
		return nil, fmt.Errorf("screen capture failed: %w", err)
	}
	return img, nil
}

// GrabScreen captures the entire virtual screen, used by the region picker
// so selection works over exclusive-fullscreen applications.
func (s *Screen) GrabScreen() (image.Image, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("full-screen capture failed: %w", err)
	}
	return img, nil
}
