// Package pipeline drives the capture -> OCR -> dedupe -> translate cycle.
package pipeline

import (
	"context"
	"time"

	"live-translate/internal/app"
	"live-translate/internal/capture"
	"live-translate/internal/dedupe"
	"live-translate/internal/ocr"
	"live-translate/internal/translate"
	"live-translate/pkg/geometry"
)

// DefaultInterval is the wall-clock polling period. Raise it if OCR load
// is too heavy for the machine.
const DefaultInterval = 300 * time.Millisecond

// ErrorPrefix marks display lines produced from cycle failures.
const ErrorPrefix = "(error) "

// Pipeline polls the screen on a fixed interval and publishes translated
// batches through the session's event bus. It owns the session-scoped
// seen-set and the frame gate; it has no dependency on the UI toolkit.
type Pipeline struct {
	session    *app.Session
	grabber    capture.Grabber
	extractor  ocr.Extractor // nil when OCR is unavailable at startup
	translator translate.Translator

	gate     *capture.Gate
	seen     *dedupe.Set
	interval time.Duration

	lastRegion geometry.RectInt
	hasRegion  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithInterval overrides the polling period.
func WithInterval(d time.Duration) Option {
	return func(p *Pipeline) { p.interval = d }
}

// WithGate overrides the frame-change gate.
func WithGate(g *capture.Gate) Option {
	return func(p *Pipeline) { p.gate = g }
}

// New creates a pipeline. extractor may be nil: the loop still runs every
// tick but extraction yields no lines, matching the degraded mode when
// Tesseract is missing.
func New(session *app.Session, grabber capture.Grabber, extractor ocr.Extractor, translator translate.Translator, opts ...Option) *Pipeline {
	p := &Pipeline{
		session:    session,
		grabber:    grabber,
		extractor:  extractor,
		translator: translator,
		gate:       capture.NewGate(),
		seen:       dedupe.NewSet(),
		interval:   DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run ticks until ctx is cancelled. A failed cycle becomes one error line
// on the display; the loop itself never stops on error.
func (p *Pipeline) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick runs one cycle. Paused sessions skip the body entirely, leaving
// the seen-set and cache untouched.
func (p *Pipeline) tick(ctx context.Context) {
	if p.session.Paused() {
		return
	}

	out, err := p.cycle(ctx)
	if err != nil {
		p.session.PublishLines([]string{ErrorPrefix + err.Error()})
		return
	}
	p.session.PublishLines(out)
}

// cycle performs capture -> gate -> extract -> dedupe -> translate and
// returns the display batch, nil when there is nothing new to show.
func (p *Pipeline) cycle(ctx context.Context) ([]string, error) {
	region := p.session.Region()
	if !p.hasRegion || region != p.lastRegion {
		p.gate.Reset()
		p.lastRegion = region
		p.hasRegion = true
	}

	img, err := p.grabber.Grab(region)
	if err != nil {
		return nil, err
	}

	if !p.gate.Changed(img) {
		return nil, nil
	}

	if p.extractor == nil {
		return nil, nil
	}
	lines, err := p.extractor.Lines(img)
	if err != nil {
		return nil, err
	}

	fresh := p.seen.FilterNew(lines)
	if len(fresh) == 0 {
		return nil, nil
	}

	return p.translator.TranslateBatch(ctx, fresh)
}

// SeenCount reports how many distinct lines this session has processed.
func (p *Pipeline) SeenCount() int {
	return p.seen.Len()
}
