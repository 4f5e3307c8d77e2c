// Package logview provides the append-only colored translation log.
package logview

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// Foreground colors keyed by language tag prefix. Lines with no
// recognized prefix (untranslated originals, error lines) use neutral gray.
var (
	colorEN      = color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff} // light blue
	colorZH      = color.NRGBA{R: 0xff, G: 0xca, B: 0x28, A: 0xff} // amber
	colorKO      = color.NRGBA{R: 0x81, G: 0xc7, B: 0x84, A: 0xff} // green
	colorNeutral = color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
)

// ColorFor returns the foreground color for a display line based on its
// language tag prefix.
func ColorFor(line string) color.Color {
	switch {
	case strings.HasPrefix(line, "[EN]"):
		return colorEN
	case strings.HasPrefix(line, "[ZH]"):
		return colorZH
	case strings.HasPrefix(line, "[KO]"):
		return colorKO
	default:
		return colorNeutral
	}
}

// LogView is a read-only, always-growing log of display lines. Lines are
// rendered as plain canvas text, so content can never be interpreted as
// markup.
type LogView struct {
	box    *fyne.Container
	scroll *container.Scroll
}

// New creates an empty log view.
func New() *LogView {
	box := container.NewVBox()
	return &LogView{
		box:    box,
		scroll: container.NewVScroll(box),
	}
}

// Container returns the scrollable widget for embedding in a layout.
func (v *LogView) Container() fyne.CanvasObject {
	return v.scroll
}

// Append adds lines at the end of the log and keeps the view pinned to
// the bottom.
func (v *LogView) Append(lines []string) {
	if len(lines) == 0 {
		return
	}
	for _, ln := range lines {
		txt := canvas.NewText(ln, ColorFor(ln))
		v.box.Add(txt)
	}
	v.box.Refresh()
	v.scroll.ScrollToBottom()
}

// Clear empties the log unconditionally.
func (v *LogView) Clear() {
	v.box.RemoveAll()
	v.box.Refresh()
}

// Len returns the number of lines currently shown.
func (v *LogView) Len() int {
	return len(v.box.Objects)
}

// LineAt returns the text and color of line i, for tests.
func (v *LogView) LineAt(i int) (string, color.Color) {
	txt := v.box.Objects[i].(*canvas.Text)
	return txt.Text, txt.Color
}
