// Package picker implements region selection over a desktop snapshot.
//
// Selection works on a still image rather than a live overlay, so it
// also works on top of exclusive-fullscreen applications: the snapshot
// is taken once, shown full-screen, and the user drags a rectangle on it.
package picker

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"live-translate/pkg/geometry"
)

// Show opens a borderless full-screen window displaying snapshot and
// calls onSelect with the dragged rectangle in the snapshot's own pixel
// coordinates (virtual-desktop coordinates when the snapshot covers the
// virtual desktop). Zero-area drags are discarded. Escape cancels.
func Show(a fyne.App, snapshot image.Image, onSelect func(geometry.RectInt)) {
	win := a.NewWindow("Select Region")

	pw := newPickerWidget(snapshot, func(r geometry.RectInt) {
		win.Close()
		onSelect(r)
	})

	win.SetContent(pw)
	win.SetFullScreen(true)
	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			win.Close()
		}
	})
	win.Show()
}

// pickerWidget shows the snapshot and tracks a rubber-band drag.
type pickerWidget struct {
	widget.BaseWidget

	snapshot image.Image
	img      *canvas.Image
	band     *canvas.Rectangle

	dragging bool
	origin   fyne.Position
	last     fyne.Position

	onDone func(geometry.RectInt)
}

func newPickerWidget(snapshot image.Image, onDone func(geometry.RectInt)) *pickerWidget {
	img := canvas.NewImageFromImage(snapshot)
	// The window covers the virtual desktop and so does the snapshot, so
	// stretching keeps the mapping linear in both axes.
	img.FillMode = canvas.ImageFillStretch

	band := canvas.NewRectangle(color.Transparent)
	band.StrokeColor = color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0xff}
	band.StrokeWidth = 2
	band.Hide()

	pw := &pickerWidget{
		snapshot: snapshot,
		img:      img,
		band:     band,
		onDone:   onDone,
	}
	pw.ExtendBaseWidget(pw)
	return pw
}

func (pw *pickerWidget) CreateRenderer() fyne.WidgetRenderer {
	return &pickerRenderer{pw: pw}
}

func (pw *pickerWidget) Dragged(ev *fyne.DragEvent) {
	if !pw.dragging {
		pw.dragging = true
		pw.origin = ev.Position
	}
	pw.last = ev.Position

	x1, y1, x2, y2 := normalizedCorners(pw.origin, pw.last)
	pw.band.Move(fyne.NewPos(x1, y1))
	pw.band.Resize(fyne.NewSize(x2-x1, y2-y1))
	pw.band.Show()
	pw.band.Refresh()
}

func (pw *pickerWidget) DragEnd() {
	if !pw.dragging {
		return
	}
	pw.dragging = false
	pw.band.Hide()

	rect := pw.toSnapshotRect(pw.origin, pw.last)
	if !rect.Valid() {
		// A click without movement selects nothing.
		return
	}
	if pw.onDone != nil {
		pw.onDone(rect)
	}
}

// toSnapshotRect maps two widget-space corners to snapshot pixel
// coordinates, normalized so left < right and top < bottom.
func (pw *pickerWidget) toSnapshotRect(a, b fyne.Position) geometry.RectInt {
	size := pw.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return geometry.RectInt{}
	}
	bounds := pw.snapshot.Bounds()
	scaleX := float64(bounds.Dx()) / float64(size.Width)
	scaleY := float64(bounds.Dy()) / float64(size.Height)

	rect := geometry.RectInt{
		Left:   bounds.Min.X + int(float64(a.X)*scaleX),
		Top:    bounds.Min.Y + int(float64(a.Y)*scaleY),
		Right:  bounds.Min.X + int(float64(b.X)*scaleX),
		Bottom: bounds.Min.Y + int(float64(b.Y)*scaleY),
	}
	return rect.Normalized()
}

func normalizedCorners(a, b fyne.Position) (x1, y1, x2, y2 float32) {
	x1, x2 = a.X, b.X
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	y1, y2 = a.Y, b.Y
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return
}

type pickerRenderer struct {
	pw *pickerWidget
}

func (r *pickerRenderer) Layout(size fyne.Size) {
	r.pw.img.Resize(size)
}

func (r *pickerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *pickerRenderer) Refresh() {
	r.pw.img.Refresh()
}

func (r *pickerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.pw.img, r.pw.band}
}

func (r *pickerRenderer) Destroy() {}
