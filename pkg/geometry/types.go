// Package geometry provides the rectangle type shared by capture and UI code.
package geometry

import "image"

// RectInt is a rectangle in virtual-screen pixel coordinates, stored as
// edges rather than origin+size because that is what the capture API and
// the persisted config use.
type RectInt struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the horizontal extent. Negative for degenerate rectangles.
func (r RectInt) Width() int {
	return r.Right - r.Left
}

// Height returns the vertical extent. Negative for degenerate rectangles.
func (r RectInt) Height() int {
	return r.Bottom - r.Top
}

// Valid reports whether the rectangle has positive area.
func (r RectInt) Valid() bool {
	return r.Right > r.Left && r.Bottom > r.Top
}

// Normalized returns the rectangle with edges swapped so that
// Left <= Right and Top <= Bottom.
func (r RectInt) Normalized() RectInt {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// ToImageRect converts to a stdlib image.Rectangle.
func (r RectInt) ToImageRect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// FromImageRect converts a stdlib image.Rectangle to a RectInt.
func FromImageRect(r image.Rectangle) RectInt {
	return RectInt{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}
