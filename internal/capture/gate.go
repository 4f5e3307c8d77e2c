package capture

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// thumbSize is the side of the downsampled comparison thumbnail.
	thumbSize = 64
	// defaultThreshold is the mean absolute gray delta (0..255 scale)
	// below which two frames count as identical. Tuned to ignore
	// compression shimmer but catch a new chat line appearing.
	defaultThreshold = 1.5
)

// Gate decides whether a captured frame differs enough from the previous
// one to be worth running OCR on. Chat text sits still between messages,
// so most polling ticks can skip the expensive recognition step.
type Gate struct {
	prev      []float64
	threshold float64
}

// NewGate returns a gate with the default sensitivity.
func NewGate() *Gate {
	return &Gate{threshold: defaultThreshold}
}

// NewGateWithThreshold returns a gate with a custom mean-delta threshold.
func NewGateWithThreshold(threshold float64) *Gate {
	return &Gate{threshold: threshold}
}

// Changed reports whether img differs from the previously gated frame.
// The first frame after construction or Reset always counts as changed.
func (g *Gate) Changed(img image.Image) bool {
	cur := grayThumbnail(img)
	if g.prev == nil {
		g.prev = cur
		return true
	}

	diff := make([]float64, len(cur))
	floats.SubTo(diff, cur, g.prev)
	for i := range diff {
		diff[i] = math.Abs(diff[i])
	}
	score := stat.Mean(diff, nil)

	g.prev = cur
	return score > g.threshold
}

// Reset forgets the previous frame, forcing the next Changed to fire.
// Called when the capture region moves.
func (g *Gate) Reset() {
	g.prev = nil
}

// grayThumbnail downsamples img to a fixed-size grayscale vector.
func grayThumbnail(img image.Image) []float64 {
	dst := image.NewRGBA(image.Rect(0, 0, thumbSize, thumbSize))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	out := make([]float64, thumbSize*thumbSize)
	for y := 0; y < thumbSize; y++ {
		for x := 0; x < thumbSize; x++ {
			c := dst.RGBAAt(x, y)
			// Rec. 601 luma weights
			out[y*thumbSize+x] = 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
		}
	}
	return out
}
