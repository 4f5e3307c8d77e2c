package ocr

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// minOCRDim is the smallest capture dimension fed to Tesseract as-is.
// Smaller regions are upscaled; recognition on tiny chat text is noticeably
// worse without it.
const minOCRDim = 150

// preprocess converts a captured frame to the single-channel form that
// stabilizes recognition, returning PNG bytes ready for Tesseract.
func preprocess(img image.Image) ([]byte, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer mat.Close()

	// Upscale small captures for better OCR
	h, w := mat.Rows(), mat.Cols()
	var scaled gocv.Mat
	if minDim := min(h, w); minDim > 0 && minDim < minOCRDim {
		scale := float64(minOCRDim) / float64(minDim)
		scaled = gocv.NewMat()
		gocv.Resize(mat, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	} else {
		scaled = mat.Clone()
	}
	defer scaled.Close()

	// Grayscale conversion stabilizes recognition on colored chat text
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(scaled, &gray, gocv.ColorRGBToGray)

	buf, err := gocv.IMEncode(gocv.PNGFileExt, gray)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	out := make([]byte, len(buf.GetBytes()))
	copy(out, buf.GetBytes())
	return out, nil
}
