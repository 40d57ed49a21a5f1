// internal/ocr/preprocess.go
package ocr

import (
	"image"
	"image/color"
)

// Preprocess converts src to grayscale and binarizes it with a global Otsu
// threshold. Text comes out black on white.
func Preprocess(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}

	t := otsuThreshold(gray)
	for i, v := range gray.Pix {
		if v > t {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
	return gray
}

// otsuThreshold picks the level that maximizes between-class variance.
func otsuThreshold(g *image.Gray) uint8 {
	var hist [256]int
	b := g.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := g.Pix[(y-b.Min.Y)*g.Stride : (y-b.Min.Y)*g.Stride+b.Dx()]
		for _, v := range row {
			hist[v]++
		}
	}

	total := b.Dx() * b.Dy()
	if total == 0 {
		return 127
	}

	var sumAll float64
	for i, n := range hist {
		sumAll += float64(i * n)
	}

	var (
		sumB      float64
		weightB   int
		best      float64
		threshold uint8
	)
	for i := 0; i < 256; i++ {
		weightB += hist[i]
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(i * hist[i])
		meanB := sumB / float64(weightB)
		meanF := (sumAll - sumB) / float64(weightF)
		between := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)
		if between > best {
			best = between
			threshold = uint8(i)
		}
	}
	return threshold
}
