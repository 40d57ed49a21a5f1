// internal/ocr/preprocess_test.go
package ocr

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess_Binarizes(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	levels := []uint8{30, 40, 190, 200, 35, 45, 195, 210}
	copy(img.Pix, levels)

	out := Preprocess(img)

	for i, v := range out.Pix {
		if levels[i] < 100 {
			assert.Equal(t, uint8(0), v, "pixel %d", i)
		} else {
			assert.Equal(t, uint8(255), v, "pixel %d", i)
		}
	}
}

func TestPreprocess_ColorInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 12, 11))
	img.Set(10, 10, color.RGBA{R: 250, G: 250, B: 250, A: 255})
	img.Set(11, 10, color.RGBA{R: 5, G: 5, B: 40, A: 255})

	out := Preprocess(img)

	assert.Equal(t, img.Bounds(), out.Bounds())
	assert.Equal(t, uint8(255), out.GrayAt(10, 10).Y)
	assert.Equal(t, uint8(0), out.GrayAt(11, 10).Y)
}

func TestPreprocess_UniformImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	out := Preprocess(img)

	for _, v := range out.Pix {
		assert.Equal(t, uint8(255), v)
	}
}

func TestPreprocess_EmptyImage(t *testing.T) {
	out := Preprocess(image.NewGray(image.Rect(0, 0, 0, 0)))
	assert.Empty(t, out.Pix)
}
