package imaging

import (
	"image"
	"image/color"
)

// Grayscale converts an image to 8-bit grayscale using ITU-R BT.601
// luminance weights (0.299*R + 0.587*G + 0.114*B). The result always has
// its origin at (0,0) regardless of the source bounds.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			out.SetGray(x, y, color.Gray{Y: uint8(lum + 0.5)})
		}
	}
	return out
}
