package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// AnnotateBox returns a copy of img with the given rectangle outlined.
//
// The outline color is chosen to contrast with the pixels it covers: the
// average color along the box perimeter is hue-rotated 180 degrees and
// fully saturated. thickness rows/columns are drawn inward from the box
// edges. The source image is never modified.
func AnnotateBox(img image.Image, box image.Rectangle, thickness int) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	box = box.Intersect(bounds)
	if box.Empty() {
		return out
	}
	if thickness < 1 {
		thickness = 1
	}

	outline := outlineColor(img, box)
	for t := 0; t < thickness; t++ {
		r := box.Inset(t)
		if r.Empty() {
			break
		}
		drawRectOutline(out, r, outline)
	}
	return out
}

// drawRectOutline draws the 1-pixel border of r onto dst.
func drawRectOutline(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetRGBA(x, r.Min.Y, c)
		dst.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetRGBA(r.Min.X, y, c)
		dst.SetRGBA(r.Max.X-1, y, c)
	}
}

// outlineColor picks a color that stands out against the box border region.
// Falls back to magenta when the sampled color cannot be converted.
func outlineColor(img image.Image, box image.Rectangle) color.RGBA {
	var rSum, gSum, bSum, n uint64

	sample := func(x, y int) {
		r, g, b, _ := img.At(x, y).RGBA()
		rSum += uint64(r >> 8)
		gSum += uint64(g >> 8)
		bSum += uint64(b >> 8)
		n++
	}
	for x := box.Min.X; x < box.Max.X; x++ {
		sample(x, box.Min.Y)
		sample(x, box.Max.Y-1)
	}
	for y := box.Min.Y; y < box.Max.Y; y++ {
		sample(box.Min.X, y)
		sample(box.Max.X-1, y)
	}
	if n == 0 {
		return color.RGBA{R: 255, B: 255, A: 255}
	}

	avg := color.NRGBA{
		R: uint8(rSum / n),
		G: uint8(gSum / n),
		B: uint8(bSum / n),
		A: 255,
	}
	c, ok := colorful.MakeColor(avg)
	if !ok {
		return color.RGBA{R: 255, B: 255, A: 255}
	}

	h, _, _ := c.Hsl()
	opposite := colorful.Hsl(math.Mod(h+180, 360), 1.0, 0.5)
	r8, g8, b8 := opposite.RGB255()
	return color.RGBA{R: r8, G: g8, B: b8, A: 255}
}
