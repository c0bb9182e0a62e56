package detection

import (
	"image"
	"image/color"
	"testing"
)

// mask builds a binary edge map with the given rectangles filled in.
func mask(w, h int, filled ...image.Rectangle) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for _, r := range filled {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				m.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return m
}

func TestTraceContours_Empty(t *testing.T) {
	contours := traceContours(mask(50, 50))
	if len(contours) != 0 {
		t.Errorf("got %d contours for empty mask, want 0", len(contours))
	}
}

func TestTraceContours_SingleRectangle(t *testing.T) {
	contours := traceContours(mask(100, 100, image.Rect(20, 10, 40, 70)))
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}

	c := contours[0]
	bbox := c.BoundingBox()
	want := Rect{X: 20, Y: 10, Width: 20, Height: 60}
	if bbox != want {
		t.Errorf("bounding box: got %+v, want %+v", bbox, want)
	}

	// Straight runs collapse to the four corners.
	if len(c) != 4 {
		t.Errorf("simplified contour has %d points, want 4 corners: %v", len(c), c)
	}

	// Shoelace area of the traced boundary of a 20x60 block is 19*59.
	if got, want := c.Area(), float64(19*59); got != want {
		t.Errorf("polygon area: got %v, want %v", got, want)
	}
}

func TestTraceContours_ScanOrder(t *testing.T) {
	// Two disjoint blocks: the one whose topmost-leftmost pixel comes
	// first in row-major order must be traced first, every time.
	a := image.Rect(60, 5, 80, 25)
	b := image.Rect(5, 50, 25, 70)

	for i := 0; i < 3; i++ {
		contours := traceContours(mask(100, 100, a, b))
		if len(contours) != 2 {
			t.Fatalf("got %d contours, want 2", len(contours))
		}
		if got := contours[0].BoundingBox(); got.Y != 5 {
			t.Errorf("pass %d: first contour at y=%d, want the y=5 block first", i, got.Y)
		}
		if got := contours[1].BoundingBox(); got.Y != 50 {
			t.Errorf("pass %d: second contour at y=%d, want the y=50 block", i, got.Y)
		}
	}
}

func TestTraceContours_TouchingBlocksAreOneComponent(t *testing.T) {
	// Diagonally adjacent pixels are 8-connected, so two corner-touching
	// blocks trace as a single outer boundary.
	contours := traceContours(mask(60, 60, image.Rect(10, 10, 20, 20), image.Rect(20, 20, 30, 30)))
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1 (8-connected)", len(contours))
	}
	bbox := contours[0].BoundingBox()
	want := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if bbox != want {
		t.Errorf("bounding box: got %+v, want %+v", bbox, want)
	}
}

func TestTraceContours_SinglePixel(t *testing.T) {
	contours := traceContours(mask(20, 20, image.Rect(7, 9, 8, 10)))
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}

	c := contours[0]
	if len(c) != 1 || c[0] != image.Pt(7, 9) {
		t.Errorf("contour: got %v, want single point (7,9)", c)
	}
	if bbox := c.BoundingBox(); bbox != (Rect{X: 7, Y: 9, Width: 1, Height: 1}) {
		t.Errorf("bounding box: got %+v", bbox)
	}
	if c.Area() != 0 {
		t.Errorf("area: got %v, want 0", c.Area())
	}
}

func TestTraceContours_ThinLine(t *testing.T) {
	// A 1px horizontal bar has no enclosed area but must keep its full
	// extent after simplification.
	contours := traceContours(mask(40, 40, image.Rect(5, 10, 25, 11)))
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}

	c := contours[0]
	bbox := c.BoundingBox()
	if bbox.X != 5 || bbox.Width != 20 {
		t.Errorf("bounding box lost line extent: %+v", bbox)
	}
	if c.Area() != 0 {
		t.Errorf("area: got %v, want 0 for a line", c.Area())
	}
}

func TestTraceContours_HoleBoundariesExcluded(t *testing.T) {
	// A ring (block with a hole) yields exactly one contour: the outer
	// boundary. The hole's inner boundary is never emitted.
	m := mask(60, 60, image.Rect(10, 10, 50, 50))
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			m.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	contours := traceContours(m)
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1 outer boundary", len(contours))
	}
	bbox := contours[0].BoundingBox()
	want := Rect{X: 10, Y: 10, Width: 40, Height: 40}
	if bbox != want {
		t.Errorf("bounding box: got %+v, want %+v", bbox, want)
	}
}

func TestContourArea_Square(t *testing.T) {
	c := Contour{image.Pt(0, 0), image.Pt(10, 0), image.Pt(10, 10), image.Pt(0, 10)}
	if got := c.Area(); got != 100 {
		t.Errorf("area: got %v, want 100", got)
	}
}
