package detection

import (
	"image"
	"math"
)

// Contour is the ordered outer boundary of one connected edge region.
// Collinear points along straight runs are removed, so an axis-aligned
// rectangle reduces to its four corners.
type Contour []image.Point

// BoundingBox returns the smallest axis-aligned rectangle containing the
// contour. Width and height count pixels, so a single point has a 1x1 box.
func (c Contour) BoundingBox() Rect {
	minX, minY := c[0].X, c[0].Y
	maxX, maxY := c[0].X, c[0].Y
	for _, p := range c[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// Area returns the polygon area enclosed by the contour using the shoelace
// formula. Contours with fewer than three points enclose nothing.
func (c Contour) Area() float64 {
	if len(c) < 3 {
		return 0
	}
	sum := 0
	for i := range c {
		j := (i + 1) % len(c)
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return math.Abs(float64(sum)) / 2
}

// mooreNeighbors lists the 8 neighbor offsets in clockwise order for screen
// coordinates (y grows downward): E, SE, S, SW, W, NW, N, NE.
var mooreNeighbors = [8]image.Point{
	{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1},
	{X: -1, Y: 0}, {X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
}

// traceContours extracts the outer boundary of every 8-connected component
// of set pixels in the edge map, in row-major scan order. Only the outermost
// boundary of each component is traced; hole boundaries are never emitted.
//
// The scan order makes the result deterministic for identical input: the
// component whose topmost-leftmost pixel comes first in row-major order is
// traced first.
func traceContours(edges *image.Gray) []Contour {
	bounds := edges.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	isSet := func(x, y int) bool {
		if x < 0 || x >= width || y < 0 || y >= height {
			return false
		}
		return edges.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y != 0
	}

	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	contours := make([]Contour, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !isSet(x, y) || visited[y][x] {
				continue
			}
			boundary := traceBoundary(isSet, image.Pt(x, y), 4*width*height)
			markComponent(isSet, visited, x, y, width, height)
			contours = append(contours, simplify(boundary))
		}
	}
	return contours
}

// traceBoundary walks the outer boundary of a component clockwise using
// Moore-neighbor tracing with Jacob's stopping criterion.
//
// start must be the topmost-leftmost pixel of its component: the row-major
// scan guarantees the western neighbor is background, which seeds the
// backtrack position. maxSteps bounds the walk on pathological masks.
func traceBoundary(isSet func(x, y int) bool, start image.Point, maxSteps int) []image.Point {
	boundary := []image.Point{start}

	startBacktrack := start.Add(image.Pt(-1, 0))
	cur, backtrack := start, startBacktrack

	var first image.Point
	hasFirst := false

	for steps := 0; steps < maxSteps; steps++ {
		dir := neighborIndex(backtrack.Sub(cur))

		var next image.Point
		found := false
		probe := backtrack
		for i := 1; i <= 8; i++ {
			d := (dir + i) % 8
			p := cur.Add(mooreNeighbors[d])
			if isSet(p.X, p.Y) {
				next = p
				found = true
				break
			}
			probe = p
		}
		if !found {
			// isolated pixel
			break
		}
		// Jacob's criterion: stop when the walk re-enters the start pixel
		// from the same background neighbor it began at.
		if next == start && probe == startBacktrack {
			break
		}
		// Degenerate thin shapes can re-enter the start from a different
		// neighbor on every lap; repeating the first move means the walk
		// has come full circle.
		if hasFirst && cur == start && next == first {
			break
		}
		if !hasFirst {
			first = next
			hasFirst = true
		}

		backtrack = probe
		cur = next
		boundary = append(boundary, cur)
	}
	return boundary
}

// neighborIndex maps an adjacent-pixel offset to its mooreNeighbors index.
func neighborIndex(d image.Point) int {
	for i, n := range mooreNeighbors {
		if n == d {
			return i
		}
	}
	return 4
}

// markComponent flood-fills an 8-connected component so the scan never
// traces the same region twice. Uses a stack-based approach (not recursive)
// to avoid stack overflow on large components.
func markComponent(isSet func(x, y int) bool, visited [][]bool, startX, startY, width, height int) {
	stack := []image.Point{image.Pt(startX, startY)}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !isSet(p.X, p.Y) {
			continue
		}
		visited[p.Y][p.X] = true

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Pt(p.X+dx, p.Y+dy))
			}
		}
	}
}

// simplify removes points that lie on a straight run between their
// neighbors. U-turn endpoints (where the walk doubles back along a thin
// spur) are kept so the bounding box retains its extremes. The enclosed
// polygon area is unchanged by the removal.
func simplify(points []image.Point) Contour {
	if len(points) < 3 {
		return Contour(points)
	}

	n := len(points)
	out := make(Contour, 0, n)
	for i := 0; i < n; i++ {
		prev := points[(i-1+n)%n]
		cur := points[i]
		next := points[(i+1)%n]

		ax, ay := cur.X-prev.X, cur.Y-prev.Y
		bx, by := next.X-cur.X, next.Y-cur.Y
		if ax*by-ay*bx != 0 || ax*bx+ay*by <= 0 {
			out = append(out, cur)
		}
	}
	if len(out) == 0 {
		out = Contour{points[0], points[n-1]}
	}
	return out
}
