package detection

import (
	"errors"
	"image"

	"strip-cropper/internal/imaging"
)

// DetectionMethod is the constant reported in every Result. There is a
// single detection strategy; the field exists so stored metadata stays
// self-describing if other strategies are ever added.
const DetectionMethod = "contour_detection"

// Messages reported in Result.Message. The strings are part of the service
// contract: clients and stored metadata match on them.
const (
	MsgNoContours  = "No contours found in image"
	MsgNoCandidate = "No suitable test strip contour found"
	MsgCropped     = "Test strip successfully detected and cropped"
)

// ErrInvalidImage is returned when DetectStrip is handed a nil or empty
// pixel buffer. Decode failures are the codec's responsibility and never
// reach this point.
var ErrInvalidImage = errors.New("invalid image: image is nil or empty")

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is an axis-aligned rectangle in pixel coordinates with the origin at
// the top-left corner of the image.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Result records the outcome of one detection pass.
//
// Success=false is an expected outcome, not an error: it means the photo
// contained no region that looks like a test strip, and the caller received
// the original image unchanged. BBox and CroppedSize are set only on
// success.
type Result struct {
	Success         bool   `json:"success"`
	OriginalSize    Size   `json:"original_size"`
	DetectionMethod string `json:"detection_method"`
	Message         string `json:"message"`
	BBox            *Rect  `json:"bbox,omitempty"`
	CroppedSize     *Size  `json:"cropped_size,omitempty"`
}

// DetectStrip locates the test strip in a photograph and returns a crop
// tightly bounding it.
//
// The pipeline is a single forward pass: grayscale + blur, Canny edge
// detection with gap-closing dilation, outer-contour extraction, candidate
// filtering and scoring, then a margin-expanded crop of the winning
// bounding box taken from the original image.
//
// On a soft detection failure (no contours, or no contour passing the
// area/aspect filters) the original image is returned unchanged together
// with a Result describing why; err is non-nil only for a nil or empty
// input buffer.
//
// The pass is deterministic: identical pixels always produce an identical
// Result and crop. No state is shared between invocations, so concurrent
// calls need no coordination.
func DetectStrip(img image.Image, cfg Config) (image.Image, *Result, error) {
	if img == nil {
		return nil, nil, ErrInvalidImage
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, nil, ErrInvalidImage
	}

	result := &Result{
		OriginalSize:    Size{Width: width, Height: height},
		DetectionMethod: DetectionMethod,
	}

	edges := edgeMap(img, cfg)
	contours := traceContours(edges)
	if len(contours) == 0 {
		result.Message = MsgNoContours
		return img, result, nil
	}

	best := selectBest(contours, width, height, cfg)
	if best == nil {
		result.Message = MsgNoCandidate
		return img, result, nil
	}

	x1, y1, x2, y2 := cropWindow(*best, width, height, cfg.CropMarginPercent)
	cropped, err := imaging.Crop(img, x1+bounds.Min.X, y1+bounds.Min.Y, x2+bounds.Min.X, y2+bounds.Min.Y)
	if err != nil {
		return nil, nil, err
	}

	result.Success = true
	result.Message = MsgCropped
	result.BBox = &Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
	result.CroppedSize = &Size{Width: x2 - x1, Height: y2 - y1}
	return cropped, result, nil
}

// selectBest filters the contours by area and aspect ratio, scores the
// survivors, and returns the bounding box of the single best candidate.
//
// score = areaRatio * rectangularity, where areaRatio is the bounding-box
// area over the image area and rectangularity is the enclosed polygon area
// over the bounding-box area (near 1.0 for true rectangles).
//
// The comparison is strict >, so among exact score ties the contour traced
// first wins. That first-seen policy is deliberate: contours arrive in a
// stable scan order and downstream consumers rely on reproducible picks.
// A lone candidate scoring exactly 0 is never selected.
//
// Returns nil when nothing qualifies.
func selectBest(contours []Contour, imgWidth, imgHeight int, cfg Config) *Rect {
	imageArea := float64(imgWidth * imgHeight)

	var best *Rect
	bestScore := 0.0

	for _, contour := range contours {
		bbox := contour.BoundingBox()
		bboxArea := bbox.Width * bbox.Height

		// Skip noise-scale artifacts and whole-frame borders.
		areaRatio := float64(bboxArea) / imageArea
		if areaRatio < cfg.MinAreaRatio || areaRatio > cfg.MaxAreaRatio {
			continue
		}

		// Test strips are tall and narrow.
		aspectRatio := 0.0
		if bbox.Width > 0 {
			aspectRatio = float64(bbox.Height) / float64(bbox.Width)
		}
		if aspectRatio < cfg.MinAspectRatio || aspectRatio > cfg.MaxAspectRatio {
			continue
		}

		rectangularity := 0.0
		if bboxArea > 0 {
			rectangularity = contour.Area() / float64(bboxArea)
		}

		score := areaRatio * rectangularity
		if score > bestScore {
			bestScore = score
			b := bbox
			best = &b
		}
	}
	return best
}

// cropWindow expands the winning bounding box by the margin fraction on
// each side and clamps the window to the image bounds. The returned
// half-open window [x1,x2) x [y1,y2) is always inside the image.
func cropWindow(bbox Rect, imgWidth, imgHeight int, margin float64) (x1, y1, x2, y2 int) {
	marginX := int(float64(bbox.Width) * margin)
	marginY := int(float64(bbox.Height) * margin)

	x1 = maxInt(0, bbox.X-marginX)
	y1 = maxInt(0, bbox.Y-marginY)
	x2 = minInt(imgWidth, bbox.X+bbox.Width+marginX)
	y2 = minInt(imgHeight, bbox.Y+bbox.Height+marginY)
	return x1, y1, x2, y2
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
