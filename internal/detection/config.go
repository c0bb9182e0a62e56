package detection

// Config holds the tunable thresholds for strip detection.
//
// All values are plain data passed into DetectStrip per call; the pipeline
// keeps no global state, so tests and callers can override individual
// thresholds without affecting concurrent invocations.
type Config struct {
	// MinAreaRatio is the minimum candidate bounding-box area as a fraction
	// of the image area. Candidates below it are treated as noise.
	MinAreaRatio float64

	// MaxAreaRatio is the maximum candidate area fraction. Candidates above
	// it are treated as whole-frame borders.
	MaxAreaRatio float64

	// MinAspectRatio and MaxAspectRatio bound height/width of a candidate.
	// Test strips are tall and narrow, so the range is well above 1.
	MinAspectRatio float64
	MaxAspectRatio float64

	// CropMarginPercent is the extra border added around the winning
	// bounding box before cropping, as a fraction of its width/height.
	CropMarginPercent float64

	// CannyLow and CannyHigh are the hysteresis thresholds (0-255) for edge
	// detection. Gradients above CannyHigh are always edges; gradients
	// between the two are edges only if adjacent to a strong edge.
	CannyLow  int
	CannyHigh int

	// DilateRadius is the structuring-element radius for edge dilation
	// (1 = 3x3). DilateIterations is how many times it is applied; two
	// passes close the gaps that broken strip boundaries leave behind.
	DilateRadius     float64
	DilateIterations int
}

// DefaultConfig returns the thresholds tuned for pool test strip photos.
func DefaultConfig() Config {
	return Config{
		MinAreaRatio:      0.01,
		MaxAreaRatio:      0.95,
		MinAspectRatio:    1.5,
		MaxAspectRatio:    15.0,
		CropMarginPercent: 0.05,
		CannyLow:          50,
		CannyHigh:         150,
		DilateRadius:      1,
		DilateIterations:  2,
	}
}
