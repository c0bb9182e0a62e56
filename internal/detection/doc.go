// Package detection locates a rectangular test strip inside a photograph
// and computes a crop rectangle tightly bounding it.
//
// # Pipeline
//
// DetectStrip runs a single deterministic forward pass:
//
//  1. Preprocessing: grayscale conversion and a 5x5 Gaussian blur to
//     suppress sensor noise while preserving edges
//  2. Edge detection: Canny with dual-threshold hysteresis, followed by a
//     3x3 dilation applied twice to close gaps in broken strip boundaries
//  3. Contour extraction: Moore-neighbor tracing of the outer boundary of
//     every connected edge region, in row-major scan order
//  4. Filtering and scoring: candidates are kept when their bounding box
//     covers 1%-95% of the image and is 1.5x-15x taller than wide; the
//     survivor with the highest areaRatio x rectangularity score wins,
//     first-seen winning exact ties
//  5. Cropping: the winning box grows by a 5% margin, is clamped to the
//     image bounds, and the crop is taken from the original image, never
//     from the grayscale or edge intermediates
//
// Two guarded exits report expected failures instead of errors: an empty
// contour set, and an empty filtered candidate set. In both cases the
// caller gets the original image back together with a Result explaining
// the outcome.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Determinism
//
// For a fixed pixel buffer, repeated invocations produce byte-identical
// results. Contours are traced in row-major scan order, candidates are
// compared with strict >, and nothing in the pass samples randomly or
// iterates over maps.
//
// # Concurrency
//
// The pipeline is stateless across invocations. Each call owns its
// intermediate buffers exclusively, so any number of calls may run in
// parallel with no coordination.
//
// # Performance Considerations
//
// Edge detection and contour tracing dominate the cost and are linear to
// near-linear in pixel count. Callers wanting a wall-clock budget should
// impose it externally; the pass itself never blocks on I/O.
package detection
