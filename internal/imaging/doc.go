// Package imaging provides the codec and crop collaborators around the
// detection pipeline.
//
// The detection core works on decoded pixel buffers only; this package owns
// the boundaries on either side of it: decoding uploaded bytes into an
// image.Image, extracting the final crop rectangle, re-encoding results for
// transport, and drawing debug annotations.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward, Y increases downward. For regions, (x1,y1) is
// inclusive and (x2,y2) is exclusive.
//
// # Thread Safety
//
// Every function is stateless and safe to call concurrently; sources are
// read-only and results are freshly allocated buffers.
package imaging
