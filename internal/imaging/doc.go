// Package imaging provides the raster operations shared by the detection
// pipeline: grayscale conversion, small-radius blur, histogram and Otsu
// thresholding, perspective rectification, and image quality metrics.
//
// # Two Processing Paths
//
// The streaming path operates on raw working-resolution luma buffers
// (camera.Frame) with hand-rolled integer ops to hold the per-frame latency
// budget. The single-shot still path operates on decoded image.Image values
// and may use heavier library routines (bild blur, x/image scaling) since it
// runs once per capture rather than per frame.
//
// # Rectification
//
// The rectifier maps an ordered quadrilateral to an upright rectangle whose
// dimensions derive from the quad's edge lengths. The primary mapping is a
// true projective homography solved from the four corner correspondences;
// bilinear interpolation of the corner positions is kept only as a fallback
// for degenerate quads. The bilinear form is an approximation of a true
// perspective transform and distorts at sharp viewing angles.
package imaging
