// Package geometry provides the 2D primitives shared by the detection and
// rectification pipeline: points tagged with a coordinate space, polygon
// simplification, corner ordering, and edge/angle measurements.
//
// # Coordinate Spaces
//
// The engine works in three coordinate spaces:
//
//   - Working space: the small fixed analysis resolution (e.g. 160×120)
//   - Preview space: the camera preview resolution shown to the user
//   - Image space: the full-resolution still image
//
// Every structure carrying points declares its space. Conversion between
// spaces is an explicit linear transform with independent X and Y scale
// factors, because downsampling may change the aspect ratio.
//
// # Corner Ordering
//
// Quadrilateral corners are always ordered top-left, top-right, bottom-right,
// bottom-left. The ordering rule ((x+y) extremes pick the top-left and
// bottom-right corners, (x−y) extremes pick the top-right and bottom-left,
// with coordinate tie-breaks for quads whose sums coincide) is shared by
// every downstream consumer (rectifier, overlay renderer) and is invariant
// under permutation of the input points.
package geometry
