// Package detection locates document boundaries in working-resolution
// frames.
//
// # Detector Chain
//
// Detection runs an ordered chain of strategies sharing one interface:
//
//   - contour: Otsu-binarized contour tracing, Douglas-Peucker
//     simplification, and 4-corner rectangle scoring. Primary strategy.
//   - edge: gradient-threshold edge detection with bounding-box fitting.
//     Weaker, but survives low-contrast scenes that defeat binarization.
//   - center: a fixed centered rectangle at low confidence, so downstream
//     consumers always receive a usable result.
//
// Strategies are tried in order until one clears the chain's confidence
// floor. A cancelled or expired context stops the chain between stages and
// yields "no detection"; a timeout is not an error.
//
// # Rectangle Scoring
//
// Each 4-corner candidate scores
//
//	score = 0.6·areaRatio + 0.4·rightAngleFraction
//
// where areaRatio is polygon area over frame area (candidates outside
// [0.1, 0.9] are rejected) and rightAngleFraction is the count of interior
// angles within 30° of 90°, divided by 4. The best-scoring candidate wins;
// ties keep the first encountered.
package detection
