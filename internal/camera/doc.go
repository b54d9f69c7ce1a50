// Package camera owns frame acquisition for the detection engine: the frame
// and raw-sensor-frame types, the fixed-capacity buffer pool, and the
// stride-sampling downsampler that converts sensor frames into the small
// working-resolution buffers the detectors analyze.
//
// # Buffer Lifecycle
//
// Working buffers are drawn from a BufferPool and are owned by exactly one
// party at a time: either the pool, or the single in-flight detection task
// they were checked out to. A returned buffer is zero-filled before it
// re-enters the pool. The pool is the only resource shared between the frame
// delivery callback and the processing worker, and all checkout/return paths
// are mutex-synchronized.
//
// # Downsampling
//
// Downsampling uses fixed integer stride sampling (stride = sourceDim /
// targetDim per axis) with no interpolation; speed matters more than fidelity
// at analysis resolution. Color conversion uses the integer BT.601
// luma/chroma formula with per-channel clamping. An out-of-range source index
// produces a neutral mid-gray pixel instead of failing the frame.
package camera
