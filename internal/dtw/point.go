// Package dtw aligns time-ordered sequences with Dynamic Time Warping.
//
// An Alignment runs the full pipeline for two sequences: the pairwise cost
// matrix, the accumulated warp matrix, the total and normalized cost, the
// optimal warping path and the averaged aligned sequence built from it.
// The individual steps are exported for callers that only need part of it,
// such as a classifier that compares costs and never looks at the path.
package dtw

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is an element of a sequence that DTW can compare and average.
type Point[P any] interface {
	// Distance returns the non-negative cost of matching the receiver with other.
	Distance(other P) float64
	// Midpoint returns the elementwise average of the receiver and other.
	Midpoint(other P) P
}

// Scalar is a one-dimensional sample.
type Scalar float64

// Distance returns the absolute difference of the two samples.
func (s Scalar) Distance(other Scalar) float64 {
	return math.Abs(float64(s - other))
}

// Midpoint returns the mean of the two samples.
func (s Scalar) Midpoint(other Scalar) Scalar {
	return (s + other) / 2
}

// Scalars converts raw values into a Scalar sequence.
func Scalars(values ...float64) []Scalar {
	seq := make([]Scalar, len(values))
	for i, v := range values {
		seq[i] = Scalar(v)
	}
	return seq
}

// Vec3 is a three-axis sample, typically one accelerometer reading.
type Vec3 r3.Vec

// Distance returns the squared Euclidean distance between the two vectors.
// The square root is deliberately not taken.
func (v Vec3) Distance(other Vec3) float64 {
	return r3.Norm2(r3.Sub(r3.Vec(v), r3.Vec(other)))
}

// Midpoint returns the elementwise average of the two vectors.
func (v Vec3) Midpoint(other Vec3) Vec3 {
	return Vec3(r3.Scale(0.5, r3.Add(r3.Vec(v), r3.Vec(other))))
}
