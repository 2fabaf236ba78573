package gesture

import "github.com/ayusman/gesturemap/internal/dtw"

// Record is one labelled gesture recording.
type Record[P dtw.Point[P]] struct {
	ID       int // Unique identifier of the recording
	User     int // Participant who performed the gesture
	Gesture  int // Gesture class label
	Sequence []P // Time-ordered samples
}

// Prediction is the outcome of classifying one record.
type Prediction struct {
	RecordID  int     // ID of the classified record
	Gesture   int     // True gesture label
	Predicted int     // Label of the nearest template
	Cost      float64 // DTW cost to the nearest template
}

// Correct reports whether the nearest template carries the true label.
func (p Prediction) Correct() bool {
	return p.Gesture == p.Predicted
}

// Report summarises the classification of a test set.
type Report struct {
	Predictions []Prediction
	Correct     int
	Total       int
	Accuracy    float64 // Correct / Total, in [0, 1]
}

// newReport tallies predictions into a Report. Total must be non-zero.
func newReport(predictions []Prediction) *Report {
	r := &Report{
		Predictions: predictions,
		Total:       len(predictions),
	}
	for _, p := range predictions {
		if p.Correct() {
			r.Correct++
		}
	}
	r.Accuracy = float64(r.Correct) / float64(r.Total)
	return r
}
