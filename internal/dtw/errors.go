package dtw

import "errors"

var (
	// ErrEmptySequence indicates one or both input sequences are empty.
	ErrEmptySequence = errors.New("dtw: input sequences must be non-empty")

	// ErrInvalidPath indicates a path step that does not address a point of both sequences.
	ErrInvalidPath = errors.New("dtw: path step outside of sequence bounds")
)
