package dtw

import "fmt"

// AlignSequence maps every step (x, y) of path to the midpoint of
// seq1[x-1] and seq2[y-1]. The result has exactly len(path) points.
func AlignSequence[P Point[P]](seq1, seq2 []P, path Path) ([]P, error) {
	if len(path) == 0 {
		return nil, ErrEmptySequence
	}

	aligned := make([]P, 0, len(path))
	for _, step := range path {
		if step.Row < 1 || step.Row > len(seq1) || step.Col < 1 || step.Col > len(seq2) {
			return nil, fmt.Errorf("step %s for lengths %d and %d: %w", step, len(seq1), len(seq2), ErrInvalidPath)
		}
		// Path steps are 1-based warp coordinates
		aligned = append(aligned, seq1[step.Row-1].Midpoint(seq2[step.Col-1]))
	}

	return aligned, nil
}
