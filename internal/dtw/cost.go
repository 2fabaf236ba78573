package dtw

import "gonum.org/v1/gonum/mat"

// CostMatrix returns the len(seq1) x len(seq2) matrix whose cell (i, j) holds
// the distance between seq1[i] and seq2[j].
func CostMatrix[P Point[P]](seq1, seq2 []P) (*mat.Dense, error) {
	if len(seq1) == 0 || len(seq2) == 0 {
		return nil, ErrEmptySequence
	}

	cost := mat.NewDense(len(seq1), len(seq2), nil)
	for i, a := range seq1 {
		for j, b := range seq2 {
			cost.Set(i, j, a.Distance(b))
		}
	}

	return cost, nil
}
