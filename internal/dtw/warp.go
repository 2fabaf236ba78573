package dtw

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// WarpMatrix accumulates a cost matrix into the DTW warp matrix.
//
// For an m x n cost matrix C the result W is (m+1) x (n+1) with
//
//	W[0][0] = 0
//	W[i][0] = W[0][j] = +Inf        for i, j > 0
//	W[i][j] = C[i-1][j-1] + min(W[i-1][j], W[i][j-1], W[i-1][j-1])
//
// The sentinel row and column keep every real cell from reaching outside
// the matrix except through W[0][0].
func WarpMatrix(cost mat.Matrix) (*mat.Dense, error) {
	m, n := cost.Dims()
	if m == 0 || n == 0 {
		return nil, ErrEmptySequence
	}

	// Create (m+1) x (n+1) matrix with the sentinel row and column
	inf := math.Inf(1)
	warp := mat.NewDense(m+1, n+1, nil)
	for i := 1; i <= m; i++ {
		warp.Set(i, 0, inf)
	}
	for j := 1; j <= n; j++ {
		warp.Set(0, j, inf)
	}

	// Fill row by row, each cell depends only on its three predecessors
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			best := min(warp.At(i-1, j), warp.At(i, j-1), warp.At(i-1, j-1))
			warp.Set(i, j, cost.At(i-1, j-1)+best)
		}
	}

	return warp, nil
}

// TotalCost returns the accumulated cost of the optimal alignment, which is
// the bottom-right cell of the warp matrix.
func TotalCost(warp mat.Matrix) float64 {
	r, c := warp.Dims()
	return warp.At(r-1, c-1)
}

// NormalizedCost divides total by the integer mean of the two sequence
// lengths. The mean is truncated before the division, so sequences of
// lengths 3 and 4 divide by 3.
func NormalizedCost(total float64, len1, len2 int) float64 {
	return total / float64((len1+len2)/2)
}

// Distance returns the total and normalized DTW cost of aligning seq1 with
// seq2 without reconstructing the path.
func Distance[P Point[P]](seq1, seq2 []P) (total, normalized float64, err error) {
	cost, err := CostMatrix(seq1, seq2)
	if err != nil {
		return 0, 0, err
	}

	warp, err := WarpMatrix(cost)
	if err != nil {
		return 0, 0, err
	}

	total = TotalCost(warp)
	return total, NormalizedCost(total, len(seq1), len(seq2)), nil
}
