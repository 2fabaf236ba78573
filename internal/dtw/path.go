package dtw

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Step is one matched pair on a warping path, given in warp matrix
// coordinates: Row indexes the first sequence and Col the second, both 1-based.
type Step struct {
	Row int
	Col int
}

// String formats the step as "(row,col)".
func (s Step) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Path is an ordered warping path from (1,1) to (m,n).
type Path []Step

// ReconstructPath walks a warp matrix back from its last cell to (1,1),
// moving each time to the cheapest of the up, left and diagonal
// neighbours. Ties prefer up, then left, then diagonal. The returned path
// is ordered from (1,1) to (m,n).
func ReconstructPath(warp mat.Matrix) (Path, error) {
	r, c := warp.Dims()
	if r < 2 || c < 2 {
		return nil, ErrEmptySequence
	}

	// Walk back from the last real cell, then flip into forward order
	pos := Step{Row: r - 1, Col: c - 1}
	path := Path{pos}
	for pos != (Step{Row: 1, Col: 1}) {
		pos = previousStep(warp, pos)
		path = append(path, pos)
	}

	slices.Reverse(path)
	return path, nil
}

// previousStep picks the predecessor of pos on the optimal path.
func previousStep(warp mat.Matrix, pos Step) Step {
	x, y := pos.Row, pos.Col
	up := Step{Row: x - 1, Col: y}
	left := Step{Row: x, Col: y - 1}
	diag := Step{Row: x - 1, Col: y - 1}

	// On the first row or column only one real neighbour exists. The
	// sentinels already rule the others out unless costs are infinite.
	switch {
	case x == 1:
		return left
	case y == 1:
		return up
	}

	upCost, leftCost, diagCost := warp.At(up.Row, up.Col), warp.At(left.Row, left.Col), warp.At(diag.Row, diag.Col)
	best := min(upCost, leftCost, diagCost)

	// Case order is the tie priority
	switch best {
	case upCost:
		return up
	case leftCost:
		return left
	default:
		return diag
	}
}
