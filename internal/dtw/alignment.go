package dtw

import "gonum.org/v1/gonum/mat"

// Alignment holds every intermediate result of aligning two sequences.
// Matrices are owned by the Alignment and must be treated as read-only.
type Alignment[P Point[P]] struct {
	seq1       []P
	seq2       []P
	cost       *mat.Dense
	warp       *mat.Dense
	path       Path
	total      float64
	normalized float64
	aligned    []P
}

// New aligns seq1 with seq2. It builds the cost and warp matrices,
// reconstructs the warping path and produces the aligned sequence.
func New[P Point[P]](seq1, seq2 []P) (*Alignment[P], error) {
	cost, err := CostMatrix(seq1, seq2)
	if err != nil {
		return nil, err
	}

	warp, err := WarpMatrix(cost)
	if err != nil {
		return nil, err
	}

	path, err := ReconstructPath(warp)
	if err != nil {
		return nil, err
	}

	// Keep the matrices for printing and plotting
	total := TotalCost(warp)
	a := &Alignment[P]{
		seq1:       seq1,
		seq2:       seq2,
		cost:       cost,
		warp:       warp,
		path:       path,
		total:      total,
		normalized: NormalizedCost(total, len(seq1), len(seq2)),
	}

	if err := a.ProduceAligned(); err != nil {
		return nil, err
	}

	return a, nil
}

// Cost returns the total warping cost.
func (a *Alignment[P]) Cost() float64 {
	return a.total
}

// NormalizedCost returns the total cost divided by the truncated mean length.
func (a *Alignment[P]) NormalizedCost() float64 {
	return a.normalized
}

// Path returns a copy of the warping path.
func (a *Alignment[P]) Path() Path {
	return append(Path(nil), a.path...)
}

// CostMatrix returns the pairwise distance matrix.
func (a *Alignment[P]) CostMatrix() mat.Matrix {
	return a.cost
}

// WarpMatrix returns the accumulated cost matrix including its sentinel row and column.
func (a *Alignment[P]) WarpMatrix() mat.Matrix {
	return a.warp
}

// ProduceAligned rebuilds the aligned sequence from the path.
func (a *Alignment[P]) ProduceAligned() error {
	aligned, err := AlignSequence(a.seq1, a.seq2, a.path)
	if err != nil {
		return err
	}
	a.aligned = aligned
	return nil
}

// TakeAligned hands the aligned sequence to the caller and clears it.
// Later calls return nil until ProduceAligned runs again.
func (a *Alignment[P]) TakeAligned() []P {
	aligned := a.aligned
	a.aligned = nil
	return aligned
}
