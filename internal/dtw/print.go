package dtw

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const (
	cellWidth     = 8
	cellPrecision = 2
)

// PrintMatrix writes the warp matrix without its sentinel row and column.
func (a *Alignment[P]) PrintMatrix(w io.Writer) error {
	r, c := a.warp.Dims()
	inner := a.warp.Slice(1, r, 1, c)
	_, err := fmt.Fprintf(w, "Cost: %v\n%.2f\n", a.total, mat.Formatted(inner, mat.Squeeze()))
	return err
}

// PrintPath writes the warp matrix with the cells on the warping path
// marked by a trailing '*'. Scalar sequences are printed as row and column
// headers; other point types are listed above the matrix.
func (a *Alignment[P]) PrintPath(w io.Writer) error {
	var b strings.Builder

	s1, scalar1 := any(a.seq1).([]Scalar)
	s2, scalar2 := any(a.seq2).([]Scalar)
	scalar := scalar1 && scalar2

	if scalar {
		b.WriteString(strings.Repeat(" ", cellWidth))
		for _, v := range s2 {
			fmt.Fprintf(&b, "%*.*f ", cellWidth, cellPrecision, float64(v))
		}
		b.WriteByte('\n')
	} else {
		fmt.Fprintf(&b, "%v\n\n%v\n\n%v\n\n", a.seq1, a.seq2, a.path)
		if a.aligned != nil {
			fmt.Fprintf(&b, "%v\n\n", a.aligned)
		}
	}

	r, c := a.warp.Dims()
	next := 0
	for i := 1; i < r; i++ {
		if scalar {
			fmt.Fprintf(&b, "%*.*f", cellWidth, cellPrecision, float64(s1[i-1]))
		}
		for j := 1; j < c; j++ {
			mark := ' '
			if next < len(a.path) && a.path[next] == (Step{Row: i, Col: j}) {
				mark = '*'
				next++
			}
			fmt.Fprintf(&b, "%*.*f%c", cellWidth, cellPrecision, a.warp.At(i, j), mark)
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
