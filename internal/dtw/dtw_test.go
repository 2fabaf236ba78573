package dtw_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ayusman/gesturemap/internal/dtw"
)

// TestCostMatrix_Scalar checks the absolute-difference metric and dimensions.
func TestCostMatrix_Scalar(t *testing.T) {
	cost, err := dtw.CostMatrix(dtw.Scalars(1, 2, 3), dtw.Scalars(2, 2, 3, 4))
	require.NoError(t, err)

	r, c := cost.Dims()
	assert.Equal(t, 3, r, "rows must equal len(seq1)")
	assert.Equal(t, 4, c, "cols must equal len(seq2)")
	assert.Equal(t, []float64{1, 1, 2, 3}, mat.Row(nil, 0, cost), "first row")
	assert.Equal(t, []float64{1, 1, 0, 1}, mat.Row(nil, 2, cost), "last row")
}

// TestCostMatrix_Vec3 checks that vector distances are squared, not rooted.
func TestCostMatrix_Vec3(t *testing.T) {
	a := []dtw.Vec3{{X: 0, Y: 0, Z: 0}}
	b := []dtw.Vec3{{X: 1, Y: 2, Z: 2}, {X: 3, Y: 4, Z: 0}}

	cost, err := dtw.CostMatrix(a, b)
	require.NoError(t, err)
	assert.Equal(t, 9.0, cost.At(0, 0))
	assert.Equal(t, 25.0, cost.At(0, 1))
}

// TestCostMatrix_Empty verifies the empty-sequence precondition.
func TestCostMatrix_Empty(t *testing.T) {
	_, err := dtw.CostMatrix([]dtw.Scalar{}, dtw.Scalars(1))
	assert.ErrorIs(t, err, dtw.ErrEmptySequence, "empty first sequence should error")

	_, err = dtw.CostMatrix(dtw.Scalars(1), nil)
	assert.ErrorIs(t, err, dtw.ErrEmptySequence, "empty second sequence should error")
}

// TestWarpMatrix_HandComputed pins the warp matrix of a small 1-D example.
func TestWarpMatrix_HandComputed(t *testing.T) {
	cost, err := dtw.CostMatrix(dtw.Scalars(1, 2, 3), dtw.Scalars(2, 2, 3, 4))
	require.NoError(t, err)

	warp, err := dtw.WarpMatrix(cost)
	require.NoError(t, err)

	r, c := warp.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 5, c)

	assert.Equal(t, 0.0, warp.At(0, 0), "origin")
	for i := 1; i < r; i++ {
		assert.True(t, math.IsInf(warp.At(i, 0), 1), "column 0 sentinel at row %d", i)
	}
	for j := 1; j < c; j++ {
		assert.True(t, math.IsInf(warp.At(0, j), 1), "row 0 sentinel at col %d", j)
	}

	want := [][]float64{
		{1, 2, 4, 7},
		{1, 1, 2, 4},
		{2, 2, 1, 2},
	}
	for i, row := range want {
		assert.Equal(t, row, mat.Row(nil, i+1, warp)[1:], "warp row %d", i+1)
	}
	assert.Equal(t, 2.0, dtw.TotalCost(warp))
}

// TestWarpMatrix_Empty ensures a zero-sized cost matrix is rejected.
func TestWarpMatrix_Empty(t *testing.T) {
	_, err := dtw.WarpMatrix(&mat.Dense{})
	assert.ErrorIs(t, err, dtw.ErrEmptySequence)
}

// TestNormalizedCost checks the truncated integer mean divisor.
func TestNormalizedCost(t *testing.T) {
	tests := []struct {
		total      float64
		len1, len2 int
		want       float64
	}{
		{2, 3, 4, 2.0 / 3},
		{6, 2, 2, 3},
		{5, 1, 2, 5},
		{9, 4, 5, 9.0 / 4},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, dtw.NormalizedCost(tt.total, tt.len1, tt.len2), 1e-12,
			"NormalizedCost(%v, %d, %d)", tt.total, tt.len1, tt.len2)
	}
}

// TestReconstructPath_HandComputed pins the path of the 1-D example,
// which exercises the left-over-diagonal tie at (2,2).
func TestReconstructPath_HandComputed(t *testing.T) {
	a, err := dtw.New(dtw.Scalars(1, 2, 3), dtw.Scalars(2, 2, 3, 4))
	require.NoError(t, err)

	want := dtw.Path{{1, 1}, {2, 1}, {2, 2}, {3, 3}, {3, 4}}
	assert.Equal(t, want, a.Path())
	assert.Equal(t, 2.0, a.Cost())
	assert.InDelta(t, 2.0/3, a.NormalizedCost(), 1e-12)
}

// TestReconstructPath_TiePriority builds a warp matrix where all three
// neighbours tie and checks that up is taken first.
func TestReconstructPath_TiePriority(t *testing.T) {
	inf := math.Inf(1)
	warp := mat.NewDense(3, 3, []float64{
		0, inf, inf,
		inf, 1, 1,
		inf, 1, 2,
	})

	path, err := dtw.ReconstructPath(warp)
	require.NoError(t, err)
	assert.Equal(t, dtw.Path{{1, 1}, {1, 2}, {2, 2}}, path, "up must win a three-way tie")

	// Up is more expensive, left and diagonal tie: left wins.
	warp.Set(1, 2, 5)
	path, err = dtw.ReconstructPath(warp)
	require.NoError(t, err)
	assert.Equal(t, dtw.Path{{1, 1}, {2, 1}, {2, 2}}, path, "left must beat diagonal")

	// Only diagonal is cheapest.
	warp.Set(2, 1, 5)
	path, err = dtw.ReconstructPath(warp)
	require.NoError(t, err)
	assert.Equal(t, dtw.Path{{1, 1}, {2, 2}}, path, "diagonal when strictly cheapest")
}

// TestReconstructPath_Empty rejects a warp matrix with no real cell.
func TestReconstructPath_Empty(t *testing.T) {
	_, err := dtw.ReconstructPath(mat.NewDense(1, 1, nil))
	assert.ErrorIs(t, err, dtw.ErrEmptySequence)
}

// TestAlignment_Properties checks the invariants that hold for any input.
func TestAlignment_Properties(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		checkAlignmentProperties(t, [][]dtw.Scalar{
			dtw.Scalars(0),
			dtw.Scalars(1, 3, 4, 9, 8, 2, 1),
			dtw.Scalars(5, 5, 5),
			dtw.Scalars(-2, 0, 2, 4),
			dtw.Scalars(7, 1),
		})
	})

	t.Run("vec3", func(t *testing.T) {
		checkAlignmentProperties(t, [][]dtw.Vec3{
			{{X: 0, Y: 0, Z: 0}},
			{{X: 1, Y: 0, Z: -1}, {X: 2, Y: 1, Z: 0}, {X: 3, Y: 3, Z: 1}, {X: 2, Y: 5, Z: 1}},
			{{X: 0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5, Z: 0.5}},
			{{X: -4, Y: 2, Z: 9}, {X: 6, Y: -1, Z: 0.25}},
			{{X: 0.1, Y: 0.2, Z: 0.3}, {X: 1.1, Y: 0.9, Z: -0.4}, {X: 2, Y: 2, Z: 2}, {X: 1, Y: 0, Z: 3}, {X: 0, Y: 0, Z: 0}},
		})
	})
}

func checkAlignmentProperties[P dtw.Point[P]](t *testing.T, seqs [][]P) {
	t.Helper()

	for _, s := range seqs {
		self, err := dtw.New(s, s)
		require.NoError(t, err)
		assert.Equal(t, 0.0, self.Cost(), "self alignment of %v", s)

		for _, other := range seqs {
			ab, err := dtw.New(s, other)
			require.NoError(t, err)
			ba, err := dtw.New(other, s)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, ab.Cost(), 0.0, "non-negative cost")
			assert.Equal(t, ab.Cost(), ba.Cost(), "symmetric cost for %v and %v", s, other)

			path := ab.Path()
			require.NotEmpty(t, path)
			assert.Equal(t, dtw.Step{Row: 1, Col: 1}, path[0], "path start")
			assert.Equal(t, dtw.Step{Row: len(s), Col: len(other)}, path[len(path)-1], "path end")
			for k := 1; k < len(path); k++ {
				dr := path[k].Row - path[k-1].Row
				dc := path[k].Col - path[k-1].Col
				assert.True(t, (dr == 0 || dr == 1) && (dc == 0 || dc == 1) && dr+dc > 0,
					"step %v -> %v must advance by at most one per axis", path[k-1], path[k])
			}

			// The path never takes more steps than m+n-1
			assert.LessOrEqual(t, len(path), len(s)+len(other)-1)
		}
	}
}

// TestAlignment_Matrices checks the matrices kept by an Alignment.
func TestAlignment_Matrices(t *testing.T) {
	a, err := dtw.New(dtw.Scalars(1, 2, 3), dtw.Scalars(2, 2, 3, 4))
	require.NoError(t, err)

	cost := a.CostMatrix()
	r, c := cost.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 4, c)
	assert.True(t, mat.Equal(cost, mat.NewDense(3, 4, []float64{
		1, 1, 2, 3,
		0, 0, 1, 2,
		1, 1, 0, 1,
	})), "cost matrix\n%v", mat.Formatted(cost))

	warp := a.WarpMatrix()
	r, c = warp.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 5, c)
	inf := math.Inf(1)
	assert.True(t, mat.Equal(warp, mat.NewDense(4, 5, []float64{
		0, inf, inf, inf, inf,
		inf, 1, 2, 4, 7,
		inf, 1, 1, 2, 4,
		inf, 2, 2, 1, 2,
	})), "warp matrix\n%v", mat.Formatted(warp))

	assert.Equal(t, dtw.TotalCost(warp), a.Cost())
}

// TestAlignment_Vec3Aligned checks the midpoint sequence and its one-shot handoff.
func TestAlignment_Vec3Aligned(t *testing.T) {
	seq1 := []dtw.Vec3{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 2, Z: 2}}
	seq2 := []dtw.Vec3{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 2, Z: 2}, {X: 4, Y: 4, Z: 4}}

	a, err := dtw.New(seq1, seq2)
	require.NoError(t, err)

	path := a.Path()
	aligned := a.TakeAligned()
	require.Len(t, aligned, len(path), "aligned length equals path length")
	for k, step := range path {
		want := seq1[step.Row-1].Midpoint(seq2[step.Col-1])
		assert.Equal(t, want, aligned[k], "aligned point %d", k)
	}
	assert.Equal(t, dtw.Vec3{X: 0, Y: 0, Z: 0}, aligned[0])
	assert.Equal(t, dtw.Vec3{X: 3, Y: 3, Z: 3}, aligned[len(aligned)-1])

	assert.Nil(t, a.TakeAligned(), "aligned sequence is handed out once")

	require.NoError(t, a.ProduceAligned())
	assert.Equal(t, aligned, a.TakeAligned(), "re-producing yields the same sequence")
}

// TestAlignSequence_InvalidStep rejects steps outside the sequences.
func TestAlignSequence_InvalidStep(t *testing.T) {
	_, err := dtw.AlignSequence(dtw.Scalars(1, 2), dtw.Scalars(1), dtw.Path{{1, 1}, {2, 2}})
	assert.ErrorIs(t, err, dtw.ErrInvalidPath)

	_, err = dtw.AlignSequence(dtw.Scalars(1), dtw.Scalars(1), nil)
	assert.ErrorIs(t, err, dtw.ErrEmptySequence)
}

// TestDistance matches the full Alignment cost.
func TestDistance(t *testing.T) {
	total, normalized, err := dtw.Distance(dtw.Scalars(1, 2, 3), dtw.Scalars(2, 2, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, 2.0, total)
	assert.InDelta(t, 2.0/3, normalized, 1e-12)

	_, _, err = dtw.Distance(nil, dtw.Scalars(1))
	assert.ErrorIs(t, err, dtw.ErrEmptySequence)
}

// TestPrintPath marks exactly the path cells.
func TestPrintPath(t *testing.T) {
	a, err := dtw.New(dtw.Scalars(1, 2, 3), dtw.Scalars(2, 2, 3, 4))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, a.PrintPath(&buf))

	out := buf.String()
	assert.Equal(t, len(a.Path()), strings.Count(out, "*"), "one marker per path step")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header plus one line per row")
	assert.Contains(t, lines[0], "4.00")
}

// TestPrintMatrix drops the sentinel row and column.
func TestPrintMatrix(t *testing.T) {
	a, err := dtw.New(dtw.Scalars(1, 2), dtw.Scalars(1, 2))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, a.PrintMatrix(&buf))
	assert.NotContains(t, buf.String(), "Inf")
	assert.True(t, strings.HasPrefix(buf.String(), "Cost: 0\n"))
}
