package invert_test

import (
	"context"
	"math"
	"testing"

	"github.com/hsplex/luinvert/densemat"
	"github.com/hsplex/luinvert/fixtures"
	"github.com/hsplex/luinvert/invert"
	"github.com/stretchr/testify/require"
)

func basisAMatrix(t *testing.T, b *fixtures.SparseBasis) *invert.AMatrix {
	t.Helper()
	a, err := invert.NewAMatrix(b.N, b.N, b.Start, b.Index, b.Value)
	require.NoError(t, err)
	return a
}

func identityBasicIndex(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func denseFromBasis(t *testing.T, b *fixtures.SparseBasis, order []int) *densemat.Dense {
	t.Helper()
	// Rebuild column arrays reordered to `order` so the dense matrix
	// matches the column order Ftran/Btran index solutions by.
	start := make([]int, len(order)+1)
	var index []int
	var value []float64
	for pos, col := range order {
		start[pos] = len(index)
		lo, hi := b.Start[col], b.Start[col+1]
		index = append(index, b.Index[lo:hi]...)
		value = append(value, b.Value[lo:hi]...)
	}
	start[len(order)] = len(index)
	d, err := densemat.FromSparseColumns(b.N, start, index, value)
	require.NoError(t, err)
	return d
}

func TestEngine_Build_FtranRoundTrip(t *testing.T) {
	b, err := fixtures.RandomBasis(8, 0.35, fixtures.WithSeed(11), fixtures.WithDiagonalBias(6))
	require.NoError(t, err)
	a := basisAMatrix(t, b)

	e := invert.New(nil)
	require.NoError(t, e.Setup(a, identityBasicIndex(b.N)))
	require.NoError(t, e.Build(context.Background()))
	require.Equal(t, 0, e.RankDeficiency())

	rhs := invert.NewHVector(b.N)
	rhs.CopyFrom([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	original := append([]float64(nil), rhs.Array...)

	require.NoError(t, e.Ftran(rhs, 0))

	dense := denseFromBasis(t, b, e.BasicIndex())
	reconstructed, err := dense.MulVec(rhs.Array)
	require.NoError(t, err)
	for i := range original {
		require.InDelta(t, original[i], reconstructed[i], 1e-6)
	}
}

func TestEngine_Btran_DualRoundTrip(t *testing.T) {
	b, err := fixtures.RandomBasis(6, 0.4, fixtures.WithSeed(21), fixtures.WithDiagonalBias(6))
	require.NoError(t, err)
	a := basisAMatrix(t, b)

	e := invert.New(nil)
	require.NoError(t, e.Setup(a, identityBasicIndex(b.N)))
	require.NoError(t, e.Build(context.Background()))

	c := invert.NewHVector(b.N)
	c.CopyFrom([]float64{1, 0, 0, 2, 0, -1})

	require.NoError(t, e.Btran(c, 1.1)) // expectedDensity > 1 forces the hyper-sparse path

	// B^T x = c  <=>  x^T B = c^T; verify via x . (B e_j) == c[j] for each j.
	dense := denseFromBasis(t, b, e.BasicIndex())
	for j := 0; j < b.N; j++ {
		col := make([]float64, b.N)
		for i := 0; i < b.N; i++ {
			v, err := dense.At(i, j)
			require.NoError(t, err)
			col[i] = v
		}
		dot := 0.0
		for i := range col {
			dot += c.Array[i] * col[i]
		}
		require.InDeltaf(t, dotExpected(j), dot, 1e-6, "column %d", j)
	}
}

// dotExpected recovers the original c vector entries used to build the
// Btran RHS in TestEngine_Btran_DualRoundTrip, for comparison against x.B.
func dotExpected(j int) float64 {
	want := []float64{1, 0, 0, 2, 0, -1}
	return want[j]
}

func TestEngine_RankDeficiency_SingularBasis(t *testing.T) {
	b, err := fixtures.SingularBasis(4)
	require.NoError(t, err)
	a := basisAMatrix(t, b)

	e := invert.New(nil)
	require.NoError(t, e.Setup(a, identityBasicIndex(b.N)))
	require.NoError(t, e.Build(context.Background()))
	require.Greater(t, e.RankDeficiency(), 0)
	require.NotEmpty(t, e.VarWithNoPivot())
}

func TestEngine_Update_ThenFtran(t *testing.T) {
	b, err := fixtures.RandomBasis(5, 0.4, fixtures.WithSeed(3), fixtures.WithDiagonalBias(8))
	require.NoError(t, err)
	a := basisAMatrix(t, b)

	e := invert.New(nil)
	require.NoError(t, e.Setup(a, identityBasicIndex(b.N)))
	require.NoError(t, e.Build(context.Background()))

	// Ftran the (unchanged) column that sits at basis position 0 after
	// Build; replacing that position with itself should be a no-op
	// algebraically and must not corrupt subsequent solves.
	enteringOriginalCol := e.BasicIndex()[0]
	aq := invert.NewHVector(b.N)
	lo, hi := b.Start[enteringOriginalCol], b.Start[enteringOriginalCol+1]
	dense := make([]float64, b.N)
	for t := lo; t < hi; t++ {
		dense[b.Index[t]] = b.Value[t]
	}
	aq.CopyFrom(dense)
	require.NoError(t, e.Ftran(aq, 0))

	ep := invert.NewHVector(b.N)
	epDense := make([]float64, b.N)
	epDense[0] = 1
	ep.CopyFrom(epDense)
	require.NoError(t, e.Btran(ep, 0))

	_, err = e.Update(0, enteringOriginalCol, aq, ep)
	require.NoError(t, err)
	require.Equal(t, "updated", e.State())

	rhs := invert.NewHVector(b.N)
	rhs.CopyFrom([]float64{1, 1, 1, 1, 1})
	require.NoError(t, e.Ftran(rhs, 1.1))

	dense2 := denseFromBasis(t, b, e.BasicIndex())
	reconstructed, err := dense2.MulVec(rhs.Array)
	require.NoError(t, err)
	for i := 0; i < b.N; i++ {
		require.InDelta(t, 1.0, reconstructed[i], 1e-6)
	}
}

func TestEngine_Rebuild_MatchesBuild(t *testing.T) {
	b, err := fixtures.RandomBasis(6, 0.3, fixtures.WithSeed(99), fixtures.WithDiagonalBias(5))
	require.NoError(t, err)
	a := basisAMatrix(t, b)

	e := invert.New(nil)
	require.NoError(t, e.Setup(a, identityBasicIndex(b.N)))
	require.NoError(t, e.Build(context.Background()))

	rhs := invert.NewHVector(b.N)
	rhs.CopyFrom([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, e.Ftran(rhs, 0))
	before := append([]float64(nil), rhs.Array...)

	require.NoError(t, e.Rebuild())

	rhs2 := invert.NewHVector(b.N)
	rhs2.CopyFrom([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, e.Ftran(rhs2, 1.1)) // exercise the hyper-sparse path against the dense result above

	for i := range before {
		require.InDelta(t, before[i], rhs2.Array[i], 1e-6)
	}
}

func TestEngine_Setup_RejectsRectangular(t *testing.T) {
	b, err := fixtures.RandomBasis(4, 0.3, fixtures.WithSeed(1))
	require.NoError(t, err)
	a := basisAMatrix(t, b)

	e := invert.New(nil)
	err = e.SetupGeneral(a, []int{0, 1})
	require.ErrorIs(t, err, invert.ErrRectangularBasisUnsupported)
}

func TestOptions_ClampSemantics(t *testing.T) {
	o := invert.NewOptions()
	require.False(t, o.SetPivotThreshold(10))
	require.InDelta(t, 0.5, o.PivotThreshold(), 1e-12)
	require.True(t, o.SetPivotThreshold(0.2))
	require.InDelta(t, 0.2, o.PivotThreshold(), 1e-12)
}

func TestAMatrix_RejectsBadStart(t *testing.T) {
	_, err := invert.NewAMatrix(2, 2, []int{0, 1}, []int{0}, []float64{1})
	require.Error(t, err)
}

func TestHVector_DenseThreshold(t *testing.T) {
	v := invert.NewHVector(4)
	v.Mark(0, 1)
	require.False(t, v.Dense(0.9))
	require.True(t, math.Abs(v.Array[0]-1) < 1e-12)
}
