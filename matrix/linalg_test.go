package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/manifold/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul_Succeeds(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{58, 64}, {139, 154}}), got, 0)

	// The generic path must agree with the fast path.
	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	requireClose(t, got, slow, 0)
}

func TestMul_DimensionMismatch(t *testing.T) {
	a, _ := matrix.NewDense(2, 3)
	b, _ := matrix.NewDense(2, 3)
	_, err := matrix.Mul(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mul(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTranspose(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	got, err := matrix.Transpose(a)
	require.NoError(t, err)
	requireClose(t, mustRows(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}), got, 0)
}

func TestMatVecAndMatTVec(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	y, err := matrix.MatVec(a, []float64{1, 0, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -2}, y)

	z, err := matrix.MatTVec(a, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -3, -3}, z)

	_, err = matrix.MatVec(a, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatTVec(a, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestGram_IsSymmetricProduct(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	g, err := matrix.Gram(a)
	require.NoError(t, err)

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	want, err := matrix.Mul(a, at)
	require.NoError(t, err)
	requireClose(t, want, g, 1e-12)
	require.NoError(t, matrix.ValidateSymmetric(g, 0))
}

func TestEigen_Symmetric2x2(t *testing.T) {
	a := mustRows(t, [][]float64{{2, 1}, {1, 2}})
	vals, vecs, err := matrix.Eigen(a, 1e-12, 100)
	require.NoError(t, err)

	sort.Float64s(vals)
	assert.InDelta(t, 1.0, vals[0], 1e-10)
	assert.InDelta(t, 3.0, vals[1], 1e-10)

	// Columns of Q are unit eigenvectors: A·q = λ·q.
	for j := 0; j < 2; j++ {
		q, err := vecs.Col(j)
		require.NoError(t, err)
		aq, err := matrix.MatVec(a, q)
		require.NoError(t, err)
		lambda := aq[0]*q[0] + aq[1]*q[1]
		assert.InDelta(t, 1.0, math.Hypot(q[0], q[1]), 1e-10)
		assert.InDelta(t, lambda*q[0], aq[0], 1e-10)
		assert.InDelta(t, lambda*q[1], aq[1], 1e-10)
	}
}

func TestEigen_RejectsAsymmetric(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {0, 1}})
	_, _, err := matrix.Eigen(a, 1e-9, 10)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	b := mustRows(t, [][]float64{{1, 2, 3}})
	_, _, err = matrix.Eigen(b, 1e-9, 10)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestEigen_IterationCap(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {2, 4, 5}, {3, 5, 6}})
	_, _, err := matrix.Eigen(a, 1e-14, 1)
	require.ErrorIs(t, err, matrix.ErrEigenFailed)
}
