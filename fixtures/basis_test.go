package fixtures_test

import (
	"testing"

	"github.com/hsplex/luinvert/fixtures"
	"github.com/stretchr/testify/require"
)

func TestRandomBasis_Shape(t *testing.T) {
	b, err := fixtures.RandomBasis(5, 0.3, fixtures.WithSeed(42))
	require.NoError(t, err)
	require.Equal(t, 5, b.N)
	require.Len(t, b.Start, 6)
	require.Equal(t, len(b.Index), b.Start[5])
	require.Equal(t, len(b.Value), len(b.Index))
}

func TestRandomBasis_Deterministic(t *testing.T) {
	a, err := fixtures.RandomBasis(6, 0.4, fixtures.WithSeed(7))
	require.NoError(t, err)
	b, err := fixtures.RandomBasis(6, 0.4, fixtures.WithSeed(7))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRandomBasis_Errors(t *testing.T) {
	_, err := fixtures.RandomBasis(0, 0.1)
	require.ErrorIs(t, err, fixtures.ErrTooSmall)

	_, err = fixtures.RandomBasis(3, 1.5)
	require.ErrorIs(t, err, fixtures.ErrInvalidProbability)
}

func TestSingularBasis(t *testing.T) {
	b, err := fixtures.SingularBasis(3)
	require.NoError(t, err)
	// columns 0 and 1 both point at row 0
	require.Equal(t, 0, b.Index[b.Start[0]])
	require.Equal(t, 0, b.Index[b.Start[1]])
}
