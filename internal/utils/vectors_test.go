package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors score 1", func(t *testing.T) {
		v := []float32{0.5, 0.25, 0.8}
		sim, err := CosineSimilarity(v, v)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, sim, 1e-6)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		sim, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, sim, 1e-6)
	})

	t.Run("dimension mismatch is an error", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
		assert.Error(t, err)
	})

	t.Run("empty vectors are an error", func(t *testing.T) {
		_, err := CosineSimilarity(nil, []float32{1})
		assert.Error(t, err)
	})

	t.Run("zero magnitude scores 0 without error", func(t *testing.T) {
		sim, err := CosineSimilarity([]float32{0, 0}, []float32{1, 1})
		require.NoError(t, err)
		assert.Equal(t, float32(0), sim)
	})
}

func TestL2Normalize(t *testing.T) {
	t.Run("scales to unit length", func(t *testing.T) {
		v := L2Normalize([]float32{3, 4})
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)
	})

	t.Run("zero vector unchanged", func(t *testing.T) {
		v := L2Normalize([]float32{0, 0})
		assert.Equal(t, []float32{0, 0}, v)
	})
}
