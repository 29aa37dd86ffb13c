package utils

import (
	"fmt"
	"math"
)

// CosineSimilarity calculates the cosine similarity between two feature
// vectors. Returns 0 when either vector has zero magnitude.
func CosineSimilarity(vec1, vec2 []float32) (float32, error) {
	if len(vec1) == 0 || len(vec2) == 0 {
		return 0, fmt.Errorf("vectors cannot be empty")
	}
	if len(vec1) != len(vec2) {
		return 0, fmt.Errorf("vectors must have the same dimension: %d != %d", len(vec1), len(vec2))
	}

	var dot float32
	for i := range vec1 {
		dot += vec1[i] * vec2[i]
	}

	mag1 := magnitude(vec1)
	mag2 := magnitude(vec2)
	if mag1 == 0 || mag2 == 0 {
		return 0, nil
	}

	return dot / (mag1 * mag2), nil
}

// L2Normalize scales vec to unit length in place and returns it.
// A zero vector is returned unchanged.
func L2Normalize(vec []float32) []float32 {
	mag := magnitude(vec)
	if mag == 0 {
		return vec
	}
	for i := range vec {
		vec[i] /= mag
	}
	return vec
}

// magnitude calculates the L2 norm of a vector.
func magnitude(vec []float32) float32 {
	var sumOfSquares float32
	for _, val := range vec {
		sumOfSquares += val * val
	}
	return float32(math.Sqrt(float64(sumOfSquares)))
}
