package ml

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ArgMax returns the index of the largest probability. Ties go to the lowest index.
func ArgMax(probs []float64) int {
	if len(probs) == 0 {
		return -1
	}
	return floats.MaxIdx(probs)
}

// Normalize scales values in place so they sum to one.
func Normalize(values []float64) error {
	sum := floats.Sum(values)
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return errors.New("cannot normalize non-positive distribution")
	}
	floats.Scale(1/sum, values)
	return nil
}

// Softmax converts raw scores into a probability distribution in place.
func Softmax(scores []float64) {
	if len(scores) == 0 {
		return
	}
	// shift by the max so exp never overflows
	floats.AddConst(-floats.Max(scores), scores)
	for i, s := range scores {
		scores[i] = math.Exp(s)
	}
	floats.Scale(1/floats.Sum(scores), scores)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
