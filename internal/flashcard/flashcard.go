// Package flashcard draws words for review, favouring low-confidence words.
package flashcard

import (
	"errors"
	"fmt"
)

var (
	// ErrArithmetic is wrapped by every selection failure.
	ErrArithmetic     = errors.New("weighted choice failed")
	ErrNegativeWeight = fmt.Errorf("%w: negative weight", ErrArithmetic)
	ErrNoSelection    = fmt.Errorf("%w: no item selected", ErrArithmetic)
)

// Weighted pairs an item with its selection weight.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// RandomChoiceByWeight picks one item with probability proportional to its
// weight. rnd must return a value in [0, 1).
func RandomChoiceByWeight[T any](items []Weighted[T], rnd func() float64) (T, error) {
	var zero T
	total := 0.0
	for _, it := range items {
		if it.Weight < 0 {
			return zero, ErrNegativeWeight
		}
		total += it.Weight
	}

	draw := rnd() * total
	cumulative := 0.0
	for _, it := range items {
		cumulative += it.Weight
		if cumulative > draw {
			return it.Item, nil
		}
	}
	return zero, ErrNoSelection
}

// ConfidenceWeights maps confidence scores to weights so that the highest
// score gets weight 1 and every step below it adds 1.
func ConfidenceWeights(confidences []int) []float64 {
	if len(confidences) == 0 {
		return nil
	}
	highest := confidences[0]
	for _, c := range confidences[1:] {
		if c > highest {
			highest = c
		}
	}
	weights := make([]float64, len(confidences))
	for i, c := range confidences {
		weights[i] = float64(highest) - float64(c) + 1
	}
	return weights
}

// Draw picks one item weighted by ConfidenceWeights over confidence(item).
func Draw[T any](items []T, confidence func(T) int, rnd func() float64) (T, error) {
	scores := make([]int, len(items))
	for i, it := range items {
		scores[i] = confidence(it)
	}
	weights := ConfidenceWeights(scores)
	weighted := make([]Weighted[T], len(items))
	for i, it := range items {
		weighted[i] = Weighted[T]{Item: it, Weight: weights[i]}
	}
	return RandomChoiceByWeight(weighted, rnd)
}
