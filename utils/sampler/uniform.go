// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sampler draws small, uniformly-random subsets of a population
// without replacement.
package sampler

import (
	"errors"
	"math/rand"
)

// ErrOutOfRange is returned when more samples are requested than the
// population contains.
var ErrOutOfRange = errors.New("sampler: k exceeds population size")

// UniformWithoutReplacement draws k distinct indices from [0, n) uniformly
// at random, using a partial Fisher-Yates shuffle that stops after k swaps.
func UniformWithoutReplacement(rng *rand.Rand, n, k int) ([]int, error) {
	if k > n {
		return nil, ErrOutOfRange
	}
	if k == 0 {
		return nil, nil
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	drawn := make([]int, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		indices[i], indices[j] = indices[j], indices[i]
		drawn[i] = indices[i]
	}
	return drawn, nil
}
