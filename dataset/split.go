// SPDX-License-Identifier: MIT
// Package dataset — deterministic index splitting.

package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Split shuffles [0,n) with the seeded generator and cuts the permutation
// into train/valid/test index slices. Counts are rounded from the fractions;
// the test portion takes whatever remains. Each slice comes back sorted
// ascending so downstream iteration order is stable.
// Errors: ErrNoGraphs for n <= 0, ErrBadFraction for out-of-range fractions.
// Complexity: O(n log n).
func Split(n int, trainFrac, validFrac float64, seed int64) (train, valid, test []int, err error) {
	if n <= 0 {
		return nil, nil, nil, fmt.Errorf("dataset: split over %d items: %w", n, ErrNoGraphs)
	}
	if err = checkFractions(trainFrac, validFrac); err != nil {
		return nil, nil, nil, err
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	nTrain := int(math.Round(trainFrac * float64(n)))
	nValid := int(math.Round(validFrac * float64(n)))
	if nTrain+nValid > n {
		nValid = n - nTrain
	}

	train = append([]int(nil), perm[:nTrain]...)
	valid = append([]int(nil), perm[nTrain:nTrain+nValid]...)
	test = append([]int(nil), perm[nTrain+nValid:]...)
	sort.Ints(train)
	sort.Ints(valid)
	sort.Ints(test)

	return train, valid, test, nil
}
