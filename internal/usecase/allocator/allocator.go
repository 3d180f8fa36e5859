package allocator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/progami/settleflow/internal/domain"
)

// Weight pairs an allocation key with its positive integer weight.
// Input order is significant: rounding ties are broken by it.
type Weight struct {
	Key   string
	Units int64
}

// Split divides an integer total across weighted keys with zero rounding loss
// Returns a map of key to allocated minor units
// Logic:
//  1. Work on the absolute value of the total
//  2. Give each key the floor of |total| * units / totalUnits
//  3. Hand the leftover cents to the largest fractional remainders,
//     ties broken by input order
//  4. Re-apply the total's sign so every output matches it
//
// Safety: Ensures the outputs sum exactly to the total (no cent lost or gained)
func Split(total domain.Cents, weights []Weight) (map[string]domain.Cents, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: empty weight list", domain.ErrNoWeights)
	}

	var totalUnits int64
	for _, w := range weights {
		if w.Units < 0 {
			return nil, errors.New("weight units cannot be negative")
		}
		totalUnits += w.Units
	}
	// An all-zero weight vector would mask missing reference data; refuse it
	// rather than produce a silent all-zero split.
	if totalUnits == 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", domain.ErrNoWeights)
	}

	abs := int64(total)
	negative := abs < 0
	if negative {
		abs = -abs
	}

	type share struct {
		key       string
		base      int64
		remainder int64
	}

	shares := make([]share, 0, len(weights))
	var allocated int64
	for _, w := range weights {
		base := abs * w.Units / totalUnits
		shares = append(shares, share{
			key:       w.Key,
			base:      base,
			remainder: abs * w.Units % totalUnits,
		})
		allocated += base
	}

	// Distribute the residual cents to the largest fractional remainders.
	// The stable sort preserves input order for equal remainders.
	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return shares[order[i]].remainder > shares[order[j]].remainder
	})
	leftover := abs - allocated
	for i := int64(0); i < leftover; i++ {
		shares[order[i]].base++
	}

	allocation := make(map[string]domain.Cents, len(shares))
	var totalAllocated domain.Cents
	for _, sh := range shares {
		if _, exists := allocation[sh.key]; exists {
			return nil, errors.New("duplicate allocation key " + sh.key)
		}
		value := domain.Cents(sh.base)
		if negative {
			value = -value
		}
		allocation[sh.key] = value
		totalAllocated += value
	}

	// Safety check: Ensure the allocation equals the input total exactly
	if totalAllocated != total {
		return nil, errors.New("total allocation does not equal total amount")
	}

	return allocation, nil
}
