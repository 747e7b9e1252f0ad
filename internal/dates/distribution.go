package dates

import (
	"math"
	"math/rand/v2"
)

// DefaultJitter bounds the per-day perturbation of the synthesized counts.
const DefaultJitter = 10

// Distribution synthesizes how many of total "N+" postings fall on each of numDays days
// past their lower bound. Expected counts decay linearly from the first day to zero on
// the last, each is perturbed by a seeded integer in [-jitter, jitter], clamped at zero and
// rounded, and the rounding error is then reconciled so the counts sum to total exactly.
// The same inputs always produce the same counts.
func Distribution(total, numDays int, seed uint64, jitter int) []int {
	if numDays < 1 {
		numDays = 1
	}
	if total < 0 {
		total = 0
	}
	if jitter < 0 {
		jitter = 0
	}

	counts := make([]int, numDays)
	if numDays == 1 {
		counts[0] = total
		return counts
	}

	weightSum := float64(numDays*(numDays-1)) / 2
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	sum := 0
	for i := range counts {
		expected := float64(total) * float64(numDays-1-i) / weightSum
		noise := rng.IntN(2*jitter+1) - jitter
		c := int(math.Round(expected + float64(noise)))
		if c < 0 {
			c = 0
		}
		counts[i] = c
		sum += c
	}

	reconcile(counts, total-sum)
	return counts
}

// reconcile spreads diff over the counts, adding from the earliest (heaviest) day onwards
// and removing only from days that still have postings.
func reconcile(counts []int, diff int) {
	for i := 0; diff > 0; i = (i + 1) % len(counts) {
		counts[i]++
		diff--
	}
	for i := 0; diff < 0; i = (i + 1) % len(counts) {
		if counts[i] > 0 {
			counts[i]--
			diff++
		}
	}
}

// Expand flattens per-day counts into one day offset per posting, in day order.
func Expand(counts []int) []int {
	total := 0
	for _, c := range counts {
		total += c
	}
	offsets := make([]int, 0, total)
	for day, c := range counts {
		for j := 0; j < c; j++ {
			offsets = append(offsets, day)
		}
	}
	return offsets
}
