package dates

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhrase(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Phrase
	}{
		{"english today", "Today", Phrase{Kind: KindExact, Days: 0}},
		{"arabic today", " اليوم ", Phrase{Kind: KindExact, Days: 0}},
		{"english yesterday", "yesterday", Phrase{Kind: KindExact, Days: 1}},
		{"arabic yesterday", "أمس", Phrase{Kind: KindExact, Days: 1}},
		{"arabic two days", "منذ يومين", Phrase{Kind: KindExact, Days: 2}},
		{"days ago", "5 days ago", Phrase{Kind: KindExact, Days: 5}},
		{"arabic days ago", "منذ ٣ أيام", Phrase{Kind: KindExact, Days: 3}},
		{"lower bound english", "30+ days ago", Phrase{Kind: KindLowerBound, Days: 30}},
		{"lower bound arabic", "منذ 30+ يوم", Phrase{Kind: KindLowerBound, Days: 30}},
		{"empty", "", Phrase{Kind: KindInvalid}},
		{"garbage", "last spring", Phrase{Kind: KindInvalid}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePhrase(tt.text))
		})
	}
}

func TestDistribution_ConservesTotal(t *testing.T) {
	for _, numDays := range []int{1, 2, 3, 7, 30, 120, 200} {
		for _, total := range []int{0, 1, 5, 57, 500, 3000} {
			t.Run(fmt.Sprintf("days=%d/total=%d", numDays, total), func(t *testing.T) {
				counts := Distribution(total, numDays, DefaultSeed, DefaultJitter)
				require.Len(t, counts, numDays)
				sum := 0
				for _, c := range counts {
					assert.GreaterOrEqual(t, c, 0)
					sum += c
				}
				assert.Equal(t, total, sum)
			})
		}
	}
}

func TestDistribution_Deterministic(t *testing.T) {
	a := Distribution(1000, 120, 7, DefaultJitter)
	b := Distribution(1000, 120, 7, DefaultJitter)
	assert.Equal(t, a, b)
}

func TestDistribution_DecaysWithoutJitter(t *testing.T) {
	counts := Distribution(450, 10, DefaultSeed, 0)
	// weights 9..0 sum to 45, so each weight unit is worth 10 postings
	assert.Equal(t, []int{90, 80, 70, 60, 50, 40, 30, 20, 10, 0}, counts)
}

func TestExpand(t *testing.T) {
	assert.Equal(t, []int{0, 0, 1, 3}, Expand([]int{2, 1, 0, 1}))
	assert.Empty(t, Expand([]int{0, 0}))
}

func TestReconstruct(t *testing.T) {
	ref := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	r := &Reconstructor{ReferenceDate: ref, NumDays: 5, Seed: DefaultSeed, Jitter: 0}

	texts := []string{"اليوم", "garbage", "yesterday", "30+ days ago", "", "15+ days ago"}
	res := r.Reconstruct(texts)

	assert.Equal(t, []int{0, 2, 3, 5}, res.Kept)
	assert.Equal(t, []int{1, 4}, res.Dropped)
	require.Len(t, res.Dates, 4)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, day, res.Dates[0])
	assert.Equal(t, day.AddDate(0, 0, -1), res.Dates[1])

	// two lower-bound rows over five days without jitter: weights 4,3,2,1,0 give
	// expected 0.8,0.6,0.4,0.2,0 which round to 1,1,0,0,0
	assert.Equal(t, []int{1, 1, 0, 0, 0}, res.Distribution)
	// the 15+ row sorts first and takes offset 0, the 30+ row takes offset 1
	assert.Equal(t, day.AddDate(0, 0, -31), res.Dates[2])
	assert.Equal(t, day.AddDate(0, 0, -15), res.Dates[3])
}

func TestReconstruct_Deterministic(t *testing.T) {
	texts := make([]string, 0, 300)
	for i := 0; i < 300; i++ {
		texts = append(texts, fmt.Sprintf("%d+ days ago", 30+i%3))
	}
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := (&Reconstructor{ReferenceDate: ref, NumDays: 60, Seed: 9, Jitter: DefaultJitter}).Reconstruct(texts)
	b := (&Reconstructor{ReferenceDate: ref, NumDays: 60, Seed: 9, Jitter: DefaultJitter}).Reconstruct(texts)
	assert.Equal(t, a.Dates, b.Dates)
	assert.Len(t, a.Dates, 300)
}
