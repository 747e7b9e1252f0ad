package extract

import (
	"regexp"
	"strconv"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/splitter"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

var digitRun = regexp.MustCompile(`\d+`)

// ExperienceYears reads an experience range from free text. The first digit run is the
// minimum and the second the maximum; further digits are ignored. The pair is returned as
// parsed, even when the minimum exceeds the maximum.
func ExperienceYears(text string) (min, max types.Years) {
	runs := digitRun.FindAllString(splitter.NormalizeDigits(text), 2)
	min, max = types.UnknownYears(), types.UnknownYears()
	if len(runs) > 0 {
		min = parseRun(runs[0])
	}
	if len(runs) > 1 {
		max = parseRun(runs[1])
	}
	return min, max
}

func parseRun(s string) types.Years {
	n, err := strconv.Atoi(s)
	if err != nil {
		return types.UnknownYears()
	}
	return types.KnownYears(n)
}
