package extract

import (
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

var (
	malePattern = keywordPattern(
		[]string{`males?`, `men`, `man`, `gentlemen`},
		[]string{`ذكر`, `ذكور`, `رجال`, `شباب`},
	)
	femalePattern = keywordPattern(
		[]string{`females?`, `women`, `woman`, `ladies`, `lady`, `girls?`},
		[]string{`أنثى`, `انثى`, `إناث`, `اناث`, `نساء`, `سيدات`, `فتيات`, `بنات`},
	)
)

// Gender returns the gender preference text states. The female check runs after the male
// check and overwrites it; text with neither keeps current.
func (e *Extractor) Gender(text string, current types.Gender) types.Gender {
	if matches(e.male, text) {
		current = types.GenderMale
	}
	if matches(e.female, text) {
		current = types.GenderFemale
	}
	return current
}
