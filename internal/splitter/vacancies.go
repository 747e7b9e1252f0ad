package splitter

import (
	"strconv"
	"strings"
)

// DefaultVacancies is used when a posting does not state its number of vacancies.
const DefaultVacancies = 1

// vacanciesIndex is the position of the count in "عدد الوظائف الشاغرة : 3" style text.
const vacanciesIndex = 3

var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// NormalizeDigits converts Arabic-Indic digits to ASCII digits.
func NormalizeDigits(s string) string {
	return arabicDigits.Replace(s)
}

// Vacancies reads the space separated token at position 3 as the vacancy count. Missing or
// non-positive counts yield DefaultVacancies.
func Vacancies(value string) int {
	token := Part(NormalizeDigits(value), vacanciesIndex, Options{Sep: " ", Fill: strconv.Itoa(DefaultVacancies)})
	n, err := strconv.Atoi(strings.Trim(token, ":."))
	if err != nil || n < 1 {
		return DefaultVacancies
	}
	return n
}
