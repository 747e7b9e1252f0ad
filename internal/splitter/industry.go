package splitter

import "strings"

// employeeMarkers identify a company-size clause ("50-100 موظف", "11-50 employees").
var employeeMarkers = []string{"موظف", "employee"}

// Industry is the decomposition of the company industry field.
type Industry struct {
	Industry    string
	CompanySize string
}

// IsCompanySize reports whether a clause describes a head count rather than an industry.
func IsCompanySize(s string) bool {
	lower := strings.ToLower(s)
	for _, m := range employeeMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// SplitIndustry reads the industry from the last clause and the company size from the one
// before it. When the industry slot holds a head count and the size slot does not, the two
// are swapped.
func SplitIndustry(value string) Industry {
	parts := Split(value, []Field{
		{Index: 0, Name: "industry_"},
		{Index: 1, Name: "company_size"},
	}, Options{Sep: MiddleDot, Reverse: true})

	ind := Industry{Industry: parts["industry_"], CompanySize: parts["company_size"]}
	if IsCompanySize(ind.Industry) && !IsCompanySize(ind.CompanySize) {
		ind.Industry, ind.CompanySize = ind.CompanySize, ind.Industry
	}
	return ind
}
