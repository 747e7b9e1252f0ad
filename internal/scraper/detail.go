package scraper

import (
	"fmt"
	"strings"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
	"github.com/PuerkitoBio/goquery"
)

// detailSelectors maps raw columns to the element holding them on a detail page. The
// first match wins; a missing element leaves the column empty.
var detailSelectors = []struct {
	column   string
	selector string
}{
	{"title", "h1#job_title"},
	{"company_name", "a.t-default.t-bold"},
	{"date", "span#jb-posted-date"},
	{"salary", `div[data-automation-id="id_salary_range"]`},
	{"career_level", `div[data-automation-id="id_type_level_experience"]`},
	{"location", "span.t-mute"},
	{"num_of_vacancies", `div[data-automation-id="id_number_of_vacancies"]`},
	{"industry", `div[data-automation-id="id_company_employees_industry"]`},
	{"skills", "div.card-content.is-spaced.t-break.print-break-before.p20t"},
	{"remote", `div[data-automation-id="id_remote_working"]`},
	{"num_of_exp", `div[data-automation-id="data_عدد_سنوات_الخبرة"]`},
	{"residence_area", `div[data-automation-id="data_منطقة_الإقامة"]`},
	{"nationality", `div[data-automation-id="data_الجنسية"]`},
	{"sex", `div[data-automation-id="data_الجنس"]`},
	{"qualification", `div[data-automation-id="data_الشهادة"]`},
	{"age", `div[data-automation-id="data_العمر"]`},
	{"specialization", `div[data-automation-id="data_التخصص"]`},
	{"experience", `div[data-automation-id="data__المستوى_المهني"]`},
}

// descriptionCard is the card whose first heading introduces the description body.
const descriptionCard = "div.card-content.p20t.is-spaced"

// ParseDetail reads one job detail page.
func ParseDetail(html, link string) (types.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.RawRecord{}, fmt.Errorf("failed to parse detail HTML: %w", err)
	}

	rec := types.RawRecord{Link: link}
	for _, s := range detailSelectors {
		if sel := doc.Find(s.selector).First(); sel.Length() > 0 {
			rec.Set(s.column, strings.TrimSpace(sel.Text()))
		}
	}
	rec.Description = description(doc)
	return rec, nil
}

// description returns the block that follows the first heading of the description card.
func description(doc *goquery.Document) string {
	heading := doc.Find(descriptionCard).First().Find("h2").First()
	if heading.Length() == 0 {
		return ""
	}
	body := heading.NextAllFiltered("div").First()
	if body.Length() == 0 {
		body = heading.Parent().NextAllFiltered("div").First()
	}
	return strings.TrimSpace(body.Text())
}
