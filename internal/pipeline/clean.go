package pipeline

import (
	"context"
	"sort"
	"strings"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/dates"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/extract"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/splitter"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/titles"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/translate"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

// row carries one posting through the cleaning stages. The intermediate string fields
// mirror the derived columns of the clean table before they are translated into enums.
type row struct {
	raw types.RawRecord

	jobTypeText   string
	exp           string
	noExp         string
	experience    string
	numOfExpYears string

	// rawTitle is the title before preprocessing, used for the unmatched report.
	rawTitle string
	rec      types.JobRecord
}

func newRows(records []types.RawRecord) []*row {
	rows := make([]*row, len(records))
	for i, r := range records {
		rows[i] = &row{
			raw: r,
			rec: types.JobRecord{
				Title:       r.Title,
				CompanyName: r.CompanyName,
			},
		}
	}
	return rows
}

// present reports whether a field carries a value. The Unknown placeholder counts as
// absent.
func present(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != types.Unknown
}

func fill(s, sentinel string) string {
	if present(s) {
		return s
	}
	return sentinel
}

func splitLocation(rows []*row) {
	for _, r := range rows {
		r.rec.City = splitter.Part(r.raw.Location, 1, splitter.Options{Sep: splitter.MiddleDot, Reverse: true})
	}
}

func splitCareerLevel(rows []*row, opts splitter.CareerLevelOptions) {
	for _, r := range rows {
		cl := splitter.SplitCareerLevel(r.raw.CareerLevel, opts)
		r.jobTypeText, r.exp, r.noExp = cl.Type, cl.Experience, cl.SecondaryExperience
	}
}

// mergeExperience prefers the dedicated detail fields over the career-level clauses.
func mergeExperience(rows []*row) {
	for _, r := range rows {
		r.experience = r.raw.Experience
		if !present(r.experience) {
			r.experience = r.exp
		}
		r.numOfExpYears = r.raw.NumOfExp
		if !present(r.numOfExpYears) {
			r.numOfExpYears = r.noExp
		}
	}
}

func splitIndustry(rows []*row) {
	for _, r := range rows {
		ind := splitter.SplitIndustry(r.raw.Industry)
		r.rec.Industry, r.rec.CompanySize = ind.Industry, ind.CompanySize
	}
}

func parseVacancies(rows []*row) {
	for _, r := range rows {
		r.rec.NumOfVacancies = splitter.Vacancies(r.raw.NumOfVacancies)
	}
}

func fillMissing(rows []*row) {
	for _, r := range rows {
		if strings.TrimSpace(r.raw.Remote) == "" {
			r.raw.Remote = types.OnSiteArabic
		}
		if strings.TrimSpace(r.raw.Sex) == "" {
			r.raw.Sex = types.NoPreferenceArabic
		}
		r.experience = fill(r.experience, types.NoPreferenceArabic)
		r.numOfExpYears = fill(r.numOfExpYears, types.NoPreferenceArabic)
	}
}

// excludeTitles drops rows whose title names a term excluded from the market.
func excludeTitles(rows []*row, terms []string) (kept []*row, excluded int) {
	if len(terms) == 0 {
		return rows, 0
	}
	kept = rows[:0:0]
	for _, r := range rows {
		if mentionsAny(r.raw.Title, terms) {
			excluded++
			continue
		}
		kept = append(kept, r)
	}
	return kept, excluded
}

// mentionsAny matches terms case-insensitively, so "Saudi" and "SAUDI" are caught too.
func mentionsAny(title string, terms []string) bool {
	lower := strings.ToLower(title)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func reconstructDates(rows []*row, rc *dates.Reconstructor) ([]*row, dates.Result) {
	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = r.raw.Date
	}
	res := rc.Reconstruct(texts)

	kept := make([]*row, len(res.Kept))
	for k, i := range res.Kept {
		rows[i].rec.PostingDate = res.Dates[k]
		kept[k] = rows[i]
	}
	return kept, res
}

func markTraining(rows []*row) {
	for _, r := range rows {
		if strings.Contains(r.jobTypeText, types.TrainingArabic) {
			r.experience = types.NewGraduateArabic
		}
	}
}

func translateCategories(rows []*row) {
	for _, r := range rows {
		r.rec.JobLevel = extract.TranslateExperience(r.experience)
		r.rec.JobType = extract.TranslateType(r.jobTypeText)
		r.rec.Gender = extract.TranslateSex(r.raw.Sex)
		r.rec.RemoteMode = extract.TranslateRemote(r.raw.Remote)
	}
}

func extractAttributes(rows []*row, ex *extract.Extractor) {
	for _, r := range rows {
		ex.Apply(&r.rec, extract.Sources{
			Title:       strings.ToLower(r.rec.Title),
			Description: r.raw.Description,
			Skills:      r.raw.Skills,
		})
	}
}

func parseExperienceYears(rows []*row) {
	for _, r := range rows {
		r.rec.MinExperienceYears, r.rec.MaxExperienceYears = extract.ExperienceYears(r.numOfExpYears)
	}
}

// sortByTitleDesc orders rows by lowercased title, descending. The sort is stable so
// equal titles keep their input order.
func sortByTitleDesc(rows []*row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].rec.Title) > strings.ToLower(rows[j].rec.Title)
	})
}

// translateTitles runs the Translation Adapter over the titles. With limit > 0 only the
// first limit titles of the descending order are sent, without language detection.
func translateTitles(ctx context.Context, rows []*row, tr *translate.BestEffort, limit, concurrency int) {
	if tr == nil {
		return
	}
	sortByTitleDesc(rows)
	values := make([]string, len(rows))
	for i, r := range rows {
		values[i] = r.rec.Title
	}
	translate.Column(ctx, tr, values, limit, concurrency)
	for i, r := range rows {
		r.rec.Title = values[i]
	}
}

func preprocessTitles(rows []*row) {
	for _, r := range rows {
		r.rawTitle = r.rec.Title
		r.rec.Title = titles.Preprocess(r.rec.Title)
	}
	sortByTitleDesc(rows)
}

// normalizeTitles applies the rule pass and returns the distinct preprocessed titles no
// rule changed.
func normalizeTitles(rows []*row, engine *titles.Engine) []string {
	before := make([]string, len(rows))
	after := make([]string, len(rows))
	for i, r := range rows {
		before[i] = r.rec.Title
		after[i] = engine.Apply(r.rec.Title)
		r.rec.Title = titles.TitleCase(after[i])
	}
	return titles.Unmatched(before, after)
}

func collect(rows []*row) []types.JobRecord {
	out := make([]types.JobRecord, len(rows))
	for i, r := range rows {
		out[i] = r.rec
	}
	return out
}
