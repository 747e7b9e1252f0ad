package extract

import (
	"strings"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

type vocabEntry[T any] struct {
	keywords []string
	value    T
}

func lookup[T any](text string, entries []vocabEntry[T], fallback T) T {
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" {
		return fallback
	}
	for _, e := range entries {
		for _, kw := range e.keywords {
			if strings.Contains(norm, kw) {
				return e.value
			}
		}
	}
	return fallback
}

// Checked in order: the first entry with a keyword contained in the text wins, so
// compound phrases come before the words they contain.
var experienceVocab = []vocabEntry[types.JobLevel]{
	{[]string{"رئيس تنفيذي", "الرئيس التنفيذي", "senior executive", "ceo"}, types.JobLevelCSuite},
	{[]string{"إدارة عليا", "ادارة عليا", "تنفيذي", "executive", "director"}, types.JobLevelSeniorManagement},
	{[]string{"إدارة", "ادارة", "مدير", "management"}, types.JobLevelManagement},
	{[]string{"خبير", "خبرة عالية", "senior", "experienced"}, types.JobLevelSenior},
	{[]string{"متوسط", "mid career", "mid-career", "mid level"}, types.JobLevelMidLevel},
	{[]string{"مبتدئ", "المبتدئين", "entry level", "junior"}, types.JobLevelJunior},
	{[]string{"خريج", "طالب", "تدريب", "graduate", "student", "intern"}, types.JobLevelGraduate},
}

var typeVocab = []vocabEntry[types.JobType]{
	{[]string{"دوام جزئي", "جزئي", "part time", "part-time"}, types.JobTypePartTime},
	{[]string{"دوام كامل", "كامل", "full time", "full-time"}, types.JobTypeFullTime},
	{[]string{"تدريب", "intern"}, types.JobTypeInternship},
	{[]string{"مؤقت", "temporary"}, types.JobTypeTemporary},
	{[]string{"عقد", "contract", "freelance", "عمل حر"}, types.JobTypeContract},
	{[]string{"إدارة", "ادارة", "management"}, types.JobTypeManagement},
}

var sexVocab = []vocabEntry[types.Gender]{
	{[]string{"أنثى", "انثى", "إناث", "female"}, types.GenderFemale},
	{[]string{"ذكر", "ذكور", "male"}, types.GenderMale},
}

var remoteVocab = []vocabEntry[types.RemoteMode]{
	{[]string{"هجين", "مختلط", "hybrid"}, types.RemoteHybrid},
	{[]string{"عن بعد", "عن بُعد", "remote"}, types.RemoteRemote},
	{[]string{"من المقر", "on-site", "onsite"}, types.RemoteOnSite},
}

// TranslateExperience maps the site's career-experience wording to an initial job level.
// Unknown wording, including the no-preference sentinel, is JobLevelNoPreference.
func TranslateExperience(text string) types.JobLevel {
	return lookup(text, experienceVocab, types.JobLevelNoPreference)
}

// TranslateType maps the site's employment-type wording to a JobType.
func TranslateType(text string) types.JobType {
	return lookup(text, typeVocab, types.JobTypeUnknown)
}

// TranslateSex maps the site's gender field to a Gender.
func TranslateSex(text string) types.Gender {
	return lookup(text, sexVocab, types.GenderNoPreference)
}

// TranslateRemote maps the site's work-location field to a RemoteMode.
func TranslateRemote(text string) types.RemoteMode {
	return lookup(text, remoteVocab, types.RemoteOnSite)
}
