package extract

import (
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
	"github.com/dlclark/regexp2"
)

// GradeGroup is one seniority grade and the keywords that signal it.
type GradeGroup struct {
	Level   types.JobLevel
	Pattern *regexp2.Regexp
}

// DefaultGradeGroups returns the grade groups in ascending seniority. Each group joins
// two keyword layers: seniority qualifiers and role nouns, in English and Arabic.
func DefaultGradeGroups() []GradeGroup {
	return []GradeGroup{
		{
			Level: types.JobLevelGraduate,
			Pattern: keywordPattern(
				[]string{`graduates?`, `fresh(?:ers?)?`, `interns?`, `internships?`, `trainees?`, `entry[\s-]level`, `students?`},
				[]string{`خريج`, `خريجين`, `حديثي التخرج`, `حديث التخرج`, `متدرب`, `متدربين`, `تدريب`, `طالب`, `طلاب`},
			),
		},
		{
			Level: types.JobLevelJunior,
			Pattern: keywordPattern(
				[]string{`junior`, `jr`, `assistant`, `associate`},
				[]string{`مبتدئ`, `مبتدئين`, `مساعد`, `مساعدة`},
			),
		},
		{
			Level: types.JobLevelMidLevel,
			Pattern: keywordPattern(
				[]string{`mid[\s-]?level`, `intermediate`, `specialist`, `experienced`},
				[]string{`متوسط`, `أخصائي`, `اخصائي`, `أخصائية`, `اخصائية`},
			),
		},
		{
			Level: types.JobLevelSenior,
			Pattern: keywordPattern(
				[]string{`senior`, `sr`, `lead`, `principal`, `expert`},
				[]string{`أول`, `اول`, `خبير`, `كبير`},
			),
		},
		{
			Level: types.JobLevelManagement,
			Pattern: keywordPattern(
				[]string{`managers?`, `supervisors?`, `team[\s-]lead(?:er)?`, `coordinator`},
				[]string{`مدير`, `مديرة`, `مشرف`, `مشرفة`, `قائد فريق`},
			),
		},
		{
			Level: types.JobLevelSeniorManagement,
			Pattern: keywordPattern(
				[]string{`directors?`, `head of`, `general manager`, `gm`, `vice president`, `vp`},
				[]string{`مدير عام`, `مدير إدارة`, `مدير ادارة`, `رئيس قسم`, `نائب الرئيس`},
			),
		},
		{
			Level: types.JobLevelCSuite,
			Pattern: keywordPattern(
				[]string{`ceo`, `cfo`, `cto`, `coo`, `cmo`, `cio`, `chief`, `(?<!vice )president`},
				[]string{`الرئيس التنفيذي`, `رئيس تنفيذي`, `رئيس مجلس`},
			),
		},
	}
}

// Grade scans text with every group in ascending seniority. Each matching group overwrites
// the level, so the most senior match wins. Graduate forces the Internship type and the
// management grades force the Management type.
func (e *Extractor) Grade(text string, level types.JobLevel, jobType types.JobType) (types.JobLevel, types.JobType) {
	for _, g := range e.grades {
		if !matches(g.Pattern, text) {
			continue
		}
		level = g.Level
		if t, ok := g.Level.ImpliedJobType(); ok {
			jobType = t
		}
	}
	return level, jobType
}
