package types

import "strings"

// JobType is the employment type of a posting.
type JobType string

// Job types as they appear in the clean tables.
const (
	JobTypeFullTime   JobType = "Full Time"
	JobTypePartTime   JobType = "Part Time"
	JobTypeInternship JobType = "Internship"
	JobTypeContract   JobType = "Contract"
	JobTypeTemporary  JobType = "Temporary"
	JobTypeManagement JobType = "Management"
	JobTypeUnknown    JobType = "Unknown"
)

// JobLevel is the seniority grade of a posting.
type JobLevel string

// Job levels in ascending seniority, followed by the no-preference sentinel.
const (
	JobLevelGraduate         JobLevel = "Graduate"
	JobLevelJunior           JobLevel = "Junior"
	JobLevelMidLevel         JobLevel = "Mid Level"
	JobLevelSenior           JobLevel = "Senior"
	JobLevelManagement       JobLevel = "Management"
	JobLevelSeniorManagement JobLevel = "Senior Management"
	JobLevelCSuite           JobLevel = "C-Suite"
	JobLevelNoPreference     JobLevel = "No Preference"
)

// JobLevels returns the graded levels in ascending seniority.
func JobLevels() []JobLevel {
	return []JobLevel{
		JobLevelGraduate,
		JobLevelJunior,
		JobLevelMidLevel,
		JobLevelSenior,
		JobLevelManagement,
		JobLevelSeniorManagement,
		JobLevelCSuite,
	}
}

// Rank returns the position of the level in ascending seniority, or -1 for
// JobLevelNoPreference and unknown values.
func (l JobLevel) Rank() int {
	for i, level := range JobLevels() {
		if level == l {
			return i
		}
	}
	return -1
}

// ImpliedJobType returns the job type a level forces when it is inferred from text:
// graduates are interns and the management grades are management positions.
func (l JobLevel) ImpliedJobType() (JobType, bool) {
	switch l {
	case JobLevelGraduate:
		return JobTypeInternship, true
	case JobLevelManagement, JobLevelSeniorManagement, JobLevelCSuite:
		return JobTypeManagement, true
	default:
		return "", false
	}
}

// Gender is the gender preference stated by a posting.
type Gender string

// Gender preferences.
const (
	GenderMale         Gender = "Male"
	GenderFemale       Gender = "Female"
	GenderNoPreference Gender = "No Preference"
)

// RemoteMode is the work location mode of a posting.
type RemoteMode string

// Remote modes.
const (
	RemoteOnSite RemoteMode = "On-site"
	RemoteRemote RemoteMode = "Remote"
	RemoteHybrid RemoteMode = "Hybrid"
)

// ParseJobType maps a stored label back to a JobType, defaulting to JobTypeUnknown.
func ParseJobType(s string) JobType {
	for _, t := range []JobType{JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeContract, JobTypeTemporary, JobTypeManagement} {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t
		}
	}
	return JobTypeUnknown
}

// ParseJobLevel maps a stored label back to a JobLevel, defaulting to JobLevelNoPreference.
func ParseJobLevel(s string) JobLevel {
	for _, l := range JobLevels() {
		if strings.EqualFold(string(l), strings.TrimSpace(s)) {
			return l
		}
	}
	return JobLevelNoPreference
}

// ParseGender maps a stored label back to a Gender, defaulting to GenderNoPreference.
func ParseGender(s string) Gender {
	switch {
	case strings.EqualFold(s, string(GenderMale)):
		return GenderMale
	case strings.EqualFold(s, string(GenderFemale)):
		return GenderFemale
	default:
		return GenderNoPreference
	}
}

// ParseRemoteMode maps a stored label back to a RemoteMode, defaulting to RemoteOnSite.
func ParseRemoteMode(s string) RemoteMode {
	switch {
	case strings.EqualFold(s, string(RemoteRemote)):
		return RemoteRemote
	case strings.EqualFold(s, string(RemoteHybrid)):
		return RemoteHybrid
	default:
		return RemoteOnSite
	}
}
