package types

import "time"

// Arabic sentinels the source site uses, and the cleaning stages fill in, for absent fields.
const (
	// OnSiteArabic ("at the office") fills a missing remote field.
	OnSiteArabic = "من المقر"
	// NoPreferenceArabic ("no preference") fills missing sex, experience and years fields.
	NoPreferenceArabic = "لا تفضيل"
	// NewGraduateArabic ("new graduate") replaces the career level of training positions.
	NewGraduateArabic = "خريج جديد"
	// TrainingArabic ("training") marks a training job type.
	TrainingArabic = "تدريب"
)

// RawRecord is one scraped posting before cleaning. Empty strings mean the element was
// missing on the page.
type RawRecord struct {
	Link           string `json:"link"`
	Title          string `json:"title"`
	CompanyName    string `json:"company_name"`
	Date           string `json:"date"`
	Salary         string `json:"salary"`
	CareerLevel    string `json:"career_level"`
	Location       string `json:"location"`
	NumOfVacancies string `json:"num_of_vacancies"`
	Industry       string `json:"industry"`
	Description    string `json:"description"`
	Skills         string `json:"skills"`
	Remote         string `json:"remote"`
	NumOfExp       string `json:"num_of_exp"`
	ResidenceArea  string `json:"residence_area"`
	Nationality    string `json:"nationality"`
	Sex            string `json:"sex"`
	Qualification  string `json:"qualification"`
	Age            string `json:"age"`
	Specialization string `json:"specialization"`
	Experience     string `json:"experience"`
}

// RawColumns is the CSV header order of a raw record, matching the scraper output.
var RawColumns = []string{
	"link", "title", "company_name", "date", "salary", "career_level", "location",
	"num_of_vacancies", "industry", "description", "skills", "remote", "num_of_exp",
	"residence_area", "nationality", "sex", "qualification", "age", "specialization",
	"experience",
}

// Fields returns the record values in RawColumns order.
func (r *RawRecord) Fields() []string {
	return []string{
		r.Link, r.Title, r.CompanyName, r.Date, r.Salary, r.CareerLevel, r.Location,
		r.NumOfVacancies, r.Industry, r.Description, r.Skills, r.Remote, r.NumOfExp,
		r.ResidenceArea, r.Nationality, r.Sex, r.Qualification, r.Age, r.Specialization,
		r.Experience,
	}
}

// Set assigns a field by its RawColumns name. Unknown columns are ignored.
func (r *RawRecord) Set(column, value string) {
	switch column {
	case "link":
		r.Link = value
	case "title":
		r.Title = value
	case "company_name":
		r.CompanyName = value
	case "date":
		r.Date = value
	case "salary":
		r.Salary = value
	case "career_level":
		r.CareerLevel = value
	case "location":
		r.Location = value
	case "num_of_vacancies":
		r.NumOfVacancies = value
	case "industry":
		r.Industry = value
	case "description":
		r.Description = value
	case "skills":
		r.Skills = value
	case "remote":
		r.Remote = value
	case "num_of_exp":
		r.NumOfExp = value
	case "residence_area":
		r.ResidenceArea = value
	case "nationality":
		r.Nationality = value
	case "sex":
		r.Sex = value
	case "qualification":
		r.Qualification = value
	case "age":
		r.Age = value
	case "specialization":
		r.Specialization = value
	case "experience":
		r.Experience = value
	}
}

// JobRecord is one posting after cleaning, in the shape of the persisted clean tables.
type JobRecord struct {
	Title              string     `json:"title"`
	CompanyName        string     `json:"company_name"`
	City               string     `json:"city"`
	Industry           string     `json:"industry_"`
	CompanySize        string     `json:"company_size"`
	PostingDate        time.Time  `json:"date"`
	NumOfVacancies     int        `json:"num_of_vacancies"`
	JobType            JobType    `json:"type"`
	JobLevel           JobLevel   `json:"job_level"`
	Gender             Gender     `json:"gender"`
	RemoteMode         RemoteMode `json:"remote"`
	MinExperienceYears Years      `json:"min_num_of_years"`
	MaxExperienceYears Years      `json:"max_num_of_years"`
}

// CleanColumns is the column order of the persisted clean tables.
var CleanColumns = []string{
	"title", "company_name", "city", "industry_", "company_size", "date",
	"num_of_vacancies", "type", "job_level", "gender", "remote",
	"min_num_of_years", "max_num_of_years",
}

// DateLayout is the layout of persisted posting dates.
const DateLayout = "2006-01-02"
