// Package steps defines the cleaning stages, their categories and the dependencies that
// fix their order.
package steps

import (
	"fmt"
)

// Stage categories.
const (
	CategorySplit   = "split"
	CategoryFilter  = "filter"
	CategoryDates   = "dates"
	CategoryExtract = "extract"
	CategoryTitles  = "titles"
	CategoryPersist = "persist"
)

// Stage names in execution order.
const (
	SplitLocation        = "split_location"
	SplitCareerLevel     = "split_career_level"
	MergeExperience      = "merge_experience"
	SplitIndustry        = "split_industry"
	ParseVacancies       = "parse_vacancies"
	FillMissing          = "fill_missing"
	ExcludeTitles        = "exclude_titles"
	ReconstructDates     = "reconstruct_dates"
	MarkTraining         = "mark_training"
	TranslateCategories  = "translate_categories"
	ExtractAttributes    = "extract_attributes"
	ParseExperienceYears = "parse_experience_years"
	TranslateTitles      = "translate_titles"
	PreprocessTitles     = "preprocess_titles"
	NormalizeTitles      = "normalize_titles"
	Persist              = "persist"
)

// StageDefinition defines metadata for a cleaning stage
type StageDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// Order is the fixed execution order of the cleaning stages.
var Order = []string{
	SplitLocation,
	SplitCareerLevel,
	MergeExperience,
	SplitIndustry,
	ParseVacancies,
	FillMissing,
	ExcludeTitles,
	ReconstructDates,
	MarkTraining,
	TranslateCategories,
	ExtractAttributes,
	ParseExperienceYears,
	TranslateTitles,
	PreprocessTitles,
	NormalizeTitles,
	Persist,
}

// StageRegistry holds all stage definitions
var StageRegistry = map[string]StageDefinition{
	SplitLocation:    {Name: SplitLocation, Category: CategorySplit},
	SplitCareerLevel: {Name: SplitCareerLevel, Category: CategorySplit},
	MergeExperience: {
		Name:         MergeExperience,
		Category:     CategorySplit,
		Dependencies: []string{SplitCareerLevel},
	},
	SplitIndustry:  {Name: SplitIndustry, Category: CategorySplit},
	ParseVacancies: {Name: ParseVacancies, Category: CategorySplit},
	FillMissing: {
		Name:         FillMissing,
		Category:     CategoryFilter,
		Dependencies: []string{MergeExperience},
	},
	ExcludeTitles:    {Name: ExcludeTitles, Category: CategoryFilter},
	ReconstructDates: {Name: ReconstructDates, Category: CategoryDates},
	MarkTraining: {
		Name:         MarkTraining,
		Category:     CategoryExtract,
		Dependencies: []string{SplitCareerLevel, FillMissing},
	},
	TranslateCategories: {
		Name:         TranslateCategories,
		Category:     CategoryExtract,
		Dependencies: []string{FillMissing, MarkTraining},
	},
	ExtractAttributes: {
		Name:         ExtractAttributes,
		Category:     CategoryExtract,
		Dependencies: []string{TranslateCategories},
	},
	ParseExperienceYears: {
		Name:         ParseExperienceYears,
		Category:     CategoryExtract,
		Dependencies: []string{MergeExperience, FillMissing},
	},
	TranslateTitles: {
		Name:         TranslateTitles,
		Category:     CategoryTitles,
		Dependencies: []string{ExcludeTitles, ExtractAttributes},
	},
	PreprocessTitles: {
		Name:         PreprocessTitles,
		Category:     CategoryTitles,
		Dependencies: []string{TranslateTitles},
	},
	NormalizeTitles: {
		Name:         NormalizeTitles,
		Category:     CategoryTitles,
		Dependencies: []string{PreprocessTitles},
	},
	Persist: {
		Name:         Persist,
		Category:     CategoryPersist,
		Dependencies: []string{ReconstructDates, NormalizeTitles, ParseExperienceYears, SplitIndustry, ParseVacancies, SplitLocation},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Stage               string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("stage %s has missing dependencies: %v", e.Stage, e.MissingDependencies)
}

// ValidateDependencies checks that every required dependency of stage is in completed.
func ValidateDependencies(completed map[string]bool, stage string) error {
	def, ok := StageRegistry[stage]
	if !ok {
		return fmt.Errorf("unknown stage: %s", stage)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Stage: stage, MissingDependencies: missing}
	}
	return nil
}

// ValidateOrder checks that order runs every stage after its dependencies.
func ValidateOrder(order []string) error {
	completed := make(map[string]bool, len(order))
	for _, stage := range order {
		if err := ValidateDependencies(completed, stage); err != nil {
			return err
		}
		completed[stage] = true
	}
	return nil
}

// Index returns the 1-based position of stage in Order, or 0 when it is unknown.
func Index(stage string) int {
	for i, s := range Order {
		if s == stage {
			return i + 1
		}
	}
	return 0
}
