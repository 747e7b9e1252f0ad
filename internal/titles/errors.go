package titles

import "fmt"

// LoadError represents an error reading or decoding a rule table.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load rule table %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load rule table %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// RuleError represents a rule whose pattern does not compile.
type RuleError struct {
	Index   int
	Pattern string
	Cause   error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d (%q) does not compile: %v", e.Index, e.Pattern, e.Cause)
}

func (e *RuleError) Unwrap() error {
	return e.Cause
}
