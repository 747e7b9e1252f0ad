// Package titles collapses free-text job titles into a curated vocabulary of canonical
// titles using an ordered table of regular-expression rules per market.
//
// The engine walks the table in order and tests every rule against the title's current
// value. A match overwrites the title with the lowercased label, and later rules see that
// rewritten value. A later rule can therefore refine the label an earlier rule produced,
// and a row's final title is set by the last rule that matched along the way. Titles that
// no rule matches pass through unchanged.
package titles

import (
	"strings"
	"time"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
	"github.com/dlclark/regexp2"
	"go.uber.org/zap"
)

// DefaultMatchTimeout bounds one pattern evaluation. Some rules nest lookaheads over
// ".*"; a timeout is logged and treated as no match.
const DefaultMatchTimeout = time.Second

type compiledRule struct {
	Rule
	index int
	re    *regexp2.Regexp
}

// Engine applies a compiled rule table. It is safe for concurrent use.
type Engine struct {
	market string
	rules  []compiledRule
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for match timeouts.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Compile compiles every pattern of t. The first pattern that fails to compile is
// reported as a *RuleError carrying its index.
func Compile(t *Table, opts ...Option) (*Engine, error) {
	e := &Engine{market: t.Market, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	e.rules = make([]compiledRule, 0, len(t.Rules))
	for i, r := range t.Rules {
		re, err := regexp2.Compile(r.Pattern, regexp2.None)
		if err != nil {
			return nil, &RuleError{Index: i, Pattern: r.Pattern, Cause: err}
		}
		re.MatchTimeout = DefaultMatchTimeout
		e.rules = append(e.rules, compiledRule{Rule: r, index: i, re: re})
	}
	return e, nil
}

// New loads and compiles the embedded table of a market.
func New(m types.Market, opts ...Option) (*Engine, error) {
	t, err := LoadTable(m)
	if err != nil {
		return nil, err
	}
	return Compile(t, opts...)
}

// Len returns the number of rules.
func (e *Engine) Len() int {
	return len(e.rules)
}

// Market returns the market name recorded in the table.
func (e *Engine) Market() string {
	return e.market
}

func (e *Engine) matches(r compiledRule, title string) bool {
	ok, err := r.re.MatchString(title)
	if err != nil {
		e.logger.Warn("title rule did not finish",
			zap.Int("rule", r.index),
			zap.String("pattern", r.Pattern),
			zap.String("title", title),
			zap.Error(err),
		)
		return false
	}
	return ok
}

// Apply runs the rule pass over an already preprocessed title and returns the final
// lowercased value.
func (e *Engine) Apply(title string) string {
	for _, r := range e.rules {
		if e.matches(r, title) {
			title = strings.ToLower(r.Label)
		}
	}
	return title
}

// Normalize preprocesses a raw title, runs the rule pass and title-cases the result.
func (e *Engine) Normalize(raw string) string {
	return TitleCase(e.Apply(Preprocess(raw)))
}

// NormalizeAll normalizes titles, preserving their order.
func (e *Engine) NormalizeAll(raw []string) []string {
	out := make([]string, len(raw))
	for i, t := range raw {
		out[i] = e.Normalize(t)
	}
	return out
}
