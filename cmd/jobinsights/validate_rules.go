package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/schemas"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/titles"
	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
)

var validateRulesCommand = &cobra.Command{
	Use:   "validate-rules [rules.yaml...]",
	Short: "Check rule tables against the schema and compile every pattern",
	Long: `Validates rule table YAML files against the rule table JSON schema, then compiles every
pattern and reports the index of the first rule that fails. Without arguments the embedded
tables of all markets are checked.`,
	RunE: runValidateRules,
}

func init() {
	rootCmd.AddCommand(validateRulesCommand)
}

func runValidateRules(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	type source struct {
		name string
		load func() (*titles.Table, error)
	}
	var sources []source
	for _, path := range args {
		path := path
		sources = append(sources, source{path, func() (*titles.Table, error) { return titles.ReadTableFile(path) }})
	}
	if len(sources) == 0 {
		for _, m := range types.Markets() {
			m := m
			sources = append(sources, source{"embedded:" + m.String(), func() (*titles.Table, error) { return titles.LoadTable(m) }})
		}
	}

	failed := 0
	for _, s := range sources {
		n, err := validateTable(s.load)
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(out, "FAIL %s\n  %v\n", s.name, err)
			var ruleErr *titles.RuleError
			if errors.As(err, &ruleErr) {
				logger.Debug("rule failed to compile", zap.Int("index", ruleErr.Index), zap.String("pattern", ruleErr.Pattern))
			}
			continue
		}
		_, _ = fmt.Fprintf(out, "OK   %s (%d rules)\n", s.name, n)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d rule tables invalid", failed, len(sources))
	}
	return nil
}

func validateTable(load func() (*titles.Table, error)) (int, error) {
	table, err := load()
	if err != nil {
		return 0, err
	}
	if err := schemas.ValidateRuleTable(table); err != nil {
		return 0, err
	}
	engine, err := titles.Compile(table, titles.WithLogger(logger))
	if err != nil {
		return 0, err
	}
	return engine.Len(), nil
}
