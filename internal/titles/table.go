package titles

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed rules/*.yaml
var ruleFS embed.FS

// Rule maps titles matching Pattern to the canonical Label.
type Rule struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Label   string `yaml:"label" json:"label"`
}

// Table is an ordered rule list for one market. Order is significant.
type Table struct {
	Market string `yaml:"market" json:"market"`
	Rules  []Rule `yaml:"rules" json:"rules"`
}

// LoadTable returns the embedded rule table of a market.
func LoadTable(m types.Market) (*Table, error) {
	name := "rules/" + string(m) + ".yaml"
	data, err := ruleFS.ReadFile(name)
	if err != nil {
		return nil, &LoadError{Source: name, Message: "no embedded table for market", Cause: err}
	}
	return parseTable(name, data)
}

// ReadTableFile reads a rule table from a YAML file on disk.
func ReadTableFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	return parseTable(path, data)
}

// ParseTable decodes a rule table from YAML.
func ParseTable(data []byte) (*Table, error) {
	return parseTable("(bytes)", data)
}

func parseTable(source string, data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid YAML", Cause: err}
	}
	if len(t.Rules) == 0 {
		return nil, &LoadError{Source: source, Message: "table has no rules"}
	}
	for i, r := range t.Rules {
		if strings.TrimSpace(r.Pattern) == "" {
			return nil, &LoadError{Source: source, Message: fmt.Sprintf("rule %d has an empty pattern", i)}
		}
	}
	return &t, nil
}

// EmbeddedTableYAML returns the raw embedded YAML of a market's table.
func EmbeddedTableYAML(m types.Market) ([]byte, error) {
	return ruleFS.ReadFile("rules/" + string(m) + ".yaml")
}
