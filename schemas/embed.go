// Package schemas embeds the JSON schemas of the project's data artifacts.
package schemas

import "embed"

// FS holds every *.schema.json file of this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names.
const (
	RuleTable   = "rule_table.schema.json"
	CleanRecord = "clean_record.schema.json"
	Report      = "report.schema.json"
)
