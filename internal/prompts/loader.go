// Package prompts provides the LLM prompt templates. Templates are stored as YAML maps of
// key to text/template source and embedded at compile time.
package prompts

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var promptFiles embed.FS

var (
	cacheMu sync.Mutex
	cache   = make(map[string]map[string]*template.Template)
)

// Render executes the template key of file (e.g. "translation.yaml") with data. Missing
// fields in data are an error.
func Render(filename, key string, data any) (string, error) {
	templates, err := loadFile(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s/%s: %w", filename, key, err)
	}
	return sb.String(), nil
}

// MustRender is Render for prompts that are part of the binary; it panics on error.
func MustRender(filename, key string, data any) string {
	s, err := Render(filename, key, data)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return s
}

// Keys returns the prompt keys of a file, sorted.
func Keys(filename string) ([]string, error) {
	templates, err := loadFile(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func loadFile(filename string) (map[string]*template.Template, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if t, ok := cache[filename]; ok {
		return t, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	templates := make(map[string]*template.Template, len(raw))
	for key, src := range raw {
		tmpl, err := template.New(key).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("invalid prompt template %s/%s: %w", filename, key, err)
		}
		templates[key] = tmpl
	}
	cache[filename] = templates
	return templates, nil
}
