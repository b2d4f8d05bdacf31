package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// PromptTemplate is one chat completion recipe
type PromptTemplate struct {
	System      string  `yaml:"system"`
	User        string  `yaml:"user"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

// Prompts holds the templates used by the AI endpoints
type Prompts struct {
	Relation PromptTemplate `yaml:"relation"`
	Ask      PromptTemplate `yaml:"ask"`
}

// LoadPrompts reads prompt templates from path, or the embedded defaults when
// path is empty. Every template is parsed once so a broken file fails at boot.
func LoadPrompts(path string) (*Prompts, error) {
	data := defaultPrompts
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read prompts file: %w", err)
		}
		data = b
	}

	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse prompts file: %w", err)
	}

	for name, tmpl := range map[string]string{
		"relation.user": p.Relation.User,
		"ask.system":    p.Ask.System,
	} {
		if tmpl == "" {
			return nil, fmt.Errorf("prompt %s is empty", name)
		}
		if _, err := template.New(name).Parse(tmpl); err != nil {
			return nil, fmt.Errorf("prompt %s: %w", name, err)
		}
	}

	return &p, nil
}

// Render executes a prompt template against data
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
