package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder into Go program at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// DefaultVariant is used when a mode has no variant for the requested key.
const DefaultVariant = "default"

const (
	ModeGenerateQuestions = "generate_questions"
	ModeAnalyzeResponses  = "analyze_responses"
)

// builds prompts from the embedded templates
type PromptProvider interface {
	BuildPrompt(mode, variant string, data interface{}) (string, error)
	GetTemplates() map[string]map[string]*template.Template
}

type PromptManager struct {
	templates map[string]map[string]*template.Template // mode -> variant -> compiled prompt
}

// loaded prompt template
type PromptTemplate struct {
	BasePrompt     string            `yaml:"base_prompt"`
	Variants       map[string]string `yaml:"variants"`
	ResponseFormat string            `yaml:"response_format"`
}

var funcMap = template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
	"clock": func(seconds int) string {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	},
}

// creates a new prompt manager and loads templates
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		templates: make(map[string]map[string]*template.Template),
	}

	if err := pm.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return pm, nil
}

// BuildPrompt renders the prompt for mode. An unknown variant falls back to
// the mode's default variant.
func (pm *PromptManager) BuildPrompt(mode, variant string, data interface{}) (string, error) {
	modeTemplates, exists := pm.templates[mode]
	if !exists {
		return "", fmt.Errorf("template not found for mode: %s", mode)
	}

	tmpl, exists := modeTemplates[variant]
	if !exists {
		tmpl, exists = modeTemplates[DefaultVariant]
		if !exists {
			return "", fmt.Errorf("variant '%s' not found for mode '%s'", variant, mode)
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s/%s prompt: %w", mode, variant, err)
	}
	return buf.String(), nil
}

func (pm *PromptManager) GetTemplates() map[string]map[string]*template.Template {
	return pm.templates
}

// loadTemplates loads all YAML prompt files from the embedded filesystem
func (pm *PromptManager) loadTemplates() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var promptTemplate PromptTemplate
		if err := yaml.Unmarshal(data, &promptTemplate); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		pm.templates[name] = make(map[string]*template.Template)

		for variant, variantPrompt := range promptTemplate.Variants {
			parts := make([]string, 0, 3)
			for _, part := range []string{promptTemplate.BasePrompt, variantPrompt, promptTemplate.ResponseFormat} {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					parts = append(parts, trimmed)
				}
			}

			tmpl, err := template.New(name + "/" + variant).
				Funcs(funcMap).
				Option("missingkey=zero").
				Parse(strings.Join(parts, "\n\n"))
			if err != nil {
				return fmt.Errorf("failed to compile %s/%s: %w", name, variant, err)
			}
			pm.templates[name][variant] = tmpl
		}
	}

	return nil
}
