// ABOUTME: Embedded prompt catalogue for the analysis service
// ABOUTME: Prompts are YAML-defined templates rendered with the response language

package analysis

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Prompts holds the rendered system prompts
type Prompts struct {
	Text  string
	Image string
	Site  string
}

type promptCatalogue struct {
	TextAnalysis  string `yaml:"text_analysis"`
	ImageAnalysis string `yaml:"image_analysis"`
	SiteAnalysis  string `yaml:"site_analysis"`
}

// LoadPrompts renders the embedded catalogue for the given response language
func LoadPrompts(language string) (Prompts, error) {
	return parsePrompts(promptsYAML, language)
}

func parsePrompts(raw []byte, language string) (Prompts, error) {
	var catalogue promptCatalogue
	if err := yaml.Unmarshal(raw, &catalogue); err != nil {
		return Prompts{}, fmt.Errorf("parse prompts: %w", err)
	}

	data := struct{ Language string }{Language: language}

	var prompts Prompts
	for _, p := range []struct {
		name string
		src  string
		dst  *string
	}{
		{"text_analysis", catalogue.TextAnalysis, &prompts.Text},
		{"image_analysis", catalogue.ImageAnalysis, &prompts.Image},
		{"site_analysis", catalogue.SiteAnalysis, &prompts.Site},
	} {
		if p.src == "" {
			return Prompts{}, fmt.Errorf("prompt %s is missing", p.name)
		}
		tmpl, err := template.New(p.name).Parse(p.src)
		if err != nil {
			return Prompts{}, fmt.Errorf("prompt %s: %w", p.name, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return Prompts{}, fmt.Errorf("prompt %s: %w", p.name, err)
		}
		*p.dst = buf.String()
	}

	return prompts, nil
}
