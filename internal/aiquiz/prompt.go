package aiquiz

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

type promptFile struct {
	System    string           `yaml:"system"`
	Questions map[Theme]string `yaml:"questions"`
	Finalize  string           `yaml:"finalize"`
}

type Prompts struct {
	system    string
	questions map[Theme]*template.Template
	finalize  *template.Template
}

// LoadPrompts parses the embedded prompt templates. Every theme must have a
// question template.
func LoadPrompts() (*Prompts, error) {
	return ParsePrompts(promptsYAML)
}

func ParsePrompts(raw []byte) (*Prompts, error) {
	var f promptFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}

	p := &Prompts{
		system:    strings.TrimSpace(f.System),
		questions: make(map[Theme]*template.Template, len(AllThemes)),
	}
	for _, theme := range AllThemes {
		text, ok := f.Questions[theme]
		if !ok {
			return nil, fmt.Errorf("no question prompt for theme %q", theme)
		}
		tmpl, err := template.New(string(theme)).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse %s prompt: %w", theme, err)
		}
		p.questions[theme] = tmpl
	}

	tmpl, err := template.New("finalize").Option("missingkey=error").Parse(f.Finalize)
	if err != nil {
		return nil, fmt.Errorf("parse finalize prompt: %w", err)
	}
	p.finalize = tmpl
	return p, nil
}

func (p *Prompts) System() string {
	return p.system
}

func (p *Prompts) Question(req QuestionRequest) (string, error) {
	tmpl, ok := p.questions[req.Theme]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, req.Theme)
	}

	summary := ""
	if req.ContextSummary != nil {
		summary = *req.ContextSummary
	}
	return render(tmpl, map[string]string{
		"QuestionsHistory": strings.Join(req.PriorQuestionTexts, "\n"),
		"ContextSummary":   summary,
		"Difficulty":       string(req.Difficulty),
		"QuestionType":     string(req.QuestionType),
	})
}

func (p *Prompts) Finalize(req FinalizeRequest) (string, error) {
	return render(p.finalize, map[string]string{
		"Theme":            string(req.Theme),
		"Difficulty":       string(req.Difficulty),
		"QuestionsHistory": strings.Join(req.QuestionTexts, "\n"),
	})
}

func render(tmpl *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
