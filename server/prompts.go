package server

import (
	"fmt"
	"strings"
	"text/template"
)

// PromptTemplate is a named, parameterized prompt rendered on demand.
type PromptTemplate struct {
	Name        string
	Description string
	Arguments   []PromptArgument

	tmpl *template.Template
}

// NewPromptTemplate parses text as a text/template whose dot holds the
// prompt arguments by name.
func NewPromptTemplate(name, description, text string, args ...PromptArgument) (*PromptTemplate, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing prompt %q: %w", name, err)
	}
	return &PromptTemplate{
		Name:        name,
		Description: description,
		Arguments:   args,
		tmpl:        tmpl,
	}, nil
}

// Render produces the prompt text for the given arguments. Every required
// argument must be present and non-empty.
func (p *PromptTemplate) Render(args map[string]string) (string, error) {
	for _, a := range p.Arguments {
		if a.Required && args[a.Name] == "" {
			return "", fmt.Errorf("prompt %q requires argument %q", p.Name, a.Name)
		}
	}

	data := make(map[string]string, len(args))
	for k, v := range args {
		data[k] = v
	}

	var b strings.Builder
	if err := p.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering prompt %q: %w", p.Name, err)
	}
	return b.String(), nil
}

const dataAnalysisText = `You are a data analysis expert. Please help analyze {{.data_type}} data with the following objective: {{.objective}}

Please provide:
1. Initial data exploration steps
2. Relevant statistical measures or metrics
3. Visualization recommendations
4. Key insights to look for
5. Potential pitfalls or limitations to consider

Make your analysis thorough but accessible to non-experts.`

const apiIntegrationText = `You are an API integration specialist. Please provide guidance for integrating the {{.api_name}} API for the following use case: {{.use_case}}

Please include:
1. Authentication requirements
2. Rate limiting considerations
3. Error handling strategies
4. Data transformation needs
5. Testing approaches
6. Security best practices

Provide practical, production-ready advice.`

// DefaultPrompts returns the built-in prompt templates.
func DefaultPrompts() []*PromptTemplate {
	dataAnalysis, err := NewPromptTemplate(
		"data_analysis",
		"Generate a data analysis prompt",
		dataAnalysisText,
		PromptArgument{Name: "data_type", Description: "Type of data to analyze (csv, json, text, etc.)", Required: true},
		PromptArgument{Name: "objective", Description: "What you want to achieve with the analysis", Required: true},
	)
	if err != nil {
		panic(err)
	}

	apiIntegration, err := NewPromptTemplate(
		"api_integration",
		"Generate an API integration prompt",
		apiIntegrationText,
		PromptArgument{Name: "api_name", Description: "Name of the API to integrate", Required: true},
		PromptArgument{Name: "use_case", Description: "Specific use case or goal", Required: true},
	)
	if err != nil {
		panic(err)
	}

	return []*PromptTemplate{dataAnalysis, apiIntegration}
}
