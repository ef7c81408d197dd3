package domain

import "fmt"

// FormElementTypes are the element types an issue form may contain.
var FormElementTypes = map[string]bool{
	"markdown":   true,
	"input":      true,
	"textarea":   true,
	"dropdown":   true,
	"checkboxes": true,
}

// IssueForm is a structured issue template definition.
type IssueForm struct {
	// Name is the template display name.
	Name string `yaml:"name"`

	// Description explains when to use the template.
	Description string `yaml:"description"`

	// Title is the default issue title.
	Title string `yaml:"title"`

	// Labels are applied to issues created from the form.
	Labels []string `yaml:"labels"`

	// Body are the form elements.
	Body []FormElement `yaml:"body"`
}

// FormElement is one element of an issue form body.
type FormElement struct {
	// Type is the element type.
	Type string `yaml:"type"`

	// ID identifies the element. Optional for markdown elements.
	ID string `yaml:"id"`

	// Attributes are type-specific attributes (label, description,
	// options, value, ...).
	Attributes map[string]any `yaml:"attributes"`

	// Validations are type-specific validations (required, ...).
	Validations map[string]any `yaml:"validations"`
}

// Label returns the element's label attribute, if any.
func (e FormElement) Label() string {
	if e.Attributes == nil {
		return ""
	}
	if s, ok := e.Attributes["label"].(string); ok {
		return s
	}
	return ""
}

// Problems returns human-readable schema violations for the form.
// An empty slice means the form is valid.
func (f *IssueForm) Problems() []string {
	var problems []string

	if f.Name == "" {
		problems = append(problems, "missing name")
	}
	if f.Description == "" {
		problems = append(problems, "missing description")
	}
	if len(f.Body) == 0 {
		problems = append(problems, "empty body")
	}

	seen := map[string]bool{}
	for i, el := range f.Body {
		if !FormElementTypes[el.Type] {
			problems = append(problems, elementProblem(i, "unknown type %q", el.Type))
			continue
		}
		if el.Type != "markdown" {
			if el.ID == "" {
				problems = append(problems, elementProblem(i, "missing id"))
			} else if seen[el.ID] {
				problems = append(problems, elementProblem(i, "duplicate id %q", el.ID))
			}
			seen[el.ID] = true
			if el.Label() == "" {
				problems = append(problems, elementProblem(i, "missing label"))
			}
		}
	}

	return problems
}

func elementProblem(index int, format string, args ...any) string {
	return fmt.Sprintf("body[%d]: %s", index, fmt.Sprintf(format, args...))
}
