package navpage

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

// TemplateError is returned when the template cannot be loaded, parsed, or
// executed. Nothing is written when it occurs.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// WriteError is returned when the output file cannot be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// render executes the page template against the grouped model. The template
// must contain at least one template action; a static file with no markers is
// rejected so a bad template does not silently produce an empty page.
func render(w io.Writer, path, templateText string, model *Model) error {
	if !strings.Contains(templateText, "{{") {
		return &TemplateError{Path: path, Err: fmt.Errorf("no template actions found")}
	}

	tmpl, err := template.New("page").Parse(templateText)
	if err != nil {
		return &TemplateError{Path: path, Err: err}
	}

	if err := tmpl.Execute(w, model); err != nil {
		return &TemplateError{Path: path, Err: err}
	}

	return nil
}
