package source

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Templater renders documents as Go templates with the sprig functions.
// Values are available as .Values, the process environment through the
// sprig env function.
type Templater struct {
	Values map[string]any
}

// TemplateError reports a document that failed to render.
type TemplateError struct {
	Document string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("failed to render document %s: %v", e.Document, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// Render executes data as a template. Missing map keys are errors.
func (t *Templater) Render(name string, data []byte) ([]byte, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(string(data))
	if err != nil {
		return nil, &TemplateError{Document: name, Err: err}
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, map[string]any{"Values": t.Values}); err != nil {
		return nil, &TemplateError{Document: name, Err: err}
	}
	return out.Bytes(), nil
}
