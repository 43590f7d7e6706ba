package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrorType classifies a ConfigurationError.
type ErrorType string

const (
	// ErrorTypeIO is an unreadable configuration file.
	ErrorTypeIO ErrorType = "io"
	// ErrorTypeParse is a file that is not valid YAML for the Config schema.
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeValidation is a value that parsed but is not acceptable.
	ErrorTypeValidation ErrorType = "validation"
)

// ConfigurationError is a problem with the configuration file or with one of
// its keys after command line overrides were applied.
type ConfigurationError struct {
	FilePath    string    `json:"filePath,omitempty"`
	FileName    string    `json:"fileName,omitempty"`
	Field       string    `json:"field,omitempty"` // Offending key, empty for file level errors
	ErrorType   ErrorType `json:"errorType"`
	Message     string    `json:"message"`
	Details     string    `json:"details,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// subject names what the error is about: the file, the key or both.
func (ce ConfigurationError) subject() string {
	switch {
	case ce.FileName != "" && ce.Field != "":
		return ce.FileName + ": " + ce.Field
	case ce.Field != "":
		return ce.Field
	default:
		return ce.FileName
	}
}

func (ce ConfigurationError) Error() string {
	msg := ce.Message
	if ce.Details != "" {
		msg += ": " + ce.Details
	}
	if subject := ce.subject(); subject != "" {
		return subject + ": " + msg
	}
	return msg
}

// DetailedError renders the error over several lines, including suggestions.
func (ce ConfigurationError) DetailedError() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Configuration Error: %s", ce.Message)
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "\n  %s: %s", label, value)
		}
	}
	line("File", ce.FilePath)
	line("Field", ce.Field)
	line("Type", string(ce.ErrorType))
	line("Details", ce.Details)
	if len(ce.Suggestions) > 0 {
		b.WriteString("\n  Suggestions:")
		for _, s := range ce.Suggestions {
			fmt.Fprintf(&b, "\n    - %s", s)
		}
	}
	return b.String()
}

// ConfigurationErrorCollection holds every problem found by Validate.
type ConfigurationErrorCollection struct {
	Errors []ConfigurationError `json:"errors"`
}

func (cec ConfigurationErrorCollection) Error() string {
	switch len(cec.Errors) {
	case 0:
		return "no configuration errors"
	case 1:
		return cec.Errors[0].Error()
	default:
		return fmt.Sprintf("%d configuration errors: %s (and %d more)",
			len(cec.Errors), cec.Errors[0].Error(), len(cec.Errors)-1)
	}
}

// HasErrors reports whether anything was added.
func (cec *ConfigurationErrorCollection) HasErrors() bool {
	return len(cec.Errors) > 0
}

// Add appends an error.
func (cec *ConfigurationErrorCollection) Add(err ConfigurationError) {
	cec.Errors = append(cec.Errors, err)
}

// DetailedReport renders every error with DetailedError.
func (cec ConfigurationErrorCollection) DetailedReport() string {
	if len(cec.Errors) == 0 {
		return "No configuration errors to report"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Configuration has %d error(s):", len(cec.Errors))
	for i, err := range cec.Errors {
		fmt.Fprintf(&b, "\n\nError %d:\n%s", i+1, err.DetailedError())
	}
	return b.String()
}

// Explain returns the detailed rendering of a configuration error anywhere
// in err's chain. ok is false when err holds none.
func Explain(err error) (detail string, ok bool) {
	var errs ConfigurationErrorCollection
	if errors.As(err, &errs) {
		return errs.DetailedReport(), true
	}
	var cfgErr ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.DetailedError(), true
	}
	return "", false
}

// NewConfigurationError creates a file level error.
func NewConfigurationError(filePath string, errorType ErrorType, message, details string) ConfigurationError {
	return ConfigurationError{
		FilePath:  filePath,
		FileName:  filepath.Base(filePath),
		ErrorType: errorType,
		Message:   message,
		Details:   details,
	}
}

// NewValidationError creates an error for one configuration key.
func NewValidationError(field, message string, suggestions ...string) ConfigurationError {
	return ConfigurationError{
		Field:       field,
		ErrorType:   ErrorTypeValidation,
		Message:     message,
		Suggestions: suggestions,
	}
}
