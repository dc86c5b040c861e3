package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"mapper-planner/internal/common"
)

// Diagnostic codes.
const (
	CodeUnmappedProperty        = "unmapped_property"
	CodeAmbiguousSourceProperty = "ambiguous_source_property"
	CodeAmbiguousResolution     = "ambiguous_resolution"
	CodeUnknownTargetProperty   = "unknown_target_property"
	CodeUnknownSourceProperty   = "unknown_source_property"
	CodeNoElementStrategy       = "no_element_strategy"
	CodeMissingFactory          = "missing_factory"
	CodeStructuralInconsistency = "structural_inconsistency"
	CodeReverseConfiguration    = "reverse_configuration"
)

// Diagnostics holds all diagnostic information of a planning run.
type Diagnostics struct {
	Errors   []Diagnostic `yaml:"errors,omitempty"`
	Warnings []Diagnostic `yaml:"warnings,omitempty"`
	Infos    []Diagnostic `yaml:"infos,omitempty"`
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity `yaml:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `yaml:"code"`
	// Message is the human-readable description.
	Message string `yaml:"message"`
	// Method identifies which mapping method this relates to (if any).
	Method string `yaml:"method,omitempty"`
	// Property identifies which target property this relates to (if any).
	Property string `yaml:"property,omitempty"`
	// Suggestions are potential fixes or alternatives.
	Suggestions []string `yaml:"suggestions,omitempty"`
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML renders the severity by name.
func (s DiagnosticSeverity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML parses the severity name.
func (s *DiagnosticSeverity) UnmarshalYAML(node *yaml.Node) error {
	for severity := DiagnosticInfo; severity <= DiagnosticError; severity++ {
		if severity.String() == node.Value {
			*s = severity

			return nil
		}
	}

	return fmt.Errorf("line %d: unknown severity %q", node.Line, node.Value)
}

// Add appends a diagnostic to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, method, property string, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    DiagnosticError,
		Code:        code,
		Message:     message,
		Method:      method,
		Property:    property,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, method, property string, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		Method:      method,
		Property:    property,
		Suggestions: suggestions,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, method, property string) {
	d.Add(Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Method:   method,
		Property: property,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// IsEmpty returns true if nothing was reported.
func (d *Diagnostics) IsEmpty() bool {
	return len(d.Errors) == 0 && len(d.Warnings) == 0 && len(d.Infos) == 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// ByCode returns every diagnostic with the given code, errors first.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var res []Diagnostic

	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			if diag.Code == code {
				res = append(res, diag)
			}
		}
	}

	return res
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Method != "" {
		prefix = append(prefix, "["+d.Method+"]")
	}

	if d.Property != "" {
		prefix = append(prefix, d.Property)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
