package model

import (
	"fmt"
	"go/token"
)

// Severity of a Problem.
type Severity int

// Available Severity values.
const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "error"
}

// MarshalYAML encodes the severity by name.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes a severity name.
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	switch name {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity %q", name)
	}

	return nil
}

// FixKind names a suggested fix.
type FixKind int

// Available FixKind values.
const (
	// FixSafeDelete removes the declaration named by Target.
	FixSafeDelete FixKind = iota
)

// Fix is a suggested change attached to a problem.
type Fix struct {
	Kind     FixKind
	Target   string
	Position token.Position
}

func (f Fix) String() string {
	if f.Position.IsValid() {
		return fmt.Sprintf("safe delete %s (%s)", f.Target, f.Position)
	}

	return "safe delete " + f.Target
}

// Problem is a diagnostic reported while synthesizing a class.
type Problem struct {
	Severity Severity
	Message  string
	Fixes    []Fix
	Class    string
	Position token.Position
}

func (p Problem) String() string {
	prefix := ""
	if p.Position.IsValid() {
		prefix = p.Position.String() + ": "
	}

	return fmt.Sprintf("%s%s: %s", prefix, p.Severity, p.Message)
}

// Problems collects the diagnostics of one class.
type Problems struct {
	class    string
	position token.Position
	items    []Problem
}

// NewProblems creates a collector anchored at the class declaration.
func NewProblems(class *Class) *Problems {
	if class == nil {
		return &Problems{}
	}

	return &Problems{class: class.Name, position: class.Position}
}

// AddError records an error with optional fixes.
func (p *Problems) AddError(message string, fixes ...Fix) {
	p.items = append(p.items, Problem{
		Severity: SeverityError,
		Message:  message,
		Fixes:    fixes,
		Class:    p.class,
		Position: p.position,
	})
}

// AddWarning records a warning.
func (p *Problems) AddWarning(message string) {
	p.items = append(p.items, Problem{
		Severity: SeverityWarning,
		Message:  message,
		Class:    p.class,
		Position: p.position,
	})
}

// HasErrors reports whether any error was recorded.
func (p *Problems) HasErrors() bool {
	return CountErrors(p.items) > 0
}

// Items returns a copy of the recorded problems.
func (p *Problems) Items() []Problem {
	out := make([]Problem, len(p.items))
	copy(out, p.items)

	return out
}

// CountErrors counts problems with error severity.
func CountErrors(problems []Problem) int {
	n := 0

	for _, problem := range problems {
		if problem.Severity == SeverityError {
			n++
		}
	}

	return n
}
