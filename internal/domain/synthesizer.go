package domain

import (
	"context"
	"fmt"
	"log/slog"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

// Synthesizer runs both synthesis passes over an annotated class.
type Synthesizer interface {
	// Synthesize returns false when class does not carry the marker.
	Synthesize(ctx context.Context, class *m.Class) (m.Synthesis, bool)
}

type synthesizer struct {
	resources *ResourceFieldSynthesizer
	accessors *AccessorSynthesizer
}

// NewSynthesizer creates a Synthesizer from its two passes.
func NewSynthesizer(resources *ResourceFieldSynthesizer, accessors *AccessorSynthesizer) Synthesizer {
	return &synthesizer{resources: resources, accessors: accessors}
}

func (s *synthesizer) Synthesize(ctx context.Context, class *m.Class) (m.Synthesis, bool) {
	anno, ok := class.Annotation(MarkerName)
	if !ok {
		return m.Synthesis{}, false
	}

	problems := m.NewProblems(class)
	result := m.Synthesis{Class: class}

	if !ValidateMarker(anno, class, problems) {
		result.Problems = problems.Items()
		slog.Debug("Rejected marker", "class", class.Name, "kind", class.Kind)

		return result, true
	}

	result.Valid = true
	result.Fields = s.resources.Synthesize(ctx, class, anno)
	result.Methods = s.accessors.Synthesize(ctx, class, anno, problems)
	checkInstanceFields(class, problems)
	result.FieldUsage = s.fieldUsage(class, anno)
	result.Problems = problems.Items()

	slog.Debug("Synthesized class",
		"class", class.Name,
		"fields", len(result.Fields),
		"methods", len(result.Methods),
		"problems", len(result.Problems))

	return result, true
}

// fieldUsage classifies every declared field by merging both passes.
func (s *synthesizer) fieldUsage(class *m.Class, anno m.Annotation) map[string]m.Usage {
	usage := make(map[string]m.Usage, len(class.Fields))

	for _, field := range class.Fields {
		if field.Embedded {
			continue
		}

		usage[field.Name] = s.resources.CheckFieldUsage(field, anno).
			Merge(s.accessors.CheckFieldUsage(field, class, anno))
	}

	return usage
}

// checkInstanceFields warns when a canonical field is missing from the
// struct or is not a string. Synthesized members assume both exist.
func checkInstanceFields(class *m.Class, sink ProblemSink) {
	for _, name := range canonicalFields {
		field, ok := class.Field(name)
		if !ok {
			sink.AddWarning(fmt.Sprintf("field '%s' is not declared on %s", name, class.Name))
			continue
		}

		if !field.Type.Equal(m.StringType) {
			sink.AddWarning(fmt.Sprintf("field '%s' of %s has type %s, expected string", name, class.Name, field.Type))
		}
	}
}
