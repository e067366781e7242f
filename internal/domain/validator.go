// Package domain implements member synthesis for @InternationlCode types and
// the workflows that load packages, render generated code and report
// problems.
package domain

import (
	m "intlcode.dev/pkg/intlcode/internal/model"
)

// MarkerName is the annotation that opts a type into synthesis.
const MarkerName = "InternationlCode"

// Marker attributes.
const (
	attrPath          = "path"
	attrLazy          = "lazy"
	attrOnConstructor = "onConstructor"
)

// ProblemSink receives the diagnostics of one class. Errors block the
// member that caused them; warnings never block.
type ProblemSink interface {
	AddError(message string, fixes ...m.Fix)
	AddWarning(message string)
}

// ValidateMarker checks the placement of the marker. Only struct types are
// accepted; everything else is rejected with an error and returns false.
// Setting lazy only produces a warning.
func ValidateMarker(anno m.Annotation, class *m.Class, sink ProblemSink) bool {
	valid := class.Kind == m.KindClass
	if !valid {
		sink.AddError("'@" + MarkerName + "' is only supported on a class type")
	}

	if anno.BoolValue(attrLazy, false) {
		sink.AddWarning("'lazy' is not supported for @" + MarkerName + " on a type")
	}

	return valid
}
