// Package model defines the data structures shared by the intlcode layers:
// the class model built from Go sources, synthesized members, resources and
// the diagnostics produced while synthesizing.
package model

import "go/token"

// Path represents a file system path.
type Path string

// GeneratedMarker identifies files written by intlcode. Loaders skip them so
// a second run sees only user-declared members.
const GeneratedMarker = "Code generated by intlcode. DO NOT EDIT."

// Package is a Go package directory that was scanned for annotated types.
type Package struct {
	Name        string
	Dir         Path
	Files       []Path
	Classes     []*Class
	Identifiers map[string]token.Position // package-level declarations
	ProjectRoot Path
}

// Declared reports whether name is already declared at package level.
func (p *Package) Declared(name string) bool {
	if p == nil {
		return false
	}

	_, ok := p.Identifiers[name]

	return ok
}
