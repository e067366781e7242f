package domain

import (
	m "intlcode.dev/pkg/intlcode/internal/model"
)

// MatchesSignature reports whether method has exactly the given name and
// ordered parameter types. Types are compared structurally; there is no
// assignability or overload reasoning.
func MatchesSignature(method m.Method, name string, params []m.TypeRef) bool {
	return method.Name == name && m.EqualTypes(method.ParamTypes(), params)
}

// FindBySignature returns the first method matching name and params.
func FindBySignature(methods []m.Method, name string, params []m.TypeRef) (m.Method, bool) {
	for _, method := range methods {
		if MatchesSignature(method, name, params) {
			return method, true
		}
	}

	return m.Method{}, false
}
