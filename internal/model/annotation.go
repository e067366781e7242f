package model

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValueKind tags an annotation attribute value.
type ValueKind int

// Available ValueKind values.
const (
	ValueInvalid ValueKind = iota
	ValueString
	ValueBool
	ValueNumber
	ValueIdent
	ValueList
	ValueAnnotation
)

// Value is an annotation attribute value. Text always holds the source form.
type Value struct {
	Kind   ValueKind
	String string
	Bool   bool
	List   []Value
	Text   string
}

// Attribute is a named annotation attribute. Positional values have an
// empty name.
type Attribute struct {
	Name  string
	Value Value
}

// Annotation is a doc-comment annotation such as
//
//	@InternationlCode{Path: "codes.properties"}
type Annotation struct {
	Package    string
	Name       string
	Attributes []Attribute
	Text       string
	Position   token.Position
}

// Lookup finds an attribute by name. The first letter is compared without
// regard to case so both path and Path select the same attribute.
func (a Annotation) Lookup(name string) (Value, bool) {
	for _, attr := range a.Attributes {
		if sameAttrName(attr.Name, name) {
			return attr.Value, true
		}
	}

	return Value{}, false
}

// StringValue returns the string attribute name or def when absent.
func (a Annotation) StringValue(name, def string) string {
	v, ok := a.Lookup(name)
	if !ok || v.Kind != ValueString {
		return def
	}

	return v.String
}

// BoolValue returns the boolean attribute name or def when absent.
func (a Annotation) BoolValue(name string, def bool) bool {
	v, ok := a.Lookup(name)
	if !ok || v.Kind != ValueBool {
		return def
	}

	return v.Bool
}

// StringList returns a list attribute as text. String elements yield their
// value, anything else its source form. A scalar yields a one-element list.
func (a Annotation) StringList(name string) []string {
	v, ok := a.Lookup(name)
	if !ok {
		return nil
	}

	items := v.List
	if v.Kind != ValueList {
		items = []Value{v}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Kind == ValueString {
			out = append(out, item.String)
			continue
		}

		out = append(out, item.Text)
	}

	return out
}

func sameAttrName(a, b string) bool {
	if a == b {
		return true
	}

	ra, na := utf8.DecodeRuneInString(a)
	rb, nb := utf8.DecodeRuneInString(b)

	return unicode.ToLower(ra) == unicode.ToLower(rb) && a[na:] == b[nb:]
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[n:]
}

// Decapitalize lower-cases the first letter of s.
func Decapitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}

	return string(unicode.ToLower(r)) + s[n:]
}

// QualifiedName returns pkg.Name or Name.
func (a Annotation) QualifiedName() string {
	if a.Package == "" {
		return a.Name
	}

	return strings.Join([]string{a.Package, a.Name}, ".")
}
