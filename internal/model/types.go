package model

import (
	"strings"
)

// TypeKind tags a TypeRef.
type TypeKind int

// Available TypeKind values.
const (
	TypeInvalid TypeKind = iota
	TypeBasic
	TypeNamed
	TypePointer
	TypeSlice
	TypeArray
	TypeMap
	TypeChan
	TypeEllipsis
	TypeFunc
	TypeInterface
	TypeStruct
)

// TypeRef is a structural descriptor of a declared Go type. Two TypeRefs
// describe the same type when Equal reports true; the textual form is only
// used for rendering.
//
// For literal kinds (func, interface, struct) Name holds the canonical
// printed form of the literal.
type TypeRef struct {
	Kind    TypeKind
	Package string // qualifier of a named type, empty for the local package
	Name    string
	Len     string // array length expression
	Elem    *TypeRef
	Key     *TypeRef
	Args    []TypeRef // instantiation arguments of a generic named type
}

// StringType is the predeclared string type.
var StringType = Basic("string")

// Basic returns a predeclared type.
func Basic(name string) TypeRef {
	return TypeRef{Kind: TypeBasic, Name: name}
}

// Named returns a defined type, optionally qualified by a package name.
func Named(pkg, name string, args ...TypeRef) TypeRef {
	return TypeRef{Kind: TypeNamed, Package: pkg, Name: name, Args: args}
}

// PointerTo returns *elem.
func PointerTo(elem TypeRef) TypeRef {
	return TypeRef{Kind: TypePointer, Elem: &elem}
}

// SliceOf returns []elem.
func SliceOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: TypeSlice, Elem: &elem}
}

// ArrayOf returns [n]elem.
func ArrayOf(n string, elem TypeRef) TypeRef {
	return TypeRef{Kind: TypeArray, Len: n, Elem: &elem}
}

// MapOf returns map[key]elem.
func MapOf(key, elem TypeRef) TypeRef {
	return TypeRef{Kind: TypeMap, Key: &key, Elem: &elem}
}

// VariadicOf returns ...elem.
func VariadicOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: TypeEllipsis, Elem: &elem}
}

// Literal returns a func, interface or struct literal type in its printed form.
func Literal(kind TypeKind, text string) TypeRef {
	return TypeRef{Kind: kind, Name: text}
}

// IsValid reports whether t describes a type at all.
func (t TypeRef) IsValid() bool {
	return t.Kind != TypeInvalid
}

// Equal reports structural identity.
func (t TypeRef) Equal(o TypeRef) bool {
	if t.Kind != o.Kind || t.Package != o.Package || t.Name != o.Name || t.Len != o.Len {
		return false
	}

	if !equalRef(t.Elem, o.Elem) || !equalRef(t.Key, o.Key) {
		return false
	}

	return EqualTypes(t.Args, o.Args)
}

func equalRef(a, b *TypeRef) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(*b)
}

// EqualTypes compares two ordered type lists element by element.
func EqualTypes(a, b []TypeRef) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

// String renders the type as Go source.
func (t TypeRef) String() string {
	var b strings.Builder

	t.write(&b)

	return b.String()
}

func (t TypeRef) write(b *strings.Builder) {
	switch t.Kind {
	case TypeBasic, TypeFunc, TypeInterface, TypeStruct:
		b.WriteString(t.Name)
	case TypeNamed:
		if t.Package != "" {
			b.WriteString(t.Package)
			b.WriteByte('.')
		}

		b.WriteString(t.Name)

		if len(t.Args) > 0 {
			b.WriteByte('[')

			for i, arg := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}

				arg.write(b)
			}

			b.WriteByte(']')
		}
	case TypePointer:
		b.WriteByte('*')
		t.Elem.write(b)
	case TypeSlice:
		b.WriteString("[]")
		t.Elem.write(b)
	case TypeArray:
		b.WriteString("[" + t.Len + "]")
		t.Elem.write(b)
	case TypeMap:
		b.WriteString("map[")
		t.Key.write(b)
		b.WriteByte(']')
		t.Elem.write(b)
	case TypeChan:
		b.WriteString(t.Name)
		b.WriteByte(' ')
		t.Elem.write(b)
	case TypeEllipsis:
		b.WriteString("...")
		t.Elem.write(b)
	case TypeInvalid:
		b.WriteString("<invalid>")
	}
}
