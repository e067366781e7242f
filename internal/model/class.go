package model

import "go/token"

// Kind classifies a type declaration.
type Kind int

// Available Kind values.
const (
	// KindClass is a struct type.
	KindClass Kind = iota
	// KindInterface is an interface type.
	KindInterface
	// KindEnum is a named basic type, Go's enumeration idiom.
	KindEnum
	// KindAnnotation is a type marked with @Annotation.
	KindAnnotation
	// KindOther covers func, map, slice, array and chan types.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindAnnotation:
		return "annotation"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Class is an annotated type declaration together with the members the user
// declared for it. Synthesis reads a Class and never mutates it.
type Class struct {
	Name        string
	Kind        Kind
	Package     string
	Dir         Path
	File        Path
	Position    token.Position
	ProjectRoot Path

	Fields       []Field
	Methods      []Method // declared and promoted from embedded types
	Constructors []Method
	Annotations  []Annotation
}

// Type returns the class as a local named type.
func (c *Class) Type() TypeRef {
	return Named("", c.Name)
}

// Annotation returns the first annotation with the given name, ignoring the
// package qualifier.
func (c *Class) Annotation(name string) (Annotation, bool) {
	for _, anno := range c.Annotations {
		if anno.Name == name {
			return anno, true
		}
	}

	return Annotation{}, false
}

// Field returns the declared field with the given name.
func (c *Class) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Field is a struct field declared on a class.
type Field struct {
	Name     string
	Type     TypeRef
	Embedded bool
	Position token.Position
}

// Param is a single function parameter.
type Param struct {
	Name string
	Type TypeRef
}

// Method is a declared method or constructor function.
//
// Constructors are named after their class in Name, the way every
// constructor of a type shares one logical name; GoName is the function
// identifier in source.
type Method struct {
	Name           string
	GoName         string
	Params         []Param
	Results        []TypeRef
	IsConstructor  bool
	ReturnsPointer bool
	Inherited      bool
	Tolerated      bool
	Annotations    []Annotation
	Position       token.Position
}

// ParamTypes returns the ordered parameter types.
func (m Method) ParamTypes() []TypeRef {
	types := make([]TypeRef, 0, len(m.Params))
	for _, p := range m.Params {
		types = append(types, p.Type)
	}

	return types
}

// Signature is a name with its ordered parameter types.
type Signature struct {
	Name   string
	Params []TypeRef
}

// Equal reports whether both signatures have the same name and parameter types.
func (s Signature) Equal(o Signature) bool {
	return s.Name == o.Name && EqualTypes(s.Params, o.Params)
}
