package model

// Visibility of a synthesized member. Private members render unexported,
// public members exported.
type Visibility int

// Available Visibility values.
const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
)

func (v Visibility) String() string {
	if v == VisibilityPublic {
		return "public"
	}

	return "private"
}

// Modifiers of a synthesized member.
type Modifiers struct {
	Visibility Visibility
	Static     bool
	Final      bool
}

// ConstructorCall is the initializer of a resource-derived field: a call to
// the class's two-argument constructor with two string literals.
type ConstructorCall struct {
	Class string
	// Target is the Go identifier of a user-declared constructor. Empty means
	// the synthesized two-argument constructor.
	Target  string
	Pointer bool
	Args    []string
}

// SyntheticField is a generated field descriptor.
type SyntheticField struct {
	Name        string
	Type        TypeRef
	Modifiers   Modifiers
	Initializer *ConstructorCall
	Origin      Annotation
}

// Statement assigns a constructor parameter to a field.
type Statement struct {
	Field string
	Param string
}

// SyntheticMethod is a generated getter or constructor descriptor.
type SyntheticMethod struct {
	Name          string
	Modifiers     Modifiers
	Params        []Param
	ReturnType    TypeRef
	ReturnField   string      // getters return this field
	Body          []Statement // constructors assign these
	IsConstructor bool
	Annotations   []string
	Origin        Annotation
}

// Signature returns the name and ordered parameter types.
func (m SyntheticMethod) Signature() Signature {
	types := make([]TypeRef, 0, len(m.Params))
	for _, p := range m.Params {
		types = append(types, p.Type)
	}

	return Signature{Name: m.Name, Params: types}
}

// Usage classifies how a field is accessed by synthesized code.
type Usage int

// Available Usage values.
const (
	UsageNone Usage = iota
	UsageRead
	UsageWrite
	UsageReadWrite
)

// Merge combines the classifications of two passes.
func (u Usage) Merge(o Usage) Usage {
	return u | o
}

func (u Usage) String() string {
	switch u {
	case UsageRead:
		return "READ"
	case UsageWrite:
		return "WRITE"
	case UsageReadWrite:
		return "READ_WRITE"
	default:
		return "NONE"
	}
}
