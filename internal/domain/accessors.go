package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"intlcode.dev/pkg/intlcode/internal/adapter"
	m "intlcode.dev/pkg/intlcode/internal/model"
)

// canonicalFields are the instance fields every annotated class carries.
var canonicalFields = []string{"code", "key"}

const (
	accessorsAnnotation   = "Accessors"
	attrPrefix            = "prefix"
	constructorProperties = "ConstructorProperties"
)

// AccessorSynthesizer produces the getters and the two private constructors
// of an annotated class.
type AccessorSynthesizer struct {
	config adapter.ConfigStore
}

// NewAccessorSynthesizer creates an AccessorSynthesizer reading constructor
// and prefix settings from config.
func NewAccessorSynthesizer(config adapter.ConfigStore) *AccessorSynthesizer {
	return &AccessorSynthesizer{config: config}
}

// Synthesize returns the missing getters followed by the no-argument and the
// (code, key) constructors. A constructor whose signature is already
// declared is reported to sink and left out.
func (s *AccessorSynthesizer) Synthesize(ctx context.Context, class *m.Class, anno m.Annotation, sink ProblemSink) []m.SyntheticMethod {
	needGetter := fieldsNeedingGetter(class)
	members := make([]m.SyntheticMethod, 0, len(needGetter)+2)

	for _, name := range needGetter {
		members = append(members, getter(name, anno))
	}

	prefixes := s.prefixes(ctx, class)

	for _, fields := range [][]string{nil, canonicalFields} {
		if ctor, ok := s.constructor(ctx, class, anno, fields, prefixes, sink); ok {
			members = append(members, ctor)
		}
	}

	return members
}

// CheckFieldUsage classifies field as READ when a getter is synthesized for
// it and NONE otherwise.
func (s *AccessorSynthesizer) CheckFieldUsage(field m.Field, class *m.Class, _ m.Annotation) m.Usage {
	for _, name := range fieldsNeedingGetter(class) {
		if name == field.Name {
			return m.UsageRead
		}
	}

	return m.UsageNone
}

func (s *AccessorSynthesizer) constructor(
	ctx context.Context,
	class *m.Class,
	anno m.Annotation,
	fields []string,
	prefixes []string,
	sink ProblemSink,
) (m.SyntheticMethod, bool) {
	types := instanceParamTypes(fields)

	if existing, ok := FindBySignature(class.Constructors, class.Name, types); ok {
		sink.AddError(duplicateConstructorMessage(len(fields)), m.Fix{
			Kind:     m.FixSafeDelete,
			Target:   existing.GoName,
			Position: existing.Position,
		})

		return m.SyntheticMethod{}, false
	}

	params := make([]m.Param, 0, len(fields))
	body := make([]m.Statement, 0, len(fields))

	for _, field := range fields {
		param := RemovePrefix(field, prefixes)
		params = append(params, m.Param{Name: param, Type: m.StringType})
		body = append(body, m.Statement{Field: field, Param: param})
	}

	var annotations []string

	if len(params) > 0 {
		add := s.config.Bool(ctx, class, adapter.KeyAddConstructorProperties)
		suppress := s.config.Bool(ctx, class, adapter.KeySuppressConstructorProperties)

		if add || !suppress {
			annotations = append(annotations, constructorPropertiesText(params))
		}
	}

	annotations = append(annotations, anno.StringList(attrOnConstructor)...)

	return m.SyntheticMethod{
		Name:          class.Name,
		Modifiers:     m.Modifiers{Visibility: m.VisibilityPrivate},
		Params:        params,
		ReturnType:    class.Type(),
		Body:          body,
		IsConstructor: true,
		Annotations:   annotations,
		Origin:        anno,
	}, true
}

// prefixes returns the field prefixes of class. An @Accessors annotation on
// the class wins over configuration.
func (s *AccessorSynthesizer) prefixes(ctx context.Context, class *m.Class) []string {
	if accessors, ok := class.Annotation(accessorsAnnotation); ok {
		if _, set := accessors.Lookup(attrPrefix); set {
			return accessors.StringList(attrPrefix)
		}

		if _, set := accessors.Lookup("value"); set {
			return accessors.StringList("value")
		}
	}

	return s.config.Strings(ctx, class, adapter.KeyAccessorsPrefix)
}

func duplicateConstructorMessage(arity int) string {
	if arity == 0 {
		return "Constructor without parameters is already defined"
	}

	return fmt.Sprintf("Constructor with %d parameters is already defined", arity)
}

func constructorPropertiesText(params []m.Param) string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, strconv.Quote(p.Name))
	}

	return "@" + constructorProperties + "{" + strings.Join(names, ", ") + "}"
}

// fieldsNeedingGetter returns the canonical fields whose getter is neither
// declared nor inherited. A promoted method marked @Tolerate does not count,
// since a generated getter shadows it; one declared on the type itself does.
func fieldsNeedingGetter(class *m.Class) []string {
	methods := make([]m.Method, 0, len(class.Methods))
	for _, method := range class.Methods {
		if !(method.Tolerated && method.Inherited) {
			methods = append(methods, method)
		}
	}

	var out []string

	for _, field := range canonicalFields {
		if _, ok := FindBySignature(methods, GetterName(field), nil); !ok {
			out = append(out, field)
		}
	}

	return out
}

func getter(field string, anno m.Annotation) m.SyntheticMethod {
	return m.SyntheticMethod{
		Name:        GetterName(field),
		Modifiers:   m.Modifiers{Visibility: m.VisibilityPublic},
		ReturnType:  m.StringType,
		ReturnField: field,
		Origin:      anno,
	}
}

// GetterName returns the accessor name of a field: "code" becomes "GetCode".
func GetterName(field string) string {
	return "Get" + m.Capitalize(field)
}

func instanceParamTypes(fields []string) []m.TypeRef {
	types := make([]m.TypeRef, 0, len(fields))
	for range fields {
		types = append(types, m.StringType)
	}

	return types
}

// RemovePrefix strips the first applicable prefix from name and
// decapitalizes the rest. A prefix applies when name is longer than it,
// starts with it and, for a prefix ending in a letter, continues with a
// character that is not lowercase. An empty prefix matches without
// changing the name.
func RemovePrefix(name string, prefixes []string) string {
	for _, prefix := range prefixes {
		if !prefixApplies(name, prefix) {
			continue
		}

		if prefix == "" {
			return name
		}

		return m.Decapitalize(name[len(prefix):])
	}

	return name
}

func prefixApplies(name, prefix string) bool {
	if prefix == "" {
		return true
	}

	if len(name) <= len(prefix) || !strings.HasPrefix(name, prefix) {
		return false
	}

	last, _ := utf8.DecodeLastRuneInString(prefix)
	if !unicode.IsLetter(last) {
		return true
	}

	next, _ := utf8.DecodeRuneInString(name[len(prefix):])

	return !unicode.IsLower(next)
}
