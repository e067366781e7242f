package domain

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

// Renderer turns the syntheses of a package into Go source.
type Renderer interface {
	// Render returns nil source when nothing needs to be generated. When
	// formatting fails the unformatted source is returned with the error.
	Render(pkg *m.Package, syntheses []m.Synthesis) ([]byte, []m.Problem, error)
}

type renderer struct{}

// NewRenderer creates a Renderer producing gofmt-ed source.
func NewRenderer() Renderer {
	return renderer{}
}

type fileData struct {
	Marker  string
	Package string
	Vars    []varData
	Classes []classData
}

type varData struct {
	Name string
	Init string
}

type classData struct {
	Name    string
	Getters []getterData
	Ctors   []ctorData
}

type getterData struct {
	Recv  string
	Name  string
	Type  string
	Field string
}

type ctorData struct {
	Name        string
	Params      string
	Local       string
	Assigns     []string
	Annotations []string
}

var fileTemplate = template.Must(template.New("intlcode").Parse(`// {{.Marker}}

package {{.Package}}
{{if .Vars}}
var (
{{- range .Vars}}
	{{.Name}} = {{.Init}}
{{- end}}
)
{{end}}
{{- range .Classes}}{{$class := .Name}}
{{- range .Getters}}
// {{.Name}} returns the {{.Field}} of the {{$class}}.
func ({{.Recv}} {{$class}}) {{.Name}}() {{.Type}} {
	return {{.Recv}}.{{.Field}}
}
{{end}}
{{- range .Ctors}}
// {{.Name}} creates a {{$class}}.
{{- if .Annotations}}
//
{{- range .Annotations}}
// {{.}}
{{- end}}
{{- end}}
func {{.Name}}({{.Params}}) {{$class}} {
	var {{.Local}} {{$class}}
{{- range .Assigns}}
	{{.}}
{{- end}}
	return {{.Local}}
}
{{end}}
{{- end}}`))

// namer hands out package-level identifiers that do not collide with
// declarations or with each other.
type namer struct {
	taken map[string]bool
}

func newNamer(pkg *m.Package) *namer {
	taken := make(map[string]bool, len(pkg.Identifiers))
	for name := range pkg.Identifiers {
		taken[name] = true
	}

	return &namer{taken: taken}
}

func (n *namer) claim(name string) bool {
	if n.taken[name] {
		return false
	}

	n.taken[name] = true

	return true
}

func (n *namer) unique(base string) string {
	name := base
	for i := 2; n.taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}

	n.taken[name] = true

	return name
}

func (r renderer) Render(pkg *m.Package, syntheses []m.Synthesis) ([]byte, []m.Problem, error) {
	names := newNamer(pkg)
	data := fileData{Marker: m.GeneratedMarker, Package: pkg.Name}

	var problems []m.Problem

	for _, syn := range syntheses {
		if !syn.Valid {
			continue
		}

		sink := m.NewProblems(syn.Class)
		class := r.renderClass(syn, names, &data, sink)
		problems = append(problems, sink.Items()...)

		if len(class.Getters)+len(class.Ctors) > 0 {
			data.Classes = append(data.Classes, class)
		}
	}

	if len(data.Vars) == 0 && len(data.Classes) == 0 {
		return nil, problems, nil
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, problems, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), problems, fmt.Errorf("formatting code: %w", err)
	}

	return formatted, problems, nil
}

func (r renderer) renderClass(syn m.Synthesis, names *namer, data *fileData, sink ProblemSink) classData {
	class := syn.Class
	out := classData{Name: class.Name}
	recv := receiverName(class.Name)

	// Constructor names are settled first so resource fields can call them.
	ctorNames := make(map[int]string)

	for _, method := range syn.Methods {
		if !method.IsConstructor {
			continue
		}

		name := names.unique(constructorBase(class.Name, len(method.Params)))
		ctorNames[len(method.Params)] = name
		out.Ctors = append(out.Ctors, renderConstructor(name, recv, method))
	}

	for _, field := range syn.Fields {
		if !token.IsIdentifier(field.Name) {
			sink.AddError(fmt.Sprintf("resource key '%s' is not a valid Go identifier", field.Name))
			continue
		}

		if !names.claim(field.Name) {
			sink.AddError(fmt.Sprintf("identifier '%s' is already declared in package %s", field.Name, class.Package))
			continue
		}

		data.Vars = append(data.Vars, varData{
			Name: field.Name,
			Init: renderCall(field.Initializer, ctorNames),
		})
	}

	for _, method := range syn.Methods {
		if method.IsConstructor {
			continue
		}

		if memberDeclared(class, method.Name) {
			sink.AddError(fmt.Sprintf("identifier '%s' is already declared on %s", method.Name, class.Name))
			continue
		}

		out.Getters = append(out.Getters, getterData{
			Recv:  recv,
			Name:  method.Name,
			Type:  method.ReturnType.String(),
			Field: method.ReturnField,
		})
	}

	return out
}

func renderConstructor(name, recv string, method m.SyntheticMethod) ctorData {
	params := make([]string, 0, len(method.Params))
	used := make(map[string]bool, len(method.Params))

	for _, p := range method.Params {
		params = append(params, p.Name+" "+p.Type.String())
		used[p.Name] = true
	}

	local := recv
	for _, candidate := range []string{recv, "v", "obj", "inst"} {
		if !used[candidate] {
			local = candidate
			break
		}
	}

	assigns := make([]string, 0, len(method.Body))
	for _, st := range method.Body {
		assigns = append(assigns, local+"."+st.Field+" = "+st.Param)
	}

	return ctorData{
		Name:        name,
		Params:      strings.Join(params, ", "),
		Local:       local,
		Assigns:     assigns,
		Annotations: method.Annotations,
	}
}

func renderCall(call *m.ConstructorCall, ctorNames map[int]string) string {
	args := make([]string, 0, len(call.Args))
	for _, arg := range call.Args {
		args = append(args, strconv.Quote(arg))
	}

	target := call.Target
	if target == "" {
		target = ctorNames[len(call.Args)]
	}

	expr := target + "(" + strings.Join(args, ", ") + ")"
	if call.Pointer {
		return "*" + expr
	}

	return expr
}

func constructorBase(class string, arity int) string {
	if arity == 0 {
		return "new" + class
	}

	return "new" + class + "Of"
}

// memberDeclared reports whether a getter named name would clash with a
// field or a method declared directly on class.
func memberDeclared(class *m.Class, name string) bool {
	if _, ok := class.Field(name); ok {
		return true
	}

	for _, method := range class.Methods {
		if method.Name == name && !method.Inherited {
			return true
		}
	}

	return false
}

// receiverName is the lowercased first letter of class, or "v" when class
// does not start with a letter.
func receiverName(class string) string {
	r, _ := utf8.DecodeRuneInString(class)
	if !unicode.IsLetter(r) {
		return "v"
	}

	return string(unicode.ToLower(r))
}
