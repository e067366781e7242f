package adapter

import (
	"context"
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

const (
	annotationMarker = "Annotation"
	tolerateMarker   = "Tolerate"
)

// GoFileAdapter encapsulates Go-specific parsing so the domain layer can
// focus on synthesis rules while delegating source details to an
// infrastructure component.
type GoFileAdapter interface {
	// Parse builds an AST using the provided file set and optional source bytes.
	Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// LoadPackage parses the buildable, non-test Go files of dir and returns
	// every type declared there as a Class. Files written by intlcode are
	// skipped. A directory without Go files yields a nil package.
	LoadPackage(ctx context.Context, dir m.Path, projectRoot m.Path) (*m.Package, error)
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct {
	fs SourceFSAdapter
}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter(fs SourceFSAdapter) *LocalGoFileAdapter {
	return &LocalGoFileAdapter{fs: fs}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// LoadPackage builds the class model of a package directory.
func (a *LocalGoFileAdapter) LoadPackage(ctx context.Context, dir m.Path, projectRoot m.Path) (*m.Package, error) {
	paths, err := a.goFiles(dir)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	pkg := &m.Package{
		Dir:         dir,
		Identifiers: map[string]token.Position{},
		ProjectRoot: projectRoot,
	}

	idx := newDeclIndex()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := a.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		file, err := a.Parse(fset, string(path), src)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		if isGeneratedFile(file) {
			slog.Debug("Skipping generated file", "path", path)
			continue
		}

		if pkg.Name == "" {
			pkg.Name = file.Name.Name
		} else if pkg.Name != file.Name.Name {
			return nil, fmt.Errorf("%s: found packages %s and %s", dir, pkg.Name, file.Name.Name)
		}

		pkg.Files = append(pkg.Files, path)
		idx.add(fset, file, pkg.Identifiers)
	}

	if pkg.Name == "" {
		return nil, nil
	}

	for _, name := range idx.order {
		pkg.Classes = append(pkg.Classes, idx.buildClass(fset, name, pkg))
	}

	return pkg, nil
}

func (a *LocalGoFileAdapter) goFiles(dir m.Path) ([]m.Path, error) {
	var paths []m.Path

	err := a.fs.Walk(dir, false, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}

		match, err := build.Default.MatchFile(filepath.Dir(path), filepath.Base(path))
		if err != nil {
			return err
		}

		if match && !strings.HasSuffix(path, "_test.go") {
			paths = append(paths, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list go files in %s: %w", dir, err)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	return paths, nil
}

func isGeneratedFile(file *ast.File) bool {
	for _, group := range file.Comments {
		if group.Pos() >= file.Package {
			break
		}

		if strings.Contains(group.Text(), m.GeneratedMarker) {
			return true
		}
	}

	return false
}

type typeDecl struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
	file string
}

// declIndex gathers the declarations of all files of one package.
type declIndex struct {
	types   map[string]typeDecl
	order   []string
	methods map[string][]*ast.FuncDecl
	funcs   []*ast.FuncDecl
}

func newDeclIndex() *declIndex {
	return &declIndex{
		types:   map[string]typeDecl{},
		methods: map[string][]*ast.FuncDecl{},
	}
}

func (idx *declIndex) add(fset *token.FileSet, file *ast.File, identifiers map[string]token.Position) {
	filename := fset.Position(file.Package).Filename

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					doc := s.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}

					idx.types[s.Name.Name] = typeDecl{spec: s, doc: doc, file: filename}
					idx.order = append(idx.order, s.Name.Name)
					identifiers[s.Name.Name] = fset.Position(s.Name.Pos())
				case *ast.ValueSpec:
					for _, name := range s.Names {
						if name.Name != "_" {
							identifiers[name.Name] = fset.Position(name.Pos())
						}
					}
				}
			}
		case *ast.FuncDecl:
			if d.Recv == nil || len(d.Recv.List) == 0 {
				idx.funcs = append(idx.funcs, d)

				if d.Name.Name != "init" && d.Name.Name != "_" {
					identifiers[d.Name.Name] = fset.Position(d.Name.Pos())
				}

				continue
			}

			if recv := receiverName(d.Recv.List[0].Type); recv != "" {
				idx.methods[recv] = append(idx.methods[recv], d)
			}
		}
	}
}

func (idx *declIndex) buildClass(fset *token.FileSet, name string, pkg *m.Package) *m.Class {
	decl := idx.types[name]

	annotations, err := ParseAnnotations(fset, decl.doc)
	if err != nil {
		slog.Debug("Ignoring malformed annotations", "type", name, "error", err)
	}

	class := &m.Class{
		Name:        name,
		Package:     pkg.Name,
		Dir:         pkg.Dir,
		File:        m.Path(decl.file),
		Position:    fset.Position(decl.spec.Name.Pos()),
		ProjectRoot: pkg.ProjectRoot,
		Annotations: annotations,
	}

	class.Kind = idx.kindOf(name, annotations)

	if st, ok := idx.structOf(name); ok {
		class.Fields = structFields(fset, st)
	}

	class.Methods = idx.collectMethods(fset, name)
	class.Constructors = idx.collectConstructors(fset, name)

	return class
}

func (idx *declIndex) kindOf(name string, annotations []m.Annotation) m.Kind {
	for _, anno := range annotations {
		if anno.Name == annotationMarker {
			return m.KindAnnotation
		}
	}

	spec := idx.types[name].spec
	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return m.KindOther
	}

	seen := map[string]bool{}
	expr := spec.Type

	for {
		switch t := expr.(type) {
		case *ast.StructType:
			return m.KindClass
		case *ast.InterfaceType:
			return m.KindInterface
		case *ast.ParenExpr:
			expr = t.X
			continue
		case *ast.Ident:
			if isPredeclared(t.Name) && t.Name != "error" && t.Name != "any" {
				return m.KindEnum
			}

			next, ok := idx.types[t.Name]
			if !ok || seen[t.Name] {
				return m.KindOther
			}

			seen[t.Name] = true
			expr = next.spec.Type

			continue
		}

		return m.KindOther
	}
}

// structOf resolves name to its struct type through local type definitions.
func (idx *declIndex) structOf(name string) (*ast.StructType, bool) {
	seen := map[string]bool{}

	for !seen[name] {
		seen[name] = true

		decl, ok := idx.types[name]
		if !ok {
			return nil, false
		}

		switch t := decl.spec.Type.(type) {
		case *ast.StructType:
			return t, true
		case *ast.Ident:
			name = t.Name
		default:
			return nil, false
		}
	}

	return nil, false
}

// collectMethods returns the methods declared on name followed by those
// promoted from embedded local struct types. A declared method shadows a
// promoted one with the same name.
func (idx *declIndex) collectMethods(fset *token.FileSet, name string) []m.Method {
	var methods []m.Method

	seen := map[string]bool{}
	visited := map[string]bool{}
	queue := []string{name}
	inherited := false

	for len(queue) > 0 {
		level := queue
		queue = nil

		var found []m.Method

		for _, typeName := range level {
			if visited[typeName] {
				continue
			}

			visited[typeName] = true

			for _, fn := range idx.methods[typeName] {
				if seen[fn.Name.Name] {
					continue
				}

				method := funcMethod(fset, fn)
				method.Inherited = inherited
				found = append(found, method)
			}

			if st, ok := idx.structOf(typeName); ok {
				for _, field := range st.Fields.List {
					if len(field.Names) == 0 {
						if embedded := receiverName(field.Type); embedded != "" {
							queue = append(queue, embedded)
						}
					}
				}
			}
		}

		for _, method := range found {
			seen[method.Name] = true
		}

		methods = append(methods, found...)
		inherited = true
	}

	return methods
}

func (idx *declIndex) collectConstructors(fset *token.FileSet, name string) []m.Method {
	var ctors []m.Method

	for _, fn := range idx.funcs {
		if !isConstructorName(fn.Name.Name, name) || fn.Type.TypeParams != nil {
			continue
		}

		results := fieldTypes(fn.Type.Results)
		if len(results) != 1 {
			continue
		}

		local := m.Named("", name)

		switch {
		case results[0].Equal(local):
		case results[0].Equal(m.PointerTo(local)):
		default:
			continue
		}

		method := funcMethod(fset, fn)
		method.Name = name
		method.IsConstructor = true
		method.ReturnsPointer = results[0].Kind == m.TypePointer
		ctors = append(ctors, method)
	}

	return ctors
}

func isConstructorName(fn, class string) bool {
	for _, prefix := range []string{"new", "New"} {
		if strings.HasPrefix(fn, prefix+class) || strings.HasPrefix(fn, prefix+m.Capitalize(class)) {
			return true
		}
	}

	return false
}

func funcMethod(fset *token.FileSet, fn *ast.FuncDecl) m.Method {
	annotations, err := ParseAnnotations(fset, fn.Doc)
	if err != nil {
		slog.Debug("Ignoring malformed annotations", "func", fn.Name.Name, "error", err)
	}

	method := m.Method{
		Name:        fn.Name.Name,
		GoName:      fn.Name.Name,
		Params:      fieldParams(fn.Type.Params),
		Results:     fieldTypes(fn.Type.Results),
		Annotations: annotations,
		Position:    fset.Position(fn.Name.Pos()),
	}

	for _, anno := range annotations {
		if anno.Name == tolerateMarker {
			method.Tolerated = true
		}
	}

	return method
}

func structFields(fset *token.FileSet, st *ast.StructType) []m.Field {
	var fields []m.Field

	for _, field := range st.Fields.List {
		typ := TypeRefOf(field.Type)

		if len(field.Names) == 0 {
			fields = append(fields, m.Field{
				Name:     receiverName(field.Type),
				Type:     typ,
				Embedded: true,
				Position: fset.Position(field.Pos()),
			})

			continue
		}

		for _, name := range field.Names {
			fields = append(fields, m.Field{Name: name.Name, Type: typ, Position: fset.Position(name.Pos())})
		}
	}

	return fields
}

func fieldParams(list *ast.FieldList) []m.Param {
	if list == nil {
		return nil
	}

	var params []m.Param

	for _, field := range list.List {
		typ := TypeRefOf(field.Type)

		if len(field.Names) == 0 {
			params = append(params, m.Param{Type: typ})
			continue
		}

		for _, name := range field.Names {
			params = append(params, m.Param{Name: name.Name, Type: typ})
		}
	}

	return params
}

func fieldTypes(list *ast.FieldList) []m.TypeRef {
	params := fieldParams(list)

	types := make([]m.TypeRef, 0, len(params))
	for _, p := range params {
		types = append(types, p.Type)
	}

	return types
}

// receiverName returns the base type name of a receiver or embedded field
// expression: T, *T, T[P] and *T[P] all yield T. Qualified types yield "".
func receiverName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.Ident:
			return t.Name
		case *ast.StarExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		default:
			return ""
		}
	}
}
