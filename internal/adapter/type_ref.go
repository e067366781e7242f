package adapter

import (
	"go/ast"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

var predeclared = map[string]bool{
	"bool": true, "byte": true, "rune": true, "string": true, "error": true, "any": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
	"comparable": true,
}

func isPredeclared(name string) bool {
	return predeclared[name]
}

// TypeRefOf converts a type expression into its structural descriptor.
func TypeRefOf(expr ast.Expr) m.TypeRef {
	switch t := expr.(type) {
	case *ast.Ident:
		if isPredeclared(t.Name) {
			return m.Basic(t.Name)
		}

		return m.Named("", t.Name)
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			return m.Named(pkg.Name, t.Sel.Name)
		}
	case *ast.ParenExpr:
		return TypeRefOf(t.X)
	case *ast.StarExpr:
		return m.PointerTo(TypeRefOf(t.X))
	case *ast.ArrayType:
		if t.Len == nil {
			return m.SliceOf(TypeRefOf(t.Elt))
		}

		return m.ArrayOf(exprText(t.Len), TypeRefOf(t.Elt))
	case *ast.MapType:
		return m.MapOf(TypeRefOf(t.Key), TypeRefOf(t.Value))
	case *ast.Ellipsis:
		return m.VariadicOf(TypeRefOf(t.Elt))
	case *ast.ChanType:
		dir := "chan"

		switch t.Dir {
		case ast.RECV:
			dir = "<-chan"
		case ast.SEND:
			dir = "chan<-"
		}

		elem := TypeRefOf(t.Value)

		return m.TypeRef{Kind: m.TypeChan, Name: dir, Elem: &elem}
	case *ast.IndexExpr:
		base := TypeRefOf(t.X)
		base.Args = []m.TypeRef{TypeRefOf(t.Index)}

		return base
	case *ast.IndexListExpr:
		base := TypeRefOf(t.X)
		for _, index := range t.Indices {
			base.Args = append(base.Args, TypeRefOf(index))
		}

		return base
	case *ast.FuncType:
		return m.Literal(m.TypeFunc, exprText(t))
	case *ast.InterfaceType:
		return m.Literal(m.TypeInterface, exprText(t))
	case *ast.StructType:
		return m.Literal(m.TypeStruct, exprText(t))
	}

	return m.TypeRef{}
}
