package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strconv"
	"strings"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

// valueAttribute names the attribute holding positional values, so that
// @ConstructorProperties{"code", "key"} can be read as value.
const valueAttribute = "value"

// ParseAnnotations extracts the annotations of a doc comment. An annotation
// starts on a line whose first non-blank character is '@' and continues over
// the following lines until its braces balance. The syntax after '@' is a
// Go composite literal, an identifier or a qualified identifier:
//
//	@InternationlCode{Path: "codes.properties", OnConstructor: {"@Deprecated"}}
//	@Tolerate
//
// Lines that fail to parse are reported in the returned error; annotations
// parsed from the other lines are still returned.
func ParseAnnotations(fset *token.FileSet, doc *ast.CommentGroup) ([]m.Annotation, error) {
	if doc == nil {
		return nil, nil
	}

	lines := docLines(doc)

	var (
		annotations []m.Annotation
		errs        []error
	)

	for i := 0; i < len(lines); i++ {
		text := strings.TrimSpace(lines[i].text)
		if !strings.HasPrefix(text, "@") {
			continue
		}

		start := lines[i].pos
		depth := braceDepth(text)

		for depth > 0 && i+1 < len(lines) {
			i++
			next := strings.TrimSpace(lines[i].text)
			text += " " + next
			depth += braceDepth(next)
		}

		anno, err := ParseAnnotation(text)
		if fset != nil {
			anno.Position = fset.Position(start)
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", anno.Position, err))
			continue
		}

		annotations = append(annotations, anno)
	}

	return annotations, errors.Join(errs...)
}

// ParseAnnotation parses a single annotation, with or without its leading '@'.
func ParseAnnotation(text string) (m.Annotation, error) {
	src := strings.TrimPrefix(strings.TrimSpace(text), "@")

	expr, err := parser.ParseExpr(src)
	if err != nil {
		return m.Annotation{}, fmt.Errorf("invalid annotation %q: %w", text, err)
	}

	anno := m.Annotation{Text: "@" + exprText(expr)}

	var typeExpr ast.Expr = expr

	lit, isLit := expr.(*ast.CompositeLit)
	if isLit {
		typeExpr = lit.Type
	}

	switch t := typeExpr.(type) {
	case *ast.Ident:
		anno.Name = t.Name
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return m.Annotation{}, fmt.Errorf("invalid annotation type in %q", text)
		}

		anno.Package = pkg.Name
		anno.Name = t.Sel.Name
	default:
		return m.Annotation{}, fmt.Errorf("invalid annotation type in %q", text)
	}

	if !isLit {
		return anno, nil
	}

	attrs, err := parseAttributes(lit.Elts)
	if err != nil {
		return m.Annotation{}, fmt.Errorf("annotation %s: %w", anno.QualifiedName(), err)
	}

	anno.Attributes = attrs

	return anno, nil
}

func parseAttributes(elts []ast.Expr) ([]m.Attribute, error) {
	if len(elts) == 0 {
		return nil, nil
	}

	if _, keyed := elts[0].(*ast.KeyValueExpr); !keyed {
		values, err := parseValues(elts)
		if err != nil {
			return nil, err
		}

		if len(values) == 1 {
			return []m.Attribute{{Name: valueAttribute, Value: values[0]}}, nil
		}

		return []m.Attribute{{Name: valueAttribute, Value: m.Value{Kind: m.ValueList, List: values}}}, nil
	}

	attrs := make([]m.Attribute, 0, len(elts))

	for _, elt := range elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			return nil, errors.New("mixture of named and positional values")
		}

		key, ok := kv.Key.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("attribute name must be an identifier, got %s", exprText(kv.Key))
		}

		value, err := parseValue(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", key.Name, err)
		}

		attrs = append(attrs, m.Attribute{Name: key.Name, Value: value})
	}

	return attrs, nil
}

func parseValues(elts []ast.Expr) ([]m.Value, error) {
	values := make([]m.Value, 0, len(elts))

	for _, elt := range elts {
		if _, keyed := elt.(*ast.KeyValueExpr); keyed {
			return nil, errors.New("mixture of named and positional values")
		}

		value, err := parseValue(elt)
		if err != nil {
			return nil, err
		}

		values = append(values, value)
	}

	return values, nil
}

func parseValue(expr ast.Expr) (m.Value, error) {
	text := exprText(expr)

	switch e := expr.(type) {
	case *ast.BasicLit:
		if e.Kind == token.STRING {
			s, err := strconv.Unquote(e.Value)
			if err != nil {
				return m.Value{}, err
			}

			return m.Value{Kind: m.ValueString, String: s, Text: text}, nil
		}

		return m.Value{Kind: m.ValueNumber, Text: text}, nil
	case *ast.UnaryExpr:
		if _, ok := e.X.(*ast.BasicLit); ok && (e.Op == token.SUB || e.Op == token.ADD) {
			return m.Value{Kind: m.ValueNumber, Text: text}, nil
		}
	case *ast.Ident:
		switch e.Name {
		case "true":
			return m.Value{Kind: m.ValueBool, Bool: true, Text: text}, nil
		case "false":
			return m.Value{Kind: m.ValueBool, Text: text}, nil
		}

		return m.Value{Kind: m.ValueIdent, Text: text}, nil
	case *ast.SelectorExpr:
		return m.Value{Kind: m.ValueIdent, Text: text}, nil
	case *ast.CompositeLit:
		if e.Type != nil {
			return m.Value{Kind: m.ValueAnnotation, Text: "@" + text}, nil
		}

		values, err := parseValues(e.Elts)
		if err != nil {
			return m.Value{}, err
		}

		return m.Value{Kind: m.ValueList, List: values, Text: text}, nil
	}

	return m.Value{}, fmt.Errorf("unsupported value %s", text)
}

type docLine struct {
	text string
	pos  token.Pos
}

func docLines(doc *ast.CommentGroup) []docLine {
	var lines []docLine

	for _, c := range doc.List {
		if strings.HasPrefix(c.Text, "//") {
			lines = append(lines, docLine{text: c.Text[2:], pos: c.Slash})
			continue
		}

		body := strings.TrimSuffix(strings.TrimPrefix(c.Text, "/*"), "*/")
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "*")
			lines = append(lines, docLine{text: line, pos: c.Slash})
		}
	}

	return lines
}

// braceDepth returns the brace balance of s, ignoring braces inside string
// and rune literals.
func braceDepth(s string) int {
	depth := 0
	quote := byte(0)

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case quote != 0:
			if c == '\\' && quote != '`' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '`' || c == '\'':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
	}

	return depth
}

func exprText(expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), expr); err != nil {
		return ""
	}

	return buf.String()
}
