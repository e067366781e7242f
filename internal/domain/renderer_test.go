package domain

import (
	"context"
	"go/token"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

func billingPackage(class *m.Class, identifiers ...string) *m.Package {
	ids := map[string]token.Position{class.Name: {}}
	for _, id := range identifiers {
		ids[id] = token.Position{}
	}

	return &m.Package{Name: "billing", Identifiers: ids, Classes: []*m.Class{class}}
}

func synthesize(t *testing.T, class *m.Class) m.Synthesis {
	t.Helper()

	result, ok := newTestSynthesizer(fakeConfig{}).Synthesize(context.Background(), class)
	require.True(t, ok)

	return result
}

const wantBilling = `// Code generated by intlcode. DO NOT EDIT.

package billing

var (
	code000 = newResultCodeOf("000000", "Success")
	warn001 = newResultCodeOf("000000", "Low \"balance\"")
)

// GetCode returns the code of the ResultCode.
func (r ResultCode) GetCode() string {
	return r.code
}

// GetKey returns the key of the ResultCode.
func (r ResultCode) GetKey() string {
	return r.key
}

// newResultCode creates a ResultCode.
func newResultCode() ResultCode {
	var r ResultCode
	return r
}

// newResultCodeOf creates a ResultCode.
//
// @ConstructorProperties{"code", "key"}
func newResultCodeOf(code string, key string) ResultCode {
	var r ResultCode
	r.code = code
	r.key = key
	return r
}
`

func TestRenderer_Render(t *testing.T) {
	root := t.TempDir()
	writeResource(t, root, "billing.properties", "code000=000000,Success\nwarn001=Low \"balance\"\n")

	class := resultCodeClass(root, marker("billing.properties"))

	src, problems, err := NewRenderer().Render(billingPackage(class), []m.Synthesis{synthesize(t, class)})
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Equal(t, wantBilling, string(src))
}

func TestRenderer_NothingToRender(t *testing.T) {
	class := resultCodeClass(t.TempDir(), marker("missing.properties"))
	class.Kind = m.KindInterface

	src, problems, err := NewRenderer().Render(billingPackage(class), []m.Synthesis{synthesize(t, class)})
	require.NoError(t, err)
	assert.Nil(t, src)
	assert.Empty(t, problems)
}

func TestRenderer_UserConstructor(t *testing.T) {
	root := t.TempDir()
	writeResource(t, root, "billing.properties", "code000=000000,Success\n")

	class := resultCodeClass(root, marker("billing.properties"))
	class.Constructors = []m.Method{userConstructor("NewResultCode", true, stringParams("code", "key")...)}

	src, _, err := NewRenderer().Render(billingPackage(class, "NewResultCode"), []m.Synthesis{synthesize(t, class)})
	require.NoError(t, err)

	text := string(src)
	assert.Contains(t, text, `code000 = *NewResultCode("000000", "Success")`)
	assert.Contains(t, text, "func newResultCode() ResultCode")
	assert.NotContains(t, text, "newResultCodeOf")
}

func TestRenderer_ConstructorNameTaken(t *testing.T) {
	class := resultCodeClass(t.TempDir(), marker("missing.properties"))

	src, _, err := NewRenderer().Render(billingPackage(class, "newResultCode"), []m.Synthesis{synthesize(t, class)})
	require.NoError(t, err)

	text := string(src)
	assert.Contains(t, text, "func newResultCode2() ResultCode")
	assert.Contains(t, text, "func newResultCodeOf(code string, key string) ResultCode")
}

func TestRenderer_Collisions(t *testing.T) {
	root := t.TempDir()
	writeResource(t, root, "billing.properties", "code000=000000,Success\ndefault=1,Default\ncode.001=1,Dotted\nok001=2,Fine\n")

	class := resultCodeClass(root, marker("billing.properties"))
	class.Methods = []m.Method{{Name: "GetKey", GoName: "GetKey", Params: stringParams("locale")}}

	src, problems, err := NewRenderer().Render(billingPackage(class, "code000"), []m.Synthesis{synthesize(t, class)})
	require.NoError(t, err)

	messages := make([]string, 0, len(problems))
	for _, p := range problems {
		assert.Equal(t, m.SeverityError, p.Severity)
		assert.Equal(t, "ResultCode", p.Class)
		messages = append(messages, p.Message)
	}

	assert.Equal(t, []string{
		"identifier 'code000' is already declared in package billing",
		"resource key 'default' is not a valid Go identifier",
		"resource key 'code.001' is not a valid Go identifier",
		"identifier 'GetKey' is already declared on ResultCode",
	}, messages)

	text := string(src)
	assert.Contains(t, text, `ok001 = newResultCodeOf("2", "Fine")`)
	assert.Contains(t, text, "func (r ResultCode) GetCode() string")
	assert.NotContains(t, text, "func (r ResultCode) GetKey() string")
}

func TestRenderer_TwoClassesShareNames(t *testing.T) {
	root := t.TempDir()
	writeResource(t, root, "billing.properties", "code000=000000,Success\n")

	first := resultCodeClass(root, marker("billing.properties"))
	second := resultCodeClass(root, marker("billing.properties"))
	second.Name = "ErrorCode"

	pkg := billingPackage(first, "ErrorCode")
	pkg.Classes = append(pkg.Classes, second)

	src, problems, err := NewRenderer().Render(pkg, []m.Synthesis{synthesize(t, first), synthesize(t, second)})
	require.NoError(t, err)

	require.Len(t, problems, 1)
	assert.Equal(t, "ErrorCode", problems[0].Class)
	assert.Equal(t, "identifier 'code000' is already declared in package billing", problems[0].Message)

	text := string(src)
	assert.Contains(t, text, "func newErrorCodeOf(code string, key string) ErrorCode")
	assert.Contains(t, text, "func (e ErrorCode) GetCode() string")
}

func TestReceiverName(t *testing.T) {
	tests := []struct {
		class string
		want  string
	}{
		{class: "ResultCode", want: "r"},
		{class: "errorCode", want: "e"},
		{class: "Ärger", want: "ä"},
		{class: "_internal", want: "v"},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			assert.Equal(t, tt.want, receiverName(tt.class))
		})
	}
}

func TestRenderer_UnderscoreTypeName(t *testing.T) {
	root := t.TempDir()
	writeResource(t, root, "billing.properties", "code000=000000,Success\n")

	class := resultCodeClass(root, marker("billing.properties"))
	class.Name = "_resultCode"

	src, problems, err := NewRenderer().Render(billingPackage(class), []m.Synthesis{synthesize(t, class)})
	require.NoError(t, err)
	assert.Empty(t, problems)

	text := string(src)
	assert.Contains(t, text, "func (v _resultCode) GetCode() string {\n\treturn v.code\n}")
	assert.NotContains(t, text, "_.code")
}

func TestRenderer_ToleratedGetter(t *testing.T) {
	tests := []struct {
		name       string
		method     m.Method
		wantGetter bool
		wantUsage  m.Usage
	}{
		{
			name:       "promoted method is shadowed",
			method:     m.Method{Name: "GetCode", GoName: "GetCode", Inherited: true, Tolerated: true},
			wantGetter: true,
			wantUsage:  m.UsageReadWrite,
		},
		{
			name:       "method on the type is kept",
			method:     m.Method{Name: "GetCode", GoName: "GetCode", Tolerated: true},
			wantGetter: false,
			wantUsage:  m.UsageWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeResource(t, root, "billing.properties", "code000=000000,Success\n")

			class := resultCodeClass(root, marker("billing.properties"))
			class.Methods = []m.Method{tt.method}

			syn := synthesize(t, class)
			assert.Equal(t, tt.wantUsage, syn.FieldUsage["code"])
			assert.Equal(t, tt.wantGetter, slices.Contains(methodNames(syn.Methods), "GetCode"))

			src, problems, err := NewRenderer().Render(billingPackage(class), []m.Synthesis{syn})
			require.NoError(t, err)
			assert.Empty(t, problems)
			assert.Equal(t, tt.wantGetter, strings.Contains(string(src), "func (r ResultCode) GetCode() string"))
		})
	}
}
