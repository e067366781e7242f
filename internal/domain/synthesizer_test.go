package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

func TestSynthesizer_NotAnnotated(t *testing.T) {
	class := &m.Class{Name: "Plain", Kind: m.KindClass}

	_, ok := newTestSynthesizer(fakeConfig{}).Synthesize(context.Background(), class)
	assert.False(t, ok)
}

func TestSynthesizer_RejectsNonClassKinds(t *testing.T) {
	for _, kind := range []m.Kind{m.KindInterface, m.KindEnum, m.KindAnnotation, m.KindOther} {
		t.Run(kind.String(), func(t *testing.T) {
			root := t.TempDir()
			writeResource(t, root, "billing.properties", billingProperties)

			anno := marker("billing.properties")
			class := resultCodeClass(root, anno)
			class.Kind = kind

			result, ok := newTestSynthesizer(fakeConfig{}).Synthesize(context.Background(), class)
			require.True(t, ok)

			assert.False(t, result.Valid)
			assert.Empty(t, result.Fields)
			assert.Empty(t, result.Methods)
			require.Len(t, result.Problems, 1)
			assert.Equal(t, m.SeverityError, result.Problems[0].Severity)
			assert.Equal(t, "'@InternationlCode' is only supported on a class type", result.Problems[0].Message)
		})
	}
}

func TestSynthesizer_Class(t *testing.T) {
	root := t.TempDir()
	writeResource(t, root, "billing.properties", billingProperties)

	anno := marker("billing.properties")
	class := resultCodeClass(root, anno)
	class.Fields = append(class.Fields, m.Field{Name: "Base", Embedded: true})

	result, ok := newTestSynthesizer(fakeConfig{}).Synthesize(context.Background(), class)
	require.True(t, ok)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Problems)
	assert.Len(t, result.Fields, 4)
	assert.Equal(t, []string{"GetCode", "GetKey", "ResultCode/0", "ResultCode/2"}, methodNames(result.Methods))
	assert.Equal(t, map[string]m.Usage{
		"code": m.UsageReadWrite,
		"key":  m.UsageReadWrite,
	}, result.FieldUsage)
}

func TestSynthesizer_ExistingGetterChangesUsage(t *testing.T) {
	anno := marker("missing.properties")
	class := resultCodeClass(t.TempDir(), anno)
	class.Methods = []m.Method{{Name: "GetCode", GoName: "GetCode"}}

	result, ok := newTestSynthesizer(fakeConfig{}).Synthesize(context.Background(), class)
	require.True(t, ok)

	assert.Equal(t, m.UsageWrite, result.FieldUsage["code"])
	assert.Equal(t, m.UsageReadWrite, result.FieldUsage["key"])
	assert.NotContains(t, methodNames(result.Methods), "GetCode")
}

func TestSynthesizer_MissingInstanceFields(t *testing.T) {
	anno := marker("missing.properties")
	class := resultCodeClass(t.TempDir(), anno)
	class.Fields = []m.Field{{Name: "code", Type: m.Basic("int")}}

	result, ok := newTestSynthesizer(fakeConfig{}).Synthesize(context.Background(), class)
	require.True(t, ok)
	assert.True(t, result.Valid)

	messages := make([]string, 0, len(result.Problems))
	for _, p := range result.Problems {
		assert.Equal(t, m.SeverityWarning, p.Severity)
		messages = append(messages, p.Message)
	}

	assert.Equal(t, []string{
		"field 'code' of ResultCode has type int, expected string",
		"field 'key' is not declared on ResultCode",
	}, messages)
}

func TestSynthesizer_DuplicateConstructorKeepsOtherMembers(t *testing.T) {
	root := t.TempDir()
	writeResource(t, root, "billing.properties", "code000=000000,Success\n")

	anno := marker("billing.properties")
	class := resultCodeClass(root, anno)
	class.Constructors = []m.Method{userConstructor("NewResultCode", false)}

	result, ok := newTestSynthesizer(fakeConfig{}).Synthesize(context.Background(), class)
	require.True(t, ok)

	assert.True(t, result.Valid)
	assert.Len(t, result.Fields, 1)
	assert.Equal(t, []string{"GetCode", "GetKey", "ResultCode/2"}, methodNames(result.Methods))
	require.Len(t, result.Problems, 1)
	assert.Equal(t, "Constructor without parameters is already defined", result.Problems[0].Message)
}

func TestSynthesizer_Deterministic(t *testing.T) {
	root := t.TempDir()
	writeResource(t, root, "billing.properties", billingProperties)

	anno := marker("billing.properties")
	class := resultCodeClass(root, anno)
	synth := newTestSynthesizer(fakeConfig{})

	first, ok := synth.Synthesize(context.Background(), class)
	require.True(t, ok)

	second, ok := synth.Synthesize(context.Background(), class)
	require.True(t, ok)

	assert.Equal(t, first, second)
}
