package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

func TestMatchesSignature(t *testing.T) {
	twoStrings := []m.TypeRef{m.StringType, m.StringType}

	tests := []struct {
		name   string
		method m.Method
		want   bool
	}{
		{
			name:   "same name and types",
			method: m.Method{Name: "ResultCode", Params: stringParams("a", "b")},
			want:   true,
		},
		{
			name:   "parameter names are ignored",
			method: m.Method{Name: "ResultCode", Params: stringParams("code", "key")},
			want:   true,
		},
		{
			name:   "different name",
			method: m.Method{Name: "Other", Params: stringParams("a", "b")},
		},
		{
			name:   "different arity",
			method: m.Method{Name: "ResultCode", Params: stringParams("a")},
		},
		{
			name: "different type",
			method: m.Method{Name: "ResultCode", Params: []m.Param{
				{Name: "a", Type: m.StringType},
				{Name: "b", Type: m.Basic("int")},
			}},
		},
		{
			name: "pointer is not assignable",
			method: m.Method{Name: "ResultCode", Params: []m.Param{
				{Name: "a", Type: m.PointerTo(m.StringType)},
				{Name: "b", Type: m.StringType},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesSignature(tt.method, "ResultCode", twoStrings))
		})
	}
}

func TestFindBySignature(t *testing.T) {
	methods := []m.Method{
		{Name: "GetCode", GoName: "GetCode", Params: stringParams("prefix")},
		{Name: "GetCode", GoName: "GetCode"},
	}

	found, ok := FindBySignature(methods, "GetCode", nil)
	assert.True(t, ok)
	assert.Empty(t, found.Params)

	_, ok = FindBySignature(methods, "GetKey", nil)
	assert.False(t, ok)
}
