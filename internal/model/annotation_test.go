package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnotation_Lookup(t *testing.T) {
	anno := Annotation{
		Name: "InternationlCode",
		Attributes: []Attribute{
			{Name: "Path", Value: Value{Kind: ValueString, String: "codes.properties", Text: `"codes.properties"`}},
			{Name: "lazy", Value: Value{Kind: ValueBool, Bool: true, Text: "true"}},
			{Name: "OnConstructor", Value: Value{Kind: ValueList, List: []Value{
				{Kind: ValueString, String: "@Deprecated", Text: `"@Deprecated"`},
				{Kind: ValueAnnotation, Text: "@Audit{}"},
			}}},
		},
	}

	assert.Equal(t, "codes.properties", anno.StringValue("path", ""))
	assert.Equal(t, "codes.properties", anno.StringValue("Path", ""))
	assert.True(t, anno.BoolValue("Lazy", false))
	assert.Equal(t, "fallback", anno.StringValue("missing", "fallback"))
	assert.Equal(t, "fallback", anno.StringValue("lazy", "fallback"))
	assert.Equal(t, []string{"@Deprecated", "@Audit{}"}, anno.StringList("onConstructor"))
	assert.Nil(t, anno.StringList("missing"))

	_, ok := anno.Lookup("pATH")
	assert.False(t, ok)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Code", Capitalize("code"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "code", Decapitalize("Code"))
}
