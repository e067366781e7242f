package domain

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"intlcode.dev/pkg/intlcode/internal/adapter"
	"intlcode.dev/pkg/intlcode/internal/controller"
	m "intlcode.dev/pkg/intlcode/internal/model"
)

type fakeConfig struct {
	bools   map[string]bool
	strings map[string][]string
}

func (c fakeConfig) Bool(_ context.Context, _ *m.Class, key string) bool {
	return c.bools[key]
}

func (c fakeConfig) Strings(_ context.Context, _ *m.Class, key string) []string {
	return c.strings[key]
}

func stringValue(s string) m.Value {
	return m.Value{Kind: m.ValueString, String: s, Text: strconv.Quote(s)}
}

func boolValue(b bool) m.Value {
	return m.Value{Kind: m.ValueBool, Bool: b, Text: strconv.FormatBool(b)}
}

func listValue(items ...string) m.Value {
	list := make([]m.Value, 0, len(items))
	for _, item := range items {
		list = append(list, stringValue(item))
	}

	return m.Value{Kind: m.ValueList, List: list}
}

func marker(path string, attrs ...m.Attribute) m.Annotation {
	return m.Annotation{
		Name:       MarkerName,
		Attributes: append([]m.Attribute{{Name: "Path", Value: stringValue(path)}}, attrs...),
	}
}

func resultCodeClass(root string, anno m.Annotation) *m.Class {
	return &m.Class{
		Name:        "ResultCode",
		Kind:        m.KindClass,
		Package:     "billing",
		ProjectRoot: m.Path(root),
		Fields: []m.Field{
			{Name: "code", Type: m.StringType},
			{Name: "key", Type: m.StringType},
		},
		Annotations: []m.Annotation{anno},
	}
}

func userConstructor(goName string, pointer bool, params ...m.Param) m.Method {
	return m.Method{
		Name:           "ResultCode",
		GoName:         goName,
		Params:         params,
		IsConstructor:  true,
		ReturnsPointer: pointer,
	}
}

func stringParams(names ...string) []m.Param {
	params := make([]m.Param, 0, len(names))
	for _, name := range names {
		params = append(params, m.Param{Name: name, Type: m.StringType})
	}

	return params
}

func writeResource(t *testing.T, root, name, content string) {
	t.Helper()

	dir := filepath.Join(root, ResourceDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestResourceSynthesizer() *ResourceFieldSynthesizer {
	fs := adapter.NewLocalSourceFSAdapter()
	return NewResourceFieldSynthesizer(fs, adapter.NewPropertiesParser(adapter.EncodingUTF8))
}

func newTestSynthesizer(config adapter.ConfigStore) Synthesizer {
	return NewSynthesizer(newTestResourceSynthesizer(), NewAccessorSynthesizer(config))
}

// recordingUI captures workflow output.
type recordingUI struct {
	generated map[m.Path]controller.GenerateStatus
	problems  []m.Problem
	diffs     map[m.Path]string
	reports   []m.Report
	browsed   []m.Report
	text      string
}

func newRecordingUI() *recordingUI {
	return &recordingUI{
		generated: map[m.Path]controller.GenerateStatus{},
		diffs:     map[m.Path]string{},
	}
}

func (u *recordingUI) DisplayGenerated(_ context.Context, path m.Path, status controller.GenerateStatus) {
	u.generated[path] = status
}

func (u *recordingUI) DisplayProblems(_ context.Context, problems []m.Problem) {
	u.problems = append(u.problems, problems...)
}

func (u *recordingUI) DisplayDiff(_ context.Context, path m.Path, diff string) {
	u.diffs[path] = diff
}

func (u *recordingUI) DisplayReport(_ context.Context, report m.Report) error {
	u.reports = append(u.reports, report)
	return nil
}

func (u *recordingUI) DisplayText(_ context.Context, text string) {
	u.text += text
}

func (u *recordingUI) Browse(_ context.Context, report m.Report) error {
	u.browsed = append(u.browsed, report)
	return nil
}
