package domain

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"intlcode.dev/pkg/intlcode/internal/adapter"
	m "intlcode.dev/pkg/intlcode/internal/model"
)

// ResourceDir is the directory below the project root holding resources.
const ResourceDir = "internationl"

// ResourceFieldSynthesizer turns the entries of a properties resource into
// package-level instances of the annotated type.
type ResourceFieldSynthesizer struct {
	fs     adapter.SourceFSAdapter
	parser adapter.ResourceParser
}

// NewResourceFieldSynthesizer creates a ResourceFieldSynthesizer.
func NewResourceFieldSynthesizer(fs adapter.SourceFSAdapter, parser adapter.ResourceParser) *ResourceFieldSynthesizer {
	return &ResourceFieldSynthesizer{fs: fs, parser: parser}
}

// Synthesize returns one public static final field per resource entry, in
// file order. A resource that cannot be loaded yields an empty list.
func (s *ResourceFieldSynthesizer) Synthesize(ctx context.Context, class *m.Class, anno m.Annotation) []m.SyntheticField {
	slog.Info("Synthesizing resource fields", "projectPath", class.ProjectRoot, "class", class.Name)

	load := s.Load(ctx, class, anno)
	if !load.OK() {
		if load.Failure.Reason == m.FailureNotFound {
			slog.Debug("Resource not found", "path", load.Path, "class", class.Name)
		} else {
			slog.Warn("Failed to load resource", "path", load.Path, "class", class.Name, "error", load.Failure)
		}

		return []m.SyntheticField{}
	}

	target, pointer := twoArgConstructor(class)
	fields := make([]m.SyntheticField, 0, len(load.Entries))

	for _, entry := range load.Entries {
		v1, v2 := entry.Split()

		fields = append(fields, m.SyntheticField{
			Name: entry.Key,
			Type: class.Type(),
			Modifiers: m.Modifiers{
				Visibility: m.VisibilityPublic,
				Static:     true,
				Final:      true,
			},
			Initializer: &m.ConstructorCall{
				Class:   class.Name,
				Target:  target,
				Pointer: pointer,
				Args:    []string{v1, v2},
			},
			Origin: anno,
		})
	}

	return fields
}

// Load reads <project root>/internationl/<path>. The resource is closed
// before Load returns.
func (s *ResourceFieldSynthesizer) Load(ctx context.Context, class *m.Class, anno m.Annotation) m.ResourceLoad {
	path := s.fs.JoinPath(string(class.ProjectRoot), ResourceDir, anno.StringValue(attrPath, ""))
	load := m.ResourceLoad{Path: path}

	info, err := s.fs.FileInfo(path)
	if err != nil {
		reason := m.FailureUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			reason = m.FailureNotFound
		}

		load.Failure = &m.ResourceFailure{Reason: reason, Path: path, Err: err}

		return load
	}

	if !info.Mode().IsRegular() {
		load.Failure = &m.ResourceFailure{Reason: m.FailureNotRegular, Path: path}
		return load
	}

	rc, err := s.fs.Open(path)
	if err != nil {
		load.Failure = &m.ResourceFailure{Reason: m.FailureUnreadable, Path: path, Err: err}
		return load
	}

	defer func() {
		_ = rc.Close()
	}()

	entries, err := s.parser.Parse(ctx, rc)
	if err != nil {
		load.Failure = &m.ResourceFailure{Reason: m.FailureMalformed, Path: path, Err: err}
		return load
	}

	load.Entries = entries

	return load
}

// CheckFieldUsage classifies a field for this pass. Every field is written
// once when its instance is constructed.
func (s *ResourceFieldSynthesizer) CheckFieldUsage(_ m.Field, _ m.Annotation) m.Usage {
	return m.UsageWrite
}

// twoArgConstructor returns the user-declared (string, string) constructor
// if there is one. An empty target selects the synthesized constructor.
func twoArgConstructor(class *m.Class) (string, bool) {
	ctor, ok := FindBySignature(class.Constructors, class.Name, instanceParamTypes(canonicalFields))
	if !ok {
		return "", false
	}

	return ctor.GoName, ctor.ReturnsPointer
}
