package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"intlcode.dev/pkg/intlcode/internal/adapter"
	"intlcode.dev/pkg/intlcode/internal/controller"
	m "intlcode.dev/pkg/intlcode/internal/model"
)

// DefaultSuffix is appended to the package name to form the generated file name.
const DefaultSuffix = "_intlcode.go"

// Report formats accepted by List.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

var (
	// ErrProblemsFound is returned when synthesis reported errors.
	ErrProblemsFound = errors.New("problems found")
	// ErrOutdated is returned by Check when generated files differ from disk.
	ErrOutdated = errors.New("generated files are out of date")
)

// ScanArgs selects the packages to process.
type ScanArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
	Suffix  string
}

// GenerateArgs contains the arguments for writing generated files.
type GenerateArgs struct {
	ScanArgs
	Verify bool
	Report m.Path
}

// CheckArgs contains the arguments for comparing generated files with disk.
type CheckArgs struct {
	ScanArgs
}

// ListArgs contains the arguments for listing synthesized members.
type ListArgs struct {
	ScanArgs
	Format string
}

// ViewArgs contains the arguments for browsing a report. A non-empty Report
// is loaded instead of scanning.
type ViewArgs struct {
	ScanArgs
	Report m.Path
}

// Workflow defines the commands of the intlcode CLI.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	Check(ctx context.Context, args CheckArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.GoFileAdapter
	adapter.ReportStore
	adapter.BuildRunnerAdapter
	controller.UI
	Synthesizer
	Renderer
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	goFileAdapter adapter.GoFileAdapter,
	reportStore adapter.ReportStore,
	buildRunner adapter.BuildRunnerAdapter,
	ui controller.UI,
	synthesizer Synthesizer,
	renderer Renderer,
) Workflow {
	return &workflow{
		SourceFSAdapter:    fsAdapter,
		GoFileAdapter:      goFileAdapter,
		ReportStore:        reportStore,
		BuildRunnerAdapter: buildRunner,
		UI:                 ui,
		Synthesizer:        synthesizer,
		Renderer:           renderer,
	}
}

func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	results, err := w.scan(ctx, args.ScanArgs)
	if err != nil {
		slog.Error("Failed to scan packages", "error", err)
		return err
	}

	for _, result := range results {
		status, err := w.writeResult(result)
		if err != nil {
			slog.Error("Failed to write generated file", "path", result.Output, "error", err)
			return err
		}

		w.DisplayGenerated(ctx, result.Output, status)

		if args.Verify && result.Source != nil {
			if err := w.verify(ctx, result); err != nil {
				return err
			}
		}
	}

	problems := collectProblems(results)
	w.DisplayProblems(ctx, problems)

	if args.Report != "" {
		if err := w.SaveReport(args.Report, BuildReport(results)); err != nil {
			slog.Error("Failed to save report", "path", args.Report, "error", err)
			return fmt.Errorf("save report: %w", err)
		}
	}

	if n := m.CountErrors(problems); n > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrProblemsFound, n)
	}

	return nil
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	results, err := w.scan(ctx, args.ScanArgs)
	if err != nil {
		slog.Error("Failed to scan packages", "error", err)
		return err
	}

	outdated := 0

	for _, result := range results {
		current, err := w.currentOutput(result.Output)
		if err != nil {
			return err
		}

		if bytes.Equal(current, result.Source) {
			continue
		}

		diff, err := unifiedDiff(string(result.Output), current, result.Source)
		if err != nil {
			return fmt.Errorf("diff %s: %w", result.Output, err)
		}

		outdated++

		w.DisplayDiff(ctx, result.Output, diff)
	}

	problems := collectProblems(results)
	w.DisplayProblems(ctx, problems)

	if outdated > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrOutdated, outdated)
	}

	if n := m.CountErrors(problems); n > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrProblemsFound, n)
	}

	return nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	results, err := w.scan(ctx, args.ScanArgs)
	if err != nil {
		slog.Error("Failed to scan packages", "error", err)
		return err
	}

	report := BuildReport(results)

	switch args.Format {
	case "", FormatTable:
		return w.DisplayReport(ctx, report)
	case FormatYAML:
		var buf bytes.Buffer
		if err := w.WriteReport(&buf, report); err != nil {
			return err
		}

		w.DisplayText(ctx, buf.String())

		return nil
	default:
		return fmt.Errorf("unknown format %q", args.Format)
	}
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	var report m.Report

	if args.Report != "" {
		loaded, err := w.LoadReport(args.Report)
		if err != nil {
			slog.Error("Failed to load report", "path", args.Report, "error", err)
			return err
		}

		report = loaded
	} else {
		results, err := w.scan(ctx, args.ScanArgs)
		if err != nil {
			slog.Error("Failed to scan packages", "error", err)
			return err
		}

		report = BuildReport(results)
	}

	return w.Browse(ctx, report)
}

// scan synthesizes and renders every package selected by args. Packages
// are processed concurrently and returned sorted by directory.
func (w *workflow) scan(ctx context.Context, args ScanArgs) ([]m.PackageResult, error) {
	dirs, err := w.packageDirs(args.Paths, args.Exclude)
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}

	suffix := args.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	results := make([]*m.PackageResult, len(dirs))

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Threads > 0 {
		group.SetLimit(args.Threads)
	}

	for i, dir := range dirs {
		group.Go(func() error {
			result, err := w.processPackage(groupCtx, dir, suffix)
			if err != nil {
				return fmt.Errorf("package %s: %w", dir, err)
			}

			results[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := make([]m.PackageResult, 0, len(results))

	for _, result := range results {
		if result != nil {
			out = append(out, *result)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Package.Dir < out[j].Package.Dir })

	return out, nil
}

func (w *workflow) processPackage(ctx context.Context, dir m.Path, suffix string) (*m.PackageResult, error) {
	root, err := w.FindProjectRoot(dir)
	if err != nil {
		slog.Warn("Project root not found, using package directory", "dir", dir, "error", err)
		root = dir
	}

	pkg, err := w.LoadPackage(ctx, dir, root)
	if err != nil {
		return nil, err
	}

	if pkg == nil {
		return nil, nil
	}

	result := &m.PackageResult{
		Package: pkg,
		Output:  w.JoinPath(string(dir), pkg.Name+suffix),
	}

	for _, class := range pkg.Classes {
		if synthesis, ok := w.Synthesize(ctx, class); ok {
			result.Syntheses = append(result.Syntheses, synthesis)
		}
	}

	if len(result.Syntheses) == 0 {
		return result, nil
	}

	source, problems, err := w.Render(pkg, result.Syntheses)
	result.Problems = problems

	if err != nil {
		if source != nil {
			debugPath := m.Path(string(result.Output) + ".unformatted")
			if writeErr := w.WriteFile(debugPath, source, 0o644); writeErr != nil {
				slog.Error("Failed to write unformatted source", "path", debugPath, "error", writeErr)
			}
		}

		return nil, fmt.Errorf("render %s: %w", result.Output, err)
	}

	result.Source = source

	return result, nil
}

// writeResult writes the generated file, or removes a stale one when the
// package no longer needs it.
func (w *workflow) writeResult(result m.PackageResult) (controller.GenerateStatus, error) {
	current, err := w.currentOutput(result.Output)
	if err != nil {
		return controller.StatusUnchanged, err
	}

	if result.Source == nil {
		if current == nil {
			return controller.StatusSkipped, nil
		}

		if err := w.Remove(result.Output); err != nil {
			return controller.StatusUnchanged, fmt.Errorf("remove %s: %w", result.Output, err)
		}

		return controller.StatusRemoved, nil
	}

	if bytes.Equal(current, result.Source) {
		return controller.StatusUnchanged, nil
	}

	if err := w.WriteFile(result.Output, result.Source, 0o644); err != nil {
		return controller.StatusUnchanged, fmt.Errorf("write %s: %w", result.Output, err)
	}

	return controller.StatusWritten, nil
}

// currentOutput returns the generated file on disk, or nil when it does not
// exist. A file at that path that intlcode did not write is an error.
func (w *workflow) currentOutput(path m.Path) ([]byte, error) {
	data, err := w.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !bytes.Contains(data, []byte(m.GeneratedMarker)) {
		return nil, fmt.Errorf("%s exists and was not generated by intlcode", path)
	}

	return data, nil
}

func (w *workflow) verify(ctx context.Context, result m.PackageResult) error {
	output, err := w.RunGoBuild(ctx, string(result.Package.Dir), ".")
	if err != nil {
		slog.Error("Failed to build generated package", "dir", result.Package.Dir, "output", output, "error", err)
		return fmt.Errorf("verify %s: %w\n%s", result.Package.Dir, err, output)
	}

	return nil
}

func unifiedDiff(name string, current, generated []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(generated)),
		FromFile: name,
		ToFile:   name + " (generated)",
		Context:  3,
	})
}

func collectProblems(results []m.PackageResult) []m.Problem {
	var problems []m.Problem
	for _, result := range results {
		problems = append(problems, result.AllProblems()...)
	}

	return problems
}
