// Package controller provides output adapters for displaying synthesis
// results, diagnostics and reports.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

// GenerateStatus tells what happened to a generated file.
type GenerateStatus int

// Available GenerateStatus values.
const (
	StatusWritten GenerateStatus = iota
	StatusUnchanged
	StatusRemoved
	StatusSkipped
)

func (s GenerateStatus) String() string {
	switch s {
	case StatusWritten:
		return "wrote"
	case StatusUnchanged:
		return "unchanged"
	case StatusRemoved:
		return "removed"
	default:
		return "skipped"
	}
}

// UI defines the interface for displaying workflow output.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayGenerated(ctx context.Context, path m.Path, status GenerateStatus)
	DisplayProblems(ctx context.Context, problems []m.Problem)
	DisplayDiff(ctx context.Context, path m.Path, diff string)
	DisplayReport(ctx context.Context, report m.Report) error
	DisplayText(ctx context.Context, text string)
	Browse(ctx context.Context, report m.Report) error // interactive where supported
}

// NewUI returns the interactive TUI when attached to a terminal and the
// plain SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	simple := NewSimpleUI(cmd)
	if tty {
		return NewTUI(simple)
	}

	return simple
}

// IsTTY reports whether f is a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
