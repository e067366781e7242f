package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayGenerated prints what happened to a generated file.
func (s *SimpleUI) DisplayGenerated(ctx context.Context, path m.Path, status GenerateStatus) {
	if err := ctx.Err(); err != nil {
		return
	}

	if status == StatusSkipped {
		return
	}

	s.printf("%-9s %s\n", status, path)
}

// DisplayProblems prints diagnostics followed by a summary line.
func (s *SimpleUI) DisplayProblems(ctx context.Context, problems []m.Problem) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(problems) == 0 {
		return
	}

	for _, problem := range problems {
		s.printf("%s\n", formatProblem(problem))
	}

	errs := m.CountErrors(problems)
	s.printf("%d error(s), %d warning(s)\n", errs, len(problems)-errs)
}

// DisplayDiff prints a unified diff for an outdated file.
func (s *SimpleUI) DisplayDiff(ctx context.Context, path m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s is out of date\n%s", path, diff)

	if !strings.HasSuffix(diff, "\n") {
		s.printf("\n")
	}
}

// DisplayReport prints the report as a table followed by its diagnostics.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderReportTable(report))

	for _, pkg := range report.Packages {
		for _, class := range pkg.Classes {
			for _, problem := range class.Problems {
				s.printf("%s: %s: %s\n", class.Name, severityLabel(problem.Severity), problem.Message)
			}
		}

		for _, problem := range pkg.Problems {
			s.printf("%s: %s: %s\n", pkg.Name, severityLabel(problem.Severity), problem.Message)
		}
	}

	return nil
}

// DisplayText prints text verbatim.
func (s *SimpleUI) DisplayText(ctx context.Context, text string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s", text)
}

// Browse falls back to the table without a terminal.
func (s *SimpleUI) Browse(ctx context.Context, report m.Report) error {
	return s.DisplayReport(ctx, report)
}

func renderReportTable(report m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Package", "Class", "Fields", "Methods", "Usage", "Problems"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	classes, fields, problems := 0, 0, 0

	for _, pkg := range report.Packages {
		for _, class := range pkg.Classes {
			names := make([]string, 0, len(class.Methods))
			for _, method := range class.Methods {
				names = append(names, method.Name)
			}

			table.Append([]string{
				pkg.Dir,
				class.Name,
				fmt.Sprintf("%d", len(class.Fields)),
				strings.Join(names, ", "),
				formatUsage(class.Usage),
				fmt.Sprintf("%d", len(class.Problems)),
			})

			classes++
			fields += len(class.Fields)
			problems += len(class.Problems)
		}

		problems += len(pkg.Problems)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Packages %d", len(report.Packages)),
		fmt.Sprintf("%d", classes),
		fmt.Sprintf("%d", fields),
		"",
		"",
		fmt.Sprintf("%d", problems),
	})

	table.Render()

	return tableBuffer.String()
}

func formatProblem(problem m.Problem) string {
	var b strings.Builder

	if problem.Position.IsValid() {
		b.WriteString(faintStyle.Render(problem.Position.String()))
		b.WriteString(": ")
	}

	b.WriteString(severityLabel(problem.Severity))
	b.WriteString(": ")
	b.WriteString(problem.Message)

	for _, fix := range problem.Fixes {
		b.WriteString("\n\tfix: ")
		b.WriteString(fix.String())
	}

	return b.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
