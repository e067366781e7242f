package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

// TUI implements UI using Bubble Tea for the interactive report viewer.
// Everything else is printed like SimpleUI.
type TUI struct {
	*SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(simple *SimpleUI) *TUI {
	return &TUI{SimpleUI: simple}
}

// Browse opens a scrollable viewer over the report.
func (t *TUI) Browse(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newReportModel(report)

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(t.cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}

	return nil
}

// reportModel is the Bubble Tea model of the report viewer.
type reportModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
	quitting bool
}

func newReportModel(report m.Report) reportModel {
	classes := 0
	for _, pkg := range report.Packages {
		classes += len(pkg.Classes)
	}

	return reportModel{
		title:   fmt.Sprintf("intlcode: %d package(s), %d class(es)", len(report.Packages), classes),
		content: renderReportText(report),
	}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			rm.quitting = true
			return rm, tea.Quit
		}

	case tea.WindowSizeMsg:
		height := msg.Height - lipgloss.Height(rm.headerView()) - lipgloss.Height(rm.footerView())
		if height < 1 {
			height = 1
		}

		if !rm.ready {
			rm.viewport = viewport.New(msg.Width, height)
			rm.viewport.SetContent(rm.content)
			rm.ready = true
		} else {
			rm.viewport.Width = msg.Width
			rm.viewport.Height = height
		}

		return rm, nil
	}

	var cmd tea.Cmd
	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

func (rm reportModel) View() string {
	if rm.quitting {
		return ""
	}

	if !rm.ready {
		return "\n  Loading..."
	}

	return rm.headerView() + "\n" + rm.viewport.View() + "\n" + rm.footerView()
}

func (rm reportModel) headerView() string {
	return headerStyle.Render(rm.title)
}

func (rm reportModel) footerView() string {
	percent := 0.0
	if rm.ready {
		percent = rm.viewport.ScrollPercent()
	}

	return faintStyle.Render(fmt.Sprintf("%3.f%%  ↑/↓ scroll  q quit", percent*100))
}

// renderReportText lays the report out as indented text for the viewer.
func renderReportText(report m.Report) string {
	var b strings.Builder

	if len(report.Packages) == 0 {
		b.WriteString("No annotated types found.\n")
		return b.String()
	}

	for _, pkg := range report.Packages {
		fmt.Fprintf(&b, "%s %s\n", headerStyle.Render("package "+pkg.Name), faintStyle.Render(pkg.Dir))

		if pkg.Output != "" {
			fmt.Fprintf(&b, "  output %s\n", pkg.Output)
		}

		for _, class := range pkg.Classes {
			writeClass(&b, class)
		}

		for _, problem := range pkg.Problems {
			fmt.Fprintf(&b, "  %s: %s\n", severityLabel(problem.Severity), problem.Message)
		}

		b.WriteString("\n")
	}

	return b.String()
}

func writeClass(b *strings.Builder, class m.ClassInfo) {
	fmt.Fprintf(b, "  %s %s\n", classStyle.Render(class.Name), faintStyle.Render("["+class.Kind+"]"))

	for _, field := range class.Fields {
		fmt.Fprintf(b, "    var %s = %s\n", field.Name, field.Detail)
	}

	for _, method := range class.Methods {
		fmt.Fprintf(b, "    %s %s\n", method.Name, faintStyle.Render(method.Detail))
	}

	if usage := formatUsage(class.Usage); usage != "" {
		fmt.Fprintf(b, "    usage %s\n", usage)
	}

	for _, problem := range class.Problems {
		fmt.Fprintf(b, "    %s: %s\n", severityLabel(problem.Severity), problem.Message)

		if problem.Fix != "" {
			fmt.Fprintf(b, "      fix: %s\n", problem.Fix)
		}
	}
}
