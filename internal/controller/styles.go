package controller

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	classStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func severityLabel(s m.Severity) string {
	if s == m.SeverityWarning {
		return warningStyle.Render(s.String())
	}

	return errorStyle.Render(s.String())
}

// formatUsage renders field usage as "code=READ key=NONE", sorted by field.
func formatUsage(usage map[string]string) string {
	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+usage[name])
	}

	return strings.Join(parts, " ")
}
