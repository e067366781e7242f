package domain

import (
	"strconv"
	"strings"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

// ReportVersion is the schema version written into reports.
const ReportVersion = 1

// BuildReport summarizes package results for display and persistence.
func BuildReport(results []m.PackageResult) m.Report {
	report := m.Report{Version: ReportVersion, Packages: []m.PackageInfo{}}

	for _, result := range results {
		if len(result.Syntheses) == 0 {
			continue
		}

		info := m.PackageInfo{
			Name:     result.Package.Name,
			Dir:      string(result.Package.Dir),
			Problems: problemInfos(result.Problems),
		}

		if result.Source != nil {
			info.Output = string(result.Output)
		}

		for _, synthesis := range result.Syntheses {
			info.Classes = append(info.Classes, classInfo(synthesis))
		}

		report.Packages = append(report.Packages, info)
	}

	return report
}

func classInfo(s m.Synthesis) m.ClassInfo {
	info := m.ClassInfo{
		Name:     s.Class.Name,
		Kind:     s.Class.Kind.String(),
		Valid:    s.Valid,
		Problems: problemInfos(s.Problems),
	}

	for _, field := range s.Fields {
		info.Fields = append(info.Fields, m.MemberInfo{Name: field.Name, Detail: describeCall(field.Initializer)})
	}

	for _, method := range s.Methods {
		info.Methods = append(info.Methods, m.MemberInfo{Name: method.Name, Detail: describeMethod(method)})
	}

	if len(s.FieldUsage) > 0 {
		info.Usage = make(map[string]string, len(s.FieldUsage))
		for name, usage := range s.FieldUsage {
			info.Usage[name] = usage.String()
		}
	}

	return info
}

func describeCall(call *m.ConstructorCall) string {
	if call == nil {
		return ""
	}

	args := make([]string, 0, len(call.Args))
	for _, arg := range call.Args {
		args = append(args, strconv.Quote(arg))
	}

	return call.Class + "(" + strings.Join(args, ", ") + ")"
}

func describeMethod(method m.SyntheticMethod) string {
	params := make([]string, 0, len(method.Params))
	for _, p := range method.Params {
		params = append(params, p.Name+" "+p.Type.String())
	}

	kind := "getter"
	if method.IsConstructor {
		kind = "constructor"
	}

	detail := method.Modifiers.Visibility.String() + " " + kind + " (" + strings.Join(params, ", ") + ")"
	if !method.IsConstructor {
		detail += " " + method.ReturnType.String()
	}

	return detail
}

func problemInfos(problems []m.Problem) []m.ProblemInfo {
	if len(problems) == 0 {
		return nil
	}

	out := make([]m.ProblemInfo, 0, len(problems))

	for _, problem := range problems {
		info := m.ProblemInfo{
			Severity: problem.Severity,
			Message:  problem.Message,
		}

		if problem.Position.IsValid() {
			info.Position = problem.Position.String()
		}

		fixes := make([]string, 0, len(problem.Fixes))
		for _, fix := range problem.Fixes {
			fixes = append(fixes, fix.String())
		}

		info.Fix = strings.Join(fixes, "; ")
		out = append(out, info)
	}

	return out
}
