package model

// Synthesis is the outcome of synthesizing one annotated class.
type Synthesis struct {
	Class      *Class
	Valid      bool
	Fields     []SyntheticField
	Methods    []SyntheticMethod
	Problems   []Problem
	FieldUsage map[string]Usage
}

// PackageResult holds the syntheses of a package and its rendered output.
type PackageResult struct {
	Package   *Package
	Syntheses []Synthesis
	Output    Path
	Source    []byte // nil when the package needs no generated file
	Problems  []Problem
}

// AllProblems returns the class problems followed by the rendering problems.
func (r PackageResult) AllProblems() []Problem {
	var out []Problem
	for _, s := range r.Syntheses {
		out = append(out, s.Problems...)
	}

	return append(out, r.Problems...)
}

// Report is the serializable summary printed by list and saved by generate.
type Report struct {
	Version  int           `yaml:"version"`
	Packages []PackageInfo `yaml:"packages"`
}

// PackageInfo summarizes one package in a Report.
type PackageInfo struct {
	Name     string        `yaml:"name"`
	Dir      string        `yaml:"dir"`
	Output   string        `yaml:"output,omitempty"`
	Classes  []ClassInfo   `yaml:"classes"`
	Problems []ProblemInfo `yaml:"problems,omitempty"`
}

// ClassInfo summarizes one class in a Report.
type ClassInfo struct {
	Name     string            `yaml:"name"`
	Kind     string            `yaml:"kind"`
	Valid    bool              `yaml:"valid"`
	Fields   []MemberInfo      `yaml:"fields,omitempty"`
	Methods  []MemberInfo      `yaml:"methods,omitempty"`
	Usage    map[string]string `yaml:"usage,omitempty"`
	Problems []ProblemInfo     `yaml:"problems,omitempty"`
}

// MemberInfo describes one synthesized member.
type MemberInfo struct {
	Name   string `yaml:"name"`
	Detail string `yaml:"detail"`
}

// ProblemInfo is a flattened Problem.
type ProblemInfo struct {
	Severity Severity `yaml:"severity"`
	Message  string   `yaml:"message"`
	Position string   `yaml:"position,omitempty"`
	Fix      string   `yaml:"fix,omitempty"`
}
