package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

const recursiveSuffix = "..."

// packageDirs expands Go-style path patterns into the directories to scan.
// Directories matching any exclude regex are dropped.
func (w *workflow) packageDirs(paths []m.Path, exclude []string) ([]m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[m.Path]bool)

	var dirs []m.Path

	add := func(dir m.Path) {
		dir = m.Path(filepath.Clean(string(dir)))
		if seen[dir] || excluded(string(dir), excludes) {
			return
		}

		seen[dir] = true
		dirs = append(dirs, dir)
	}

	for _, pattern := range paths {
		root, recursive := splitPattern(string(pattern))

		info, err := w.FileInfo(m.Path(root))
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", pattern, err)
		}

		if !info.IsDir() {
			add(m.Path(filepath.Dir(root)))
			continue
		}

		if !recursive {
			add(m.Path(root))
			continue
		}

		err = w.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.IsDir() {
				return nil
			}

			if filepath.Clean(path) != filepath.Clean(root) && skipDir(info.Name()) {
				return filepath.SkipDir
			}

			add(m.Path(path))

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", pattern, err)
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })

	return dirs, nil
}

func splitPattern(pattern string) (string, bool) {
	if pattern == recursiveSuffix {
		return ".", true
	}

	if strings.HasSuffix(pattern, "/"+recursiveSuffix) {
		root := strings.TrimSuffix(pattern, "/"+recursiveSuffix)
		if root == "" {
			root = "/"
		}

		return root, true
	}

	return pattern, false
}

func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		out = append(out, re)
	}

	return out, nil
}

func excluded(path string, excludes []*regexp.Regexp) bool {
	slashed := filepath.ToSlash(path)
	for _, re := range excludes {
		if re.MatchString(slashed) {
			return true
		}
	}

	return false
}
