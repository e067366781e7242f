package adapter

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "codes.go"), "package codes\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.go"), "package nested\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.go")} {
			if containsPath(visited, forbidden) {
				t.Fatalf("Walk() unexpectedly visited %s when recursive is false", forbidden)
			}
		}

		if !containsPath(visited, filepath.Join(root, "codes.go")) {
			t.Fatalf("Walk() did not visit top-level file")
		}
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.go")
		writeTestFile(t, child, "package nested\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if !containsPath(visited, child) {
			t.Fatalf("Walk() did not visit nested file %s", child)
		}
	})
}

func TestLocalSourceFSAdapter_ReadAndOpen(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	path := filepath.Join(t.TempDir(), "codes.properties")
	content := "code000=000000,Success\n"
	writeTestFile(t, path, content)

	data, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != content {
		t.Fatalf("ReadFile() = %q, want %q", data, content)
	}

	rc, err := adapter.Open(m.Path(path))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = rc.Close() }()

	streamed, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading opened file: %v", err)
	}
	if string(streamed) != content {
		t.Fatalf("Open() streamed %q, want %q", streamed, content)
	}

	if _, err := adapter.Open(m.Path(path + ".missing")); !os.IsNotExist(err) {
		t.Fatalf("Open() on missing file error = %v, want not-exist", err)
	}
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	dir := t.TempDir()
	path := filepath.Join(dir, "codes.go")
	writeTestFile(t, path, "package codes\n")

	info, err := adapter.FileInfo(m.Path(path))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}
	if info.IsDir() || !info.Mode().IsRegular() {
		t.Fatalf("FileInfo() expected a regular file")
	}

	info, err = adapter.FileInfo(m.Path(dir))
	if err != nil {
		t.Fatalf("FileInfo() on dir error = %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("FileInfo() expected a directory")
	}
}

func TestLocalSourceFSAdapter_FindProjectRoot(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "go.mod"), "module example.com/project\n")

	pkgDir := filepath.Join(root, "billing")
	mustMkdir(t, pkgDir)
	source := filepath.Join(pkgDir, "codes.go")
	writeTestFile(t, source, "package billing\n")

	for _, start := range []string{pkgDir, source, root} {
		got, err := adapter.FindProjectRoot(m.Path(start))
		if err != nil {
			t.Fatalf("FindProjectRoot(%s) error = %v", start, err)
		}
		if string(got) != root {
			t.Fatalf("FindProjectRoot(%s) = %s, want %s", start, got, root)
		}
	}
}

func TestLocalSourceFSAdapter_WriteAndRemove(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	path := filepath.Join(t.TempDir(), "billing_intlcode.go")

	if err := adapter.WriteFile(m.Path(path), []byte("package billing\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("written file missing: %v", err)
	}

	if err := adapter.Remove(m.Path(path)); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still present after Remove()")
	}
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	joined := adapter.JoinPath("root", "internationl", "codes.properties")
	if string(joined) != filepath.Join("root", "internationl", "codes.properties") {
		t.Fatalf("JoinPath() = %s", joined)
	}

	rel, err := adapter.RelPath("root", joined)
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}
	if string(rel) != filepath.Join("internationl", "codes.properties") {
		t.Fatalf("RelPath() = %s", rel)
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
