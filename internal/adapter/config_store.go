package adapter

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

// Configuration keys resolved per class.
const (
	KeyAddConstructorProperties      = "constructor.add_properties"
	KeySuppressConstructorProperties = "constructor.suppress_properties"
	KeyAccessorsPrefix               = "accessors.prefix"
)

// ConfigStore answers configuration lookups scoped to a class.
type ConfigStore interface {
	Bool(ctx context.Context, class *m.Class, key string) bool
	Strings(ctx context.Context, class *m.Class, key string) []string
}

// ViperConfigStore resolves keys from the config files between a class's
// directory and its project root. The file nearest to the class that sets a
// key wins; the global configuration answers everything else.
type ViperConfigStore struct {
	global   *viper.Viper
	fileName string
	fs       SourceFSAdapter
}

// NewViperConfigStore creates a store reading fileName in each directory.
func NewViperConfigStore(global *viper.Viper, fileName string, fs SourceFSAdapter) *ViperConfigStore {
	return &ViperConfigStore{global: global, fileName: fileName, fs: fs}
}

// Bool returns the boolean value of key for class.
func (s *ViperConfigStore) Bool(ctx context.Context, class *m.Class, key string) bool {
	return s.lookup(ctx, class, key).GetBool(key)
}

// Strings returns the string list value of key for class.
func (s *ViperConfigStore) Strings(ctx context.Context, class *m.Class, key string) []string {
	return s.lookup(ctx, class, key).GetStringSlice(key)
}

func (s *ViperConfigStore) lookup(ctx context.Context, class *m.Class, key string) *viper.Viper {
	for _, dir := range s.scopeDirs(class) {
		if ctx.Err() != nil {
			break
		}

		path := s.fs.JoinPath(dir, s.fileName)

		info, err := s.fs.FileInfo(path)
		if err != nil || info.IsDir() {
			continue
		}

		local := viper.New()
		local.SetConfigFile(string(path))
		local.SetConfigType("yaml")

		if err := local.ReadInConfig(); err != nil {
			slog.Warn("Failed to read scoped config", "path", path, "error", err)
			continue
		}

		if local.IsSet(key) {
			slog.Debug("Resolved scoped config", "key", key, "path", path, "class", class.Name)
			return local
		}
	}

	if s.global == nil {
		return viper.New()
	}

	return s.global
}

// scopeDirs lists the class directory and its parents up to the project
// root, nearest first.
func (s *ViperConfigStore) scopeDirs(class *m.Class) []string {
	if class == nil || class.Dir == "" {
		return nil
	}

	dir, err := filepath.Abs(string(class.Dir))
	if err != nil {
		return nil
	}

	root := ""
	if class.ProjectRoot != "" {
		if abs, err := filepath.Abs(string(class.ProjectRoot)); err == nil {
			root = abs
		}
	}

	dirs := []string{dir}

	if root == "" || !withinDir(dir, root) {
		return dirs
	}

	for dir != root {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
		dirs = append(dirs, dir)
	}

	return dirs
}

func withinDir(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
