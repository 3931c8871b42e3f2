package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/chartify/pkg/paths"
)

// TestEnvironment is a temp directory with chartify's config and state
// directories pointed inside it
type TestEnvironment struct {
	Dir       string
	ConfigDir string
	StateDir  string

	t *testing.T
}

// NewTestEnvironment isolates a test from the user's config, .env and
// log files. Environment changes are undone when the test ends.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	dir := t.TempDir()
	env := &TestEnvironment{
		Dir:       dir,
		ConfigDir: filepath.Join(dir, "config"),
		StateDir:  filepath.Join(dir, "state"),
		t:         t,
	}
	t.Setenv(paths.EnvConfigDir, env.ConfigDir)
	t.Setenv(paths.EnvStateDir, env.StateDir)
	t.Setenv("NO_COLOR", "1")
	return env
}

// Path joins name onto the environment directory
func (env *TestEnvironment) Path(name string) string {
	return filepath.Join(env.Dir, name)
}

// WriteFile writes content under the environment directory and returns
// the full path
func (env *TestEnvironment) WriteFile(name, content string) string {
	env.t.Helper()
	path := env.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// WithFileTree writes a whole tree of files
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env, "", tree)
}

// WriteConfig writes the user config file chartify loads by default
func (env *TestEnvironment) WriteConfig(content string) string {
	env.t.Helper()
	rel, err := filepath.Rel(env.Dir, filepath.Join(env.ConfigDir, paths.ConfigFileName))
	if err != nil {
		env.t.Fatalf("Failed to resolve config path: %v", err)
	}
	return env.WriteFile(rel, content)
}

// ReadFile returns the content of a file under the environment directory
func (env *TestEnvironment) ReadFile(name string) string {
	env.t.Helper()
	content, err := os.ReadFile(env.Path(name))
	if err != nil {
		env.t.Fatalf("Failed to read file %s: %v", name, err)
	}
	return string(content)
}

// FileTree maps names to file content (string) or nested directories
type FileTree map[string]interface{}

func createFileTree(env *TestEnvironment, base string, tree FileTree) {
	env.t.Helper()

	for name, content := range tree {
		rel := filepath.Join(base, name)
		switch v := content.(type) {
		case string:
			env.WriteFile(rel, v)
		case FileTree:
			if err := os.MkdirAll(env.Path(rel), 0755); err != nil {
				env.t.Fatalf("Failed to create directory %s: %v", rel, err)
			}
			createFileTree(env, rel, v)
		default:
			env.t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
