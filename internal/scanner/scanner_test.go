package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// writeTree creates files relative to root, making parent directories as
// needed.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func scanRel(t *testing.T, root string, opts ...Option) []string {
	t.Helper()
	s, err := New(root, opts...)
	require.NoError(t, err)
	paths, err := s.Scan()
	require.NoError(t, err)

	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func TestNew_RootMustBeDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "f.go")
	require.NoError(t, os.WriteFile(file, []byte("package main"), 0644))
	_, err = New(file)
	require.Error(t, err)
}

func TestScan_SupportedLanguagesOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":   "package main",
		"util.py":   "x = 1",
		"readme.md": "# hi",
		"data.json": "{}",
	})

	rels := scanRel(t, root)
	assert.ElementsMatch(t, []string{"main.go", "util.py"}, rels)
}

func TestScan_SkipsHiddenAndWellKnownDirs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/main.go":           "package main",
		".git/hook.py":          "x = 1",
		"node_modules/dep.py":   "x = 1",
		"vendor/lib.go":         "package lib",
		"__pycache__/cached.py": "x = 1",
		"target/debug/build.rs": "fn main() {}",
	})

	rels := scanRel(t, root)
	assert.Equal(t, []string{"src/main.go"}, rels)
}

func TestScan_LanguageFilter(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go": "package main",
		"util.py": "x = 1",
		"lib.rs":  "fn f() {}",
	})

	rels := scanRel(t, root, WithLanguages("python", "rust"))
	assert.ElementsMatch(t, []string{"util.py", "lib.rs"}, rels)
}

func TestScan_IgnoreFilePatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		DefaultIgnoreFile: "build/\n*.gen.go\n",
		"main.go":         "package main",
		"api.gen.go":      "package main",
		"build/out.go":    "package main",
		"sub/nested.go":   "package main",
	})

	rels := scanRel(t, root)
	assert.ElementsMatch(t, []string{"main.go", "sub/nested.go"}, rels)
}

func TestScan_CustomIgnoreFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".myignore": "*.py\n",
		"main.go":   "package main",
		"util.py":   "x = 1",
	})

	rels := scanRel(t, root, WithIgnoreFile(".myignore"))
	assert.Equal(t, []string{"main.go"}, rels)
}

func TestScan_MissingIgnoreFileIsOK(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.go": "package main"})

	rels := scanRel(t, root)
	assert.Equal(t, []string{"main.go"}, rels)
}

func TestScan_SkipsBinaryFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.go": "package main"})
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "blob.go"), []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01}, 0644))

	rels := scanRel(t, root)
	assert.Equal(t, []string{"main.go"}, rels)
}

func TestSkipDirName(t *testing.T) {
	assert.True(t, SkipDirName(".git"))
	assert.True(t, SkipDirName("node_modules"))
	assert.True(t, SkipDirName("vendor"))
	assert.False(t, SkipDirName("src"))
	assert.False(t, SkipDirName("internal"))
}
