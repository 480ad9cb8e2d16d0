package ragdex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryFixture(t *testing.T) (*Engine, string) {
	t.Helper()
	e := newTestEngine(t)
	dir := t.TempDir()

	goFile := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(goFile, []byte(
		"package main\n\n// Run runs the thing\nfunc Run() {}\n\nfunc helper() {}\n"), 0644))

	pyFile := filepath.Join(dir, "util.py")
	require.NoError(t, os.WriteFile(pyFile, []byte(
		"def run():\n    return 1\n"), 0644))

	require.NoError(t, e.IndexFiles(context.Background(), []string{goFile, pyFile}))
	return e, goFile
}

func TestQuery_FunctionsByName(t *testing.T) {
	e, _ := newQueryFixture(t)

	fns, err := e.Query().FunctionsByName("Run")
	require.NoError(t, err)
	require.Len(t, fns, 1)
	assert.Equal(t, "go", fns[0].Language)
	assert.Equal(t, "Run runs the thing", fns[0].Doc)

	none, err := e.Query().FunctionsByName("Missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuery_FunctionsByLanguage(t *testing.T) {
	e, _ := newQueryFixture(t)

	fns, err := e.Query().FunctionsByLanguage("python")
	require.NoError(t, err)
	require.Len(t, fns, 1)
	assert.Equal(t, "run", fns[0].Name)
}

func TestQuery_FunctionsInFile(t *testing.T) {
	e, goFile := newQueryFixture(t)

	fns, err := e.Query().FunctionsInFile(goFile)
	require.NoError(t, err)
	require.Len(t, fns, 2)
	// Source order.
	assert.Equal(t, "Run", fns[0].Name)
	assert.Equal(t, "helper", fns[1].Name)
}

func TestQuery_FunctionsInFile_UnknownPath(t *testing.T) {
	e, _ := newQueryFixture(t)

	fns, err := e.Query().FunctionsInFile("/not/indexed.go")
	require.NoError(t, err)
	assert.Nil(t, fns)
}

func TestQuery_Files(t *testing.T) {
	e, _ := newQueryFixture(t)

	files, err := e.Query().Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.NotZero(t, f.ID)
		assert.NotEmpty(t, f.Hash)
		assert.Greater(t, f.LineCount, 0)
	}
}

func TestQuery_Stats(t *testing.T) {
	e, _ := newQueryFixture(t)

	stats, err := e.Query().Stats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byLang := map[string]*LanguageStat{}
	for _, s := range stats {
		byLang[s.Language] = s
	}
	require.Contains(t, byLang, "go")
	require.Contains(t, byLang, "python")
	assert.Equal(t, 1, byLang["go"].FileCount)
	assert.Equal(t, 2, byLang["go"].FunctionCount)
	assert.Equal(t, 1, byLang["python"].FunctionCount)
}
