package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageForFile(t *testing.T) {
	cases := map[string]string{
		"main.go":     "go",
		"script.py":   "python",
		"lib.rs":      "rust",
		"Main.java":   "java",
		"impl.c":      "c",
		"header.h":    "c",
		"impl.cpp":    "cpp",
		"impl.cc":     "cpp",
		"header.hpp":  "cpp",
		"dir/nest.go": "go",
		"UPPER.GO":    "go",
	}
	for path, want := range cases {
		got, ok := LanguageForFile(path)
		require.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}

	_, ok := LanguageForFile("readme.md")
	assert.False(t, ok)
	_, ok = LanguageForFile("Makefile")
	assert.False(t, ok)
}

func TestExtractorForLanguage(t *testing.T) {
	for _, language := range []string{"go", "python", "rust", "java", "c", "cpp"} {
		e, ok := ExtractorForLanguage(language)
		require.True(t, ok, language)
		assert.Equal(t, language, e.Language())
	}

	_, ok := ExtractorForLanguage("cobol")
	assert.False(t, ok)
}

func TestExtractorForFile(t *testing.T) {
	e, ok := ExtractorForFile("pkg/main.go")
	require.True(t, ok)
	assert.Equal(t, "go", e.Language())

	_, ok = ExtractorForFile("notes.txt")
	assert.False(t, ok)
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	assert.Len(t, langs, 6)
	assert.ElementsMatch(t, []string{"go", "python", "rust", "java", "c", "cpp"}, langs)
}
