package ragdex

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportFixture(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(t)
	dir := t.TempDir()

	src := "package main\n\n// Answer returns the answer\nfunc Answer() int {\n\treturn 42\n}\n"
	path := filepath.Join(dir, "answer.go")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	require.NoError(t, e.IndexFiles(context.Background(), []string{path}))
	return e
}

func decodeChunks(t *testing.T, buf *bytes.Buffer) []Chunk {
	t.Helper()
	var chunks []Chunk
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var c Chunk
		require.NoError(t, json.Unmarshal(sc.Bytes(), &c))
		chunks = append(chunks, c)
	}
	require.NoError(t, sc.Err())
	return chunks
}

func TestExport_WritesOneChunkPerFunction(t *testing.T) {
	e := newExportFixture(t)

	var buf bytes.Buffer
	count, err := e.Export(&buf, ExportOptions{Collection: "code-chunks"})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	chunks := decodeChunks(t, &buf)
	require.Len(t, chunks, 1)

	c := chunks[0]
	assert.Equal(t, "Answer", c.Name)
	assert.Equal(t, "go", c.Language)
	assert.Equal(t, "code-chunks", c.Collection)
	assert.True(t, strings.HasPrefix(c.Text, "Answer returns the answer"), c.Text)
	assert.Contains(t, c.Text, "return 42")
}

func TestExport_TruncatesText(t *testing.T) {
	e := newExportFixture(t)

	var buf bytes.Buffer
	count, err := e.Export(&buf, ExportOptions{MaxLength: 10})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	chunks := decodeChunks(t, &buf)
	require.Len(t, chunks, 1)
	assert.LessOrEqual(t, utf8.RuneCountInString(chunks[0].Text), 10)
}

func TestExport_EmptyIndex(t *testing.T) {
	e := newTestEngine(t)

	var buf bytes.Buffer
	count, err := e.Export(&buf, ExportOptions{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, buf.Len())
}

func TestChunkText(t *testing.T) {
	assert.Equal(t, "code", chunkText("", "code", 0))
	assert.Equal(t, "doc\n\ncode", chunkText("doc", "code", 0))
	assert.Equal(t, "doc", chunkText("doc", "code", 3))
}
