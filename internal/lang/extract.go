package lang

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mkondo/ragdex/internal/store"
)

// Extractor parses a single source file and returns one record per
// function, method, or constructor. FileID is left unset; the caller
// assigns it before storage.
type Extractor interface {
	Language() string
	Extract(ctx context.Context, path string, src []byte) ([]store.Function, error)
}

// parseTree parses src with the given grammar. Returns ErrEncoding for
// non-UTF-8 input and ErrSyntax when the root node contains an error.
// The caller owns the returned tree and must Close it.
func parseTree(ctx context.Context, grammar *sitter.Language, src []byte) (*sitter.Tree, error) {
	if !utf8.Valid(src) {
		return nil, ErrEncoding
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if tree.RootNode().HasError() {
		tree.Close()
		return nil, ErrSyntax
	}
	return tree, nil
}

// walk visits node and all its descendants in document order.
func walk(node *sitter.Node, visit func(*sitter.Node)) {
	visit(node)
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visit)
	}
}

// newFunction fills the fields every extractor computes the same way:
// position, source text, and metrics. Kind defaults to "function".
func newFunction(node *sitter.Node, src []byte, language string) store.Function {
	code := node.Content(src)
	loc, commentLines := CountLines(code)
	return store.Function{
		Name:         "unknown",
		Kind:         "function",
		Language:     language,
		StartLine:    int(node.StartPoint().Row) + 1,
		StartCol:     int(node.StartPoint().Column),
		EndLine:      int(node.EndPoint().Row) + 1,
		EndCol:       int(node.EndPoint().Column),
		Code:         code,
		Complexity:   Complexity(code),
		LOC:          loc,
		CommentLines: commentLines,
	}
}

// lineCommentDoc collects the run of line comments directly above node whose
// text starts with prefix, e.g. "//" for Go or "///" for Rust doc comments.
// Lines are returned top to bottom, joined with newlines.
func lineCommentDoc(node *sitter.Node, src []byte, prefix string) string {
	var lines []string
	expected := int(node.StartPoint().Row)
	for prev := node.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		if !isCommentNode(prev.Type()) {
			break
		}
		// Only adjacent comments belong to the doc block.
		if int(prev.EndPoint().Row) != expected-1 {
			break
		}
		text := prev.Content(src)
		if !strings.HasPrefix(text, prefix) {
			break
		}
		lines = append(lines, strings.TrimSpace(strings.TrimPrefix(text, prefix)))
		expected = int(prev.StartPoint().Row)
	}
	if len(lines) == 0 {
		return ""
	}
	// Collected bottom-up; restore document order.
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n")
}

// blockCommentDoc returns the cleaned text of a block comment directly above
// node, or "" when none is present.
func blockCommentDoc(node *sitter.Node, src []byte) string {
	prev := node.PrevSibling()
	if prev == nil || !isCommentNode(prev.Type()) {
		return ""
	}
	text := prev.Content(src)
	if !strings.HasPrefix(text, "/*") {
		return ""
	}
	return cleanBlockComment(text)
}

func isCommentNode(nodeType string) bool {
	switch nodeType {
	case "comment", "line_comment", "block_comment":
		return true
	}
	return false
}

// cleanBlockComment strips /** ... */ delimiters and leading asterisks.
func cleanBlockComment(text string) string {
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// hasAncestor reports whether node has an ancestor of any of the given
// types, returning that ancestor.
func hasAncestor(node *sitter.Node, types ...string) (*sitter.Node, bool) {
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		for _, t := range types {
			if parent.Type() == t {
				return parent, true
			}
		}
	}
	return nil, false
}
