package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/mkondo/ragdex/internal/store"
)

type goExtractor struct{}

func (goExtractor) Language() string { return "go" }

func (goExtractor) Extract(ctx context.Context, path string, src []byte) ([]store.Function, error) {
	tree, err := parseTree(ctx, golang.GetLanguage(), src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var fns []store.Function
	walk(tree.RootNode(), func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration", "method_declaration":
			fns = append(fns, goFunction(n, src))
		}
	})
	return fns, nil
}

func goFunction(node *sitter.Node, src []byte) store.Function {
	fn := newFunction(node, src, "go")

	if name := node.ChildByFieldName("name"); name != nil {
		fn.Name = name.Content(src)
	}
	if node.Type() == "method_declaration" {
		fn.Kind = "method"
		fn.Receiver = goReceiverType(node.ChildByFieldName("receiver"), src)
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Arguments = goParamNames(params, src)
	}
	if result := node.ChildByFieldName("result"); result != nil {
		fn.ReturnType = result.Content(src)
	}
	fn.Doc = lineCommentDoc(node, src, "//")

	return fn
}

// goParamNames collects parameter names from a parameter_list. Grouped
// parameters (func Add(a, b int)) yield one name per identifier.
func goParamNames(params *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		decl := params.NamedChild(i)
		switch decl.Type() {
		case "parameter_declaration", "variadic_parameter_declaration":
			for j := 0; j < int(decl.ChildCount()); j++ {
				if c := decl.Child(j); c.Type() == "identifier" {
					names = append(names, c.Content(src))
				}
			}
		}
	}
	return names
}

// goReceiverType returns the receiver's base type name, without the pointer
// star.
func goReceiverType(receiver *sitter.Node, src []byte) string {
	if receiver == nil {
		return ""
	}
	for i := 0; i < int(receiver.NamedChildCount()); i++ {
		decl := receiver.NamedChild(i)
		if decl.Type() != "parameter_declaration" {
			continue
		}
		if typ := decl.ChildByFieldName("type"); typ != nil {
			return strings.TrimPrefix(typ.Content(src), "*")
		}
	}
	return ""
}
