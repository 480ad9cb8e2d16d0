package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/mkondo/ragdex/internal/store"
)

type pythonExtractor struct{}

func (pythonExtractor) Language() string { return "python" }

func (pythonExtractor) Extract(ctx context.Context, path string, src []byte) ([]store.Function, error) {
	tree, err := parseTree(ctx, python.GetLanguage(), src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var fns []store.Function
	walk(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() == "function_definition" {
			fns = append(fns, pyFunction(n, src))
		}
	})
	return fns, nil
}

func pyFunction(node *sitter.Node, src []byte) store.Function {
	fn := newFunction(node, src, "python")

	if name := node.ChildByFieldName("name"); name != nil {
		fn.Name = name.Content(src)
	}
	if class, ok := hasAncestor(node, "class_definition"); ok {
		fn.Kind = "method"
		if name := class.ChildByFieldName("name"); name != nil {
			fn.Receiver = name.Content(src)
		}
		if fn.Name == "__init__" {
			fn.Kind = "constructor"
		}
	}
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Arguments = pyParamNames(params, src)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		fn.ReturnType = ret.Content(src)
	}
	fn.Doc = pyDocstring(node, src)

	return fn
}

// pyParamNames collects parameter names, skipping self.
func pyParamNames(params *sitter.Node, src []byte) []string {
	var names []string
	add := func(name string) {
		if name != "" && name != "self" {
			names = append(names, name)
		}
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			add(p.Content(src))
		case "typed_parameter":
			// First identifier child is the name; the type follows the colon.
			for j := 0; j < int(p.ChildCount()); j++ {
				if c := p.Child(j); c.Type() == "identifier" {
					add(c.Content(src))
					break
				}
			}
		case "default_parameter", "typed_default_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				add(name.Content(src))
			}
		}
	}
	return names
}

// pyDocstring returns the docstring when the first statement of the body is
// a string expression.
func pyDocstring(node *sitter.Node, src []byte) string {
	body := node.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" {
		return ""
	}
	for i := 0; i < int(first.NamedChildCount()); i++ {
		if c := first.NamedChild(i); c.Type() == "string" {
			return trimPyQuotes(c.Content(src))
		}
	}
	return ""
}

func trimPyQuotes(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return strings.TrimSpace(s[len(q) : len(s)-len(q)])
		}
	}
	return s
}
