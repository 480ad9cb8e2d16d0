package lang

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/mkondo/ragdex/internal/store"
)

type javaExtractor struct{}

func (javaExtractor) Language() string { return "java" }

func (javaExtractor) Extract(ctx context.Context, path string, src []byte) ([]store.Function, error) {
	tree, err := parseTree(ctx, java.GetLanguage(), src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var fns []store.Function
	walk(tree.RootNode(), func(n *sitter.Node) {
		switch n.Type() {
		case "method_declaration", "constructor_declaration":
			fns = append(fns, javaFunction(n, src))
		}
	})
	return fns, nil
}

// javaModifierSet whitelists the modifiers worth recording.
var javaModifierSet = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"static":    true,
	"final":     true,
	"abstract":  true,
}

func javaFunction(node *sitter.Node, src []byte) store.Function {
	fn := newFunction(node, src, "java")

	if name := node.ChildByFieldName("name"); name != nil {
		fn.Name = name.Content(src)
	}
	if node.Type() == "constructor_declaration" {
		fn.Kind = "constructor"
	} else {
		fn.Kind = "method"
	}
	if class, ok := hasAncestor(node, "class_declaration", "interface_declaration", "enum_declaration"); ok {
		if name := class.ChildByFieldName("name"); name != nil {
			fn.Receiver = name.Content(src)
		}
	}
	fn.Modifiers = javaModifiers(node, src)
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Arguments = javaParamNames(params, src)
	}
	if typ := node.ChildByFieldName("type"); typ != nil {
		fn.ReturnType = typ.Content(src)
	}
	fn.Doc = blockCommentDoc(node, src)

	return fn
}

func javaModifiers(node *sitter.Node, src []byte) []string {
	var mods []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(child.ChildCount()); j++ {
			if text := child.Child(j).Content(src); javaModifierSet[text] {
				mods = append(mods, text)
			}
		}
	}
	return mods
}

func javaParamNames(params *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "formal_parameter", "spread_parameter":
			if name := p.ChildByFieldName("name"); name != nil {
				names = append(names, name.Content(src))
			}
		}
	}
	return names
}
