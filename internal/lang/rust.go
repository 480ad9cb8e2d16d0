package lang

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/mkondo/ragdex/internal/store"
)

type rustExtractor struct{}

func (rustExtractor) Language() string { return "rust" }

func (rustExtractor) Extract(ctx context.Context, path string, src []byte) ([]store.Function, error) {
	tree, err := parseTree(ctx, rust.GetLanguage(), src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var fns []store.Function
	walk(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() == "function_item" {
			fns = append(fns, rustFunction(n, src))
		}
	})
	return fns, nil
}

func rustFunction(node *sitter.Node, src []byte) store.Function {
	fn := newFunction(node, src, "rust")

	if name := node.ChildByFieldName("name"); name != nil {
		fn.Name = name.Content(src)
	}
	if impl, ok := hasAncestor(node, "impl_item"); ok {
		fn.Kind = "method"
		if typ := impl.ChildByFieldName("type"); typ != nil {
			fn.Receiver = typ.Content(src)
		}
		// Associated functions without self follow the constructor
		// convention when named new.
		if fn.Name == "new" && !rustHasSelfParam(node) {
			fn.Kind = "constructor"
		}
	}
	fn.Modifiers = rustModifiers(node, src)
	if params := node.ChildByFieldName("parameters"); params != nil {
		fn.Arguments = rustParamNames(params, src)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		fn.ReturnType = ret.Content(src)
	}
	fn.Doc = lineCommentDoc(node, src, "///")

	return fn
}

// rustModifiers collects the visibility modifier (pub, pub(crate), ...) and
// function modifiers (async, unsafe, const, extern).
func rustModifiers(node *sitter.Node, src []byte) []string {
	var mods []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "visibility_modifier":
			mods = append(mods, child.Content(src))
		case "function_modifiers":
			for j := 0; j < int(child.ChildCount()); j++ {
				mods = append(mods, child.Child(j).Content(src))
			}
		}
	}
	return mods
}

func rustParamNames(params *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() != "parameter" {
			continue // self_parameter et al.
		}
		if pattern := p.ChildByFieldName("pattern"); pattern != nil {
			names = append(names, pattern.Content(src))
		}
	}
	return names
}

func rustHasSelfParam(node *sitter.Node) bool {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return false
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		if params.NamedChild(i).Type() == "self_parameter" {
			return true
		}
	}
	return false
}
