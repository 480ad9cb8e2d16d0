package lang

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/mkondo/ragdex/internal/store"
)

type cExtractor struct{}

func (cExtractor) Language() string { return "c" }

func (cExtractor) Extract(ctx context.Context, path string, src []byte) ([]store.Function, error) {
	tree, err := parseTree(ctx, c.GetLanguage(), src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var fns []store.Function
	walk(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() == "function_definition" {
			fns = append(fns, cFunction(n, src, "c"))
		}
	})
	return fns, nil
}

// cStorageSet whitelists C storage-class modifiers worth recording.
var cStorageSet = map[string]bool{
	"static": true,
	"extern": true,
	"inline": true,
}

func cFunction(node *sitter.Node, src []byte, language string) store.Function {
	fn := newFunction(node, src, language)

	fn.Name = declaratorName(node.ChildByFieldName("declarator"), src)
	if typ := node.ChildByFieldName("type"); typ != nil {
		fn.ReturnType = typ.Content(src)
	}
	fn.Modifiers = cModifiers(node, src)
	fn.Arguments = cParamNames(node, src)
	fn.Doc = blockCommentDoc(node, src)

	return fn
}

func cModifiers(node *sitter.Node, src []byte) []string {
	var mods []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "storage_class_specifier" {
			continue
		}
		if text := child.Content(src); cStorageSet[text] {
			mods = append(mods, text)
		}
	}
	return mods
}

// declaratorName descends through pointer and function declarators to the
// identifier that names the function.
func declaratorName(declarator *sitter.Node, src []byte) string {
	for declarator != nil {
		switch declarator.Type() {
		case "identifier", "field_identifier", "qualified_identifier",
			"destructor_name", "operator_name":
			return declarator.Content(src)
		case "function_declarator", "pointer_declarator", "parenthesized_declarator":
			declarator = declarator.ChildByFieldName("declarator")
		default:
			return "unknown"
		}
	}
	return "unknown"
}

// cParamNames finds the function_declarator's parameter_list and collects
// one name per parameter_declaration, descending through pointer declarators.
func cParamNames(node *sitter.Node, src []byte) []string {
	fd := node.ChildByFieldName("declarator")
	for fd != nil && fd.Type() != "function_declarator" {
		fd = fd.ChildByFieldName("declarator")
	}
	if fd == nil {
		return nil
	}
	params := fd.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		if name := declaratorName(p.ChildByFieldName("declarator"), src); name != "unknown" {
			names = append(names, name)
		}
	}
	return names
}
