package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/mkondo/ragdex/internal/store"
)

type cppExtractor struct{}

func (cppExtractor) Language() string { return "cpp" }

func (cppExtractor) Extract(ctx context.Context, path string, src []byte) ([]store.Function, error) {
	tree, err := parseTree(ctx, cpp.GetLanguage(), src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var fns []store.Function
	walk(tree.RootNode(), func(n *sitter.Node) {
		if n.Type() == "function_definition" {
			fns = append(fns, cppFunction(n, src))
		}
	})
	return fns, nil
}

// cppFunction builds on the C extraction and adds method detection: inline
// definitions inside a class/struct body, and out-of-line qualified
// definitions (Type::method).
func cppFunction(node *sitter.Node, src []byte) store.Function {
	fn := cFunction(node, src, "cpp")

	if class, ok := hasAncestor(node, "class_specifier", "struct_specifier"); ok {
		fn.Kind = "method"
		if name := class.ChildByFieldName("name"); name != nil {
			fn.Receiver = name.Content(src)
		}
	}

	// Out-of-line definition: name carries the owning type.
	if owner, member, ok := splitQualifiedName(fn.Name); ok {
		fn.Kind = "method"
		fn.Receiver = owner
		fn.Name = member
	}

	// A method named after its owning type is a constructor.
	if fn.Kind == "method" && fn.Receiver != "" && fn.Name == fn.Receiver {
		fn.Kind = "constructor"
	}

	return fn
}

// splitQualifiedName splits "Type::method" into its owner and member parts.
func splitQualifiedName(name string) (owner, member string, ok bool) {
	idx := strings.LastIndex(name, "::")
	if idx < 0 {
		return "", "", false
	}
	return name[:idx], name[idx+2:], true
}
