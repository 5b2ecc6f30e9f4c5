package parse

import (
	"strings"

	"github.com/dlclark/regexp2"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/tsreassemble/internal/ast"
)

// anonymousDefaultName stands in for the missing name of a bodiless
// `export default function (...)` signature, which the grammar only accepts
// when named.
const anonymousDefaultName = "__tsreassemble_default__"

var anonymousDefault = regexp2.MustCompile(
	`^(export\s+default\s+(?:async\s+)?function\s*\*?)\s*\(`,
	regexp2.Multiline,
)

// nameAnonymousDefaults gives anonymous default function signatures a
// placeholder name.
func nameAnonymousDefaults(src []byte) []byte {
	out, err := anonymousDefault.Replace(string(src), "$1 "+anonymousDefaultName+"(", -1, -1)
	if err != nil {
		return src
	}
	return []byte(out)
}

// unnameAnonymousDefaults removes the placeholder names again.
func unnameAnonymousDefaults(file *ast.SourceFile) {
	for _, s := range file.Statements {
		switch s := s.(type) {
		case *ast.FunctionDeclaration:
			if s.Name != nil && s.Name.Text == anonymousDefaultName {
				s.Name = nil
			}
		case *ast.RawStatement:
			s.Text = strings.ReplaceAll(s.Text, " "+anonymousDefaultName+"(", " (")
		}
	}
}

// damaged reports whether n has a parse error that prevents lowering it
// structurally. Errors inside the members of a class body are recovered
// member by member and do not count.
func damaged(n *sitter.Node) bool {
	if !n.HasError() {
		return false
	}
	switch n.Type() {
	case "export_statement", "ambient_declaration",
		"class_declaration", "abstract_class_declaration", "class", "class_body":
	default:
		return true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch == nil || !ch.HasError() {
			continue
		}
		if n.Type() == "class_body" && ch.IsNamed() && !ch.IsMissing() {
			continue
		}
		if damaged(ch) {
			return true
		}
	}
	return false
}
