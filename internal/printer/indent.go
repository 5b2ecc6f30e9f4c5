package printer

import (
	"strings"

	"github.com/jward/tsreassemble/internal/ast"
)

// DetectIndent guesses the indentation unit of the source a tree was parsed
// from by looking at the verbatim text it kept: bodies, raw statements and
// raw members. It returns "" when the text has no indented lines.
func DetectIndent(stmts []ast.Statement) string {
	spaces := 0
	for _, s := range stmts {
		found := ""
		ast.Inspect(s, func(n ast.Node) bool {
			if found != "" {
				return false
			}
			var text string
			switch n := n.(type) {
			case *ast.Block:
				text = n.Text
			case *ast.RawStatement:
				text = n.Text
			case *ast.RawMember:
				text = n.Text
			default:
				return true
			}
			for _, line := range strings.Split(text, "\n")[1:] {
				lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
				switch {
				case lead == "" || lead == line:
				case lead[0] == '\t':
					found = "\t"
					return false
				case len(lead)%2 == 0 && (spaces == 0 || len(lead) < spaces):
					// Odd widths are the " *" continuation lines of block
					// comments.
					spaces = len(lead)
				}
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return strings.Repeat(" ", spaces)
}
