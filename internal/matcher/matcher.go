// Package matcher decides whether a compiled node and a declaration node
// describe the same program element. Matching is structural and never uses
// node identity.
package matcher

import "github.com/jward/tsreassemble/internal/ast"

// IsMatching reports whether compiled and declaration denote the same
// element. Raw nodes never match.
func IsMatching(compiled, declaration ast.Node) bool {
	if compiled == nil || declaration == nil {
		return false
	}
	switch c := compiled.(type) {
	case *ast.ClassDeclaration:
		d, ok := declaration.(*ast.ClassDeclaration)
		return ok && isClassMatching(c, d)
	case *ast.FunctionDeclaration:
		d, ok := declaration.(*ast.FunctionDeclaration)
		return ok && isFunctionMatching(c, d)
	case *ast.VariableStatement:
		d, ok := declaration.(*ast.VariableStatement)
		return ok && isVariableStatementMatching(c, d)
	case ast.ClassMember:
		d, ok := declaration.(ast.ClassMember)
		return ok && IsClassMemberMatching(c, d)
	case ast.PropertyName:
		d, ok := declaration.(ast.PropertyName)
		return ok && IsPropertyNameMatching(c, d)
	case ast.Expression:
		d, ok := declaration.(ast.Expression)
		return ok && isExpressionMatching(c, d)
	}
	return false
}

// FindMatch returns the first candidate matching node, or nil.
func FindMatch[T ast.Node](node ast.Node, candidates []T) T {
	var zero T
	for _, c := range candidates {
		if IsMatching(node, c) {
			return c
		}
	}
	return zero
}

// IsPropertyNameMatching reports whether two member names are equal. Both
// must be the same variant.
func IsPropertyNameMatching(compiled, declaration ast.PropertyName) bool {
	switch c := compiled.(type) {
	case *ast.Identifier:
		d, ok := declaration.(*ast.Identifier)
		return ok && c != nil && d != nil && c.Text == d.Text
	case *ast.PrivateIdentifier:
		d, ok := declaration.(*ast.PrivateIdentifier)
		return ok && c != nil && d != nil && c.Text == d.Text
	case *ast.StringLiteral:
		d, ok := declaration.(*ast.StringLiteral)
		return ok && c != nil && d != nil && c.Text == d.Text
	case *ast.NumericLiteral:
		d, ok := declaration.(*ast.NumericLiteral)
		return ok && c != nil && d != nil && c.Text == d.Text
	case *ast.ComputedPropertyName:
		d, ok := declaration.(*ast.ComputedPropertyName)
		return ok && c != nil && d != nil && isExpressionMatching(c.Expression, d.Expression)
	}
	return false
}

func isExpressionMatching(compiled, declaration ast.Expression) bool {
	switch c := compiled.(type) {
	case *ast.Identifier, *ast.PrivateIdentifier, *ast.StringLiteral, *ast.NumericLiteral:
		d, ok := declaration.(ast.PropertyName)
		return ok && IsPropertyNameMatching(c.(ast.PropertyName), d)
	case *ast.BooleanLiteral:
		d, ok := declaration.(*ast.BooleanLiteral)
		return ok && c.Value == d.Value
	case *ast.RawExpression:
		d, ok := declaration.(*ast.RawExpression)
		return ok && c.Text == d.Text
	}
	return false
}

// IsClassMemberMatching reports whether two class members match by name.
// Constructors always match each other.
func IsClassMemberMatching(compiled, declaration ast.ClassMember) bool {
	if _, ok := compiled.(*ast.Constructor); ok {
		_, ok := declaration.(*ast.Constructor)
		return ok
	}
	cn := ast.MemberName(compiled)
	dn := ast.MemberName(declaration)
	if cn == nil || dn == nil {
		return false
	}
	return IsPropertyNameMatching(cn, dn)
}

// FindMatchingClassMember returns the member of class matching member, or
// nil. Candidates on the same side (static or instance) are preferred, then
// candidates of the same kind so that a getter and setter sharing a name
// each find their own declaration. Ties go to the first in document order.
func FindMatchingClassMember(member ast.ClassMember, class *ast.ClassDeclaration) ast.ClassMember {
	if class == nil || member == nil {
		return nil
	}
	var (
		best      ast.ClassMember
		bestScore = -1
	)
	static := isStatic(member)
	for _, m := range class.Members {
		if m == nil || !IsClassMemberMatching(member, m) {
			continue
		}
		score := 0
		if isStatic(m) == static {
			score += 2
		}
		if m.Kind() == member.Kind() {
			score++
		}
		if score == 3 {
			return m
		}
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best
}

func isStatic(m ast.ClassMember) bool {
	return ast.HasModifier(ast.MemberModifiers(m), ast.ModifierStatic)
}

// HasMatchingClassMember reports whether class has a member matching member.
func HasMatchingClassMember(member ast.ClassMember, class *ast.ClassDeclaration) bool {
	return FindMatchingClassMember(member, class) != nil
}

func isClassMatching(compiled, declaration *ast.ClassDeclaration) bool {
	if compiled.Name != nil && declaration.Name != nil {
		return compiled.Name.Text == declaration.Name.Text
	}
	// Anonymous: every compiled member must be covered by the declaration.
	for _, m := range compiled.Members {
		if _, raw := m.(*ast.RawMember); raw || m == nil {
			continue
		}
		if !HasMatchingClassMember(m, declaration) {
			return false
		}
	}
	return true
}

func isFunctionMatching(compiled, declaration *ast.FunctionDeclaration) bool {
	switch {
	case compiled.Name != nil && declaration.Name != nil:
		return compiled.Name.Text == declaration.Name.Text
	case compiled.Name == nil && declaration.Name == nil:
		return ast.HasModifier(compiled.Modifiers, ast.ModifierDefault) &&
			ast.HasModifier(declaration.Modifiers, ast.ModifierDefault)
	}
	return false
}

func isVariableStatementMatching(compiled, declaration *ast.VariableStatement) bool {
	named := 0
	for _, d := range compiled.Declarations {
		if d == nil {
			continue
		}
		if _, ok := d.Name.(*ast.Identifier); !ok {
			continue
		}
		named++
		if FindMatchingDeclarator(d, declaration) == nil {
			return false
		}
	}
	return named > 0
}

// FindMatchingDeclarator returns the declarator of stmt binding the same
// identifier as decl, or nil. Destructuring declarators never match.
func FindMatchingDeclarator(decl *ast.VariableDeclaration, stmt *ast.VariableStatement) *ast.VariableDeclaration {
	if decl == nil || stmt == nil {
		return nil
	}
	id, ok := decl.Name.(*ast.Identifier)
	if !ok || id == nil {
		return nil
	}
	for _, d := range stmt.Declarations {
		if d == nil {
			continue
		}
		if other, ok := d.Name.(*ast.Identifier); ok && other != nil && other.Text == id.Text {
			return d
		}
	}
	return nil
}
