// Package reassembler merges the type-level information of a matched
// declaration node into its compiled counterpart.
//
// Every rule builds a new node: the compiled input is shallow-copied and only
// type-level fields are replaced, so neither input tree is ever mutated.
// Subtrees that carry no type information (bodies, initializers, names) are
// shared with the compiled input. Anything taken from the declaration tree is
// deep-copied first.
package reassembler

import (
	"fmt"

	"github.com/jward/tsreassemble/internal/ast"
	"github.com/jward/tsreassemble/internal/copier"
	"github.com/jward/tsreassemble/internal/diag"
	"github.com/jward/tsreassemble/internal/matcher"
	"github.com/jward/tsreassemble/internal/printer"
)

// Reassembler reconciles matched node pairs. It is not safe for concurrent
// use; build one per call.
type Reassembler struct {
	copier *copier.Copier
	diags  *diag.Collector
}

// New returns a Reassembler. Either argument may be nil.
func New(c *copier.Copier, diags *diag.Collector) *Reassembler {
	if diags == nil {
		diags = diag.NewCollector(nil)
	}
	if c == nil {
		c = copier.New(diags)
	}
	return &Reassembler{copier: c, diags: diags}
}

// Reassemble returns compiled with declaration's type information merged in.
// The pair must be of the same kind, except for class members where an
// accessor and a property of the same name may be paired.
func (r *Reassembler) Reassemble(compiled, declaration ast.Node) (ast.Node, error) {
	if compiled == nil || declaration == nil {
		return nil, diag.Invariantf("reassemble: nil node in matched pair")
	}
	if cm, ok := compiled.(ast.ClassMember); ok {
		dm, ok := declaration.(ast.ClassMember)
		if !ok {
			return nil, kindMismatch(compiled, declaration)
		}
		return r.ReassembleMember(cm, dm)
	}
	if compiled.Kind() != declaration.Kind() {
		return nil, kindMismatch(compiled, declaration)
	}

	var (
		out ast.Node
		err error
	)
	switch c := compiled.(type) {
	case *ast.ClassDeclaration:
		out, err = r.reassembleClass(c, declaration.(*ast.ClassDeclaration))
	case *ast.FunctionDeclaration:
		out, err = r.reassembleFunction(c, declaration.(*ast.FunctionDeclaration))
	case *ast.VariableStatement:
		out, err = r.reassembleVariableStatement(c, declaration.(*ast.VariableStatement))
	case *ast.VariableDeclaration:
		return r.reassembleDeclarator(c, declaration.(*ast.VariableDeclaration)), nil
	case *ast.Parameter:
		return r.reassembleParameter(c, declaration.(*ast.Parameter)), nil
	case *ast.Identifier, *ast.PrivateIdentifier, *ast.StringLiteral,
		*ast.NumericLiteral, *ast.BooleanLiteral, *ast.ComputedPropertyName:
		return compiled, nil
	default:
		r.diags.Unsupported(compiled, "reassemble")
		return compiled, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReassembleStatement reconciles a matched pair of top-level statements.
func (r *Reassembler) ReassembleStatement(compiled, declaration ast.Statement) (ast.Statement, error) {
	n, err := r.Reassemble(compiled, declaration)
	if err != nil {
		return nil, err
	}
	return n.(ast.Statement), nil
}

func kindMismatch(compiled, declaration ast.Node) error {
	return diag.Invariantf("matched pair has kinds %s and %s", compiled.Kind(), declaration.Kind())
}

func (r *Reassembler) reassembleClass(c, d *ast.ClassDeclaration) (*ast.ClassDeclaration, error) {
	out := *c
	out.Modifiers = r.unionModifiers(c.Modifiers, d.Modifiers)
	out.TypeParameters = r.copier.CopyTypeParameters(d.TypeParameters)
	out.HeritageClauses = r.mergeHeritage(c.HeritageClauses, d.HeritageClauses)

	if c.Members != nil {
		out.Members = make([]ast.ClassMember, len(c.Members))
	}
	for i, m := range c.Members {
		if m == nil {
			return nil, diag.Invariantf("class %s: nil member at index %d", className(c), i)
		}
		match := matcher.FindMatchingClassMember(m, d)
		if match == nil {
			if _, raw := m.(*ast.RawMember); !raw {
				r.diags.Report(diag.CodeUnmatched, m.Kind(), "class %s: no declaration for member %s",
					className(c), memberLabel(m))
			}
			out.Members[i] = m
			continue
		}
		merged, err := r.ReassembleMember(m, match)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", className(c), err)
		}
		out.Members[i] = merged
	}
	return &out, nil
}

// mergeHeritage keeps the compiled extends expression, which is runtime
// code, and takes its type arguments from the declared extends clause.
// Implements clauses exist only in the declaration and are copied whole.
func (r *Reassembler) mergeHeritage(compiled, declared []*ast.HeritageClause) []*ast.HeritageClause {
	var declExtends *ast.ExpressionWithTypeArguments
	for _, h := range declared {
		if h != nil && h.Token == ast.HeritageExtends && len(h.Types) > 0 {
			declExtends = h.Types[0]
		}
	}

	var out []*ast.HeritageClause
	for _, h := range compiled {
		if h == nil || h.Token != ast.HeritageExtends {
			continue
		}
		clause := &ast.HeritageClause{Token: ast.HeritageExtends}
		for _, t := range h.Types {
			if t == nil {
				continue
			}
			merged := *t
			if declExtends != nil {
				merged.TypeArguments = r.copier.CopyTypes(declExtends.TypeArguments)
			}
			clause.Types = append(clause.Types, &merged)
		}
		out = append(out, clause)
	}
	for _, h := range declared {
		if h != nil && h.Token == ast.HeritageImplements {
			out = append(out, r.copier.CopyHeritageClauses([]*ast.HeritageClause{h})...)
		}
	}
	return out
}

func (r *Reassembler) reassembleFunction(c, d *ast.FunctionDeclaration) (*ast.FunctionDeclaration, error) {
	out := *c
	sig, err := r.mergeSignature(c.Signature, d.Signature, functionLabel(c))
	if err != nil {
		return nil, err
	}
	out.Signature = sig
	out.Modifiers = r.unionModifiers(c.Modifiers, d.Modifiers)
	return &out, nil
}

func (r *Reassembler) reassembleVariableStatement(c, d *ast.VariableStatement) (*ast.VariableStatement, error) {
	out := *c
	out.Modifiers = r.unionModifiers(c.Modifiers, d.Modifiers)
	if c.Declarations != nil {
		out.Declarations = make([]*ast.VariableDeclaration, len(c.Declarations))
	}
	for i, v := range c.Declarations {
		if v == nil {
			return nil, diag.Invariantf("%s statement: nil declarator at index %d", c.Keyword, i)
		}
		match := matcher.FindMatchingDeclarator(v, d)
		if match == nil {
			out.Declarations[i] = v
			continue
		}
		out.Declarations[i] = r.reassembleDeclarator(v, match)
	}
	return &out, nil
}

func (r *Reassembler) reassembleDeclarator(c, d *ast.VariableDeclaration) *ast.VariableDeclaration {
	out := *c
	out.Type = r.copier.CopyType(d.Type)
	return &out
}

// unionModifiers returns compiled's modifiers followed by every declared
// modifier kind not already present. declare is ambient-only and is never
// carried over.
func (r *Reassembler) unionModifiers(compiled, declared []*ast.Modifier) []*ast.Modifier {
	out := r.copier.CopyModifiers(compiled)
	present := ast.ModifierSet(compiled)
	for _, m := range declared {
		if m == nil || m.Token == ast.ModifierDeclare || present[m.Token] {
			continue
		}
		present[m.Token] = true
		out = append(out, &ast.Modifier{Token: m.Token})
	}
	return out
}

func className(c *ast.ClassDeclaration) string {
	if c.Name == nil {
		return "<anonymous>"
	}
	return c.Name.Text
}

func functionLabel(f *ast.FunctionDeclaration) string {
	if f.Name == nil {
		return "function <default>"
	}
	return "function " + f.Name.Text
}

func memberLabel(m ast.ClassMember) string {
	if _, ok := m.(*ast.Constructor); ok {
		return "constructor"
	}
	name := ast.MemberName(m)
	if text := ast.NameText(name); text != "" {
		return text
	}
	if name != nil {
		return printer.Node(name)
	}
	return m.Kind().String()
}
