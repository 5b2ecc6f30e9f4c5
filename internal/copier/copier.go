// Package copier deep-clones syntax subtrees into freshly allocated nodes that
// share nothing with their source.
package copier

import (
	"github.com/jward/tsreassemble/internal/ast"
	"github.com/jward/tsreassemble/internal/diag"
)

// Copier clones nodes. A node with no copy rule is returned as-is and
// reported to the collector.
type Copier struct {
	diags *diag.Collector
}

// New returns a Copier reporting to diags. A nil collector discards.
func New(diags *diag.Collector) *Copier {
	if diags == nil {
		diags = diag.NewCollector(nil)
	}
	return &Copier{diags: diags}
}

// Copy clones any node.
func (c *Copier) Copy(n ast.Node) ast.Node {
	switch n := n.(type) {
	case nil:
		return nil
	case ast.TypeNode:
		return c.CopyType(n)
	case ast.TypeElement:
		return c.copyTypeElement(n)
	case ast.ClassMember:
		return c.copyMember(n)
	case ast.Statement:
		return c.copyStatement(n)
	case *ast.ComputedPropertyName, *ast.QualifiedName:
		return c.copyName(n)
	case ast.Expression:
		return c.CopyExpression(n)
	case *ast.ObjectBindingPattern:
		return c.copyBindingName(n)
	case *ast.ArrayBindingPattern:
		return c.copyBindingName(n)
	case *ast.BindingElement:
		return c.copyBindingElement(n)
	case *ast.Parameter:
		return c.copyParameter(n)
	case *ast.TypeParameter:
		return c.copyTypeParameter(n)
	case *ast.VariableDeclaration:
		return c.CopyDeclarator(n)
	case *ast.Decorator:
		return c.copyDecorator(n)
	case *ast.Modifier:
		return &ast.Modifier{Token: n.Token}
	case *ast.HeritageClause:
		return c.copyHeritageClause(n)
	case *ast.ExpressionWithTypeArguments:
		return c.copyExprWithTypeArgs(n)
	case *ast.Block:
		return copyBlock(n)
	case *ast.SourceFile:
		return &ast.SourceFile{FileName: n.FileName, Statements: c.CopyNodes(n.Statements)}
	}
	c.diags.Unsupported(n, "copy")
	return n
}

// CopyNodes clones an ordered statement list.
func (c *Copier) CopyNodes(stmts []ast.Statement) []ast.Statement {
	if stmts == nil {
		return nil
	}
	out := make([]ast.Statement, len(stmts))
	for i, s := range stmts {
		out[i] = c.copyStatement(s)
	}
	return out
}

// CopyExpression clones a runtime expression.
func (c *Copier) CopyExpression(e ast.Expression) ast.Expression {
	switch e := e.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		return copyIdent(e)
	case *ast.PrivateIdentifier:
		return &ast.PrivateIdentifier{Text: e.Text}
	case *ast.StringLiteral:
		return &ast.StringLiteral{Text: e.Text, SingleQuote: e.SingleQuote}
	case *ast.NumericLiteral:
		return &ast.NumericLiteral{Text: e.Text}
	case *ast.BooleanLiteral:
		return &ast.BooleanLiteral{Value: e.Value}
	case *ast.OmittedExpression:
		return &ast.OmittedExpression{}
	case *ast.RawExpression:
		return &ast.RawExpression{Text: e.Text}
	}
	c.diags.Unsupported(e, "copy expression")
	return e
}

// CopyPropertyName clones a member name.
func (c *Copier) CopyPropertyName(n ast.PropertyName) ast.PropertyName {
	switch n := n.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		return copyIdent(n)
	case *ast.PrivateIdentifier:
		return &ast.PrivateIdentifier{Text: n.Text}
	case *ast.StringLiteral:
		return &ast.StringLiteral{Text: n.Text, SingleQuote: n.SingleQuote}
	case *ast.NumericLiteral:
		return &ast.NumericLiteral{Text: n.Text}
	case *ast.ComputedPropertyName:
		return &ast.ComputedPropertyName{Expression: c.CopyExpression(n.Expression)}
	}
	c.diags.Unsupported(n, "copy property name")
	return n
}

// CopyEntityName clones a possibly qualified type name.
func (c *Copier) CopyEntityName(n ast.EntityName) ast.EntityName {
	switch n := n.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		return copyIdent(n)
	case *ast.QualifiedName:
		return &ast.QualifiedName{Left: c.CopyEntityName(n.Left), Right: copyIdent(n.Right)}
	}
	c.diags.Unsupported(n, "copy entity name")
	return n
}

func (c *Copier) copyName(n ast.Node) ast.Node {
	switch n := n.(type) {
	case *ast.ComputedPropertyName:
		return c.CopyPropertyName(n)
	case *ast.QualifiedName:
		return c.CopyEntityName(n)
	}
	return n
}

// CopyBindingName clones a parameter or declarator target.
func (c *Copier) CopyBindingName(n ast.BindingName) ast.BindingName {
	return c.copyBindingName(n)
}

func (c *Copier) copyBindingName(n ast.BindingName) ast.BindingName {
	switch n := n.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		return copyIdent(n)
	case *ast.ObjectBindingPattern:
		out := &ast.ObjectBindingPattern{}
		if n.Elements != nil {
			out.Elements = make([]*ast.BindingElement, len(n.Elements))
			for i, e := range n.Elements {
				out.Elements[i] = c.copyBindingElement(e)
			}
		}
		return out
	case *ast.ArrayBindingPattern:
		out := &ast.ArrayBindingPattern{}
		if n.Elements != nil {
			out.Elements = make([]ast.ArrayBindingElement, len(n.Elements))
			for i, e := range n.Elements {
				switch e := e.(type) {
				case *ast.OmittedExpression:
					out.Elements[i] = &ast.OmittedExpression{}
				case *ast.BindingElement:
					out.Elements[i] = c.copyBindingElement(e)
				case nil:
				default:
					c.diags.Unsupported(e, "copy array binding element")
					out.Elements[i] = e
				}
			}
		}
		return out
	}
	c.diags.Unsupported(n, "copy binding name")
	return n
}

func (c *Copier) copyBindingElement(e *ast.BindingElement) *ast.BindingElement {
	if e == nil {
		return nil
	}
	return &ast.BindingElement{
		Rest:         e.Rest,
		PropertyName: c.CopyPropertyName(e.PropertyName),
		Name:         c.copyBindingName(e.Name),
		Initializer:  c.CopyExpression(e.Initializer),
	}
}

// CopyParameters clones a parameter list.
func (c *Copier) CopyParameters(ps []*ast.Parameter) []*ast.Parameter {
	if ps == nil {
		return nil
	}
	out := make([]*ast.Parameter, len(ps))
	for i, p := range ps {
		out[i] = c.copyParameter(p)
	}
	return out
}

func (c *Copier) copyParameter(p *ast.Parameter) *ast.Parameter {
	if p == nil {
		return nil
	}
	return &ast.Parameter{
		Decorators:  c.CopyDecorators(p.Decorators),
		Modifiers:   c.CopyModifiers(p.Modifiers),
		Rest:        p.Rest,
		Name:        c.copyBindingName(p.Name),
		Optional:    p.Optional,
		Type:        c.CopyType(p.Type),
		Initializer: c.CopyExpression(p.Initializer),
	}
}

// CopyTypeParameters clones a type parameter list.
func (c *Copier) CopyTypeParameters(tps []*ast.TypeParameter) []*ast.TypeParameter {
	if tps == nil {
		return nil
	}
	out := make([]*ast.TypeParameter, len(tps))
	for i, tp := range tps {
		out[i] = c.copyTypeParameter(tp)
	}
	return out
}

func (c *Copier) copyTypeParameter(tp *ast.TypeParameter) *ast.TypeParameter {
	if tp == nil {
		return nil
	}
	return &ast.TypeParameter{
		Name:       copyIdent(tp.Name),
		Constraint: c.CopyType(tp.Constraint),
		Default:    c.CopyType(tp.Default),
	}
}

// CopyModifiers clones a modifier list.
func (c *Copier) CopyModifiers(ms []*ast.Modifier) []*ast.Modifier {
	if ms == nil {
		return nil
	}
	out := make([]*ast.Modifier, 0, len(ms))
	for _, m := range ms {
		if m != nil {
			out = append(out, &ast.Modifier{Token: m.Token})
		}
	}
	return out
}

// CopyDecorators clones a decorator list.
func (c *Copier) CopyDecorators(ds []*ast.Decorator) []*ast.Decorator {
	if ds == nil {
		return nil
	}
	out := make([]*ast.Decorator, 0, len(ds))
	for _, d := range ds {
		if d != nil {
			out = append(out, c.copyDecorator(d))
		}
	}
	return out
}

func (c *Copier) copyDecorator(d *ast.Decorator) *ast.Decorator {
	return &ast.Decorator{Expression: c.CopyExpression(d.Expression)}
}

// CopyHeritageClauses clones extends/implements clauses.
func (c *Copier) CopyHeritageClauses(hs []*ast.HeritageClause) []*ast.HeritageClause {
	if hs == nil {
		return nil
	}
	out := make([]*ast.HeritageClause, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			out = append(out, c.copyHeritageClause(h))
		}
	}
	return out
}

func (c *Copier) copyHeritageClause(h *ast.HeritageClause) *ast.HeritageClause {
	out := &ast.HeritageClause{Token: h.Token}
	if h.Types != nil {
		out.Types = make([]*ast.ExpressionWithTypeArguments, 0, len(h.Types))
		for _, t := range h.Types {
			if t != nil {
				out.Types = append(out.Types, c.copyExprWithTypeArgs(t))
			}
		}
	}
	return out
}

func (c *Copier) copyExprWithTypeArgs(e *ast.ExpressionWithTypeArguments) *ast.ExpressionWithTypeArguments {
	return &ast.ExpressionWithTypeArguments{
		Expression:    c.CopyExpression(e.Expression),
		TypeArguments: c.CopyTypes(e.TypeArguments),
	}
}

// CopyDeclarator clones a variable declarator.
func (c *Copier) CopyDeclarator(d *ast.VariableDeclaration) *ast.VariableDeclaration {
	if d == nil {
		return nil
	}
	return &ast.VariableDeclaration{
		Name:        c.copyBindingName(d.Name),
		Definite:    d.Definite,
		Type:        c.CopyType(d.Type),
		Initializer: c.CopyExpression(d.Initializer),
	}
}

func (c *Copier) copySignature(s ast.Signature) ast.Signature {
	return ast.Signature{
		TypeParameters: c.CopyTypeParameters(s.TypeParameters),
		Parameters:     c.CopyParameters(s.Parameters),
		Type:           c.CopyType(s.Type),
	}
}

func (c *Copier) copyMember(m ast.ClassMember) ast.ClassMember {
	switch m := m.(type) {
	case nil:
		return nil
	case *ast.PropertyDeclaration:
		return &ast.PropertyDeclaration{
			Decorators:  c.CopyDecorators(m.Decorators),
			Modifiers:   c.CopyModifiers(m.Modifiers),
			Name:        c.CopyPropertyName(m.Name),
			Optional:    m.Optional,
			Definite:    m.Definite,
			Type:        c.CopyType(m.Type),
			Initializer: c.CopyExpression(m.Initializer),
		}
	case *ast.MethodDeclaration:
		return &ast.MethodDeclaration{
			Decorators: c.CopyDecorators(m.Decorators),
			Modifiers:  c.CopyModifiers(m.Modifiers),
			Asterisk:   m.Asterisk,
			Name:       c.CopyPropertyName(m.Name),
			Optional:   m.Optional,
			Signature:  c.copySignature(m.Signature),
			Body:       copyBlock(m.Body),
		}
	case *ast.GetAccessor:
		return &ast.GetAccessor{
			Decorators: c.CopyDecorators(m.Decorators),
			Modifiers:  c.CopyModifiers(m.Modifiers),
			Name:       c.CopyPropertyName(m.Name),
			Signature:  c.copySignature(m.Signature),
			Body:       copyBlock(m.Body),
		}
	case *ast.SetAccessor:
		return &ast.SetAccessor{
			Decorators: c.CopyDecorators(m.Decorators),
			Modifiers:  c.CopyModifiers(m.Modifiers),
			Name:       c.CopyPropertyName(m.Name),
			Signature:  c.copySignature(m.Signature),
			Body:       copyBlock(m.Body),
		}
	case *ast.Constructor:
		return &ast.Constructor{
			Decorators: c.CopyDecorators(m.Decorators),
			Modifiers:  c.CopyModifiers(m.Modifiers),
			Parameters: c.CopyParameters(m.Parameters),
			Body:       copyBlock(m.Body),
		}
	case *ast.RawMember:
		return &ast.RawMember{Text: m.Text, Recovered: m.Recovered}
	}
	c.diags.Unsupported(m, "copy class member")
	return m
}

func (c *Copier) copyStatement(s ast.Statement) ast.Statement {
	switch s := s.(type) {
	case nil:
		return nil
	case *ast.ClassDeclaration:
		out := &ast.ClassDeclaration{
			Decorators:      c.CopyDecorators(s.Decorators),
			Modifiers:       c.CopyModifiers(s.Modifiers),
			Name:            copyIdent(s.Name),
			TypeParameters:  c.CopyTypeParameters(s.TypeParameters),
			HeritageClauses: c.CopyHeritageClauses(s.HeritageClauses),
		}
		if s.Members != nil {
			out.Members = make([]ast.ClassMember, len(s.Members))
			for i, m := range s.Members {
				out.Members[i] = c.copyMember(m)
			}
		}
		return out
	case *ast.FunctionDeclaration:
		return &ast.FunctionDeclaration{
			Modifiers: c.CopyModifiers(s.Modifiers),
			Asterisk:  s.Asterisk,
			Name:      copyIdent(s.Name),
			Signature: c.copySignature(s.Signature),
			Body:      copyBlock(s.Body),
		}
	case *ast.VariableStatement:
		out := &ast.VariableStatement{
			Modifiers: c.CopyModifiers(s.Modifiers),
			Keyword:   s.Keyword,
		}
		if s.Declarations != nil {
			out.Declarations = make([]*ast.VariableDeclaration, len(s.Declarations))
			for i, d := range s.Declarations {
				out.Declarations[i] = c.CopyDeclarator(d)
			}
		}
		return out
	case *ast.RawStatement:
		return &ast.RawStatement{Text: s.Text, Recovered: s.Recovered}
	}
	c.diags.Unsupported(s, "copy statement")
	return s
}

func (c *Copier) copyTypeElement(e ast.TypeElement) ast.TypeElement {
	switch e := e.(type) {
	case nil:
		return nil
	case *ast.PropertySignature:
		return &ast.PropertySignature{
			Modifiers: c.CopyModifiers(e.Modifiers),
			Name:      c.CopyPropertyName(e.Name),
			Optional:  e.Optional,
			Type:      c.CopyType(e.Type),
		}
	case *ast.MethodSignature:
		return &ast.MethodSignature{
			Name:      c.CopyPropertyName(e.Name),
			Optional:  e.Optional,
			Signature: c.copySignature(e.Signature),
		}
	case *ast.CallSignature:
		return &ast.CallSignature{Signature: c.copySignature(e.Signature)}
	case *ast.ConstructSignature:
		return &ast.ConstructSignature{Signature: c.copySignature(e.Signature)}
	case *ast.IndexSignature:
		return &ast.IndexSignature{
			Modifiers:  c.CopyModifiers(e.Modifiers),
			Parameters: c.CopyParameters(e.Parameters),
			Type:       c.CopyType(e.Type),
		}
	}
	c.diags.Unsupported(e, "copy type element")
	return e
}

func copyIdent(id *ast.Identifier) *ast.Identifier {
	if id == nil {
		return nil
	}
	return &ast.Identifier{Text: id.Text}
}

func copyBlock(b *ast.Block) *ast.Block {
	if b == nil {
		return nil
	}
	return &ast.Block{Text: b.Text}
}
