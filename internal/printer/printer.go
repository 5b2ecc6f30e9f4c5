// Package printer renders a syntax tree back to TypeScript source text.
//
// Verbatim nodes (bodies, raw statements, raw expressions) are written as
// they appeared in the source; everything else is laid out by the printer.
package printer

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jward/tsreassemble/internal/ast"
)

// Printer turns trees into TypeScript text.
type Printer struct {
	indentLevel int
	indentUnit  string
	buffer      bytes.Buffer
}

// Option configures a Printer.
type Option func(*Printer)

// WithIndent sets the indentation unit. The default is four spaces; an
// empty unit keeps it.
func WithIndent(unit string) Option {
	return func(p *Printer) {
		if unit != "" {
			p.indentUnit = unit
		}
	}
}

// New creates a Printer.
func New(opts ...Option) *Printer {
	p := &Printer{indentUnit: "    "}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print renders a whole file. Statements are separated by a newline.
func (p *Printer) Print(file *ast.SourceFile) string {
	p.buffer.Reset()
	p.indentLevel = 0
	if file == nil {
		return ""
	}
	for _, s := range file.Statements {
		p.emitStatement(s)
	}
	return p.buffer.String()
}

// Node renders a single node without a trailing newline. It is used for
// diagnostics and tests.
func Node(n ast.Node) string {
	p := New()
	p.emitNode(n)
	return strings.TrimRight(p.buffer.String(), "\n")
}

// Type renders a type annotation.
func Type(t ast.TypeNode) string {
	p := New()
	p.emitType(t)
	return p.buffer.String()
}

// Helper methods

func (p *Printer) indent() {
	p.indentLevel++
}

func (p *Printer) dedent() {
	if p.indentLevel > 0 {
		p.indentLevel--
	}
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indentLevel; i++ {
		p.buffer.WriteString(p.indentUnit)
	}
}

func (p *Printer) write(s string) {
	p.buffer.WriteString(s)
}

func (p *Printer) writef(format string, args ...any) {
	fmt.Fprintf(&p.buffer, format, args...)
}

func (p *Printer) emitNode(n ast.Node) {
	switch n := n.(type) {
	case nil:
	case ast.Statement:
		p.emitStatement(n)
	case ast.ClassMember:
		p.emitMember(n)
	case ast.TypeNode:
		p.emitType(n)
	case ast.TypeElement:
		p.emitTypeElement(n)
	case *ast.Parameter:
		p.emitParameter(n)
	case *ast.TypeParameter:
		p.emitTypeParameter(n)
	case ast.PropertyName:
		p.emitPropertyName(n)
	case ast.Expression:
		p.emitExpression(n)
	case ast.BindingName:
		p.emitBindingName(n)
	case *ast.BindingElement:
		p.emitBindingElement(n)
	case *ast.QualifiedName:
		p.emitEntityName(n)
	case *ast.SourceFile:
		for _, s := range n.Statements {
			p.emitStatement(s)
		}
	default:
		p.writef("/* unsupported node %s */", n.Kind())
	}
}

// Statements

func (p *Printer) emitStatement(s ast.Statement) {
	switch s := s.(type) {
	case *ast.ClassDeclaration:
		p.emitClass(s)
	case *ast.FunctionDeclaration:
		p.emitFunction(s)
	case *ast.VariableStatement:
		p.emitVariableStatement(s)
	case *ast.RawStatement:
		p.writeIndent()
		p.write(s.Text)
		p.write("\n")
	case nil:
	default:
		p.writeIndent()
		p.writef("/* unsupported statement %s */\n", s.Kind())
	}
}

func (p *Printer) emitClass(c *ast.ClassDeclaration) {
	p.emitDecorators(c.Decorators)
	p.writeIndent()
	p.emitModifiers(c.Modifiers)
	p.write("class")
	if c.Name != nil {
		p.write(" ")
		p.write(c.Name.Text)
	}
	p.emitTypeParameters(c.TypeParameters)
	for _, h := range c.HeritageClauses {
		if h == nil || len(h.Types) == 0 {
			continue
		}
		p.write(" ")
		p.write(h.Token.String())
		p.write(" ")
		for i, t := range h.Types {
			if i > 0 {
				p.write(", ")
			}
			p.emitExpression(t.Expression)
			p.emitTypeArguments(t.TypeArguments)
		}
	}
	if len(c.Members) == 0 {
		p.write(" {}\n")
		return
	}
	p.write(" {\n")
	p.indent()
	for _, m := range c.Members {
		p.emitMember(m)
	}
	p.dedent()
	p.writeIndent()
	p.write("}\n")
}

func (p *Printer) emitFunction(f *ast.FunctionDeclaration) {
	p.writeIndent()
	p.emitModifiers(f.Modifiers)
	p.write("function")
	if f.Asterisk {
		p.write("*")
	}
	if f.Name != nil {
		p.write(" ")
		p.write(f.Name.Text)
	}
	p.emitSignature(f.Signature, ": ")
	p.emitBody(f.Body)
	p.write("\n")
}

func (p *Printer) emitVariableStatement(v *ast.VariableStatement) {
	p.writeIndent()
	p.emitModifiers(v.Modifiers)
	p.write(v.Keyword)
	p.write(" ")
	for i, d := range v.Declarations {
		if i > 0 {
			p.write(", ")
		}
		p.emitBindingName(d.Name)
		if d.Definite {
			p.write("!")
		}
		if d.Type != nil {
			p.write(": ")
			p.emitType(d.Type)
		}
		if d.Initializer != nil {
			p.write(" = ")
			p.emitExpression(d.Initializer)
		}
	}
	p.write(";\n")
}

// Class members

func (p *Printer) emitMember(m ast.ClassMember) {
	switch m := m.(type) {
	case *ast.PropertyDeclaration:
		p.emitDecorators(m.Decorators)
		p.writeIndent()
		p.emitModifiers(m.Modifiers)
		p.emitPropertyName(m.Name)
		if m.Optional {
			p.write("?")
		} else if m.Definite {
			p.write("!")
		}
		if m.Type != nil {
			p.write(": ")
			p.emitType(m.Type)
		}
		if m.Initializer != nil {
			p.write(" = ")
			p.emitExpression(m.Initializer)
		}
		p.write(";\n")
	case *ast.MethodDeclaration:
		p.emitDecorators(m.Decorators)
		p.writeIndent()
		p.emitModifiers(m.Modifiers)
		if m.Asterisk {
			p.write("*")
		}
		p.emitPropertyName(m.Name)
		if m.Optional {
			p.write("?")
		}
		p.emitSignature(m.Signature, ": ")
		p.emitBody(m.Body)
		p.write("\n")
	case *ast.GetAccessor:
		p.emitDecorators(m.Decorators)
		p.writeIndent()
		p.emitModifiers(m.Modifiers)
		p.write("get ")
		p.emitPropertyName(m.Name)
		p.emitSignature(m.Signature, ": ")
		p.emitBody(m.Body)
		p.write("\n")
	case *ast.SetAccessor:
		p.emitDecorators(m.Decorators)
		p.writeIndent()
		p.emitModifiers(m.Modifiers)
		p.write("set ")
		p.emitPropertyName(m.Name)
		p.emitSignature(m.Signature, ": ")
		p.emitBody(m.Body)
		p.write("\n")
	case *ast.Constructor:
		p.emitDecorators(m.Decorators)
		p.writeIndent()
		p.emitModifiers(m.Modifiers)
		p.write("constructor")
		p.emitParameters(m.Parameters)
		p.emitBody(m.Body)
		p.write("\n")
	case *ast.RawMember:
		p.writeIndent()
		p.write(m.Text)
		p.write("\n")
	case nil:
	default:
		p.writeIndent()
		p.writef("/* unsupported member %s */\n", m.Kind())
	}
}

func (p *Printer) emitBody(b *ast.Block) {
	if b == nil {
		p.write(";")
		return
	}
	p.write(" ")
	p.write(b.Text)
}

func (p *Printer) emitDecorators(ds []*ast.Decorator) {
	for _, d := range ds {
		if d == nil {
			continue
		}
		p.writeIndent()
		p.write("@")
		p.emitExpression(d.Expression)
		p.write("\n")
	}
}

// modifierRank orders modifiers the way the TypeScript grammar requires.
var modifierRank = map[ast.ModifierKind]int{
	ast.ModifierExport:    0,
	ast.ModifierDefault:   1,
	ast.ModifierDeclare:   2,
	ast.ModifierPublic:    3,
	ast.ModifierPrivate:   3,
	ast.ModifierProtected: 3,
	ast.ModifierAbstract:  4,
	ast.ModifierStatic:    4,
	ast.ModifierOverride:  5,
	ast.ModifierReadonly:  6,
	ast.ModifierAccessor:  7,
	ast.ModifierAsync:     8,
}

func (p *Printer) emitModifiers(ms []*ast.Modifier) {
	if len(ms) == 0 {
		return
	}
	sorted := make([]*ast.Modifier, 0, len(ms))
	for _, m := range ms {
		if m != nil {
			sorted = append(sorted, m)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return modifierRank[sorted[i].Token] < modifierRank[sorted[j].Token]
	})
	for _, m := range sorted {
		p.write(m.Token.String())
		p.write(" ")
	}
}

// Signatures and parameters

// emitSignature writes `<T>(params)` followed by sep and the return type when
// one is present.
func (p *Printer) emitSignature(s ast.Signature, sep string) {
	p.emitTypeParameters(s.TypeParameters)
	p.emitParameters(s.Parameters)
	if s.Type != nil {
		p.write(sep)
		p.emitType(s.Type)
	}
}

func (p *Printer) emitParameters(ps []*ast.Parameter) {
	p.write("(")
	for i, param := range ps {
		if i > 0 {
			p.write(", ")
		}
		p.emitParameter(param)
	}
	p.write(")")
}

func (p *Printer) emitParameter(param *ast.Parameter) {
	if param == nil {
		return
	}
	for _, d := range param.Decorators {
		p.write("@")
		p.emitExpression(d.Expression)
		p.write(" ")
	}
	p.emitModifiers(param.Modifiers)
	if param.Rest {
		p.write("...")
	}
	p.emitBindingName(param.Name)
	if param.Optional {
		p.write("?")
	}
	if param.Type != nil {
		p.write(": ")
		p.emitType(param.Type)
	}
	if param.Initializer != nil {
		p.write(" = ")
		p.emitExpression(param.Initializer)
	}
}

func (p *Printer) emitTypeParameters(tps []*ast.TypeParameter) {
	if len(tps) == 0 {
		return
	}
	p.write("<")
	for i, tp := range tps {
		if i > 0 {
			p.write(", ")
		}
		p.emitTypeParameter(tp)
	}
	p.write(">")
}

func (p *Printer) emitTypeParameter(tp *ast.TypeParameter) {
	if tp == nil || tp.Name == nil {
		return
	}
	p.write(tp.Name.Text)
	if tp.Constraint != nil {
		p.write(" extends ")
		p.emitType(tp.Constraint)
	}
	if tp.Default != nil {
		p.write(" = ")
		p.emitType(tp.Default)
	}
}

func (p *Printer) emitTypeArguments(ts []ast.TypeNode) {
	if len(ts) == 0 {
		return
	}
	p.write("<")
	for i, t := range ts {
		if i > 0 {
			p.write(", ")
		}
		p.emitType(t)
	}
	p.write(">")
}

// Names, bindings and expressions

func (p *Printer) emitPropertyName(n ast.PropertyName) {
	switch n := n.(type) {
	case *ast.ComputedPropertyName:
		p.write("[")
		p.emitExpression(n.Expression)
		p.write("]")
	case ast.Expression:
		p.emitExpression(n)
	}
}

func (p *Printer) emitEntityName(n ast.EntityName) {
	switch n := n.(type) {
	case *ast.Identifier:
		p.write(n.Text)
	case *ast.QualifiedName:
		p.emitEntityName(n.Left)
		p.write(".")
		if n.Right != nil {
			p.write(n.Right.Text)
		}
	}
}

func (p *Printer) emitBindingName(n ast.BindingName) {
	switch n := n.(type) {
	case *ast.Identifier:
		p.write(n.Text)
	case *ast.ObjectBindingPattern:
		if len(n.Elements) == 0 {
			p.write("{}")
			return
		}
		p.write("{ ")
		for i, e := range n.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.emitBindingElement(e)
		}
		p.write(" }")
	case *ast.ArrayBindingPattern:
		p.write("[")
		for i, e := range n.Elements {
			if i > 0 {
				p.write(", ")
			}
			if be, ok := e.(*ast.BindingElement); ok {
				p.emitBindingElement(be)
			}
		}
		// A trailing hole needs its own comma to survive.
		if last := len(n.Elements) - 1; last >= 0 {
			if _, hole := n.Elements[last].(*ast.OmittedExpression); hole {
				p.write(",")
			}
		}
		p.write("]")
	}
}

func (p *Printer) emitBindingElement(e *ast.BindingElement) {
	if e == nil {
		return
	}
	if e.Rest {
		p.write("...")
	}
	if e.PropertyName != nil {
		p.emitPropertyName(e.PropertyName)
		p.write(": ")
	}
	p.emitBindingName(e.Name)
	if e.Initializer != nil {
		p.write(" = ")
		p.emitExpression(e.Initializer)
	}
}

func (p *Printer) emitExpression(e ast.Expression) {
	switch e := e.(type) {
	case *ast.Identifier:
		p.write(e.Text)
	case *ast.PrivateIdentifier:
		p.write(e.Text)
	case *ast.StringLiteral:
		q := `"`
		if e.SingleQuote {
			q = "'"
		}
		p.write(q + e.Text + q)
	case *ast.NumericLiteral:
		p.write(e.Text)
	case *ast.BooleanLiteral:
		if e.Value {
			p.write("true")
		} else {
			p.write("false")
		}
	case *ast.OmittedExpression:
	case *ast.RawExpression:
		p.write(e.Text)
	}
}
