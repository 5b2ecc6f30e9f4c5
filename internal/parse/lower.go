package parse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/tsreassemble/internal/ast"
)

// lowerer converts one tree-sitter tree into ast nodes.
type lowerer struct {
	src     []byte
	lenient bool // lower damaged nodes as recovered raw nodes
}

func (l *lowerer) text(n *sitter.Node) string {
	return n.Content(l.src)
}

// namedChildren returns the named children of n, skipping comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch == nil || ch.Type() == "comment" {
			continue
		}
		out = append(out, ch)
	}
	return out
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if kids := namedChildren(n); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

// hasToken reports whether n has an anonymous direct child tok.
func hasToken(n *sitter.Node, tok string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch != nil && !ch.IsNamed() && ch.Type() == tok {
			return true
		}
	}
	return false
}

func withModifier(mods []*ast.Modifier, k ast.ModifierKind) []*ast.Modifier {
	out := make([]*ast.Modifier, 0, len(mods)+1)
	out = append(out, mods...)
	return append(out, &ast.Modifier{Token: k})
}

// modifiers collects the modifier keywords and decorators written directly
// on n.
func (l *lowerer) modifiers(n *sitter.Node) ([]*ast.Modifier, []*ast.Decorator) {
	var (
		mods []*ast.Modifier
		decs []*ast.Decorator
	)
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch == nil {
			continue
		}
		word := ch.Type()
		switch {
		case word == "decorator":
			decs = append(decs, l.decorator(ch))
			continue
		case word == "accessibility_modifier" || word == "override_modifier":
			word = l.text(ch)
		case ch.IsNamed():
			continue
		}
		if k, ok := ast.ModifierKindFor(word); ok {
			mods = append(mods, &ast.Modifier{Token: k})
		}
	}
	return mods, decs
}

func (l *lowerer) program(root *sitter.Node) []ast.Statement {
	var out []ast.Statement
	for i := 0; i < int(root.NamedChildCount()); i++ {
		out = append(out, l.statement(root.NamedChild(i)))
	}
	return out
}

func (l *lowerer) statement(n *sitter.Node) ast.Statement {
	if l.lenient && damaged(n) {
		return &ast.RawStatement{Text: l.text(n), Recovered: true}
	}
	if n.Type() == "export_statement" {
		return l.exportStatement(n)
	}
	if s := l.declaration(n, nil); s != nil {
		return s
	}
	return &ast.RawStatement{Text: l.text(n)}
}

func (l *lowerer) exportStatement(n *sitter.Node) ast.Statement {
	mods := []*ast.Modifier{{Token: ast.ModifierExport}}
	if hasToken(n, "default") {
		mods = append(mods, &ast.Modifier{Token: ast.ModifierDefault})
	}
	decl := n.ChildByFieldName("declaration")
	if decl == nil {
		decl = n.ChildByFieldName("value")
	}
	if decl != nil {
		if s := l.declaration(decl, mods); s != nil {
			if c, ok := s.(*ast.ClassDeclaration); ok {
				_, decs := l.modifiers(n)
				c.Decorators = append(decs, c.Decorators...)
			}
			return s
		}
	}
	return &ast.RawStatement{Text: l.text(n)}
}

// declaration lowers the statement kinds the reassembler understands and
// returns nil for anything else.
func (l *lowerer) declaration(n *sitter.Node, mods []*ast.Modifier) ast.Statement {
	switch n.Type() {
	case "class_declaration", "abstract_class_declaration", "class":
		return l.class(n, mods)
	case "function_declaration", "generator_function_declaration", "function_signature",
		"function", "function_expression", "generator_function":
		return l.function(n, mods)
	case "lexical_declaration", "variable_declaration":
		return l.variableStatement(n, mods)
	case "ambient_declaration":
		inner := firstNamed(n)
		if inner == nil {
			return nil
		}
		return l.declaration(inner, withModifier(mods, ast.ModifierDeclare))
	}
	return nil
}

func (l *lowerer) class(n *sitter.Node, mods []*ast.Modifier) *ast.ClassDeclaration {
	own, decs := l.modifiers(n)
	c := &ast.ClassDeclaration{
		Decorators:     decs,
		Modifiers:      append(append([]*ast.Modifier(nil), mods...), own...),
		TypeParameters: l.typeParameters(n.ChildByFieldName("type_parameters")),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		c.Name = &ast.Identifier{Text: l.text(name)}
	}
	for _, ch := range namedChildren(n) {
		if ch.Type() == "class_heritage" {
			c.HeritageClauses = l.heritage(ch)
		}
	}
	c.Members = l.classBody(n.ChildByFieldName("body"))
	return c
}

func (l *lowerer) heritage(n *sitter.Node) []*ast.HeritageClause {
	var out []*ast.HeritageClause
	for _, ch := range namedChildren(n) {
		switch ch.Type() {
		case "extends_clause":
			out = append(out, &ast.HeritageClause{Token: ast.HeritageExtends, Types: l.extendsTypes(ch)})
		case "implements_clause":
			h := &ast.HeritageClause{Token: ast.HeritageImplements}
			for _, t := range namedChildren(ch) {
				h.Types = append(h.Types, l.implementsType(t))
			}
			out = append(out, h)
		default:
			// JavaScript heritage holds the extends expression directly.
			out = append(out, &ast.HeritageClause{
				Token: ast.HeritageExtends,
				Types: []*ast.ExpressionWithTypeArguments{{Expression: l.expression(ch)}},
			})
		}
	}
	return out
}

func (l *lowerer) extendsTypes(n *sitter.Node) []*ast.ExpressionWithTypeArguments {
	var out []*ast.ExpressionWithTypeArguments
	for _, ch := range namedChildren(n) {
		if ch.Type() == "type_arguments" {
			if len(out) > 0 {
				out[len(out)-1].TypeArguments = l.typeArguments(ch)
			}
			continue
		}
		out = append(out, &ast.ExpressionWithTypeArguments{Expression: l.expression(ch)})
	}
	return out
}

func (l *lowerer) implementsType(n *sitter.Node) *ast.ExpressionWithTypeArguments {
	if n.Type() == "generic_type" {
		return &ast.ExpressionWithTypeArguments{
			Expression:    l.expressionText(l.text(n.ChildByFieldName("name"))),
			TypeArguments: l.typeArguments(n.ChildByFieldName("type_arguments")),
		}
	}
	return &ast.ExpressionWithTypeArguments{Expression: l.expressionText(l.text(n))}
}

func (l *lowerer) classBody(n *sitter.Node) []ast.ClassMember {
	var (
		members []ast.ClassMember
		pending []*sitter.Node
	)
	for i := 0; n != nil && i < int(n.NamedChildCount()); i++ {
		ch := n.NamedChild(i)
		if ch.Type() == "decorator" {
			pending = append(pending, ch)
			continue
		}
		m := l.member(ch)
		if len(pending) > 0 {
			l.attachDecorators(m, pending)
			pending = nil
		}
		members = append(members, m)
	}
	return members
}

// attachDecorators prepends decorators that the grammar places before a
// member rather than inside it.
func (l *lowerer) attachDecorators(m ast.ClassMember, nodes []*sitter.Node) {
	if raw, ok := m.(*ast.RawMember); ok {
		var b strings.Builder
		for _, d := range nodes {
			b.WriteString(l.text(d))
			b.WriteString(" ")
		}
		raw.Text = b.String() + raw.Text
		return
	}
	decs := make([]*ast.Decorator, 0, len(nodes))
	for _, d := range nodes {
		decs = append(decs, l.decorator(d))
	}
	switch m := m.(type) {
	case *ast.PropertyDeclaration:
		m.Decorators = append(decs, m.Decorators...)
	case *ast.MethodDeclaration:
		m.Decorators = append(decs, m.Decorators...)
	case *ast.GetAccessor:
		m.Decorators = append(decs, m.Decorators...)
	case *ast.SetAccessor:
		m.Decorators = append(decs, m.Decorators...)
	case *ast.Constructor:
		m.Decorators = append(decs, m.Decorators...)
	}
}

func (l *lowerer) member(n *sitter.Node) ast.ClassMember {
	if l.lenient && n.HasError() {
		return &ast.RawMember{Text: l.text(n), Recovered: true}
	}
	switch n.Type() {
	case "method_definition", "method_signature", "abstract_method_signature":
		return l.method(n)
	case "public_field_definition", "field_definition":
		return l.property(n)
	}
	return &ast.RawMember{Text: l.text(n)}
}

func (l *lowerer) method(n *sitter.Node) ast.ClassMember {
	mods, decs := l.modifiers(n)
	nameNode := n.ChildByFieldName("name")
	sig := l.signature(n)
	body := l.block(n.ChildByFieldName("body"))

	switch {
	case hasToken(n, "get"):
		return &ast.GetAccessor{Decorators: decs, Modifiers: mods, Name: l.propertyName(nameNode), Signature: sig, Body: body}
	case hasToken(n, "set"):
		return &ast.SetAccessor{Decorators: decs, Modifiers: mods, Name: l.propertyName(nameNode), Signature: sig, Body: body}
	case nameNode != nil && nameNode.Type() == "property_identifier" && l.text(nameNode) == "constructor":
		return &ast.Constructor{Decorators: decs, Modifiers: mods, Parameters: sig.Parameters, Body: body}
	}
	return &ast.MethodDeclaration{
		Decorators: decs,
		Modifiers:  mods,
		Asterisk:   hasToken(n, "*"),
		Name:       l.propertyName(nameNode),
		Optional:   hasToken(n, "?"),
		Signature:  sig,
		Body:       body,
	}
}

func (l *lowerer) property(n *sitter.Node) *ast.PropertyDeclaration {
	mods, decs := l.modifiers(n)
	name := n.ChildByFieldName("name")
	if name == nil {
		name = n.ChildByFieldName("property")
	}
	return &ast.PropertyDeclaration{
		Decorators:  decs,
		Modifiers:   mods,
		Name:        l.propertyName(name),
		Optional:    hasToken(n, "?"),
		Definite:    hasToken(n, "!"),
		Type:        l.annotation(n.ChildByFieldName("type")),
		Initializer: l.expression(n.ChildByFieldName("value")),
	}
}

func (l *lowerer) function(n *sitter.Node, mods []*ast.Modifier) *ast.FunctionDeclaration {
	own, _ := l.modifiers(n)
	fn := &ast.FunctionDeclaration{
		Modifiers: append(append([]*ast.Modifier(nil), mods...), own...),
		Asterisk:  hasToken(n, "*"),
		Signature: l.signature(n),
		Body:      l.block(n.ChildByFieldName("body")),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		fn.Name = &ast.Identifier{Text: l.text(name)}
	}
	return fn
}

func (l *lowerer) variableStatement(n *sitter.Node, mods []*ast.Modifier) *ast.VariableStatement {
	v := &ast.VariableStatement{Modifiers: mods, Keyword: "var"}
	if kind := n.ChildByFieldName("kind"); kind != nil {
		v.Keyword = l.text(kind)
	}
	for _, ch := range namedChildren(n) {
		if ch.Type() != "variable_declarator" {
			continue
		}
		v.Declarations = append(v.Declarations, &ast.VariableDeclaration{
			Name:        l.binding(ch.ChildByFieldName("name")),
			Definite:    hasToken(ch, "!"),
			Type:        l.annotation(ch.ChildByFieldName("type")),
			Initializer: l.expression(ch.ChildByFieldName("value")),
		})
	}
	return v
}

func (l *lowerer) block(n *sitter.Node) *ast.Block {
	if n == nil {
		return nil
	}
	return &ast.Block{Text: l.text(n)}
}

func (l *lowerer) decorator(n *sitter.Node) *ast.Decorator {
	return &ast.Decorator{Expression: l.expression(firstNamed(n))}
}

// signature lowers the type parameters, parameters and return type of a
// function-like node.
func (l *lowerer) signature(n *sitter.Node) ast.Signature {
	ret := n.ChildByFieldName("return_type")
	if ret == nil {
		ret = n.ChildByFieldName("type")
	}
	return ast.Signature{
		TypeParameters: l.typeParameters(n.ChildByFieldName("type_parameters")),
		Parameters:     l.parameters(n.ChildByFieldName("parameters")),
		Type:           l.returnType(ret),
	}
}

func (l *lowerer) parameters(n *sitter.Node) []*ast.Parameter {
	var out []*ast.Parameter
	for _, ch := range namedChildren(n) {
		out = append(out, l.parameter(ch))
	}
	return out
}

func (l *lowerer) parameter(n *sitter.Node) *ast.Parameter {
	switch n.Type() {
	case "required_parameter", "optional_parameter":
		mods, decs := l.modifiers(n)
		p := &ast.Parameter{
			Decorators:  decs,
			Modifiers:   mods,
			Optional:    n.Type() == "optional_parameter",
			Type:        l.annotation(n.ChildByFieldName("type")),
			Initializer: l.expression(n.ChildByFieldName("value")),
		}
		pattern := n.ChildByFieldName("pattern")
		if pattern == nil {
			pattern = firstNamed(n)
		}
		if pattern != nil && pattern.Type() == "rest_pattern" {
			p.Rest = true
			pattern = firstNamed(pattern)
		}
		p.Name = l.binding(pattern)
		return p
	case "assignment_pattern":
		return &ast.Parameter{
			Name:        l.binding(n.ChildByFieldName("left")),
			Initializer: l.expression(n.ChildByFieldName("right")),
		}
	case "rest_pattern":
		return &ast.Parameter{Rest: true, Name: l.binding(firstNamed(n))}
	}
	return &ast.Parameter{Name: l.binding(n)}
}

func (l *lowerer) binding(n *sitter.Node) ast.BindingName {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "object_pattern":
		p := &ast.ObjectBindingPattern{}
		for _, ch := range namedChildren(n) {
			p.Elements = append(p.Elements, l.objectBindingElement(ch))
		}
		return p
	case "array_pattern":
		return l.arrayBinding(n)
	}
	return &ast.Identifier{Text: l.text(n)}
}

func (l *lowerer) objectBindingElement(n *sitter.Node) *ast.BindingElement {
	switch n.Type() {
	case "pair_pattern":
		e := &ast.BindingElement{PropertyName: l.propertyName(n.ChildByFieldName("key"))}
		value := n.ChildByFieldName("value")
		if value != nil && value.Type() == "assignment_pattern" {
			e.Name = l.binding(value.ChildByFieldName("left"))
			e.Initializer = l.expression(value.ChildByFieldName("right"))
			return e
		}
		e.Name = l.binding(value)
		return e
	case "object_assignment_pattern":
		return &ast.BindingElement{
			Name:        l.binding(n.ChildByFieldName("left")),
			Initializer: l.expression(n.ChildByFieldName("right")),
		}
	case "rest_pattern":
		return &ast.BindingElement{Rest: true, Name: l.binding(firstNamed(n))}
	}
	return &ast.BindingElement{Name: l.binding(n)}
}

// arrayBinding walks every child so that elisions, which have no node of
// their own, show up as consecutive commas.
func (l *lowerer) arrayBinding(n *sitter.Node) *ast.ArrayBindingPattern {
	p := &ast.ArrayBindingPattern{}
	expectElement := true
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		switch {
		case ch == nil || ch.Type() == "comment":
		case ch.Type() == ",":
			if expectElement {
				p.Elements = append(p.Elements, &ast.OmittedExpression{})
			}
			expectElement = true
		case ch.IsNamed():
			p.Elements = append(p.Elements, l.arrayBindingElement(ch))
			expectElement = false
		}
	}
	return p
}

func (l *lowerer) arrayBindingElement(n *sitter.Node) *ast.BindingElement {
	switch n.Type() {
	case "assignment_pattern":
		return &ast.BindingElement{
			Name:        l.binding(n.ChildByFieldName("left")),
			Initializer: l.expression(n.ChildByFieldName("right")),
		}
	case "rest_pattern":
		return &ast.BindingElement{Rest: true, Name: l.binding(firstNamed(n))}
	}
	return &ast.BindingElement{Name: l.binding(n)}
}

func (l *lowerer) propertyName(n *sitter.Node) ast.PropertyName {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "private_property_identifier":
		return &ast.PrivateIdentifier{Text: l.text(n)}
	case "string":
		return l.stringLiteral(n)
	case "number":
		return &ast.NumericLiteral{Text: l.text(n)}
	case "computed_property_name":
		return &ast.ComputedPropertyName{Expression: l.expression(firstNamed(n))}
	}
	return &ast.Identifier{Text: l.text(n)}
}

func (l *lowerer) stringLiteral(n *sitter.Node) *ast.StringLiteral {
	t := l.text(n)
	if len(t) < 2 {
		return &ast.StringLiteral{Text: t}
	}
	return &ast.StringLiteral{Text: t[1 : len(t)-1], SingleQuote: t[0] == '\''}
}

func (l *lowerer) expression(n *sitter.Node) ast.Expression {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "string":
		return l.stringLiteral(n)
	case "number":
		return &ast.NumericLiteral{Text: l.text(n)}
	case "true":
		return &ast.BooleanLiteral{Value: true}
	case "false":
		return &ast.BooleanLiteral{Value: false}
	}
	return l.expressionText(l.text(n))
}

// expressionText returns an Identifier for a plain name and a raw expression
// for anything else.
func (l *lowerer) expressionText(t string) ast.Expression {
	if isIdentifier(t) {
		return &ast.Identifier{Text: t}
	}
	return &ast.RawExpression{Text: t}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r > 0x7f:
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
