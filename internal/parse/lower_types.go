package parse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/tsreassemble/internal/ast"
)

// annotation lowers a type_annotation (": T") or a bare type.
func (l *lowerer) annotation(n *sitter.Node) ast.TypeNode {
	if n == nil {
		return nil
	}
	if n.Type() == "type_annotation" {
		return l.typ(firstNamed(n))
	}
	return l.typ(n)
}

func (l *lowerer) returnType(n *sitter.Node) ast.TypeNode {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "type_annotation", "asserts_annotation", "type_predicate_annotation":
		return l.typ(firstNamed(n))
	}
	return l.typ(n)
}

func (l *lowerer) typeParameters(n *sitter.Node) []*ast.TypeParameter {
	var out []*ast.TypeParameter
	for _, ch := range namedChildren(n) {
		if ch.Type() != "type_parameter" {
			continue
		}
		out = append(out, l.typeParameter(ch))
	}
	return out
}

func (l *lowerer) typeParameter(n *sitter.Node) *ast.TypeParameter {
	tp := &ast.TypeParameter{}
	if name := n.ChildByFieldName("name"); name != nil {
		tp.Name = &ast.Identifier{Text: l.text(name)}
	}
	if c := n.ChildByFieldName("constraint"); c != nil {
		tp.Constraint = l.typ(firstNamed(c))
	}
	if d := n.ChildByFieldName("value"); d != nil {
		tp.Default = l.typ(firstNamed(d))
	}
	return tp
}

func (l *lowerer) typeArguments(n *sitter.Node) []ast.TypeNode {
	var out []ast.TypeNode
	for _, ch := range namedChildren(n) {
		out = append(out, l.typ(ch))
	}
	return out
}

// typ lowers a type node. Type syntax with no structured counterpart is kept
// verbatim as a RawType.
func (l *lowerer) typ(n *sitter.Node) ast.TypeNode {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "predefined_type":
		return &ast.KeywordType{Keyword: l.text(n)}
	case "this_type", "this":
		return &ast.KeywordType{Keyword: "this"}
	case "type_identifier", "nested_type_identifier", "identifier":
		return &ast.TypeReference{TypeName: l.entityName(l.text(n))}
	case "generic_type":
		return &ast.TypeReference{
			TypeName:      l.entityName(l.text(n.ChildByFieldName("name"))),
			TypeArguments: l.typeArguments(n.ChildByFieldName("type_arguments")),
		}
	case "literal_type":
		lit := firstNamed(n)
		if lit == nil {
			break
		}
		switch lit.Type() {
		case "null", "undefined":
			return &ast.KeywordType{Keyword: l.text(lit)}
		}
		return &ast.LiteralType{Literal: l.expression(lit)}
	case "union_type":
		return &ast.UnionType{Types: l.flatten(n, "union_type")}
	case "intersection_type":
		return &ast.IntersectionType{Types: l.flatten(n, "intersection_type")}
	case "array_type":
		return &ast.ArrayType{ElementType: l.typ(firstNamed(n))}
	case "tuple_type":
		t := &ast.TupleType{}
		for _, ch := range namedChildren(n) {
			t.Elements = append(t.Elements, l.tupleElement(ch))
		}
		return t
	case "optional_type":
		return &ast.OptionalType{Type: l.typ(firstNamed(n))}
	case "rest_type":
		return &ast.RestType{Type: l.typ(firstNamed(n))}
	case "parenthesized_type":
		return &ast.ParenthesizedType{Type: l.typ(firstNamed(n))}
	case "function_type":
		return &ast.FunctionType{Signature: l.signature(n)}
	case "constructor_type":
		return &ast.ConstructorType{Abstract: hasToken(n, "abstract"), Signature: l.signature(n)}
	case "lookup_type":
		if kids := namedChildren(n); len(kids) == 2 {
			return &ast.IndexedAccessType{ObjectType: l.typ(kids[0]), IndexType: l.typ(kids[1])}
		}
	case "index_type_query":
		return &ast.TypeOperator{Operator: "keyof", Type: l.typ(firstNamed(n))}
	case "readonly_type":
		return &ast.TypeOperator{Operator: "readonly", Type: l.typ(firstNamed(n))}
	case "type_query":
		if q := firstNamed(n); q != nil {
			if name, ok := qualifiedName(l.text(q)); ok {
				return &ast.TypeQuery{ExprName: name}
			}
		}
	case "conditional_type":
		return &ast.ConditionalType{
			CheckType:   l.typ(n.ChildByFieldName("left")),
			ExtendsType: l.typ(n.ChildByFieldName("right")),
			TrueType:    l.typ(n.ChildByFieldName("consequence")),
			FalseType:   l.typ(n.ChildByFieldName("alternative")),
		}
	case "infer_type":
		kids := namedChildren(n)
		if len(kids) == 0 {
			break
		}
		tp := &ast.TypeParameter{Name: &ast.Identifier{Text: l.text(kids[0])}}
		if len(kids) > 1 {
			tp.Constraint = l.typ(kids[1])
		}
		return &ast.InferType{TypeParameter: tp}
	case "type_predicate":
		return l.typePredicate(n, false)
	case "asserts":
		inner := firstNamed(n)
		if inner != nil && inner.Type() == "type_predicate" {
			return l.typePredicate(inner, true)
		}
		if inner != nil {
			return &ast.TypePredicate{Asserts: true, ParameterName: &ast.Identifier{Text: l.text(inner)}}
		}
	case "object_type":
		if t := l.objectType(n); t != nil {
			return t
		}
	}
	return &ast.RawType{Text: l.text(n)}
}

// flatten collects the operands of a left-nested binary union or
// intersection.
func (l *lowerer) flatten(n *sitter.Node, kind string) []ast.TypeNode {
	var out []ast.TypeNode
	for _, ch := range namedChildren(n) {
		if ch.Type() == kind {
			out = append(out, l.flatten(ch, kind)...)
			continue
		}
		out = append(out, l.typ(ch))
	}
	return out
}

func (l *lowerer) tupleElement(n *sitter.Node) ast.TypeNode {
	switch n.Type() {
	case "tuple_parameter", "optional_tuple_parameter", "required_parameter", "optional_parameter":
	default:
		return l.typ(n)
	}
	m := &ast.NamedTupleMember{
		Optional: strings.HasPrefix(n.Type(), "optional"),
		Type:     l.annotation(n.ChildByFieldName("type")),
	}
	name := n.ChildByFieldName("name")
	if name == nil {
		name = n.ChildByFieldName("pattern")
	}
	if name != nil && name.Type() == "rest_pattern" {
		m.Rest = true
		name = firstNamed(name)
	}
	if name != nil {
		m.Name = &ast.Identifier{Text: l.text(name)}
	}
	return m
}

func (l *lowerer) typePredicate(n *sitter.Node, asserts bool) *ast.TypePredicate {
	p := &ast.TypePredicate{Asserts: asserts, Type: l.typ(n.ChildByFieldName("type"))}
	if name := n.ChildByFieldName("name"); name != nil {
		p.ParameterName = &ast.Identifier{Text: l.text(name)}
	}
	return p
}

// entityName splits a dotted name into nested qualified names. Text that is
// not a plain dotted name is kept as a single identifier.
func (l *lowerer) entityName(text string) ast.EntityName {
	if name, ok := qualifiedName(text); ok {
		return name
	}
	return &ast.Identifier{Text: text}
}

func qualifiedName(text string) (ast.EntityName, bool) {
	parts := strings.Split(text, ".")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
		if !isIdentifier(parts[i]) {
			return nil, false
		}
	}
	var name ast.EntityName = &ast.Identifier{Text: parts[0]}
	for _, p := range parts[1:] {
		name = &ast.QualifiedName{Left: name, Right: &ast.Identifier{Text: p}}
	}
	return name, true
}

// objectType lowers a type literal or mapped type. It returns nil when a
// member has no structured counterpart.
func (l *lowerer) objectType(n *sitter.Node) ast.TypeNode {
	kids := namedChildren(n)
	if len(kids) == 1 && kids[0].Type() == "index_signature" {
		if clause := childOfType(kids[0], "mapped_type_clause"); clause != nil {
			return l.mappedType(kids[0], clause)
		}
	}
	lit := &ast.TypeLiteral{}
	for _, ch := range kids {
		e := l.typeElement(ch)
		if e == nil {
			return nil
		}
		lit.Members = append(lit.Members, e)
	}
	return lit
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for _, ch := range namedChildren(n) {
		if ch.Type() == typ {
			return ch
		}
	}
	return nil
}

func (l *lowerer) mappedType(sig, clause *sitter.Node) *ast.MappedType {
	m := &ast.MappedType{
		TypeParameter: &ast.TypeParameter{Constraint: l.typ(clause.ChildByFieldName("type"))},
		NameType:      l.typ(clause.ChildByFieldName("alias")),
	}
	if name := clause.ChildByFieldName("name"); name != nil {
		m.TypeParameter.Name = &ast.Identifier{Text: l.text(name)}
	}
	if hasToken(sig, "readonly") {
		m.ReadonlyToken = "readonly"
		if sign := sig.ChildByFieldName("sign"); sign != nil {
			m.ReadonlyToken = l.text(sign) + "readonly"
		}
	}
	if t := sig.ChildByFieldName("type"); t != nil {
		switch t.Type() {
		case "opting_type_annotation":
			m.QuestionToken = "?"
		case "omitting_type_annotation":
			m.QuestionToken = "-?"
		case "adding_type_annotation":
			m.QuestionToken = "+?"
		}
		m.Type = l.typ(firstNamed(t))
	}
	return m
}

func (l *lowerer) typeElement(n *sitter.Node) ast.TypeElement {
	switch n.Type() {
	case "property_signature":
		mods, _ := l.modifiers(n)
		return &ast.PropertySignature{
			Modifiers: mods,
			Name:      l.propertyName(n.ChildByFieldName("name")),
			Optional:  hasToken(n, "?"),
			Type:      l.annotation(n.ChildByFieldName("type")),
		}
	case "method_signature":
		return &ast.MethodSignature{
			Name:      l.propertyName(n.ChildByFieldName("name")),
			Optional:  hasToken(n, "?"),
			Signature: l.signature(n),
		}
	case "call_signature":
		return &ast.CallSignature{Signature: l.signature(n)}
	case "construct_signature":
		return &ast.ConstructSignature{Signature: l.signature(n)}
	case "index_signature":
		if childOfType(n, "mapped_type_clause") != nil {
			return nil
		}
		mods, _ := l.modifiers(n)
		param := &ast.Parameter{Type: l.typ(n.ChildByFieldName("index_type"))}
		name := n.ChildByFieldName("name")
		if name == nil {
			name = childOfType(n, "identifier")
		}
		if name != nil {
			param.Name = &ast.Identifier{Text: l.text(name)}
		}
		return &ast.IndexSignature{
			Modifiers:  mods,
			Parameters: []*ast.Parameter{param},
			Type:       l.annotation(n.ChildByFieldName("type")),
		}
	}
	return nil
}
