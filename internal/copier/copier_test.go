package copier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/tsreassemble/internal/ast"
	"github.com/jward/tsreassemble/internal/diag"
)

// foreignNode is a node kind the copier has no rule for.
type foreignNode struct{ name string }

func (*foreignNode) Kind() ast.Kind { return ast.Kind(999) }

func ident(s string) *ast.Identifier { return &ast.Identifier{Text: s} }
func kw(s string) *ast.KeywordType   { return &ast.KeywordType{Keyword: s} }

func sampleClass() *ast.ClassDeclaration {
	return &ast.ClassDeclaration{
		Decorators: []*ast.Decorator{{Expression: &ast.RawExpression{Text: "sealed"}}},
		Modifiers:  []*ast.Modifier{{Token: ast.ModifierExport}},
		Name:       ident("Store"),
		TypeParameters: []*ast.TypeParameter{{
			Name:       ident("T"),
			Constraint: &ast.TypeReference{TypeName: ident("Item")},
			Default:    kw("unknown"),
		}},
		HeritageClauses: []*ast.HeritageClause{{
			Token: ast.HeritageExtends,
			Types: []*ast.ExpressionWithTypeArguments{{
				Expression:    ident("Base"),
				TypeArguments: []ast.TypeNode{&ast.TypeReference{TypeName: ident("T")}},
			}},
		}},
		Members: []ast.ClassMember{
			&ast.PropertyDeclaration{
				Modifiers: []*ast.Modifier{{Token: ast.ModifierPrivate}, {Token: ast.ModifierReadonly}},
				Name:      ident("items"),
				Type: &ast.TypeReference{
					TypeName:      &ast.QualifiedName{Left: ident("ns"), Right: ident("Map")},
					TypeArguments: []ast.TypeNode{kw("string"), &ast.ArrayType{ElementType: kw("number")}},
				},
				Initializer: &ast.RawExpression{Text: "new Map()"},
			},
			&ast.MethodDeclaration{
				Name: &ast.ComputedPropertyName{Expression: &ast.RawExpression{Text: "Symbol.iterator"}},
				Signature: ast.Signature{
					Parameters: []*ast.Parameter{
						{
							Name: &ast.ObjectBindingPattern{Elements: []*ast.BindingElement{
								{PropertyName: ident("a"), Name: ident("b"), Initializer: &ast.NumericLiteral{Text: "1"}},
								{Rest: true, Name: ident("rest")},
							}},
							Type: &ast.TypeLiteral{Members: []ast.TypeElement{
								&ast.PropertySignature{Name: ident("a"), Optional: true, Type: kw("number")},
								&ast.MethodSignature{Name: ident("f"), Signature: ast.Signature{Type: kw("void")}},
								&ast.IndexSignature{
									Parameters: []*ast.Parameter{{Name: ident("k"), Type: kw("string")}},
									Type:       kw("unknown"),
								},
							}},
						},
						{
							Name: &ast.ArrayBindingPattern{Elements: []ast.ArrayBindingElement{
								&ast.BindingElement{Name: ident("x")},
								&ast.BindingElement{Name: ident("y")},
							}},
							Type: &ast.TupleType{Elements: []ast.TypeNode{
								&ast.NamedTupleMember{Name: ident("x"), Type: kw("number")},
								&ast.OptionalType{Type: kw("string")},
								&ast.RestType{Type: &ast.ArrayType{ElementType: kw("boolean")}},
							}},
						},
					},
					Type: &ast.TypeReference{
						TypeName:      ident("Iterator"),
						TypeArguments: []ast.TypeNode{&ast.TypeReference{TypeName: ident("T")}},
					},
				},
				Body: &ast.Block{Text: "{ return this.items.values(); }"},
			},
			&ast.GetAccessor{
				Name:      ident("size"),
				Signature: ast.Signature{Type: kw("number")},
				Body:      &ast.Block{Text: "{ return 0; }"},
			},
			&ast.SetAccessor{
				Name: &ast.StringLiteral{Text: "label", SingleQuote: true},
				Signature: ast.Signature{Parameters: []*ast.Parameter{{
					Name: ident("v"),
					Type: &ast.UnionType{Types: []ast.TypeNode{kw("string"), &ast.LiteralType{Literal: &ast.BooleanLiteral{Value: false}}}},
				}}},
				Body: &ast.Block{Text: "{}"},
			},
			&ast.Constructor{
				Parameters: []*ast.Parameter{{
					Modifiers: []*ast.Modifier{{Token: ast.ModifierPublic}},
					Name:      ident("seed"),
					Optional:  true,
					Type: &ast.FunctionType{Signature: ast.Signature{
						TypeParameters: []*ast.TypeParameter{{Name: ident("U")}},
						Parameters:     []*ast.Parameter{{Name: ident("u"), Type: &ast.TypeReference{TypeName: ident("U")}}},
						Type:           &ast.TypePredicate{ParameterName: ident("u"), Type: kw("string")},
					}},
				}},
				Body: &ast.Block{Text: "{ super(); }"},
			},
			&ast.RawMember{Text: "static { init(); }"},
		},
	}
}

func TestCopyClassIsStructurallyEqual(t *testing.T) {
	src := sampleClass()
	got := New(nil).Copy(src)
	require.IsType(t, &ast.ClassDeclaration{}, got)
	assert.Equal(t, src, got)
}

func TestCopySharesNoNode(t *testing.T) {
	src := sampleClass()
	dst := New(nil).Copy(src)

	seen := map[ast.Node]bool{}
	ast.Inspect(src, func(n ast.Node) bool {
		seen[n] = true
		return true
	})
	shared := 0
	total := 0
	ast.Inspect(dst, func(n ast.Node) bool {
		total++
		if seen[n] {
			shared++
		}
		return true
	})
	assert.Equal(t, len(seen), total)
	assert.Zero(t, shared)
}

func TestCopyDoesNotMutateSource(t *testing.T) {
	src := sampleClass()
	before := New(nil).Copy(src)
	dst := New(nil).Copy(src).(*ast.ClassDeclaration)

	dst.Name.Text = "Renamed"
	dst.Members[0].(*ast.PropertyDeclaration).Type = kw("any")
	dst.TypeParameters[0].Name.Text = "Z"

	assert.Equal(t, before, ast.Node(src))
}

func TestCopyTypes(t *testing.T) {
	tests := []struct {
		name string
		in   ast.TypeNode
	}{
		{"keyword", kw("string")},
		{"literal", &ast.LiteralType{Literal: &ast.StringLiteral{Text: "on"}}},
		{"intersection", &ast.IntersectionType{Types: []ast.TypeNode{kw("A"), kw("B")}}},
		{"mapped", &ast.MappedType{
			ReadonlyToken: "-readonly",
			TypeParameter: &ast.TypeParameter{Name: ident("K"), Constraint: &ast.TypeOperator{Operator: "keyof", Type: &ast.TypeReference{TypeName: ident("T")}}},
			NameType:      &ast.TypeReference{TypeName: ident("K")},
			QuestionToken: "?",
			Type:          &ast.IndexedAccessType{ObjectType: &ast.TypeReference{TypeName: ident("T")}, IndexType: &ast.TypeReference{TypeName: ident("K")}},
		}},
		{"constructor", &ast.ConstructorType{Abstract: true, Signature: ast.Signature{Type: kw("object")}}},
		{"parenthesized", &ast.ParenthesizedType{Type: &ast.FunctionType{Signature: ast.Signature{Type: kw("void")}}}},
		{"query", &ast.TypeQuery{ExprName: &ast.QualifiedName{Left: ident("a"), Right: ident("b")}}},
		{"conditional", &ast.ConditionalType{
			CheckType:   &ast.TypeReference{TypeName: ident("T")},
			ExtendsType: &ast.ArrayType{ElementType: &ast.InferType{TypeParameter: &ast.TypeParameter{Name: ident("U")}}},
			TrueType:    &ast.TypeReference{TypeName: ident("U")},
			FalseType:   kw("never"),
		}},
		{"call and construct signatures", &ast.TypeLiteral{Members: []ast.TypeElement{
			&ast.CallSignature{Signature: ast.Signature{Type: kw("void")}},
			&ast.ConstructSignature{Signature: ast.Signature{Type: kw("object")}},
		}}},
		{"asserts predicate", &ast.TypePredicate{Asserts: true, ParameterName: ident("x")}},
		{"raw", &ast.RawType{Text: "`prefix-${string}`"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil)
			got := c.CopyType(tt.in)
			assert.Equal(t, tt.in, got)
			assert.NotSame(t, tt.in, got)
		})
	}
}

func TestCopyStatements(t *testing.T) {
	stmts := []ast.Statement{
		&ast.FunctionDeclaration{
			Modifiers: []*ast.Modifier{{Token: ast.ModifierExport}, {Token: ast.ModifierAsync}},
			Asterisk:  true,
			Name:      ident("gen"),
			Signature: ast.Signature{Parameters: []*ast.Parameter{{Rest: true, Name: ident("xs")}}},
			Body:      &ast.Block{Text: "{}"},
		},
		&ast.VariableStatement{
			Keyword: "const",
			Declarations: []*ast.VariableDeclaration{
				{Name: ident("a"), Type: kw("number"), Initializer: &ast.NumericLiteral{Text: "1"}},
				{Name: &ast.ArrayBindingPattern{Elements: []ast.ArrayBindingElement{
					&ast.BindingElement{Name: ident("p")},
					&ast.OmittedExpression{},
					&ast.BindingElement{Name: ident("q")},
				}}, Initializer: &ast.RawExpression{Text: "pair()"}},
			},
		},
		&ast.RawStatement{Text: "import x from 'y';"},
	}
	got := New(nil).CopyNodes(stmts)
	assert.Equal(t, stmts, got)

	elems := got[1].(*ast.VariableStatement).Declarations[1].Name.(*ast.ArrayBindingPattern).Elements
	require.Len(t, elems, 3)
	assert.IsType(t, &ast.OmittedExpression{}, elems[1])
}

func TestCopySourceFile(t *testing.T) {
	f := &ast.SourceFile{FileName: "foo.js", Statements: []ast.Statement{&ast.RawStatement{Text: "a;"}}}
	got := New(nil).Copy(f)
	assert.Equal(t, ast.Node(f), got)
	assert.NotSame(t, f, got)
}

func TestCopyUnsupportedKindDegrades(t *testing.T) {
	col := diag.NewCollector(nil)
	c := New(col)
	in := &foreignNode{name: "alien"}

	var got ast.Node
	require.NotPanics(t, func() { got = c.Copy(in) })
	assert.Same(t, in, got)

	diags := col.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.CodeUnsupportedKind, diags[0].Code)
	assert.Equal(t, ast.Kind(999), diags[0].Kind)
}

func TestCopyNil(t *testing.T) {
	c := New(nil)
	assert.Nil(t, c.Copy(nil))
	assert.Nil(t, c.CopyType(nil))
	assert.Nil(t, c.CopyExpression(nil))
	assert.Nil(t, c.CopyParameters(nil))
	assert.Nil(t, c.CopyModifiers(nil))
	assert.Nil(t, c.CopyNodes(nil))
}
