package copier

import "github.com/jward/tsreassemble/internal/ast"

// CopyTypes clones a type list.
func (c *Copier) CopyTypes(ts []ast.TypeNode) []ast.TypeNode {
	if ts == nil {
		return nil
	}
	out := make([]ast.TypeNode, len(ts))
	for i, t := range ts {
		out[i] = c.CopyType(t)
	}
	return out
}

// CopyType clones a type annotation.
func (c *Copier) CopyType(t ast.TypeNode) ast.TypeNode {
	switch t := t.(type) {
	case nil:
		return nil
	case *ast.KeywordType:
		return &ast.KeywordType{Keyword: t.Keyword}
	case *ast.TypeReference:
		return &ast.TypeReference{
			TypeName:      c.CopyEntityName(t.TypeName),
			TypeArguments: c.CopyTypes(t.TypeArguments),
		}
	case *ast.LiteralType:
		return &ast.LiteralType{Literal: c.CopyExpression(t.Literal)}
	case *ast.UnionType:
		return &ast.UnionType{Types: c.CopyTypes(t.Types)}
	case *ast.IntersectionType:
		return &ast.IntersectionType{Types: c.CopyTypes(t.Types)}
	case *ast.ArrayType:
		return &ast.ArrayType{ElementType: c.CopyType(t.ElementType)}
	case *ast.TupleType:
		return &ast.TupleType{Elements: c.CopyTypes(t.Elements)}
	case *ast.NamedTupleMember:
		return &ast.NamedTupleMember{
			Rest:     t.Rest,
			Name:     copyIdent(t.Name),
			Optional: t.Optional,
			Type:     c.CopyType(t.Type),
		}
	case *ast.OptionalType:
		return &ast.OptionalType{Type: c.CopyType(t.Type)}
	case *ast.RestType:
		return &ast.RestType{Type: c.CopyType(t.Type)}
	case *ast.MappedType:
		return &ast.MappedType{
			ReadonlyToken: t.ReadonlyToken,
			TypeParameter: c.copyTypeParameter(t.TypeParameter),
			NameType:      c.CopyType(t.NameType),
			QuestionToken: t.QuestionToken,
			Type:          c.CopyType(t.Type),
		}
	case *ast.FunctionType:
		return &ast.FunctionType{Signature: c.copySignature(t.Signature)}
	case *ast.ConstructorType:
		return &ast.ConstructorType{Abstract: t.Abstract, Signature: c.copySignature(t.Signature)}
	case *ast.IndexedAccessType:
		return &ast.IndexedAccessType{
			ObjectType: c.CopyType(t.ObjectType),
			IndexType:  c.CopyType(t.IndexType),
		}
	case *ast.TypeOperator:
		return &ast.TypeOperator{Operator: t.Operator, Type: c.CopyType(t.Type)}
	case *ast.ParenthesizedType:
		return &ast.ParenthesizedType{Type: c.CopyType(t.Type)}
	case *ast.TypePredicate:
		return &ast.TypePredicate{
			Asserts:       t.Asserts,
			ParameterName: copyIdent(t.ParameterName),
			Type:          c.CopyType(t.Type),
		}
	case *ast.TypeLiteral:
		out := &ast.TypeLiteral{}
		if t.Members != nil {
			out.Members = make([]ast.TypeElement, len(t.Members))
			for i, m := range t.Members {
				out.Members[i] = c.copyTypeElement(m)
			}
		}
		return out
	case *ast.TypeQuery:
		return &ast.TypeQuery{
			ExprName:      c.CopyEntityName(t.ExprName),
			TypeArguments: c.CopyTypes(t.TypeArguments),
		}
	case *ast.ConditionalType:
		return &ast.ConditionalType{
			CheckType:   c.CopyType(t.CheckType),
			ExtendsType: c.CopyType(t.ExtendsType),
			TrueType:    c.CopyType(t.TrueType),
			FalseType:   c.CopyType(t.FalseType),
		}
	case *ast.InferType:
		return &ast.InferType{TypeParameter: c.copyTypeParameter(t.TypeParameter)}
	case *ast.RawType:
		return &ast.RawType{Text: t.Text}
	}
	c.diags.Unsupported(t, "copy type")
	return t
}
