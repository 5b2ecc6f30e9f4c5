package printer

import "github.com/jward/tsreassemble/internal/ast"

// needsParens reports whether t must be parenthesized as a member of a union
// (inUnion) or intersection.
func needsParens(t ast.TypeNode, inUnion bool) bool {
	switch t.(type) {
	case *ast.FunctionType, *ast.ConstructorType, *ast.ConditionalType, *ast.InferType:
		return true
	case *ast.UnionType:
		return !inUnion
	}
	return false
}

// emitOperand writes t, wrapping it in parentheses when it is used as the
// operand of [] or an indexed access.
func (p *Printer) emitOperand(t ast.TypeNode) {
	switch t.(type) {
	case *ast.UnionType, *ast.IntersectionType, *ast.FunctionType, *ast.ConstructorType,
		*ast.ConditionalType, *ast.TypeOperator, *ast.InferType, *ast.TypePredicate:
		p.write("(")
		p.emitType(t)
		p.write(")")
	default:
		p.emitType(t)
	}
}

func (p *Printer) emitTypeList(ts []ast.TypeNode, sep string, inUnion bool) {
	for i, t := range ts {
		if i > 0 {
			p.write(sep)
		}
		if needsParens(t, inUnion) {
			p.write("(")
			p.emitType(t)
			p.write(")")
			continue
		}
		p.emitType(t)
	}
}

func (p *Printer) emitType(t ast.TypeNode) {
	switch t := t.(type) {
	case nil:
	case *ast.KeywordType:
		p.write(t.Keyword)
	case *ast.TypeReference:
		p.emitEntityName(t.TypeName)
		p.emitTypeArguments(t.TypeArguments)
	case *ast.LiteralType:
		p.emitExpression(t.Literal)
	case *ast.UnionType:
		p.emitTypeList(t.Types, " | ", true)
	case *ast.IntersectionType:
		p.emitTypeList(t.Types, " & ", false)
	case *ast.ArrayType:
		p.emitOperand(t.ElementType)
		p.write("[]")
	case *ast.TupleType:
		p.write("[")
		for i, e := range t.Elements {
			if i > 0 {
				p.write(", ")
			}
			p.emitType(e)
		}
		p.write("]")
	case *ast.NamedTupleMember:
		if t.Rest {
			p.write("...")
		}
		if t.Name != nil {
			p.write(t.Name.Text)
		}
		if t.Optional {
			p.write("?")
		}
		p.write(": ")
		p.emitType(t.Type)
	case *ast.OptionalType:
		p.emitOperand(t.Type)
		p.write("?")
	case *ast.RestType:
		p.write("...")
		p.emitType(t.Type)
	case *ast.MappedType:
		p.emitMappedType(t)
	case *ast.FunctionType:
		p.emitTypeParameters(t.TypeParameters)
		p.emitParameters(t.Parameters)
		p.write(" => ")
		p.emitReturnType(t.Type)
	case *ast.ConstructorType:
		if t.Abstract {
			p.write("abstract ")
		}
		p.write("new ")
		p.emitTypeParameters(t.TypeParameters)
		p.emitParameters(t.Parameters)
		p.write(" => ")
		p.emitReturnType(t.Type)
	case *ast.IndexedAccessType:
		p.emitOperand(t.ObjectType)
		p.write("[")
		p.emitType(t.IndexType)
		p.write("]")
	case *ast.TypeOperator:
		p.write(t.Operator)
		p.write(" ")
		p.emitOperand(t.Type)
	case *ast.ParenthesizedType:
		p.write("(")
		p.emitType(t.Type)
		p.write(")")
	case *ast.TypePredicate:
		if t.Asserts {
			p.write("asserts ")
		}
		if t.ParameterName != nil {
			p.write(t.ParameterName.Text)
		}
		if t.Type != nil {
			p.write(" is ")
			p.emitType(t.Type)
		}
	case *ast.TypeLiteral:
		p.emitTypeLiteral(t)
	case *ast.TypeQuery:
		p.write("typeof ")
		p.emitEntityName(t.ExprName)
		p.emitTypeArguments(t.TypeArguments)
	case *ast.ConditionalType:
		p.emitCheckType(t.CheckType)
		p.write(" extends ")
		p.emitCheckType(t.ExtendsType)
		p.write(" ? ")
		p.emitType(t.TrueType)
		p.write(" : ")
		p.emitType(t.FalseType)
	case *ast.InferType:
		p.write("infer ")
		p.emitTypeParameter(t.TypeParameter)
	case *ast.RawType:
		p.write(t.Text)
	default:
		p.writef("/* unsupported type %s */", t.Kind())
	}
}

// emitReturnType writes a function type's return type. A function type
// always has one, so a missing type prints as void.
func (p *Printer) emitReturnType(t ast.TypeNode) {
	if t == nil {
		p.write("void")
		return
	}
	p.emitType(t)
}

func (p *Printer) emitCheckType(t ast.TypeNode) {
	switch t.(type) {
	case *ast.ConditionalType, *ast.FunctionType, *ast.ConstructorType:
		p.write("(")
		p.emitType(t)
		p.write(")")
	default:
		p.emitType(t)
	}
}

func (p *Printer) emitMappedType(t *ast.MappedType) {
	p.write("{ ")
	if t.ReadonlyToken != "" {
		p.write(t.ReadonlyToken)
		p.write(" ")
	}
	p.write("[")
	if tp := t.TypeParameter; tp != nil && tp.Name != nil {
		p.write(tp.Name.Text)
		p.write(" in ")
		p.emitType(tp.Constraint)
	}
	if t.NameType != nil {
		p.write(" as ")
		p.emitType(t.NameType)
	}
	p.write("]")
	p.write(t.QuestionToken)
	if t.Type != nil {
		p.write(": ")
		p.emitType(t.Type)
	}
	p.write(" }")
}

func (p *Printer) emitTypeLiteral(t *ast.TypeLiteral) {
	if len(t.Members) == 0 {
		p.write("{}")
		return
	}
	p.write("{ ")
	for i, m := range t.Members {
		if i > 0 {
			p.write(" ")
		}
		p.emitTypeElement(m)
		p.write(";")
	}
	p.write(" }")
}

func (p *Printer) emitTypeElement(e ast.TypeElement) {
	switch e := e.(type) {
	case *ast.PropertySignature:
		p.emitModifiers(e.Modifiers)
		p.emitPropertyName(e.Name)
		if e.Optional {
			p.write("?")
		}
		if e.Type != nil {
			p.write(": ")
			p.emitType(e.Type)
		}
	case *ast.MethodSignature:
		p.emitPropertyName(e.Name)
		if e.Optional {
			p.write("?")
		}
		p.emitSignature(e.Signature, ": ")
	case *ast.CallSignature:
		p.emitSignature(e.Signature, ": ")
	case *ast.ConstructSignature:
		p.write("new ")
		p.emitSignature(e.Signature, ": ")
	case *ast.IndexSignature:
		p.emitModifiers(e.Modifiers)
		p.write("[")
		for i, param := range e.Parameters {
			if i > 0 {
				p.write(", ")
			}
			p.emitParameter(param)
		}
		p.write("]")
		if e.Type != nil {
			p.write(": ")
			p.emitType(e.Type)
		}
	}
}
