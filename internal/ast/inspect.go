package ast

// Inspect traverses the tree rooted at n in depth-first pre-order. If f
// returns false, the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Children returns the direct child nodes of n in source order. Absent
// optional children are omitted.
func Children(n Node) []Node {
	var c children
	switch n := n.(type) {
	case *ComputedPropertyName:
		c.add(n.Expression)
	case *QualifiedName:
		c.add(n.Left)
		if n.Right != nil {
			c.add(n.Right)
		}
	case *TypeReference:
		c.add(n.TypeName)
		c.types(n.TypeArguments)
	case *LiteralType:
		c.add(n.Literal)
	case *UnionType:
		c.types(n.Types)
	case *IntersectionType:
		c.types(n.Types)
	case *ArrayType:
		c.add(n.ElementType)
	case *TupleType:
		c.types(n.Elements)
	case *NamedTupleMember:
		if n.Name != nil {
			c.add(n.Name)
		}
		c.add(n.Type)
	case *OptionalType:
		c.add(n.Type)
	case *RestType:
		c.add(n.Type)
	case *MappedType:
		if n.TypeParameter != nil {
			c.add(n.TypeParameter)
		}
		c.add(n.NameType)
		c.add(n.Type)
	case *FunctionType:
		c.signature(&n.Signature)
	case *ConstructorType:
		c.signature(&n.Signature)
	case *IndexedAccessType:
		c.add(n.ObjectType)
		c.add(n.IndexType)
	case *TypeOperator:
		c.add(n.Type)
	case *ParenthesizedType:
		c.add(n.Type)
	case *TypePredicate:
		if n.ParameterName != nil {
			c.add(n.ParameterName)
		}
		c.add(n.Type)
	case *TypeLiteral:
		for _, m := range n.Members {
			c.add(m)
		}
	case *TypeQuery:
		c.add(n.ExprName)
		c.types(n.TypeArguments)
	case *ConditionalType:
		c.add(n.CheckType)
		c.add(n.ExtendsType)
		c.add(n.TrueType)
		c.add(n.FalseType)
	case *InferType:
		if n.TypeParameter != nil {
			c.add(n.TypeParameter)
		}
	case *PropertySignature:
		c.modifiers(n.Modifiers)
		c.add(n.Name)
		c.add(n.Type)
	case *MethodSignature:
		c.add(n.Name)
		c.signature(&n.Signature)
	case *CallSignature:
		c.signature(&n.Signature)
	case *ConstructSignature:
		c.signature(&n.Signature)
	case *IndexSignature:
		c.modifiers(n.Modifiers)
		c.params(n.Parameters)
		c.add(n.Type)
	case *PropertyDeclaration:
		c.decorators(n.Decorators)
		c.modifiers(n.Modifiers)
		c.add(n.Name)
		c.add(n.Type)
		c.add(n.Initializer)
	case *MethodDeclaration:
		c.decorators(n.Decorators)
		c.modifiers(n.Modifiers)
		c.add(n.Name)
		c.signature(&n.Signature)
		c.block(n.Body)
	case *GetAccessor:
		c.decorators(n.Decorators)
		c.modifiers(n.Modifiers)
		c.add(n.Name)
		c.signature(&n.Signature)
		c.block(n.Body)
	case *SetAccessor:
		c.decorators(n.Decorators)
		c.modifiers(n.Modifiers)
		c.add(n.Name)
		c.signature(&n.Signature)
		c.block(n.Body)
	case *Constructor:
		c.decorators(n.Decorators)
		c.modifiers(n.Modifiers)
		c.params(n.Parameters)
		c.block(n.Body)
	case *ClassDeclaration:
		c.decorators(n.Decorators)
		c.modifiers(n.Modifiers)
		if n.Name != nil {
			c.add(n.Name)
		}
		c.typeParams(n.TypeParameters)
		for _, h := range n.HeritageClauses {
			if h != nil {
				c.add(h)
			}
		}
		for _, m := range n.Members {
			c.add(m)
		}
	case *FunctionDeclaration:
		c.modifiers(n.Modifiers)
		if n.Name != nil {
			c.add(n.Name)
		}
		c.signature(&n.Signature)
		c.block(n.Body)
	case *VariableStatement:
		c.modifiers(n.Modifiers)
		for _, d := range n.Declarations {
			if d != nil {
				c.add(d)
			}
		}
	case *VariableDeclaration:
		c.add(n.Name)
		c.add(n.Type)
		c.add(n.Initializer)
	case *Parameter:
		c.decorators(n.Decorators)
		c.modifiers(n.Modifiers)
		c.add(n.Name)
		c.add(n.Type)
		c.add(n.Initializer)
	case *TypeParameter:
		if n.Name != nil {
			c.add(n.Name)
		}
		c.add(n.Constraint)
		c.add(n.Default)
	case *ObjectBindingPattern:
		for _, e := range n.Elements {
			if e != nil {
				c.add(e)
			}
		}
	case *ArrayBindingPattern:
		for _, e := range n.Elements {
			c.add(e)
		}
	case *BindingElement:
		c.add(n.PropertyName)
		c.add(n.Name)
		c.add(n.Initializer)
	case *Decorator:
		c.add(n.Expression)
	case *HeritageClause:
		for _, t := range n.Types {
			if t != nil {
				c.add(t)
			}
		}
	case *ExpressionWithTypeArguments:
		c.add(n.Expression)
		c.types(n.TypeArguments)
	case *SourceFile:
		for _, s := range n.Statements {
			c.add(s)
		}
	}
	return c
}

type children []Node

func (c *children) add(n Node) {
	if n != nil {
		*c = append(*c, n)
	}
}

func (c *children) types(ts []TypeNode) {
	for _, t := range ts {
		c.add(t)
	}
}

func (c *children) modifiers(ms []*Modifier) {
	for _, m := range ms {
		if m != nil {
			c.add(m)
		}
	}
}

func (c *children) decorators(ds []*Decorator) {
	for _, d := range ds {
		if d != nil {
			c.add(d)
		}
	}
}

func (c *children) params(ps []*Parameter) {
	for _, p := range ps {
		if p != nil {
			c.add(p)
		}
	}
}

func (c *children) typeParams(tps []*TypeParameter) {
	for _, tp := range tps {
		if tp != nil {
			c.add(tp)
		}
	}
}

func (c *children) block(b *Block) {
	if b != nil {
		c.add(b)
	}
}

func (c *children) signature(s *Signature) {
	c.typeParams(s.TypeParameters)
	c.params(s.Parameters)
	c.add(s.Type)
}
