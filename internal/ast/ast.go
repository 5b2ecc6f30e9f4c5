// Package ast defines the syntax model shared by the compiled and declaration
// trees. Each category is a closed interface: only types in this package
// implement the unexported marker methods, so every dispatch over a category
// can enumerate its variants.
//
// Nodes carry no parent pointers. Trees are values; transforms build new nodes
// instead of mutating existing ones.
package ast

// Node is implemented by every syntax node.
type Node interface {
	Kind() Kind
}

// Expression is a runtime expression. Only names and literals are modeled;
// anything else is kept verbatim as a RawExpression.
type Expression interface {
	Node
	isExpression()
}

// PropertyName names a class member or type literal member.
type PropertyName interface {
	Node
	isPropertyName()
}

// EntityName is a possibly qualified type name (A or A.B.C).
type EntityName interface {
	Node
	isEntityName()
}

// BindingName is the target of a parameter or variable declaration.
type BindingName interface {
	Node
	isBindingName()
}

// ArrayBindingElement is one position in an array binding pattern. Elided
// positions are OmittedExpression.
type ArrayBindingElement interface {
	Node
	isArrayBindingElement()
}

// TypeNode is a type annotation.
type TypeNode interface {
	Node
	isType()
}

// TypeElement is a member of a type literal.
type TypeElement interface {
	Node
	isTypeElement()
}

// ClassMember is an element of a class body.
type ClassMember interface {
	Node
	isClassMember()
}

// Statement is a top-level statement.
type Statement interface {
	Node
	isStatement()
}

// ---------- Names and literals ----------

type Identifier struct {
	Text string
}

// PrivateIdentifier is a #name. Text includes the leading '#'.
type PrivateIdentifier struct {
	Text string
}

// StringLiteral keeps the literal's inner source text with escapes intact.
type StringLiteral struct {
	Text        string
	SingleQuote bool
}

type NumericLiteral struct {
	Text string
}

type BooleanLiteral struct {
	Value bool
}

// OmittedExpression marks an elided array position.
type OmittedExpression struct{}

// RawExpression is a runtime expression kept as verbatim source text.
type RawExpression struct {
	Text string
}

type ComputedPropertyName struct {
	Expression Expression
}

type QualifiedName struct {
	Left  EntityName
	Right *Identifier
}

// ---------- Types ----------

// KeywordType is a predefined type such as string, number, void or this.
type KeywordType struct {
	Keyword string
}

type TypeReference struct {
	TypeName      EntityName
	TypeArguments []TypeNode
}

// LiteralType wraps a string, numeric, boolean or signed numeric literal.
type LiteralType struct {
	Literal Expression
}

type UnionType struct {
	Types []TypeNode
}

type IntersectionType struct {
	Types []TypeNode
}

type ArrayType struct {
	ElementType TypeNode
}

type TupleType struct {
	Elements []TypeNode
}

// NamedTupleMember is a labeled tuple position such as `...rest: T[]`.
type NamedTupleMember struct {
	Rest     bool
	Name     *Identifier
	Optional bool
	Type     TypeNode
}

type OptionalType struct {
	Type TypeNode
}

type RestType struct {
	Type TypeNode
}

// MappedType is `{ readonly [K in T as N]?: V }`. ReadonlyToken and
// QuestionToken hold the token as written ("", "readonly", "+readonly",
// "-readonly" and "", "?", "+?", "-?").
type MappedType struct {
	ReadonlyToken string
	TypeParameter *TypeParameter
	NameType      TypeNode
	QuestionToken string
	Type          TypeNode
}

// Signature is the shared shape of every function-like node.
type Signature struct {
	TypeParameters []*TypeParameter
	Parameters     []*Parameter
	Type           TypeNode
}

type FunctionType struct {
	Signature
}

type ConstructorType struct {
	Abstract bool
	Signature
}

type IndexedAccessType struct {
	ObjectType TypeNode
	IndexType  TypeNode
}

// TypeOperator is keyof, unique or readonly applied to a type.
type TypeOperator struct {
	Operator string
	Type     TypeNode
}

type ParenthesizedType struct {
	Type TypeNode
}

// TypePredicate is `x is T`, `asserts x is T` or `asserts x`.
type TypePredicate struct {
	Asserts       bool
	ParameterName *Identifier
	Type          TypeNode
}

type TypeLiteral struct {
	Members []TypeElement
}

// TypeQuery is `typeof x`.
type TypeQuery struct {
	ExprName      EntityName
	TypeArguments []TypeNode
}

type ConditionalType struct {
	CheckType   TypeNode
	ExtendsType TypeNode
	TrueType    TypeNode
	FalseType   TypeNode
}

type InferType struct {
	TypeParameter *TypeParameter
}

// RawType is a type kept as verbatim source text (template literal types and
// other syntax outside the modeled set).
type RawType struct {
	Text string
}

// ---------- Type literal members ----------

type PropertySignature struct {
	Modifiers []*Modifier
	Name      PropertyName
	Optional  bool
	Type      TypeNode
}

type MethodSignature struct {
	Name     PropertyName
	Optional bool
	Signature
}

type CallSignature struct {
	Signature
}

type ConstructSignature struct {
	Signature
}

type IndexSignature struct {
	Modifiers  []*Modifier
	Parameters []*Parameter
	Type       TypeNode
}

// ---------- Class members ----------

type PropertyDeclaration struct {
	Decorators  []*Decorator
	Modifiers   []*Modifier
	Name        PropertyName
	Optional    bool
	Definite    bool
	Type        TypeNode
	Initializer Expression
}

type MethodDeclaration struct {
	Decorators []*Decorator
	Modifiers  []*Modifier
	Asterisk   bool
	Name       PropertyName
	Optional   bool
	Signature
	Body *Block
}

type GetAccessor struct {
	Decorators []*Decorator
	Modifiers  []*Modifier
	Name       PropertyName
	Signature
	Body *Block
}

type SetAccessor struct {
	Decorators []*Decorator
	Modifiers  []*Modifier
	Name       PropertyName
	Signature
	Body *Block
}

type Constructor struct {
	Decorators []*Decorator
	Modifiers  []*Modifier
	Parameters []*Parameter
	Body       *Block
}

// RawMember is a class element kept verbatim (static blocks, index
// signatures, comments).
type RawMember struct {
	Text      string
	Recovered bool // the text failed to parse
}

// ---------- Statements ----------

type ClassDeclaration struct {
	Decorators      []*Decorator
	Modifiers       []*Modifier
	Name            *Identifier // nil for an anonymous class
	TypeParameters  []*TypeParameter
	HeritageClauses []*HeritageClause
	Members         []ClassMember
}

type FunctionDeclaration struct {
	Modifiers []*Modifier
	Asterisk  bool
	Name      *Identifier // nil for `export default function () {}`
	Signature
	Body *Block // nil in declaration files
}

// VariableStatement is a var, let or const statement.
type VariableStatement struct {
	Modifiers    []*Modifier
	Keyword      string
	Declarations []*VariableDeclaration
}

// RawStatement is a statement kept as verbatim source text.
type RawStatement struct {
	Text      string
	Recovered bool // the text failed to parse
}

// ---------- Supporting nodes ----------

type VariableDeclaration struct {
	Name        BindingName
	Definite    bool
	Type        TypeNode
	Initializer Expression
}

type Parameter struct {
	Decorators  []*Decorator
	Modifiers   []*Modifier
	Rest        bool
	Name        BindingName
	Optional    bool
	Type        TypeNode
	Initializer Expression
}

type TypeParameter struct {
	Name       *Identifier
	Constraint TypeNode
	Default    TypeNode
}

type ObjectBindingPattern struct {
	Elements []*BindingElement
}

type ArrayBindingPattern struct {
	Elements []ArrayBindingElement
}

// BindingElement is one element of a binding pattern. PropertyName is set
// for `{ key: name }` forms.
type BindingElement struct {
	Rest         bool
	PropertyName PropertyName
	Name         BindingName
	Initializer  Expression
}

type Decorator struct {
	Expression Expression
}

type Modifier struct {
	Token ModifierKind
}

type HeritageClause struct {
	Token HeritageToken
	Types []*ExpressionWithTypeArguments
}

type ExpressionWithTypeArguments struct {
	Expression    Expression
	TypeArguments []TypeNode
}

// Block is an executable body kept as verbatim source text, braces included.
type Block struct {
	Text string
}

// SourceFile is a parsed file.
type SourceFile struct {
	FileName   string
	Statements []Statement
}

// ---------- Kind ----------

func (*Identifier) Kind() Kind                  { return KindIdentifier }
func (*PrivateIdentifier) Kind() Kind           { return KindPrivateIdentifier }
func (*StringLiteral) Kind() Kind               { return KindStringLiteral }
func (*NumericLiteral) Kind() Kind              { return KindNumericLiteral }
func (*BooleanLiteral) Kind() Kind              { return KindBooleanLiteral }
func (*OmittedExpression) Kind() Kind           { return KindOmittedExpression }
func (*RawExpression) Kind() Kind               { return KindRawExpression }
func (*ComputedPropertyName) Kind() Kind        { return KindComputedPropertyName }
func (*QualifiedName) Kind() Kind               { return KindQualifiedName }
func (*KeywordType) Kind() Kind                 { return KindKeywordType }
func (*TypeReference) Kind() Kind               { return KindTypeReference }
func (*LiteralType) Kind() Kind                 { return KindLiteralType }
func (*UnionType) Kind() Kind                   { return KindUnionType }
func (*IntersectionType) Kind() Kind            { return KindIntersectionType }
func (*ArrayType) Kind() Kind                   { return KindArrayType }
func (*TupleType) Kind() Kind                   { return KindTupleType }
func (*NamedTupleMember) Kind() Kind            { return KindNamedTupleMember }
func (*OptionalType) Kind() Kind                { return KindOptionalType }
func (*RestType) Kind() Kind                    { return KindRestType }
func (*MappedType) Kind() Kind                  { return KindMappedType }
func (*FunctionType) Kind() Kind                { return KindFunctionType }
func (*ConstructorType) Kind() Kind             { return KindConstructorType }
func (*IndexedAccessType) Kind() Kind           { return KindIndexedAccessType }
func (*TypeOperator) Kind() Kind                { return KindTypeOperator }
func (*ParenthesizedType) Kind() Kind           { return KindParenthesizedType }
func (*TypePredicate) Kind() Kind               { return KindTypePredicate }
func (*TypeLiteral) Kind() Kind                 { return KindTypeLiteral }
func (*TypeQuery) Kind() Kind                   { return KindTypeQuery }
func (*ConditionalType) Kind() Kind             { return KindConditionalType }
func (*InferType) Kind() Kind                   { return KindInferType }
func (*RawType) Kind() Kind                     { return KindRawType }
func (*PropertySignature) Kind() Kind           { return KindPropertySignature }
func (*MethodSignature) Kind() Kind             { return KindMethodSignature }
func (*CallSignature) Kind() Kind               { return KindCallSignature }
func (*ConstructSignature) Kind() Kind          { return KindConstructSignature }
func (*IndexSignature) Kind() Kind              { return KindIndexSignature }
func (*PropertyDeclaration) Kind() Kind         { return KindPropertyDeclaration }
func (*MethodDeclaration) Kind() Kind           { return KindMethodDeclaration }
func (*GetAccessor) Kind() Kind                 { return KindGetAccessor }
func (*SetAccessor) Kind() Kind                 { return KindSetAccessor }
func (*Constructor) Kind() Kind                 { return KindConstructor }
func (*RawMember) Kind() Kind                   { return KindRawMember }
func (*ClassDeclaration) Kind() Kind            { return KindClassDeclaration }
func (*FunctionDeclaration) Kind() Kind         { return KindFunctionDeclaration }
func (*VariableStatement) Kind() Kind           { return KindVariableStatement }
func (*RawStatement) Kind() Kind                { return KindRawStatement }
func (*VariableDeclaration) Kind() Kind         { return KindVariableDeclaration }
func (*Parameter) Kind() Kind                   { return KindParameter }
func (*TypeParameter) Kind() Kind               { return KindTypeParameter }
func (*ObjectBindingPattern) Kind() Kind        { return KindObjectBindingPattern }
func (*ArrayBindingPattern) Kind() Kind         { return KindArrayBindingPattern }
func (*BindingElement) Kind() Kind              { return KindBindingElement }
func (*Decorator) Kind() Kind                   { return KindDecorator }
func (*Modifier) Kind() Kind                    { return KindModifier }
func (*HeritageClause) Kind() Kind              { return KindHeritageClause }
func (*ExpressionWithTypeArguments) Kind() Kind { return KindExpressionWithTypeArguments }
func (*Block) Kind() Kind                       { return KindBlock }
func (*SourceFile) Kind() Kind                  { return KindSourceFile }

// ---------- Category markers ----------

func (*Identifier) isExpression()        {}
func (*PrivateIdentifier) isExpression() {}
func (*StringLiteral) isExpression()     {}
func (*NumericLiteral) isExpression()    {}
func (*BooleanLiteral) isExpression()    {}
func (*OmittedExpression) isExpression() {}
func (*RawExpression) isExpression()     {}

func (*Identifier) isPropertyName()           {}
func (*PrivateIdentifier) isPropertyName()    {}
func (*StringLiteral) isPropertyName()        {}
func (*NumericLiteral) isPropertyName()       {}
func (*ComputedPropertyName) isPropertyName() {}

func (*Identifier) isEntityName()    {}
func (*QualifiedName) isEntityName() {}

func (*Identifier) isBindingName()           {}
func (*ObjectBindingPattern) isBindingName() {}
func (*ArrayBindingPattern) isBindingName()  {}

func (*BindingElement) isArrayBindingElement()    {}
func (*OmittedExpression) isArrayBindingElement() {}

func (*KeywordType) isType()       {}
func (*TypeReference) isType()     {}
func (*LiteralType) isType()       {}
func (*UnionType) isType()         {}
func (*IntersectionType) isType()  {}
func (*ArrayType) isType()         {}
func (*TupleType) isType()         {}
func (*NamedTupleMember) isType()  {}
func (*OptionalType) isType()      {}
func (*RestType) isType()          {}
func (*MappedType) isType()        {}
func (*FunctionType) isType()      {}
func (*ConstructorType) isType()   {}
func (*IndexedAccessType) isType() {}
func (*TypeOperator) isType()      {}
func (*ParenthesizedType) isType() {}
func (*TypePredicate) isType()     {}
func (*TypeLiteral) isType()       {}
func (*TypeQuery) isType()         {}
func (*ConditionalType) isType()   {}
func (*InferType) isType()         {}
func (*RawType) isType()           {}

func (*PropertySignature) isTypeElement()  {}
func (*MethodSignature) isTypeElement()    {}
func (*CallSignature) isTypeElement()      {}
func (*ConstructSignature) isTypeElement() {}
func (*IndexSignature) isTypeElement()     {}

func (*PropertyDeclaration) isClassMember() {}
func (*MethodDeclaration) isClassMember()   {}
func (*GetAccessor) isClassMember()         {}
func (*SetAccessor) isClassMember()         {}
func (*Constructor) isClassMember()         {}
func (*RawMember) isClassMember()           {}

func (*ClassDeclaration) isStatement()    {}
func (*FunctionDeclaration) isStatement() {}
func (*VariableStatement) isStatement()   {}
func (*RawStatement) isStatement()        {}
