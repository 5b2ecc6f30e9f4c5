package ast

import "fmt"

// Kind tags the concrete variant of a syntax node.
type Kind int

const (
	KindUnknown Kind = iota

	// Names, literals and runtime expressions.
	KindIdentifier
	KindPrivateIdentifier
	KindStringLiteral
	KindNumericLiteral
	KindBooleanLiteral
	KindOmittedExpression
	KindRawExpression
	KindComputedPropertyName
	KindQualifiedName

	// Type annotations.
	KindKeywordType
	KindTypeReference
	KindLiteralType
	KindUnionType
	KindIntersectionType
	KindArrayType
	KindTupleType
	KindNamedTupleMember
	KindOptionalType
	KindRestType
	KindMappedType
	KindFunctionType
	KindConstructorType
	KindIndexedAccessType
	KindTypeOperator
	KindParenthesizedType
	KindTypePredicate
	KindTypeLiteral
	KindTypeQuery
	KindConditionalType
	KindInferType
	KindRawType

	// Members of type literals.
	KindPropertySignature
	KindMethodSignature
	KindCallSignature
	KindConstructSignature
	KindIndexSignature

	// Class members.
	KindPropertyDeclaration
	KindMethodDeclaration
	KindGetAccessor
	KindSetAccessor
	KindConstructor
	KindRawMember

	// Statements.
	KindClassDeclaration
	KindFunctionDeclaration
	KindVariableStatement
	KindRawStatement

	// Supporting nodes.
	KindVariableDeclaration
	KindParameter
	KindTypeParameter
	KindObjectBindingPattern
	KindArrayBindingPattern
	KindBindingElement
	KindDecorator
	KindModifier
	KindHeritageClause
	KindExpressionWithTypeArguments
	KindBlock
	KindSourceFile

	kindCount
)

var kindNames = [...]string{
	KindUnknown:                     "Unknown",
	KindIdentifier:                  "Identifier",
	KindPrivateIdentifier:           "PrivateIdentifier",
	KindStringLiteral:               "StringLiteral",
	KindNumericLiteral:              "NumericLiteral",
	KindBooleanLiteral:              "BooleanLiteral",
	KindOmittedExpression:           "OmittedExpression",
	KindRawExpression:               "RawExpression",
	KindComputedPropertyName:        "ComputedPropertyName",
	KindQualifiedName:               "QualifiedName",
	KindKeywordType:                 "KeywordType",
	KindTypeReference:               "TypeReference",
	KindLiteralType:                 "LiteralType",
	KindUnionType:                   "UnionType",
	KindIntersectionType:            "IntersectionType",
	KindArrayType:                   "ArrayType",
	KindTupleType:                   "TupleType",
	KindNamedTupleMember:            "NamedTupleMember",
	KindOptionalType:                "OptionalType",
	KindRestType:                    "RestType",
	KindMappedType:                  "MappedType",
	KindFunctionType:                "FunctionType",
	KindConstructorType:             "ConstructorType",
	KindIndexedAccessType:           "IndexedAccessType",
	KindTypeOperator:                "TypeOperator",
	KindParenthesizedType:           "ParenthesizedType",
	KindTypePredicate:               "TypePredicate",
	KindTypeLiteral:                 "TypeLiteral",
	KindTypeQuery:                   "TypeQuery",
	KindConditionalType:             "ConditionalType",
	KindInferType:                   "InferType",
	KindRawType:                     "RawType",
	KindPropertySignature:           "PropertySignature",
	KindMethodSignature:             "MethodSignature",
	KindCallSignature:               "CallSignature",
	KindConstructSignature:          "ConstructSignature",
	KindIndexSignature:              "IndexSignature",
	KindPropertyDeclaration:         "PropertyDeclaration",
	KindMethodDeclaration:           "MethodDeclaration",
	KindGetAccessor:                 "GetAccessor",
	KindSetAccessor:                 "SetAccessor",
	KindConstructor:                 "Constructor",
	KindRawMember:                   "RawMember",
	KindClassDeclaration:            "ClassDeclaration",
	KindFunctionDeclaration:         "FunctionDeclaration",
	KindVariableStatement:           "VariableStatement",
	KindRawStatement:                "RawStatement",
	KindVariableDeclaration:         "VariableDeclaration",
	KindParameter:                   "Parameter",
	KindTypeParameter:               "TypeParameter",
	KindObjectBindingPattern:        "ObjectBindingPattern",
	KindArrayBindingPattern:         "ArrayBindingPattern",
	KindBindingElement:              "BindingElement",
	KindDecorator:                   "Decorator",
	KindModifier:                    "Modifier",
	KindHeritageClause:              "HeritageClause",
	KindExpressionWithTypeArguments: "ExpressionWithTypeArguments",
	KindBlock:                       "Block",
	KindSourceFile:                  "SourceFile",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsType reports whether k is one of the type annotation variants.
func (k Kind) IsType() bool {
	return k >= KindKeywordType && k <= KindRawType
}

// IsClassMember reports whether k is one of the class member variants.
func (k Kind) IsClassMember() bool {
	return k >= KindPropertyDeclaration && k <= KindRawMember
}

// ModifierKind identifies a modifier or qualifier keyword.
type ModifierKind int

const (
	ModifierExport ModifierKind = iota + 1
	ModifierDefault
	ModifierDeclare
	ModifierPublic
	ModifierPrivate
	ModifierProtected
	ModifierStatic
	ModifierReadonly
	ModifierAbstract
	ModifierAsync
	ModifierOverride
	ModifierAccessor
)

var modifierKeywords = map[ModifierKind]string{
	ModifierExport:    "export",
	ModifierDefault:   "default",
	ModifierDeclare:   "declare",
	ModifierPublic:    "public",
	ModifierPrivate:   "private",
	ModifierProtected: "protected",
	ModifierStatic:    "static",
	ModifierReadonly:  "readonly",
	ModifierAbstract:  "abstract",
	ModifierAsync:     "async",
	ModifierOverride:  "override",
	ModifierAccessor:  "accessor",
}

var keywordModifiers = func() map[string]ModifierKind {
	m := make(map[string]ModifierKind, len(modifierKeywords))
	for k, v := range modifierKeywords {
		m[v] = k
	}
	return m
}()

// String returns the keyword as written in source.
func (m ModifierKind) String() string {
	if s, ok := modifierKeywords[m]; ok {
		return s
	}
	return fmt.Sprintf("ModifierKind(%d)", int(m))
}

// ModifierKindFor returns the ModifierKind for a source keyword.
func ModifierKindFor(keyword string) (ModifierKind, bool) {
	k, ok := keywordModifiers[keyword]
	return k, ok
}

// HeritageToken distinguishes extends from implements clauses.
type HeritageToken int

const (
	HeritageExtends HeritageToken = iota + 1
	HeritageImplements
)

func (t HeritageToken) String() string {
	switch t {
	case HeritageExtends:
		return "extends"
	case HeritageImplements:
		return "implements"
	}
	return fmt.Sprintf("HeritageToken(%d)", int(t))
}
