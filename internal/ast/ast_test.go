package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ClassDeclaration", KindClassDeclaration.String())
	assert.Equal(t, "RawType", KindRawType.String())
	assert.Equal(t, "Kind(999)", Kind(999).String())
}

func TestKindCategories(t *testing.T) {
	t.Parallel()
	assert.True(t, (&UnionType{}).Kind().IsType())
	assert.True(t, (&RawType{}).Kind().IsType())
	assert.False(t, (&Identifier{}).Kind().IsType())
	assert.True(t, (&Constructor{}).Kind().IsClassMember())
	assert.False(t, (&ClassDeclaration{}).Kind().IsClassMember())
}

func TestModifierKindFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		keyword string
		want    ModifierKind
		ok      bool
	}{
		{"public", ModifierPublic, true},
		{"readonly", ModifierReadonly, true},
		{"accessor", ModifierAccessor, true},
		{"const", 0, false},
	}
	for _, tt := range tests {
		got, ok := ModifierKindFor(tt.keyword)
		assert.Equal(t, tt.ok, ok, tt.keyword)
		assert.Equal(t, tt.want, got, tt.keyword)
		if ok {
			assert.Equal(t, tt.keyword, got.String())
		}
	}
}

func TestContainers(t *testing.T) {
	t.Parallel()
	stmt := &RawStatement{Text: "x;"}
	var c Container = NodeList{FileName: "a.js", Nodes: []Statement{stmt}}
	assert.Equal(t, "a.js", c.File())
	assert.Len(t, c.TopLevel(), 1)

	c = &SourceFile{FileName: "b.d.ts"}
	assert.Equal(t, "b.d.ts", c.File())
	assert.Empty(t, c.TopLevel())

	var nilFile *SourceFile
	assert.Equal(t, "", nilFile.File())
	assert.Nil(t, nilFile.TopLevel())
}

func TestInspectPreOrder(t *testing.T) {
	t.Parallel()
	cls := &ClassDeclaration{
		Name: &Identifier{Text: "Foo"},
		Members: []ClassMember{
			&PropertyDeclaration{
				Name: &Identifier{Text: "x"},
				Type: &KeywordType{Keyword: "string"},
			},
			&MethodDeclaration{
				Name: &Identifier{Text: "m"},
				Signature: Signature{
					Parameters: []*Parameter{{Name: &Identifier{Text: "a"}}},
				},
				Body: &Block{Text: "{}"},
			},
		},
	}

	var kinds []Kind
	Inspect(cls, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	require.Equal(t, []Kind{
		KindClassDeclaration,
		KindIdentifier,
		KindPropertyDeclaration,
		KindIdentifier,
		KindKeywordType,
		KindMethodDeclaration,
		KindIdentifier,
		KindParameter,
		KindIdentifier,
		KindBlock,
	}, kinds)
}

func TestInspectSkipsChildren(t *testing.T) {
	t.Parallel()
	u := &UnionType{Types: []TypeNode{
		&KeywordType{Keyword: "string"},
		&ArrayType{ElementType: &KeywordType{Keyword: "number"}},
	}}
	count := 0
	Inspect(u, func(n Node) bool {
		count++
		return n.Kind() != KindArrayType
	})
	assert.Equal(t, 3, count)
}

func TestHelpers(t *testing.T) {
	t.Parallel()
	mods := []*Modifier{{Token: ModifierPublic}, {Token: ModifierStatic}}
	assert.True(t, HasModifier(mods, ModifierStatic))
	assert.False(t, HasModifier(mods, ModifierReadonly))
	assert.Len(t, ModifierSet(mods), 2)

	assert.Equal(t, "x", NameText(&Identifier{Text: "x"}))
	assert.Equal(t, "#y", NameText(&PrivateIdentifier{Text: "#y"}))
	assert.Equal(t, "", NameText(&ComputedPropertyName{Expression: &RawExpression{Text: "k"}}))

	assert.Nil(t, MemberName(&Constructor{}))
	assert.Equal(t, "g", NameText(MemberName(&GetAccessor{Name: &Identifier{Text: "g"}})))
}
