package ast

// Container is a top-level node collection together with the file it came
// from. Both a parsed *SourceFile and a bare NodeList satisfy it.
type Container interface {
	File() string
	TopLevel() []Statement
}

// NodeList is a raw ordered statement collection.
type NodeList struct {
	FileName string
	Nodes    []Statement
}

func (l NodeList) File() string          { return l.FileName }
func (l NodeList) TopLevel() []Statement { return l.Nodes }

func (f *SourceFile) File() string {
	if f == nil {
		return ""
	}
	return f.FileName
}

func (f *SourceFile) TopLevel() []Statement {
	if f == nil {
		return nil
	}
	return f.Statements
}

// ModifierSet reports which modifier kinds appear in mods.
func ModifierSet(mods []*Modifier) map[ModifierKind]bool {
	set := make(map[ModifierKind]bool, len(mods))
	for _, m := range mods {
		if m != nil {
			set[m.Token] = true
		}
	}
	return set
}

// HasModifier reports whether mods contains kind.
func HasModifier(mods []*Modifier, kind ModifierKind) bool {
	for _, m := range mods {
		if m != nil && m.Token == kind {
			return true
		}
	}
	return false
}

// NameText returns the source text of a simple property name, or "" for
// computed names.
func NameText(n PropertyName) string {
	switch n := n.(type) {
	case *Identifier:
		return n.Text
	case *PrivateIdentifier:
		return n.Text
	case *StringLiteral:
		return n.Text
	case *NumericLiteral:
		return n.Text
	}
	return ""
}

// MemberName returns the name of a class member, or nil for constructors and
// raw members.
func MemberName(m ClassMember) PropertyName {
	switch m := m.(type) {
	case *PropertyDeclaration:
		return m.Name
	case *MethodDeclaration:
		return m.Name
	case *GetAccessor:
		return m.Name
	case *SetAccessor:
		return m.Name
	}
	return nil
}

// MemberModifiers returns the modifiers of a class member, or nil for raw
// members.
func MemberModifiers(m ClassMember) []*Modifier {
	switch m := m.(type) {
	case *PropertyDeclaration:
		return m.Modifiers
	case *MethodDeclaration:
		return m.Modifiers
	case *GetAccessor:
		return m.Modifiers
	case *SetAccessor:
		return m.Modifiers
	case *Constructor:
		return m.Modifiers
	}
	return nil
}
