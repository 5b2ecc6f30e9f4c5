package reassembler

import (
	"github.com/jward/tsreassemble/internal/ast"
	"github.com/jward/tsreassemble/internal/diag"
)

// ReassembleMember reconciles a matched pair of class members. Same-kind
// pairs follow the per-kind rules. An accessor paired with a property takes
// the property's type; other mixed pairs are left unchanged with a
// diagnostic.
func (r *Reassembler) ReassembleMember(compiled, declaration ast.ClassMember) (ast.ClassMember, error) {
	if compiled == nil || declaration == nil {
		return nil, diag.Invariantf("reassemble member: nil node in matched pair")
	}
	label := memberLabel(compiled)

	switch c := compiled.(type) {
	case *ast.PropertyDeclaration:
		switch d := declaration.(type) {
		case *ast.PropertyDeclaration:
			return r.reassembleProperty(c, d), nil
		case *ast.GetAccessor:
			out := *c
			out.Type = r.copier.CopyType(d.Type)
			out.Modifiers = r.unionModifiers(c.Modifiers, d.Modifiers)
			return &out, nil
		}
	case *ast.MethodDeclaration:
		if d, ok := declaration.(*ast.MethodDeclaration); ok {
			out := *c
			sig, err := r.mergeSignature(c.Signature, d.Signature, label)
			if err != nil {
				return nil, err
			}
			out.Signature = sig
			out.Modifiers = r.unionModifiers(c.Modifiers, d.Modifiers)
			out.Optional = c.Optional || d.Optional
			return &out, nil
		}
	case *ast.GetAccessor:
		switch d := declaration.(type) {
		case *ast.GetAccessor:
			out := *c
			sig, err := r.mergeSignature(c.Signature, d.Signature, label)
			if err != nil {
				return nil, err
			}
			out.Signature = sig
			out.Modifiers = r.unionModifiers(c.Modifiers, d.Modifiers)
			return &out, nil
		case *ast.PropertyDeclaration:
			out := *c
			out.Type = r.copier.CopyType(d.Type)
			out.Modifiers = r.unionModifiers(c.Modifiers, withoutReadonly(d.Modifiers))
			return &out, nil
		}
	case *ast.SetAccessor:
		switch d := declaration.(type) {
		case *ast.SetAccessor:
			out := *c
			sig, err := r.mergeSignature(c.Signature, d.Signature, label)
			if err != nil {
				return nil, err
			}
			out.Signature = sig
			out.Modifiers = r.unionModifiers(c.Modifiers, d.Modifiers)
			return &out, nil
		case *ast.PropertyDeclaration:
			out := *c
			params, err := r.mergeParameters(c.Parameters, []*ast.Parameter{{Type: d.Type}}, label)
			if err != nil {
				return nil, err
			}
			out.Parameters = params
			out.Modifiers = r.unionModifiers(c.Modifiers, withoutReadonly(d.Modifiers))
			return &out, nil
		}
	case *ast.Constructor:
		if d, ok := declaration.(*ast.Constructor); ok {
			out := *c
			params, err := r.mergeParameters(c.Parameters, d.Parameters, label)
			if err != nil {
				return nil, err
			}
			out.Parameters = params
			out.Modifiers = r.unionModifiers(c.Modifiers, d.Modifiers)
			return &out, nil
		}
		return nil, kindMismatch(compiled, declaration)
	}

	r.diags.Report(diag.CodeUnsupportedKind, compiled.Kind(),
		"member %s: no rule for pairing %s with %s", label, compiled.Kind(), declaration.Kind())
	return compiled, nil
}

func (r *Reassembler) reassembleProperty(c, d *ast.PropertyDeclaration) *ast.PropertyDeclaration {
	out := *c
	out.Type = r.copier.CopyType(d.Type)
	out.Modifiers = r.unionModifiers(c.Modifiers, d.Modifiers)
	out.Optional = c.Optional || d.Optional
	return &out
}

// mergeSignature takes type parameters and return type from the declaration
// and reconciles parameters by position.
func (r *Reassembler) mergeSignature(c, d ast.Signature, label string) (ast.Signature, error) {
	params, err := r.mergeParameters(c.Parameters, d.Parameters, label)
	if err != nil {
		return ast.Signature{}, err
	}
	return ast.Signature{
		TypeParameters: r.copier.CopyTypeParameters(d.TypeParameters),
		Parameters:     params,
		Type:           r.copier.CopyType(d.Type),
	}, nil
}

// mergeParameters merges parameter i of compiled with parameter i of
// declared, regardless of names. A leading `this` parameter exists only at
// the type level; it is taken from the declaration and excluded from the
// positional pairing. Compiled parameters past the declared arity pass
// through; declared parameters past the compiled arity are dropped because
// adding them would change the function's length.
func (r *Reassembler) mergeParameters(compiled, declared []*ast.Parameter, label string) ([]*ast.Parameter, error) {
	for i, p := range compiled {
		if p == nil {
			return nil, diag.Invariantf("%s: nil compiled parameter at index %d", label, i)
		}
	}
	for i, p := range declared {
		if p == nil {
			return nil, diag.Invariantf("%s: nil declared parameter at index %d", label, i)
		}
	}

	compiledThis, compiled := splitThis(compiled)
	declaredThis, declared := splitThis(declared)

	out := make([]*ast.Parameter, 0, len(compiled)+1)
	switch {
	case declaredThis != nil:
		out = append(out, r.copier.CopyParameters([]*ast.Parameter{declaredThis})...)
	case compiledThis != nil:
		out = append(out, compiledThis)
	}

	for i, p := range compiled {
		if i >= len(declared) {
			r.diags.Report(diag.CodeExtraParameter, ast.KindParameter,
				"%s: parameter %d has no declared counterpart", label, i)
			out = append(out, p)
			continue
		}
		out = append(out, r.reassembleParameter(p, declared[i]))
	}
	if len(out) == 0 && compiled == nil && compiledThis == nil && declaredThis == nil {
		return nil, nil
	}
	return out, nil
}

func (r *Reassembler) reassembleParameter(c, d *ast.Parameter) *ast.Parameter {
	out := *c
	out.Type = r.copier.CopyType(d.Type)
	out.Modifiers = r.unionModifiers(c.Modifiers, d.Modifiers)
	if c.Initializer == nil {
		out.Optional = c.Optional || d.Optional
	}
	return &out
}

func splitThis(params []*ast.Parameter) (*ast.Parameter, []*ast.Parameter) {
	if len(params) == 0 {
		return nil, params
	}
	if id, ok := params[0].Name.(*ast.Identifier); ok && id != nil && id.Text == "this" {
		return params[0], params[1:]
	}
	return nil, params
}

// withoutReadonly drops readonly, which is not valid on an accessor.
func withoutReadonly(mods []*ast.Modifier) []*ast.Modifier {
	var out []*ast.Modifier
	for _, m := range mods {
		if m != nil && m.Token != ast.ModifierReadonly {
			out = append(out, m)
		}
	}
	return out
}
