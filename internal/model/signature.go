package model

import "strings"

// Signature renders the function in declaration order, e.g.
// "f(a, b, *args, c, **kw) -> int". Default expressions are not retained in
// the model so they are never shown.
func (f *Function) Signature() string {
	parts := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		name := p.Name
		switch p.Kind {
		case KindVararg:
			name = "*" + name
		case KindVarkw:
			name = "**" + name
		}
		if p.Annotation != "" {
			name += ": " + p.Annotation
		}
		parts = append(parts, name)
	}

	sig := f.Name + "(" + strings.Join(parts, ", ") + ")"
	if f.Returns != "" {
		sig += " -> " + f.Returns
	}
	return sig
}
