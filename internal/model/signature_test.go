package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunction_Signature(t *testing.T) {
	t.Run("mixed parameter kinds, no defaults shown", func(t *testing.T) {
		f := &Function{
			Name: "f",
			Params: []Parameter{
				{Name: "a", Kind: KindPositional},
				{Name: "b", Kind: KindPositional, HasDefault: true},
				{Name: "args", Kind: KindVararg},
				{Name: "c", Kind: KindKwonly},
				{Name: "kw", Kind: KindVarkw},
			},
		}
		assert.Equal(t, "f(a, b, *args, c, **kw)", f.Signature())
	})

	t.Run("annotations and return type", func(t *testing.T) {
		f := &Function{
			Name: "add",
			Params: []Parameter{
				{Name: "a", Annotation: "int", Kind: KindPositional},
				{Name: "b", Annotation: "int", Kind: KindPositional},
			},
			Returns: "int",
		}
		assert.Equal(t, "add(a: int, b: int) -> int", f.Signature())
	})

	t.Run("no parameters", func(t *testing.T) {
		f := &Function{Name: "ping"}
		assert.Equal(t, "ping()", f.Signature())
	})
}
