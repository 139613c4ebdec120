package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatibleIdentical(t *testing.T) {
	assert.True(t, Compatible(Int, Int))
	assert.False(t, Compatible(Int, Float))
}

func TestCompatiblePtrWithIntAndStr(t *testing.T) {
	assert.True(t, Compatible(Ptr, Int))
	assert.True(t, Compatible(Int, Ptr))
	assert.True(t, Compatible(Ptr, Str))
	assert.False(t, Compatible(Ptr, Float))
}

func TestCompatibleGenericInstantiationRequiresExactMatch(t *testing.T) {
	box := &GenericType{Name: "Box", Params: []string{"T"}, Kind: StructKind, Module: "main"}
	intBox := box.NewInstance([]Type{Int})
	floatBox := box.NewInstance([]Type{Float})
	otherIntBox := box.NewInstance([]Type{Int})

	assert.True(t, Compatible(intBox, otherIntBox))
	assert.False(t, Compatible(intBox, floatBox))
	assert.False(t, Compatible(intBox, Int), "a generic instantiation is not compatible with its own argument type")
}

func TestCompatibleSymmetry(t *testing.T) {
	box := &GenericType{Name: "Box", Params: []string{"T"}, Kind: StructKind, Module: "main"}
	intBox := box.NewInstance([]Type{Int})

	cases := []struct{ a, b Type }{
		{Int, Float},
		{Ptr, Int},
		{Ptr, Str},
		{Ptr, Float},
		{intBox, Int},
		{Int, Int},
	}
	for _, c := range cases {
		assert.Equal(t, Compatible(c.a, c.b), Compatible(c.b, c.a), "%s vs %s must be symmetric", c.a.TypeName(), c.b.TypeName())
	}
}
