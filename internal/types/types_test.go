package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestPrimitiveIdentity(t *testing.T) {
	p1, ok := LookupPrimitive("int")
	assert.True(t, ok)
	assert.Same(t, Int, p1)
	assert.True(t, Int.Equals(p1))
	assert.False(t, Int.Equals(Float))
}

func TestPrimitiveSetHasEightEntries(t *testing.T) {
	assert.Len(t, primitivesByName, 8)
	p, ok := LookupPrimitive("function")
	assert.True(t, ok)
	assert.Same(t, FunctionType, p)
}

func TestDeclaredEqualsByIdentity(t *testing.T) {
	point := NewDeclared("main", "Point", StructKind, []Field{
		{Name: "x", Type: Int},
		{Name: "y", Type: Int},
	})
	other := NewDeclared("main", "Point", StructKind, []Field{
		{Name: "x", Type: Int},
		{Name: "y", Type: Int},
	})

	// Same shape, different declarations: NOT equal (identity, not
	// structural, per invariant 2).
	assert.False(t, point.Equals(other))
	assert.True(t, point.Equals(point))
}

func TestGenericInstantiationEquals(t *testing.T) {
	box := &GenericType{Name: "Box", Params: []string{"T"}, Kind: StructKind, Module: "main"}

	intBox1 := box.NewInstance([]Type{Int})
	intBox1.Fields = []Field{{Name: "value", Type: Int}}

	intBox2 := box.NewInstance([]Type{Int})
	intBox2.Fields = []Field{{Name: "value", Type: Int}}

	floatBox := box.NewInstance([]Type{Float})
	floatBox.Fields = []Field{{Name: "value", Type: Float}}

	// Same origin + same args => equal even though they are distinct
	// pointers (as when two modules each instantiate the same generic
	// with the same arguments and cache their own instance).
	assert.True(t, intBox1.Equals(intBox2))
	assert.False(t, intBox1.Equals(floatBox))

	other := &GenericType{Name: "Box", Params: []string{"T"}, Kind: StructKind, Module: "main"}
	otherIntBox := other.NewInstance([]Type{Int})
	assert.False(t, intBox1.Equals(otherIntBox), "different GenericType origin must not compare equal")
}

func TestDeclaredFieldLookup(t *testing.T) {
	point := NewDeclared("main", "Point", StructKind, []Field{
		{Name: "x", Type: Int},
		{Name: "y", Type: Int},
	})
	f, ok := point.Field("y")
	assert.True(t, ok)
	assert.Equal(t, Int, f.Type)

	_, ok = point.Field("z")
	assert.False(t, ok)
}

func TestTypeNameRendering(t *testing.T) {
	box := &GenericType{Name: "Box", Params: []string{"T"}, Kind: StructKind, Module: "main"}
	intBox := box.NewInstance([]Type{Int})
	assert.Equal(t, "Box[int]", intBox.TypeName())

	point := NewDeclared("main", "Point", StructKind, nil)
	assert.Equal(t, "Point", point.TypeName())
}

func TestFunctionTypeName(t *testing.T) {
	fn := &Function{
		Name:   "add",
		Params: []Field{{Name: "a", Type: Int}, {Name: "b", Type: Int}},
		Return: Int,
	}
	assert.Equal(t, "(int, int) -> int", fn.TypeName())
}

func TestFieldSliceDiff(t *testing.T) {
	a := []Field{{Name: "x", Type: Int}, {Name: "y", Type: Int}}
	b := []Field{{Name: "x", Type: Int}, {Name: "y", Type: Int}}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("unexpected diff (-want +got):\n%s", diff)
	}
}
