package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeEqual(t *testing.T) {
	source := Bean("example.com/store", "Source", Prop("name", Basic("string")))
	sameDecl := &Type{ID: source.ID, Kind: TypeKindBean}
	list := &Type{ID: TypeID{PkgPath: "example.com/coll", Name: "List"}, Kind: TypeKindIterable, TypeParams: []string{"E"}}

	tests := []struct {
		name string
		a, b *Type
		want bool
	}{
		{"same pointer", source, source, true},
		{"same declaration", source, sameDecl, true},
		{"different name", source, Bean("example.com/store", "Target"), false},
		{"basic", Basic("int"), Basic("int"), true},
		{"byte is uint8", Basic("byte"), Basic("uint8"), true},
		{"slices of equal elems", SliceOf(source), SliceOf(sameDecl), true},
		{"slices of different elems", SliceOf(source), SliceOf(Basic("int")), false},
		{"slice vs map", SliceOf(Basic("int")), MapOf(Basic("int"), Basic("int")), false},
		{"generic instances", Instantiate(list, source), Instantiate(list, sameDecl), true},
		{"generic instance vs raw", Instantiate(list, source), list, false},
		{"nil vs value", nil, source, false},
		{"nil vs nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestTypeShapes(t *testing.T) {
	elem := Basic("string")
	slice := SliceOf(elem)
	m := MapOf(Basic("string"), Basic("int"))

	assert.True(t, slice.IsIterableType())
	assert.False(t, slice.IsMapType())
	assert.True(t, m.IsMapType())
	assert.Same(t, elem, slice.ElementType())
	assert.Equal(t, "string", m.KeyType().String())
	assert.Equal(t, "int", m.ValueType().String())
	assert.Nil(t, m.ElementType())
	assert.Nil(t, slice.KeyType())
}

func TestTypeString(t *testing.T) {
	source := Bean("example.com/store", "Source")
	list := &Type{ID: TypeID{PkgPath: "example.com/coll", Name: "List"}, Kind: TypeKindIterable, TypeParams: []string{"E"}}

	assert.Equal(t, "example.com/store.Source", source.String())
	assert.Equal(t, "store.Source", source.ShortName())
	assert.Equal(t, "[]example.com/store.Source", SliceOf(source).String())
	assert.Equal(t, "map[string]store.Source", MapOf(Basic("string"), source).ShortName())
	assert.Equal(t, "coll.List[store.Source]", Instantiate(list, source).ShortName())
	assert.Equal(t, "time.Time", Time().String())
}

func TestTypeIsAssignableTo(t *testing.T) {
	animal := &Type{ID: TypeID{PkgPath: "zoo", Name: "Animal"}, Kind: TypeKindInterface}
	mammal := &Type{ID: TypeID{PkgPath: "zoo", Name: "Mammal"}, Kind: TypeKindInterface, Supertypes: []*Type{animal}}
	dog := &Type{ID: TypeID{PkgPath: "zoo", Name: "Dog"}, Kind: TypeKindBean, Supertypes: []*Type{mammal}}

	assert.True(t, dog.IsAssignableTo(dog))
	assert.True(t, dog.IsAssignableTo(mammal))
	assert.True(t, dog.IsAssignableTo(animal))
	assert.True(t, dog.IsAssignableTo(Any()))
	assert.False(t, animal.IsAssignableTo(dog))
	assert.False(t, SliceOf(dog).IsAssignableTo(SliceOf(animal)))
}

func TestTypeIsAssignableTo_Cycle(t *testing.T) {
	a := &Type{ID: TypeID{PkgPath: "x", Name: "A"}}
	b := &Type{ID: TypeID{PkgPath: "x", Name: "B"}, Supertypes: []*Type{a}}
	a.Supertypes = []*Type{b}

	assert.False(t, a.IsAssignableTo(Basic("int")))
}

func TestInstantiate(t *testing.T) {
	list := &Type{ID: TypeID{PkgPath: "coll", Name: "List"}, Kind: TypeKindIterable, Abstract: true, TypeParams: []string{"E"}}
	arrayList := &Type{ID: TypeID{PkgPath: "coll", Name: "ArrayList"}, Kind: TypeKindIterable, TypeParams: []string{"E"}, Supertypes: []*Type{list}}
	list.Implementation = arrayList

	inst := Instantiate(list, Basic("int"))

	assert.Equal(t, "coll.List[int]", inst.String())
	assert.Empty(t, inst.TypeParams)
	assert.Equal(t, "coll.ArrayList[int]", inst.Implementation.String())
	assert.True(t, inst.Implementation.IsAssignableTo(inst))
	assert.Empty(t, list.Params, "declaration must not change")
}

func TestInstantiate_Properties(t *testing.T) {
	elem := &Type{ID: TypeID{Name: "T"}, Kind: TypeKindInterface, Abstract: true}
	page := &Type{
		ID:         TypeID{PkgPath: "example.com/shop", Name: "Page"},
		Kind:       TypeKindBean,
		TypeParams: []string{"T"},
		Properties: []Property{
			{Name: "items", Type: SliceOf(elem), Readable: true, Writable: true},
			{Name: "first", Type: elem, Readable: true, Writable: true},
			{Name: "size", Type: Basic("int"), Readable: true, Writable: true},
		},
	}

	inst := Instantiate(page, Basic("string"))

	assert.Equal(t, "[]string", inst.Property("items").Type.String())
	assert.Equal(t, "string", inst.Property("first").Type.String())
	assert.Same(t, page.Properties[2].Type, inst.Property("size").Type)
	assert.Same(t, elem, page.Properties[1].Type, "declaration must not change")
}

func TestTypeImportTypes(t *testing.T) {
	source := Bean("example.com/store", "Source")
	m := MapOf(Basic("string"), SliceOf(source))

	assert.Equal(t, []TypeID{source.ID}, m.ImportTypes())
	assert.Empty(t, Basic("int").ImportTypes())
}

func TestWritableProperties(t *testing.T) {
	bean := &Type{
		Kind: TypeKindBean,
		Properties: []Property{
			{Name: "a", Readable: true, Writable: true},
			{Name: "b", Readable: true},
			{Name: "c", Writable: true},
		},
	}

	var names []string
	for _, p := range bean.WritableProperties() {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"a", "c"}, names)
	assert.Nil(t, bean.ReadableProperty("c"))
	assert.NotNil(t, bean.ReadableProperty("b"))
}

func TestParseTypeKind(t *testing.T) {
	for k := TypeKindBasic; k <= TypeKindMap; k++ {
		got, ok := ParseTypeKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}

	_, ok := ParseTypeKind("pointer")
	assert.False(t, ok)
}
