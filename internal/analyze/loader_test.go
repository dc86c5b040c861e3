package analyze

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapper-planner/internal/model"
)

const shopPkg = "mapper-planner/internal/analyze/testdata/shop"

func loadShop(t *testing.T) *TypeGraph {
	t.Helper()

	graph, err := NewAnalyzer(nil).LoadPackages("./testdata/shop")
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func shopType(t *testing.T, graph *TypeGraph, name string) *model.Type {
	t.Helper()

	typ := graph.Lookup(model.TypeID{PkgPath: shopPkg, Name: name})
	require.NotNil(t, typ, name)

	return typ
}

func propertyNames(t *model.Type) []string {
	names := make([]string, len(t.Properties))
	for i, p := range t.Properties {
		names[i] = p.Name
	}

	return names
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadShop(t)

	require.Contains(t, graph.Packages, shopPkg)
	assert.Equal(t, "shop", graph.Packages[shopPkg].Name)
	assert.ElementsMatch(t,
		[]string{"Cents", "Customer", "Line", "Lines", "Named", "Order", "OrderPage", "Page", "Status"},
		func() []string {
			var names []string
			for _, id := range graph.Packages[shopPkg].Types {
				names = append(names, id.Name)
			}

			return names
		}())
}

func TestAnalyzer_StructFields(t *testing.T) {
	graph := loadShop(t)
	order := shopType(t, graph, "Order")

	assert.Equal(t, model.TypeKindBean, order.Kind)
	assert.Equal(t,
		[]string{"ID", "Customer", "Status", "Total", "Lines", "Meta", "Created", "Timeout", "Parent"},
		propertyNames(order), "unsupported field types are skipped")

	for _, p := range order.Properties {
		assert.True(t, p.Readable, p.Name)
		assert.True(t, p.Writable, p.Name)
	}

	assert.Equal(t, []string{"ID", "FullName", "Tags"}, propertyNames(shopType(t, graph, "Customer")),
		"unexported fields are skipped")
}

func TestAnalyzer_PointersAndRecursion(t *testing.T) {
	graph := loadShop(t)
	order := shopType(t, graph, "Order")

	assert.Same(t, shopType(t, graph, "Customer"), order.Property("Customer").Type)
	assert.Same(t, order, order.Property("Parent").Type)
}

func TestAnalyzer_Containers(t *testing.T) {
	graph := loadShop(t)
	order := shopType(t, graph, "Order")
	line := shopType(t, graph, "Line")

	lines := order.Property("Lines").Type
	assert.True(t, lines.IsIterableType())
	assert.False(t, lines.IsNamed())
	assert.Same(t, line, lines.ElementType())

	meta := order.Property("Meta").Type
	assert.True(t, meta.IsMapType())
	assert.Equal(t, "map[string]string", meta.String())

	named := shopType(t, graph, "Lines")
	assert.True(t, named.IsIterableType())
	assert.Same(t, line, named.ElementType())
}

func TestAnalyzer_BasicsAndEnums(t *testing.T) {
	graph := loadShop(t)
	order := shopType(t, graph, "Order")

	status := shopType(t, graph, "Status")
	assert.Equal(t, model.TypeKindEnum, status.Kind)
	assert.Equal(t, []string{"StatusNew", "StatusPaid"}, status.Constants)

	cents := shopType(t, graph, "Cents")
	assert.Equal(t, model.TypeKindBasic, cents.Kind)
	assert.Empty(t, cents.Constants)

	assert.True(t, order.Property("ID").Type.Equal(model.Basic("int64")))
	assert.True(t, order.Property("Created").Type.Equal(model.Time()))
	assert.True(t, order.Property("Timeout").Type.Equal(model.Duration()))
}

func TestAnalyzer_Interfaces(t *testing.T) {
	graph := loadShop(t)
	named := shopType(t, graph, "Named")

	assert.Equal(t, model.TypeKindInterface, named.Kind)
	assert.False(t, named.IsConstructible())

	customer := shopType(t, graph, "Customer")
	require.Len(t, customer.Supertypes, 1)
	assert.Same(t, named, customer.Supertypes[0])
	assert.True(t, customer.IsAssignableTo(named))
	assert.False(t, shopType(t, graph, "Order").IsAssignableTo(named))
}

func TestAnalyzer_Generics(t *testing.T) {
	graph := loadShop(t)

	page := shopType(t, graph, "Page")
	assert.Equal(t, []string{"T"}, page.TypeParams)

	inst := shopType(t, graph, "OrderPage").Property("Page").Type
	assert.Equal(t, shopPkg+".Page["+shopPkg+".Order]", inst.String())
	assert.Empty(t, inst.TypeParams)
}

func TestAnalyzer_GetBean(t *testing.T) {
	a := NewAnalyzer(nil)
	_, err := a.LoadPackages("./testdata/shop")
	require.NoError(t, err)

	order, err := a.GetBean(shopPkg, "Order")
	require.NoError(t, err)
	assert.Equal(t, "Order", order.ID.Name)

	_, err = a.GetBean(shopPkg, "Status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a struct")

	_, err = a.GetBean(shopPkg, "Missing")
	require.EqualError(t, err, "type "+shopPkg+".Missing not found")
}

func TestAnalyzer_Convert(t *testing.T) {
	a := NewAnalyzer(nil)

	assert.True(t, a.Convert(types.Typ[types.Int]).Equal(model.Basic("int")))
	assert.True(t, a.Convert(types.Universe.Lookup("byte").Type()).Equal(model.Basic("uint8")))
	assert.True(t, a.Convert(types.NewSlice(types.Typ[types.String])).Equal(model.SliceOf(model.Basic("string"))))
	assert.True(t, a.Convert(types.NewInterfaceType(nil, nil)).IsAny())
	assert.Nil(t, a.Convert(types.NewChan(types.SendRecv, types.Typ[types.Int])))
}

func TestAnalyzer_LoadErrors(t *testing.T) {
	_, err := NewAnalyzer(nil).LoadPackages("./testdata/missing")
	require.Error(t, err)
}
