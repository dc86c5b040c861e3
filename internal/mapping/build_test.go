package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapper-planner/internal/analyze"
	"mapper-planner/internal/catalogue"
	"mapper-planner/internal/model"
)

const buildYAML = `
types:
  - name: example.com/shop.Order
    properties:
      - id: int64
      - customer: Customer
      - lines: coll.List[Line]
      - state: Status
      - {name: total, type: int64, readonly: true}
  - name: example.com/shop.Customer
    properties: [{name: string}]
  - name: example.com/shop.Line
    properties: [{sku: string}]
  - name: example.com/shop.OrderDto
    properties:
      - id: string
      - customerName: string
      - {name: secret, type: string, writeonly: true}
  - name: example.com/shop.Status
    kind: enum
    constants: [NEW, PAID]
  - name: example.com/shop.OrderPage
    properties:
      - page: Page[Order]
  - name: example.com/shop.Page
    type_params: T
    properties:
      - items: coll.List[T]
      - size: int
  - name: example.com/coll.List
    kind: iterable
    type_params: E
    abstract: true
    implementation: example.com/coll.ArrayList
  - name: example.com/coll.ArrayList
    kind: iterable
    type_params: E
    supertypes: example.com/coll.List
  - name: example.com/shop.Names
    kind: iterable
    element: string
mapper:
  name: OrderMapper
  methods:
    - name: toDto
      params: [{order: Order}]
      returns: OrderDto
      121: {customer.name: customerName}
      mappings:
        - {target: id, source: id}
        - {target: id, constant: "0"}
      ignore: secret
    - name: update
      params:
        - {order: Order}
        - {name: dto, type: OrderDto, mapping_target: true}
    - name: toDtos
      params: [{orders: "[]Order"}]
      returns: coll.List[OrderDto]
      iterable: {element_format: "#"}
    - name: index
      params: [{orders: "map[string]*Order"}]
      returns: map[string]OrderDto
      map: {key_format: x}
uses:
  - type: example.com/shop.PriceMapper
    methods:
      - {name: format, params: [{c: example.com/money.Cents}], returns: string, accessibility: private}
  - type: example.com/shop.StatusMapper
    annotations: [{type: example.com/di.Named, value: status}]
    methods:
      - {name: label, params: [{s: Status}], returns: string}
factories:
  - {name: newDto, returns: OrderDto}
  - {mapper: example.com/shop.PriceMapper, name: newLines, returns: "coll.List[Line]"}
`

var centsID = model.TypeID{PkgPath: "example.com/money", Name: "Cents"}

func loadedGraph() *analyze.TypeGraph {
	graph := analyze.NewTypeGraph()
	graph.Types[centsID] = &model.Type{ID: centsID, Kind: model.TypeKindBasic}

	return graph
}

func buildCatalogue(t *testing.T, src string, graph *analyze.TypeGraph) *catalogue.Catalogue {
	t.Helper()

	c, err := Build(parse(t, src), graph)
	require.NoError(t, err)

	return c
}

func TestBuild_Methods(t *testing.T) {
	c := buildCatalogue(t, buildYAML, loadedGraph())

	methods := c.Methods()
	require.Len(t, methods, 4)

	toDto := methods[0]
	assert.Equal(t, "toDto(order example.com/shop.Order) example.com/shop.OrderDto", toDto.String())
	assert.True(t, toDto.RequiresImplementation())

	bean, ok := toDto.Config.(*model.BeanMapping)
	require.True(t, ok)

	zero := "0"
	assert.Equal(t, &model.BeanMapping{
		Mappings: map[string][]model.Mapping{
			"customerName": {{Target: "customerName", Source: "customer.name"}},
			"id":           {{Target: "id", Source: "id"}, {Target: "id", Constant: &zero}},
			"secret":       {{Target: "secret", Ignore: true}},
		},
		SourceParameters: []string{"order"},
	}, bean)

	update := methods[1]
	assert.Nil(t, update.Config)
	require.NotNil(t, update.TargetParameter())
	assert.Equal(t, "dto", update.TargetParameter().Name)
	assert.Nil(t, update.ReturnType)

	toDtos := methods[2]
	assert.Equal(t, &model.IterableMapping{ElementFormat: "#"}, toDtos.Config)
	assert.True(t, toDtos.IsIterableMapping())
	assert.Equal(t, "example.com/coll.List[example.com/shop.OrderDto]", toDtos.ReturnType.String())
	assert.Equal(t, "example.com/coll.ArrayList[example.com/shop.OrderDto]", toDtos.ReturnType.Implementation.String())

	index := methods[3]
	assert.Equal(t, &model.MapMapping{KeyFormat: "x"}, index.Config)
	assert.Equal(t, "map[string]example.com/shop.Order", index.Parameters[0].Type.String())
	assert.True(t, index.IsMapMapping())
}

func TestBuild_Types(t *testing.T) {
	c := buildCatalogue(t, buildYAML, loadedGraph())
	order := c.Methods()[0].Parameters[0].Type

	assert.Equal(t, model.TypeKindBean, order.Kind)
	assert.Equal(t, []string{"id", "customer", "lines", "state", "total"}, func() []string {
		var names []string
		for _, p := range order.Properties {
			names = append(names, p.Name)
		}

		return names
	}())

	total := order.Property("total")
	assert.True(t, total.Readable)
	assert.False(t, total.Writable)

	status := order.Property("state").Type
	assert.Equal(t, model.TypeKindEnum, status.Kind)
	assert.Equal(t, []string{"NEW", "PAID"}, status.Constants)

	lines := order.Property("lines").Type
	assert.True(t, lines.IsIterableType())
	assert.True(t, lines.Abstract)
	assert.Equal(t, "example.com/shop.Line", lines.Params[0].String())
	assert.True(t, lines.Implementation.IsAssignableTo(lines))

	dto := c.Methods()[0].ReturnType
	secret := dto.Property("secret")
	assert.False(t, secret.Readable)
	assert.True(t, secret.Writable)
}

func TestBuild_GenericDeclarations(t *testing.T) {
	mf := parse(t, buildYAML)
	mf.Mapper.Methods = append(mf.Mapper.Methods, MethodDef{
		Name:    "pageOf",
		Params:  ParamDefArray{{Name: "p", Type: "OrderPage"}},
		Returns: "example.com/shop.Names",
	})

	c, err := Build(mf, loadedGraph())
	require.NoError(t, err)

	methods := c.Methods()
	page := methods[len(methods)-1].Parameters[0].Type.Property("page").Type
	assert.Equal(t, "example.com/shop.Page[example.com/shop.Order]", page.String())
	assert.Empty(t, page.TypeParams)

	items := page.Property("items").Type
	assert.Equal(t, "example.com/coll.List[example.com/shop.Order]", items.String())
	assert.Equal(t, "example.com/coll.ArrayList[example.com/shop.Order]", items.Implementation.String())
	assert.Equal(t, "int", page.Property("size").Type.String())

	names := methods[len(methods)-1].ReturnType
	assert.True(t, names.IsIterableType())
	assert.Equal(t, "string", names.Params[0].String())
}

func TestBuild_UsedMappers(t *testing.T) {
	graph := loadedGraph()
	c := buildCatalogue(t, buildYAML, graph)

	refs := c.MapperReferences()
	require.Len(t, refs, 2)

	prices, ok := refs[0].(*catalogue.FieldMapperReference)
	require.True(t, ok)
	assert.Equal(t, "priceMapper", prices.VariableName())
	assert.Equal(t, model.TypeKindBean, prices.Type.Kind)

	status, ok := refs[1].(*catalogue.AnnotationMapperReference)
	require.True(t, ok)
	assert.Equal(t, "statusMapper", status.VariableName())
	require.Len(t, status.Annotations, 1)
	assert.Equal(t, "example.com/di.Named", status.Annotations[0].Type.String())
	assert.Equal(t, "status", status.Annotations[0].Value)

	entries := c.Entries()
	require.Len(t, entries, 6)

	format := entries[4]
	assert.Same(t, refs[0], format.Mapper)
	assert.Same(t, graph.Types[centsID], format.Method.Parameters[0].Type)
	assert.Equal(t, model.AccessibilityPrivate, format.Method.Accessibility)
	assert.False(t, format.IsCandidate())
	assert.True(t, entries[5].IsCandidate())

	factories := c.AllFactories()
	require.Len(t, factories, 2)
	assert.Nil(t, factories[0].Mapper)
	assert.Same(t, refs[0], factories[1].Mapper)
	assert.Equal(t, "example.com/coll.List[example.com/shop.Line]", factories[1].Method.ReturnType.String())
}

func TestBuild_DoesNotModify(t *testing.T) {
	mf := parse(t, buildYAML)

	_, err := Build(mf, loadedGraph())
	require.NoError(t, err)

	toDto := mf.Mapper.Methods[0]
	assert.Equal(t, map[string]string{"customer.name": "customerName"}, toDto.OneToOne)
	assert.Len(t, toDto.Mappings, 2)
	assert.Equal(t, StringOrArray{"secret"}, toDto.Ignore)
}

func TestBuild_RecursiveTypes(t *testing.T) {
	c := buildCatalogue(t, `
types:
  - name: example.com/tree.Node
    properties:
      - parent: Node
      - children: "[]Node"
mapper:
  name: M
  methods:
    - {name: copy, params: [{n: Node}], returns: Node}
`, nil)

	node := c.Methods()[0].ReturnType
	assert.Same(t, node, node.Property("parent").Type)
	assert.Same(t, node, node.Property("children").Type.Params[0])
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "invalid",
			yaml:    `{types: [{name: Order}], mapper: {name: M}}`,
			wantErr: "invalid declaration",
		},
		{
			name:    "unknown type",
			yaml:    `{mapper: {name: M, methods: [{name: m, params: [{o: Nope}]}]}}`,
			wantErr: "method m: parameter o: type Nope not found",
		},
		{
			name:    "unknown return type",
			yaml:    `{mapper: {name: M, methods: [{name: m, returns: example.com/shop.Nope}]}}`,
			wantErr: "method m: returns: type example.com/shop.Nope not found",
		},
		{
			name:    "unknown property type",
			yaml:    `{types: [{name: a.B, properties: [{x: a.Missing}]}], mapper: {name: M}}`,
			wantErr: "types[a.B].x: type a.Missing not found",
		},
		{
			name:    "unknown supertype",
			yaml:    `{types: [{name: a.B, supertypes: a.Missing}], mapper: {name: M}}`,
			wantErr: "types[a.B]: supertype: type a.Missing not found",
		},
		{
			name: "ambiguous",
			yaml: `{types: [{name: a.Order}, {name: b.Order}], ` +
				`mapper: {name: M, methods: [{name: m, params: [{o: Order}]}]}}`,
			wantErr: "type Order is ambiguous: a.Order, b.Order",
		},
		{
			name: "generic without arguments",
			yaml: `{types: [{name: a.List, kind: iterable, type_params: E}], ` +
				`mapper: {name: M, methods: [{name: m, params: [{o: a.List}]}]}}`,
			wantErr: "generic type a.List needs 1 type arguments",
		},
		{
			name: "arity",
			yaml: `{types: [{name: a.List, kind: iterable, type_params: E}], ` +
				`mapper: {name: M, methods: [{name: m, params: [{o: "a.List[int, int]"}]}]}}`,
			wantErr: "type a.List takes 1 type arguments, got 2",
		},
		{
			name:    "used mapper method",
			yaml:    `{mapper: {name: M}, uses: [{type: a.U, methods: [{name: m, params: [{o: Nope}]}]}]}`,
			wantErr: "method U.m: parameter o: type Nope not found",
		},
		{
			name:    "factory",
			yaml:    `{mapper: {name: M}, factories: [{name: f, returns: Nope}]}`,
			wantErr: "factory f: type Nope not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(parse(t, tt.yaml), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuild_UsesLoadedTypes(t *testing.T) {
	a := analyze.NewAnalyzer(nil)
	graph, err := a.LoadPackages("../analyze/testdata/shop")
	require.NoError(t, err)

	c := buildCatalogue(t, `
mapper:
  name: M
  methods:
    - {name: toPage, params: [{o: shop.Order}], returns: shop.OrderPage}
`, graph)

	m := c.Methods()[0]
	assert.Equal(t, "mapper-planner/internal/analyze/testdata/shop.Order", m.Parameters[0].Type.String())
	assert.NotNil(t, m.ReturnType.Property("Page"))
}
