package catalogue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapper-planner/internal/catalogue"
	"mapper-planner/internal/model"
)

var (
	source = model.Bean("example.com/shop", "Order", model.Prop("id", model.Basic("string")))
	target = model.Bean("example.com/api", "OrderDto", model.Prop("id", model.Basic("string")))
	helper = &model.Type{ID: model.TypeID{PkgPath: "example.com/shop", Name: "PriceMapper"}, Kind: model.TypeKindBean}
	named  = &model.Type{ID: model.TypeID{PkgPath: "example.com/di", Name: "Named"}, Kind: model.TypeKindBean}
)

func param(name string, t *model.Type) model.Parameter {
	return model.Parameter{Name: name, Type: t}
}

func TestBuild(t *testing.T) {
	toDto := model.ForImplementation("toDto", []model.Parameter{param("order", source)}, target, nil)
	price := model.ForReferenced(helper, "format", []model.Parameter{param("cents", model.Basic("int"))}, model.Basic("string"))
	hidden := model.ForReferenced(helper, "hidden", []model.Parameter{param("cents", model.Basic("int"))}, model.Basic("int64"))
	hidden.Accessibility = model.AccessibilityPrivate
	newDto := model.ForFactory(helper, "newDto", target)

	var b catalogue.Builder
	c, err := b.
		AddMethod(toDto).
		AddMapper(helper, price, hidden).
		AddAnnotatedMapper(helper, []catalogue.Annotation{{Type: named, Value: "prices"}}).
		AddFactory(newDto).
		Build()
	require.NoError(t, err)

	assert.Equal(t, []*model.Method{toDto}, c.Methods())
	assert.Len(t, c.Entries(), 3)

	candidates := c.Candidates()
	require.Len(t, candidates, 2, "private referenced methods are no call targets")
	assert.Nil(t, candidates[0].Mapper)
	assert.Same(t, price, candidates[1].Method)

	exact := c.Exact(model.Basic("int"), model.Basic("string"))
	require.Len(t, exact, 1)
	assert.Equal(t, "priceMapper", exact[0].Mapper.VariableName())
	assert.Empty(t, c.Exact(model.Basic("int"), model.Basic("int64")))

	refs := c.MapperReferences()
	require.Len(t, refs, 2)
	assert.IsType(t, &catalogue.FieldMapperReference{}, refs[0])
	assert.IsType(t, &catalogue.AnnotationMapperReference{}, refs[1])
	assert.Equal(t, "priceMapper1", refs[1].VariableName(), "variable names are unique")
	assert.Equal(t, []model.TypeID{named.ID, helper.ID}, refs[1].ImportTypes())
	assert.Equal(t, []model.TypeID{named.ID, helper.ID}, c.ImportTypes())

	factories := c.Factories(target)
	require.Len(t, factories, 1)
	assert.Same(t, refs[0], factories[0].Mapper, "factories resolve to the first reference of their mapper")
	assert.Empty(t, c.Factories(source))
}

func TestBuildValidation(t *testing.T) {
	twoTargets := model.ForImplementation("update", []model.Parameter{
		{Name: "a", Type: target, MappingTarget: true},
		{Name: "b", Type: target, MappingTarget: true},
	}, nil, nil)
	foreign := model.ForReferenced(target, "map", []model.Parameter{param("s", source)}, target)
	declared := model.ForReferenced(helper, "map", []model.Parameter{param("s", source)}, target)
	declared.Abstract = true
	badFactory := model.ForFactory(nil, "make", nil)
	orphanFactory := model.ForFactory(named, "make", target)

	var b catalogue.Builder
	_, err := b.
		AddMethod(twoTargets, declared).
		AddMapper(helper, foreign).
		AddFactory(badFactory, orphanFactory).
		Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogue.ErrInvalidMethod)
	assert.ErrorContains(t, err, "more than one mapping target parameter")
	assert.ErrorContains(t, err, "referenced method is not declared by example.com/shop.PriceMapper")
	assert.ErrorContains(t, err, "method of the implemented mapper has a declaring mapper")
	assert.ErrorContains(t, err, "factory methods take no parameters and return a value")
	assert.ErrorContains(t, err, "factory declared by an unknown mapper")
}

func TestSubstitute(t *testing.T) {
	toDto := model.ForImplementation("toDto", []model.Parameter{param("order", source)}, target, nil)
	fromDto := model.ForImplementation("fromDto", []model.Parameter{param("dto", target)}, source, nil)

	var b catalogue.Builder
	c, err := b.AddMethod(toDto, fromDto).Build()
	require.NoError(t, err)

	configured := fromDto.WithConfig(&model.BeanMapping{}, true)
	linked := c.Substitute(map[*model.Method]*model.Method{fromDto: configured})

	assert.Equal(t, []*model.Method{toDto, fromDto}, c.Methods(), "the original catalogue is untouched")
	assert.Equal(t, []*model.Method{toDto, configured}, linked.Methods())
	assert.Same(t, configured, linked.Exact(target, source)[0].Method)
}
