package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	source = Bean("example.com/store", "Source", Prop("name", Basic("string")))
	target = Bean("example.com/store", "Target", Prop("name", Basic("string")))
)

func TestMethodDerivedProperties(t *testing.T) {
	m := ForImplementation("Update", []Parameter{
		{Name: "s", Type: source},
		{Name: "t", Type: target, MappingTarget: true},
	}, nil, nil)

	require.NotNil(t, m.TargetParameter())
	assert.Equal(t, "t", m.TargetParameter().Name)
	assert.Len(t, m.SourceParameters(), 1)
	assert.Same(t, target, m.ResultType())
	assert.Equal(t, []string{"s", "t"}, m.ParameterNames())
	assert.NotNil(t, m.SourceParameter("s"))
	assert.Nil(t, m.SourceParameter("t"))
	assert.True(t, m.RequiresImplementation())
}

func TestMethodClassification(t *testing.T) {
	iter := ForImplementation("MapAll", []Parameter{{Name: "in", Type: SliceOf(source)}}, SliceOf(target), nil)
	maps := ForImplementation("MapAll", []Parameter{{Name: "in", Type: MapOf(Basic("string"), source)}}, MapOf(Basic("string"), target), nil)
	mixed := ForImplementation("Mixed", []Parameter{{Name: "in", Type: SliceOf(source)}}, MapOf(Basic("string"), target), nil)
	twoSources := ForImplementation("Two", []Parameter{
		{Name: "a", Type: SliceOf(source)},
		{Name: "b", Type: SliceOf(source)},
	}, SliceOf(target), nil)

	assert.True(t, iter.IsIterableMapping())
	assert.False(t, iter.IsMapMapping())
	assert.True(t, maps.IsMapMapping())
	assert.False(t, mixed.IsIterableMapping())
	assert.False(t, mixed.IsMapMapping())
	assert.False(t, twoSources.IsIterableMapping())
}

func TestRequiresImplementation(t *testing.T) {
	mapper := Bean("example.com/other", "OtherMapper")

	assert.False(t, ForReferenced(mapper, "Map", []Parameter{{Name: "s", Type: source}}, target).RequiresImplementation())
	assert.False(t, ForFactory(nil, "New", target).RequiresImplementation())

	concrete := ForImplementation("Map", []Parameter{{Name: "s", Type: source}}, target, nil)
	concrete.Abstract = false
	assert.False(t, concrete.RequiresImplementation())
}

func TestMethodReverses(t *testing.T) {
	forward := ForImplementation("ToTarget", []Parameter{{Name: "s", Type: source}}, target, nil)
	backward := ForImplementation("ToSource", []Parameter{{Name: "t", Type: target}}, source, nil)
	unrelated := ForImplementation("Copy", []Parameter{{Name: "s", Type: source}}, source, nil)

	assert.True(t, forward.Reverses(backward))
	assert.True(t, backward.Reverses(forward))
	assert.False(t, forward.Reverses(unrelated))
	assert.False(t, forward.Reverses(ForFactory(nil, "New", source)))
}

func TestMappingsFor_Reverse(t *testing.T) {
	cfg := &BeanMapping{
		Mappings: map[string][]Mapping{
			"fullName": {{Target: "fullName", Source: "s.name", Format: "x"}},
			"tag":      {{Target: "tag", Constant: new(string)}},
			"nested":   {{Target: "nested", Source: "s.address.street"}},
		},
		SourceParameters: []string{"s"},
	}

	forward := ForImplementation("ToTarget", []Parameter{{Name: "s", Type: source}}, target, cfg)
	backward := ForImplementation("ToSource", []Parameter{{Name: "t", Type: target}}, source, nil).WithConfig(cfg, true)

	assert.Equal(t, []Mapping{{Target: "fullName", Source: "s.name", Format: "x"}}, forward.MappingsFor("fullName"))
	assert.Equal(t, []Mapping{{Target: "name", Source: "fullName", Format: "x"}}, backward.MappingsFor("name"))
	assert.Empty(t, backward.MappingsFor("tag"))
	assert.Equal(t, []string{"name"}, backward.ConfiguredTargets())
	assert.Equal(t, []string{"fullName", "nested", "tag"}, forward.ConfiguredTargets())
	assert.Same(t, cfg, backward.Config.(*BeanMapping))
	assert.False(t, forward.ConfiguredByReverse)
}

func TestWithConfigDoesNotMutate(t *testing.T) {
	m := ForImplementation("ToTarget", []Parameter{{Name: "s", Type: source}}, target, nil)
	cfg := &IterableMapping{ElementFormat: "2006"}

	derived := m.WithConfig(cfg, true)

	assert.Nil(t, m.Config)
	assert.False(t, m.ConfiguredByReverse)
	assert.True(t, derived.ConfiguredByReverse)
	assert.Equal(t, ConfigIterable, KindOf(derived.Config))
}

func TestIsConfigured(t *testing.T) {
	var nilBean *BeanMapping

	assert.False(t, IsConfigured(nil))
	assert.False(t, IsConfigured(nilBean))
	assert.Equal(t, ConfigNone, KindOf(nilBean))
	assert.False(t, IsConfigured(&BeanMapping{}))
	assert.True(t, IsConfigured(&BeanMapping{Mappings: map[string][]Mapping{"a": {{Target: "a", Ignore: true}}}}))
	assert.True(t, IsConfigured(&MapMapping{}))
	assert.True(t, IsConfigured(&IterableMapping{}))
}

func TestMethodString(t *testing.T) {
	mapper := &Type{ID: TypeID{PkgPath: "example.com/other", Name: "OtherMapper"}, Kind: TypeKindBean}
	m := ForReferenced(mapper, "Map", []Parameter{{Name: "s", Type: source}}, target)

	assert.Equal(t, "example.com/other.OtherMapper.Map(s example.com/store.Source) example.com/store.Target", m.String())
}

func TestMappingReverse(t *testing.T) {
	_, ok := Mapping{Target: "a", Ignore: true}.Reverse(nil)
	assert.False(t, ok)

	_, ok = Mapping{Target: "a", Expression: "now()"}.Reverse(nil)
	assert.False(t, ok)

	rev, ok := Mapping{Target: "a", Source: "b"}.Reverse(nil)
	require.True(t, ok)
	assert.Equal(t, Mapping{Target: "b", Source: "a"}, rev)

	_, ok = Mapping{Target: "a", Source: "b.c"}.Reverse([]string{"s"})
	assert.False(t, ok, "nested source paths do not reverse")

	_, ok = Mapping{Target: "a", Source: "s"}.Reverse([]string{"s"})
	assert.False(t, ok, "whole parameters do not reverse")

	rev, ok = Mapping{Target: "a", Source: "s.b"}.Reverse([]string{"s"})
	require.True(t, ok)
	assert.Equal(t, Mapping{Target: "b", Source: "a"}, rev)
}

func TestMappingValue(t *testing.T) {
	assert.Equal(t, "ignore", Mapping{Target: "a", Ignore: true}.Value())
	assert.Equal(t, "constant", Mapping{Target: "a", Constant: new(string)}.Value())
	assert.Equal(t, "expression", Mapping{Target: "a", Expression: "now()"}.Value())
	assert.Equal(t, "source s.b", Mapping{Target: "a", Source: "s.b"}.Value())
}

func TestWithReverseConfig(t *testing.T) {
	// typed configurations need not name the parameters qualifying their paths
	cfg := &BeanMapping{
		Mappings: map[string][]Mapping{
			"fullName": {{Target: "fullName", Source: "s.name"}},
			"city":     {{Target: "city", Source: "s.address.city"}},
			"self":     {{Target: "self", Source: "s"}},
		},
	}

	forward := ForImplementation("ToTarget", []Parameter{{Name: "s", Type: source}}, target, cfg)
	backward := ForImplementation("ToSource", []Parameter{{Name: "t", Type: target}}, source, nil).WithReverseConfig(forward)

	assert.Same(t, cfg, backward.Config.(*BeanMapping))
	assert.True(t, backward.ConfiguredByReverse)
	assert.Equal(t, []string{"s"}, backward.ReverseParameters)
	assert.Nil(t, forward.ReverseParameters)

	assert.Equal(t, []Mapping{{Target: "name", Source: "fullName"}}, backward.MappingsFor("name"))
	assert.Equal(t, []string{"name"}, backward.ConfiguredTargets())
	assert.Equal(t, []Mapping{
		{Target: "city", Source: "s.address.city"},
		{Target: "self", Source: "s"},
	}, backward.DroppedMappings())

	assert.Empty(t, forward.DroppedMappings(), "only adopted configurations drop directives")
}
