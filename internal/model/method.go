package model

import (
	"slices"
	"strings"

	"mapper-planner/internal/common"
)

// Method is a mapping method to implement, a method referenced from a used mapper,
// or a factory method.
type Method struct {
	Name string
	// DeclaringMapper is nil for methods of the mapper being implemented and set for
	// methods imported from a used mapper.
	DeclaringMapper *Type
	Parameters      []Parameter
	// ReturnType is nil for methods returning nothing.
	ReturnType    *Type
	Accessibility Accessibility
	Abstract      bool
	Config        Configuration
	// ConfiguredByReverse is true if Config was adopted from the reverse method.
	ConfiguredByReverse bool
	// ReverseParameters are the source parameter names of the reverse method
	// Config was adopted from.
	ReverseParameters []string
}

// ForImplementation creates an abstract method of the mapper being implemented.
func ForImplementation(name string, params []Parameter, returnType *Type, cfg Configuration) *Method {
	return &Method{
		Name:       name,
		Parameters: params,
		ReturnType: returnType,
		Abstract:   true,
		Config:     cfg,
	}
}

// ForReferenced creates a method declared by a used mapper.
func ForReferenced(declaringMapper *Type, name string, params []Parameter, returnType *Type) *Method {
	return &Method{
		DeclaringMapper: declaringMapper,
		Name:            name,
		Parameters:      params,
		ReturnType:      returnType,
	}
}

// ForFactory creates a parameterless method constructing returnType.
func ForFactory(declaringMapper *Type, name string, returnType *Type) *Method {
	return &Method{
		DeclaringMapper: declaringMapper,
		Name:            name,
		ReturnType:      returnType,
	}
}

// WithConfig returns a copy of m carrying cfg.
func (m *Method) WithConfig(cfg Configuration, byReverse bool) *Method {
	c := *m
	c.Config = cfg
	c.ConfiguredByReverse = byReverse

	return &c
}

// WithReverseConfig returns a copy of m carrying the configuration of reverse.
// Source paths of reverse qualified by its own parameter names invert to plain
// property names.
func (m *Method) WithReverseConfig(reverse *Method) *Method {
	c := m.WithConfig(reverse.Config, true)
	c.ReverseParameters = nil

	for _, p := range reverse.SourceParameters() {
		c.ReverseParameters = append(c.ReverseParameters, p.Name)
	}

	return c
}

// SourceParameters returns all parameters except the mapping target.
func (m *Method) SourceParameters() []Parameter {
	res := make([]Parameter, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		if !p.MappingTarget {
			res = append(res, p)
		}
	}

	return res
}

// TargetParameter returns the mapping target parameter, or nil.
func (m *Method) TargetParameter() *Parameter {
	for i := range m.Parameters {
		if m.Parameters[i].MappingTarget {
			return &m.Parameters[i]
		}
	}

	return nil
}

// SourceParameter returns the source parameter with the given name, or nil.
func (m *Method) SourceParameter(name string) *Parameter {
	for i := range m.Parameters {
		if !m.Parameters[i].MappingTarget && m.Parameters[i].Name == name {
			return &m.Parameters[i]
		}
	}

	return nil
}

// ParameterNames returns the names of all parameters in order.
func (m *Method) ParameterNames() []string {
	names := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		names[i] = p.Name
	}

	return names
}

// ResultType is the mapping target parameter type if present, else the return type.
func (m *Method) ResultType() *Type {
	if tp := m.TargetParameter(); tp != nil {
		return tp.Type
	}

	return m.ReturnType
}

// single returns the only source parameter type, or nil.
func (m *Method) single() *Type {
	sources := m.SourceParameters()
	if len(sources) != 1 {
		return nil
	}

	return sources[0].Type
}

// IsIterableMapping returns true if the only source parameter and the result are iterables.
func (m *Method) IsIterableMapping() bool {
	return m.single().IsIterableType() && m.ResultType().IsIterableType()
}

// IsMapMapping returns true if the only source parameter and the result are maps.
func (m *Method) IsMapMapping() bool {
	return m.single().IsMapType() && m.ResultType().IsMapType()
}

// RequiresImplementation returns true for abstract methods of the mapper being implemented.
func (m *Method) RequiresImplementation() bool {
	return m.DeclaringMapper == nil && m.Abstract
}

// IsConfigured returns true if the method carries explicit configuration.
func (m *Method) IsConfigured() bool {
	return IsConfigured(m.Config)
}

// Reverses reports whether m and other map between the same two types in opposite
// directions.
func (m *Method) Reverses(other *Method) bool {
	src, otherSrc := m.single(), other.single()
	if src == nil || otherSrc == nil {
		return false
	}

	return src.Equal(other.ResultType()) && m.ResultType().Equal(otherSrc)
}

// MappingsFor returns the directives configured for a target property in order.
// For a method configured by its reverse, the reverse's directives are inverted.
func (m *Method) MappingsFor(target string) []Mapping {
	bean, ok := m.Config.(*BeanMapping)
	if !ok || bean == nil {
		return nil
	}

	if !m.ConfiguredByReverse {
		return bean.Mappings[target]
	}

	var res []Mapping

	qualifiers := m.qualifiers(bean)

	for _, t := range bean.Targets() {
		for _, mapping := range bean.Mappings[t] {
			if rev, ok := mapping.Reverse(qualifiers); ok && rev.Target == target {
				res = append(res, rev)
			}
		}
	}

	return res
}

// DroppedMappings returns the directives of a configuration adopted from the
// reverse method that cannot be inverted, in target order.
func (m *Method) DroppedMappings() []Mapping {
	bean, ok := m.Config.(*BeanMapping)
	if !ok || bean == nil || !m.ConfiguredByReverse {
		return nil
	}

	var res []Mapping

	qualifiers := m.qualifiers(bean)

	for _, t := range bean.Targets() {
		for _, mapping := range bean.Mappings[t] {
			if _, ok := mapping.Reverse(qualifiers); !ok {
				res = append(res, mapping)
			}
		}
	}

	return res
}

// qualifiers returns the parameter names that may qualify the source paths of bean.
func (m *Method) qualifiers(bean *BeanMapping) []string {
	if len(m.ReverseParameters) == 0 {
		return bean.SourceParameters
	}

	return slices.Concat(bean.SourceParameters, m.ReverseParameters)
}

// ConfiguredTargets returns the target property names the configuration refers to.
func (m *Method) ConfiguredTargets() []string {
	bean, ok := m.Config.(*BeanMapping)
	if !ok || bean == nil {
		return nil
	}

	if !m.ConfiguredByReverse {
		return bean.Targets()
	}

	set := make(map[string]struct{})
	qualifiers := m.qualifiers(bean)

	for _, t := range bean.Targets() {
		for _, mapping := range bean.Mappings[t] {
			if rev, ok := mapping.Reverse(qualifiers); ok {
				set[rev.Target] = struct{}{}
			}
		}
	}

	return common.SortedKeys(set)
}

// String renders the method signature, e.g. "store.Mapper.Map(s store.Source) store.Target".
func (m *Method) String() string {
	var sb strings.Builder

	if m.DeclaringMapper != nil {
		sb.WriteString(m.DeclaringMapper.String() + ".")
	}

	sb.WriteString(m.Name + "(" + common.Join(m.Parameters, ", ") + ")")

	if m.ReturnType != nil {
		sb.WriteString(" " + m.ReturnType.String())
	}

	return sb.String()
}
