package plan

import (
	"errors"

	"mapper-planner/internal/common"
	"mapper-planner/internal/diagnostic"
	"mapper-planner/internal/model"
	"mapper-planner/internal/resolve"
	"mapper-planner/internal/reverse"
)

// ErrStructural is wrapped by the error of a method whose declaration is inconsistent.
var ErrStructural = errors.New("structural inconsistency")

// MapperPlan is the output of a planning run.
type MapperPlan struct {
	// Methods holds one plan per method requiring implementation, in declaration order.
	Methods []MethodPlan
	// Links are the configurations adopted from reverse methods.
	Links []reverse.Link
	// MapperImports are the types required by the used mappers of the generated mapper.
	MapperImports []model.TypeID
	// Diagnostics merges the diagnostics of every method plan.
	Diagnostics diagnostic.Diagnostics
}

// ImportTypes returns the types the generated mapper must import, sorted.
func (p *MapperPlan) ImportTypes() []model.TypeID {
	set := common.AsSet(p.MapperImports...)
	for _, m := range p.Methods {
		set = common.AddAll(set, m.ImportTypes()...)
	}

	return model.SortedTypeIDs(set)
}

// ImportPaths returns the package paths the generated mapper must import, sorted.
func (p *MapperPlan) ImportPaths() []string {
	var set map[string]struct{}
	for _, id := range p.ImportTypes() {
		set = common.AddAll(set, id.PkgPath)
	}

	return common.SortedKeys(set)
}

// Method returns the plan of the named method, or nil.
func (p *MapperPlan) Method(name string) *MethodPlan {
	for i := range p.Methods {
		if p.Methods[i].Method.Name == name {
			return &p.Methods[i]
		}
	}

	return nil
}

// MethodPlan is the plan of a single method.
type MethodPlan struct {
	Method *model.Method
	// Mapping is nil if planning the method failed with Err.
	Mapping     MappingPlan
	Diagnostics diagnostic.Diagnostics
	// Err wraps ErrStructural if the method could not be planned.
	Err error
}

// ImportTypes returns the types required by the method signature and its plan.
func (p *MethodPlan) ImportTypes() []model.TypeID {
	var set map[model.TypeID]struct{}
	for _, param := range p.Method.Parameters {
		set = common.AddAll(set, param.Type.ImportTypes()...)
	}

	set = common.AddAll(set, p.Method.ReturnType.ImportTypes()...)

	if p.Mapping != nil {
		set = common.AddAll(set, p.Mapping.ImportTypes()...)
	}

	return model.SortedTypeIDs(set)
}

// MappingPlan is one of *BeanMappingMethod, *IterableMappingMethod or *MapMappingMethod.
type MappingPlan interface {
	// ImportTypes returns the types required by the plan.
	ImportTypes() []model.TypeID
	mappingPlan()
}

// BindingKind tells where the value of a target property comes from.
type BindingKind int

const (
	// BindingSource - a source parameter or one of its (nested) properties.
	BindingSource BindingKind = iota
	// BindingConstant - a constant passed through verbatim.
	BindingConstant
	// BindingExpression - an expression passed through verbatim.
	BindingExpression
	// BindingIgnored - the target property is left untouched.
	BindingIgnored
)

// String returns a human-readable binding kind.
func (k BindingKind) String() string {
	switch k {
	case BindingSource:
		return "source"
	case BindingConstant:
		return "constant"
	case BindingExpression:
		return "expression"
	case BindingIgnored:
		return "ignored"
	default:
		return common.UnknownStr
	}
}

// PropertyMapping binds one target property.
type PropertyMapping struct {
	Target     string
	TargetType *model.Type
	Kind       BindingKind
	// SourceParameter and SourcePath locate the source value for BindingSource;
	// an empty SourcePath means the parameter itself.
	SourceParameter string
	SourcePath      []string
	SourceType      *model.Type
	Constant        string
	Expression      string
	// Strategy maps SourceType to TargetType for BindingSource. It is
	// StrategyNotFound if no strategy applies or the candidates were ambiguous.
	Strategy resolve.Strategy
	// Configured is true if the binding comes from a mapping directive.
	Configured bool
}

// SourceReference renders the source location, e.g. "order.customer.name".
func (m *PropertyMapping) SourceReference() string {
	ref := m.SourceParameter
	for _, p := range m.SourcePath {
		ref += "." + p
	}

	return ref
}

// BeanMappingMethod maps property by property.
type BeanMappingMethod struct {
	// Properties holds one binding per writable result property, in declaration order.
	Properties []PropertyMapping
	// Factory is nil when a mapping target parameter is populated in place or when
	// no factory was found.
	Factory *Factory
}

func (*BeanMappingMethod) mappingPlan() {}

// ImportTypes returns the property, strategy and factory types.
func (b *BeanMappingMethod) ImportTypes() []model.TypeID {
	var set map[model.TypeID]struct{}
	for _, p := range b.Properties {
		set = common.AddAll(set, p.TargetType.ImportTypes()...)
		set = common.AddAll(set, p.SourceType.ImportTypes()...)
		set = common.AddAll(set, p.Strategy.ImportTypes()...)
	}

	set = common.AddAll(set, b.Factory.ImportTypes()...)

	return model.SortedTypeIDs(set)
}

// Property returns the binding of the named target property, or nil.
func (b *BeanMappingMethod) Property(name string) *PropertyMapping {
	for i := range b.Properties {
		if b.Properties[i].Target == name {
			return &b.Properties[i]
		}
	}

	return nil
}

// IterableMappingMethod maps a container element by element.
type IterableMappingMethod struct {
	SourceElement *model.Type
	TargetElement *model.Type
	Element       resolve.Strategy
	Factory       *Factory
	// LoopVariableName is free of collisions with the method's parameters.
	LoopVariableName string
}

func (*IterableMappingMethod) mappingPlan() {}

// ImportTypes returns the element, strategy and factory types.
func (i *IterableMappingMethod) ImportTypes() []model.TypeID {
	set := common.AsSet(i.SourceElement.ImportTypes()...)
	set = common.AddAll(set, i.TargetElement.ImportTypes()...)
	set = common.AddAll(set, i.Element.ImportTypes()...)
	set = common.AddAll(set, i.Factory.ImportTypes()...)

	return model.SortedTypeIDs(set)
}

// MapMappingMethod maps a map entry by entry.
type MapMappingMethod struct {
	SourceKey   *model.Type
	SourceValue *model.Type
	TargetKey   *model.Type
	TargetValue *model.Type
	Key         resolve.Strategy
	Value       resolve.Strategy
	Factory     *Factory
	// Variable names are free of collisions with the method's parameters.
	KeyVariableName   string
	ValueVariableName string
	EntryVariableName string
}

func (*MapMappingMethod) mappingPlan() {}

// ImportTypes returns the key, value, strategy and factory types.
func (m *MapMappingMethod) ImportTypes() []model.TypeID {
	var set map[model.TypeID]struct{}
	for _, t := range []*model.Type{m.SourceKey, m.SourceValue, m.TargetKey, m.TargetValue} {
		set = common.AddAll(set, t.ImportTypes()...)
	}

	set = common.AddAll(set, m.Key.ImportTypes()...)
	set = common.AddAll(set, m.Value.ImportTypes()...)
	set = common.AddAll(set, m.Factory.ImportTypes()...)

	return model.SortedTypeIDs(set)
}

// FactoryKind tells how a result instance is constructed.
type FactoryKind int

const (
	// FactoryConstructor - default construction of Type.
	FactoryConstructor FactoryKind = iota
	// FactoryMethod - a call of a declared factory method.
	FactoryMethod
)

// String returns a human-readable factory kind.
func (k FactoryKind) String() string {
	switch k {
	case FactoryConstructor:
		return "constructor"
	case FactoryMethod:
		return "method"
	default:
		return common.UnknownStr
	}
}

// Factory constructs the result instance of a method.
type Factory struct {
	Kind FactoryKind
	// Type is the constructed type; for abstract results it is the implementation.
	Type   *model.Type
	Method *resolve.MethodReference // set for FactoryMethod
}

// ImportTypes returns the constructed type and the factory method's requirements.
func (f *Factory) ImportTypes() []model.TypeID {
	if f == nil {
		return nil
	}

	res := f.Type.ImportTypes()
	if f.Method != nil {
		res = append(res, f.Method.ImportTypes()...)
	}

	return res
}

// String renders the factory for logs and diagnostics.
func (f *Factory) String() string {
	if f == nil {
		return "none"
	}

	if f.Kind == FactoryMethod {
		return "method " + f.Method.String()
	}

	return "constructor " + f.Type.String()
}
