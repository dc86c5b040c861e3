package mapping

// MappingFile represents the root of a YAML declaration file: the types a mapper
// is declared over, the mapper itself, the mappers it uses and the factories
// constructing abstract results.
type MappingFile struct {
	// Version of the declaration schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Types declares the types mapping methods refer to. Types loaded from Go
	// packages need no declaration.
	Types []TypeDef `yaml:"types,omitempty"`

	// Mapper is the mapper being implemented.
	Mapper MapperDef `yaml:"mapper"`

	// Uses lists the mappers whose methods may be called.
	Uses []UsedMapperDef `yaml:"uses,omitempty"`

	// Factories lists the parameterless methods constructing result instances.
	Factories []FactoryDef `yaml:"factories,omitempty"`
}

// TypeDef declares a type.
//
//	types:
//	  - name: example.com/shop.Order
//	    kind: bean
//	    properties:
//	      - id: int64
//	      - {name: total, type: example.com/shop.Money, readonly: true}
type TypeDef struct {
	// Name is the qualified type name, e.g. "example.com/shop.Order".
	Name string `yaml:"name"`

	// Kind is one of basic, bean, enum, interface, iterable or map. Defaults to bean.
	Kind string `yaml:"kind,omitempty"`

	// TypeParams names the parameters of a generic declaration.
	TypeParams StringOrArray `yaml:"type_params,omitempty"`

	// Properties of a bean, in declaration order.
	Properties PropertyDefArray `yaml:"properties,omitempty"`

	// Supertypes lists type expressions the type is assignable to.
	Supertypes StringOrArray `yaml:"supertypes,omitempty"`

	// Abstract types are not constructible. Interfaces are always abstract.
	Abstract bool `yaml:"abstract,omitempty"`

	// Implementation names the default concrete type of an abstract container,
	// instantiated with the parameters of the abstract one.
	Implementation string `yaml:"implementation,omitempty"`

	// Constants of an enum, in declaration order.
	Constants StringOrArray `yaml:"constants,omitempty"`

	// Element, Key and Value describe the parameters of named containers that are
	// not generic, e.g. Element: string for "type Names []string".
	Element string `yaml:"element,omitempty"`
	Key     string `yaml:"key,omitempty"`
	Value   string `yaml:"value,omitempty"`
}

// PropertyDef declares a bean property. Properties are readable and writable
// unless stated otherwise.
type PropertyDef struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	ReadOnly  bool   `yaml:"readonly,omitempty"`
	WriteOnly bool   `yaml:"writeonly,omitempty"`
}

// MapperDef is the mapper being implemented.
type MapperDef struct {
	// Name of the mapper, informational.
	Name    string      `yaml:"name"`
	Methods []MethodDef `yaml:"methods"`
}

// MethodDef declares a mapping method.
//
//	methods:
//	  - name: toDto
//	    params: [{order: example.com/shop.Order}]
//	    returns: example.com/shop.OrderDto
//	    121:
//	      order.customer.name: customer
//	    mappings:
//	      - {target: created, source: createdAt, format: "2006-01-02"}
//	    ignore: [internal]
type MethodDef struct {
	Name string `yaml:"name"`

	// Params in declaration order; at most one is the mapping target.
	Params ParamDefArray `yaml:"params,omitempty"`

	// Returns is the return type expression, empty for methods returning nothing.
	Returns string `yaml:"returns,omitempty"`

	// Accessibility of referenced methods: public, protected, package or private.
	Accessibility string `yaml:"accessibility,omitempty"`

	// OneToOne is a simplified syntax where keys are source paths and values are
	// target properties. Priority: highest (applied first).
	OneToOne map[string]string `yaml:"121,omitempty"`

	// Mappings are the explicit directives. Priority: second highest.
	Mappings []MappingDef `yaml:"mappings,omitempty"`

	// Ignore lists target properties left untouched. Priority: third.
	Ignore StringOrArray `yaml:"ignore,omitempty"`

	// Iterable configures an iterable mapping method.
	Iterable *IterableDef `yaml:"iterable,omitempty"`

	// Map configures a map mapping method.
	Map *MapDef `yaml:"map,omitempty"`
}

// HasBeanConfig returns true if the method carries property directives.
func (m *MethodDef) HasBeanConfig() bool {
	return len(m.OneToOne) > 0 || len(m.Mappings) > 0 || len(m.Ignore) > 0
}

// ParamDef declares a method parameter.
type ParamDef struct {
	Name          string `yaml:"name"`
	Type          string `yaml:"type"`
	MappingTarget bool   `yaml:"mapping_target,omitempty"`
}

// MappingDef is one directive for a target property. Exactly one of Source,
// Constant, Expression and Ignore is set.
type MappingDef struct {
	Target     string  `yaml:"target"`
	Source     string  `yaml:"source,omitempty"`
	Constant   *string `yaml:"constant,omitempty"`
	Expression string  `yaml:"expression,omitempty"`
	Format     string  `yaml:"format,omitempty"`
	Ignore     bool    `yaml:"ignore,omitempty"`
}

// valueSources counts the value sources set on the directive.
func (m *MappingDef) valueSources() int {
	n := 0

	for _, set := range []bool{m.Source != "", m.Constant != nil, m.Expression != "", m.Ignore} {
		if set {
			n++
		}
	}

	return n
}

// IterableDef configures an iterable mapping method.
type IterableDef struct {
	ElementFormat string `yaml:"element_format,omitempty"`
}

// MapDef configures a map mapping method.
type MapDef struct {
	KeyFormat   string `yaml:"key_format,omitempty"`
	ValueFormat string `yaml:"value_format,omitempty"`
}

// UsedMapperDef declares a used mapper and the methods it offers.
type UsedMapperDef struct {
	// Type is the qualified mapper type name.
	Type string `yaml:"type"`

	// Annotations make the mapper injected instead of held in a plain field.
	Annotations []AnnotationDef `yaml:"annotations,omitempty"`

	Methods []MethodDef `yaml:"methods,omitempty"`
}

// AnnotationDef qualifies how a used mapper is injected.
type AnnotationDef struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value,omitempty"`
}

// FactoryDef declares a factory method.
type FactoryDef struct {
	// Mapper is the used mapper declaring the factory, empty for factories of the
	// mapper being implemented.
	Mapper  string `yaml:"mapper,omitempty"`
	Name    string `yaml:"name"`
	Returns string `yaml:"returns"`
}
