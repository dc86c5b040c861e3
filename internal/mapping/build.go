package mapping

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"mapper-planner/internal/analyze"
	"mapper-planner/internal/catalogue"
	"mapper-planner/internal/logging"
	"mapper-planner/internal/model"
)

// Builder turns a declaration file into a catalogue.
type Builder struct {
	graph *analyze.TypeGraph
	log   logrus.FieldLogger
}

// NewBuilder creates a Builder. Types loaded from Go packages in graph may be
// referred to without a declaration; graph and log may be nil.
func NewBuilder(graph *analyze.TypeGraph, log logrus.FieldLogger) *Builder {
	return &Builder{graph: graph, log: logging.OrDiscard(log)}
}

// Build validates mf and builds the catalogue it declares. Every problem found is
// reported, joined into a single error. mf is not modified.
func (b *Builder) Build(mf *MappingFile) (*catalogue.Catalogue, error) {
	if err := Validate(mf); err != nil {
		return nil, err
	}

	bs := &buildState{
		Builder: b,
		scope:   &typeScope{declared: make(map[model.TypeID]*model.Type, len(mf.Types)), graph: b.graph},
		opaque:  make(map[model.TypeID]*model.Type),
	}

	bs.declareTypes(mf.Types)

	var cb catalogue.Builder

	for i := range mf.Mapper.Methods {
		if m := bs.method(&mf.Mapper.Methods[i], nil); m != nil {
			cb.AddMethod(m)
		}
	}

	for i := range mf.Uses {
		bs.usedMapper(&cb, &mf.Uses[i])
	}

	for _, f := range mf.Factories {
		if m := bs.factory(f); m != nil {
			cb.AddFactory(m)
		}
	}

	if err := errors.Join(bs.errs...); err != nil {
		return nil, err
	}

	c, err := cb.Build()
	if err != nil {
		return nil, err
	}

	b.log.WithFields(logrus.Fields{
		"mapper":  mf.Mapper.Name,
		"types":   len(mf.Types),
		"methods": len(c.Methods()),
		"entries": len(c.Entries()),
	}).Debug("mapping: catalogue built")

	return c, nil
}

// Build is NewBuilder(graph, nil).Build(mf).
func Build(mf *MappingFile, graph *analyze.TypeGraph) (*catalogue.Catalogue, error) {
	return NewBuilder(graph, nil).Build(mf)
}

type buildState struct {
	*Builder

	scope *typeScope
	// opaque holds the mapper and annotation types that were not declared.
	opaque map[model.TypeID]*model.Type
	errs   []error
}

func (bs *buildState) fail(at string, err error) {
	bs.errs = append(bs.errs, fmt.Errorf("%s: %w", at, err))
}

// declareTypes builds the declared types in phases so that declarations may
// refer to each other in any order: shells first, then the structure that is
// resolved bare, then the element types and properties. Instantiation copies
// properties, so a generic declaration is completed before it is instantiated.
func (bs *buildState) declareTypes(defs []TypeDef) {
	d := &declarations{
		buildState: bs,
		defs:       defs,
		types:      make([]*model.Type, len(defs)),
		scopes:     make([]*typeScope, len(defs)),
		index:      make(map[*model.Type]int, len(defs)),
		state:      make([]fillState, len(defs)),
	}

	for i := range defs {
		td := &defs[i]
		pkgPath, name := splitQualified(td.Name)
		kind, _ := model.ParseTypeKind(td.Kind)

		t := &model.Type{
			ID:         model.TypeID{PkgPath: pkgPath, Name: name},
			Kind:       kind,
			Abstract:   td.Abstract || kind == model.TypeKindInterface,
			TypeParams: slices.Clone(td.TypeParams),
			Constants:  slices.Clone(td.Constants),
		}

		d.types[i] = t
		d.index[t] = i
		bs.scope.declared[t.ID] = t
	}

	for i, t := range d.types {
		params := make(map[string]*model.Type, len(t.TypeParams))
		for _, p := range t.TypeParams {
			params[p] = &model.Type{ID: model.TypeID{Name: p}, Kind: model.TypeKindInterface, Abstract: true}
		}

		d.scopes[i] = bs.scope.withParams(params)
	}

	for i := range defs {
		td, t, scope := &defs[i], d.types[i], d.scopes[i]
		at := "types[" + td.Name + "]"

		for _, s := range td.Supertypes {
			if st, err := scope.resolveString(s, true); err != nil {
				bs.fail(at+": supertype", err)
			} else {
				t.Supertypes = append(t.Supertypes, st)
			}
		}

		if td.Implementation != "" {
			if impl, err := scope.resolveString(td.Implementation, true); err != nil {
				bs.fail(at+": implementation", err)
			} else {
				t.Implementation = impl
			}
		}
	}

	for i := range defs {
		d.fill(i)
	}
}

type fillState uint8

const (
	unfilled fillState = iota
	filling
	filled
)

// declarations tracks the declared types while their members are resolved.
type declarations struct {
	*buildState

	defs   []TypeDef
	types  []*model.Type
	scopes []*typeScope
	index  map[*model.Type]int
	state  []fillState
}

// fill resolves the element types and properties of the i-th declaration.
// Declarations in a cycle see each other partially filled.
func (d *declarations) fill(i int) {
	if d.state[i] != unfilled {
		return
	}

	d.state[i] = filling
	defer func() { d.state[i] = filled }()

	td, t, scope := &d.defs[i], d.types[i], d.scopes[i]
	at := "types[" + td.Name + "]"

	for _, expr := range []string{td.Element, td.Key, td.Value} {
		if expr == "" {
			continue
		}

		if p, err := d.resolve(scope, expr); err != nil {
			d.fail(at, err)
		} else {
			t.Params = append(t.Params, p)
		}
	}

	for _, p := range td.Properties {
		pt, err := d.resolve(scope, p.Type)
		if err != nil {
			d.fail(at+"."+p.Name, err)

			continue
		}

		t.Properties = append(t.Properties, model.Property{
			Name:     p.Name,
			Type:     pt,
			Readable: !p.WriteOnly,
			Writable: !p.ReadOnly,
		})
	}
}

// resolve resolves expr after filling the declarations it instantiates.
func (d *declarations) resolve(scope *typeScope, expr string) (*model.Type, error) {
	e, err := ParseTypeExpr(expr)
	if err != nil {
		return nil, err
	}

	d.fillInstantiated(scope, e)

	return scope.resolve(e, false)
}

func (d *declarations) fillInstantiated(scope *typeScope, e *TypeExpr) {
	if e.Kind == ExprNamed && len(e.Args) > 0 {
		if base, err := scope.lookup(e.PkgPath, e.Name); err == nil {
			if j, ok := d.index[base]; ok {
				d.fill(j)
			}
		}
	}

	for _, a := range e.Args {
		d.fillInstantiated(scope, a)
	}
}

// method builds a method of the implemented mapper (declaringMapper nil) or of
// a used mapper.
func (bs *buildState) method(def *MethodDef, declaringMapper *model.Type) *model.Method {
	at := "method " + def.Name
	if declaringMapper != nil {
		at = "method " + declaringMapper.ID.Name + "." + def.Name
	}

	failed := false

	params := make([]model.Parameter, 0, len(def.Params))

	for _, p := range def.Params {
		t, err := bs.scope.resolveString(p.Type, false)
		if err != nil {
			bs.fail(at+": parameter "+p.Name, err)

			failed = true

			continue
		}

		params = append(params, model.Parameter{Name: p.Name, Type: t, MappingTarget: p.MappingTarget})
	}

	var returns *model.Type

	if def.Returns != "" {
		t, err := bs.scope.resolveString(def.Returns, false)
		if err != nil {
			bs.fail(at+": returns", err)

			failed = true
		}

		returns = t
	}

	if failed {
		return nil
	}

	if declaringMapper != nil {
		m := model.ForReferenced(declaringMapper, def.Name, params, returns)
		m.Accessibility, _ = model.ParseAccessibility(def.Accessibility)

		return m
	}

	return model.ForImplementation(def.Name, params, returns, configuration(def, params))
}

// configuration converts the directives of a method into its configuration.
func configuration(def *MethodDef, params []model.Parameter) model.Configuration {
	switch {
	case def.Iterable != nil:
		return &model.IterableMapping{ElementFormat: def.Iterable.ElementFormat}
	case def.Map != nil:
		return &model.MapMapping{KeyFormat: def.Map.KeyFormat, ValueFormat: def.Map.ValueFormat}
	case !def.HasBeanConfig():
		return nil
	}

	normalized := *def
	NormalizeMethod(&normalized)

	bean := &model.BeanMapping{Mappings: make(map[string][]model.Mapping)}

	for _, d := range normalized.Mappings {
		bean.Mappings[d.Target] = append(bean.Mappings[d.Target], model.Mapping{
			Target:     d.Target,
			Source:     d.Source,
			Constant:   d.Constant,
			Expression: d.Expression,
			Format:     d.Format,
			Ignore:     d.Ignore,
		})
	}

	for _, p := range params {
		if !p.MappingTarget {
			bean.SourceParameters = append(bean.SourceParameters, p.Name)
		}
	}

	return bean
}

// opaqueType resolves a mapper or annotation type, which need no declaration.
func (bs *buildState) opaqueType(name string) *model.Type {
	pkgPath, typeName := splitQualified(name)
	id := model.TypeID{PkgPath: pkgPath, Name: typeName}

	if t := bs.scope.declared[id]; t != nil {
		return t
	}

	if t := bs.scope.graph.Lookup(id); t != nil {
		return t
	}

	if t, ok := bs.opaque[id]; ok {
		return t
	}

	t := &model.Type{ID: id, Kind: model.TypeKindBean}
	bs.opaque[id] = t

	return t
}

func (bs *buildState) usedMapper(cb *catalogue.Builder, def *UsedMapperDef) {
	mapperType := bs.opaqueType(def.Type)

	methods := make([]*model.Method, 0, len(def.Methods))

	for i := range def.Methods {
		if m := bs.method(&def.Methods[i], mapperType); m != nil {
			methods = append(methods, m)
		}
	}

	if len(def.Annotations) == 0 {
		cb.AddMapper(mapperType, methods...)

		return
	}

	annotations := make([]catalogue.Annotation, len(def.Annotations))
	for i, a := range def.Annotations {
		annotations[i] = catalogue.Annotation{Type: bs.opaqueType(a.Type), Value: a.Value}
	}

	cb.AddAnnotatedMapper(mapperType, annotations, methods...)
}

func (bs *buildState) factory(def FactoryDef) *model.Method {
	returns, err := bs.scope.resolveString(def.Returns, false)
	if err != nil {
		bs.fail("factory "+def.Name, err)

		return nil
	}

	var mapperType *model.Type
	if def.Mapper != "" {
		mapperType = bs.opaqueType(def.Mapper)
	}

	return model.ForFactory(mapperType, def.Name, returns)
}
