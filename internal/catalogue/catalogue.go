package catalogue

import (
	"errors"
	"fmt"

	"mapper-planner/internal/common"
	"mapper-planner/internal/model"
)

// ErrInvalidMethod is wrapped by every validation error of Build.
var ErrInvalidMethod = errors.New("invalid method")

// Entry is a method together with the mapper reference it is called through.
// Mapper is nil for methods of the mapper being implemented.
type Entry struct {
	Method *model.Method
	Mapper MapperReference
}

// IsCandidate reports whether the entry can serve as a sub-mapping: one source
// parameter, no mapping target, a result and callable from the generated mapper.
func (e Entry) IsCandidate() bool {
	m := e.Method
	if len(m.Parameters) != 1 || m.TargetParameter() != nil || m.ReturnType == nil {
		return false
	}

	return e.Mapper == nil || m.Accessibility != model.AccessibilityPrivate
}

// Catalogue indexes the methods of one planning run.
type Catalogue struct {
	entries   []Entry // declaration order
	factories []Entry
	mappers   []MapperReference

	bySignature map[string][]int // candidate indexes in entries
	byResult    map[string][]int // factory indexes in factories
}

func signatureKey(source, result *model.Type) string {
	return source.Key() + " -> " + result.Key()
}

func newCatalogue(entries, factories []Entry, mappers []MapperReference) *Catalogue {
	c := &Catalogue{
		entries:     entries,
		factories:   factories,
		mappers:     mappers,
		bySignature: make(map[string][]int),
		byResult:    make(map[string][]int),
	}

	for i, e := range entries {
		if e.IsCandidate() {
			key := signatureKey(e.Method.Parameters[0].Type, e.Method.ReturnType)
			c.bySignature[key] = append(c.bySignature[key], i)
		}
	}

	for i, f := range factories {
		key := f.Method.ReturnType.Key()
		c.byResult[key] = append(c.byResult[key], i)
	}

	return c
}

// Methods returns the methods requiring implementation in declaration order.
func (c *Catalogue) Methods() []*model.Method {
	var res []*model.Method
	for _, e := range c.entries {
		if e.Method.RequiresImplementation() {
			res = append(res, e.Method)
		}
	}

	return res
}

// Entries returns every non factory method in declaration order.
func (c *Catalogue) Entries() []Entry {
	return c.entries
}

// Candidates returns the entries usable as sub-mappings in declaration order.
func (c *Catalogue) Candidates() []Entry {
	var res []Entry
	for _, e := range c.entries {
		if e.IsCandidate() {
			res = append(res, e)
		}
	}

	return res
}

// Exact returns the candidates mapping exactly source to result, in declaration order.
func (c *Catalogue) Exact(source, result *model.Type) []Entry {
	idx := c.bySignature[signatureKey(source, result)]

	res := make([]Entry, 0, len(idx))
	for _, i := range idx {
		res = append(res, c.entries[i])
	}

	return res
}

// Factories returns the factory methods constructing exactly result, in declaration order.
func (c *Catalogue) Factories(result *model.Type) []Entry {
	idx := c.byResult[result.Key()]

	res := make([]Entry, 0, len(idx))
	for _, i := range idx {
		res = append(res, c.factories[i])
	}

	return res
}

// AllFactories returns every factory method in declaration order.
func (c *Catalogue) AllFactories() []Entry {
	return c.factories
}

// MapperReferences returns the used mappers in declaration order.
func (c *Catalogue) MapperReferences() []MapperReference {
	return c.mappers
}

// ImportTypes returns the types required by every mapper reference.
func (c *Catalogue) ImportTypes() []model.TypeID {
	var set map[model.TypeID]struct{}
	for _, m := range c.mappers {
		set = common.AddAll(set, m.ImportTypes()...)
	}

	return model.SortedTypeIDs(set)
}

// Substitute returns a new catalogue in which every method found in substitutes is
// replaced by its substitute. The receiver is left untouched.
func (c *Catalogue) Substitute(substitutes map[*model.Method]*model.Method) *Catalogue {
	entries := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		if s, ok := substitutes[e.Method]; ok {
			e.Method = s
		}

		entries[i] = e
	}

	return newCatalogue(entries, c.factories, c.mappers)
}

// Builder collects the methods of a catalogue. The zero value is ready to use.
type Builder struct {
	entries   []Entry
	factories []Entry
	mappers   []pendingMapper
}

type pendingMapper struct {
	mapperType  *model.Type
	annotations []Annotation
	annotated   bool
	methods     []*model.Method
}

// AddMethod adds methods of the mapper being implemented.
func (b *Builder) AddMethod(methods ...*model.Method) *Builder {
	for _, m := range methods {
		b.entries = append(b.entries, Entry{Method: m})
	}

	return b
}

// AddMapper adds a used mapper held in a plain field with its referenced methods.
func (b *Builder) AddMapper(mapperType *model.Type, methods ...*model.Method) *Builder {
	b.mappers = append(b.mappers, pendingMapper{mapperType: mapperType, methods: methods})

	return b
}

// AddAnnotatedMapper adds a used mapper injected through annotations.
func (b *Builder) AddAnnotatedMapper(mapperType *model.Type, annotations []Annotation, methods ...*model.Method) *Builder {
	b.mappers = append(b.mappers, pendingMapper{
		mapperType:  mapperType,
		annotations: annotations,
		annotated:   true,
		methods:     methods,
	})

	return b
}

// AddFactory adds factory methods. Factories declared on a used mapper must come
// with that mapper added through AddMapper or AddAnnotatedMapper before Build.
func (b *Builder) AddFactory(methods ...*model.Method) *Builder {
	for _, m := range methods {
		b.factories = append(b.factories, Entry{Method: m})
	}

	return b
}

// Build validates the collected methods and indexes them. Every problem found
// is reported, joined into a single error.
func (b *Builder) Build() (*Catalogue, error) {
	var (
		errs     []error
		entries  = make([]Entry, 0, len(b.entries))
		mappers  = make([]MapperReference, 0, len(b.mappers))
		byMapper = make(map[string]MapperReference)
		names    []string
	)

	for _, e := range b.entries {
		m := e.Method
		if m.DeclaringMapper != nil {
			errs = append(errs, fmt.Errorf("%w: %s: method of the implemented mapper has a declaring mapper",
				ErrInvalidMethod, m))
		}

		errs = append(errs, validateParameters(m)...)
		entries = append(entries, e)
	}

	for _, pm := range b.mappers {
		name := common.SafeVariableName(common.LowerFirst(pm.mapperType.ID.Name), names)
		names = append(names, name)

		var ref MapperReference
		if pm.annotated {
			ref = &AnnotationMapperReference{Type: pm.mapperType, Variable: name, Annotations: pm.annotations}
		} else {
			ref = &FieldMapperReference{Type: pm.mapperType, Variable: name}
		}

		mappers = append(mappers, ref)
		if _, ok := byMapper[pm.mapperType.Key()]; !ok {
			byMapper[pm.mapperType.Key()] = ref
		}

		for _, m := range pm.methods {
			if !m.DeclaringMapper.Equal(pm.mapperType) {
				errs = append(errs, fmt.Errorf("%w: %s: referenced method is not declared by %s",
					ErrInvalidMethod, m, pm.mapperType))
			}

			errs = append(errs, validateParameters(m)...)
			entries = append(entries, Entry{Method: m, Mapper: ref})
		}
	}

	factories := make([]Entry, 0, len(b.factories))

	for _, f := range b.factories {
		m := f.Method
		if len(m.Parameters) != 0 || m.ReturnType == nil {
			errs = append(errs, fmt.Errorf("%w: %s: factory methods take no parameters and return a value",
				ErrInvalidMethod, m))

			continue
		}

		if m.DeclaringMapper != nil {
			ref, ok := byMapper[m.DeclaringMapper.Key()]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s: factory declared by an unknown mapper",
					ErrInvalidMethod, m))

				continue
			}

			f.Mapper = ref
		}

		factories = append(factories, f)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return newCatalogue(entries, factories, mappers), nil
}

func validateParameters(m *model.Method) []error {
	var errs []error

	targets := 0
	names := make(map[string]struct{}, len(m.Parameters))

	for _, p := range m.Parameters {
		if p.MappingTarget {
			targets++
		}

		if p.Type == nil {
			errs = append(errs, fmt.Errorf("%w: %s: parameter %q has no type", ErrInvalidMethod, m.Name, p.Name))
		}

		if _, ok := names[p.Name]; ok {
			errs = append(errs, fmt.Errorf("%w: %s: duplicate parameter %q", ErrInvalidMethod, m.Name, p.Name))
		}

		names[p.Name] = struct{}{}
	}

	if targets > 1 {
		errs = append(errs, fmt.Errorf("%w: %s: more than one mapping target parameter", ErrInvalidMethod, m.Name))
	}

	return errs
}
