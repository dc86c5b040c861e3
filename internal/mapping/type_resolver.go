package mapping

import (
	"fmt"
	"strings"

	"mapper-planner/internal/analyze"
	"mapper-planner/internal/model"
)

// typeScope resolves type expressions against declared types, loaded Go types
// and the type parameters of the declaration being built.
type typeScope struct {
	declared map[model.TypeID]*model.Type
	graph    *analyze.TypeGraph
	params   map[string]*model.Type
}

// withParams returns a scope in which the given type parameters are visible.
func (s *typeScope) withParams(params map[string]*model.Type) *typeScope {
	return &typeScope{declared: s.declared, graph: s.graph, params: params}
}

// lookup resolves a type name like:
//   - "int", "string", "time.Time" (builtin)
//   - "example.com/shop.Order" (full)
//   - "shop.Order" (short, unique package suffix)
//   - "Order" (name only, unique).
func (s *typeScope) lookup(pkgPath, name string) (*model.Type, error) {
	if pkgPath == "" {
		if t, ok := s.params[name]; ok {
			return t, nil
		}

		switch {
		case name == "any":
			return model.Any(), nil
		case model.IsBasicTypeName(name):
			return model.Basic(name), nil
		}
	}

	id := model.TypeID{PkgPath: pkgPath, Name: name}

	switch id {
	case model.TimeID:
		return model.Time(), nil
	case model.DurationID:
		return model.Duration(), nil
	}

	// 1) exact match (for fully qualified import path)
	if t := s.declared[id]; t != nil {
		return t, nil
	}

	if t := s.graph.Lookup(id); t != nil {
		return t, nil
	}

	// 2) suffix match (for short forms like "shop.Order" vs "example.com/shop.Order")
	var found []*model.Type

	for _, candidate := range s.candidates(name) {
		if pkgPath == "" || candidate.ID.PkgPath == pkgPath || strings.HasSuffix(candidate.ID.PkgPath, "/"+pkgPath) {
			found = append(found, candidate)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("type %s not found", id)
	case 1:
		return found[0], nil
	default:
		names := make([]string, len(found))
		for i, t := range found {
			names[i] = t.ID.String()
		}

		return nil, fmt.Errorf("type %s is ambiguous: %s", id, strings.Join(names, ", "))
	}
}

// candidates returns the declared and loaded types with the given name, sorted
// by identifier. A declared type shadows a loaded one with the same identifier.
func (s *typeScope) candidates(name string) []*model.Type {
	set := make(map[model.TypeID]struct{})

	for id := range s.declared {
		if id.Name == name {
			set[id] = struct{}{}
		}
	}

	if s.graph != nil {
		for id := range s.graph.Types {
			if id.Name == name {
				set[id] = struct{}{}
			}
		}
	}

	ids := model.SortedTypeIDs(set)
	res := make([]*model.Type, len(ids))

	for i, id := range ids {
		if t := s.declared[id]; t != nil {
			res[i] = t
		} else {
			res[i] = s.graph.Lookup(id)
		}
	}

	return res
}

// resolve converts a parsed expression into a type. Generic declarations must
// be instantiated unless bare is set, which accepts a generic name without
// arguments as the declaration itself (for supertypes and implementations).
func (s *typeScope) resolve(e *TypeExpr, bare bool) (*model.Type, error) {
	switch e.Kind {
	case ExprSlice:
		elem, err := s.resolve(e.Args[0], false)
		if err != nil {
			return nil, err
		}

		return model.SliceOf(elem), nil
	case ExprMap:
		key, err := s.resolve(e.Args[0], false)
		if err != nil {
			return nil, err
		}

		value, err := s.resolve(e.Args[1], false)
		if err != nil {
			return nil, err
		}

		return model.MapOf(key, value), nil
	}

	base, err := s.lookup(e.PkgPath, e.Name)
	if err != nil {
		return nil, err
	}

	if len(e.Args) == 0 {
		if len(base.TypeParams) > 0 && !bare {
			return nil, fmt.Errorf("generic type %s needs %d type arguments", base.ID, len(base.TypeParams))
		}

		return base, nil
	}

	if len(base.TypeParams) != len(e.Args) {
		return nil, fmt.Errorf("type %s takes %d type arguments, got %d", base.ID, len(base.TypeParams), len(e.Args))
	}

	args := make([]*model.Type, len(e.Args))
	for i, a := range e.Args {
		if args[i], err = s.resolve(a, false); err != nil {
			return nil, err
		}
	}

	return model.Instantiate(base, args...), nil
}

// resolveString parses and resolves a type expression.
func (s *typeScope) resolveString(expr string, bare bool) (*model.Type, error) {
	e, err := ParseTypeExpr(expr)
	if err != nil {
		return nil, err
	}

	return s.resolve(e, bare)
}
