package mapping

import (
	"errors"
	"fmt"

	"golang.org/x/mod/module"

	"mapper-planner/internal/model"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid declaration")

// Validate validates a declaration file structurally: names, type expressions,
// package paths and directive shapes. Types are resolved by Build. Every problem
// is reported, joined into a single error.
func Validate(mf *MappingFile) error {
	if mf == nil {
		return fmt.Errorf("%w: declaration file is nil", ErrInvalid)
	}

	v := &validator{}

	if mf.Version != CurrentVersion {
		v.fail("version", "unsupported version %q, expected %q", mf.Version, CurrentVersion)
	}

	declared := make(map[string]struct{}, len(mf.Types))

	for i := range mf.Types {
		td := &mf.Types[i]

		at := fmt.Sprintf("types[%d] %s", i, td.Name)
		if e := v.qualified(at, td.Name); e != nil {
			if _, ok := declared[e.String()]; ok {
				v.fail(at, "duplicate type")
			}

			declared[e.String()] = struct{}{}
		}

		v.typeDef(at, td)
	}

	methods := make(map[string]struct{}, len(mf.Mapper.Methods))

	for i := range mf.Mapper.Methods {
		m := &mf.Mapper.Methods[i]

		at := fmt.Sprintf("mapper.methods[%d] %s", i, m.Name)
		if _, ok := methods[m.Name]; ok {
			v.fail(at, "duplicate method")
		}

		methods[m.Name] = struct{}{}

		v.method(at, m, true)
	}

	mappers := make(map[string]struct{}, len(mf.Uses))

	for i := range mf.Uses {
		u := &mf.Uses[i]

		at := fmt.Sprintf("uses[%d] %s", i, u.Type)
		if e := v.qualified(at, u.Type); e != nil {
			mappers[e.String()] = struct{}{}
		}

		for j, a := range u.Annotations {
			v.qualified(fmt.Sprintf("%s: annotations[%d]", at, j), a.Type)
		}

		for j := range u.Methods {
			m := &u.Methods[j]
			v.method(fmt.Sprintf("%s: methods[%d] %s", at, j, m.Name), m, false)
		}
	}

	for i, f := range mf.Factories {
		at := fmt.Sprintf("factories[%d] %s", i, f.Name)

		if !isValidIdent(f.Name) {
			v.fail(at, "invalid method name %q", f.Name)
		}

		if f.Returns == "" {
			v.fail(at, "factory methods must return a value")
		} else {
			v.typeExpr(at, f.Returns)
		}

		if f.Mapper != "" {
			if e := v.qualified(at, f.Mapper); e != nil {
				if _, ok := mappers[e.String()]; !ok {
					v.fail(at, "mapper %s is not a used mapper", e)
				}
			}
		}
	}

	return errors.Join(v.errs...)
}

type validator struct {
	errs []error
}

func (v *validator) fail(at, format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf("%w: %s: %s", ErrInvalid, at, fmt.Sprintf(format, args...)))
}

func (v *validator) typeExpr(at, expr string) *TypeExpr {
	e, err := ParseTypeExpr(expr)
	if err != nil {
		v.fail(at, "%v", err)

		return nil
	}

	v.packagePaths(at, e)

	return e
}

// packagePaths checks every package path an expression refers to.
func (v *validator) packagePaths(at string, e *TypeExpr) {
	if e.Kind == ExprNamed && e.PkgPath != "" {
		if err := module.CheckImportPath(e.PkgPath); err != nil {
			v.fail(at, "%v", err)
		}
	}

	for _, a := range e.Args {
		v.packagePaths(at, a)
	}
}

// qualified checks a package qualified type name without arguments.
func (v *validator) qualified(at, name string) *TypeExpr {
	if name == "" {
		v.fail(at, "missing type name")

		return nil
	}

	e := v.typeExpr(at, name)
	if e == nil {
		return nil
	}

	if !e.IsQualified() {
		v.fail(at, "expected a package qualified type name like example.com/pkg.Name, got %q", name)

		return nil
	}

	return e
}

func (v *validator) typeDef(at string, td *TypeDef) {
	kind, ok := model.ParseTypeKind(td.Kind)
	if !ok {
		v.fail(at, "unknown kind %q", td.Kind)
	}

	params := make(map[string]struct{}, len(td.TypeParams))

	for _, p := range td.TypeParams {
		if !isValidIdent(p) {
			v.fail(at, "invalid type parameter %q", p)
		}

		if _, dup := params[p]; dup {
			v.fail(at, "duplicate type parameter %q", p)
		}

		params[p] = struct{}{}
	}

	props := make(map[string]struct{}, len(td.Properties))

	for _, p := range td.Properties {
		if !isValidIdent(p.Name) {
			v.fail(at, "invalid property name %q", p.Name)
		}

		if _, dup := props[p.Name]; dup {
			v.fail(at, "duplicate property %q", p.Name)
		}

		props[p.Name] = struct{}{}

		if p.ReadOnly && p.WriteOnly {
			v.fail(at, "property %q cannot be both readonly and writeonly", p.Name)
		}

		v.typeExpr(at+"."+p.Name, p.Type)
	}

	if len(td.Properties) > 0 && ok && kind != model.TypeKindBean && kind != model.TypeKindInterface {
		v.fail(at, "%s types have no properties", kind)
	}

	if len(td.Constants) > 0 && kind != model.TypeKindEnum {
		v.fail(at, "only enums have constants")
	}

	for _, s := range td.Supertypes {
		v.typeExpr(at+": supertype", s)
	}

	if td.Implementation != "" {
		if !td.Abstract && kind != model.TypeKindInterface {
			v.fail(at, "only abstract types have an implementation")
		}

		v.typeExpr(at+": implementation", td.Implementation)
	}

	generic := len(td.TypeParams) > 0

	switch kind {
	case model.TypeKindIterable:
		if td.Element == "" && !generic {
			v.fail(at, "iterable types need an element type or type parameters")
		}
	case model.TypeKindMap:
		if (td.Key == "" || td.Value == "") && !generic {
			v.fail(at, "map types need key and value types or type parameters")
		}
	default:
		if td.Element != "" || td.Key != "" || td.Value != "" {
			v.fail(at, "only containers have element, key or value types")
		}
	}

	for _, expr := range []string{td.Element, td.Key, td.Value} {
		if expr != "" {
			v.typeExpr(at, expr)
		}
	}
}

func (v *validator) method(at string, m *MethodDef, implemented bool) {
	if !isValidIdent(m.Name) {
		v.fail(at, "invalid method name %q", m.Name)
	}

	names := make(map[string]struct{}, len(m.Params))
	targets := 0

	for _, p := range m.Params {
		if !isValidIdent(p.Name) {
			v.fail(at, "invalid parameter name %q", p.Name)
		}

		if _, dup := names[p.Name]; dup {
			v.fail(at, "duplicate parameter %q", p.Name)
		}

		names[p.Name] = struct{}{}

		if p.MappingTarget {
			targets++
		}

		if p.Type == "" {
			v.fail(at, "parameter %q has no type", p.Name)
		} else {
			v.typeExpr(at+": "+p.Name, p.Type)
		}
	}

	if targets > 1 {
		v.fail(at, "more than one mapping target parameter")
	}

	if m.Returns != "" {
		v.typeExpr(at+": returns", m.Returns)
	}

	if m.Accessibility != "" {
		if _, err := model.ParseAccessibility(m.Accessibility); err != nil {
			v.fail(at, "%v", err)
		}
	}

	configs := 0

	for _, set := range []bool{m.HasBeanConfig(), m.Iterable != nil, m.Map != nil} {
		if set {
			configs++
		}
	}

	switch {
	case configs > 0 && !implemented:
		v.fail(at, "methods of used mappers carry no configuration")
	case configs > 1:
		v.fail(at, "mappings, iterable and map configurations are exclusive")
	}

	for source, target := range m.OneToOne {
		if !isValidIdent(target) {
			v.fail(at, "121: invalid target property %q", target)
		}

		if _, err := ParsePath(source); err != nil {
			v.fail(at, "121: %v", err)
		}
	}

	for j := range m.Mappings {
		d := &m.Mappings[j]
		dat := fmt.Sprintf("%s: mappings[%d] %s", at, j, d.Target)

		if !isValidIdent(d.Target) {
			v.fail(dat, "invalid target property %q", d.Target)
		}

		if d.valueSources() != 1 {
			v.fail(dat, "exactly one of source, constant, expression and ignore must be set")
		}

		if d.Source != "" {
			if _, err := ParsePath(d.Source); err != nil {
				v.fail(dat, "%v", err)
			}
		} else if d.Format != "" {
			v.fail(dat, "format applies to source directives only")
		}
	}

	for _, target := range m.Ignore {
		if !isValidIdent(target) {
			v.fail(at, "ignore: invalid target property %q", target)
		}
	}
}
