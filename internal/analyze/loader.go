package analyze

import (
	"cmp"
	"errors"
	"fmt"
	"go/types"
	"slices"

	"github.com/sirupsen/logrus"
	"golang.org/x/tools/go/packages"

	"mapper-planner/internal/logging"
	"mapper-planner/internal/model"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*model.Type // Cache to handle recursive types
	constants map[*types.TypeName][]string
	named     map[model.TypeID]*types.Named
	log       logrus.FieldLogger
}

// NewAnalyzer creates a new Analyzer. A nil log is silent.
func NewAnalyzer(log logrus.FieldLogger) *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*model.Type),
		constants: make(map[*types.TypeName][]string),
		named:     make(map[model.TypeID]*types.Named),
		log:       logging.OrDiscard(log),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./shop", "example.com/shop/...").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	return a.LoadPackagesIn("", patterns...)
}

// LoadPackagesIn is LoadPackages with patterns relative to dir.
func (a *Analyzer) LoadPackagesIn(dir string, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	// Constants first: enum types may be reached from any package.
	for _, pkg := range pkgs {
		a.collectConstants(pkg.Types)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	a.linkSupertypes()

	a.log.WithFields(logrus.Fields{
		"packages": len(a.graph.Packages),
		"types":    len(a.graph.Types),
	}).Debug("analyze: packages loaded")

	return a.graph, nil
}

// collectConstants records the exported constants of every named type declared
// in pkg, in declaration order.
func (a *Analyzer) collectConstants(pkg *types.Package) {
	type constant struct {
		name string
		pos  int
	}

	found := make(map[*types.TypeName][]constant)

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !c.Exported() {
			continue
		}

		named, ok := c.Type().(*types.Named)
		if !ok || named.Obj().Pkg() != pkg {
			continue
		}

		found[named.Obj()] = append(found[named.Obj()], constant{name: name, pos: int(c.Pos())})
	}

	for obj, list := range found {
		slices.SortFunc(list, func(x, y constant) int { return cmp.Compare(x.pos, y.pos) })

		names := make([]string, len(list))
		for i, c := range list {
			names[i] = c.name
		}

		a.constants[obj] = names
	}
}

// processPackage extracts the exported types of a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only process exported type names (not variables, constants, functions)
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		typ := a.Convert(typeName.Type())
		if typ == nil {
			a.log.WithField("type", name).Debug("analyze: unsupported type skipped")

			continue
		}

		a.graph.Types[typ.ID] = typ
		pkgInfo.Types = append(pkgInfo.Types, typ.ID)

		if named, ok := typeName.Type().(*types.Named); ok {
			a.named[typ.ID] = named
		}
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// Convert converts a go/types type into a model type, or returns nil for
// types mapping methods cannot be declared over (channels, functions).
func (a *Analyzer) Convert(t types.Type) *model.Type {
	t = types.Unalias(t)

	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	switch tt := t.(type) {
	case *types.Named:
		return a.convertNamed(tt)
	case *types.Basic:
		return model.Basic(tt.Name())
	case *types.Pointer:
		return a.Convert(tt.Elem())
	case *types.TypeParam:
		return &model.Type{ID: model.TypeID{Name: tt.Obj().Name()}, Kind: model.TypeKindInterface, Abstract: true}
	}

	info := &model.Type{}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	if !a.fill(t, info) {
		delete(a.typeCache, t)

		return nil
	}

	return info
}

func (a *Analyzer) convertNamed(named *types.Named) *model.Type {
	obj := named.Obj()
	id := model.TypeID{Name: obj.Name()}

	if obj.Pkg() != nil {
		id.PkgPath = obj.Pkg().Path()
	}

	switch id {
	case model.TimeID:
		return model.Time()
	case model.DurationID:
		return model.Duration()
	}

	if args := named.TypeArgs(); args.Len() > 0 {
		origin := a.Convert(named.Origin())
		if origin == nil {
			return nil
		}

		params := make([]*model.Type, args.Len())
		for i := range args.Len() {
			if params[i] = a.Convert(args.At(i)); params[i] == nil {
				return nil
			}
		}

		return model.Instantiate(origin, params...)
	}

	info := &model.Type{ID: id}

	for i := range named.TypeParams().Len() {
		info.TypeParams = append(info.TypeParams, named.TypeParams().At(i).Obj().Name())
	}

	a.typeCache[named] = info

	if constants := a.constants[obj]; len(constants) > 0 {
		if _, basic := named.Underlying().(*types.Basic); basic {
			info.Kind = model.TypeKindEnum
			info.Constants = constants

			return info
		}
	}

	if !a.fill(named.Underlying(), info) {
		delete(a.typeCache, named)

		return nil
	}

	return info
}

// fill describes the structure of t in info.
func (a *Analyzer) fill(t types.Type, info *model.Type) bool {
	switch tt := t.(type) {
	case *types.Basic:
		info.Kind = model.TypeKindBasic
	case *types.Struct:
		info.Kind = model.TypeKindBean
		a.analyzeStructFields(tt, info)
	case *types.Slice:
		return a.container(info, model.TypeKindIterable, tt.Elem())
	case *types.Array:
		return a.container(info, model.TypeKindIterable, tt.Elem())
	case *types.Map:
		return a.container(info, model.TypeKindMap, tt.Key(), tt.Elem())
	case *types.Interface:
		if tt.Empty() && !info.IsNamed() {
			*info = *model.Any()

			return true
		}

		info.Kind = model.TypeKindInterface
		info.Abstract = true
	default:
		return false
	}

	return true
}

func (a *Analyzer) container(info *model.Type, kind model.TypeKind, params ...types.Type) bool {
	info.Kind = kind

	for _, p := range params {
		param := a.Convert(p)
		if param == nil {
			return false
		}

		info.Params = append(info.Params, param)
	}

	return true
}

// analyzeStructFields describes the exported fields of a struct as properties.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *model.Type) {
	for i := range st.NumFields() {
		field := st.Field(i)
		if !field.Exported() {
			continue
		}

		typ := a.Convert(field.Type())
		if typ == nil {
			a.log.WithField("field", field.Name()).Debug("analyze: field of unsupported type skipped")

			continue
		}

		info.Properties = append(info.Properties, model.Prop(field.Name(), typ))
	}
}

// linkSupertypes records, for every concrete named type of the graph, the
// non-empty interfaces of the graph it (or its pointer) implements.
func (a *Analyzer) linkSupertypes() {
	ids := a.graph.IDs()

	var ifaces []model.TypeID

	for _, id := range ids {
		t := a.graph.Types[id]
		if t.Kind == model.TypeKindInterface && a.named[id] != nil && a.named[id].TypeParams().Len() == 0 {
			if iface, ok := a.named[id].Underlying().(*types.Interface); ok && !iface.Empty() {
				ifaces = append(ifaces, id)
			}
		}
	}

	for _, id := range ids {
		t, named := a.graph.Types[id], a.named[id]
		if named == nil || t.Kind == model.TypeKindInterface || named.TypeParams().Len() > 0 {
			continue
		}

		for _, ifaceID := range ifaces {
			iface := a.named[ifaceID].Underlying().(*types.Interface)
			if types.Implements(named, iface) || types.Implements(types.NewPointer(named), iface) {
				t.Supertypes = append(t.Supertypes, a.graph.Types[ifaceID])
			}
		}
	}
}

// GetBean returns the bean type for a named struct.
func (a *Analyzer) GetBean(pkgPath, typeName string) (*model.Type, error) {
	id := model.TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.Lookup(id)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}

	if info.Kind != model.TypeKindBean {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", id, info.Kind)
	}

	return info, nil
}
