package analyze

import "mapper-planner/internal/model"

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to the converted type for all exported named types.
	Types map[model.TypeID]*model.Type
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[model.TypeID]*model.Type),
		Packages: make(map[string]*PackageInfo),
	}
}

// Lookup returns the type for a given TypeID, or nil if not found.
func (g *TypeGraph) Lookup(id model.TypeID) *model.Type {
	if g == nil {
		return nil
	}

	return g.Types[id]
}

// IDs returns the identifiers of all types in the graph, sorted.
func (g *TypeGraph) IDs() []model.TypeID {
	set := make(map[model.TypeID]struct{}, len(g.Types))
	for id := range g.Types {
		set[id] = struct{}{}
	}

	return model.SortedTypeIDs(set)
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string         // Import path
	Name  string         // Package name
	Types []model.TypeID // Exported named types defined in this package
}
