package model

import (
	"cmp"
	"strings"

	"mapper-planner/internal/common"
)

// TypeID uniquely identifies a declared type by its package path and name.
// An empty PkgPath denotes a builtin type; an empty Name with a PkgPath denotes
// a package that must be imported without referring to one of its types.
type TypeID struct {
	PkgPath string // e.g., "example.com/store"
	Name    string // e.g., "Order"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	if t.Name == "" {
		return t.PkgPath
	}

	return t.PkgPath + "." + t.Name
}

// Compare orders type IDs by package path, then name.
func (t TypeID) Compare(other TypeID) int {
	return cmp.Or(cmp.Compare(t.PkgPath, other.PkgPath), cmp.Compare(t.Name, other.Name))
}

// SortedTypeIDs returns the set elements in Compare order.
func SortedTypeIDs(set map[TypeID]struct{}) []TypeID {
	return common.SortedFunc(set, TypeID.Compare)
}

// IsBuiltin returns true for universe scope types that never need an import.
func (t TypeID) IsBuiltin() bool {
	return t.PkgPath == ""
}

// TypeKind classifies a type for planning purposes.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, time.Time, etc.
	TypeKindBean               // structured type with properties
	TypeKindEnum               // named type with a fixed set of constants
	TypeKindInterface          // interface type, never directly constructible
	TypeKindIterable           // single element container
	TypeKindMap                // key/value container
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindBean:
		return "bean"
	case TypeKindEnum:
		return "enum"
	case TypeKindInterface:
		return "interface"
	case TypeKindIterable:
		return "iterable"
	case TypeKindMap:
		return "map"
	default:
		return common.UnknownStr
	}
}

// ParseTypeKind parses the String form of a TypeKind.
func ParseTypeKind(s string) (TypeKind, bool) {
	for k := TypeKindBasic; k <= TypeKindMap; k++ {
		if k.String() == s {
			return k, true
		}
	}

	return TypeKindUnknown, false
}

// Property describes a bean property.
type Property struct {
	Name     string
	Type     *Type
	Readable bool
	Writable bool
}

// Type describes a type in the mapping catalogue.
type Type struct {
	ID             TypeID     // Empty for unnamed types like []T or map[K]V
	Kind           TypeKind   // Shape of the type
	Params         []*Type    // Generic parameters: element for iterables, key and value for maps
	Properties     []Property // For beans, the properties in declaration order
	Supertypes     []*Type    // Types this type is assignable to
	Abstract       bool       // True if the type cannot be constructed directly
	Implementation *Type      // Default concrete type for abstract containers
	Constants      []string   // For enums, the declared constants
	TypeParams     []string   // For generic declarations, the parameter names
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *Type) IsNamed() bool {
	return t.ID.Name != ""
}

// IsIterableType returns true for single element containers.
func (t *Type) IsIterableType() bool {
	return t != nil && t.Kind == TypeKindIterable
}

// IsMapType returns true for key/value containers.
func (t *Type) IsMapType() bool {
	return t != nil && t.Kind == TypeKindMap
}

// IsGeneric returns true if the type carries type parameters.
func (t *Type) IsGeneric() bool {
	return len(t.Params) > 0
}

// IsAny returns true for the universal interface type.
func (t *Type) IsAny() bool {
	return t != nil && t.ID.PkgPath == "" && (t.ID.Name == "any" || t.ID.Name == "interface{}")
}

// ElementType returns the element type of an iterable, or nil.
func (t *Type) ElementType() *Type {
	if !t.IsIterableType() || len(t.Params) != 1 {
		return nil
	}

	return t.Params[0]
}

// KeyType returns the key type of a map, or nil.
func (t *Type) KeyType() *Type {
	if !t.IsMapType() || len(t.Params) != 2 {
		return nil
	}

	return t.Params[0]
}

// ValueType returns the value type of a map, or nil.
func (t *Type) ValueType() *Type {
	if !t.IsMapType() || len(t.Params) != 2 {
		return nil
	}

	return t.Params[1]
}

// IsConstructible returns true if an instance can be created without a factory.
func (t *Type) IsConstructible() bool {
	return !t.Abstract && t.Kind != TypeKindInterface
}

// Property returns the named property, or nil if the type has none with that name.
func (t *Type) Property(name string) *Property {
	for i := range t.Properties {
		if t.Properties[i].Name == name {
			return &t.Properties[i]
		}
	}

	return nil
}

// ReadableProperty returns the named property if it can be read.
func (t *Type) ReadableProperty(name string) *Property {
	if p := t.Property(name); p != nil && p.Readable {
		return p
	}

	return nil
}

// WritableProperties returns the properties that can be populated, in declaration order.
func (t *Type) WritableProperties() []Property {
	var res []Property
	for _, p := range t.Properties {
		if p.Writable {
			res = append(res, p)
		}
	}

	return res
}

// Equal reports whether both types share the same declaration and parameterization.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}

	if t == other {
		return true
	}

	if t.ID != other.ID {
		return false
	}

	// Unnamed types are only identified by their shape.
	if !t.IsNamed() && t.Kind != other.Kind {
		return false
	}

	if len(t.Params) != len(other.Params) {
		return false
	}

	for i := range t.Params {
		if !t.Params[i].Equal(other.Params[i]) {
			return false
		}
	}

	return true
}

// IsAssignableTo reports whether a value of t can be used where other is expected
// without a conversion: identical types, declared supertypes (transitively) and the
// universal interface type.
func (t *Type) IsAssignableTo(other *Type) bool {
	return t.isAssignableTo(other, make(map[*Type]bool))
}

func (t *Type) isAssignableTo(other *Type, visited map[*Type]bool) bool {
	if t == nil || other == nil {
		return false
	}

	if t.Equal(other) || other.IsAny() {
		return true
	}

	if visited[t] {
		return false
	}

	visited[t] = true

	for _, s := range t.Supertypes {
		if s.isAssignableTo(other, visited) {
			return true
		}
	}

	return false
}

// String renders the type in Go syntax: "[]T", "map[K]V", "pkg.Name" or "pkg.Name[T]".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	if !t.IsNamed() {
		switch {
		case t.Kind == TypeKindIterable && len(t.Params) == 1:
			return "[]" + t.Params[0].String()
		case t.Kind == TypeKindMap && len(t.Params) == 2:
			return "map[" + t.Params[0].String() + "]" + t.Params[1].String()
		case t.ID.PkgPath != "":
			return t.ID.PkgPath
		default:
			return "<unnamed " + t.Kind.String() + ">"
		}
	}

	if len(t.Params) == 0 {
		return t.ID.String()
	}

	return t.ID.String() + "[" + common.Join(t.Params, ", ") + "]"
}

// Key returns a canonical string usable as an index key.
func (t *Type) Key() string {
	return t.String()
}

// ShortName renders the type with package aliases instead of full import paths.
func (t *Type) ShortName() string {
	if t == nil {
		return "<nil>"
	}

	var sb strings.Builder

	switch {
	case !t.IsNamed() && t.Kind == TypeKindIterable && len(t.Params) == 1:
		sb.WriteString("[]" + t.Params[0].ShortName())
	case !t.IsNamed() && t.Kind == TypeKindMap && len(t.Params) == 2:
		sb.WriteString("map[" + t.Params[0].ShortName() + "]" + t.Params[1].ShortName())
	default:
		if alias := common.PkgAlias(t.ID.PkgPath); alias != "" {
			sb.WriteString(alias + ".")
		}

		sb.WriteString(t.ID.Name)

		if len(t.Params) > 0 {
			sb.WriteString("[")

			for i, p := range t.Params {
				if i > 0 {
					sb.WriteString(", ")
				}

				sb.WriteString(p.ShortName())
			}

			sb.WriteString("]")
		}
	}

	return sb.String()
}

// ImportTypes returns the named, non builtin types referenced by t including its parameters.
func (t *Type) ImportTypes() []TypeID {
	if t == nil {
		return nil
	}

	var res []TypeID
	if t.IsNamed() && !t.ID.IsBuiltin() {
		res = append(res, t.ID)
	}

	for _, p := range t.Params {
		res = append(res, p.ImportTypes()...)
	}

	return res
}
