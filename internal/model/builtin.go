package model

// basicTypeNames lists the Go universe types treated as basic.
var basicTypeNames = map[string]bool{
	"bool":       true,
	"string":     true,
	"int":        true,
	"int8":       true,
	"int16":      true,
	"int32":      true,
	"int64":      true,
	"uint":       true,
	"uint8":      true,
	"uint16":     true,
	"uint32":     true,
	"uint64":     true,
	"uintptr":    true,
	"byte":       true,
	"rune":       true,
	"float32":    true,
	"float64":    true,
	"complex64":  true,
	"complex128": true,
}

var (
	// TimeID identifies time.Time.
	TimeID = TypeID{PkgPath: "time", Name: "Time"}
	// DurationID identifies time.Duration.
	DurationID = TypeID{PkgPath: "time", Name: "Duration"}
)

// IsBasicTypeName returns true if the name refers to a Go basic type.
func IsBasicTypeName(name string) bool {
	return basicTypeNames[name]
}

// Basic returns a descriptor for a builtin basic type such as "int" or "string".
// The aliases byte and rune are normalized to uint8 and int32.
func Basic(name string) *Type {
	switch name {
	case "byte":
		name = "uint8"
	case "rune":
		name = "int32"
	}

	return &Type{ID: TypeID{Name: name}, Kind: TypeKindBasic}
}

// Time returns a descriptor for time.Time.
func Time() *Type {
	return &Type{ID: TimeID, Kind: TypeKindBasic}
}

// Duration returns a descriptor for time.Duration.
func Duration() *Type {
	return &Type{ID: DurationID, Kind: TypeKindBasic}
}

// Any returns a descriptor for the universal interface type.
func Any() *Type {
	return &Type{ID: TypeID{Name: "any"}, Kind: TypeKindInterface, Abstract: true}
}

// SliceOf returns an unnamed, constructible iterable of elem.
func SliceOf(elem *Type) *Type {
	return &Type{Kind: TypeKindIterable, Params: []*Type{elem}}
}

// MapOf returns an unnamed, constructible map from key to value.
func MapOf(key, value *Type) *Type {
	return &Type{Kind: TypeKindMap, Params: []*Type{key, value}}
}

// Bean returns a named bean type whose properties are both readable and writable.
func Bean(pkgPath, name string, props ...Property) *Type {
	for i := range props {
		props[i].Readable = true
		props[i].Writable = true
	}

	return &Type{ID: TypeID{PkgPath: pkgPath, Name: name}, Kind: TypeKindBean, Properties: props}
}

// Prop is a shorthand for a read/write property, used by Bean.
func Prop(name string, t *Type) Property {
	return Property{Name: name, Type: t, Readable: true, Writable: true}
}

// Instantiate returns a copy of the generic declaration base parameterized with params.
// Generic supertypes and the implementation are instantiated with the same parameters
// when their arity matches.
func Instantiate(base *Type, params ...*Type) *Type {
	return instantiate(base, params, true)
}

func instantiate(base *Type, params []*Type, withImplementation bool) *Type {
	inst := *base
	inst.Params = params
	inst.TypeParams = nil
	inst.Implementation = nil

	if withImplementation && base.Implementation != nil {
		if len(base.Implementation.TypeParams) == len(params) {
			inst.Implementation = instantiate(base.Implementation, params, false)
		} else {
			inst.Implementation = base.Implementation
		}
	}

	if len(base.Properties) > 0 && len(base.TypeParams) == len(params) && len(params) > 0 {
		bindings := make(map[string]*Type, len(params))
		for i, name := range base.TypeParams {
			bindings[name] = params[i]
		}

		inst.Properties = make([]Property, len(base.Properties))
		for i, p := range base.Properties {
			p.Type = substitute(p.Type, bindings)
			inst.Properties[i] = p
		}
	}

	if len(base.Supertypes) > 0 {
		inst.Supertypes = make([]*Type, len(base.Supertypes))
		for i, s := range base.Supertypes {
			if len(s.TypeParams) == len(params) && len(params) > 0 {
				inst.Supertypes[i] = instantiate(s, params, false)
			} else {
				inst.Supertypes[i] = s
			}
		}
	}

	return &inst
}

// substitute replaces type parameter placeholders in t by their bindings. Only
// the parameters of t are rewritten, the properties of nested instances are not.
func substitute(t *Type, bindings map[string]*Type) *Type {
	if t == nil {
		return nil
	}

	if t.isPlaceholder() {
		if b, ok := bindings[t.ID.Name]; ok {
			return b
		}

		return t
	}

	if len(t.Params) == 0 {
		return t
	}

	changed := false
	params := make([]*Type, len(t.Params))

	for i, p := range t.Params {
		params[i] = substitute(p, bindings)
		changed = changed || params[i] != p
	}

	if !changed {
		return t
	}

	res := *t
	res.Params = params
	res.Implementation = substitute(t.Implementation, bindings)

	return &res
}

// isPlaceholder reports whether t stands for a type parameter.
func (t *Type) isPlaceholder() bool {
	return t.ID.PkgPath == "" && t.ID.Name != "" && t.ID.Name != "any" &&
		t.Kind == TypeKindInterface && t.Abstract && len(t.Params) == 0
}
