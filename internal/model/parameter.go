package model

// Parameter is a named, typed formal argument of a method.
type Parameter struct {
	Name string
	Type *Type
	// MappingTarget marks an existing instance populated in place.
	MappingTarget bool
}

// String renders the parameter as "name Type", flagging the mapping target.
func (p Parameter) String() string {
	s := p.Name + " " + p.Type.String()
	if p.MappingTarget {
		s += " (mapping target)"
	}

	return s
}
