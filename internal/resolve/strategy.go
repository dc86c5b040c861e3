package resolve

import (
	"strings"

	"mapper-planner/internal/catalogue"
	"mapper-planner/internal/common"
	"mapper-planner/internal/conversion"
	"mapper-planner/internal/model"
)

// StrategyKind tells how a source value becomes a target value.
type StrategyKind int

const (
	// StrategyNotFound - no strategy applies.
	StrategyNotFound StrategyKind = iota
	// StrategyIdentity - the value is used as is.
	StrategyIdentity
	// StrategyMethod - a mapping method is called.
	StrategyMethod
	// StrategyConversion - a built-in conversion is applied.
	StrategyConversion
	// StrategyAssign - the value is assigned as is to a supertype.
	StrategyAssign
)

// String returns a human-readable strategy name.
func (k StrategyKind) String() string {
	switch k {
	case StrategyNotFound:
		return "not_found"
	case StrategyIdentity:
		return "identity"
	case StrategyMethod:
		return "method"
	case StrategyConversion:
		return "conversion"
	case StrategyAssign:
		return "assign"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML renders the kind by name.
func (k StrategyKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// ReferenceKind tells how a referenced method is called.
type ReferenceKind int

const (
	// ReferenceLocal - a method of the mapper being implemented.
	ReferenceLocal ReferenceKind = iota
	// ReferenceField - a method of a used mapper held in a field.
	ReferenceField
	// ReferenceInjected - a method of a used mapper injected through annotations.
	ReferenceInjected
)

// String returns a human-readable reference kind.
func (k ReferenceKind) String() string {
	switch k {
	case ReferenceLocal:
		return "local"
	case ReferenceField:
		return "field"
	case ReferenceInjected:
		return "injected"
	default:
		return common.UnknownStr
	}
}

// MarshalYAML renders the kind by name.
func (k ReferenceKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// MethodReference is a method bound to the mapper it is called through.
type MethodReference struct {
	Method *model.Method
	Mapper catalogue.MapperReference // nil for local methods
}

// NewMethodReference binds the method of a catalogue entry.
func NewMethodReference(e catalogue.Entry) *MethodReference {
	return &MethodReference{Method: e.Method, Mapper: e.Mapper}
}

// Kind tells how the method is called.
func (r *MethodReference) Kind() ReferenceKind {
	switch r.Mapper.(type) {
	case nil:
		return ReferenceLocal
	case *catalogue.AnnotationMapperReference:
		return ReferenceInjected
	default:
		return ReferenceField
	}
}

// ImportTypes returns the types a call of the method requires.
func (r *MethodReference) ImportTypes() []model.TypeID {
	if r.Mapper == nil {
		return nil
	}

	return r.Mapper.ImportTypes()
}

// String renders the call target, e.g. "toDto" or "priceMapper.format".
func (r *MethodReference) String() string {
	if r.Mapper == nil {
		return r.Method.Name
	}

	return r.Mapper.VariableName() + "." + r.Method.Name
}

// Strategy is the outcome of a resolution.
type Strategy struct {
	Kind       StrategyKind
	Method     *MethodReference          // set for StrategyMethod
	Conversion *conversion.TypeConversion // set for StrategyConversion

	// TempVariable is a local variable name free of collisions with the method's
	// parameters, usable by conversions needing an intermediate value.
	TempVariable string

	// Reason explains the decision.
	Reason string
}

// Found returns true unless the strategy is StrategyNotFound.
func (s Strategy) Found() bool {
	return s.Kind != StrategyNotFound
}

// ImportTypes returns the types the strategy requires.
func (s Strategy) ImportTypes() []model.TypeID {
	switch s.Kind {
	case StrategyMethod:
		return s.Method.ImportTypes()
	case StrategyConversion:
		return s.Conversion.ImportTypes()
	default:
		return nil
	}
}

// String renders the strategy for logs and diagnostics.
func (s Strategy) String() string {
	switch s.Kind {
	case StrategyMethod:
		return "method " + s.Method.String()
	case StrategyConversion:
		return "conversion " + s.Conversion.String()
	default:
		return s.Kind.String()
	}
}

// AmbiguityError reports several equally specific candidate methods.
type AmbiguityError struct {
	Source     *model.Type
	Target     *model.Type
	Candidates []*MethodReference // declaration order
}

func (e *AmbiguityError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}

	return "ambiguous mapping methods for " + e.Source.String() + " -> " + e.Target.String() +
		": " + strings.Join(names, ", ")
}
