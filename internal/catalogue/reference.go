package catalogue

import (
	"mapper-planner/internal/common"
	"mapper-planner/internal/model"
)

// MapperReference is a dependency of the generated mapper on a used mapper.
type MapperReference interface {
	// MapperType is the used mapper type.
	MapperType() *model.Type
	// VariableName is the field name the generated mapper holds the dependency in.
	VariableName() string
	// ImportTypes are the types the dependency requires to be imported.
	ImportTypes() []model.TypeID
}

// FieldMapperReference is a used mapper held in a plain field.
type FieldMapperReference struct {
	Type     *model.Type
	Variable string
}

var _ MapperReference = (*FieldMapperReference)(nil)

func (r *FieldMapperReference) MapperType() *model.Type { return r.Type }

func (r *FieldMapperReference) VariableName() string { return r.Variable }

func (r *FieldMapperReference) ImportTypes() []model.TypeID {
	return r.Type.ImportTypes()
}

// Annotation qualifies how a dependency is injected, e.g. a dependency injection
// qualifier. Its type must be imported by the generated mapper.
type Annotation struct {
	Type  *model.Type
	Value string
}

// AnnotationMapperReference is a used mapper injected through annotations.
type AnnotationMapperReference struct {
	Type        *model.Type
	Variable    string
	Annotations []Annotation
}

var _ MapperReference = (*AnnotationMapperReference)(nil)

func (r *AnnotationMapperReference) MapperType() *model.Type { return r.Type }

func (r *AnnotationMapperReference) VariableName() string { return r.Variable }

// ImportTypes unions the mapper type with the annotation types.
func (r *AnnotationMapperReference) ImportTypes() []model.TypeID {
	set := common.AsSet(r.Type.ImportTypes()...)
	for _, a := range r.Annotations {
		set = common.AddAll(set, a.Type.ImportTypes()...)
	}

	return model.SortedTypeIDs(set)
}
