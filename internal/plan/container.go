package plan

import (
	"mapper-planner/internal/common"
	"mapper-planner/internal/diagnostic"
	"mapper-planner/internal/model"
	"mapper-planner/internal/resolve"
)

const (
	elementVariable = "element"
	keyVariable     = "key"
	valueVariable   = "value"
	entryVariable   = "entry"
)

// sourceParameter returns the sole source parameter of a container mapping method.
func (mp *methodPlanner) sourceParameter() (*model.Parameter, error) {
	sources := mp.method.SourceParameters()
	if len(sources) != 1 {
		return nil, mp.structural("container mapping methods need exactly one source parameter, got %d", len(sources))
	}

	return &sources[0], nil
}

func (mp *methodPlanner) planIterable() (MappingPlan, error) {
	m := mp.method

	source, err := mp.sourceParameter()
	if err != nil {
		return nil, err
	}

	result := m.ResultType()
	srcElem, dstElem := source.Type.ElementType(), result.ElementType()

	if srcElem == nil || dstElem == nil {
		return nil, mp.structural("iterable types %s and %s must have one element type", source.Type, result)
	}

	var format string
	if cfg, ok := m.Config.(*model.IterableMapping); ok && cfg != nil {
		format = cfg.ElementFormat
	}

	loop := common.SafeVariableName(loopStem(srcElem), m.ParameterNames())
	names := append(m.ParameterNames(), loop)

	element, ok := mp.resolve(resolve.Request{
		Source:         srcElem,
		Target:         dstElem,
		ParameterNames: names,
		Format:         format,
		TempName:       elementVariable,
	}, "")
	if ok && !element.Found() {
		mp.diags.AddError(diagnostic.CodeNoElementStrategy,
			"no strategy to map iterable element "+srcElem.String()+" to "+dstElem.String(), m.Name, "")
	}

	mp.log.WithField("element", element.String()).Debug("plan: iterable element")

	return &IterableMappingMethod{
		SourceElement:    srcElem,
		TargetElement:    dstElem,
		Element:          element,
		Factory:          mp.factory(result),
		LoopVariableName: loop,
	}, nil
}

func (mp *methodPlanner) planMap() (MappingPlan, error) {
	m := mp.method

	source, err := mp.sourceParameter()
	if err != nil {
		return nil, err
	}

	result := m.ResultType()
	srcKey, srcValue := source.Type.KeyType(), source.Type.ValueType()
	dstKey, dstValue := result.KeyType(), result.ValueType()

	if srcKey == nil || dstKey == nil {
		return nil, mp.structural("map types %s and %s must have key and value types", source.Type, result)
	}

	var keyFormat, valueFormat string
	if cfg, ok := m.Config.(*model.MapMapping); ok && cfg != nil {
		keyFormat, valueFormat = cfg.KeyFormat, cfg.ValueFormat
	}

	params := m.ParameterNames()
	plan := &MapMappingMethod{
		SourceKey:         srcKey,
		SourceValue:       srcValue,
		TargetKey:         dstKey,
		TargetValue:       dstValue,
		KeyVariableName:   common.SafeVariableName(keyVariable, params),
		ValueVariableName: common.SafeVariableName(valueVariable, params),
		EntryVariableName: common.SafeVariableName(entryVariable, params),
	}

	names := append(params, plan.KeyVariableName, plan.ValueVariableName, plan.EntryVariableName)

	var ok bool

	plan.Key, ok = mp.resolve(resolve.Request{
		Source:         srcKey,
		Target:         dstKey,
		ParameterNames: names,
		Format:         keyFormat,
		TempName:       "mapKey",
	}, keyVariable)
	if ok && !plan.Key.Found() {
		mp.diags.AddError(diagnostic.CodeNoElementStrategy,
			"no strategy to map map key "+srcKey.String()+" to "+dstKey.String(), m.Name, keyVariable)
	}

	plan.Value, ok = mp.resolve(resolve.Request{
		Source:         srcValue,
		Target:         dstValue,
		ParameterNames: names,
		Format:         valueFormat,
		TempName:       "mapValue",
	}, valueVariable)
	if ok && !plan.Value.Found() {
		mp.diags.AddError(diagnostic.CodeNoElementStrategy,
			"no strategy to map map value "+srcValue.String()+" to "+dstValue.String(), m.Name, valueVariable)
	}

	plan.Factory = mp.factory(result)

	mp.log.WithField("key", plan.Key.String()).WithField("value", plan.Value.String()).Debug("plan: map entry")

	return plan, nil
}

// loopStem names the loop variable after the element type, e.g. "order" for
// []shop.Order; builtin and unnamed element types use "element".
func loopStem(elem *model.Type) string {
	if !elem.IsNamed() || elem.ID.IsBuiltin() {
		return elementVariable
	}

	return common.LowerFirst(elem.ID.Name)
}
